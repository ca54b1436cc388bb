// Copyright 2026 The sddc-go Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package fftplan

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBuildsAllDecimations(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wisdom.json")
	const baseFFT = 1024
	const ndecidx = 7

	c, err := New(baseFFT, ndecidx, path)
	require.NoError(t, err)
	require.Len(t, c.Inverse, ndecidx)

	for d := 0; d < ndecidx; d++ {
		want := baseFFT / (1 << (d + 1))
		assert.Equal(t, want, c.Inverse[d].Size)
	}
}

func TestWisdomCacheReused(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wisdom.json")
	_, err := New(256, 2, path)
	require.NoError(t, err)

	w := loadWisdom(path)
	assert.Contains(t, w.Sizes, 256)
	assert.Contains(t, w.Sizes, 128)
	assert.Contains(t, w.Sizes, 64)

	// A second build against the same cache file should succeed without
	// needing to re-measure (exercised implicitly: New does not error
	// and produces the same plan set).
	c2, err := New(256, 2, path)
	require.NoError(t, err)
	assert.Equal(t, 256, c2.BaseFFTSize)
}
