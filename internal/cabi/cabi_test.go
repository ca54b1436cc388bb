// Copyright 2026 The sddc-go Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package cabi

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/sddc-go/sddc/internal/frontend"
	"github.com/sddc-go/sddc/internal/sddcerr"
)

func TestEnumerateIncludesDummy(t *testing.T) {
	infos := Enumerate()
	require.NotEmpty(t, infos)

	found := false
	for _, info := range infos {
		if info.Product == frontend.Dummy.String() {
			found = true
		}
	}
	require.True(t, found)
}

func TestOpenStartStopDummyLoopback(t *testing.T) {
	var samples int
	h, err := Open(0, frontend.Dummy, AttachIQ(func(x []complex64) { samples += len(x) }))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		_ = Start(ctx, h, true)
	}()
	time.Sleep(20 * time.Millisecond)
	Stop(h)

	require.NoError(t, SetDecimation(h, 2))
}

func TestSetDecimationOutOfRangeReturnsSddcError(t *testing.T) {
	h, err := Open(0, frontend.Dummy)
	require.NoError(t, err)

	err = SetDecimation(h, 255)
	require.Error(t, err)

	kind, ok := LastError(err)
	require.True(t, ok)
	require.Equal(t, sddcerr.DecimationOutOfRange, kind)
}

func TestLastErrorNilIsSuccess(t *testing.T) {
	kind, ok := LastError(nil)
	require.True(t, ok)
	require.Equal(t, sddcerr.Success, kind)
}
