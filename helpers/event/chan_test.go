// Copyright 2026 The sddc-go Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package event

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestChanDeliversEvent(t *testing.T) {
	ec := NewChan(1)
	defer ec.Close()

	ec.Callback("overflow", "iq bridge dropped oldest slot")

	msg, ok := <-ec.C
	require.True(t, ok)
	require.Equal(t, "overflow", msg.Kind)
}

func TestChanCloseStopsDelivery(t *testing.T) {
	ec := NewChan(1)
	require.NoError(t, ec.Close())

	ec.Callback("overflow", "")
	_, ok := <-ec.C
	require.False(t, ok)
}
