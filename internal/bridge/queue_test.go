// Copyright 2026 The sddc-go Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package bridge

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestAcquireTimesOutWhenEmpty(t *testing.T) {
	q := New(8)
	_, overflowed, ok := q.Acquire(10 * time.Millisecond)
	require.False(t, ok)
	require.False(t, overflowed)
}

func TestPushAcquireRoundTrip(t *testing.T) {
	q := New(8)
	q.Push([]byte("hello"))
	payload, overflowed, ok := q.Acquire(time.Second)
	require.True(t, ok)
	require.False(t, overflowed)
	require.Equal(t, []byte("hello"), payload)
}

func TestOverflowLatchesAndSurfacesOnNextAcquire(t *testing.T) {
	q := New(4)
	for i := 0; i < N+2; i++ {
		q.Push([]byte{byte(i)})
	}

	var lastOverflow bool
	for i := 0; i < N; i++ {
		_, overflowed, ok := q.Acquire(time.Second)
		require.True(t, ok)
		if overflowed {
			lastOverflow = true
		}
	}
	require.True(t, lastOverflow, "overflow flag was never surfaced")

	_, _, avail := q.Acquire(10 * time.Millisecond)
	require.False(t, avail)
}

func TestPushWakesBlockedAcquire(t *testing.T) {
	q := New(8)
	done := make(chan []byte, 1)
	go func() {
		payload, _, ok := q.Acquire(time.Second)
		if ok {
			done <- payload
		} else {
			done <- nil
		}
	}()

	time.Sleep(20 * time.Millisecond)
	q.Push([]byte("woke"))

	select {
	case got := <-done:
		require.Equal(t, []byte("woke"), got)
	case <-time.After(time.Second):
		t.Fatal("Acquire was not woken by Push")
	}
}
