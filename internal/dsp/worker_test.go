// Copyright 2026 The sddc-go Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package dsp

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sddc-go/sddc/internal/fftplan"
	"github.com/sddc-go/sddc/internal/filterbank"
	"github.com/sddc-go/sddc/internal/ring"
)

func TestAdcDerandomize(t *testing.T) {
	require.Equal(t, int16(1000), adcDerandomize(1000)) // LSB 0: untouched
	require.Equal(t, int16(1001)^int16(-2), adcDerandomize(1001))
}

// TestApplyTuneFilterBoundsAtZero checks the c=0 edge: the lower half of
// the output must be entirely empty (no negative-index or out-of-range
// reads), and the upper half copies x[0:h] directly.
func TestApplyTuneFilterBoundsAtZero(t *testing.T) {
	const halfFFT = 16
	const h = 4
	x := make([]complex64, halfFFT+1)
	filt := make([]complex64, halfFFT)
	for i := range x {
		x[i] = complex(float32(i+1), 0)
	}
	for i := range filt {
		filt[i] = 1
	}

	out := make([]complex64, 2*h)
	require.NotPanics(t, func() {
		applyTuneFilter(out, x, filt, 0, h, halfFFT)
	})
	for i := 0; i < h; i++ {
		require.Equal(t, x[i], out[i])
	}
	for i := h; i < 2*h; i++ {
		require.Equal(t, complex64(0), out[i])
	}
}

// TestApplyTuneFilterBoundsAtMax checks the c=halfFFT edge: the upper
// half must be empty, with no reads past x's bounds.
func TestApplyTuneFilterBoundsAtMax(t *testing.T) {
	const halfFFT = 16
	const h = 4
	x := make([]complex64, halfFFT+1)
	filt := make([]complex64, halfFFT)
	for i := range x {
		x[i] = complex(float32(i+1), 0)
	}
	for i := range filt {
		filt[i] = complex(float32(i+1), 0)
	}

	out := make([]complex64, 2*h)
	require.NotPanics(t, func() {
		applyTuneFilter(out, x, filt, halfFFT, h, halfFFT)
	})
	for i := 0; i < h; i++ {
		require.Equal(t, complex64(0), out[i])
	}
}

// TestApplyTuneFilterBoundsMidRange sanity-checks that every c value
// stepped in multiples of 4 across [0, halfFFT] produces no panics over
// the full output range.
func TestApplyTuneFilterBoundsMidRange(t *testing.T) {
	const halfFFT = 64
	const h = 8
	x := make([]complex64, halfFFT+1)
	filt := make([]complex64, halfFFT)
	for i := range x {
		x[i] = complex(float32(i+1), 0)
	}
	for i := range filt {
		filt[i] = 1
	}

	for c := 0; c <= halfFFT; c += 4 {
		out := make([]complex64, 2*h)
		require.NotPanicsf(t, func() { applyTuneFilter(out, x, filt, c, h, halfFFT) }, "c=%d", c)
	}
}

// TestWorkerOutputCadence exercises the full overlap-save pipeline at
// the smallest supported decimation and checks that one input block
// yields exactly one committed I/Q output block of the expected length.
func TestWorkerOutputCadence(t *testing.T) {
	const baseFFT = BaseFFTSize
	const ndecidx = NDecIdx
	const stride = baseFFT - BaseFFTScrapSize

	plans, err := fftplan.New(baseFFT, ndecidx, filepath.Join(t.TempDir(), "wisdom.json"))
	require.NoError(t, err)

	bank, err := filterbank.Build(64e6, 1.0, baseFFT, ndecidx)
	require.NoError(t, err)

	realRing := ring.New[int16](4)
	require.NoError(t, realRing.SetBlockSize(stride))
	realRing.Start()

	iqRing := ring.New[complex64](4)
	dec := uint8(0)
	invLen := baseFFT / (1 << (dec + 1))
	scrapD := (BaseFFTScrapSize / 2) >> dec
	outLen := invLen - scrapD
	require.NoError(t, iqRing.SetBlockSize(outLen))
	iqRing.Start()

	params := NewParamStore(Params{Dec: dec, CenterBin: 0})
	w, err := NewWorker(realRing, iqRing, bank, plans, params, nil)
	require.NoError(t, err)

	// Prime the ring with two blocks: the first establishes the
	// "previous" scrap history, the second is the block actually
	// processed by ProcessBlock in this test.
	for i := 0; i < 2; i++ {
		slot, ok := realRing.WritePtr()
		require.True(t, ok)
		for j := range slot {
			slot[j] = int16((i*stride + j) % 1000)
		}
		realRing.WriteDone()
	}

	done := make(chan bool, 1)
	go func() {
		// Drain the priming block so the worker's first ProcessBlock
		// call reads the second block with PeekRead(-1) pointing at the
		// first.
		_, ok := realRing.ReadPtr()
		require.True(t, ok)
		realRing.ReadDone()
		done <- w.ProcessBlock()
	}()

	ok := <-done
	require.True(t, ok)

	slot, gotOk := iqRing.ReadPtr()
	require.True(t, gotOk)
	require.Len(t, slot, outLen)
	iqRing.ReadDone()
}
