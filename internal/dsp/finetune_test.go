// Copyright 2026 The sddc-go Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package dsp

import (
	"math"
	"math/cmplx"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFineTuneBypassIsNoop(t *testing.T) {
	ft := NewFineTune()
	buf := []complex64{1 + 2i, 3 - 1i, 0.5 + 0.5i}
	want := append([]complex64(nil), buf...)
	ft.Apply(buf)
	require.Equal(t, want, buf)
}

func TestFineTuneRotatesAtResidualRate(t *testing.T) {
	ft := NewFineTune()
	ft.SetResidual(math.Pi / 2)

	buf := make([]complex64, 4)
	for i := range buf {
		buf[i] = 1
	}
	ft.Apply(buf)

	for i, v := range buf {
		want := cmplx.Rect(1, float64(i)*math.Pi/2)
		got := complex128(v)
		require.InDeltaf(t, real(want), real(got), 1e-5, "sample %d real", i)
		require.InDeltaf(t, imag(want), imag(got), 1e-5, "sample %d imag", i)
	}
}

func TestFineTunePhaseContinuesAcrossCalls(t *testing.T) {
	ft := NewFineTune()
	ft.SetResidual(0.3)

	a := make([]complex64, 5)
	for i := range a {
		a[i] = 1
	}
	ft.Apply(a)

	b := make([]complex64, 1)
	b[0] = 1
	ft.Apply(b)

	want := cmplx.Rect(1, 5*0.3)
	got := complex128(b[0])
	require.InDelta(t, real(want), real(got), 1e-4)
	require.InDelta(t, imag(want), imag(got), 1e-4)
}

func TestQuantizeCenterBin(t *testing.T) {
	require.Equal(t, 0, QuantizeCenterBin(1, 8192))
	require.Equal(t, 4, QuantizeCenterBin(3, 8192))
	require.Equal(t, 4096, QuantizeCenterBin(100000, 8192))
	require.Equal(t, 0, QuantizeCenterBin(-5, 8192))
}

func TestResidualFromCenterZeroWhenExact(t *testing.T) {
	const fs = 64e6
	const baseFFT = 8192
	binHz := fs / baseFFT
	centerBin := 100
	requested := float64(centerBin) * binHz
	r := ResidualFromCenter(requested, fs, baseFFT, 0, centerBin)
	require.InDelta(t, 0, r, 1e-9)
}
