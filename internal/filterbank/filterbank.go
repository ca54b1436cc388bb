// Copyright 2026 The sddc-go Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package filterbank builds the precomputed frequency-domain low-pass
// filter kernels used by the DSP worker, one per decimation level.
package filterbank

import (
	"fmt"

	algofft "github.com/cwbudde/algo-fft"
)

const (
	// StopBandAttenuationDB is the design stop-band attenuation target.
	StopBandAttenuationDB = 120
	// PassBandFraction and StopBandFraction define the filter edges as a
	// fraction of fs/2^(d+1) per decimation level.
	PassBandFraction = 0.85
	StopBandFraction = 1.10
)

// Bank is the set of precomputed complex frequency-domain kernels, one
// per decimation index, each of length HalfFFT.
type Bank struct {
	HalfFFT int
	Kernels [][]complex64 // Kernels[d], len(Kernels[d]) == HalfFFT
}

// Build constructs the filter bank for the given ADC sample rate fs, the
// model-specific ADC->dBFS gain scale, and baseFFTSize (halfFFT =
// baseFFTSize/2). It is called once at session init; the result is
// immutable thereafter.
func Build(fs float64, gain float64, baseFFTSize int, ndecidx int) (*Bank, error) {
	if baseFFTSize <= 0 || baseFFTSize%2 != 0 {
		return nil, fmt.Errorf("filterbank: invalid baseFFTSize %d", baseFFTSize)
	}
	halfFFT := baseFFTSize / 2
	numTaps := halfFFT/4 + 1

	plan, err := algofft.NewPlan32(halfFFT)
	if err != nil {
		return nil, fmt.Errorf("filterbank: fft plan size %d: %w", halfFFT, err)
	}

	beta := kaiserBeta(StopBandAttenuationDB)
	window := kaiserWindow(numTaps, beta)
	normalize := gain * 2048 / float64(baseFFTSize)

	kernels := make([][]complex64, ndecidx)
	for d := 0; d < ndecidx; d++ {
		decFs := fs / float64(uint64(1)<<uint(d+1))
		passHz := PassBandFraction * decFs
		stopHz := StopBandFraction * decFs
		cutoffHz := (passHz + stopHz) / 2
		fc := cutoffHz / fs

		taps := sincLowpass(numTaps, fc)
		for i := range taps {
			taps[i] *= window[i] * normalize
		}

		buf := make([]complex64, halfFFT)
		// Place taps at the high end of the zero-padded buffer so the
		// impulse response is causal and symmetric about the Nyquist
		// center of the truncated DFT.
		offset := halfFFT - numTaps
		for i, v := range taps {
			buf[offset+i] = complex(float32(v), 0)
		}

		out := make([]complex64, halfFFT)
		if err := plan.Forward(out, buf); err != nil {
			return nil, fmt.Errorf("filterbank: fft forward d=%d: %w", d, err)
		}
		kernels[d] = out
	}

	return &Bank{HalfFFT: halfFFT, Kernels: kernels}, nil
}
