// Copyright 2026 The sddc-go Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package dsp

import (
	"math"
	"sync"
)

// FineTune corrects the residual sub-bin frequency error left over from
// the integer-bin circular shift performed by the tune/filter/decimate
// step. CenterBin is quantized to multiples of 4 bins; FineTune rotates
// each output I/Q sample by a running complex phasor to cancel the
// remaining fractional-bin offset.
type FineTune struct {
	mu       sync.Mutex
	residual float64 // radians/sample
	phase    float64 // current accumulated phase, radians
	bypass   bool
}

// NewFineTune creates a FineTune mixer with zero residual (bypass).
func NewFineTune() *FineTune {
	return &FineTune{bypass: true}
}

// SetResidual sets the residual angular frequency in radians per output
// sample (2*pi*residualHz/outputRate). A zero residual puts the mixer in
// bypass mode, where Apply is a no-op.
func (f *FineTune) SetResidual(radiansPerSample float64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.residual = radiansPerSample
	f.bypass = radiansPerSample == 0
}

// Apply rotates buf in place by the running phasor, advancing the
// internal phase by len(buf) samples. It is a no-op in bypass mode.
func (f *FineTune) Apply(buf []complex64) {
	f.mu.Lock()
	residual := f.residual
	bypass := f.bypass
	phase := f.phase
	f.mu.Unlock()

	if bypass {
		return
	}

	for i, v := range buf {
		s, c := math.Sincos(phase)
		rot := complex(float32(c), float32(s))
		buf[i] = v * rot
		phase += residual
		if phase > math.Pi {
			phase -= 2 * math.Pi
		} else if phase < -math.Pi {
			phase += 2 * math.Pi
		}
		_ = i
	}

	f.mu.Lock()
	f.phase = phase
	f.mu.Unlock()
}

// ResidualFromCenter computes the rotation, in radians per output
// sample, that cancels the offset introduced by quantizing the requested
// center frequency to the nearest multiple-of-4 FFT bin: the applied bin
// frequency minus the requested frequency. fs is the ADC
// sample rate, baseFFTSize the forward FFT length, dec the active
// decimation index, and centerBin the quantized bin actually applied by
// the tune step.
func ResidualFromCenter(requestedHz, fs float64, baseFFTSize int, dec uint8, centerBin int) float64 {
	binHz := fs / float64(baseFFTSize)
	appliedHz := float64(centerBin) * binHz
	errHz := appliedHz - requestedHz
	outputRate := fs / float64(uint64(1)<<uint(dec+1))
	return 2 * math.Pi * errHz / outputRate
}

// QuantizeCenterBin rounds a raw FFT bin to the nearest multiple of 4,
// clamped to [0, baseFFTSize/2], matching the coarse tuning step's
// quantization.
func QuantizeCenterBin(rawBin, baseFFTSize int) int {
	const quantum = 4
	q := ((rawBin + quantum/2) / quantum) * quantum
	if q < 0 {
		q = 0
	}
	if max := baseFFTSize / 2; q > max {
		q = max
	}
	return q
}
