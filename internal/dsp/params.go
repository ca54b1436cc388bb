// Copyright 2026 The sddc-go Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package dsp implements the overlap-save frequency-domain tuning,
// filtering, and decimation engine (the DSP worker) and the fine-tune
// post-mixer that runs on its output before sink delivery.
package dsp

import "sync"

const (
	// BaseFFTSize is the length of the forward real->complex FFT.
	BaseFFTSize = 8192
	// BaseFFTScrapSize is the overlap-save carry length, in samples, at
	// the full (undecimated) FFT rate.
	BaseFFTScrapSize = 1024
	// NDecIdx is the number of supported decimation levels.
	NDecIdx = 7
	// NMaxR2IQThreads is the upper limit on concurrent DSP worker
	// goroutines. Only K=1 delivers in-order I/Q output. The stream
	// controller always starts exactly one worker and does not read this
	// constant.
	NMaxR2IQThreads = 4
)

// Params is the DSP parameter block shared across worker goroutines: read
// at the start of every block, written only by the stream controller.
type Params struct {
	Dec       uint8 // decimation index, 0..NDecIdx-1
	LSB       bool  // lower sideband: negate Q on output
	Rand      bool  // ADC randomization is enabled upstream and must be undone
	CenterBin int   // center_frequency_bin, a multiple of 4 in [0, BaseFFTSize/2]
}

// ParamStore guards the DSP parameter block behind a dedicated mutex
// (mirroring mutexR2iqControl from the reference design). The controller
// holds it across each read-modify-write of the block, and the worker
// holds it across its ReadPtr/PeekRead(-1) pair of input slots; the
// worker takes its parameter snapshot with Load just before that pair.
type ParamStore struct {
	mu sync.Mutex
	p  Params
}

// NewParamStore creates a ParamStore with the given initial parameters.
func NewParamStore(p Params) *ParamStore {
	return &ParamStore{p: p}
}

// Load returns a snapshot of the current parameters.
func (s *ParamStore) Load() Params {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.p
}

// Store replaces the current parameters, taking effect on the next block
// a worker samples.
func (s *ParamStore) Store(p Params) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.p = p
}

// Lock acquires the parameter mutex so a caller can pair a parameter read
// with a consistent ring read-slot acquisition (PeekRead(-1)).
func (s *ParamStore) Lock() { s.mu.Lock() }

// Unlock releases the parameter mutex.
func (s *ParamStore) Unlock() { s.mu.Unlock() }

// LoadLocked returns the current parameters without acquiring the mutex.
// Callers must hold the mutex (via Lock) themselves.
func (s *ParamStore) LoadLocked() Params {
	return s.p
}

// StoreLocked replaces the current parameters without acquiring the
// mutex. Callers must hold the mutex (via Lock) themselves.
func (s *ParamStore) StoreLocked(p Params) {
	s.p = p
}
