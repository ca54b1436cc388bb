// Copyright 2026 The sddc-go Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package fftplan builds and caches the forward real->complex FFT plan and
// the per-decimation inverse complex plans used by the DSP worker. Plans
// are built once at session init with a measured strategy and the
// resulting timings are persisted to a well-known cache file so that a
// later run with an unchanged plan set skips re-measuring, standing in for
// FFTW wisdom persistence since the chosen FFT library is pure Go and has
// no on-disk plan format of its own.
package fftplan

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	algofft "github.com/cwbudde/algo-fft"
)

// ForwardPlan is the real->complex forward transform contract. A single
// plan is built once and reused, with Forward taking explicit source and
// destination buffers ("new-array execute" semantics) so it can be called
// safely from multiple worker goroutines without additional locking.
type ForwardPlan interface {
	Forward(dst []complex64, src []float32) error
}

// InversePlan is the in-place complex inverse transform contract.
type InversePlan struct {
	plan *algofft.Plan[complex64]
	Size int
}

// Inverse runs the inverse transform. dst and src may alias the same
// slice, matching the in-place usage of the overlap-save worker.
func (p *InversePlan) Inverse(dst, src []complex64) error {
	return p.plan.Inverse(dst, src)
}

// Cache holds the forward plan and one inverse plan per decimation index,
// all built once at session init and shared read-only for the life of the
// program.
type Cache struct {
	BaseFFTSize int
	Forward     *algofft.PlanRealT[float32, complex64]
	Inverse     []*InversePlan // indexed by decimation d
}

// wisdom is the on-disk cache format: measured build/benchmark durations
// keyed by transform length, used only to decide whether a length has
// already been measured in a previous run.
type wisdom struct {
	Sizes map[int]time.Duration `json:"sizes"`
}

// DefaultWisdomPath returns the well-known path used to persist plan
// timings across runs, under the user's cache directory.
func DefaultWisdomPath() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		dir = os.TempDir()
	}
	return filepath.Join(dir, "sddc", "fftplan.json")
}

func loadWisdom(path string) *wisdom {
	w := &wisdom{Sizes: map[int]time.Duration{}}
	data, err := os.ReadFile(path)
	if err != nil {
		return w
	}
	if err := json.Unmarshal(data, w); err != nil {
		return &wisdom{Sizes: map[int]time.Duration{}}
	}
	if w.Sizes == nil {
		w.Sizes = map[int]time.Duration{}
	}
	return w
}

func saveWisdom(path string, w *wisdom) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(w, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// measure times fn a handful of times and returns the fastest observed
// duration, mimicking a measured (not estimated) planning strategy.
func measure(fn func()) time.Duration {
	const reps = 4
	best := time.Duration(1<<63 - 1)
	for i := 0; i < reps; i++ {
		start := time.Now()
		fn()
		if d := time.Since(start); d < best {
			best = d
		}
	}
	return best
}

// New builds the forward plan of length baseFFTSize and one inverse plan
// per decimation index, with inverse length baseFFTSize/2^(d+1). wisdomPath
// is the cache file path; pass "" to use DefaultWisdomPath(). Measurement
// is skipped for any length already present in the cache file.
func New(baseFFTSize int, ndecidx int, wisdomPath string) (*Cache, error) {
	if wisdomPath == "" {
		wisdomPath = DefaultWisdomPath()
	}
	w := loadWisdom(wisdomPath)
	dirty := false

	forward, err := algofft.NewPlanReal32(baseFFTSize)
	if err != nil {
		return nil, fmt.Errorf("fftplan: forward plan size %d: %w", baseFFTSize, err)
	}
	if _, ok := w.Sizes[baseFFTSize]; !ok {
		scratchIn := make([]float32, baseFFTSize)
		scratchOut := make([]complex64, baseFFTSize/2+1)
		w.Sizes[baseFFTSize] = measure(func() {
			_ = forward.Forward(scratchOut, scratchIn)
		})
		dirty = true
	}

	inv := make([]*InversePlan, ndecidx)
	for d := 0; d < ndecidx; d++ {
		length := baseFFTSize / (1 << (d + 1))
		plan, err := algofft.NewPlan32(length)
		if err != nil {
			return nil, fmt.Errorf("fftplan: inverse plan d=%d size %d: %w", d, length, err)
		}
		if _, ok := w.Sizes[length]; !ok {
			scratch := make([]complex64, length)
			w.Sizes[length] = measure(func() {
				_ = plan.Inverse(scratch, scratch)
			})
			dirty = true
		}
		inv[d] = &InversePlan{plan: plan, Size: length}
	}

	if dirty {
		// Best-effort persistence; a failure to save does not affect
		// correctness, only whether the next run re-measures.
		_ = saveWisdom(wisdomPath, w)
	}

	return &Cache{
		BaseFFTSize: baseFFTSize,
		Forward:     forward,
		Inverse:     inv,
	}, nil
}
