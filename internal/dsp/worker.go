// Copyright 2026 The sddc-go Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package dsp

import (
	"fmt"

	"github.com/sddc-go/sddc/internal/fftplan"
	"github.com/sddc-go/sddc/internal/filterbank"
	"github.com/sddc-go/sddc/internal/ring"
)

// Worker consumes real ADC blocks from the real ring and emits tuned,
// filtered, decimated I/Q blocks to the I/Q ring, implementing the
// overlap-save algorithm described in the DSP worker component design.
type Worker struct {
	realRing *ring.Buffer[int16]
	iqRing   *ring.Buffer[complex64]
	filters  *filterbank.Bank
	plans    *fftplan.Cache
	params   *ParamStore
	fineTune *FineTune

	inputBlockSize int

	scratchTime []float32   // len inputBlockSize + BaseFFTScrapSize
	fwdOut      []complex64 // len BaseFFTSize/2+1
	freqScratch []complex64 // len up to filters.HalfFFT, reused per window
	invTime     []float32   // unused placeholder for symmetry with C-side scratch layout

	outSlot       []complex64
	outPos        int
	blocksInCycle int
}

// NewWorker creates a Worker bound to the given rings, filter bank, FFT
// plan cache, and shared parameter store. inputBlockSize is the real
// ring's configured block size B and must be a multiple of
// (BaseFFTSize - BaseFFTScrapSize).
func NewWorker(realRing *ring.Buffer[int16], iqRing *ring.Buffer[complex64], filters *filterbank.Bank, plans *fftplan.Cache, params *ParamStore, fineTune *FineTune) (*Worker, error) {
	b := realRing.BlockSize()
	windowStride := BaseFFTSize - BaseFFTScrapSize
	if b <= 0 || b%windowStride != 0 {
		return nil, fmt.Errorf("dsp: input block size %d must be a positive multiple of %d", b, windowStride)
	}
	if fineTune == nil {
		fineTune = NewFineTune()
	}
	return &Worker{
		realRing:       realRing,
		iqRing:         iqRing,
		filters:        filters,
		plans:          plans,
		params:         params,
		fineTune:       fineTune,
		inputBlockSize: b,
		scratchTime:    make([]float32, b+BaseFFTScrapSize),
		fwdOut:         make([]complex64, BaseFFTSize/2+1),
		freqScratch:    make([]complex64, filters.HalfFFT),
	}, nil
}

// windowsPerBlock returns M, the number of forward-FFT windows processed
// per input block.
func (w *Worker) windowsPerBlock() int {
	return w.inputBlockSize / (BaseFFTSize - BaseFFTScrapSize)
}

// adcDerandomize undoes the vendor ADC randomization scheme: any sample
// with LSB=1 is XOR'd with -2.
func adcDerandomize(v int16) int16 {
	if v&1 == 1 {
		return v ^ int16(-2)
	}
	return v
}

// assembleInput copies the last BaseFFTScrapSize samples of the previous
// real block (via PeekRead(-1)) followed by the current block into the
// worker's time-domain scratch buffer, undoing ADC randomization if
// enabled, and releases the current read slot.
func (w *Worker) assembleInput(rand bool) bool {
	w.params.Lock()
	cur, ok := w.realRing.ReadPtr()
	if !ok {
		w.params.Unlock()
		return false
	}
	prev := w.realRing.PeekRead(-1)
	w.params.Unlock()

	convert := func(dst []float32, src []int16) {
		for i, v := range src {
			if rand {
				v = adcDerandomize(v)
			}
			dst[i] = float32(v)
		}
	}

	scrapStart := len(prev) - BaseFFTScrapSize
	if scrapStart < 0 {
		scrapStart = 0
	}
	convert(w.scratchTime[:BaseFFTScrapSize], prev[scrapStart:])
	convert(w.scratchTime[BaseFFTScrapSize:], cur)

	w.realRing.ReadDone()
	return true
}

// ProcessBlock runs one full iteration of the overlap-save algorithm over
// one input block, producing zero or one completed output slot write. It
// returns false if the real ring was stopped before a block was
// available.
func (w *Worker) ProcessBlock() bool {
	p := w.params.Load()

	if !w.assembleInput(p.Rand) {
		return false
	}

	invPlan := w.plans.Inverse[p.Dec]
	invLen := invPlan.Size
	h := invLen / 2
	scrapD := (BaseFFTScrapSize / 2) >> p.Dec
	outLen := invLen - scrapD

	if w.outSlot == nil {
		slot, ok := w.iqRing.WritePtr()
		if !ok {
			return false
		}
		w.outSlot = slot
		w.outPos = 0
	}

	stride := BaseFFTSize - BaseFFTScrapSize
	windowBuf := make([]complex64, invLen)
	for k := 0; k < w.windowsPerBlock(); k++ {
		off := k * stride
		if err := w.plans.Forward.Forward(w.fwdOut, w.scratchTime[off:off+BaseFFTSize]); err != nil {
			// Allocation-time failures are fatal per the error handling
			// policy; a runtime forward-FFT failure here indicates a
			// fixed-size contract violation, not a recoverable condition.
			panic(fmt.Sprintf("dsp: forward fft failed: %v", err))
		}

		applyTuneFilter(windowBuf, w.fwdOut, w.filters.Kernels[p.Dec], p.CenterBin, h, w.filters.HalfFFT)

		if err := invPlan.Inverse(windowBuf, windowBuf); err != nil {
			panic(fmt.Sprintf("dsp: inverse fft failed: %v", err))
		}

		kept := windowBuf[scrapD:]
		if p.LSB {
			for i, v := range kept {
				kept[i] = complex(real(v), -imag(v))
			}
		}
		w.fineTune.Apply(kept)
		if w.outPos+len(kept) > len(w.outSlot) {
			// Defensive clamp: a correctly sized I/Q ring never hits
			// this, but never overrun the caller's slot.
			kept = kept[:len(w.outSlot)-w.outPos]
		}
		copy(w.outSlot[w.outPos:], kept)
		w.outPos += len(kept)
		_ = outLen
	}

	w.blocksInCycle++
	if w.blocksInCycle >= (1 << p.Dec) {
		w.iqRing.WriteDone()
		w.outSlot = nil
		w.blocksInCycle = 0
	}
	return true
}

// Run drives ProcessBlock in a loop until the real ring is stopped.
func (w *Worker) Run() {
	for w.ProcessBlock() {
	}
}

// applyTuneFilter implements step 3 of the per-block algorithm: a
// circular shift of the forward spectrum X by c bins (placing the tuned
// passband at DC), multiplied by the pre-stored complex filter response,
// truncated to 2H bins. out must have length 2*h.
func applyTuneFilter(out, x, filt []complex64, c, h, halfFFT int) {
	for i := range out {
		out[i] = 0
	}

	upperCount := halfFFT - c
	if h < upperCount {
		upperCount = h
	}
	for i := 0; i < upperCount; i++ {
		b := c + i
		if b < 0 || b > halfFFT {
			continue
		}
		out[i] = x[b] * filt[i]
	}

	dstStart := h
	if gap := h - c; gap > 0 {
		dstStart += gap
	}
	b0 := c - h
	if b0 < 0 {
		b0 = 0
	}
	for b := b0; b < halfFFT; b++ {
		dst := dstStart + (b - b0)
		if dst >= 2*h {
			break
		}
		filtIdx := b - (c - h) + (halfFFT - h)
		if filtIdx < 0 || filtIdx >= halfFFT {
			continue
		}
		out[dst] = x[b] * filt[filtIdx]
	}
}
