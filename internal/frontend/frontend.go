// Copyright 2026 The sddc-go Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package frontend

import (
	"fmt"
	"sync"

	"github.com/sddc-go/sddc/internal/sddcerr"
)

// LedSelector names a front-end status LED.
type LedSelector int

const (
	Yellow LedSelector = iota
	Red
	Blue
)

func (l LedSelector) valid() bool {
	return l == Yellow || l == Red || l == Blue
}

// FrontEnd is the capability contract implemented by one Adapter per
// hardware model: open/close sequencing, ADC rate programming, HF/VHF
// mode selection, tuner LO programming, RF-attenuation and IF-gain step
// writes, and the bias-T/dither/PGA/randomization/LED/debug-trace
// toggles. The DSP never calls a FrontEnd; only the stream controller
// does.
type FrontEnd interface {
	// BestMode returns the signal path this model would use for the
	// given requested center frequency.
	BestMode(freqHz float64) Mode
	// SetMode drives the antenna/path-routing GPIO bits for the given
	// mode.
	SetMode(mode Mode) error
	// SetLO programs the tuner LO (or, in HF mode on models that
	// translate directly, records the equivalent carrier) and returns
	// the carrier actually achieved.
	SetLO(mode Mode, freqHz float64) (float64, error)
	// ReadbackCarrier returns the last carrier frequency applied by
	// SetLO for the given mode.
	ReadbackCarrier(mode Mode) (float64, error)
	// SetRFAttn writes an RF-attenuation step index for the given mode.
	SetRFAttn(mode Mode, step int) error
	// SetIFGain writes an IF-gain step index for the given mode.
	SetIFGain(mode Mode, step int) error
	// RFAttnSteps returns the number of RF-attenuation steps available
	// for the given mode.
	RFAttnSteps(mode Mode) int
	// IFGainSteps returns the number of IF-gain steps available for the
	// given mode.
	IFGainSteps(mode Mode) int
	// SetBoolFeature toggles a named boolean feature (bias-T HF,
	// bias-T VHF, dither, PGA, ADC randomization).
	SetBoolFeature(name string, en bool) error
	// BoolFeature reads back a named boolean feature's current value.
	BoolFeature(name string) (bool, error)
	// GetADCSampleRate returns the currently configured ADC sample rate.
	GetADCSampleRate() float64
	// SetADCSampleRate programs the ADC sample rate, validated against
	// the model's supported rate table.
	SetADCSampleRate(hz float64) error
	// SetLED sets a status LED on or off.
	SetLED(sel LedSelector, on bool) error
	// ReadDebugTrace reads back the front end's debug trace buffer.
	ReadDebugTrace() ([]byte, error)
	// Close releases any resources held by the adapter.
	Close() error
}

const (
	FeatureBiasTHF = "bias_t_hf"
	FeatureBiasTVHF = "bias_t_vhf"
	FeatureDither  = "dither"
	FeaturePGA     = "pga"
	FeatureRand    = "rand"
)

// Adapter is the single FrontEnd implementation shared by every hardware
// model, parameterized by the model's step tables and rate table,
// replacing the original virtual base class per the capability-trait
// redesign.
type Adapter struct {
	mu sync.Mutex

	model    Model
	hasVHF   bool
	rates    []float64
	gainHF   gainSteps
	gainVHF  gainSteps

	adcRate float64
	mode    Mode

	carrierHF  float64
	carrierVHF float64

	attnHF  int
	attnVHF int
	ifgHF   int
	ifgVHF  int

	features map[string]bool
	leds     map[LedSelector]bool
	closed   bool
}

// New constructs the Adapter for the given model with its default ADC
// sample rate set to the first entry in its rate table.
func New(model Model) (*Adapter, error) {
	rates := adcRates(model)
	if len(rates) == 0 {
		return nil, sddcerr.New(sddcerr.NotCompatible, fmt.Sprintf("no ADC rate table for model %v", model))
	}
	return &Adapter{
		model:   model,
		hasVHF:  hasVHF(model),
		rates:   rates,
		gainHF:  gainTable(model, ModeHF),
		gainVHF: gainTable(model, ModeVHF),
		adcRate: rates[0],
		mode:    ModeHF,
		features: map[string]bool{
			FeatureBiasTHF:  false,
			FeatureBiasTVHF: false,
			FeatureDither:   false,
			FeaturePGA:      false,
			FeatureRand:     false,
		},
		leds: map[LedSelector]bool{Yellow: false, Red: false, Blue: false},
	}, nil
}

// NewDummy constructs the Dummy variant used for loopback testing.
func NewDummy() *Adapter {
	a, err := New(Dummy)
	if err != nil {
		// adcRates(Dummy) is never empty; a non-nil error here would be
		// a programming error in this package's own tables.
		panic(err)
	}
	return a
}

func (a *Adapter) BestMode(freqHz float64) Mode {
	if !a.hasVHF {
		return ModeHF
	}
	if freqHz > 30e6 {
		return ModeVHF
	}
	return ModeHF
}

func (a *Adapter) SetMode(mode Mode) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if mode == ModeVHF && !a.hasVHF {
		return sddcerr.New(sddcerr.NotCompatible, fmt.Sprintf("model %v has no VHF path", a.model))
	}
	a.mode = mode
	return nil
}

func (a *Adapter) steps(mode Mode) gainSteps {
	if mode == ModeVHF {
		return a.gainVHF
	}
	return a.gainHF
}

func (a *Adapter) SetLO(mode Mode, freqHz float64) (float64, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if mode == ModeVHF && !a.hasVHF {
		return 0, sddcerr.New(sddcerr.NotCompatible, fmt.Sprintf("model %v has no VHF path", a.model))
	}
	if freqHz < 0 {
		return 0, sddcerr.New(sddcerr.NotCompatible, "negative LO frequency")
	}
	if mode == ModeVHF {
		a.carrierVHF = freqHz
	} else {
		a.carrierHF = freqHz
	}
	return freqHz, nil
}

func (a *Adapter) ReadbackCarrier(mode Mode) (float64, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if mode == ModeVHF {
		return a.carrierVHF, nil
	}
	return a.carrierHF, nil
}

func (a *Adapter) SetRFAttn(mode Mode, step int) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	s := a.steps(mode)
	if step < 0 || step >= len(s.rfAttnSteps) {
		return sddcerr.New(sddcerr.NotCompatible, fmt.Sprintf("rf attn step %d out of range [0,%d)", step, len(s.rfAttnSteps)))
	}
	if mode == ModeVHF {
		a.attnVHF = step
	} else {
		a.attnHF = step
	}
	return nil
}

func (a *Adapter) SetIFGain(mode Mode, step int) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	s := a.steps(mode)
	if step < 0 || step >= len(s.ifGainSteps) {
		return sddcerr.New(sddcerr.NotCompatible, fmt.Sprintf("if gain step %d out of range [0,%d)", step, len(s.ifGainSteps)))
	}
	if mode == ModeVHF {
		a.ifgVHF = step
	} else {
		a.ifgHF = step
	}
	return nil
}

func (a *Adapter) RFAttnSteps(mode Mode) int {
	return len(a.steps(mode).rfAttnSteps)
}

func (a *Adapter) IFGainSteps(mode Mode) int {
	return len(a.steps(mode).ifGainSteps)
}

func (a *Adapter) SetBoolFeature(name string, en bool) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if _, ok := a.features[name]; !ok {
		return sddcerr.New(sddcerr.NotCompatible, fmt.Sprintf("unknown feature %q", name))
	}
	a.features[name] = en
	return nil
}

func (a *Adapter) BoolFeature(name string) (bool, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	v, ok := a.features[name]
	if !ok {
		return false, sddcerr.New(sddcerr.NotCompatible, fmt.Sprintf("unknown feature %q", name))
	}
	return v, nil
}

func (a *Adapter) GetADCSampleRate() float64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.adcRate
}

func (a *Adapter) SetADCSampleRate(hz float64) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	for _, r := range a.rates {
		if r == hz {
			a.adcRate = hz
			return nil
		}
	}
	return sddcerr.New(sddcerr.NotCompatible, fmt.Sprintf("rate %g not supported by model %v", hz, a.model))
}

func (a *Adapter) SetLED(sel LedSelector, on bool) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if !sel.valid() {
		return sddcerr.New(sddcerr.NotAnLed, fmt.Sprintf("selector %d not in {Yellow,Red,Blue}", int(sel)))
	}
	a.leds[sel] = on
	return nil
}

func (a *Adapter) ReadDebugTrace() ([]byte, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.closed {
		return nil, sddcerr.New(sddcerr.TransportTransferFailed, "front end closed")
	}
	// The Dummy/Adapter path has no physical trace buffer; it reports an
	// empty trace rather than fabricating data.
	return []byte{}, nil
}

func (a *Adapter) Close() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.closed = true
	return nil
}
