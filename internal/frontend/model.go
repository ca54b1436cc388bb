// Copyright 2026 The sddc-go Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package frontend implements the front-end adapter capability contract:
// one variant per supported hardware model, dispatched through
// switch-on-Model helper functions rather than a virtual class
// hierarchy, directly grounded on the teacher's session/lna.go
// (GetMaxLNAState) and session/devcfg.go switch-on-HWVer idiom.
package frontend

import "fmt"

// Model identifies a supported front-end hardware variant.
type Model int

const (
	HF103 Model = iota
	BBRF103
	RX888
	RX888R2
	RX888R3
	RX999
	Lucy
	Dummy
)

func (m Model) String() string {
	switch m {
	case HF103:
		return "HF103"
	case BBRF103:
		return "BBRF103"
	case RX888:
		return "RX888"
	case RX888R2:
		return "RX888R2"
	case RX888R3:
		return "RX888R3"
	case RX999:
		return "RX999"
	case Lucy:
		return "Lucy"
	case Dummy:
		return "Dummy"
	default:
		return fmt.Sprintf("Model(%d)", int(m))
	}
}

// Mode selects the active signal path.
type Mode int

const (
	ModeHF Mode = iota
	ModeVHF
)

func (m Mode) String() string {
	if m == ModeVHF {
		return "VHF"
	}
	return "HF"
}

// gainSteps describes one model's RF-attenuation or IF-gain step table
// for one mode, in dB per step index, matching the way the
// teacher's session/lna.go ties a step count to a device/frequency
// combination.
type gainSteps struct {
	rfAttnSteps []float64 // cumulative dB per step index
	ifGainSteps []float64
}

// hasVHF reports whether a model has a distinct VHF signal path.
func hasVHF(m Model) bool {
	switch m {
	case HF103, Dummy:
		return false
	default:
		return true
	}
}

// adcRates returns the model's supported ADC sample rates in Hz, mirroring
// the richer crystal-derived rate tables the original firmware control
// surface provides, the way the teacher's session/rate.go
// GetEffectiveSampleRate ties a rate to a device.
func adcRates(m Model) []float64 {
	switch m {
	case HF103, BBRF103:
		return []float64{64e6}
	case RX888:
		return []float64{64e6, 103.68e6, 120e6, 130e6}
	case RX888R2, RX888R3:
		return []float64{64e6, 103.68e6, 120e6, 130e6, 135e6}
	case RX999:
		return []float64{64e6, 80e6}
	case Lucy:
		return []float64{64e6}
	case Dummy:
		return []float64{1e6, 2e6, 8e6, 64e6}
	default:
		return nil
	}
}

// gainTable returns the RF-attenuation and IF-gain step tables for the
// given model and mode. VHF-mode attenuation always uses the VHF-specific
// table here: the source driver this is grounded on forwards VHF
// attenuation requests to the HF table, which the design notes call out
// as a bug; this implementation routes to the VHF table instead.
func gainTable(m Model, mode Mode) gainSteps {
	step := func(n int, unit float64) []float64 {
		s := make([]float64, n)
		for i := range s {
			s[i] = float64(i) * unit
		}
		return s
	}

	switch m {
	case HF103, Dummy:
		return gainSteps{
			rfAttnSteps: step(10, 1.0),
			ifGainSteps: step(16, 1.5),
		}
	case BBRF103:
		return gainSteps{
			rfAttnSteps: step(8, 2.0),
			ifGainSteps: step(16, 1.5),
		}
	case RX888, RX888R2, RX888R3:
		if mode == ModeVHF {
			return gainSteps{
				rfAttnSteps: step(29, 1.0),
				ifGainSteps: step(16, 1.5),
			}
		}
		return gainSteps{
			rfAttnSteps: step(10, 1.0),
			ifGainSteps: step(16, 1.5),
		}
	case RX999:
		if mode == ModeVHF {
			return gainSteps{
				rfAttnSteps: step(32, 1.0),
				ifGainSteps: step(16, 1.5),
			}
		}
		return gainSteps{
			rfAttnSteps: step(10, 1.0),
			ifGainSteps: step(16, 1.5),
		}
	case Lucy:
		return gainSteps{
			rfAttnSteps: step(20, 1.0),
			ifGainSteps: step(16, 1.5),
		}
	default:
		return gainSteps{}
	}
}
