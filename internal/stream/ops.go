// Copyright 2026 The sddc-go Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package stream

import (
	"fmt"

	"github.com/sddc-go/sddc/internal/dsp"
	"github.com/sddc-go/sddc/internal/frontend"
	"github.com/sddc-go/sddc/internal/sddcerr"
)

// SetCenterFrequency routes to the active-mode front-end LO setter,
// reads back the achieved carrier, and updates the DSP's center bin and
// the fine-tune mixer's residual, all under the fc mutex.
func (c *Controller) SetCenterFrequency(freqHz float64) error {
	c.fcMu.Lock()
	defer c.fcMu.Unlock()

	mode := c.fe.BestMode(freqHz)
	if _, err := c.fe.SetLO(mode, freqHz); err != nil {
		return err
	}
	carrier, err := c.fe.ReadbackCarrier(mode)
	if err != nil {
		return err
	}
	c.lastCarrier = carrier

	fs := c.fe.GetADCSampleRate()
	offset := carrier / (fs / 2)
	rawBin := int(offset * float64(dsp.BaseFFTSize/2))
	centerBin := dsp.QuantizeCenterBin(rawBin, dsp.BaseFFTSize)

	c.params.Lock()
	p := c.params.LoadLocked()
	p.CenterBin = centerBin
	c.params.StoreLocked(p)
	c.params.Unlock()

	residual := dsp.ResidualFromCenter(carrier, fs, dsp.BaseFFTSize, p.Dec, centerBin)
	if p.LSB {
		residual = -residual
	}
	c.fine.SetResidual(residual)
	return nil
}

// SetDecimation validates d against NDecIdx and applies it, taking
// effect on the next block a worker samples.
func (c *Controller) SetDecimation(d uint8) error {
	if int(d) >= dsp.NDecIdx {
		return sddcerr.New(sddcerr.DecimationOutOfRange, fmt.Sprintf("decimation %d out of range [0,%d)", d, dsp.NDecIdx))
	}
	c.params.Lock()
	defer c.params.Unlock()
	p := c.params.LoadLocked()
	p.Dec = d
	c.params.StoreLocked(p)
	return nil
}

// GetDecimation returns the currently configured decimation index.
func (c *Controller) GetDecimation() uint8 {
	return c.params.Load().Dec
}

// SetRFMode drives the front end's mode and toggles the DSP's sideband
// flag (LSB when VHF).
func (c *Controller) SetRFMode(mode frontend.Mode) error {
	if err := c.fe.SetMode(mode); err != nil {
		return err
	}
	c.params.Lock()
	defer c.params.Unlock()
	p := c.params.LoadLocked()
	p.LSB = mode == frontend.ModeVHF
	c.params.StoreLocked(p)

	c.mu.Lock()
	c.mode = mode
	c.mu.Unlock()
	return nil
}

// GetRFMode returns the currently configured RF mode.
func (c *Controller) GetRFMode() frontend.Mode {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.mode
}

// SetADCSampleRate delegates to the front-end adapter.
func (c *Controller) SetADCSampleRate(hz float64) error {
	return c.fe.SetADCSampleRate(hz)
}

// GetADCSampleRate delegates to the front-end adapter.
func (c *Controller) GetADCSampleRate() float64 {
	return c.fe.GetADCSampleRate()
}

// SetRand delegates to the front-end adapter's ADC randomization
// feature and keeps the DSP's derandomization flag in sync, since the
// DSP must undo the same randomization the front end applies.
func (c *Controller) SetRand(en bool) error {
	if err := c.fe.SetBoolFeature(frontend.FeatureRand, en); err != nil {
		return err
	}
	c.params.Lock()
	defer c.params.Unlock()
	p := c.params.LoadLocked()
	p.Rand = en
	c.params.StoreLocked(p)
	return nil
}

// SetBiasTHF, SetBiasTVHF, SetDither, SetPGA delegate directly to the
// front-end adapter's boolean features.
func (c *Controller) SetBiasTHF(en bool) error  { return c.fe.SetBoolFeature(frontend.FeatureBiasTHF, en) }
func (c *Controller) SetBiasTVHF(en bool) error { return c.fe.SetBoolFeature(frontend.FeatureBiasTVHF, en) }
func (c *Controller) SetDither(en bool) error   { return c.fe.SetBoolFeature(frontend.FeatureDither, en) }
func (c *Controller) SetPGA(en bool) error      { return c.fe.SetBoolFeature(frontend.FeaturePGA, en) }

// SetRFAttn and SetIFGain delegate to the front-end adapter for the
// currently active mode.
func (c *Controller) SetRFAttn(mode frontend.Mode, step int) error {
	return c.fe.SetRFAttn(mode, step)
}

func (c *Controller) SetIFGain(mode frontend.Mode, step int) error {
	return c.fe.SetIFGain(mode, step)
}
