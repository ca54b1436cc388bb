// Copyright 2026 The sddc-go Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package cabi shapes the client-facing C ABI contract without exporting
// any cgo symbols: device enumeration, a handle, callback attachment, and
// getter/setter pairs mirroring internal/stream.Controller's operations.
// It exists so a future cgo-exported shim has a stable, already-tested Go
// surface to wrap, and so the cmd/ harnesses can call through that same
// surface today.
package cabi

import (
	"context"

	"github.com/sddc-go/sddc/internal/frontend"
	"github.com/sddc-go/sddc/internal/sddcerr"
	"github.com/sddc-go/sddc/internal/stream"
)

// DeviceInfo mirrors the {product[32], serial_number[32]} enumeration
// record from the client C ABI contract.
type DeviceInfo struct {
	Product      string
	SerialNumber string
}

// Handle is an opaque reference to an initialized driver instance, taking
// the place of the C ABI's device handle.
type Handle struct {
	index int
	ctrl  *stream.Controller
}

// IQCallback mirrors the C callback prototype
// (void* ctx, const complex64* samples, uint32_t count), with ctx bound by
// closure instead of passed explicitly.
type IQCallback func(samples []complex64)

// RealCallback mirrors the int16 real-sample callback prototype.
type RealCallback func(samples []int16)

// AttachIQ mirrors attach_iq(cb, ctx): it registers the single I/Q sink
// callback. Must be passed to Open before the handle is created, since
// the underlying controller binds its callback at construction.
func AttachIQ(cb IQCallback) stream.ConfigFn {
	return stream.WithIQCallback(func(_ context.Context, samples []complex64) { cb(samples) })
}

// AttachReal mirrors attach_real(cb, ctx): it registers the single
// real-sample sink callback.
func AttachReal(cb RealCallback) stream.ConfigFn {
	return stream.WithRealCallback(func(_ context.Context, samples []int16) { cb(samples) })
}

// Enumerate returns one DeviceInfo per front-end model this driver build
// supports. A real C ABI would probe attached hardware; this shape
// package has no transport, so it reports the compiled-in model set plus
// the Dummy loopback model used by tests.
func Enumerate() []DeviceInfo {
	models := []frontend.Model{
		frontend.HF103,
		frontend.BBRF103,
		frontend.RX888,
		frontend.RX888R2,
		frontend.RX888R3,
		frontend.RX999,
		frontend.Lucy,
		frontend.Dummy,
	}
	infos := make([]DeviceInfo, len(models))
	for i, m := range models {
		infos[i] = DeviceInfo{Product: m.String(), SerialNumber: "0000000000"}
	}
	return infos
}

// Open mirrors handle creation followed by device-index initialization:
// it opens the front end for model at deviceIndex, sizes the rings, and
// builds the filter bank and FFT plans, returning a Handle ready to have
// callbacks attached and the stream started.
func Open(deviceIndex int, model frontend.Model, fns ...stream.ConfigFn) (*Handle, error) {
	opts := append([]stream.ConfigFn{
		stream.WithFrontEnd(func() (frontend.FrontEnd, error) {
			if model == frontend.Dummy {
				return frontend.NewDummy(), nil
			}
			return frontend.New(model)
		}),
	}, fns...)

	ctrl, err := stream.NewController(opts...)
	if err != nil {
		return nil, err
	}
	if err := ctrl.Init(); err != nil {
		return nil, err
	}
	return &Handle{index: deviceIndex, ctrl: ctrl}, nil
}

// Start mirrors start(convert_iq): idempotent restart, streaming I/Q
// when convertIQ is true and raw real samples otherwise.
func Start(ctx context.Context, h *Handle, convertIQ bool) error {
	return h.ctrl.Start(ctx, convertIQ)
}

// Stop mirrors stop(): idempotent.
func Stop(h *Handle) {
	h.ctrl.Stop()
}

// SetCenterFrequency mirrors set_center_frequency(freq).
func SetCenterFrequency(h *Handle, freqHz float64) error {
	return h.ctrl.SetCenterFrequency(freqHz)
}

// SetDecimation mirrors set_decimation(d); errors with
// sddcerr.DecimationOutOfRange for d outside [0, NDecIdx).
func SetDecimation(h *Handle, d uint8) error {
	return h.ctrl.SetDecimation(d)
}

// SetRFMode mirrors set_rf_mode(mode).
func SetRFMode(h *Handle, mode frontend.Mode) error {
	return h.ctrl.SetRFMode(mode)
}

// SetADCSampleRate mirrors set_adc_sample_rate.
func SetADCSampleRate(h *Handle, rateHz float64) error {
	return h.ctrl.SetADCSampleRate(rateHz)
}

// GetADCSampleRate is the getter half of the set_adc_sample_rate pair.
func GetADCSampleRate(h *Handle) float64 {
	return h.ctrl.GetADCSampleRate()
}

// SetRand mirrors set_rand.
func SetRand(h *Handle, enabled bool) error {
	return h.ctrl.SetRand(enabled)
}

// SetBiasTHF mirrors set_bias_t_hf.
func SetBiasTHF(h *Handle, enabled bool) error {
	return h.ctrl.SetBiasTHF(enabled)
}

// SetBiasTVHF mirrors set_bias_t_vhf.
func SetBiasTVHF(h *Handle, enabled bool) error {
	return h.ctrl.SetBiasTVHF(enabled)
}

// SetDither mirrors set_dither.
func SetDither(h *Handle, enabled bool) error {
	return h.ctrl.SetDither(enabled)
}

// SetPGA mirrors set_gain("IF"-adjacent PGA toggle in the source driver).
func SetPGA(h *Handle, enabled bool) error {
	return h.ctrl.SetPGA(enabled)
}

// SetRFAttn mirrors set_gain("RF") for the given mode.
func SetRFAttn(h *Handle, mode frontend.Mode, stepIndex int) error {
	return h.ctrl.SetRFAttn(mode, stepIndex)
}

// SetIFGain mirrors set_gain("IF") for the given mode.
func SetIFGain(h *Handle, mode frontend.Mode, stepIndex int) error {
	return h.ctrl.SetIFGain(mode, stepIndex)
}

// LastError adapts a *sddcerr.Error into the closed error enum returned
// by every fallible C ABI operation. A nil error maps to Success with ok
// true; ok is false only for an error that is not an *sddcerr.Error.
func LastError(err error) (kind sddcerr.Kind, ok bool) {
	if err == nil {
		return sddcerr.Success, true
	}
	e, isSddcErr := err.(*sddcerr.Error)
	if !isSddcErr {
		return sddcerr.Success, false
	}
	return e.Kind, true
}
