// Copyright 2026 The sddc-go Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package soapyshape shapes the SDR plugin ABI contract: a "find"
// function enumerating devices, a "make" function constructing a
// single-RX-channel Device, and a ReadStream pull interface backed by
// the client sink-to-stream bridge (internal/bridge), returning the
// bridge's overflow/timeout semantics as SOAPY-style stream results.
package soapyshape

import (
	"context"
	"encoding/binary"
	"math"
	"sync"
	"time"

	"github.com/sddc-go/sddc/internal/bridge"
	"github.com/sddc-go/sddc/internal/cabi"
	"github.com/sddc-go/sddc/internal/frontend"
	"github.com/sddc-go/sddc/internal/sddcerr"
)

// FindResult mirrors the "find" function's {index, label, serial} record.
type FindResult struct {
	Index  int
	Label  string
	Serial string
}

// Find enumerates devices this driver build supports, mirroring the SDR
// plugin ABI's "find" entry point.
func Find() []FindResult {
	infos := cabi.Enumerate()
	results := make([]FindResult, len(infos))
	for i, info := range infos {
		results[i] = FindResult{Index: i, Label: info.Product, Serial: info.SerialNumber}
	}
	return results
}

// StreamResult mirrors the plugin ABI's ReadStream outcome: SOAPY_SDR_OK
// when a block of up to MTU() frames was delivered, SOAPY_SDR_OVERFLOW
// when the bridge queue overflowed since the previous read, and
// SOAPY_SDR_TIMEOUT when no block arrived before the deadline.
type StreamResult int

const (
	ResultOK StreamResult = iota
	ResultOverflow
	ResultTimeout
)

// CF32 is the sample format delivered by ReadStream: 32-bit interleaved
// complex float, matching the plugin ABI's fixed sample format.
type CF32 = complex64

// Device is a single-RX-channel SDR plugin device. MTU is fixed to the
// I/Q block size chosen at Make time.
type Device interface {
	// MTU returns the number of CF32 elements in one ReadStream result.
	MTU() int

	// SetFrequency tunes the single RX channel.
	SetFrequency(hz float64) error

	// SetSampleRate programs the ADC sample rate.
	SetSampleRate(hz float64) error

	// SetAntenna selects "HF" or "VHF".
	SetAntenna(name string) error

	// SetGain sets a named gain element ("RF" or "IF") to a step index.
	SetGain(element string, step int) error

	// SetBoolSetting sets one of SetBiasT_HF, SetBiasT_VHF, SetDither,
	// SetPGA, SetRand.
	SetBoolSetting(name string, value bool) error

	// Activate starts the stream.
	Activate(ctx context.Context) error

	// Deactivate stops the stream.
	Deactivate()

	// ReadStream blocks up to timeout for the next CF32 block.
	ReadStream(timeout time.Duration) ([]CF32, StreamResult)
}

type device struct {
	handle *cabi.Handle
	mtu    int
	q      *bridge.Queue

	mu   sync.Mutex
	mode frontend.Mode
}

// Make constructs a Device for the model at deviceIndex, wiring its
// bridge queue to the underlying handle's I/Q callback. mtu is the
// number of CF32 elements per ReadStream result, matching the I/Q block
// size chosen for the controller.
func Make(deviceIndex int, model frontend.Model, mtu int) (Device, error) {
	d := &device{mtu: mtu, q: bridge.New(mtu * 8)} // 8 bytes per CF32 (2x float32)

	h, err := cabi.Open(deviceIndex, model, cabi.AttachIQ(func(samples []complex64) {
		d.q.Push(cf32ToBytes(samples))
	}))
	if err != nil {
		return nil, err
	}
	d.handle = h
	return d, nil
}

func (d *device) MTU() int { return d.mtu }

func (d *device) SetFrequency(hz float64) error {
	return cabi.SetCenterFrequency(d.handle, hz)
}

func (d *device) SetSampleRate(hz float64) error {
	return cabi.SetADCSampleRate(d.handle, hz)
}

func (d *device) SetAntenna(name string) error {
	var mode frontend.Mode
	switch name {
	case "HF":
		mode = frontend.ModeHF
	case "VHF":
		mode = frontend.ModeVHF
	default:
		return sddcerr.New(sddcerr.NotCompatible, "unknown antenna "+name)
	}
	if err := cabi.SetRFMode(d.handle, mode); err != nil {
		return err
	}
	d.mu.Lock()
	d.mode = mode
	d.mu.Unlock()
	return nil
}

func (d *device) SetGain(element string, step int) error {
	d.mu.Lock()
	mode := d.mode
	d.mu.Unlock()

	switch element {
	case "RF":
		return cabi.SetRFAttn(d.handle, mode, step)
	case "IF":
		return cabi.SetIFGain(d.handle, mode, step)
	default:
		return sddcerr.New(sddcerr.NotCompatible, "unknown gain element "+element)
	}
}

func (d *device) SetBoolSetting(name string, value bool) error {
	switch name {
	case "SetBiasT_HF":
		return cabi.SetBiasTHF(d.handle, value)
	case "SetBiasT_VHF":
		return cabi.SetBiasTVHF(d.handle, value)
	case "SetDither":
		return cabi.SetDither(d.handle, value)
	case "SetPGA":
		return cabi.SetPGA(d.handle, value)
	case "SetRand":
		return cabi.SetRand(d.handle, value)
	default:
		return sddcerr.New(sddcerr.NotCompatible, "unknown bool setting "+name)
	}
}

func (d *device) Activate(ctx context.Context) error {
	go func() { _ = cabi.Start(ctx, d.handle, true) }()
	return nil
}

func (d *device) Deactivate() {
	cabi.Stop(d.handle)
}

// ReadStream waits up to timeout for the bridge's next slot, translating
// its overflow/timeout semantics into a StreamResult. On overflow every
// queued slot is discarded, so the bridge is empty afterwards.
func (d *device) ReadStream(timeout time.Duration) ([]CF32, StreamResult) {
	payload, overflowed, ok := d.q.Acquire(timeout)
	if !ok {
		return nil, ResultTimeout
	}
	if overflowed {
		for {
			if _, _, more := d.q.Acquire(0); !more {
				break
			}
		}
		return nil, ResultOverflow
	}
	return bytesToCF32(payload), ResultOK
}

// cf32ToBytes interleaves complex64 samples as little-endian float32 I,Q
// pairs, the wire shape the plugin ABI's fixed CF32 format specifies.
func cf32ToBytes(x []complex64) []byte {
	buf := make([]byte, len(x)*8)
	for i, v := range x {
		binary.LittleEndian.PutUint32(buf[i*8:], math.Float32bits(real(v)))
		binary.LittleEndian.PutUint32(buf[i*8+4:], math.Float32bits(imag(v)))
	}
	return buf
}

func bytesToCF32(b []byte) []CF32 {
	out := make([]CF32, len(b)/8)
	for i := range out {
		re := math.Float32frombits(binary.LittleEndian.Uint32(b[i*8:]))
		im := math.Float32frombits(binary.LittleEndian.Uint32(b[i*8+4:]))
		out[i] = complex(re, im)
	}
	return out
}
