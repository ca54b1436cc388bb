// Copyright 2026 The sddc-go Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package stream

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/sddc-go/sddc/helpers/callback"
	"github.com/sddc-go/sddc/helpers/event"
	"github.com/sddc-go/sddc/internal/dsp"
	"github.com/sddc-go/sddc/internal/frontend"
)

func dummyOpener() (frontend.FrontEnd, error) {
	a := frontend.NewDummy()
	if err := a.SetADCSampleRate(8e6); err != nil {
		return nil, err
	}
	return a, nil
}

// TestControllerBuildsRingsAndPlans exercises the init operation: the
// front end opens, the filter bank and FFT plans build, and the rings
// are sized transferSamples/transferSamples/2, per the stream controller
// design.
func TestControllerBuildsRingsAndPlans(t *testing.T) {
	c, err := NewController(WithFrontEnd(dummyOpener))
	require.NoError(t, err)
	require.NoError(t, c.Init())

	require.Equal(t, c.transferSamples, c.realRing.BlockSize())
	require.Equal(t, c.transferSamples/2, c.iqRing.BlockSize())
	require.Len(t, c.plans.Inverse, dsp.NDecIdx)
	require.Len(t, c.filters.Kernels, dsp.NDecIdx)
}

// TestControllerDeliversIQBlocks drives the real producer directly
// (simulating the USB transport) and verifies the sink-delivery
// goroutine invokes the registered I/Q callback, exercising an S1/S2
// style loopback scenario through the Dummy front end.
func TestControllerDeliversIQBlocks(t *testing.T) {
	var delivered atomic.Int64

	c, err := NewController(
		WithFrontEnd(dummyOpener),
		WithIQCallback(func(ctx context.Context, samples []complex64) {
			delivered.Add(1)
		}),
	)
	require.NoError(t, err)
	require.NoError(t, c.Init())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	started := make(chan struct{})
	go func() {
		close(started)
		_ = c.Start(ctx, true)
	}()
	<-started
	time.Sleep(10 * time.Millisecond) // let Start's goroutines arm

	stride := dsp.BaseFFTSize - dsp.BaseFFTScrapSize
	for i := 0; i < 3; i++ {
		slot, ok := c.realRing.WritePtr()
		require.True(t, ok)
		require.Len(t, slot, stride*(c.transferSamples/stride))
		for j := range slot {
			slot[j] = int16(j % 100)
		}
		c.realRing.WriteDone()
	}

	require.Eventually(t, func() bool {
		return delivered.Load() > 0
	}, 2*time.Second, 10*time.Millisecond)

	c.Stop()
}

// TestSetDecimationValidation exercises the NDecIdx bounds check and the
// set_decimation/get_decimation round-trip law.
func TestSetDecimationValidation(t *testing.T) {
	c, err := NewController(WithFrontEnd(dummyOpener))
	require.NoError(t, err)
	require.NoError(t, c.Init())

	for d := uint8(0); d < dsp.NDecIdx; d++ {
		require.NoError(t, c.SetDecimation(d))
		require.Equal(t, d, c.GetDecimation())
	}
	require.Error(t, c.SetDecimation(uint8(dsp.NDecIdx)))
}

// TestSetRFModeRoundTrip exercises the set_rf_mode/get_rf_mode round-trip
// law for HF, the only mode the Dummy front end reports as compatible.
func TestSetRFModeRoundTrip(t *testing.T) {
	c, err := NewController(WithFrontEnd(dummyOpener))
	require.NoError(t, err)
	require.NoError(t, c.Init())

	require.NoError(t, c.SetRFMode(frontend.ModeHF))
	require.Equal(t, frontend.ModeHF, c.GetRFMode())
}

// TestStopOnStoppedStreamIsNoop exercises the idempotence of stop() on a
// stream that was never started.
func TestStopOnStoppedStreamIsNoop(t *testing.T) {
	c, err := NewController(WithFrontEnd(dummyOpener))
	require.NoError(t, err)
	require.NoError(t, c.Init())

	require.NotPanics(t, func() { c.Stop() })
	require.NotPanics(t, func() { c.Stop() })
}

// TestTuneWhileStreamingDoesNotCrash drives the producer concurrently with
// a sweep of set_center_frequency calls, exercising the S4 tune-during-
// streaming scenario: no crash and stop still returns cleanly.
func TestTuneWhileStreamingDoesNotCrash(t *testing.T) {
	c, err := NewController(
		WithFrontEnd(dummyOpener),
		WithIQCallback(func(ctx context.Context, samples []complex64) {}),
	)
	require.NoError(t, err)
	require.NoError(t, c.Init())
	require.NoError(t, c.SetDecimation(1))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	started := make(chan struct{})
	go func() {
		close(started)
		_ = c.Start(ctx, true)
	}()
	<-started
	time.Sleep(10 * time.Millisecond)

	stride := dsp.BaseFFTSize - dsp.BaseFFTScrapSize
	producerDone := make(chan struct{})
	go func() {
		defer close(producerDone)
		for i := 0; i < 20; i++ {
			slot, ok := c.realRing.WritePtr()
			if !ok {
				return
			}
			for j := range slot {
				slot[j] = int16(j % 100)
			}
			c.realRing.WriteDone()
		}
	}()

	for freq := 1e3; freq <= 15e6; freq += 377e3 {
		require.NoError(t, c.SetCenterFrequency(freq))
		time.Sleep(time.Millisecond)
	}

	<-producerDone
	c.Stop()
}

// TestIQChanAndEventChanBridgeController wires the channel-based sink
// bridges to a real Controller instead of a bare func callback,
// exercising IQChan's delivery path and the "stopped" event Chan
// receives when Stop completes.
func TestIQChanAndEventChanBridgeController(t *testing.T) {
	ic := callback.NewIQChan(4)
	ec := event.NewChan(4)

	c, err := NewController(
		WithFrontEnd(dummyOpener),
		WithIQCallback(ic.Callback),
		WithEventCallback(ec.Callback),
	)
	require.NoError(t, err)
	require.NoError(t, c.Init())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	started := make(chan struct{})
	go func() {
		close(started)
		_ = c.Start(ctx, true)
	}()
	<-started
	time.Sleep(10 * time.Millisecond)

	stride := dsp.BaseFFTSize - dsp.BaseFFTScrapSize
	slot, ok := c.realRing.WritePtr()
	require.True(t, ok)
	require.Len(t, slot, stride*(c.transferSamples/stride))
	c.realRing.WriteDone()

	select {
	case msg := <-ic.C:
		require.NotEmpty(t, msg.Samples)
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for IQChan delivery")
	}

	c.Stop()

	select {
	case msg := <-ec.C:
		require.Equal(t, "stopped", msg.Kind)
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for stop event")
	}
}

// TestSetCenterFrequencyUpdatesParams exercises set_center_frequency:
// it must update the DSP's center bin based on the readback carrier.
func TestSetCenterFrequencyUpdatesParams(t *testing.T) {
	c, err := NewController(WithFrontEnd(dummyOpener))
	require.NoError(t, err)
	require.NoError(t, c.Init())

	require.NoError(t, c.SetCenterFrequency(1e6))
	p := c.params.Load()
	require.NotEqual(t, 0, p.CenterBin)
}
