// Copyright 2026 The sddc-go Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package stream implements the stream controller (C6): lifecycle
// management, goroutine orchestration, and parameter update operations,
// following the teacher's session.Session ConfigFn functional-options
// idiom (session/session.go).
package stream

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/sddc-go/sddc/internal/dsp"
	"github.com/sddc-go/sddc/internal/fftplan"
	"github.com/sddc-go/sddc/internal/filterbank"
	"github.com/sddc-go/sddc/internal/frontend"
	"github.com/sddc-go/sddc/internal/ring"
	"github.com/sddc-go/sddc/internal/sddcerr"
)

// RealCallback is invoked synchronously on the sink-delivery goroutine
// for each real (non-decimated) sample block, when real delivery is
// enabled.
type RealCallback func(ctx context.Context, samples []int16)

// IQCallback is invoked synchronously on the sink-delivery goroutine for
// each complex I/Q block.
type IQCallback func(ctx context.Context, samples []complex64)

// EventCallback is invoked for out-of-band controller events (the
// controller fires "stopped" once Stop has joined its goroutines),
// mirroring the teacher's EventCallbackT.
type EventCallback func(kind string, detail string)

// ControlFn mirrors the teacher's session.ControlFn: a caller-supplied
// run loop invoked after Controller has started streaming, responsible
// for issuing parameter updates and returning when the session should
// end.
type ControlFn func(ctx context.Context, c *Controller) error

// ConfigFn configures a Controller at construction time, exactly
// following the teacher's session.ConfigFn idiom.
type ConfigFn func(c *Controller) error

// Controller owns the real and I/Q rings, the DSP workers, the front
// end, and the sink-delivery and stats goroutines, mediating every
// parameter change; the DSP never calls the front end directly.
type Controller struct {
	logger *log.Logger

	frontEnd FrontEndOpener

	realCB  RealCallback
	iqCB    IQCallback
	eventCB EventCallback
	control ControlFn

	transferSamples int
	verboseStats    bool

	fe     frontend.FrontEnd
	params *dsp.ParamStore
	fine   *dsp.FineTune

	realRing *ring.Buffer[int16]
	iqRing   *ring.Buffer[complex64]

	plans   *fftplan.Cache
	filters *filterbank.Bank

	mu          sync.Mutex
	running     bool
	convertIQ   bool
	mode        frontend.Mode
	fcMu        sync.Mutex
	lastCarrier float64

	wg sync.WaitGroup

	realBlocksOut atomic.Uint64
	iqBlocksOut   atomic.Uint64
}

// FrontEndOpener constructs the front end used by this controller.
// Separated from the Controller so tests can supply frontend.NewDummy.
type FrontEndOpener func() (frontend.FrontEnd, error)

// NewController creates a new Controller and calls each given ConfigFn
// with it as the argument, in the order provided, returning a non-nil
// error immediately if any ConfigFn fails.
func NewController(fns ...ConfigFn) (*Controller, error) {
	c := &Controller{
		transferSamples: 2 * (dsp.BaseFFTSize - dsp.BaseFFTScrapSize),
		params:          dsp.NewParamStore(dsp.Params{}),
		fine:            dsp.NewFineTune(),
		logger:          log.Default(),
	}
	for _, fn := range fns {
		if err := fn(c); err != nil {
			return nil, err
		}
	}
	if c.frontEnd == nil {
		return nil, errors.New("no front end configured")
	}
	return c, nil
}

// WithFrontEnd configures the FrontEndOpener used to construct the
// front-end adapter when Init is called.
func WithFrontEnd(open FrontEndOpener) ConfigFn {
	return func(c *Controller) error {
		if c.frontEnd != nil {
			return errors.New("front end already configured")
		}
		c.frontEnd = open
		return nil
	}
}

// WithRealCallback registers the sink callback for real sample blocks.
func WithRealCallback(fn RealCallback) ConfigFn {
	return func(c *Controller) error {
		if c.realCB != nil {
			return errors.New("real callback already configured")
		}
		c.realCB = fn
		return nil
	}
}

// WithIQCallback registers the sink callback for I/Q blocks.
func WithIQCallback(fn IQCallback) ConfigFn {
	return func(c *Controller) error {
		if c.iqCB != nil {
			return errors.New("iq callback already configured")
		}
		c.iqCB = fn
		return nil
	}
}

// WithEventCallback registers the out-of-band event callback.
func WithEventCallback(fn EventCallback) ConfigFn {
	return func(c *Controller) error {
		if c.eventCB != nil {
			return errors.New("event callback already configured")
		}
		c.eventCB = fn
		return nil
	}
}

// WithLogger overrides the default logger.
func WithLogger(l *log.Logger) ConfigFn {
	return func(c *Controller) error {
		c.logger = l
		return nil
	}
}

// WithControlLoop configures the function invoked after streaming has
// started. When it returns, the controller is stopped.
func WithControlLoop(fn ControlFn) ConfigFn {
	return func(c *Controller) error {
		if c.control != nil {
			return errors.New("control loop already configured")
		}
		c.control = fn
		return nil
	}
}

// WithTransferSamples overrides the default real-ring block size (the
// "transferSamples" parameter from the init operation).
func WithTransferSamples(n int) ConfigFn {
	return func(c *Controller) error {
		if n <= 0 {
			return sddcerr.New(sddcerr.BufferSizeInvalid, fmt.Sprintf("transfer samples must be positive, got %d", n))
		}
		c.transferSamples = n
		return nil
	}
}

// WithVerboseStats enables 10x/sec stats logging instead of 1x/sec.
func WithVerboseStats(en bool) ConfigFn {
	return func(c *Controller) error {
		c.verboseStats = en
		return nil
	}
}

// Init opens the front end, sizes the rings for the configured
// transferSamples, and builds the filter bank and FFT plans, mirroring
// the init operation from the stream controller design.
func (c *Controller) Init() error {
	fe, err := c.frontEnd()
	if err != nil {
		return sddcerr.New(sddcerr.TransportOpenFailed, err.Error())
	}
	c.fe = fe

	fs := fe.GetADCSampleRate()

	plans, err := fftplan.New(dsp.BaseFFTSize, dsp.NDecIdx, "")
	if err != nil {
		return err
	}
	c.plans = plans

	bank, err := filterbank.Build(fs, 1.0, dsp.BaseFFTSize, dsp.NDecIdx)
	if err != nil {
		return err
	}
	c.filters = bank

	windowStride := dsp.BaseFFTSize - dsp.BaseFFTScrapSize
	if c.transferSamples%windowStride != 0 {
		return sddcerr.New(sddcerr.BufferSizeInvalid, fmt.Sprintf("transferSamples %d must be a multiple of %d", c.transferSamples, windowStride))
	}

	c.realRing = ring.New[int16](4)
	if err := c.realRing.SetBlockSize(c.transferSamples); err != nil {
		return err
	}
	c.iqRing = ring.New[complex64](4)
	if err := c.iqRing.SetBlockSize(c.transferSamples / 2); err != nil {
		return err
	}
	return nil
}

// Start arms the DSP worker (if convertIQ) and the sink-delivery and
// stats goroutines. If already running, it stops first, matching the
// idempotent restart semantics of the original start operation.
func (c *Controller) Start(ctx context.Context, convertIQ bool) error {
	c.mu.Lock()
	if c.running {
		c.mu.Unlock()
		c.Stop()
	} else {
		c.mu.Unlock()
	}

	c.mu.Lock()
	c.convertIQ = convertIQ
	c.running = true
	c.mu.Unlock()

	c.realRing.Start()
	c.iqRing.Start()

	if convertIQ {
		worker, err := dsp.NewWorker(c.realRing, c.iqRing, c.filters, c.plans, c.params, c.fine)
		if err != nil {
			return err
		}
		c.wg.Add(1)
		go func() {
			defer c.wg.Done()
			worker.Run()
		}()
	}

	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		c.sinkLoop(ctx, convertIQ)
	}()

	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		c.statsLoop(ctx)
	}()

	if c.control != nil {
		err := c.control(ctx, c)
		c.Stop()
		return err
	}
	return nil
}

// Stop is idempotent: it clears the running flag, stops both rings
// (waking every blocked goroutine), and waits for the worker, sink, and
// stats goroutines together on a single WaitGroup; no join order among
// them is imposed.
func (c *Controller) Stop() {
	c.mu.Lock()
	if !c.running {
		c.mu.Unlock()
		return
	}
	c.running = false
	c.mu.Unlock()

	c.realRing.Stop()
	c.iqRing.Stop()
	c.wg.Wait()

	if c.eventCB != nil {
		c.eventCB("stopped", "stream stopped")
	}
}

// sinkLoop is the single sink-delivery goroutine: it acquires the next
// output block (I/Q if convertIQ, otherwise real), invokes the registered
// callback synchronously, and releases the slot. It does no mixing: the
// fine-tune mixer is applied by the DSP worker before an I/Q block is
// committed to the ring.
func (c *Controller) sinkLoop(ctx context.Context, convertIQ bool) {
	if convertIQ {
		for {
			slot, ok := c.iqRing.ReadPtr()
			if !ok {
				return
			}
			if c.iqCB != nil {
				c.iqCB(ctx, slot)
			}
			c.iqBlocksOut.Add(1)
			c.iqRing.ReadDone()
		}
	}
	for {
		slot, ok := c.realRing.ReadPtr()
		if !ok {
			return
		}
		if c.realCB != nil {
			c.realCB(ctx, slot)
		}
		c.realBlocksOut.Add(1)
		c.realRing.ReadDone()
	}
}

// statsLoop logs block rates computed from the change in the delivered
// block counters over each period, once per second by default or
// 10x/sec in verbose mode.
func (c *Controller) statsLoop(ctx context.Context) {
	period := time.Second
	if c.verboseStats {
		period = 100 * time.Millisecond
	}
	ticker := time.NewTicker(period)
	defer ticker.Stop()

	var lastReal, lastIQ uint64
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if !c.isRunning() {
				return
			}
			real := c.realBlocksOut.Load()
			iq := c.iqBlocksOut.Load()
			dReal := real - lastReal
			dIQ := iq - lastIQ
			lastReal, lastIQ = real, iq
			c.logger.Printf("stats: real_blocks/s=%.1f iq_blocks/s=%.1f", float64(dReal)/period.Seconds(), float64(dIQ)/period.Seconds())
		}
	}
}

func (c *Controller) isRunning() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.running
}
