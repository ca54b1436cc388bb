// Copyright 2026 The sddc-go Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package event provides a channel-based bridge for the stream
// controller's synchronous EventCallback, mirroring the teacher's
// event.Chan bridge from the C event callback thread to a Go channel.
package event

import "errors"

// Msg is a delivered out-of-band controller event (the controller sends
// "stopped" when a stream stops).
type Msg struct {
	Kind   string
	Detail string
	MsgNum uint32
}

// Chan bridges stream.EventCallback to a channel a consumer can receive
// from at its own pace.
type Chan struct {
	C      <-chan Msg
	c      chan<- Msg
	done   chan struct{}
	msgNum uint32
}

// NewChan creates a Chan with the given channel depth.
func NewChan(depth uint) *Chan {
	c := make(chan Msg, depth)
	return &Chan{C: c, c: c, done: make(chan struct{}, 1)}
}

// Close stops any further messages from being sent on C.
func (e *Chan) Close() error {
	select {
	case <-e.done:
		return errors.New("already closed")
	default:
		close(e.done)
		return nil
	}
}

// Callback implements stream.EventCallback.
func (e *Chan) Callback(kind, detail string) {
	select {
	case <-e.done:
		if e.c != nil {
			close(e.c)
			e.c = nil
		}
		return
	default:
	}

	pay := Msg{Kind: kind, Detail: detail, MsgNum: e.msgNum}
	e.msgNum++

	select {
	case e.c <- pay:
	default:
	}
}
