// Copyright 2026 The sddc-go Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package callback

import (
	"context"
	"errors"
)

// RealMsg carries one delivered real sample block.
type RealMsg struct {
	Samples []int16
	MsgNum  uint32
}

// RealChan bridges the stream controller's synchronous RealCallback to
// a channel, the real-sample analog of IQChan.
type RealChan struct {
	C      <-chan RealMsg
	c      chan<- RealMsg
	done   chan struct{}
	msgNum uint32
}

// NewRealChan creates a RealChan with the given channel depth.
func NewRealChan(depth uint) *RealChan {
	c := make(chan RealMsg, depth)
	return &RealChan{C: c, c: c, done: make(chan struct{}, 1)}
}

// Close stops any further messages from being sent on C.
func (s *RealChan) Close() error {
	select {
	case <-s.done:
		return errors.New("already closed")
	default:
		close(s.done)
		return nil
	}
}

// Callback implements stream.RealCallback.
func (s *RealChan) Callback(_ context.Context, samples []int16) {
	select {
	case <-s.done:
		if s.c != nil {
			close(s.c)
			s.c = nil
		}
		return
	default:
	}

	buf := make([]int16, len(samples))
	copy(buf, samples)

	pay := RealMsg{Samples: buf, MsgNum: s.msgNum}
	s.msgNum++

	select {
	case s.c <- pay:
	default:
	}
}
