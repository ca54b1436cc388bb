// Copyright 2026 The sddc-go Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package callback

import (
	"context"
	"errors"
)

// IQMsg carries one delivered I/Q block. IQChan.Callback always copies
// the block, so a receiver owns Samples for as long as it holds it.
type IQMsg struct {
	Samples []complex64
	MsgNum  uint32
}

// IQChan bridges the stream controller's synchronous IQCallback to a
// channel a consumer can receive from at its own pace, mirroring the
// teacher's callback.StreamChan bridge from the C callback thread to a
// Go channel.
type IQChan struct {
	C      <-chan IQMsg
	c      chan<- IQMsg
	done   chan struct{}
	msgNum uint32
}

// NewIQChan creates an IQChan with the given channel depth. A depth of
// zero drops any message if the receiver is not ready; any depth greater
// than zero buffers that many messages for asynchronous receipt.
func NewIQChan(depth uint) *IQChan {
	c := make(chan IQMsg, depth)
	return &IQChan{C: c, c: c, done: make(chan struct{}, 1)}
}

// Close stops any further messages from being sent on C. The channel
// itself is not closed until the next call to Callback observes the
// close.
func (s *IQChan) Close() error {
	select {
	case <-s.done:
		return errors.New("already closed")
	default:
		close(s.done)
		return nil
	}
}

// Callback implements stream.IQCallback. It copies samples into a
// freshly allocated buffer and sends it on the channel without
// blocking, dropping the message if the channel is full.
func (s *IQChan) Callback(_ context.Context, samples []complex64) {
	select {
	case <-s.done:
		if s.c != nil {
			close(s.c)
			s.c = nil
		}
		return
	default:
	}

	buf := make([]complex64, len(samples))
	copy(buf, samples)

	pay := IQMsg{Samples: buf, MsgNum: s.msgNum}
	s.msgNum++

	select {
	case s.c <- pay:
	default:
	}
}
