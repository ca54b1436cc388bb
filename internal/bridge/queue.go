// Copyright 2026 The sddc-go Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package bridge implements the client sink-to-stream bridge (C10): a
// bounded queue of preallocated byte-vector slots sized to the SDR
// plugin MTU, used to adapt the controller's push-style sink callback
// to a pull-style ReadStream contract, exactly per the external
// interfaces design.
package bridge

import (
	"sync"
	"time"
)

// N is the fixed depth of the bridge queue.
const N = 16

// Queue is a bounded queue of N preallocated byte slots. Push is called
// from the sink-delivery goroutine; Acquire is called from a consumer
// (e.g. a SOAPY-shaped ReadStream implementation) blocking up to a
// timeout for the next slot.
type Queue struct {
	mu     sync.Mutex
	notify chan struct{}

	slots    [N][]byte
	mtu      int
	count    int
	head     int // oldest unread
	overflow bool
}

// New creates a Queue with N slots preallocated to mtu bytes each.
func New(mtu int) *Queue {
	q := &Queue{mtu: mtu, notify: make(chan struct{}, 1)}
	for i := range q.slots {
		q.slots[i] = make([]byte, mtu)
	}
	return q
}

func (q *Queue) wake() {
	select {
	case q.notify <- struct{}{}:
	default:
	}
}

// Push writes payload into the next slot, copying up to mtu bytes. If
// the queue is already full (count == N), the oldest unread slot is
// dropped and the overflow flag is latched, surfaced on the next
// Acquire.
func (q *Queue) Push(payload []byte) {
	q.mu.Lock()
	defer q.mu.Unlock()

	idx := (q.head + q.count) % N
	if q.count == N {
		q.overflow = true
		q.head = (q.head + 1) % N
		idx = (q.head + N - 1) % N
	} else {
		q.count++
	}

	n := copy(q.slots[idx][:cap(q.slots[idx])], payload)
	q.slots[idx] = q.slots[idx][:n]

	q.wake()
}

// Acquire waits up to timeout for the next queued payload. It returns
// the payload, whether an overflow was latched since the last Acquire
// (cleared by this call), and whether a payload was available before
// the timeout elapsed.
func (q *Queue) Acquire(timeout time.Duration) (payload []byte, overflowed bool, ok bool) {
	deadline := time.Now().Add(timeout)
	for {
		q.mu.Lock()
		if q.count > 0 {
			idx := q.head
			q.head = (q.head + 1) % N
			q.count--
			out := make([]byte, len(q.slots[idx]))
			copy(out, q.slots[idx])
			ov := q.latchedOverflow()
			q.mu.Unlock()
			return out, ov, true
		}
		q.mu.Unlock()

		remaining := time.Until(deadline)
		if remaining <= 0 {
			return nil, false, false
		}
		select {
		case <-q.notify:
		case <-time.After(remaining):
			return nil, false, false
		}
	}
}

func (q *Queue) latchedOverflow() bool {
	ov := q.overflow
	q.overflow = false
	return ov
}
