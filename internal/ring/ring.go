// Copyright 2026 The sddc-go Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package ring implements the fixed-capacity, single-producer
// single-consumer block ring buffer that coordinates the USB producer
// with the DSP consumer, and the DSP producer with the sink consumer.
package ring

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/sddc-go/sddc/internal/sddcerr"
)

// spinIters is the number of non-blocking predicate checks a blocking
// operation performs before it falls back to taking the mutex and
// waiting on a condition variable.
const spinIters = 100

// Buffer is a fixed mapping from slot index {0..N-1} to a contiguous
// buffer of B samples of element type T. It is safe for exactly one
// producer goroutine and one consumer goroutine to use concurrently;
// any other use is undefined.
type Buffer[T any] struct {
	n int

	mu       sync.Mutex
	notFull  *sync.Cond
	notEmpty *sync.Cond

	data      []T
	slotCap   int
	blockSize int

	read  atomic.Int64
	write atomic.Int64

	writesDone atomic.Uint64
	readsDone  atomic.Uint64

	stopped atomic.Bool
	started atomic.Bool
}

// New creates an empty Buffer with N slots and a zero block size. The
// block size must be set with SetBlockSize before use.
func New[T any](n int) *Buffer[T] {
	if n < 2 {
		n = 2
	}
	b := &Buffer[T]{n: n}
	b.notFull = sync.NewCond(&b.mu)
	b.notEmpty = sync.NewCond(&b.mu)
	return b
}

// align8 rounds v up to the next multiple of 8.
func align8(v int) int {
	const align = 8
	return (v + align - 1) / align * align
}

// SetBlockSize sets the number of elements per slot. It is idempotent if
// the requested size matches the current size. Otherwise, it frees the
// old backing storage and allocates a new single contiguous allocation of
// N*ceil(B,8) elements. It must be called before Start and is not safe to
// call concurrently with WritePtr/ReadPtr/PeekRead.
func (b *Buffer[T]) SetBlockSize(blockSize int) error {
	if blockSize <= 0 {
		return sddcerr.New(sddcerr.BufferSizeInvalid, fmt.Sprintf("block size must be positive, got %d", blockSize))
	}
	if b.started.Load() {
		return sddcerr.New(sddcerr.BufferSizeInvalid, "cannot resize a started ring")
	}
	if blockSize == b.blockSize {
		return nil
	}
	cap := align8(blockSize)
	b.data = make([]T, b.n*cap)
	b.slotCap = cap
	b.blockSize = blockSize
	return nil
}

// BlockSize returns the currently configured block size in elements.
func (b *Buffer[T]) BlockSize() int {
	return b.blockSize
}

// Start (re)enables blocking operations and resets the buffer to empty.
// It is idempotent.
func (b *Buffer[T]) Start() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.read.Store(0)
	b.write.Store(0)
	b.writesDone.Store(0)
	b.readsDone.Store(0)
	b.stopped.Store(false)
	b.started.Store(true)
}

// Stop causes every thread blocked in WritePtr or ReadPtr to return
// immediately, and causes all future blocking calls to return immediately
// until Start is called again. Per the ring's blocking discipline, it
// forces the write index to the middle of the buffer so that any
// consumer spinning on "not empty" sees a change, and broadcasts both
// condition variables while holding the mutex.
func (b *Buffer[T]) Stop() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.stopped.Store(true)
	b.started.Store(false)
	if b.n > 0 {
		b.write.Store(int64(b.n / 2))
	}
	b.notFull.Broadcast()
	b.notEmpty.Broadcast()
}

// Stopped reports whether Stop has been called since the last Start.
func (b *Buffer[T]) Stopped() bool {
	return b.stopped.Load()
}

// WritesDone returns the number of completed WriteDone calls since the
// last Start.
func (b *Buffer[T]) WritesDone() uint64 {
	return b.writesDone.Load()
}

// ReadsDone returns the number of completed ReadDone calls since the
// last Start.
func (b *Buffer[T]) ReadsDone() uint64 {
	return b.readsDone.Load()
}

func (b *Buffer[T]) mod(v int64) int64 {
	n := int64(b.n)
	v %= n
	if v < 0 {
		v += n
	}
	return v
}

func (b *Buffer[T]) isFull() bool {
	w := b.write.Load()
	r := b.read.Load()
	return b.mod(w+1) == r
}

func (b *Buffer[T]) isEmpty() bool {
	return b.read.Load() == b.write.Load()
}

func (b *Buffer[T]) slotAt(idx int64) []T {
	start := int(idx) * b.slotCap
	return b.data[start : start+b.blockSize]
}

// WritePtr returns a mutable view of the current producer slot, blocking
// while the ring is full. The second return value is false if the ring
// was stopped before a slot became available.
func (b *Buffer[T]) WritePtr() ([]T, bool) {
	for i := 0; i < spinIters; i++ {
		if b.stopped.Load() {
			return nil, false
		}
		if !b.isFull() {
			return b.slotAt(b.write.Load()), true
		}
	}

	b.mu.Lock()
	for b.isFull() && !b.stopped.Load() {
		b.notFull.Wait()
	}
	stopped := b.stopped.Load()
	idx := b.write.Load()
	b.mu.Unlock()

	if stopped {
		return nil, false
	}
	return b.slotAt(idx), true
}

// WriteDone commits the slot most recently returned by WritePtr, making
// it visible to the consumer, and signals any blocked reader.
func (b *Buffer[T]) WriteDone() {
	next := b.mod(b.write.Load() + 1)
	b.write.Store(next)
	b.writesDone.Add(1)

	b.mu.Lock()
	b.notEmpty.Broadcast()
	b.mu.Unlock()
}

// ReadPtr returns a read-only view of the current consumer slot, blocking
// while the ring is empty. The second return value is false if the ring
// was stopped before a slot became available.
func (b *Buffer[T]) ReadPtr() ([]T, bool) {
	for i := 0; i < spinIters; i++ {
		if b.stopped.Load() {
			return nil, false
		}
		if !b.isEmpty() {
			return b.slotAt(b.read.Load()), true
		}
	}

	b.mu.Lock()
	for b.isEmpty() && !b.stopped.Load() {
		b.notEmpty.Wait()
	}
	stopped := b.stopped.Load()
	idx := b.read.Load()
	b.mu.Unlock()

	if stopped {
		return nil, false
	}
	return b.slotAt(idx), true
}

// ReadDone releases the slot most recently returned by ReadPtr, making it
// available to the producer again, and signals any blocked writer.
func (b *Buffer[T]) ReadDone() {
	next := b.mod(b.read.Load() + 1)
	b.read.Store(next)
	b.readsDone.Add(1)

	b.mu.Lock()
	b.notFull.Broadcast()
	b.mu.Unlock()
}

// PeekRead returns, without blocking, a read-only view of the slot at the
// given offset relative to the current read slot (e.g. offset -1 is the
// slot immediately prior to the one currently held by ReadPtr). It does
// not validate that the peeked slot still holds data the producer has not
// since overwritten; callers must pair it with sufficiently prompt use, as
// described for the DSP worker's scrap-carry in the overlap-save engine.
func (b *Buffer[T]) PeekRead(offset int) []T {
	idx := b.mod(b.read.Load() + int64(offset))
	return b.slotAt(idx)
}
