// Copyright 2026 The sddc-go Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package udp packetizes delivered sample blocks into fixed-size UDP
// payloads, used by the cmd/ UDP-streaming demo harness.
package udp

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
)

// IQPacketWriteFn writes complex64 I/Q samples, interleaved as
// little/big-endian float32 I,Q pairs, to fixed-size packets, flushing a
// full packet to the io.Writer as soon as it fills.
type IQPacketWriteFn func(out io.Writer, x []complex64) (int, error)

// NewIQPacketWriteFn creates an IQPacketWriteFn. payloadLen is the number
// of bytes per packet; seqHeader prepends a 64-bit sequence number to
// each packet when true.
func NewIQPacketWriteFn(payloadLen uint, seqHeader bool, order binary.ByteOrder) (IQPacketWriteFn, error) {
	const sizeofScalar = 4 // float32
	const sizeofHeader = 8
	const scalarsPerFrame = 2 // I, Q

	dataBytes := payloadLen
	if seqHeader {
		dataBytes -= sizeofHeader
	}
	if dataBytes%(sizeofScalar*scalarsPerFrame) != 0 {
		return nil, fmt.Errorf(
			"frames will not fit evenly in payload; payloadLen=%d seqHeader=%v", payloadLen, seqHeader)
	}

	var (
		seq uint64
		buf = make([]byte, int(payloadLen))
		bi  int
	)
	if seqHeader {
		seq++
		bi = sizeofHeader
	}

	write := func(out io.Writer, x []complex64) (int, error) {
		var total int
		for _, v := range x {
			putFloat32(order, buf[bi:], real(v))
			bi += sizeofScalar
			putFloat32(order, buf[bi:], imag(v))
			bi += sizeofScalar
			total += 2 * sizeofScalar
			if bi == int(payloadLen) {
				if _, err := out.Write(buf); err != nil {
					return total, err
				}
				bi = 0
				if seqHeader {
					order.PutUint64(buf, seq)
					bi = sizeofHeader
					seq++
				}
			}
		}
		return total, nil
	}
	return write, nil
}

// RealPacketWriteFn writes int16 real samples to fixed-size packets.
type RealPacketWriteFn func(out io.Writer, x []int16) (int, error)

// NewRealPacketWriteFn creates a RealPacketWriteFn.
func NewRealPacketWriteFn(payloadLen uint, seqHeader bool, order binary.ByteOrder) (RealPacketWriteFn, error) {
	const sizeofScalar = 2
	const sizeofHeader = 8

	dataBytes := payloadLen
	if seqHeader {
		dataBytes -= sizeofHeader
	}
	if dataBytes%sizeofScalar != 0 {
		return nil, fmt.Errorf(
			"frames will not fit evenly in payload; payloadLen=%d seqHeader=%v", payloadLen, seqHeader)
	}

	var (
		seq uint64
		buf = make([]byte, int(payloadLen))
		bi  int
	)
	if seqHeader {
		seq++
		bi = sizeofHeader
	}

	write := func(out io.Writer, x []int16) (int, error) {
		var total int
		for _, v := range x {
			order.PutUint16(buf[bi:], uint16(v))
			bi += sizeofScalar
			total += sizeofScalar
			if bi == int(payloadLen) {
				if _, err := out.Write(buf); err != nil {
					return total, err
				}
				bi = 0
				if seqHeader {
					order.PutUint64(buf, seq)
					bi = sizeofHeader
					seq++
				}
			}
		}
		return total, nil
	}
	return write, nil
}

func putFloat32(order binary.ByteOrder, b []byte, v float32) {
	order.PutUint32(b, math.Float32bits(v))
}
