// Copyright 2026 The sddc-go Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package sddcerr defines the closed error taxonomy returned by every
// fallible operation in the sddc driver.
package sddcerr

//go:generate go run golang.org/x/tools/cmd/stringer -type Kind -output errors_string.go

// Kind is a closed enumeration of error categories returned by the driver.
type Kind int32

const (
	Success Kind = iota
	TransportOpenFailed
	TransportBusy
	TransportTransferFailed
	NotCompatible
	DecimationOutOfRange
	NotAnLed
	BufferSizeInvalid
)

func (k Kind) String() string {
	switch k {
	case Success:
		return "Success"
	case TransportOpenFailed:
		return "TransportOpenFailed"
	case TransportBusy:
		return "TransportBusy"
	case TransportTransferFailed:
		return "TransportTransferFailed"
	case NotCompatible:
		return "NotCompatible"
	case DecimationOutOfRange:
		return "DecimationOutOfRange"
	case NotAnLed:
		return "NotAnLed"
	case BufferSizeInvalid:
		return "BufferSizeInvalid"
	default:
		return "Unknown"
	}
}

// Error is the error type returned by fallible driver operations. It
// carries a Kind from the closed taxonomy plus free-form context, mirroring
// the way the teacher API wraps its ErrT enum with a message from
// GetLastError.
type Error struct {
	Kind Kind
	Msg  string
}

func (e *Error) Error() string {
	if e.Msg == "" {
		return e.Kind.String()
	}
	return e.Kind.String() + ": " + e.Msg
}

// Is allows errors.Is(err, sddcerr.Of(Kind)) style matching against a
// sentinel built from the same Kind.
func (e *Error) Is(target error) bool {
	other, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == other.Kind
}

// New creates an *Error of the given Kind with the given message.
func New(kind Kind, msg string) *Error {
	return &Error{Kind: kind, Msg: msg}
}

// Of creates a bare sentinel *Error of the given Kind, suitable for use
// with errors.Is.
func Of(kind Kind) *Error {
	return &Error{Kind: kind}
}
