// Copyright 2011 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package block

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

// Kind distinguishes I/O failures from format violations, so a caller
// can decide whether retrying (after a re-seek) is even meaningful.
type Kind int

const (
	// KindIO covers short reads, short writes, and seek failures.
	KindIO Kind = iota
	// KindFormat covers key mismatches, bad sizes, and other
	// violations of the block-level wire format.
	KindFormat
)

// String implements fmt.Stringer.
func (k Kind) String() string {
	switch k {
	case KindIO:
		return "io"
	case KindFormat:
		return "format"
	default:
		return "unknown"
	}
}

// Error is the error type returned by every exported block operation.
// It always carries the operation name; format errors additionally
// name the offending field and, where relevant, the observed and
// expected values.
type Error struct {
	Kind     Kind
	Op       string
	Field    string
	Observed any
	Expected any
	cause    error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("block: %s: %s: %s: observed %v, expected %v",
			e.Kind, e.Op, e.Field, e.Observed, e.Expected)
	}
	return fmt.Sprintf("block: %s: %s", e.Kind, e.Op)
}

// Unwrap exposes the underlying cause, if any, so callers can use
// errors.Is/errors.As across the boundary.
func (e *Error) Unwrap() error {
	return e.cause
}

// ioErrorf wraps a stream failure as a KindIO Error, preserving cause.
// op is safe to log (it is always a fixed operation name, never
// user-controlled data).
func ioErrorf(cause error, op string) error {
	if cause == nil {
		return nil
	}
	return errors.WithStack(&Error{Kind: KindIO, Op: op, cause: cause})
}

// formatErrorf reports a KindFormat Error naming the offending field
// and the observed/expected values.
func formatErrorf(op, field string, observed, expected any) error {
	return &Error{
		Kind:     KindFormat,
		Op:       op,
		Field:    field,
		Observed: observed,
		Expected: expected,
	}
}
