// Copyright 2011 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package photonlib

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

// Kind categorizes a photonlib Error. This layer has no I/O kind of its
// own: key and size violations found while parsing the block sequence
// are returned as the *block.Error itself, not as a photonlib Error.
type Kind int

const (
	// KindFormat wraps a failure from below this layer: opening or
	// creating the file, creating its directory, a block write, or a
	// GetVoxel read. The cause (an *os.PathError or *block.Error) is
	// reachable through Unwrap; I/O failures are not given a separate
	// kind here.
	KindFormat Kind = iota
	// KindSchema covers a syntactically well-formed block sequence
	// that violates a photon-library cross-field invariant (e.g.
	// NTRY != NVoxels*NChannels) or carries an unsupported version.
	KindSchema
)

func (k Kind) String() string {
	switch k {
	case KindFormat:
		return "format"
	case KindSchema:
		return "schema"
	default:
		return "unknown"
	}
}

// Error is the error type returned by schema-level parse and
// validation failures. Lookup out-of-range is deliberately not
// represented here: it stays a soft return value (0.0, or ok=false),
// never an error.
type Error struct {
	Kind     Kind
	Op       string
	Field    string
	Observed any
	Expected any
	cause    error
}

func (e *Error) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("photonlib: %s: %s: %s: observed %v, expected %v",
			e.Kind, e.Op, e.Field, e.Observed, e.Expected)
	}
	return fmt.Sprintf("photonlib: %s: %s", e.Kind, e.Op)
}

// Unwrap exposes the wrapped cause (typically a *block.Error) so
// callers can use errors.As across the layer boundary.
func (e *Error) Unwrap() error {
	return e.cause
}

func schemaErrorf(op, field string, observed, expected any) error {
	return &Error{Kind: KindSchema, Op: op, Field: field, Observed: observed, Expected: expected}
}

func wrapFormatErrorf(cause error, op string) error {
	if cause == nil {
		return nil
	}
	return errors.WithStack(&Error{Kind: KindFormat, Op: op, cause: cause})
}
