// Copyright 2011 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

// Package block implements the tagged-block binary container used to
// persist and read back voxel/channel visibility tables: a small
// magic-keyed, word-aligned framing format (Key, Header, Block) plus
// typed wrappers (Version, Bookmark, String, Number, Blob), and a
// Manager that reads, writes, and skips blocks on a seekable stream.
//
// Blocks are never interpreted or compressed by this package; key
// meaning is assigned entirely by the schema layer that uses it (see
// the photonlib package for the concrete photon-library schema).
package block

import (
	"bytes"
	"strconv"
)

// KeySize is the fixed width, in bytes, of a block's magic key.
const KeySize = 4

// Key is a fixed-width, opaque 4-byte tag identifying a block's kind
// within a particular schema. Shorter source strings are right-padded
// with NUL; the padding carries no information and is not significant
// when a Key is rendered as text.
type Key [KeySize]byte

// NullKey is the all-zero sentinel key.
var NullKey Key

// NewKey builds a Key from a string, right-padding with NUL. It panics
// if s is longer than KeySize, which would indicate a schema bug, not
// a runtime condition.
func NewKey(s string) Key {
	if len(s) > KeySize {
		panic("block: key string longer than " + strconv.Itoa(KeySize) + " bytes")
	}
	var k Key
	copy(k[:], s)
	return k
}

// Equal reports whether two keys are byte-wise identical.
func (k Key) Equal(other Key) bool {
	return k == other
}

// IsNull reports whether k is the all-NUL sentinel key.
func (k Key) IsNull() bool {
	return k == NullKey
}

// String renders the key as text: the bytes up to the last non-NUL
// byte. It is for diagnostics only; keys are never interpreted as text
// by the format itself.
func (k Key) String() string {
	trimmed := bytes.TrimRight(k[:], "\x00")
	return string(trimmed)
}
