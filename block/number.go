// Copyright 2011 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package block

import (
	"encoding/binary"
	"math"
)

// Numeric is the set of scalar types a Number<T> block may carry.
// Go forbids type parameters on methods, so the Number<T> read/write
// operations are package-level functions taking a *Manager, rather
// than Manager methods.
type Numeric interface {
	int8 | int16 | int32 | int64 |
		uint8 | uint16 | uint32 | uint64 |
		float32 | float64
}

// nativeSize returns sizeof(T) in bytes.
func nativeSize[T Numeric]() uint64 {
	var z T
	switch any(z).(type) {
	case int8, uint8:
		return 1
	case int16, uint16:
		return 2
	case int32, uint32, float32:
		return 4
	case int64, uint64, float64:
		return 8
	default:
		return 0
	}
}

// storedSize returns the on-disk payload size of a Number<T> block:
// sizeof(T), widened up to one Word for integer types narrower than a
// word. Floats are never narrower than a word in this format.
func storedSize[T Numeric]() uint64 {
	n := nativeSize[T]()
	if n < Word {
		return Word
	}
	return n
}

// decodeFixed decodes buf, exactly sizeof(T) bytes, into a T.
func decodeFixed[T Numeric](buf []byte) T {
	var z T
	switch p := any(&z).(type) {
	case *int8:
		*p = int8(buf[0])
	case *uint8:
		*p = buf[0]
	case *int16:
		*p = int16(binary.NativeEndian.Uint16(buf))
	case *uint16:
		*p = binary.NativeEndian.Uint16(buf)
	case *int32:
		*p = int32(binary.NativeEndian.Uint32(buf))
	case *uint32:
		*p = binary.NativeEndian.Uint32(buf)
	case *int64:
		*p = int64(binary.NativeEndian.Uint64(buf))
	case *uint64:
		*p = binary.NativeEndian.Uint64(buf)
	case *float32:
		*p = math.Float32frombits(binary.NativeEndian.Uint32(buf))
	case *float64:
		*p = math.Float64frombits(binary.NativeEndian.Uint64(buf))
	}
	return z
}

// encodeFixed encodes v into exactly sizeof(T) bytes.
func encodeFixed[T Numeric](v T) []byte {
	buf := make([]byte, nativeSize[T]())
	switch x := any(v).(type) {
	case int8:
		buf[0] = byte(x)
	case uint8:
		buf[0] = x
	case int16:
		binary.NativeEndian.PutUint16(buf, uint16(x))
	case uint16:
		binary.NativeEndian.PutUint16(buf, x)
	case int32:
		binary.NativeEndian.PutUint32(buf, uint32(x))
	case uint32:
		binary.NativeEndian.PutUint32(buf, x)
	case int64:
		binary.NativeEndian.PutUint64(buf, uint64(x))
	case uint64:
		binary.NativeEndian.PutUint64(buf, x)
	case float32:
		binary.NativeEndian.PutUint32(buf, math.Float32bits(x))
	case float64:
		binary.NativeEndian.PutUint64(buf, math.Float64bits(x))
	}
	return buf
}

// widen zero-extends (unsigned) or sign-extends (signed) a Word-sized
// buffer into T, for integer types narrower than a word.
func widen[T Numeric](buf []byte) T {
	word := binary.NativeEndian.Uint32(buf)
	var z T
	switch any(z).(type) {
	case int8:
		return T(int32(int8(word)))
	case int16:
		return T(int32(int16(word)))
	case uint8:
		return T(uint32(uint8(word)))
	case uint16:
		return T(uint32(uint16(word)))
	default:
		return z
	}
}

// ReadNumber reads a Number<T> block: the next header, a verification
// that its size matches storedSize[T](), and the decoded value. If
// expectedKey is non-nil and does not match, it returns a key-mismatch
// Error.
func ReadNumber[T Numeric](m *Manager, expectedKey *Key, description string) (T, error) {
	var zero T
	m.mu.Lock()
	defer m.mu.Unlock()
	h, err := ReadHeader(m.s)
	if err != nil {
		return zero, err
	}
	if err := checkKey(h.Key, expectedKey, description); err != nil {
		return zero, err
	}
	return readPayload[T](m, h, description)
}

// ReadPayload decodes h's payload as a T, without issuing a second
// header read. It is the counterpart to ReadBlockHeader: a caller that
// has already read a block's header (for example to peek at an
// unrecognized key before deciding how to interpret it) can pass that
// Header here instead of re-parsing it through ReadNumber. The stream
// must be positioned at the first payload byte, as ReadBlockHeader
// leaves it.
func ReadPayload[T Numeric](m *Manager, h Header, description string) (T, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return readPayload[T](m, h, description)
}

// readPayload validates h.Size against storedSize[T](), reads exactly
// that many bytes, and decodes them, widening narrow integer types
// from their word-sized on-disk form. Callers must already hold m.mu.
func readPayload[T Numeric](m *Manager, h Header, description string) (T, error) {
	var zero T
	want := storedSize[T]()
	if h.Size != want {
		return zero, formatErrorf("read_payload", description, h.Size, want)
	}
	buf, err := m.readFull(h.Size, "read_payload")
	if err != nil {
		return zero, err
	}
	if nativeSize[T]() < Word {
		return widen[T](buf), nil
	}
	return decodeFixed[T](buf), nil
}

// WriteNumber writes a Number<T> block with the given key and value,
// widening the stored payload to a full Word if T is narrower.
func WriteNumber[T Numeric](m *Manager, key Key, value T) error {
	size := storedSize[T]()
	var payload []byte
	if nativeSize[T]() < Word {
		payload = make([]byte, Word)
		native := encodeFixed(value)
		// Sign/zero-extension into a word: copy the native bytes into
		// the low-order position and replicate the sign for negative
		// signed values, matching widen's inverse.
		switch x := any(value).(type) {
		case int8:
			binary.NativeEndian.PutUint32(payload, uint32(uint32(int32(x))))
		case int16:
			binary.NativeEndian.PutUint32(payload, uint32(int32(x)))
		case uint8:
			binary.NativeEndian.PutUint32(payload, uint32(x))
		case uint16:
			binary.NativeEndian.PutUint32(payload, uint32(x))
		default:
			copy(payload, native)
		}
	} else {
		payload = encodeFixed(value)
	}
	info := Header{Key: key, Size: size}
	return m.WriteBlockAndPayload(info, payload)
}
