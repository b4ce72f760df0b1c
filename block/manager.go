// Copyright 2011 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package block

import (
	"io"
	"sync"
)

// Stream is the seekable, readable, writable handle a Manager wraps.
// *os.File satisfies it; tests commonly wrap an in-memory buffer with
// a small adapter that also implements io.Seeker.
type Stream interface {
	io.Reader
	io.Writer
	io.Seeker
}

// Manager wraps a single seekable Stream and offers typed read/write
// of blocks with optional key validation, header-only reads, payload
// skipping, and a random-access ReadAt used by callers that must
// address the stream from multiple goroutines.
//
// A Manager's position register is shared, mutable state: every
// operation that moves the stream's cursor acquires mu for exactly the
// span of its own seek-and-read (or seek-and-write) pair, never longer,
// so concurrent callers never observe one another's half-finished
// cursor movement.
type Manager struct {
	mu sync.Mutex
	s  Stream
}

// NewManager wraps s in a Manager. The Manager takes no ownership of
// s's lifecycle; closing s, if it is an io.Closer, is the caller's
// responsibility.
func NewManager(s Stream) *Manager {
	return &Manager{s: s}
}

// CurrentOffset returns the stream's current byte position.
func (m *Manager) CurrentOffset() (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	off, err := m.s.Seek(0, io.SeekCurrent)
	if err != nil {
		return 0, ioErrorf(err, "current_offset")
	}
	return off, nil
}

// checkKey compares the observed key against an optional expected key,
// returning a KindFormat Error naming both on mismatch. expectedKey nil
// means "accept any key" (a caller peeking at the key without asserting
// a schema).
func checkKey(observed Key, expectedKey *Key, description string) error {
	if expectedKey == nil {
		return nil
	}
	if observed.Equal(*expectedKey) {
		return nil
	}
	field := description
	if field == "" {
		field = "key"
	}
	return formatErrorf("key_mismatch", field, observed.String(), expectedKey.String())
}

// ReadBlockHeader reads the next block's 12-byte Header without
// touching its payload, leaving the stream positioned at the first
// payload byte. If expectedKey is non-nil and does not match the
// observed key, it returns a key-mismatch Error carrying both keys and
// description; the offending block has already been consumed from the
// stream, so the caller must not retry at the same position.
func (m *Manager) ReadBlockHeader(expectedKey *Key, description string) (Header, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	h, err := ReadHeader(m.s)
	if err != nil {
		return Header{}, err
	}
	if err := checkKey(h.Key, expectedKey, description); err != nil {
		return h, err
	}
	return h, nil
}

// SkipBlock reads the next block's header, then advances the stream
// past its Word-aligned payload, returning the header it skipped.
func (m *Manager) SkipBlock(expectedKey *Key, description string) (Header, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	h, err := ReadHeader(m.s)
	if err != nil {
		return Header{}, err
	}
	if err := checkKey(h.Key, expectedKey, description); err != nil {
		return h, err
	}
	if err := SkipPayload(m.s, h); err != nil {
		return h, err
	}
	return h, nil
}

// SkipPayload advances the stream past info's Word-aligned payload,
// starting from the current position (which must already be at the
// first payload byte, as left by ReadBlockHeader).
func (m *Manager) SkipPayload(info Header, description string) (Header, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := SkipPayload(m.s, info); err != nil {
		return info, err
	}
	return info, nil
}

// readFull reads exactly n bytes from the stream without moving the
// surrounding lock boundary; callers must already hold m.mu.
func (m *Manager) readFull(n uint64, op string) ([]byte, error) {
	buf := make([]byte, n)
	if n == 0 {
		return buf, nil
	}
	if _, err := io.ReadFull(m.s, buf); err != nil {
		return nil, ioErrorf(err, op)
	}
	return buf, nil
}

// ReadAt performs a scoped seek-and-read: it seeks to offset and reads
// exactly len(buf) bytes into buf, all under a single lock acquisition
// that is released before the caller processes the result. This is the
// primitive the photon-library random-access reader builds its
// (voxel, channel) lookups on.
func (m *Manager) ReadAt(offset int64, buf []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, err := m.s.Seek(offset, io.SeekStart); err != nil {
		return ioErrorf(err, "read_at_seek")
	}
	if _, err := io.ReadFull(m.s, buf); err != nil {
		return ioErrorf(err, "read_at_read")
	}
	return nil
}

// writeAll writes buf to the stream in full; callers must already hold
// m.mu.
func (m *Manager) writeAll(buf []byte, op string) error {
	if _, err := m.s.Write(buf); err != nil {
		return ioErrorf(err, op)
	}
	return nil
}

// WriteHeader writes a raw block Header (key and size) to the stream.
// Most callers should prefer the typed Write* helpers in variant.go
// and number.go, which also emit the payload and padding.
func (m *Manager) WriteHeader(h Header) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return WriteHeader(m.s, h)
}

// WriteBlockAndPayload emits a block's header followed directly by
// data (data's length must equal info.Size) and the right amount of
// NUL padding, without buffering header and payload together. This is
// the path the photon-library writer uses for the PHVS payload block,
// to avoid a second copy of potentially hundreds of millions of
// entries.
func (m *Manager) WriteBlockAndPayload(info Header, data []byte) error {
	if uint64(len(data)) != info.Size {
		return formatErrorf("write_block_and_payload", "size", uint64(len(data)), info.Size)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := WriteHeader(m.s, info); err != nil {
		return err
	}
	if err := m.writeAll(data, "write_block_and_payload"); err != nil {
		return err
	}
	return m.writePadding(info.Size)
}

// writePadding writes the zero-fill bytes that bring a payload of the
// given size up to a Word boundary. Callers must already hold m.mu.
func (m *Manager) writePadding(size uint64) error {
	pad := PaddingSize(size)
	if pad == 0 {
		return nil
	}
	var zeros [Word]byte
	return m.writeAll(zeros[:pad], "write_padding")
}
