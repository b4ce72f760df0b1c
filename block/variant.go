// Copyright 2011 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package block

import "encoding/binary"

// versionHeaderSize is the fixed on-disk footprint of a Version block:
// a key followed directly by one word, with no explicit size field and
// therefore no padding.
const versionHeaderSize = KeySize + Word

// ReadVersion reads a Version block: exactly KeySize+Word bytes, no
// size field. If expectedKey is non-nil and the observed key does not
// match, it returns a key-mismatch Error; the block has already been
// consumed.
func (m *Manager) ReadVersion(expectedKey *Key, description string) (Key, uint32, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	buf, err := m.readFull(versionHeaderSize, "read_version")
	if err != nil {
		return Key{}, 0, err
	}
	var k Key
	copy(k[:], buf[:KeySize])
	if err := checkKey(k, expectedKey, description); err != nil {
		return k, 0, err
	}
	return k, binary.NativeEndian.Uint32(buf[KeySize:]), nil
}

// WriteVersion writes a Version block with the given key and value.
func (m *Manager) WriteVersion(key Key, version uint32) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	var buf [versionHeaderSize]byte
	copy(buf[:KeySize], key[:])
	binary.NativeEndian.PutUint32(buf[KeySize:], version)
	return m.writeAll(buf[:], "write_version")
}

// ReadBookmark reads a Bookmark block: a key with an empty payload. It
// verifies the payload size is zero, since a bookmark with a non-zero
// size at this call site is a schema violation (the generic
// ReadBlockHeader/SkipBlock path does not make this assertion — only
// callers that specifically expect a Bookmark do).
func (m *Manager) ReadBookmark(expectedKey *Key, description string) (Key, error) {
	h, err := m.ReadBlockHeader(expectedKey, description)
	if err != nil {
		return h.Key, err
	}
	if h.Size != 0 {
		return h.Key, formatErrorf("read_bookmark", description, h.Size, uint64(0))
	}
	return h.Key, nil
}

// WriteBookmark writes an empty-payload Bookmark block with the given
// key.
func (m *Manager) WriteBookmark(key Key) error {
	return m.WriteHeader(Header{Key: key, Size: 0})
}

// ReadString reads a String block: the next header, then exactly
// Size bytes of raw payload (the stored length is authoritative; no
// NUL terminator is required), skipping the Word-alignment padding.
func (m *Manager) ReadString(expectedKey *Key, description string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	h, err := ReadHeader(m.s)
	if err != nil {
		return "", err
	}
	if err := checkKey(h.Key, expectedKey, description); err != nil {
		return "", err
	}
	buf, err := m.readFull(h.Size, "read_string")
	if err != nil {
		return "", err
	}
	if pad := PaddingSize(h.Size); pad != 0 {
		if _, err := m.readFull(pad, "read_string_padding"); err != nil {
			return "", err
		}
	}
	return string(buf), nil
}

// WriteString writes a String block: the key, the byte length of
// value, value's raw bytes, and Word-alignment padding.
func (m *Manager) WriteString(key Key, value string) error {
	info := Header{Key: key, Size: uint64(len(value))}
	return m.WriteBlockAndPayload(info, []byte(value))
}

// ReadBlob reads a Blob block: the next header, then exactly Size
// bytes of opaque payload, skipping the Word-alignment padding. The
// returned bytes belong to the caller; no internal buffer is retained.
func (m *Manager) ReadBlob(expectedKey *Key, description string) (Header, []byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	h, err := ReadHeader(m.s)
	if err != nil {
		return Header{}, nil, err
	}
	if err := checkKey(h.Key, expectedKey, description); err != nil {
		return h, nil, err
	}
	buf, err := m.readFull(h.Size, "read_blob")
	if err != nil {
		return h, nil, err
	}
	pad := PaddingSize(h.Size)
	if pad != 0 {
		if _, err := m.readFull(pad, "read_blob_padding"); err != nil {
			return h, nil, err
		}
	}
	return h, buf, nil
}

// WriteBlob writes a Blob block with the given key and opaque payload.
func (m *Manager) WriteBlob(key Key, data []byte) error {
	info := Header{Key: key, Size: uint64(len(data))}
	return m.WriteBlockAndPayload(info, data)
}
