// Copyright 2011 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package block

import (
	"encoding/binary"
	"io"
)

// Word is the alignment quantum: every block's on-disk footprint is
// rounded up to a multiple of Word bytes by zero-filling the tail.
const Word = 4

// HeaderSize is the fixed on-disk size, in bytes, of a block Header:
// a Word-sized Key followed by an 8-byte unsigned payload size.
const HeaderSize = KeySize + 8

// Header is the 12-byte prefix of every block: its key and the size,
// in bytes, of the payload that immediately follows it on disk. The
// size does not include the padding that rounds the block up to a
// Word boundary.
type Header struct {
	Key  Key
	Size uint64
}

// AlignedSize rounds size up to the next multiple of Word.
func AlignedSize(size uint64) uint64 {
	return size + PaddingSize(size)
}

// PaddingSize returns the number of zero padding bytes that follow a
// payload of the given size to bring the block's footprint to a Word
// boundary.
func PaddingSize(size uint64) uint64 {
	rem := size % Word
	if rem == 0 {
		return 0
	}
	return Word - rem
}

// ReadHeader reads a 12-byte block Header from r: 4 bytes of key, then
// an 8-byte host-order unsigned size. A short read is reported as a
// KindIO Error; the stream's position after a failed read is not
// guaranteed to be recoverable.
func ReadHeader(r io.Reader) (Header, error) {
	var buf [HeaderSize]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return Header{}, ioErrorf(err, "read_header")
	}
	var h Header
	copy(h.Key[:], buf[:KeySize])
	h.Size = binary.NativeEndian.Uint64(buf[KeySize:])
	return h, nil
}

// WriteHeader writes h's 12-byte on-disk representation to w.
func WriteHeader(w io.Writer, h Header) error {
	var buf [HeaderSize]byte
	copy(buf[:KeySize], h.Key[:])
	binary.NativeEndian.PutUint64(buf[KeySize:], h.Size)
	if _, err := w.Write(buf[:]); err != nil {
		return ioErrorf(err, "write_header")
	}
	return nil
}

// SkipPayload advances s, a seekable stream currently positioned at
// the first payload byte described by h, past h's payload and its
// Word-alignment padding.
func SkipPayload(s io.Seeker, h Header) error {
	if _, err := s.Seek(int64(AlignedSize(h.Size)), io.SeekCurrent); err != nil {
		return ioErrorf(err, "skip_payload")
	}
	return nil
}
