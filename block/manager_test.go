// Copyright 2011 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package block

import (
	"fmt"
	"strconv"
	"strings"
	"testing"

	"github.com/cockroachdb/datadriven"
	"github.com/stretchr/testify/require"
)

// TestSequence drives a generic block-sequence scenario through a
// datadriven script: build a hand chosen sequence of typed blocks,
// then read every block back in order and check that one further
// skip past the last block fails.
func TestSequence(t *testing.T) {
	var s *memStream
	var m *Manager

	datadriven.RunTest(t, "testdata/sequence", func(t *testing.T, d *datadriven.TestData) string {
		switch d.Cmd {
		case "build":
			s = newMemStream()
			m = NewManager(s)
			for _, line := range strings.Split(d.Input, "\n") {
				if line == "" {
					continue
				}
				fields := strings.SplitN(line, " ", 3)
				switch fields[0] {
				case "version":
					v, err := strconv.ParseUint(fields[2], 10, 32)
					require.NoError(t, err)
					require.NoError(t, m.WriteVersion(NewKey(fields[1]), uint32(v)))
				case "string":
					require.NoError(t, m.WriteString(NewKey(fields[1]), fields[2]))
				case "number-u32":
					v, err := strconv.ParseUint(fields[2], 10, 32)
					require.NoError(t, err)
					require.NoError(t, WriteNumber(m, NewKey(fields[1]), uint32(v)))
				case "number-i64":
					v, err := strconv.ParseInt(fields[2], 10, 64)
					require.NoError(t, err)
					require.NoError(t, WriteNumber(m, NewKey(fields[1]), v))
				case "bookmark":
					require.NoError(t, m.WriteBookmark(NewKey(fields[1])))
				case "blob":
					var data []byte
					for _, tok := range strings.Fields(fields[2]) {
						f, err := strconv.ParseFloat(tok, 32)
						require.NoError(t, err)
						data = append(data, encodeFixed(float32(f))...)
					}
					require.NoError(t, m.WriteBlob(NewKey(fields[1]), data))
				default:
					t.Fatalf("unknown build line %q", line)
				}
			}
			require.NoError(t, rewind(s))
			return "ok"

		case "read-version":
			key := NewKey(d.CmdArgs[0].Key)
			gotKey, v, err := m.ReadVersion(&key, d.CmdArgs[0].Key)
			require.NoError(t, err)
			return fmt.Sprintf("%s %d\n", gotKey, v)

		case "read-string":
			key := NewKey(d.CmdArgs[0].Key)
			v, err := m.ReadString(&key, d.CmdArgs[0].Key)
			require.NoError(t, err)
			return fmt.Sprintf("%s %q\n", key.String(), v)

		case "read-number-u32":
			key := NewKey(d.CmdArgs[0].Key)
			v, err := ReadNumber[uint32](m, &key, d.CmdArgs[0].Key)
			require.NoError(t, err)
			return fmt.Sprintf("%s %d\n", key.String(), v)

		case "read-number-i64":
			key := NewKey(d.CmdArgs[0].Key)
			v, err := ReadNumber[int64](m, &key, d.CmdArgs[0].Key)
			require.NoError(t, err)
			return fmt.Sprintf("%s %d\n", key.String(), v)

		case "read-bookmark":
			key := NewKey(d.CmdArgs[0].Key)
			got, err := m.ReadBookmark(&key, d.CmdArgs[0].Key)
			require.NoError(t, err)
			return got.String() + "\n"

		case "read-blob":
			key := NewKey(d.CmdArgs[0].Key)
			_, data, err := m.ReadBlob(&key, d.CmdArgs[0].Key)
			require.NoError(t, err)
			vals := make([]int, len(data)/4)
			for i := range vals {
				vals[i] = int(decodeFixed[float32](data[i*4 : i*4+4]))
			}
			return fmt.Sprintf("%s %v\n", key.String(), vals)

		case "skip-block":
			_, err := m.SkipBlock(nil, "trailing")
			return fmt.Sprintf("error: %s\n", err)

		default:
			t.Fatalf("unknown command %s", d.Cmd)
			return ""
		}
	})
}

func rewind(s *memStream) error {
	_, err := s.Seek(0, 0)
	return err
}

// TestSkipCorrectness checks that reading a block's header and payload
// explicitly, versus calling SkipBlock, leave the cursor at the same
// position for a non-last block in the stream.
func TestSkipCorrectness(t *testing.T) {
	build := func() *memStream {
		s := newMemStream()
		m := NewManager(s)
		require.NoError(t, m.WriteString(NewKey("AAAA"), "first block"))
		require.NoError(t, m.WriteString(NewKey("BBBB"), "second"))
		return s
	}

	// Path 1: read header, read payload manually, read header again.
	s1 := build()
	m1 := NewManager(s1)
	h1, err := m1.ReadBlockHeader(nil, "")
	require.NoError(t, err)
	_, err = m1.readFull(AlignedSize(h1.Size), "drain")
	require.NoError(t, err)
	q1, err := m1.CurrentOffset()
	require.NoError(t, err)

	// Path 2: skip the block outright.
	s2 := build()
	m2 := NewManager(s2)
	_, err = m2.SkipBlock(nil, "")
	require.NoError(t, err)
	q2, err := m2.CurrentOffset()
	require.NoError(t, err)

	require.Equal(t, q1, q2)

	// Both should now be positioned at the second block.
	key := NewKey("BBBB")
	v1, err := m1.ReadString(&key, "BBBB")
	require.NoError(t, err)
	v2, err := m2.ReadString(&key, "BBBB")
	require.NoError(t, err)
	require.Equal(t, "second", v1)
	require.Equal(t, v1, v2)
}

// TestKeyMismatchConsumesBlock checks that a key-mismatch error still
// reports both the observed and expected keys, and that the offending
// block has been consumed (the caller must not assume it can retry at
// the same position).
func TestKeyMismatchConsumesBlock(t *testing.T) {
	s := newMemStream()
	m := NewManager(s)
	require.NoError(t, m.WriteBookmark(NewKey("AAAA")))
	require.NoError(t, rewind(s))

	expected := NewKey("ZZZZ")
	_, err := m.ReadBlockHeader(&expected, "mismatch")
	require.Error(t, err)
	var blockErr *Error
	require.ErrorAs(t, err, &blockErr)
	require.Equal(t, KindFormat, blockErr.Kind)
	require.Equal(t, "AAAA", blockErr.Observed)
	require.Equal(t, "ZZZZ", blockErr.Expected)

	off, err := m.CurrentOffset()
	require.NoError(t, err)
	require.Equal(t, int64(HeaderSize), off, "the mismatching header should have been consumed")
}
