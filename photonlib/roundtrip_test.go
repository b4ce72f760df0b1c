// Copyright 2011 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package photonlib

import (
	"path/filepath"
	"testing"

	"github.com/kr/pretty"
	"github.com/pmezard/go-difflib/difflib"
	"github.com/stretchr/testify/require"
)

// assertPayloadEqual renders a unified diff between want and got on
// mismatch, rather than a single "not equal" assertion failure — handy
// once payloads run into the hundreds of entries.
func assertPayloadEqual(t *testing.T, want, got []float32) {
	t.Helper()
	if len(want) == len(got) {
		equal := true
		for i := range want {
			if want[i] != got[i] {
				equal = false
				break
			}
		}
		if equal {
			return
		}
	}
	diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(pretty.Sprint(want)),
		B:        difflib.SplitLines(pretty.Sprint(got)),
		FromFile: "want",
		ToFile:   "got",
		Context:  2,
	})
	require.NoError(t, err)
	t.Fatalf("payload mismatch:\n%s", diff)
}

// TestRoundTrip writes an 8-voxel, 2-channel library on a 2x2x2 grid,
// reads it back, and checks random-access lookups, metadata, and the
// presence of the terminating DONE block.
func TestRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lib.photon")
	h := sampleHeader()
	p := samplePayload()

	require.NoError(t, Create(path, h, p))

	r, err := Open(path)
	require.NoError(t, err)
	defer r.Close()

	require.Equal(t, stateDone, r.state)

	meta := r.Metadata()
	require.Equal(t, uint32(1), meta.Version)
	require.Equal(t, uint32(8), meta.NVoxels)
	require.Equal(t, uint32(2), meta.NChannels)

	require.Equal(t, float32(8.0), r.Get(3, 1))

	out := make([]float32, meta.NChannels)
	ok, err := r.GetVoxel(5, out)
	require.NoError(t, err)
	require.True(t, ok)
	assertPayloadEqual(t, []float32{11.0, 12.0}, out)

	for i := 0; i < 16; i++ {
		voxel := uint64(i / int(meta.NChannels))
		channel := uint64(i % int(meta.NChannels))
		require.Equal(t, p[i], r.Get(voxel, channel), "entry %d", i)
	}
}

// TestRoundTripPreservesConfiguration checks that the free-form
// configuration string and axis geometry survive the round trip
// unchanged, independent of the payload-focused scenario above.
func TestRoundTripPreservesConfiguration(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lib.photon")
	h := sampleHeader()
	h.Configuration = "detector=PMT;gain=1.0"
	p := samplePayload()

	require.NoError(t, Create(path, h, p))
	r, err := Open(path)
	require.NoError(t, err)
	defer r.Close()

	meta := r.Metadata()
	require.Equal(t, "detector=PMT;gain=1.0", meta.Configuration)
	for i, ax := range meta.Axes {
		require.Equal(t, h.Axes[i], ax, "axis %d", i)
	}
}
