// Copyright 2011 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package photonlib

// sampleHeader returns the header for an 8-voxel, 2-channel library
// laid out on a 2x2x2 grid.
func sampleHeader() Header {
	ax := Axis{NSteps: 2, Min: 0, Max: 2, Step: 1}
	return Header{
		Version:       CurrentVersion,
		Configuration: "test configuration",
		NEntries:      16,
		NChannels:     2,
		NVoxels:       8,
		Axes:          [3]Axis{ax, ax, ax},
	}
}

// samplePayload returns p[i] = i+1.0, i in [0, 16), matching
// sampleHeader's dimensions.
func samplePayload() []float32 {
	p := make([]float32, 16)
	for i := range p {
		p[i] = float32(i) + 1.0
	}
	return p
}
