// Copyright 2011 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package photonlib

// Axis describes one spatial dimension of the voxel grid: the number
// of steps and the cell geometry, all in centimeters.
type Axis struct {
	NSteps uint32
	Min    float64
	Max    float64
	Step   float64
}

// Header is the fully parsed photon-library file header: everything
// preceding the dense payload. Its on-disk representation is
// host-byte-order only; it is never translated
// across machines of differing endianness.
type Header struct {
	Version       uint32
	Configuration string
	NEntries      uint64
	NChannels     uint32
	NVoxels       uint32
	Axes          [3]Axis
}

// Metadata is the read-only view of a Header exposed by Reader: the
// fields a caller needs to interpret a library's payload, without the
// write-time-only fields such as NEntries.
type Metadata struct {
	Version       uint32
	Configuration string
	NVoxels       uint32
	NChannels     uint32
	Axes          [3]Axis
}

func (h Header) metadata() Metadata {
	return Metadata{
		Version:       h.Version,
		Configuration: h.Configuration,
		NVoxels:       h.NVoxels,
		NChannels:     h.NChannels,
		Axes:          h.Axes,
	}
}
