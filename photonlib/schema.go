// Copyright 2011 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

// Package photonlib implements the photon-library file schema: the
// prescribed sequence of tagged blocks (built on package block) that
// forms one voxel/channel visibility-table file, plus a random-access
// reader that addresses the dense payload by (voxel, channel) without
// any in-memory caching.
package photonlib

import "github.com/voxelphoton/photonlib/block"

// CurrentVersion is the only version this package writes and accepts.
// VersionUndefined is reserved and never valid on disk.
const (
	VersionUndefined uint32 = 0
	CurrentVersion   uint32 = 1
)

// Schema keys, in on-disk order. Axis-specific keys are built by
// axisKey, which appends the one-letter axis suffix (X, Y, or Z).
var (
	keyPLIB = block.NewKey("PLIB")
	keyCNFG = block.NewKey("CNFG")
	keyNTRY = block.NewKey("NTRY")
	keyNCHN = block.NewKey("NCHN")
	keyNVXL = block.NewKey("NVXL")
	keyPHVS = block.NewKey("PHVS")
	keyDONE = block.NewKey("DONE")
)

// axis identifies one of the three spatial axes, in schema order.
type axis int

const (
	axisX axis = iota
	axisY
	axisZ
)

// suffix returns the one-letter axis tag used in AXI{X|Y|Z} and its
// sibling keys.
func (a axis) suffix() string {
	switch a {
	case axisX:
		return "X"
	case axisY:
		return "Y"
	case axisZ:
		return "Z"
	default:
		panic("photonlib: invalid axis")
	}
}

// name is the axis's lower-case name, used in error messages.
func (a axis) name() string {
	switch a {
	case axisX:
		return "x"
	case axisY:
		return "y"
	case axisZ:
		return "z"
	default:
		panic("photonlib: invalid axis")
	}
}

func (a axis) keyOpen() block.Key { return block.NewKey("AXI" + a.suffix()) }
func (a axis) keySteps() block.Key { return block.NewKey("NBO" + a.suffix()) }
func (a axis) keyMin() block.Key   { return block.NewKey("MIN" + a.suffix()) }
func (a axis) keyMax() block.Key   { return block.NewKey("MAX" + a.suffix()) }
func (a axis) keyStep() block.Key  { return block.NewKey("STE" + a.suffix()) }
func (a axis) keyClose() block.Key { return block.NewKey("END" + a.suffix()) }

// axisTolerance is the relative tolerance used to check that an
// axis's upper bound equals its lower bound plus nSteps·step.
const axisTolerance = 1e-3
