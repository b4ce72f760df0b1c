// Copyright 2011 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package photonlib

import "math"

// validate checks the cross-field invariants of a fully populated
// Header: the version is supported, NVoxels agrees with the product of
// the three axes' step counts, NEntries agrees with NVoxels*NChannels,
// and each axis's bounds are internally consistent. It is called from
// both the reader, immediately after the block sequence is parsed, and
// the writer, before any bytes are emitted.
func validate(h Header) error {
	if h.Version == VersionUndefined {
		return schemaErrorf("validate", "PLIB", h.Version, CurrentVersion)
	}
	if h.Version != CurrentVersion {
		return schemaErrorf("validate", "PLIB", h.Version, CurrentVersion)
	}

	nVoxelsFromAxes := uint64(h.Axes[axisX].NSteps) *
		uint64(h.Axes[axisY].NSteps) * uint64(h.Axes[axisZ].NSteps)
	if uint64(h.NVoxels) != nVoxelsFromAxes {
		return schemaErrorf("validate", "NVXL", h.NVoxels, nVoxelsFromAxes)
	}

	wantEntries := uint64(h.NVoxels) * uint64(h.NChannels)
	if h.NEntries != wantEntries {
		return schemaErrorf("validate", "NTRY", h.NEntries, wantEntries)
	}

	for i, a := range h.Axes {
		if err := validateAxis(axis(i), a); err != nil {
			return err
		}
	}
	return nil
}

// validateAxis checks that upper ≈ lower + nSteps·step within a
// relative tolerance of 1e-3, since the bound is recomputed from
// floating-point arithmetic.
func validateAxis(a axis, ax Axis) error {
	recomputed := ax.Min + float64(ax.NSteps)*ax.Step
	if !withinRelativeTolerance(ax.Max, recomputed, axisTolerance) {
		return schemaErrorf("validate", "MAX"+a.suffix(), ax.Max, recomputed)
	}
	return nil
}

// withinRelativeTolerance reports whether observed and expected agree
// to within the given relative tolerance. When expected is zero, an
// absolute comparison is used instead, since a relative tolerance is
// undefined at zero.
func withinRelativeTolerance(observed, expected, tolerance float64) bool {
	diff := math.Abs(observed - expected)
	if expected == 0 {
		return diff <= tolerance
	}
	return diff/math.Abs(expected) <= tolerance
}

// validatePayloadSize checks PHVS.size == nEntries*4, the one
// invariant that depends on the payload block's header rather than
// the header block sequence alone.
func validatePayloadSize(nEntries uint64, payloadSize uint64) error {
	want := nEntries * 4
	if payloadSize != want {
		return schemaErrorf("validate", "PHVS", payloadSize, want)
	}
	return nil
}
