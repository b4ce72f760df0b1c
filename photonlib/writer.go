// Copyright 2011 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package photonlib

import (
	"os"
	"path/filepath"

	"github.com/voxelphoton/photonlib/block"
)

// fixHeader assigns the default-version sentinel to the current
// version, recomputes NVoxels/NEntries when left zero, and then
// validates the result.
func fixHeader(h Header) (Header, error) {
	if h.Version == VersionUndefined {
		h.Version = CurrentVersion
	}
	if h.NVoxels == 0 {
		product := uint64(h.Axes[axisX].NSteps) * uint64(h.Axes[axisY].NSteps) * uint64(h.Axes[axisZ].NSteps)
		h.NVoxels = uint32(product)
	}
	if h.NEntries == 0 {
		h.NEntries = uint64(h.NVoxels) * uint64(h.NChannels)
	}
	if err := validate(h); err != nil {
		return h, err
	}
	return h, nil
}

// Create writes a new photon-library file at path from header and
// payload, a contiguous buffer of exactly header.NEntries (after
// fixHeader) float32 visibility values, laid out voxel-major,
// channel-minor. It is an error to call Create concurrently with
// another writer on the same path; this format has no concurrent-writer
// support.
func Create(path string, header Header, payload []float32, opts ...Option) error {
	o := resolveOptions(opts...)

	fixed, err := fixHeader(header)
	if err != nil {
		return err
	}
	if uint64(len(payload)) != fixed.NEntries {
		return schemaErrorf("create", "payload", len(payload), fixed.NEntries)
	}

	if o.createDirs {
		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return wrapFormatErrorf(err, "create_dir")
			}
		}
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return wrapFormatErrorf(err, "create")
	}
	defer f.Close()

	mgr := block.NewManager(f)
	if err := writeHeader(mgr, fixed); err != nil {
		return err
	}
	if err := writePayload(mgr, fixed, payload); err != nil {
		return err
	}
	if err := mgr.WriteBookmark(keyDONE); err != nil {
		return wrapFormatErrorf(err, "write_done")
	}
	return nil
}

// writeHeader emits the prescribed sequence of header blocks (§3):
// PLIB, CNFG, NTRY, NCHN, NVXL, then the three axis sub-sequences.
func writeHeader(mgr *block.Manager, h Header) error {
	if err := mgr.WriteVersion(keyPLIB, h.Version); err != nil {
		return wrapFormatErrorf(err, "write_plib")
	}
	if err := mgr.WriteString(keyCNFG, h.Configuration); err != nil {
		return wrapFormatErrorf(err, "write_cnfg")
	}
	if err := block.WriteNumber(mgr, keyNTRY, h.NEntries); err != nil {
		return wrapFormatErrorf(err, "write_ntry")
	}
	if err := block.WriteNumber(mgr, keyNCHN, h.NChannels); err != nil {
		return wrapFormatErrorf(err, "write_nchn")
	}
	if err := block.WriteNumber(mgr, keyNVXL, h.NVoxels); err != nil {
		return wrapFormatErrorf(err, "write_nvxl")
	}
	for i := 0; i < 3; i++ {
		if err := writeAxis(mgr, axis(i), h.Axes[i]); err != nil {
			return err
		}
	}
	return nil
}

func writeAxis(mgr *block.Manager, a axis, ax Axis) error {
	if err := mgr.WriteBookmark(a.keyOpen()); err != nil {
		return wrapFormatErrorf(err, "write_axis_open")
	}
	if err := block.WriteNumber(mgr, a.keySteps(), ax.NSteps); err != nil {
		return wrapFormatErrorf(err, "write_axis_nsteps")
	}
	if err := block.WriteNumber(mgr, a.keyMin(), ax.Min); err != nil {
		return wrapFormatErrorf(err, "write_axis_min")
	}
	if err := block.WriteNumber(mgr, a.keyMax(), ax.Max); err != nil {
		return wrapFormatErrorf(err, "write_axis_max")
	}
	if err := block.WriteNumber(mgr, a.keyStep(), ax.Step); err != nil {
		return wrapFormatErrorf(err, "write_axis_step")
	}
	if err := mgr.WriteBookmark(a.keyClose()); err != nil {
		return wrapFormatErrorf(err, "write_axis_close")
	}
	return nil
}

// writePayload emits the PHVS block directly from payload's backing
// array via WriteBlockAndPayload, avoiding a second buffering of what
// may be hundreds of millions of entries.
func writePayload(mgr *block.Manager, h Header, payload []float32) error {
	info := block.Header{Key: keyPHVS, Size: h.NEntries * 4}
	if err := mgr.WriteBlockAndPayload(info, floatsToBytes(payload)); err != nil {
		return wrapFormatErrorf(err, "write_phvs")
	}
	return nil
}
