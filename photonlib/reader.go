// Copyright 2011 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package photonlib

import (
	"encoding/binary"
	"math"
	"os"

	"github.com/voxelphoton/photonlib/block"
)

// state names the reader's header-parse state machine. Each
// transition consumes exactly one block from the schema sequence; any
// parse failure transitions to stateFailed and the cached header is
// discarded.
type state int

const (
	stateOpened state = iota
	stateVersionRead
	stateMetaRead
	stateAxesRead0
	stateAxesRead1
	stateAxesRead2
	stateDataHeaderRead
	stateDataSkipped
	stateDone
	stateFailed
)

// Reader provides sequential header metadata and unbounded,
// thread-safe random-access (voxel, channel) lookups against a single
// open photon-library file. It performs no in-memory caching of the
// payload: every Get/GetVoxel call issues a fresh seek and read.
//
// A Reader may be shared by any number of goroutines; the underlying
// block.Manager serializes each lookup's (seek, read) pair under a
// single mutex held for no longer than that pair.
type Reader struct {
	f     *os.File
	mgr   *block.Manager
	meta  Metadata
	state state

	dataOffset int64
	nVoxels    uint64
	nChannels  uint64
}

// Open opens path, parses its header, and returns a Reader positioned
// to service random-access lookups. The file handle is owned by the
// returned Reader and is released by Close; on any parse failure Open
// closes the handle itself before returning, so no partial Reader ever
// leaks a file descriptor.
func Open(path string, _ ...Option) (*Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, wrapFormatErrorf(err, "open")
	}

	r := &Reader{f: f, mgr: block.NewManager(f)}
	h, err := r.readHeader()
	if err != nil {
		f.Close()
		return nil, err
	}

	r.meta = h.metadata()
	r.nVoxels = uint64(h.NVoxels)
	r.nChannels = uint64(h.NChannels)
	return r, nil
}

// readHeader drives the fixed sequence of block reads that make up
// the photon-library header, walking the state machine in §4.4 order.
// After PHVS is parsed as a header (not a full payload read), the
// current offset is the payload's dataOffset and the payload itself is
// skipped. After DONE, it asserts there is nothing left to read.
func (r *Reader) readHeader() (Header, error) {
	r.state = stateOpened
	var h Header

	fail := func(err error) (Header, error) {
		r.state = stateFailed
		return Header{}, err
	}

	if _, version, err := r.mgr.ReadVersion(&keyPLIB, "PLIB"); err != nil {
		return fail(err)
	} else {
		if version == VersionUndefined || version != CurrentVersion {
			return fail(schemaErrorf("read_header", "PLIB", version, CurrentVersion))
		}
		h.Version = version
	}
	r.state = stateVersionRead

	cfg, err := r.mgr.ReadString(&keyCNFG, "CNFG")
	if err != nil {
		return fail(err)
	}
	h.Configuration = cfg

	nEntries, err := block.ReadNumber[uint64](r.mgr, &keyNTRY, "NTRY")
	if err != nil {
		return fail(err)
	}
	h.NEntries = nEntries

	nChannels, err := block.ReadNumber[uint32](r.mgr, &keyNCHN, "NCHN")
	if err != nil {
		return fail(err)
	}
	h.NChannels = nChannels

	nVoxels, err := block.ReadNumber[uint32](r.mgr, &keyNVXL, "NVXL")
	if err != nil {
		return fail(err)
	}
	h.NVoxels = nVoxels
	r.state = stateMetaRead

	axisStates := [3]state{stateAxesRead0, stateAxesRead1, stateAxesRead2}
	for i := 0; i < 3; i++ {
		a := axis(i)
		ax, err := r.readAxis(a)
		if err != nil {
			return fail(err)
		}
		h.Axes[i] = ax
		r.state = axisStates[i]
	}

	if err := validate(h); err != nil {
		return fail(err)
	}

	phvsKey := keyPHVS
	phvsHeader, err := r.mgr.ReadBlockHeader(&phvsKey, "PHVS")
	if err != nil {
		return fail(err)
	}
	if err := validatePayloadSize(h.NEntries, phvsHeader.Size); err != nil {
		return fail(err)
	}
	dataOffset, err := r.mgr.CurrentOffset()
	if err != nil {
		return fail(err)
	}
	r.dataOffset = dataOffset
	r.state = stateDataHeaderRead

	if _, err := r.mgr.SkipPayload(phvsHeader, "PHVS"); err != nil {
		return fail(err)
	}
	r.state = stateDataSkipped

	doneKey := keyDONE
	if _, err := r.mgr.ReadBookmark(&doneKey, "DONE"); err != nil {
		return fail(err)
	}

	if _, err := r.mgr.SkipBlock(nil, "trailing data"); err == nil {
		return fail(schemaErrorf("read_header", "DONE", "trailing block", "end of file"))
	}
	r.state = stateDone
	return h, nil
}

func (r *Reader) readAxis(a axis) (Axis, error) {
	open := a.keyOpen()
	if _, err := r.mgr.ReadBookmark(&open, "AXI"+a.suffix()); err != nil {
		return Axis{}, err
	}
	stepsKey := a.keySteps()
	nSteps, err := block.ReadNumber[uint32](r.mgr, &stepsKey, "NBO"+a.suffix())
	if err != nil {
		return Axis{}, err
	}
	minKey := a.keyMin()
	min, err := block.ReadNumber[float64](r.mgr, &minKey, "MIN"+a.suffix())
	if err != nil {
		return Axis{}, err
	}
	maxKey := a.keyMax()
	max, err := block.ReadNumber[float64](r.mgr, &maxKey, "MAX"+a.suffix())
	if err != nil {
		return Axis{}, err
	}
	stepKey := a.keyStep()
	step, err := block.ReadNumber[float64](r.mgr, &stepKey, "STE"+a.suffix())
	if err != nil {
		return Axis{}, err
	}
	closeKey := a.keyClose()
	if _, err := r.mgr.ReadBookmark(&closeKey, "END"+a.suffix()); err != nil {
		return Axis{}, err
	}
	return Axis{NSteps: nSteps, Min: min, Max: max, Step: step}, nil
}

// Metadata returns the parsed header: version, configuration,
// dimensions, and axis specs.
func (r *Reader) Metadata() Metadata {
	return r.meta
}

// Get returns the scalar at (voxel, channel), issuing a fresh seek and
// read against the shared file handle. An out-of-range voxel or
// channel index returns 0.0 without performing any I/O; lookup against
// this format is deliberately never an error.
func (r *Reader) Get(voxel, channel uint64) float32 {
	if voxel >= r.nVoxels || channel >= r.nChannels {
		return 0.0
	}
	offset := r.dataOffset + int64((voxel*r.nChannels+channel)*4)
	var buf [4]byte
	if err := r.mgr.ReadAt(offset, buf[:]); err != nil {
		return 0.0
	}
	return math.Float32frombits(binary.NativeEndian.Uint32(buf[:]))
}

// GetVoxel reads all nChannels scalars of voxel into out, which must
// have length equal to Metadata().NChannels. It returns ok=false for
// an out-of-range voxel (distinguishable from an all-zero voxel)
// without performing any I/O, or a non-nil error on I/O failure.
func (r *Reader) GetVoxel(voxel uint64, out []float32) (bool, error) {
	if voxel >= r.nVoxels {
		return false, nil
	}
	if uint64(len(out)) != r.nChannels {
		return false, schemaErrorf("get_voxel", "out", len(out), r.nChannels)
	}
	offset := r.dataOffset + int64(voxel*r.nChannels*4)
	buf := make([]byte, r.nChannels*4)
	if err := r.mgr.ReadAt(offset, buf); err != nil {
		return false, wrapFormatErrorf(err, "get_voxel")
	}
	copy(out, bytesToFloats(buf))
	return true, nil
}

// Close releases the underlying file handle. It is safe to call
// exactly once; a Reader must not be used after Close.
func (r *Reader) Close() error {
	return r.f.Close()
}
