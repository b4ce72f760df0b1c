// Copyright 2011 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package photonlib

import "unsafe"

// floatsToBytes reinterprets a []float32 payload as its raw on-disk
// bytes, without copying. The returned slice is a borrowed view: it
// aliases v's backing array and must not outlive it.
func floatsToBytes(v []float32) []byte {
	if len(v) == 0 {
		return nil
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(&v[0])), len(v)*4)
}

// bytesToFloats reinterprets a byte slice, whose length must be a
// multiple of 4, as a []float32 view. The returned slice aliases b's
// backing array.
func bytesToFloats(b []byte) []float32 {
	if len(b) == 0 {
		return nil
	}
	return unsafe.Slice((*float32)(unsafe.Pointer(&b[0])), len(b)/4)
}
