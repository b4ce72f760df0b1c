// Copyright 2011 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package photonlib

// Options configures Create. Open accepts Option values and ignores
// them. The defaults are set by resolveOptions, not by the zero value:
// a zero Options has createDirs false.
type Options struct {
	// createDirs controls whether Create makes the destination
	// directory (and any missing parents) before opening the file.
	// Defaults to true.
	createDirs bool
}

// Option mutates an Options value under construction.
type Option func(*Options)

// WithoutDirectoryCreation disables Create's default behavior of
// creating the destination directory if it does not already exist.
func WithoutDirectoryCreation() Option {
	return func(o *Options) { o.createDirs = false }
}

// resolveOptions applies opts, in order, over the defaults
// (createDirs true); passing no Option to Create yields the defaults.
func resolveOptions(opts ...Option) *Options {
	o := &Options{createDirs: true}
	for _, opt := range opts {
		opt(o)
	}
	return o
}
