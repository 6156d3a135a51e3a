// Copyright 2024 Bjørn Erik Pedersen
// SPDX-License-Identifier: MIT

// Package scitiff reads TIFF and BigTIFF files written by scientific instruments
// (electron microscopes, SPM and similar) and decodes their uncompressed strips to float64.
//
// Such files are often not quite conformant, so the reader accepts unsorted
// directories and entries of unknown type, but never reads outside the file.
package scitiff

import (
	"encoding/binary"
	"fmt"

	"golang.org/x/exp/mmap"
)

// AnyDir makes the tag getters search all directories in order.
const AnyDir = -1

const (
	defaultMaxDirectories = 4096
	defaultMaxDimension   = 1 << 20
)

// Options configures Parse and Load.
type Options struct {
	// Warnf will be called for each warning, e.g. tolerated oddities in the file.
	Warnf func(string, ...any)

	// MaxDirectories is the maximum number of directories to follow.
	// Default value is 4096.
	MaxDirectories int

	// MaxDimension is the largest accepted image width or height.
	// It guards against huge allocations from hostile files.
	// Default value is 1 << 20.
	MaxDimension uint64
}

func (o *Options) init() {
	if o.Warnf == nil {
		o.Warnf = func(string, ...any) {}
	}
	if o.MaxDirectories <= 0 {
		o.MaxDirectories = defaultMaxDirectories
	}
	if o.MaxDimension == 0 {
		o.MaxDimension = defaultMaxDimension
	}
}

// File is a loaded TIFF file.
// It is immutable and safe for concurrent use.
type File struct {
	data    []byte
	bo      byteOrder
	version Version
	dirs    []Directory

	opts Options
}

// Load reads the whole file into memory and parses its directories.
func Load(filename string, opts Options) (*File, error) {
	r, err := mmap.Open(filename)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	data := make([]byte, r.Len())
	if _, err := r.ReadAt(data, 0); err != nil {
		return nil, fmt.Errorf("read %s: %w", filename, err)
	}

	f, err := Parse(data, opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return f, nil
}

// Parse parses data, which is owned by the returned File and must not be modified.
//
// All directories are read and every entry's out-of-line data is checked to lie
// within data. Any violation is an ErrStructural and no File is returned.
func Parse(data []byte, opts Options) (f *File, err error) {
	defer func() {
		if err2 := errFromRecover(recover()); err2 != nil {
			f, err = nil, err2
		}
	}()

	opts.init()

	h, err := Detect(data, 0, nil)
	if err != nil {
		return nil, err
	}

	bo, _ := byteOrderFor(h.ByteOrder)
	f = &File{
		data:    data,
		bo:      bo,
		version: h.Version,
		opts:    opts,
	}

	if err := f.loadDirectories(); err != nil {
		return nil, err
	}
	if err := f.validateEntries(); err != nil {
		return nil, err
	}
	f.sortEntries()

	return f, nil
}

func errFromRecover(r any) error {
	if r == nil {
		return nil
	}
	if err, ok := r.(error); ok {
		if isStructuralErrorCandidate(err) {
			return fmt.Errorf("%w: %w", ErrStructural, err)
		}
		return err
	}
	return fmt.Errorf("unknown panic: %v", r)
}

// Version returns the TIFF flavour of f.
func (f *File) Version() Version {
	return f.version
}

// ByteOrder returns the byte order of f.
func (f *File) ByteOrder() binary.ByteOrder {
	return f.bo.(endian).ByteOrder
}

// Len returns the file size in bytes.
func (f *File) Len() int {
	return len(f.data)
}

// NumDirectories returns the number of directories in f.
func (f *File) NumDirectories() int {
	return len(f.dirs)
}

// Directory returns the entries of directory i, sorted by tag.
// The returned slice must not be modified.
func (f *File) Directory(i int) Directory {
	if i < 0 || i >= len(f.dirs) {
		return nil
	}
	return f.dirs[i]
}

// Slice returns n bytes of the file starting at offset, or false if
// that range is not within the file.
// Importers use this for data of vendor types the loader cannot size-check.
// The returned slice must not be modified.
func (f *File) Slice(offset, n uint64) ([]byte, bool) {
	if !f.fits(offset, n) {
		return nil, false
	}
	return f.data[offset : offset+n : offset+n], true
}

// fits reports whether [offset, offset+n) lies within the file.
func (f *File) fits(offset, n uint64) bool {
	end := offset + n
	if end < offset {
		return false
	}
	return end <= uint64(len(f.data))
}
