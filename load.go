// Copyright 2024 Bjørn Erik Pedersen
// SPDX-License-Identifier: MIT

package scitiff

import (
	"cmp"
	"slices"
)

// layout describes the version dependent sizes of the directory structures.
type layout struct {
	countLen uint64 // entry count at the start of a directory
	entryLen uint64 // one entry
	slotLen  uint64 // value slot within an entry, also the offset size
}

var (
	layoutClassic = layout{countLen: 2, entryLen: 12, slotLen: 4}
	layoutBig     = layout{countLen: 8, entryLen: 20, slotLen: 8}
)

func (f *File) layout() layout {
	if f.version == BigTIFF {
		return layoutBig
	}
	return layoutClassic
}

// readLength reads an offset or count: 32 bits in classic TIFF, 64 bits in BigTIFF.
func (f *File) readLength(b []byte) uint64 {
	if f.version == BigTIFF {
		return f.bo.Uint64(b)
	}
	return uint64(f.bo.Uint32(b))
}

// loadDirectories walks the chain of directories starting at the header.
// Every region is bounds checked before it is read.
func (f *File) loadDirectories() error {
	l := f.layout()
	size := uint64(len(f.data))

	var offset uint64
	if f.version == BigTIFF {
		// Detect made sure we have the 16 header bytes.
		bytesize := f.bo.Uint16(f.data[4:])
		reserved := f.bo.Uint16(f.data[6:])
		if bytesize != 8 || reserved != 0 {
			return newStructuralErrorf("BigTIFF reserved fields are %d and %d instead of 8 and 0", bytesize, reserved)
		}
		offset = f.bo.Uint64(f.data[8:])
	} else {
		offset = uint64(f.bo.Uint32(f.data[4:]))
	}

	if offset == 0 {
		return newStructuralErrorf("no image file directory")
	}

	seen := make(map[uint64]bool)

	for offset != 0 {
		dirno := len(f.dirs)
		if dirno >= f.opts.MaxDirectories {
			return newStructuralErrorf("more than %d directories", f.opts.MaxDirectories)
		}
		if seen[offset] {
			return newStructuralErrorf("directory %d at offset %d was already read", dirno, offset)
		}
		seen[offset] = true

		if !f.fits(offset, l.countLen+l.slotLen) {
			return newStructuralErrorf("directory %d ended unexpectedly", dirno)
		}

		var nentries uint64
		if f.version == BigTIFF {
			nentries = f.bo.Uint64(f.data[offset:])
		} else {
			nentries = uint64(f.bo.Uint16(f.data[offset:]))
		}

		// Checking the count against the file size first keeps the
		// multiplication below from overflowing.
		if nentries > size/l.entryLen || !f.fits(offset, l.countLen+l.entryLen*nentries+l.slotLen) {
			return newStructuralErrorf("directory %d ended unexpectedly", dirno)
		}

		dir := make(Directory, 0, nentries)
		p := offset + l.countLen
		for range nentries {
			b := f.data[p : p+l.entryLen]
			e := Entry{
				Tag:     Tag(f.bo.Uint16(b[0:])),
				Type:    DataType(f.bo.Uint16(b[2:])),
				Count:   f.readLength(b[4:]),
				slotLen: uint8(l.slotLen),
			}
			copy(e.slot[:], b[4+l.slotLen:])
			dir = append(dir, e)
			p += l.entryLen
		}
		f.dirs = append(f.dirs, dir)

		offset = f.readLength(f.data[p:])
	}

	return nil
}

// validateEntries checks that the data of every entry of a known type lies within the file.
// Entries of unknown type are left alone; whoever reads them must check the bounds.
func (f *File) validateEntries() error {
	for dirno, dir := range f.dirs {
		for i := range dir {
			e := &dir[i]
			if f.version == Classic && e.Type.isBigOnly() {
				return newStructuralErrorf("BigTIFF data type %s found in a classic TIFF (directory %d, tag %s)", e.Type, dirno, e.Tag)
			}
			if e.Type.Size() == 0 {
				f.opts.Warnf("directory %d: tag %s has unknown type %d", dirno, e.Tag, uint16(e.Type))
				continue
			}
			size, ok := e.dataSize()
			if !ok {
				return newStructuralErrorf("invalid tag data size (directory %d, tag %s, count %d)", dirno, e.Tag, e.Count)
			}
			if off, isOffset := e.value(f.bo).(offsetValue); isOffset && !f.fits(uint64(off), size) {
				return newStructuralErrorf("invalid tag data position (directory %d, tag %s, offset %d, size %d)", dirno, e.Tag, uint64(off), size)
			}
		}
	}
	return nil
}

// sortEntries sorts each directory by tag.
// Files in the wild do not always do this themselves.
func (f *File) sortEntries() {
	for _, dir := range f.dirs {
		slices.SortStableFunc(dir, func(a, b Entry) int {
			return cmp.Compare(a.Tag, b.Tag)
		})
	}
}
