// Copyright 2024 Bjørn Erik Pedersen
// SPDX-License-Identifier: MIT

package scitiff

import "math/bits"

// Entry is one field of a directory.
//
// The value slot is 4 bytes in classic TIFF and 8 bytes in BigTIFF. It holds
// the value itself if it fits, otherwise the absolute offset of the value in the file.
type Entry struct {
	Tag   Tag
	Type  DataType
	Count uint64

	slot    [8]byte
	slotLen uint8
}

// Directory is one Image File Directory, its entries sorted by tag.
type Directory []Entry

// slotValue is where an entry's data lives: inlineValue or offsetValue.
type slotValue interface {
	isSlotValue()
}

// inlineValue is data stored in the entry's value slot.
type inlineValue []byte

// offsetValue is the absolute file offset of out-of-line data.
type offsetValue uint64

func (inlineValue) isSlotValue() {}
func (offsetValue) isSlotValue() {}

// dataSize returns Type.Size()*Count, with ok false for unknown types
// and on overflow.
func (e *Entry) dataSize() (uint64, bool) {
	size := e.Type.Size()
	if size == 0 {
		return 0, false
	}
	hi, lo := bits.Mul64(size, e.Count)
	if hi != 0 {
		return 0, false
	}
	return lo, true
}

// value resolves the slot by comparing the declared data size with the slot width.
// It returns nil for entries of unknown type.
func (e *Entry) value(bo byteOrder) slotValue {
	size, ok := e.dataSize()
	if !ok {
		if e.Type.Size() == 0 {
			return nil
		}
		// Too large to be inline.
		return offsetValue(e.offset(bo))
	}
	if size <= uint64(e.slotLen) {
		return inlineValue(e.slot[:size])
	}
	return offsetValue(e.offset(bo))
}

func (e *Entry) offset(bo byteOrder) uint64 {
	if e.slotLen == 8 {
		return bo.Uint64(e.slot[:])
	}
	return uint64(bo.Uint32(e.slot[:]))
}

// find locates tag in d.
// Entries are sorted, but d may hold as few as two entries (or be empty),
// so the search narrows down to two candidates and checks both.
func (d Directory) find(tag Tag) *Entry {
	if len(d) == 0 {
		return nil
	}
	lo, hi := 0, len(d)-1
	for hi-lo > 1 {
		m := (lo + hi) / 2
		if d[m].Tag > tag {
			hi = m
		} else {
			lo = m
		}
	}
	if d[lo].Tag == tag {
		return &d[lo]
	}
	if d[hi].Tag == tag {
		return &d[hi]
	}
	return nil
}
