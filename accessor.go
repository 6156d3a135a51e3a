// Copyright 2024 Bjørn Erik Pedersen
// SPDX-License-Identifier: MIT

package scitiff

import (
	"bytes"
	"math"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
)

// The getters below never fail loudly. A tag that is missing, or present with
// a type or count the getter cannot handle, is reported as ok == false.
// Importers probe for vendor tags speculatively and rely on this.

func (f *File) entry(dir int, tag Tag) *Entry {
	if dir == AnyDir {
		for i := range f.dirs {
			if e := f.dirs[i].find(tag); e != nil {
				return e
			}
		}
		return nil
	}
	if dir < 0 || dir >= len(f.dirs) {
		return nil
	}
	return f.dirs[dir].find(tag)
}

// valueBytes returns the data of e, whether stored inline or out of line.
func (f *File) valueBytes(e *Entry) ([]byte, bool) {
	switch v := e.value(f.bo).(type) {
	case inlineValue:
		return v, true
	case offsetValue:
		size, ok := e.dataSize()
		if !ok {
			return nil, false
		}
		return f.Slice(uint64(v), size)
	default:
		return nil, false
	}
}

// Entry returns the entry for tag in directory dir (or AnyDir).
func (f *File) Entry(dir int, tag Tag) (Entry, bool) {
	e := f.entry(dir, tag)
	if e == nil {
		return Entry{}, false
	}
	return *e, true
}

// Value returns the raw bytes of the tag's data, in file byte order.
// It returns false for entries of unknown type; see Slice.
func (f *File) Value(dir int, tag Tag) ([]byte, bool) {
	e := f.entry(dir, tag)
	if e == nil {
		return nil, false
	}
	return f.valueBytes(e)
}

// Uint returns a single unsigned integer of type BYTE, SHORT, LONG or LONG8.
func (f *File) Uint(dir int, tag Tag) (uint64, bool) {
	e := f.entry(dir, tag)
	if e == nil || e.Count != 1 {
		return 0, false
	}
	switch e.Type {
	case TypeByte:
		return uint64(e.slot[0]), true
	case TypeShort:
		return uint64(f.bo.Uint16(e.slot[:])), true
	case TypeLong:
		return uint64(f.bo.Uint32(e.slot[:])), true
	case TypeLong8:
		return f.bo.Uint64(e.slot[:]), true
	default:
		return 0, false
	}
}

// Sint returns a single integer of any signed or unsigned integer type
// whose value fits in an int64.
func (f *File) Sint(dir int, tag Tag) (int64, bool) {
	e := f.entry(dir, tag)
	if e == nil || e.Count != 1 {
		return 0, false
	}
	switch e.Type {
	case TypeSByte:
		return int64(int8(e.slot[0])), true
	case TypeByte:
		return int64(e.slot[0]), true
	case TypeShort:
		return int64(f.bo.Uint16(e.slot[:])), true
	case TypeSShort:
		return int64(f.bo.Int16(e.slot[:])), true
	case TypeLong:
		return int64(f.bo.Uint32(e.slot[:])), true
	case TypeSLong:
		return int64(f.bo.Int32(e.slot[:])), true
	case TypeSLong8:
		return f.bo.Int64(e.slot[:]), true
	case TypeLong8:
		v := f.bo.Uint64(e.slot[:])
		if v > math.MaxInt64 {
			return 0, false
		}
		return int64(v), true
	default:
		return 0, false
	}
}

// Float returns a single FLOAT or DOUBLE.
func (f *File) Float(dir int, tag Tag) (float64, bool) {
	e := f.entry(dir, tag)
	if e == nil || e.Count != 1 {
		return 0, false
	}
	switch e.Type {
	case TypeFloat:
		return float64(f.bo.Float32(e.slot[:])), true
	case TypeDouble:
		b, ok := f.valueBytes(e)
		if !ok {
			return 0, false
		}
		return f.bo.Float64(b), true
	default:
		return 0, false
	}
}

// Bool returns a single BYTE, SBYTE, SHORT or SSHORT as a boolean; non-zero is true.
func (f *File) Bool(dir int, tag Tag) (bool, bool) {
	e := f.entry(dir, tag)
	if e == nil || e.Count != 1 {
		return false, false
	}
	switch e.Type {
	case TypeByte, TypeSByte:
		return e.slot[0] != 0, true
	case TypeShort, TypeSShort:
		return f.bo.Uint16(e.slot[:]) != 0, true
	default:
		return false, false
	}
}

// Uints returns exactly count values of type BYTE, SHORT or LONG.
//
// Arrays too large for the value slot are only followed through offsets
// that fit in 32 bits, also in BigTIFF files.
func (f *File) Uints(dir int, tag Tag, count int) ([]uint32, bool) {
	e := f.entry(dir, tag)
	if e == nil || count < 0 || e.Count != uint64(count) {
		return nil, false
	}

	var b []byte
	switch v := e.value(f.bo).(type) {
	case inlineValue:
		b = v
	case offsetValue:
		if uint64(v) > math.MaxUint32 {
			return nil, false
		}
		size, ok := e.dataSize()
		if !ok {
			return nil, false
		}
		if b, ok = f.Slice(uint64(v), size); !ok {
			return nil, false
		}
	default:
		return nil, false
	}

	vals := make([]uint32, count)
	switch e.Type {
	case TypeByte:
		for i := range vals {
			vals[i] = uint32(b[i])
		}
	case TypeShort:
		for i := range vals {
			vals[i] = uint32(f.bo.Uint16(b[2*i:]))
		}
	case TypeLong:
		for i := range vals {
			vals[i] = f.bo.Uint32(b[4*i:])
		}
	default:
		return nil, false
	}

	return vals, true
}

// ASCII returns the value of an ASCII tag, up to the first NUL.
// Out of line strings are always terminated at count-1, even if the file forgot the NUL.
func (f *File) ASCII(dir int, tag Tag) (string, bool) {
	b, ok := f.asciiBytes(dir, tag)
	if !ok {
		return "", false
	}
	return string(cString(b)), true
}

func (f *File) asciiBytes(dir int, tag Tag) ([]byte, bool) {
	e := f.entry(dir, tag)
	if e == nil || e.Type != TypeASCII {
		return nil, false
	}
	b, ok := f.valueBytes(e)
	if !ok {
		return nil, false
	}
	if _, isOffset := e.value(f.bo).(offsetValue); isOffset {
		b = b[:len(b)-1]
	}
	return b, true
}

// Text returns the value of a free-text tag as UTF-8.
//
// Vendors store their comment blocks as ASCII, BYTE or UNDEFINED data in
// whatever encoding they like. Valid UTF-8 is returned as is, data starting
// with a byte order mark is decoded as UTF-16 and anything else as ISO-8859-1.
func (f *File) Text(dir int, tag Tag) (string, bool) {
	e := f.entry(dir, tag)
	if e == nil {
		return "", false
	}

	var b []byte
	var ok bool
	switch e.Type {
	case TypeASCII:
		b, ok = f.asciiBytes(dir, tag)
	case TypeByte, TypeUndefined:
		b, ok = f.valueBytes(e)
	}
	if !ok {
		return "", false
	}

	if bytes.HasPrefix(b, []byte{0xfe, 0xff}) || bytes.HasPrefix(b, []byte{0xff, 0xfe}) {
		dec := unicode.UTF16(unicode.BigEndian, unicode.ExpectBOM).NewDecoder()
		s, err := dec.Bytes(b)
		if err != nil {
			return "", false
		}
		return strings.TrimRight(string(s), "\x00"), true
	}

	b = cString(b)
	if utf8.Valid(b) {
		return string(b), true
	}
	s, err := charmap.ISO8859_1.NewDecoder().Bytes(b)
	if err != nil {
		return "", false
	}
	return string(s), true
}

// cString returns b up to the first NUL.
func cString(b []byte) []byte {
	if i := bytes.IndexByte(b, 0); i >= 0 {
		return b[:i]
	}
	return b
}
