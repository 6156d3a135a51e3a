// Copyright 2024 Bjørn Erik Pedersen
// SPDX-License-Identifier: MIT

package scitiff

import (
	"encoding/binary"
	"math"
)

const (
	byteOrderBigEndian    = 0x4d4d
	byteOrderLittleEndian = 0x4949
)

// byteOrder reads fixed width numbers from the file buffer.
// It is chosen once per file from the header's byte order mark.
type byteOrder interface {
	binary.ByteOrder

	Int16(b []byte) int16
	Int32(b []byte) int32
	Int64(b []byte) int64
	Float32(b []byte) float32
	Float64(b []byte) float64
}

var (
	littleEndian byteOrder = endian{binary.LittleEndian}
	bigEndian    byteOrder = endian{binary.BigEndian}
)

type endian struct {
	binary.ByteOrder
}

func (e endian) Int16(b []byte) int16 {
	return int16(e.Uint16(b))
}

func (e endian) Int32(b []byte) int32 {
	return int32(e.Uint32(b))
}

func (e endian) Int64(b []byte) int64 {
	return int64(e.Uint64(b))
}

func (e endian) Float32(b []byte) float32 {
	return math.Float32frombits(e.Uint32(b))
}

func (e endian) Float64(b []byte) float64 {
	return math.Float64frombits(e.Uint64(b))
}

// byteOrderFor matches by name so binary.NativeEndian resolves to the host order.
func byteOrderFor(order binary.ByteOrder) (byteOrder, bool) {
	switch order.String() {
	case binary.BigEndian.String():
		return bigEndian, true
	case binary.LittleEndian.String():
		return littleEndian, true
	}
	return nil, false
}
