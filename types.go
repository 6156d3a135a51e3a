// Copyright 2024 Bjørn Erik Pedersen
// SPDX-License-Identifier: MIT

package scitiff

// Version is the TIFF flavour found in the header.
//
//go:generate stringer -type=Version
type Version uint16

const (
	// Classic is TIFF 6.0 with 32-bit offsets.
	Classic Version = 42
	// BigTIFF uses 64-bit offsets and counts.
	BigTIFF Version = 43
)

// DataType is the declared type of a directory entry.
//
//go:generate stringer -type=DataType -trimprefix=Type
type DataType uint16

const (
	TypeByte      DataType = 1
	TypeASCII     DataType = 2
	TypeShort     DataType = 3
	TypeLong      DataType = 4
	TypeRational  DataType = 5
	TypeSByte     DataType = 6
	TypeUndefined DataType = 7
	TypeSShort    DataType = 8
	TypeSLong     DataType = 9
	TypeSRational DataType = 10
	TypeFloat     DataType = 11
	TypeDouble    DataType = 12
	TypeIFD       DataType = 13
	// Assigned, but not described anywhere we know of.
	TypeUnicode DataType = 14
	TypeComplex DataType = 15
	// BigTIFF only.
	TypeLong8  DataType = 16
	TypeSLong8 DataType = 17
	TypeIFD8   DataType = 18
)

// Size returns the size in bytes of one value of type t,
// or 0 if t is a type we do not know the layout of.
func (t DataType) Size() uint64 {
	switch t {
	case TypeByte, TypeSByte, TypeASCII, TypeUndefined:
		return 1
	case TypeShort, TypeSShort:
		return 2
	case TypeLong, TypeSLong, TypeFloat, TypeIFD:
		return 4
	case TypeRational, TypeSRational, TypeDouble, TypeLong8, TypeSLong8, TypeIFD8:
		return 8
	default:
		return 0
	}
}

func (t DataType) isBigOnly() bool {
	return t == TypeLong8 || t == TypeSLong8 || t == TypeIFD8
}

// SampleFormat is the numeric encoding of one pixel channel.
//
//go:generate stringer -type=SampleFormat -trimprefix=SampleFormat
type SampleFormat uint16

const (
	SampleFormatUint      SampleFormat = 1
	SampleFormatInt       SampleFormat = 2
	SampleFormatFloat     SampleFormat = 3
	SampleFormatUndefined SampleFormat = 4
)

// Values of some standard tags.
// Only the values we act upon are listed.
const (
	CompressionNone = 1

	PlanarConfigContiguous = 1
	PlanarConfigSeparate   = 2

	PhotometricMinIsWhite = 0
	PhotometricMinIsBlack = 1
	PhotometricRGB        = 2

	SubFileFullImage    = 1
	SubFileReducedImage = 2
	SubFileSinglePage   = 3

	ResolutionUnitNone       = 1
	ResolutionUnitInch       = 2
	ResolutionUnitCentimeter = 3
)

// Orientation values (tag 274).
const (
	OrientationTopLeft = iota + 1
	OrientationTopRight
	OrientationBottomRight
	OrientationBottomLeft
	OrientationLeftTop
	OrientationRightTop
	OrientationRightBottom
	OrientationLeftBottom
)
