// Copyright 2024 Bjørn Erik Pedersen
// SPDX-License-Identifier: MIT

package scitiff

import "encoding/binary"

// Header sizes. Real files are always larger.
const (
	headerSizeClassic = 8
	headerSizeBig     = 16
)

// Header is what Detect found in the first bytes of a file.
type Header struct {
	Version   Version
	ByteOrder binary.ByteOrder
}

// Detect checks that b starts with a classic or BigTIFF header.
//
// If version is non-zero or order is non-nil, the header must match them,
// which is useful to re-validate a file whose flavour is already known.
// The returned error is always an ErrStructural.
func Detect(b []byte, version Version, order binary.ByteOrder) (Header, error) {
	if len(b) < headerSizeClassic {
		return Header{}, newStructuralErrorf("file is too short: %d bytes", len(b))
	}

	var bo byteOrder
	switch binary.LittleEndian.Uint16(b) {
	case byteOrderLittleEndian:
		bo = littleEndian
	case byteOrderBigEndian:
		bo = bigEndian
	default:
		return Header{}, newStructuralErrorf("not a TIFF file: bad byte order mark %q", b[:2])
	}

	v := Version(bo.Uint16(b[2:]))
	switch v {
	case Classic:
	case BigTIFF:
		if len(b) < headerSizeBig {
			return Header{}, newStructuralErrorf("file is too short for a BigTIFF header: %d bytes", len(b))
		}
	default:
		return Header{}, newStructuralErrorf("not a TIFF file: unknown version %d", uint16(v))
	}

	if version != 0 && version != v {
		return Header{}, newStructuralErrorf("expected %s, got %s", version, v)
	}
	if order != nil {
		want, ok := byteOrderFor(order)
		if !ok {
			return Header{}, newStructuralErrorf("unsupported byte order %s", order)
		}
		if want != bo {
			return Header{}, newStructuralErrorf("expected %s byte order, got %s", order, bo)
		}
	}

	return Header{Version: v, ByteOrder: bo.(endian).ByteOrder}, nil
}
