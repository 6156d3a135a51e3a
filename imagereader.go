// Copyright 2024 Bjørn Erik Pedersen
// SPDX-License-Identifier: MIT

package scitiff

import (
	"fmt"
	"math/bits"
)

// ImageReader decodes the strips of one directory.
// It is created by File.ImageReader, which has checked that every
// strip lies within the file, and is safe for concurrent use.
type ImageReader struct {
	Dir             int
	Width           int
	Height          int
	SamplesPerPixel int
	BitsPerSample   int
	RowsPerStrip    int
	SampleFormat    SampleFormat

	rowstride uint64
	offsets   []uint64
	f         *File
}

// NumStrips returns the number of strips in the image.
func (r *ImageReader) NumStrips() int {
	return len(r.offsets)
}

// ImageReader builds a reader for the image in directory dir.
//
// Only uncompressed, contiguous images with the same number of bits for
// every sample are supported; maxSamples limits the samples per pixel the
// caller is prepared to handle.
func (f *File) ImageReader(dir, maxSamples int) (*ImageReader, error) {
	if dir < 0 || dir >= len(f.dirs) {
		return nil, fmt.Errorf("scitiff: directory %d does not exist, the file has %d", dir, len(f.dirs))
	}

	width, ok := f.Uint(dir, TagImageWidth)
	if !ok {
		return nil, newMissingTagError(TagImageWidth)
	}
	height, ok := f.Uint(dir, TagImageLength)
	if !ok {
		return nil, newMissingTagError(TagImageLength)
	}

	// Required, but files without it are single channel.
	spp, ok := f.Uint(dir, TagSamplesPerPixel)
	if !ok {
		spp = 1
	}
	if spp == 0 || maxSamples <= 0 || spp > uint64(maxSamples) {
		return nil, newUnsupportedErrorf("%d samples per pixel", spp)
	}

	bps := uint32(1)
	if vals, ok := f.Uints(dir, TagBitsPerSample, int(spp)); ok {
		if !allEqual(vals) {
			return nil, newUnsupportedErrorf("non-uniform bits per sample %v", vals)
		}
		bps = vals[0]
	}

	rowsPerStrip, ok := f.Uint(dir, TagRowsPerStrip)
	if !ok {
		rowsPerStrip = height
	}

	// One value per sample, but many writers store just one.
	format := SampleFormatUint
	if v, ok := f.Uint(dir, TagSampleFormat); ok {
		format = SampleFormat(v)
	} else if vals, ok := f.Uints(dir, TagSampleFormat, int(spp)); ok {
		if !allEqual(vals) {
			return nil, newUnsupportedErrorf("non-uniform sample formats %v", vals)
		}
		format = SampleFormat(vals[0])
	}

	if v, ok := f.Uint(dir, TagCompression); ok && v != CompressionNone {
		return nil, newUnsupportedErrorf("compression %d", v)
	}
	if v, ok := f.Uint(dir, TagPlanarConfig); ok && v != PlanarConfigContiguous {
		return nil, newUnsupportedErrorf("planar configuration %d", v)
	}

	switch format {
	case SampleFormatUint, SampleFormatInt:
		if bps != 8 && bps != 16 && bps != 32 && bps != 64 {
			return nil, newUnsupportedErrorf("%d bits per %s sample", bps, format)
		}
	case SampleFormatFloat:
		if bps != 32 && bps != 64 {
			return nil, newUnsupportedErrorf("%d bits per %s sample", bps, format)
		}
	default:
		return nil, newUnsupportedErrorf("sample format %s", format)
	}

	// Some SEM files have any RowsPerStrip larger than the height.
	if rowsPerStrip > height {
		f.opts.Warnf("directory %d: RowsPerStrip %d is larger than the image height %d", dir, rowsPerStrip, height)
		rowsPerStrip = height
	}
	if rowsPerStrip == 0 {
		return nil, newStructuralErrorf("directory %d: invalid RowsPerStrip 0", dir)
	}
	for _, d := range []struct {
		tag Tag
		v   uint64
	}{{TagImageWidth, width}, {TagImageLength, height}} {
		if d.v < 1 || d.v > f.opts.MaxDimension {
			return nil, newStructuralErrorf("directory %d: invalid %s %d", dir, d.tag, d.v)
		}
	}

	nstrips := (height + rowsPerStrip - 1) / rowsPerStrip
	offsets, err := f.stripOffsets(dir, nstrips)
	if err != nil {
		return nil, err
	}

	hi, pixelSize := bits.Mul64(uint64(bps/8), spp)
	if hi != 0 {
		return nil, newStructuralErrorf("directory %d: pixel size overflows", dir)
	}
	hi, rowstride := bits.Mul64(pixelSize, width)
	if hi != 0 {
		return nil, newStructuralErrorf("directory %d: row size overflows", dir)
	}
	hi, stripSize := bits.Mul64(rowstride, rowsPerStrip)
	if hi != 0 {
		return nil, newStructuralErrorf("directory %d: strip size overflows", dir)
	}
	for i, offset := range offsets {
		if i == len(offsets)-1 && height%rowsPerStrip != 0 {
			stripSize = rowstride * (height % rowsPerStrip)
		}
		if !f.fits(offset, stripSize) {
			return nil, newStructuralErrorf("directory %d: strip %d at offset %d with %d bytes is outside the file of %d bytes", dir, i, offset, stripSize, len(f.data))
		}
	}

	return &ImageReader{
		Dir:             dir,
		Width:           int(width),
		Height:          int(height),
		SamplesPerPixel: int(spp),
		BitsPerSample:   int(bps),
		RowsPerStrip:    int(rowsPerStrip),
		SampleFormat:    format,
		rowstride:       rowstride,
		offsets:         offsets,
		f:               f,
	}, nil
}

func allEqual(vals []uint32) bool {
	for _, v := range vals {
		if v != vals[0] {
			return false
		}
	}
	return true
}

// stripOffsets reads the strip offsets of directory dir.
// Byte counts are ignored; without compression they follow from the image geometry.
func (f *File) stripOffsets(dir int, nstrips uint64) ([]uint64, error) {
	if nstrips == 1 {
		offset, ok := f.Uint(dir, TagStripOffsets)
		if !ok {
			return nil, newMissingTagError(TagStripOffsets)
		}
		return []uint64{offset}, nil
	}

	e := f.entry(dir, TagStripOffsets)
	if e == nil || (e.Type != TypeLong && e.Type != TypeLong8) || e.Count != nstrips {
		return nil, newMissingTagError(TagStripOffsets)
	}
	// The validator made sure the array is within the file.
	b, ok := f.valueBytes(e)
	if !ok {
		return nil, newMissingTagError(TagStripOffsets)
	}

	offsets := make([]uint64, nstrips)
	if e.Type == TypeLong {
		for i := range offsets {
			offsets[i] = uint64(f.bo.Uint32(b[4*i:]))
		}
	} else {
		for i := range offsets {
			offsets[i] = f.bo.Uint64(b[8*i:])
		}
	}
	return offsets, nil
}
