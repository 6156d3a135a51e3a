// Copyright 2024 Bjørn Erik Pedersen
// SPDX-License-Identifier: MIT

package scitiff

import (
	"encoding/binary"
	"math"
	"slices"
)

// testByteOrder is implemented by binary.LittleEndian and binary.BigEndian.
type testByteOrder interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

// tiffBuilder writes TIFF and BigTIFF files for tests.
//
// Blobs and out of line tag data come first and the directories last,
// so every truncation of the result cuts into a directory.
type tiffBuilder struct {
	version Version
	order   testByteOrder
	data    []byte
	dirs    [][]testEntry

	// cycle makes the last directory point back to the first.
	cycle bool
}

type testEntry struct {
	tag    Tag
	typ    DataType
	count  uint64
	encode func(bo testByteOrder) []byte

	// offset, if set, is written to the value slot as is and no data is written.
	offset *uint64
}

func newTIFFBuilder(version Version, order testByteOrder) *tiffBuilder {
	b := &tiffBuilder{version: version, order: order}
	if order == binary.BigEndian {
		b.data = append(b.data, 'M', 'M')
	} else {
		b.data = append(b.data, 'I', 'I')
	}
	b.data = order.AppendUint16(b.data, uint16(version))
	if version == BigTIFF {
		b.data = order.AppendUint16(b.data, 8)
		b.data = order.AppendUint16(b.data, 0)
		b.data = order.AppendUint64(b.data, 0)
	} else {
		b.data = order.AppendUint32(b.data, 0)
	}
	return b
}

func (b *tiffBuilder) layout() layout {
	if b.version == BigTIFF {
		return layoutBig
	}
	return layoutClassic
}

func (b *tiffBuilder) appendLength(dst []byte, v uint64) []byte {
	if b.version == BigTIFF {
		return b.order.AppendUint64(dst, v)
	}
	return b.order.AppendUint32(dst, uint32(v))
}

func (b *tiffBuilder) putLength(dst []byte, v uint64) {
	if b.version == BigTIFF {
		b.order.PutUint64(dst, v)
		return
	}
	b.order.PutUint32(dst, uint32(v))
}

// blob appends data word aligned and returns its offset.
func (b *tiffBuilder) blob(data []byte) uint64 {
	if len(b.data)%2 != 0 {
		b.data = append(b.data, 0)
	}
	offset := uint64(len(b.data))
	b.data = append(b.data, data...)
	return offset
}

func (b *tiffBuilder) dir(entries ...testEntry) *tiffBuilder {
	b.dirs = append(b.dirs, entries)
	return b
}

// image appends the pixel data of a contiguous image as strips of
// rowsPerStrip rows and adds a directory describing it, plus extra.
func (b *tiffBuilder) image(img testImage, extra ...testEntry) *tiffBuilder {
	pixels := img.pixels(b.order)
	rowstride := img.width * img.spp * img.bps / 8
	base := b.blob(pixels)

	var offsets, counts []uint32
	for row := 0; row < img.height; row += img.rowsPerStrip {
		rows := min(img.rowsPerStrip, img.height-row)
		offsets = append(offsets, uint32(base)+uint32(row*rowstride))
		counts = append(counts, uint32(rows*rowstride))
	}

	bps := make([]uint16, img.spp)
	for i := range bps {
		bps[i] = uint16(img.bps)
	}

	entries := []testEntry{
		entryLong(TagImageWidth, uint32(img.width)),
		entryLong(TagImageLength, uint32(img.height)),
		entryShort(TagBitsPerSample, bps...),
		entryShort(TagCompression, CompressionNone),
		entryShort(TagPhotometric, PhotometricMinIsBlack),
		entryLong(TagStripOffsets, offsets...),
		entryShort(TagSamplesPerPixel, uint16(img.spp)),
		entryLong(TagRowsPerStrip, uint32(img.rowsPerStrip)),
		entryLong(TagStripByteCounts, counts...),
		entryShort(TagSampleFormat, uint16(img.format)),
	}
	// Later entries replace earlier ones with the same tag.
	for _, e := range extra {
		i := slices.IndexFunc(entries, func(e2 testEntry) bool { return e2.tag == e.tag })
		if i >= 0 {
			entries[i] = e
		} else {
			entries = append(entries, e)
		}
	}
	entries = slices.DeleteFunc(entries, func(e testEntry) bool { return e.typ == 0 })

	return b.dir(entries...)
}

func (b *tiffBuilder) bytes() []byte {
	l := b.layout()
	out := slices.Clone(b.data)

	// Out of line data first.
	slots := make([][][]byte, len(b.dirs))
	for i, d := range b.dirs {
		for _, e := range d {
			slot := make([]byte, l.slotLen)
			if e.offset != nil {
				b.putLength(slot, *e.offset)
			} else {
				data := e.encode(b.order)
				if uint64(len(data)) <= l.slotLen {
					copy(slot, data)
				} else {
					if len(out)%2 != 0 {
						out = append(out, 0)
					}
					b.putLength(slot, uint64(len(out)))
					out = append(out, data...)
				}
			}
			slots[i] = append(slots[i], slot)
		}
	}

	if len(out)%2 != 0 {
		out = append(out, 0)
	}

	first := uint64(len(out))
	if len(b.dirs) == 0 {
		first = 0
	}
	if b.version == BigTIFF {
		b.putLength(out[8:], first)
	} else {
		b.putLength(out[4:], first)
	}

	for i, d := range b.dirs {
		if l.countLen == 8 {
			out = b.order.AppendUint64(out, uint64(len(d)))
		} else {
			out = b.order.AppendUint16(out, uint16(len(d)))
		}
		for j, e := range d {
			out = b.order.AppendUint16(out, uint16(e.tag))
			out = b.order.AppendUint16(out, uint16(e.typ))
			out = b.appendLength(out, e.count)
			out = append(out, slots[i][j]...)
		}
		var next uint64
		switch {
		case i < len(b.dirs)-1:
			next = uint64(len(out)) + l.slotLen
		case b.cycle:
			next = first
		}
		out = b.appendLength(out, next)
	}

	return out
}

type testImage struct {
	width, height int
	spp, bps      int
	format        SampleFormat
	rowsPerStrip  int

	// samples in row-major, channel interleaved order.
	samples []float64
}

// newTestImage creates an image with distinct sample values.
func newTestImage(width, height, spp, bps int, format SampleFormat) testImage {
	img := testImage{
		width: width, height: height, spp: spp, bps: bps,
		format: format, rowsPerStrip: height,
	}
	img.samples = make([]float64, width*height*spp)
	for i := range img.samples {
		v := float64(i % 100)
		if format != SampleFormatUint && i%2 == 1 {
			v = -v
		}
		if format == SampleFormatFloat {
			v += 0.5
		}
		img.samples[i] = v
	}
	return img
}

func (img testImage) withRowsPerStrip(n int) testImage {
	img.rowsPerStrip = n
	return img
}

// sample returns the sample of channel at column x in row y.
func (img testImage) sample(channel, x, y int) float64 {
	return img.samples[(y*img.width+x)*img.spp+channel]
}

func (img testImage) pixels(bo testByteOrder) []byte {
	var b []byte
	for _, v := range img.samples {
		switch img.bps {
		case 8:
			if img.format == SampleFormatInt {
				b = append(b, byte(int8(v)))
			} else {
				b = append(b, byte(v))
			}
		case 16:
			if img.format == SampleFormatInt {
				b = bo.AppendUint16(b, uint16(int16(v)))
			} else {
				b = bo.AppendUint16(b, uint16(v))
			}
		case 32:
			switch img.format {
			case SampleFormatFloat:
				b = bo.AppendUint32(b, math.Float32bits(float32(v)))
			case SampleFormatInt:
				b = bo.AppendUint32(b, uint32(int32(v)))
			default:
				b = bo.AppendUint32(b, uint32(v))
			}
		case 64:
			switch img.format {
			case SampleFormatFloat:
				b = bo.AppendUint64(b, math.Float64bits(v))
			case SampleFormatInt:
				b = bo.AppendUint64(b, uint64(int64(v)))
			default:
				b = bo.AppendUint64(b, uint64(v))
			}
		}
	}
	return b
}

func entryShort(tag Tag, vals ...uint16) testEntry {
	return testEntry{
		tag: tag, typ: TypeShort, count: uint64(len(vals)),
		encode: func(bo testByteOrder) []byte {
			var b []byte
			for _, v := range vals {
				b = bo.AppendUint16(b, v)
			}
			return b
		},
	}
}

func entryLong(tag Tag, vals ...uint32) testEntry {
	return testEntry{
		tag: tag, typ: TypeLong, count: uint64(len(vals)),
		encode: func(bo testByteOrder) []byte {
			var b []byte
			for _, v := range vals {
				b = bo.AppendUint32(b, v)
			}
			return b
		},
	}
}

func entryLong8(tag Tag, vals ...uint64) testEntry {
	return testEntry{
		tag: tag, typ: TypeLong8, count: uint64(len(vals)),
		encode: func(bo testByteOrder) []byte {
			var b []byte
			for _, v := range vals {
				b = bo.AppendUint64(b, v)
			}
			return b
		},
	}
}

func entryDouble(tag Tag, v float64) testEntry {
	return testEntry{
		tag: tag, typ: TypeDouble, count: 1,
		encode: func(bo testByteOrder) []byte {
			return bo.AppendUint64(nil, math.Float64bits(v))
		},
	}
}

func entryFloat(tag Tag, v float32) testEntry {
	return testEntry{
		tag: tag, typ: TypeFloat, count: 1,
		encode: func(bo testByteOrder) []byte {
			return bo.AppendUint32(nil, math.Float32bits(v))
		},
	}
}

// entryASCII stores s with a terminating NUL.
func entryASCII(tag Tag, s string) testEntry {
	return entryBytes(tag, TypeASCII, append([]byte(s), 0))
}

// entryBytes stores data as is; count is the number of values of typ in data.
func entryBytes(tag Tag, typ DataType, data []byte) testEntry {
	count := uint64(len(data))
	if size := typ.Size(); size > 0 {
		count /= size
	}
	return testEntry{
		tag: tag, typ: typ, count: count,
		encode: func(testByteOrder) []byte {
			return data
		},
	}
}

// entryAt points the value slot at offset without writing any data.
func entryAt(tag Tag, typ DataType, count, offset uint64) testEntry {
	return testEntry{tag: tag, typ: typ, count: count, offset: &offset}
}

// entryNone removes the tag from an image directory.
func entryNone(tag Tag) testEntry {
	return testEntry{tag: tag}
}
