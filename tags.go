// Copyright 2024 Bjørn Erik Pedersen
// SPDX-License-Identifier: MIT

package scitiff

import "fmt"

// Tag identifies one field in a directory.
type Tag uint16

// Standard TIFF tags.
// Vendor importers read their own tags (typically 34000 and up) through the same getters.
const (
	TagSubFileType      Tag = 254
	TagImageWidth       Tag = 256
	TagImageLength      Tag = 257
	TagBitsPerSample    Tag = 258
	TagCompression      Tag = 259
	TagPhotometric      Tag = 262
	TagFillOrder        Tag = 266
	TagDocumentName     Tag = 269
	TagImageDescription Tag = 270
	TagStripOffsets     Tag = 273
	TagOrientation      Tag = 274
	TagSamplesPerPixel  Tag = 277
	TagRowsPerStrip     Tag = 278
	TagStripByteCounts  Tag = 279
	TagXResolution      Tag = 282
	TagYResolution      Tag = 283
	TagPlanarConfig     Tag = 284
	TagResolutionUnit   Tag = 296
	TagSoftware         Tag = 305
	TagDateTime         Tag = 306
	TagArtist           Tag = 315
	TagSampleFormat     Tag = 339
)

var tagNames = map[Tag]string{
	TagSubFileType:      "SubFileType",
	TagImageWidth:       "ImageWidth",
	TagImageLength:      "ImageLength",
	TagBitsPerSample:    "BitsPerSample",
	TagCompression:      "Compression",
	TagPhotometric:      "Photometric",
	TagFillOrder:        "FillOrder",
	TagDocumentName:     "DocumentName",
	TagImageDescription: "ImageDescription",
	TagStripOffsets:     "StripOffsets",
	TagOrientation:      "Orientation",
	TagSamplesPerPixel:  "SamplesPerPixel",
	TagRowsPerStrip:     "RowsPerStrip",
	TagStripByteCounts:  "StripByteCounts",
	TagXResolution:      "XResolution",
	TagYResolution:      "YResolution",
	TagPlanarConfig:     "PlanarConfig",
	TagResolutionUnit:   "ResolutionUnit",
	TagSoftware:         "Software",
	TagDateTime:         "DateTime",
	TagArtist:           "Artist",
	TagSampleFormat:     "SampleFormat",
}

// UnknownPrefix is used as prefix for tags without a known name.
const UnknownPrefix = "UnknownTag_"

// String returns the tag name, or UnknownPrefix followed by the hex id.
func (t Tag) String() string {
	if s, ok := tagNames[t]; ok {
		return s
	}
	return fmt.Sprintf("%s0x%x", UnknownPrefix, uint16(t))
}
