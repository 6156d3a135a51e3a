// Copyright 2024 Bjørn Erik Pedersen
// SPDX-License-Identifier: MIT

package scitiff

import "fmt"

// ReadRow decodes one row of one channel into dest, which must hold at least
// Width values, storing z0 + q*sample.
//
// The reader has checked all strips against the file bounds, so ReadRow does
// no I/O checks. A channel or row outside the image is a programming error
// and panics.
func (r *ImageReader) ReadRow(channel, row int, q, z0 float64, dest []float64) {
	if channel < 0 || channel >= r.SamplesPerPixel {
		panic(fmt.Sprintf("scitiff: channel %d out of range [0, %d)", channel, r.SamplesPerPixel))
	}
	if row < 0 || row >= r.Height {
		panic(fmt.Sprintf("scitiff: row %d out of range [0, %d)", row, r.Height))
	}
	dest = dest[:r.Width]

	size := r.BitsPerSample / 8
	step := size * r.SamplesPerPixel
	strip, index := row/r.RowsPerStrip, row%r.RowsPerStrip
	start := int(r.offsets[strip]) + index*int(r.rowstride) + size*channel
	b := r.f.data[start : start+(r.Width-1)*step+size]
	bo := r.f.bo

	switch r.BitsPerSample {
	case 8:
		switch r.SampleFormat {
		case SampleFormatUint:
			for i := range dest {
				dest[i] = z0 + q*float64(b[i*step])
			}
		case SampleFormatInt:
			for i := range dest {
				dest[i] = z0 + q*float64(int8(b[i*step]))
			}
		}
	case 16:
		switch r.SampleFormat {
		case SampleFormatUint:
			for i := range dest {
				dest[i] = z0 + q*float64(bo.Uint16(b[i*step:]))
			}
		case SampleFormatInt:
			for i := range dest {
				dest[i] = z0 + q*float64(bo.Int16(b[i*step:]))
			}
		}
	case 32:
		switch r.SampleFormat {
		case SampleFormatUint:
			for i := range dest {
				dest[i] = z0 + q*float64(bo.Uint32(b[i*step:]))
			}
		case SampleFormatInt:
			for i := range dest {
				dest[i] = z0 + q*float64(bo.Int32(b[i*step:]))
			}
		case SampleFormatFloat:
			for i := range dest {
				dest[i] = z0 + q*float64(bo.Float32(b[i*step:]))
			}
		}
	case 64:
		switch r.SampleFormat {
		case SampleFormatUint:
			for i := range dest {
				dest[i] = z0 + q*float64(bo.Uint64(b[i*step:]))
			}
		case SampleFormatInt:
			for i := range dest {
				dest[i] = z0 + q*float64(bo.Int64(b[i*step:]))
			}
		case SampleFormatFloat:
			for i := range dest {
				dest[i] = z0 + q*bo.Float64(b[i*step:])
			}
		}
	default:
		panic(fmt.Sprintf("scitiff: %d bits per sample", r.BitsPerSample))
	}
}
