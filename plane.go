// Copyright 2024 Bjørn Erik Pedersen
// SPDX-License-Identifier: MIT

package scitiff

import (
	"context"
	"fmt"
	"runtime"

	"github.com/hashicorp/go-multierror"
	"golang.org/x/sync/errgroup"
)

// ReadPlane decodes all rows of channel into a new row-major slice of
// Width*Height values. Strips are decoded concurrently.
func (r *ImageReader) ReadPlane(ctx context.Context, channel int, q, z0 float64) ([]float64, error) {
	if channel < 0 || channel >= r.SamplesPerPixel {
		return nil, fmt.Errorf("scitiff: channel %d out of range [0, %d)", channel, r.SamplesPerPixel)
	}

	plane := make([]float64, r.Width*r.Height)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))

	for strip := range r.NumStrips() {
		first := strip * r.RowsPerStrip
		last := min(first+r.RowsPerStrip, r.Height)
		g.Go(func() error {
			for row := first; row < last; row++ {
				if err := ctx.Err(); err != nil {
					return err
				}
				r.ReadRow(channel, row, q, z0, plane[row*r.Width:(row+1)*r.Width])
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return plane, nil
}

// Pages builds an ImageReader for every directory that has a supported image.
//
// Directories without one (thumbnails in odd formats, vendor metadata
// directories) are skipped. The returned error, if any, is a *multierror.Error
// with one error per skipped directory; the readers are valid regardless.
func (f *File) Pages(maxSamples int) ([]*ImageReader, error) {
	var (
		readers []*ImageReader
		result  *multierror.Error
	)
	for i := range f.dirs {
		r, err := f.ImageReader(i, maxSamples)
		if err != nil {
			f.opts.Warnf("skipping directory %d: %v", i, err)
			result = multierror.Append(result, fmt.Errorf("directory %d: %w", i, err))
			continue
		}
		readers = append(readers, r)
	}
	return readers, result.ErrorOrNil()
}
