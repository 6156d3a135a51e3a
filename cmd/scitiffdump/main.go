// Copyright 2024 Bjørn Erik Pedersen
// SPDX-License-Identifier: MIT

// Command scitiffdump prints the directory structure of TIFF and BigTIFF files
// and, optionally, statistics of their image data.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"math"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/hashicorp/go-multierror"

	"github.com/bep/scitiff"
)

func main() {
	var (
		dirs       bool
		stats      bool
		maxSamples int
	)

	flag.BoolVar(&dirs, "dirs", false, "Print the entries of every directory")
	flag.BoolVar(&stats, "stats", false, "Print min, max and mean of every channel of every readable page")
	flag.IntVar(&maxSamples, "max-samples", 4, "Maximum number of samples per pixel to decode")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: scitiffdump [flags] file...\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	logger := log.NewLogfmtLogger(log.NewSyncWriter(os.Stderr))
	logger = log.With(logger, "ts", log.DefaultTimestampUTC)

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	d := dumper{
		w:          os.Stdout,
		logger:     logger,
		dirs:       dirs,
		stats:      stats,
		maxSamples: maxSamples,
	}

	failed := false
	for _, filename := range flag.Args() {
		if err := d.dump(ctx, filename); err != nil {
			level.Error(logger).Log("msg", "failed to dump file", "file", filename, "err", err)
			failed = true
		}
	}
	if failed {
		os.Exit(1)
	}
}

type dumper struct {
	w          io.Writer
	logger     log.Logger
	dirs       bool
	stats      bool
	maxSamples int
}

func (d dumper) dump(ctx context.Context, filename string) error {
	warnLogger := log.With(d.logger, "file", filename)
	f, err := scitiff.Load(filename, scitiff.Options{
		Warnf: func(format string, args ...any) {
			level.Warn(warnLogger).Log("msg", fmt.Sprintf(format, args...))
		},
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(d.w, "%s: %s %s, %d bytes, %d directories\n", filename, f.Version(), f.ByteOrder(), f.Len(), f.NumDirectories())

	if d.dirs {
		for i := range f.NumDirectories() {
			d.dumpDirectory(f, i)
		}
	}

	if !d.stats {
		return nil
	}

	pages, err := f.Pages(d.maxSamples)
	if merr, ok := err.(*multierror.Error); ok {
		for _, err := range merr.Errors {
			level.Info(warnLogger).Log("msg", "no readable image", "err", err)
		}
	}
	for _, r := range pages {
		fmt.Fprintf(d.w, "page %d: %dx%d, %d samples of %d bit %s, %d strips\n",
			r.Dir, r.Width, r.Height, r.SamplesPerPixel, r.BitsPerSample, r.SampleFormat, r.NumStrips())
		for ch := range r.SamplesPerPixel {
			plane, err := r.ReadPlane(ctx, ch, 1, 0)
			if err != nil {
				return err
			}
			lo, hi, mean := planeStats(plane)
			fmt.Fprintf(d.w, "  channel %d: min=%g max=%g mean=%g\n", ch, lo, hi, mean)
		}
	}

	return nil
}

func (d dumper) dumpDirectory(f *scitiff.File, i int) {
	fmt.Fprintf(d.w, "directory %d:\n", i)
	tw := tabwriter.NewWriter(d.w, 0, 4, 2, ' ', 0)
	for _, e := range f.Directory(i) {
		fmt.Fprintf(tw, "  %s\t%s\t%d\t%s\n", e.Tag, e.Type, e.Count, valueSummary(f, i, e))
	}
	tw.Flush()
}

// shorten cuts s to at most n runes.
func shorten(s string, n int) string {
	i := 0
	for j := range s {
		if i == n {
			return s[:j] + "..."
		}
		i++
	}
	return s
}

func valueSummary(f *scitiff.File, dir int, e scitiff.Entry) string {
	if e.Type == scitiff.TypeASCII {
		if s, ok := f.Text(dir, e.Tag); ok {
			return fmt.Sprintf("%q", shorten(s, 60))
		}
	}
	if v, ok := f.Uint(dir, e.Tag); ok {
		return fmt.Sprint(v)
	}
	if v, ok := f.Sint(dir, e.Tag); ok {
		return fmt.Sprint(v)
	}
	if v, ok := f.Float(dir, e.Tag); ok {
		return fmt.Sprint(v)
	}
	if v, ok := f.Rational(dir, e.Tag); ok {
		return v.String()
	}
	if v, ok := f.SRational(dir, e.Tag); ok {
		return v.String()
	}
	return ""
}

func planeStats(plane []float64) (lo, hi, mean float64) {
	lo, hi = math.Inf(1), math.Inf(-1)
	var sum float64
	for _, v := range plane {
		lo = min(lo, v)
		hi = max(hi, v)
		sum += v
	}
	return lo, hi, sum / float64(len(plane))
}
