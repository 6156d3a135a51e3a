// Copyright 2024 Bjørn Erik Pedersen
// SPDX-License-Identifier: MIT

package scitiff

import (
	"errors"
	"fmt"
	"runtime"
)

var (
	// ErrStructural is returned when the file structure is broken: bad magic,
	// truncated header or any directory, entry or strip that points outside the file.
	// A structural error during Parse or Load is fatal for the whole file.
	ErrStructural = errors.New("scitiff: invalid file structure")

	// ErrUnsupported is returned by ImageReader for image data we cannot decode,
	// e.g. compressed or planar-separate strips and unsupported sample types.
	ErrUnsupported = errors.New("scitiff: unsupported feature")

	// ErrMissingTag is returned by ImageReader when a required tag is absent.
	ErrMissingTag = errors.New("scitiff: required tag missing")
)

// IsStructural reports whether err is or wraps ErrStructural.
func IsStructural(err error) bool {
	return errors.Is(err, ErrStructural)
}

// IsUnsupported reports whether err is or wraps ErrUnsupported.
func IsUnsupported(err error) bool {
	return errors.Is(err, ErrUnsupported)
}

// IsMissingTag reports whether err is or wraps ErrMissingTag.
func IsMissingTag(err error) bool {
	return errors.Is(err, ErrMissingTag)
}

func newStructuralErrorf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrStructural, fmt.Sprintf(format, args...))
}

func newUnsupportedErrorf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrUnsupported, fmt.Sprintf(format, args...))
}

func newMissingTagError(tag Tag) error {
	return fmt.Errorf("%w: %s", ErrMissingTag, tag)
}

// isStructuralErrorCandidate reports whether a panic value escaping the parser
// should be reported as a broken file rather than re-raised.
func isStructuralErrorCandidate(err error) bool {
	var rerr runtime.Error
	return errors.As(err, &rerr)
}
