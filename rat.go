// Copyright 2024 Bjørn Erik Pedersen
// SPDX-License-Identifier: MIT

package scitiff

import (
	"errors"
	"fmt"
	"strconv"
)

// Rat is a rational number as stored in RATIONAL and SRATIONAL entries.
type Rat[T int32 | uint32] interface {
	Num() T
	Den() T
	Float64() float64

	// String returns the string representation of the rational number.
	// If the denominator is 1, the string will be the numerator only.
	String() string
}

// rat is a lightweight version of math/big.Rat.
type rat[T int32 | uint32] struct {
	num T
	den T
}

// Num returns the numerator of the rational number.
func (r rat[T]) Num() T {
	return r.num
}

// Den returns the denominator of the rational number.
func (r rat[T]) Den() T {
	return r.den
}

// Float64 returns the float64 representation of the rational number.
func (r rat[T]) Float64() float64 {
	return float64(r.num) / float64(r.den)
}

func (r rat[T]) String() string {
	if r.den == 1 {
		return fmt.Sprintf("%d", r.num)
	}
	return fmt.Sprintf("%d/%d", r.num, r.den)
}

// Format formats the number as a float for the verbs e, f and g.
func (r rat[T]) Format(s fmt.State, verb rune) {
	switch verb {
	case 'e', 'E', 'f', 'F', 'g', 'G':
		fmt.Fprint(s, strconv.FormatFloat(r.Float64(), byte(verb), 6, 64))
	default:
		fmt.Fprint(s, r.String())
	}
}

var errDenominatorZero = errors.New("denominator must be non-zero")

// NewRat returns num/den in lowest terms with a positive denominator.
func NewRat[T int32 | uint32](num, den T) (Rat[T], error) {
	if den == 0 {
		return nil, errDenominatorZero
	}

	n, d := int64(num), int64(den)
	if d < 0 {
		n, d = -n, -d
	}
	a, b := n, d
	if a < 0 {
		a = -a
	}
	for b != 0 {
		a, b = b, a%b
	}
	n, d = n/a, d/a

	// E.g. MinInt32/-1.
	if int64(T(n)) != n || int64(T(d)) != d {
		return nil, fmt.Errorf("rational number %d/%d is out of range", num, den)
	}

	return &rat[T]{num: T(n), den: T(d)}, nil
}

// Rational returns a single RATIONAL, e.g. XResolution.
// A zero denominator is reported as not ok.
func (f *File) Rational(dir int, tag Tag) (Rat[uint32], bool) {
	b, ok := f.rational(dir, tag, TypeRational)
	if !ok {
		return nil, false
	}
	r, err := NewRat(f.bo.Uint32(b), f.bo.Uint32(b[4:]))
	return r, err == nil
}

// SRational returns a single SRATIONAL.
// A zero denominator, or a value that has no int32 form with a positive
// denominator (MinInt32/-1), is reported as not ok.
func (f *File) SRational(dir int, tag Tag) (Rat[int32], bool) {
	b, ok := f.rational(dir, tag, TypeSRational)
	if !ok {
		return nil, false
	}
	r, err := NewRat(f.bo.Int32(b), f.bo.Int32(b[4:]))
	return r, err == nil
}

func (f *File) rational(dir int, tag Tag, typ DataType) ([]byte, bool) {
	e := f.entry(dir, tag)
	if e == nil || e.Type != typ || e.Count != 1 {
		return nil, false
	}
	return f.valueBytes(e)
}
