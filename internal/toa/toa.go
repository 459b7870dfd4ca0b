// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// Package toa holds the evaluation input of a timing model: an ordered
// series of times of arrival, already converted to a single time scale by
// whatever layer produced them, plus the per-arrival observing data that
// individual components need.
package toa

import (
	"errors"
	"fmt"
)

// TOAs is an ordered series of arrival times. MJD is required; every other
// column is optional and, when present, must have the same length.
type TOAs struct {
	// MJD holds the arrival epochs in days.
	MJD []float64
	// FreqMHz holds the observing frequency of each arrival. A missing or
	// non-positive frequency is treated as infinite by dispersive effects.
	FreqMHz []float64
	// Elongation is the pulsar-Sun angle seen from the observatory, in
	// radians.
	Elongation []float64
	// SunDistanceAU is the observatory-Sun distance. Defaults to 1 AU.
	SunDistanceAU []float64
}

// Len returns the number of arrivals.
func (t *TOAs) Len() int {
	if t == nil {
		return 0
	}
	return len(t.MJD)
}

// Check verifies that every optional column matches the epoch column.
func (t *TOAs) Check() error {
	if t == nil || len(t.MJD) == 0 {
		return errors.New("toa: no arrival epochs")
	}
	n := len(t.MJD)
	for name, col := range map[string][]float64{
		"frequency":    t.FreqMHz,
		"elongation":   t.Elongation,
		"sun distance": t.SunDistanceAU,
	} {
		if col != nil && len(col) != n {
			return fmt.Errorf("toa: %s column has %d values, want %d", name, len(col), n)
		}
	}
	return nil
}

// Freq returns the frequency of arrival i, or 0 when unknown.
func (t *TOAs) Freq(i int) float64 {
	if i < len(t.FreqMHz) {
		return t.FreqMHz[i]
	}
	return 0
}

// Uniform builds n arrivals evenly spaced over [start, end] at a single
// observing frequency.
func Uniform(start, end float64, n int, freqMHz float64) *TOAs {
	t := &TOAs{MJD: make([]float64, n), FreqMHz: make([]float64, n)}
	step := 0.0
	if n > 1 {
		step = (end - start) / float64(n-1)
	}
	for i := range n {
		t.MJD[i] = start + float64(i)*step
		t.FreqMHz[i] = freqMHz
	}
	return t
}
