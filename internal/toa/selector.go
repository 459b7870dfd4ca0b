// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package toa

import "fmt"

// Selector picks the arrivals a mask parameter applies to, by an inclusive
// range over one column.
type Selector struct {
	Key string // "mjd" or "freq"
	Lo  float64
	Hi  float64
}

// Validate checks that the key is known and the range is ordered.
func (s Selector) Validate() error {
	switch s.Key {
	case "mjd", "freq":
	default:
		return fmt.Errorf("toa: unsupported selector key %q", s.Key)
	}
	if s.Lo > s.Hi {
		return fmt.Errorf("toa: selector range [%g, %g] is reversed", s.Lo, s.Hi)
	}
	return nil
}

// Mask returns, for each arrival, whether it falls inside the range.
func (s Selector) Mask(t *TOAs) []bool {
	mask := make([]bool, t.Len())
	for i := range mask {
		var v float64
		switch s.Key {
		case "mjd":
			v = t.MJD[i]
		case "freq":
			v = t.Freq(i)
		default:
			continue
		}
		mask[i] = v >= s.Lo && v <= s.Hi
	}
	return mask
}

func (s Selector) String() string {
	return fmt.Sprintf("%s[%g,%g]", s.Key, s.Lo, s.Hi)
}
