// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package units

import "strconv"

// Quantity is a number tagged with its unit, as handed over by whatever
// layer parsed it.
type Quantity struct {
	Value float64
	Unit  Unit
}

// Q is shorthand for Quantity{v, u}.
func Q(v float64, u Unit) Quantity {
	return Quantity{Value: v, Unit: u}
}

// In returns the quantity's value expressed in u.
func (q Quantity) In(u Unit) (float64, error) {
	return Convert(q.Value, q.Unit, u)
}

func (q Quantity) String() string {
	s := strconv.FormatFloat(q.Value, 'g', -1, 64)
	if q.Unit == Dimensionless {
		return s
	}
	return s + " " + string(q.Unit)
}
