// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package param

import "errors"

var (
	// ErrUnitMismatch is returned when a quantity cannot be expressed in a
	// parameter's declared unit.
	ErrUnitMismatch = errors.New("unit mismatch")
	// ErrInvalidIndex is returned when a prefix parameter index is out of
	// range for its template.
	ErrInvalidIndex = errors.New("invalid prefix index")
	// ErrNegativeUncertainty is returned for uncertainties below zero.
	ErrNegativeUncertainty = errors.New("negative uncertainty")
	// ErrIncompleteFamily is returned when a prefix family has gaps or a
	// member lacks its companions.
	ErrIncompleteFamily = errors.New("incomplete parameter family")
)
