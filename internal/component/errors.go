// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package component

import (
	"errors"

	"github.com/vk/pulsartime/internal/param"
)

var (
	// ErrDuplicateParam is returned when a parameter name is already taken.
	ErrDuplicateParam = errors.New("duplicate parameter")
	// ErrParamNotFound is returned when no parameter has the given name.
	ErrParamNotFound = errors.New("parameter not found")
	// ErrMissingParam is returned by validation when a required or fitted
	// parameter has no value.
	ErrMissingParam = errors.New("missing parameter value")
	// ErrParamOwned is returned when a parameter already belongs to another
	// component.
	ErrParamOwned = errors.New("parameter owned by another component")
	// ErrInvalidParam is returned by validation when a parameter value is
	// outside what the component supports.
	ErrInvalidParam = errors.New("invalid parameter value")
	// ErrIncompleteFamily is returned by validation for prefix families with
	// gaps or missing companions.
	ErrIncompleteFamily = param.ErrIncompleteFamily
)
