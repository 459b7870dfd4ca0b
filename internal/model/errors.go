// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package model

import (
	"errors"
	"fmt"
)

var (
	// ErrDuplicateComponent is returned when a type is already in the model.
	ErrDuplicateComponent = errors.New("duplicate component")
	// ErrComponentNotFound is returned when no component has the given type.
	ErrComponentNotFound = errors.New("component not found")
	// ErrNoCategory is returned for components declaring neither delay nor
	// phase capability.
	ErrNoCategory = errors.New("component declares no category")
)

// ComponentError attributes a validation or setup failure to a component.
type ComponentError struct {
	Type string
	Err  error
}

func (e *ComponentError) Error() string {
	return fmt.Sprintf("component %s: %v", e.Type, e.Err)
}

func (e *ComponentError) Unwrap() error {
	return e.Err
}
