package config

import (
	"errors"
	"fmt"
)

// ErrInvalidDocument is returned by Validate for structurally broken
// documents.
var ErrInvalidDocument = errors.New("invalid model document")

// Document is the unified, format-agnostic representation of one timing
// model.
type Document struct {
	Name       string
	Components []*ComponentSpec
}

// ComponentSpec selects a registered component type and overrides its
// parameters.
type ComponentSpec struct {
	Type   string
	Params []*ParamSpec
}

// ParamSpec sets one parameter. Parameters the component does not create
// by default must be prefix family members; they are created on demand.
type ParamSpec struct {
	Name string
	// Value is nil to leave the parameter unset.
	Value *float64
	// Unit is the unit Value is expressed in; empty means the parameter's
	// declared unit.
	Unit        string
	Fit         bool
	Uncertainty *float64
	Select      *SelectorSpec
}

// SelectorSpec is the arrival selection of a mask parameter.
type SelectorSpec struct {
	Key string
	Lo  float64
	Hi  float64
}

// Validate checks that type and parameter names are present and unique.
func (d *Document) Validate() error {
	types := make(map[string]struct{}, len(d.Components))
	params := make(map[string]string)
	for i, c := range d.Components {
		if c.Type == "" {
			return fmt.Errorf("%w: component %d has no type", ErrInvalidDocument, i)
		}
		if _, dup := types[c.Type]; dup {
			return fmt.Errorf("%w: component %q appears twice", ErrInvalidDocument, c.Type)
		}
		types[c.Type] = struct{}{}
		for _, p := range c.Params {
			if p.Name == "" {
				return fmt.Errorf("%w: component %q has a parameter without a name", ErrInvalidDocument, c.Type)
			}
			if owner, dup := params[p.Name]; dup {
				return fmt.Errorf("%w: parameter %q set in both %q and %q", ErrInvalidDocument, p.Name, owner, c.Type)
			}
			params[p.Name] = c.Type
		}
	}
	return nil
}

// Float returns a pointer to v, for building documents in code.
func Float(v float64) *float64 { return &v }
