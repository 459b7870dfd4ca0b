// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package param

import (
	"fmt"
	"math"
	"strconv"

	"github.com/vk/pulsartime/internal/toa"
	"github.com/vk/pulsartime/internal/units"
)

// Kind is the value type of a parameter.
type Kind int

const (
	// KindFloat is a plain floating point value.
	KindFloat Kind = iota
	// KindMJD is an epoch in days.
	KindMJD
	// KindMask is a floating point value applied to a selected subset of
	// arrivals.
	KindMask
)

func (k Kind) String() string {
	switch k {
	case KindFloat:
		return "float"
	case KindMJD:
		return "mjd"
	case KindMask:
		return "mask"
	default:
		return "kind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Owner is notified whenever a parameter's value changes.
type Owner interface {
	Invalidate()
}

// PrefixRef records the family a prefix parameter belongs to.
type PrefixRef struct {
	Prefix string
	Index  int
}

// Parameter is a named, typed, unit-bearing value with fit state and an
// optional uncertainty. The zero value is not usable; construct with New or
// NewPrefix.
type Parameter struct {
	name        string
	description string
	kind        Kind
	unit        units.Unit

	value float64
	set   bool

	frozen         bool
	uncertainty    float64
	hasUncertainty bool

	prefix   *PrefixRef
	selector *toa.Selector
	owner    Owner
}

// Option configures a Parameter at construction.
type Option func(*Parameter)

// WithValue gives the parameter an initial value in its declared unit.
func WithValue(v float64) Option {
	return func(p *Parameter) {
		p.value = v
		p.set = true
	}
}

// WithDescription sets the human readable description.
func WithDescription(d string) Option {
	return func(p *Parameter) { p.description = d }
}

// Free marks the parameter as fitted (not frozen).
func Free() Option {
	return func(p *Parameter) { p.frozen = false }
}

// WithSelector attaches the arrival selection of a mask parameter.
func WithSelector(s toa.Selector) Option {
	return func(p *Parameter) { p.selector = &s }
}

// New creates a frozen parameter with no value unless an option sets one.
func New(name string, kind Kind, unit units.Unit, opts ...Option) *Parameter {
	p := &Parameter{
		name:   name,
		kind:   kind,
		unit:   unit,
		frozen: true,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *Parameter) Name() string        { return p.name }
func (p *Parameter) Kind() Kind          { return p.kind }
func (p *Parameter) Unit() units.Unit    { return p.unit }
func (p *Parameter) Description() string { return p.description }
func (p *Parameter) IsSet() bool         { return p.set }
func (p *Parameter) Frozen() bool        { return p.frozen }

// Value returns the stored value and whether one is set.
func (p *Parameter) Value() (float64, bool) {
	return p.value, p.set
}

// Float returns the value, or NaN when unset.
func (p *Parameter) Float() float64 {
	if !p.set {
		return math.NaN()
	}
	return p.value
}

// ValueOr returns the value, or def when unset.
func (p *Parameter) ValueOr(def float64) float64 {
	if !p.set {
		return def
	}
	return p.value
}

// Quantity returns the value tagged with the declared unit.
func (p *Parameter) Quantity() (units.Quantity, bool) {
	return units.Q(p.value, p.unit), p.set
}

// SetValue stores q converted to the declared unit.
func (p *Parameter) SetValue(q units.Quantity) error {
	v, err := q.In(p.unit)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrUnitMismatch, p.name, err)
	}
	p.SetFloat(v)
	return nil
}

// SetFloat stores v, which must already be in the declared unit.
func (p *Parameter) SetFloat(v float64) {
	p.value = v
	p.set = true
	p.changed()
}

// Unset clears the value.
func (p *Parameter) Unset() {
	p.value = 0
	p.set = false
	p.changed()
}

// SetFrozen sets whether the parameter is excluded from fitting.
func (p *Parameter) SetFrozen(frozen bool) {
	p.frozen = frozen
}

// Uncertainty returns the uncertainty in the declared unit, if any.
func (p *Parameter) Uncertainty() (float64, bool) {
	return p.uncertainty, p.hasUncertainty
}

// SetUncertainty stores q converted to the declared unit.
func (p *Parameter) SetUncertainty(q units.Quantity) error {
	v, err := q.In(p.unit)
	if err != nil {
		return fmt.Errorf("%w: %s uncertainty: %w", ErrUnitMismatch, p.name, err)
	}
	if v < 0 || math.IsNaN(v) {
		return fmt.Errorf("%w: %s = %g", ErrNegativeUncertainty, p.name, v)
	}
	p.uncertainty = v
	p.hasUncertainty = true
	return nil
}

// ClearUncertainty removes the uncertainty.
func (p *Parameter) ClearUncertainty() {
	p.uncertainty = 0
	p.hasUncertainty = false
}

// Prefix returns the family membership of a prefix parameter.
func (p *Parameter) Prefix() (PrefixRef, bool) {
	if p.prefix == nil {
		return PrefixRef{}, false
	}
	return *p.prefix, true
}

// Selector returns the arrival selection of a mask parameter.
func (p *Parameter) Selector() (toa.Selector, bool) {
	if p.selector == nil {
		return toa.Selector{}, false
	}
	return *p.selector, true
}

// SetSelector replaces the arrival selection.
func (p *Parameter) SetSelector(s toa.Selector) error {
	if err := s.Validate(); err != nil {
		return fmt.Errorf("%s: %w", p.name, err)
	}
	p.selector = &s
	p.changed()
	return nil
}

// Owner returns the current owner, or nil.
func (p *Parameter) Owner() Owner {
	return p.owner
}

// Attach sets the owner. It reports false if the parameter already belongs
// to a different owner.
func (p *Parameter) Attach(o Owner) bool {
	if p.owner != nil && p.owner != o {
		return false
	}
	p.owner = o
	return true
}

// Detach releases the parameter from its owner.
func (p *Parameter) Detach() {
	p.owner = nil
}

func (p *Parameter) changed() {
	if p.owner != nil {
		p.owner.Invalidate()
	}
}

// String renders the parameter in par-file column order:
// name, value, fit flag, uncertainty.
func (p *Parameter) String() string {
	v := "None"
	if p.set {
		v = strconv.FormatFloat(p.value, 'g', -1, 64)
	}
	fit := "0"
	if !p.frozen {
		fit = "1"
	}
	s := p.name + " " + v + " " + fit
	if p.hasUncertainty {
		s += " " + strconv.FormatFloat(p.uncertainty, 'g', -1, 64)
	}
	return s
}
