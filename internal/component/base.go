// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package component

import (
	"errors"
	"fmt"
	"slices"

	"github.com/vk/pulsartime/internal/param"
	"github.com/vk/pulsartime/internal/toa"
)

// Base implements Component from a declarative description filled in by the
// concrete type's constructor.
type Base struct {
	typeName string
	category Category

	params []*param.Parameter
	byName map[string]*param.Parameter

	required  []string
	templates []param.Template
	pairings  []param.Pairing

	delayFuncs []DelayFunc
	phaseFuncs []PhaseFunc

	// Rebuilt by Setup.
	derivs      map[string]DerivFunc
	familyIndex map[string][]int

	setupHooks      []func() error
	validateHooks   []func() error
	invalidateHooks []func()
}

var _ Component = (*Base)(nil)

// NewBase returns an empty component description.
func NewBase(typeName string, category Category) *Base {
	return &Base{
		typeName:    typeName,
		category:    category,
		byName:      make(map[string]*param.Parameter),
		derivs:      make(map[string]DerivFunc),
		familyIndex: make(map[string][]int),
	}
}

func (b *Base) TypeName() string   { return b.typeName }
func (b *Base) Category() Category { return b.category }

// Require marks parameter names that must hold a value at validation.
func (b *Base) Require(names ...string) {
	b.required = append(b.required, names...)
}

// DeclareFamily accepts members of t as parameters of this component.
func (b *Base) DeclareFamily(t param.Template) {
	b.templates = append(b.templates, t)
}

// DeclarePairing adds a cross-family rule checked at validation. The
// templates involved must also be declared as families.
func (b *Base) DeclarePairing(p param.Pairing) {
	b.pairings = append(b.pairings, p)
}

// AddDelayFunc appends a delay contribution.
func (b *Base) AddDelayFunc(f DelayFunc) { b.delayFuncs = append(b.delayFuncs, f) }

// AddPhaseFunc appends a phase contribution.
func (b *Base) AddPhaseFunc(f PhaseFunc) { b.phaseFuncs = append(b.phaseFuncs, f) }

// OnSetup registers work to run at the end of every Setup, typically
// RegisterDeriv calls and lookup tables keyed on current family members.
func (b *Base) OnSetup(f func() error) { b.setupHooks = append(b.setupHooks, f) }

// OnValidate registers a component specific validation check.
func (b *Base) OnValidate(f func() error) { b.validateHooks = append(b.validateHooks, f) }

// OnInvalidate registers a cache reset run whenever a parameter value
// changes.
func (b *Base) OnInvalidate(f func()) { b.invalidateHooks = append(b.invalidateHooks, f) }

// RegisterDeriv wires the partial derivative with respect to name. The
// parameter must be present.
func (b *Base) RegisterDeriv(name string, f DerivFunc) error {
	if _, ok := b.byName[name]; !ok {
		return fmt.Errorf("%w: %s.%s has no parameter for derivative", ErrParamNotFound, b.typeName, name)
	}
	b.derivs[name] = f
	return nil
}

// Params returns the parameters in insertion order.
func (b *Base) Params() []*param.Parameter {
	return slices.Clone(b.params)
}

// Param looks a parameter up by name.
func (b *Base) Param(name string) (*param.Parameter, bool) {
	p, ok := b.byName[name]
	return p, ok
}

// MustParam is Param for names the component itself created.
func (b *Base) MustParam(name string) *param.Parameter {
	p, ok := b.byName[name]
	if !ok {
		panic(fmt.Sprintf("component %s: no parameter %q", b.typeName, name))
	}
	return p
}

// AddParam inserts p. With setup, derived state is rebuilt immediately; if
// that fails the insertion is undone.
func (b *Base) AddParam(p *param.Parameter, setup bool) error {
	if _, exists := b.byName[p.Name()]; exists {
		return fmt.Errorf("%w: %s already has %s", ErrDuplicateParam, b.typeName, p.Name())
	}
	if !p.Attach(b) {
		return fmt.Errorf("%w: %s", ErrParamOwned, p.Name())
	}
	b.params = append(b.params, p)
	b.byName[p.Name()] = p
	b.Invalidate()

	if !setup {
		return nil
	}
	if err := b.Setup(); err != nil {
		if rmErr := b.RemoveParam(p.Name()); rmErr != nil {
			return errors.Join(err, rmErr)
		}
		return err
	}
	return nil
}

// MustAddParam is AddParam without setup for parameters a constructor
// creates on an empty component.
func (b *Base) MustAddParam(p *param.Parameter) {
	if err := b.AddParam(p, false); err != nil {
		panic(fmt.Sprintf("component %s: %v", b.typeName, err))
	}
}

// RemoveParam deletes the named parameter and re-runs Setup so derived state
// no longer refers to it. If Setup cannot complete without the parameter the
// removal is undone.
func (b *Base) RemoveParam(name string) error {
	p, ok := b.byName[name]
	if !ok {
		return fmt.Errorf("%w: %s has no %s", ErrParamNotFound, b.typeName, name)
	}
	pos := slices.Index(b.params, p)
	b.params = slices.Delete(b.params, pos, pos+1)
	delete(b.byName, name)
	delete(b.derivs, name)
	p.Detach()

	err := b.Setup()
	if err == nil {
		return nil
	}
	b.params = slices.Insert(b.params, pos, p)
	b.byName[name] = p
	p.Attach(b)
	if restoreErr := b.Setup(); restoreErr != nil {
		err = errors.Join(err, restoreErr)
	}
	return fmt.Errorf("removing %s: %w", name, err)
}

// Setup rebuilds family indices and derivative functions from the current
// parameters. It is idempotent.
func (b *Base) Setup() error {
	b.Invalidate()
	b.derivs = make(map[string]DerivFunc)
	b.familyIndex = make(map[string][]int, len(b.templates))
	for _, t := range b.templates {
		b.familyIndex[t.Prefix] = param.Collect(t, b.params).Indices()
	}
	for _, hook := range b.setupHooks {
		if err := hook(); err != nil {
			return fmt.Errorf("%s setup: %w", b.typeName, err)
		}
	}
	return nil
}

// Validate checks that the parameter set is complete and consistent.
func (b *Base) Validate() error {
	for _, name := range b.required {
		p, ok := b.byName[name]
		if !ok || !p.IsSet() {
			return fmt.Errorf("%w: %s requires %s", ErrMissingParam, b.typeName, name)
		}
	}
	for _, p := range b.params {
		if !p.Frozen() && !p.IsSet() {
			return fmt.Errorf("%w: %s is free but has no value", ErrMissingParam, p.Name())
		}
	}
	for _, t := range b.templates {
		if err := param.Collect(t, b.params).Check(); err != nil {
			return err
		}
	}
	for _, pr := range b.pairings {
		if err := pr.Check(b.params); err != nil {
			return err
		}
	}
	for _, hook := range b.validateHooks {
		if err := hook(); err != nil {
			return err
		}
	}
	return nil
}

// Invalidate drops caches derived from parameter values.
func (b *Base) Invalidate() {
	for _, f := range b.invalidateHooks {
		f()
	}
}

// Derivatives returns the parameter names with a registered derivative,
// sorted.
func (b *Base) Derivatives() []string {
	names := make([]string, 0, len(b.derivs))
	for name := range b.derivs {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Derivative returns the derivative function for name.
func (b *Base) Derivative(name string) (DerivFunc, bool) {
	f, ok := b.derivs[name]
	return f, ok
}

// Templates returns the declared prefix families.
func (b *Base) Templates() []param.Template {
	return slices.Clone(b.templates)
}

// TemplateFor finds the declared family name belongs to.
func (b *Base) TemplateFor(name string) (param.Template, int, bool) {
	for _, t := range b.templates {
		if idx, ok := t.Member(name); ok {
			return t, idx, true
		}
	}
	return param.Template{}, 0, false
}

// FamilyIndices returns the member indices of the family with the given
// prefix as of the last Setup.
func (b *Base) FamilyIndices(prefix string) []int {
	return slices.Clone(b.familyIndex[prefix])
}

// Family collects the live members of the family with the given prefix.
func (b *Base) Family(prefix string) (*param.Family, bool) {
	for _, t := range b.templates {
		if t.Prefix == prefix {
			return param.Collect(t, b.params), true
		}
	}
	return nil, false
}

// ComputeDelay sums the delay contributions.
func (b *Base) ComputeDelay(t *toa.TOAs, acc []float64) []float64 {
	out := make([]float64, t.Len())
	for _, f := range b.delayFuncs {
		addInto(out, f(t, acc))
	}
	return out
}

// ComputePhase sums the phase contributions.
func (b *Base) ComputePhase(t *toa.TOAs, delay []float64) []float64 {
	out := make([]float64, t.Len())
	for _, f := range b.phaseFuncs {
		addInto(out, f(t, delay))
	}
	return out
}

func addInto(dst, src []float64) {
	for i := range dst {
		dst[i] += src[i]
	}
}
