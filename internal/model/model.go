// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package model

import (
	"fmt"
	"log/slog"
	"maps"
	"slices"

	"github.com/vk/pulsartime/internal/component"
	"github.com/vk/pulsartime/internal/param"
)

// ListID names one of the model's two ordered component lists.
type ListID int

const (
	DelayList ListID = iota
	PhaseList
)

func (l ListID) String() string {
	if l == PhaseList {
		return "phase"
	}
	return "delay"
}

// Location is where a component sits in the model.
type Location struct {
	List      ListID
	Index     int
	Component component.Component
}

// TimingModel composes delay and phase components over a shared parameter
// namespace.
type TimingModel struct {
	name   string
	delay  []component.Component
	phase  []component.Component
	order  Order
	logger *slog.Logger

	params map[string]*param.Parameter
	owners map[string]string

	initial []component.Component
}

// Option configures a TimingModel at construction.
type Option func(*TimingModel)

// WithOrder replaces the default rank table.
func WithOrder(o Order) Option {
	return func(m *TimingModel) { m.order = maps.Clone(o) }
}

// WithLogger sets the logger used for lifecycle events.
func WithLogger(l *slog.Logger) Option {
	return func(m *TimingModel) { m.logger = l }
}

// WithComponents adds initial components. They are staged without
// validation; call Validate once the model is complete.
func WithComponents(cs ...component.Component) Option {
	return func(m *TimingModel) { m.initial = append(m.initial, cs...) }
}

// New creates a timing model.
func New(name string, opts ...Option) (*TimingModel, error) {
	m := &TimingModel{
		name:   name,
		order:  DefaultOrder(),
		logger: slog.Default(),
		params: make(map[string]*param.Parameter),
		owners: make(map[string]string),
	}
	for _, opt := range opts {
		opt(m)
	}
	for _, c := range m.initial {
		if err := m.AddComponent(c, false); err != nil {
			return nil, err
		}
	}
	m.initial = nil
	m.logger.Debug("Timing model created.", "name", name, "components", len(m.Components()))
	return m, nil
}

// Name returns the model name.
func (m *TimingModel) Name() string { return m.name }

// DelayComponents returns the delay list in evaluation order.
func (m *TimingModel) DelayComponents() []component.Component { return slices.Clone(m.delay) }

// PhaseComponents returns the phase list in evaluation order.
func (m *TimingModel) PhaseComponents() []component.Component { return slices.Clone(m.phase) }

// Components returns every component once: the delay list followed by the
// phase-only components.
func (m *TimingModel) Components() []component.Component {
	out := slices.Clone(m.delay)
	for _, c := range m.phase {
		if !c.Category().Has(component.Delay) {
			out = append(out, c)
		}
	}
	return out
}

// Component returns the component of the given type.
func (m *TimingModel) Component(typeName string) (component.Component, bool) {
	loc, err := m.Locate(typeName)
	if err != nil {
		return nil, false
	}
	return loc.Component, true
}

// AddComponent inserts c into the list(s) its category selects, at the
// position dictated by the rank table, and merges its parameters into the
// namespace. With validate, the whole model is validated afterwards and the
// add is undone if that fails.
func (m *TimingModel) AddComponent(c component.Component, validate bool) error {
	name := c.TypeName()
	cat := c.Category()
	if !cat.Has(component.Delay) && !cat.Has(component.Phase) {
		return fmt.Errorf("%w: %s", ErrNoCategory, name)
	}
	if _, err := m.Locate(name); err == nil {
		return fmt.Errorf("%w: %s", ErrDuplicateComponent, name)
	}
	for _, p := range c.Params() {
		if owner, taken := m.owners[p.Name()]; taken {
			return fmt.Errorf("%w: %s of %s is already owned by %s",
				component.ErrDuplicateParam, p.Name(), name, owner)
		}
	}
	if err := c.Setup(); err != nil {
		return &ComponentError{Type: name, Err: err}
	}

	if cat.Has(component.Delay) {
		m.delay = slices.Insert(m.delay, m.order.insertPos(m.delay, c), c)
	}
	if cat.Has(component.Phase) {
		m.phase = slices.Insert(m.phase, m.order.insertPos(m.phase, c), c)
	}
	m.merge(c)
	m.logger.Debug("Component added.", "model", m.name, "type", name, "category", cat.String())

	if !validate {
		return nil
	}
	if err := m.Validate(); err != nil {
		m.detach(name)
		m.logger.Debug("Component add rolled back.", "model", m.name, "type", name, "error", err)
		return err
	}
	return nil
}

// RemoveComponent drops the component of the given type and its
// parameters. The model is not re-validated.
func (m *TimingModel) RemoveComponent(typeName string) error {
	if _, err := m.Locate(typeName); err != nil {
		return err
	}
	m.detach(typeName)
	m.logger.Debug("Component removed.", "model", m.name, "type", typeName)
	return nil
}

func (m *TimingModel) detach(typeName string) {
	match := func(c component.Component) bool { return c.TypeName() == typeName }
	m.delay = slices.DeleteFunc(m.delay, match)
	m.phase = slices.DeleteFunc(m.phase, match)
	for name, owner := range m.owners {
		if owner == typeName {
			delete(m.owners, name)
			delete(m.params, name)
		}
	}
}

// Locate returns where the component of the given type sits.
func (m *TimingModel) Locate(typeName string) (Location, error) {
	for i, c := range m.delay {
		if c.TypeName() == typeName {
			return Location{List: DelayList, Index: i, Component: c}, nil
		}
	}
	for i, c := range m.phase {
		if c.TypeName() == typeName {
			return Location{List: PhaseList, Index: i, Component: c}, nil
		}
	}
	return Location{}, fmt.Errorf("%w: %s", ErrComponentNotFound, typeName)
}

// LocateComponent is Locate by identity rather than by type name.
func (m *TimingModel) LocateComponent(c component.Component) (Location, error) {
	loc, err := m.Locate(c.TypeName())
	if err != nil {
		return Location{}, err
	}
	if loc.Component != c {
		return Location{}, fmt.Errorf("%w: %s is a different instance", ErrComponentNotFound, c.TypeName())
	}
	return loc, nil
}

// SetOrder installs a new rank table and re-sorts both lists.
func (m *TimingModel) SetOrder(o Order) {
	m.order = maps.Clone(o)
	m.order.sort(m.delay)
	m.order.sort(m.phase)
}

// Setup re-runs every component's setup.
func (m *TimingModel) Setup() error {
	for _, c := range m.Components() {
		if err := c.Setup(); err != nil {
			return &ComponentError{Type: c.TypeName(), Err: err}
		}
	}
	return nil
}

// Validate checks the namespace for collisions, then every component in
// evaluation order, stopping at the first failure.
func (m *TimingModel) Validate() error {
	if err := m.refresh(); err != nil {
		return err
	}
	for _, c := range m.Components() {
		if err := c.Validate(); err != nil {
			return &ComponentError{Type: c.TypeName(), Err: err}
		}
	}
	m.logger.Debug("Timing model validated.", "model", m.name, "params", len(m.params))
	return nil
}
