// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package model

import (
	"fmt"
	"maps"

	"github.com/vk/pulsartime/internal/component"
	"github.com/vk/pulsartime/internal/param"
)

// merge records c's parameters in the namespace. Collisions were checked by
// the caller.
func (m *TimingModel) merge(c component.Component) {
	for _, p := range c.Params() {
		m.params[p.Name()] = p
		m.owners[p.Name()] = c.TypeName()
	}
}

// refresh rebuilds the namespace from the components, catching collisions
// introduced by editing a component directly.
func (m *TimingModel) refresh() error {
	params := make(map[string]*param.Parameter, len(m.params))
	owners := make(map[string]string, len(m.owners))
	for _, c := range m.Components() {
		for _, p := range c.Params() {
			if owner, taken := owners[p.Name()]; taken {
				return &ComponentError{
					Type: c.TypeName(),
					Err:  fmt.Errorf("%w: %s is already owned by %s", component.ErrDuplicateParam, p.Name(), owner),
				}
			}
			params[p.Name()] = p
			owners[p.Name()] = c.TypeName()
		}
	}
	m.params = params
	m.owners = owners
	return nil
}

// AddParamFromTop adds p to the component of the given type and records it
// in the namespace.
func (m *TimingModel) AddParamFromTop(p *param.Parameter, typeName string, setup bool) error {
	loc, err := m.Locate(typeName)
	if err != nil {
		return err
	}
	if owner, taken := m.owners[p.Name()]; taken {
		return fmt.Errorf("%w: %s is already owned by %s", component.ErrDuplicateParam, p.Name(), owner)
	}
	if err := loc.Component.AddParam(p, setup); err != nil {
		return &ComponentError{Type: typeName, Err: err}
	}
	m.params[p.Name()] = p
	m.owners[p.Name()] = typeName
	return nil
}

// RemoveParam removes the named parameter from whichever component owns it.
func (m *TimingModel) RemoveParam(name string) error {
	for _, c := range m.Components() {
		if _, ok := c.Param(name); !ok {
			continue
		}
		if err := c.RemoveParam(name); err != nil {
			return &ComponentError{Type: c.TypeName(), Err: err}
		}
		delete(m.params, name)
		delete(m.owners, name)
		return nil
	}
	return fmt.Errorf("%w: %s", component.ErrParamNotFound, name)
}

// Param looks a parameter up in the namespace.
func (m *TimingModel) Param(name string) (*param.Parameter, bool) {
	p, ok := m.params[name]
	return p, ok
}

// Params returns every parameter, component by component in evaluation
// order, each component's parameters in insertion order.
func (m *TimingModel) Params() []*param.Parameter {
	var out []*param.Parameter
	for _, c := range m.Components() {
		out = append(out, c.Params()...)
	}
	return out
}

// FreeParams returns the parameters that are not frozen, in Params order.
func (m *TimingModel) FreeParams() []*param.Parameter {
	var out []*param.Parameter
	for _, p := range m.Params() {
		if !p.Frozen() {
			out = append(out, p)
		}
	}
	return out
}

// ParamsMapping maps every parameter name to the type of its owner.
func (m *TimingModel) ParamsMapping() map[string]string {
	return maps.Clone(m.owners)
}

// PrefixMapping maps index to parameter name for every member of the family
// with the given prefix, in whichever component declares it.
func (m *TimingModel) PrefixMapping(prefix string) map[int]string {
	out := make(map[int]string)
	for _, c := range m.Components() {
		for _, t := range c.Templates() {
			if t.Prefix != prefix {
				continue
			}
			for idx, p := range param.Collect(t, c.Params()).Members {
				out[idx] = p.Name()
			}
		}
	}
	return out
}
