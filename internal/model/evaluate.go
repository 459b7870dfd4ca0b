// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package model

import (
	"fmt"
	"slices"

	"github.com/vk/pulsartime/internal/component"
	"github.com/vk/pulsartime/internal/toa"
)

// ComputeTotalDelay folds the delay list in order. Each stage sees the
// delay accumulated by the stages before it. The model must have passed
// Validate.
func (m *TimingModel) ComputeTotalDelay(t *toa.TOAs) []float64 {
	acc := make([]float64, t.Len())
	for _, c := range m.delay {
		add(acc, c.ComputeDelay(t, slices.Clone(acc)))
	}
	return acc
}

// ComputeTotalPhase sums the phase list evaluated at the total delay. The
// model must have passed Validate.
func (m *TimingModel) ComputeTotalPhase(t *toa.TOAs) []float64 {
	delay := m.ComputeTotalDelay(t)
	phase := make([]float64, t.Len())
	for _, c := range m.phase {
		add(phase, c.ComputePhase(t, delay))
	}
	return phase
}

// delayBefore returns the delay accumulated by the stages preceding index
// stop of the delay list.
func (m *TimingModel) delayBefore(t *toa.TOAs, stop int) []float64 {
	acc := make([]float64, t.Len())
	for _, c := range m.delay[:stop] {
		add(acc, c.ComputeDelay(t, slices.Clone(acc)))
	}
	return acc
}

// DelayDerivative evaluates d(delay)/d(name) with the owning stage's input
// held at the delay accumulated before it.
func (m *TimingModel) DelayDerivative(name string, t *toa.TOAs) ([]float64, error) {
	owner, f, err := m.derivative(name)
	if err != nil {
		return nil, err
	}
	if !owner.Category().Has(component.Delay) {
		return nil, fmt.Errorf("%w: %s belongs to phase component %s", component.ErrParamNotFound, name, owner.TypeName())
	}
	loc, err := m.LocateComponent(owner)
	if err != nil {
		return nil, err
	}
	return f(t, m.delayBefore(t, loc.Index)), nil
}

// PhaseDerivative evaluates d(phase)/d(name) at the total delay.
func (m *TimingModel) PhaseDerivative(name string, t *toa.TOAs) ([]float64, error) {
	owner, f, err := m.derivative(name)
	if err != nil {
		return nil, err
	}
	if !owner.Category().Has(component.Phase) {
		return nil, fmt.Errorf("%w: %s belongs to delay component %s", component.ErrParamNotFound, name, owner.TypeName())
	}
	return f(t, m.ComputeTotalDelay(t)), nil
}

func (m *TimingModel) derivative(name string) (component.Component, component.DerivFunc, error) {
	typeName, ok := m.owners[name]
	if !ok {
		return nil, nil, fmt.Errorf("%w: %s", component.ErrParamNotFound, name)
	}
	loc, err := m.Locate(typeName)
	if err != nil {
		return nil, nil, err
	}
	f, ok := loc.Component.Derivative(name)
	if !ok {
		return nil, nil, fmt.Errorf("%w: %s has no derivative for %s", component.ErrParamNotFound, typeName, name)
	}
	return loc.Component, f, nil
}

func add(dst, src []float64) {
	for i := range dst {
		dst[i] += src[i]
	}
}
