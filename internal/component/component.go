// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package component

import (
	"strings"

	"github.com/vk/pulsartime/internal/param"
	"github.com/vk/pulsartime/internal/toa"
)

// Category is the set of capabilities a component declares.
type Category uint8

const (
	// Delay components contribute a time correction in seconds.
	Delay Category = 1 << iota
	// Phase components contribute rotational phase in cycles.
	Phase
)

// Has reports whether c includes every capability in o.
func (c Category) Has(o Category) bool {
	return o != 0 && c&o == o
}

func (c Category) String() string {
	var parts []string
	if c.Has(Delay) {
		parts = append(parts, "delay")
	}
	if c.Has(Phase) {
		parts = append(parts, "phase")
	}
	if len(parts) == 0 {
		return "none"
	}
	return strings.Join(parts, "|")
}

// DelayFunc computes a delay contribution in seconds. acc holds the delay
// accumulated by the stages evaluated before this component.
type DelayFunc func(t *toa.TOAs, acc []float64) []float64

// PhaseFunc computes a phase contribution in cycles given the total delay.
type PhaseFunc func(t *toa.TOAs, delay []float64) []float64

// DerivFunc computes the partial derivative of a component's contribution
// with respect to one parameter. The second argument has the same meaning
// as for the component's contribution functions.
type DerivFunc func(t *toa.TOAs, in []float64) []float64

// Component is the interface the timing model composes. Implementations
// embed *Base.
type Component interface {
	TypeName() string
	Category() Category

	Params() []*param.Parameter
	Param(name string) (*param.Parameter, bool)
	AddParam(p *param.Parameter, setup bool) error
	RemoveParam(name string) error

	Setup() error
	Validate() error
	Invalidate()

	Derivatives() []string
	Derivative(name string) (DerivFunc, bool)

	Templates() []param.Template
	TemplateFor(name string) (param.Template, int, bool)
	FamilyIndices(prefix string) []int

	ComputeDelay(t *toa.TOAs, acc []float64) []float64
	ComputePhase(t *toa.TOAs, delay []float64) []float64
}
