// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package param

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/vk/pulsartime/internal/units"
)

// IndexPolicy is the rule a family's indices must satisfy at validation.
type IndexPolicy int

const (
	// Sparse families accept any unique non-negative indices.
	Sparse IndexPolicy = iota
	// ContiguousFromOne families must hold every index from 1 to their
	// maximum. Index 0 is not a member.
	ContiguousFromOne
)

func (p IndexPolicy) String() string {
	if p == ContiguousFromOne {
		return "contiguous-from-one"
	}
	return "sparse"
}

// Template describes a prefix family: member names are Prefix followed by
// the index, zero padded to Width digits when Width is positive.
type Template struct {
	Prefix      string
	Width       int
	Policy      IndexPolicy
	Kind        Kind
	Unit        units.Unit
	Description string

	// UnitFor overrides Unit for families whose unit depends on the index,
	// such as spin derivatives.
	UnitFor func(index int) units.Unit
}

// Name instantiates the template at index.
func (t Template) Name(index int) string {
	if t.Width > 0 {
		return fmt.Sprintf("%s%0*d", t.Prefix, t.Width, index)
	}
	return t.Prefix + strconv.Itoa(index)
}

// UnitAt returns the unit of the member at index.
func (t Template) UnitAt(index int) units.Unit {
	if t.UnitFor != nil {
		return t.UnitFor(index)
	}
	return t.Unit
}

// Match reports whether name is a canonical instance of the template and
// returns its index.
func (t Template) Match(name string) (int, bool) {
	rest, ok := strings.CutPrefix(name, t.Prefix)
	if !ok || rest == "" {
		return 0, false
	}
	for _, r := range rest {
		if r < '0' || r > '9' {
			return 0, false
		}
	}
	if t.Width > 0 && len(rest) != t.Width {
		return 0, false
	}
	if t.Width == 0 && len(rest) > 1 && rest[0] == '0' {
		return 0, false
	}
	idx, err := strconv.Atoi(rest)
	if err != nil {
		return 0, false
	}
	return idx, true
}

// Member reports whether name belongs to the family under its policy.
func (t Template) Member(name string) (int, bool) {
	idx, ok := t.Match(name)
	if !ok || (t.Policy == ContiguousFromOne && idx == 0) {
		return 0, false
	}
	return idx, true
}

func (t Template) checkIndex(index int) error {
	if index < 0 {
		return fmt.Errorf("%w: %s index %d is negative", ErrInvalidIndex, t.Prefix, index)
	}
	if t.Policy == ContiguousFromOne && index == 0 {
		return fmt.Errorf("%w: %s family starts at 1", ErrInvalidIndex, t.Prefix)
	}
	if t.Width > 0 {
		limit := 1
		for range t.Width {
			limit *= 10
		}
		if index >= limit {
			return fmt.Errorf("%w: %s index %d exceeds %d digits", ErrInvalidIndex, t.Prefix, index, t.Width)
		}
	}
	return nil
}

// NewPrefix creates the family member at index. Only the index itself is
// checked here; whether the family is complete is a validation concern,
// since callers may add members in any order.
func NewPrefix(t Template, index int, opts ...Option) (*Parameter, error) {
	if err := t.checkIndex(index); err != nil {
		return nil, err
	}
	if t.Description != "" {
		opts = append([]Option{WithDescription(fmt.Sprintf("%s %d", t.Description, index))}, opts...)
	}
	p := New(t.Name(index), t.Kind, t.UnitAt(index), opts...)
	p.prefix = &PrefixRef{Prefix: t.Prefix, Index: index}
	return p, nil
}

// MustPrefix is NewPrefix for indices known to be valid. It panics on error.
func MustPrefix(t Template, index int, opts ...Option) *Parameter {
	p, err := NewPrefix(t, index, opts...)
	if err != nil {
		panic(err)
	}
	return p
}
