// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package param

import (
	"fmt"
	"slices"
	"strings"
)

// Family is the set of parameters currently matching a template, keyed by
// index.
type Family struct {
	Template Template
	Members  map[int]*Parameter
}

// Collect gathers the members of t from params.
func Collect(t Template, params []*Parameter) *Family {
	f := &Family{Template: t, Members: make(map[int]*Parameter)}
	for _, p := range params {
		if idx, ok := t.Member(p.Name()); ok {
			f.Members[idx] = p
		}
	}
	return f
}

// Len returns the number of members.
func (f *Family) Len() int { return len(f.Members) }

// Indices returns the member indices in ascending order.
func (f *Family) Indices() []int {
	idx := make([]int, 0, len(f.Members))
	for i := range f.Members {
		idx = append(idx, i)
	}
	slices.Sort(idx)
	return idx
}

// Names maps each index to its member's name.
func (f *Family) Names() map[int]string {
	out := make(map[int]string, len(f.Members))
	for i, p := range f.Members {
		out[i] = p.Name()
	}
	return out
}

// Check enforces the template's index policy.
func (f *Family) Check() error {
	if f.Template.Policy != ContiguousFromOne || len(f.Members) == 0 {
		return nil
	}
	idx := f.Indices()
	var missing []string
	for i := 1; i <= idx[len(idx)-1]; i++ {
		if _, ok := f.Members[i]; !ok {
			missing = append(missing, f.Template.Name(i))
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s%d present but %s missing",
			ErrIncompleteFamily, f.Template.Prefix, idx[len(idx)-1], strings.Join(missing, ", "))
	}
	return nil
}

// Pairing ties companion families to a primary family by index. Every
// primary member needs all Required companions at the same index, and every
// Required or Optional companion needs its primary.
type Pairing struct {
	Primary  Template
	Required []Template
	Optional []Template
}

// Check enforces the pairing over params.
func (p Pairing) Check(params []*Parameter) error {
	primary := Collect(p.Primary, params)
	for _, idx := range primary.Indices() {
		for _, t := range p.Required {
			if !hasName(params, t.Name(idx)) {
				return fmt.Errorf("%w: %s requires %s",
					ErrIncompleteFamily, p.Primary.Name(idx), t.Name(idx))
			}
		}
	}
	companions := append(slices.Clone(p.Required), p.Optional...)
	for _, t := range companions {
		for _, idx := range Collect(t, params).Indices() {
			if _, ok := primary.Members[idx]; !ok {
				return fmt.Errorf("%w: %s has no matching %s",
					ErrIncompleteFamily, t.Name(idx), p.Primary.Name(idx))
			}
		}
	}
	return nil
}

func hasName(params []*Parameter, name string) bool {
	for _, p := range params {
		if p.Name() == name {
			return true
		}
	}
	return false
}
