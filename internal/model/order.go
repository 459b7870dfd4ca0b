// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package model

import (
	"cmp"
	"maps"
	"math"
	"slices"
	"sort"

	"github.com/vk/pulsartime/internal/component"
)

// Order ranks component types within their list; lower ranks come first.
type Order map[string]int

// Rank returns the rank of typeName. Unknown types rank after every known
// type.
func (o Order) Rank(typeName string) int {
	if r, ok := o[typeName]; ok {
		return r
	}
	return math.MaxInt
}

// defaultOrder follows the physical evaluation order: delays that act on
// the arrival time at the observatory come before those needing barycentred
// time, and the binary stage comes last among delays.
var defaultOrder = Order{
	"JumpDelay":           10,
	"SolarWindDispersion": 20,
	"DispersionDM":        30,
	"DispersionDMX":       40,
	"BinaryCircular":      50,
	"PhaseOffset":         60,
	"Spindown":            70,
	"Glitch":              80,
}

// DefaultOrder returns a copy of the canonical rank table.
func DefaultOrder() Order {
	return maps.Clone(defaultOrder)
}

// insertPos returns the index at which c keeps list sorted by rank, after
// any existing entries of equal rank.
func (o Order) insertPos(list []component.Component, c component.Component) int {
	rank := o.Rank(c.TypeName())
	return sort.Search(len(list), func(i int) bool {
		return o.Rank(list[i].TypeName()) > rank
	})
}

func (o Order) sort(list []component.Component) {
	slices.SortStableFunc(list, func(a, b component.Component) int {
		return cmp.Compare(o.Rank(a.TypeName()), o.Rank(b.TypeName()))
	})
}
