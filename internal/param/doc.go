// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// Package param implements the leaf of the timing model: named, unit-bearing
// parameters with fit state and uncertainty, and the prefix families built
// from them.
//
// # Parameters
//
// A Parameter is created standalone, optionally with an initial value, and
// is later attached to exactly one owner (a component). Value changes notify
// the owner so it can drop derived state computed from the old value.
//
// # Prefix families
//
// Some parameters are not fixed names but members of a family sharing a name
// template and an integer index: the spin derivatives F1, F2, ... or the DMX
// bins DMX_0001, DMX_0002, .... A Template describes such a family and its
// IndexPolicy:
//
//   - Sparse: any unique non-negative indices, gaps allowed.
//   - ContiguousFromOne: indices 1..max must all be present.
//
// Families are implicit. There is no family object to create or destroy; a
// Family value is collected from a parameter list whenever it is needed, and
// a family "exists" as long as one of its members does.
//
// Cross-family rules, such as a DMX value needing its DMXR1/DMXR2 range pair,
// are expressed with a Pairing and checked at validation time, never when a
// single member is inserted.
package param
