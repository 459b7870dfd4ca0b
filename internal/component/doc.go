// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// Package component defines the unit of composition of a timing model: an
// addressable bundle of parameters together with the functions computing
// its delay and/or phase contribution and their partial derivatives.
//
// Concrete component types embed *Base and describe themselves in their
// constructor: which parameters they start with, which are required, which
// prefix families and pairings they accept, and which contribution
// functions they provide. Base implements the full Component interface on
// top of that description.
//
// # Two-phase mutation
//
// AddParam(p, false) only inserts. Derived state (derivative functions,
// family indices, lookup tables built from parameter values) is rebuilt by
// Setup, which callers run once after a batch of related insertions, for
// example a DMX value together with its DMXR1/DMXR2 range pair. Validate is
// a separate pass/fail gate; Compute* results are only meaningful after it
// succeeds.
package component
