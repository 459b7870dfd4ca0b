// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// Package registry provides the central catalog of component types.
//
// The Registry maps the type names used in model documents (e.g.
// "Spindown", "DispersionDMX") to the zero-argument factories that build a
// fresh component of that type. Each built-in component package registers
// itself from init() into the process-wide Default registry, so importing a
// component package is all it takes to make its type available. This is the
// single extension point for adding new physical effects without touching
// the model core.
//
// The catalog is append-only: types are registered once during process
// initialization and never removed. Tests that need an isolated catalog
// build one with New and install modules into it explicitly.
package registry
