// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// Package model provides the TimingModel: the owner of an ordered pipeline
// of components and of the single parameter namespace aggregated from them.
//
// # Core Concepts
//
//   - Delay list: components with the Delay capability, evaluated in order.
//     Each stage receives the delay accumulated by the stages before it, so
//     the order is part of the physics (a binary orbit is evaluated at the
//     barycentred time, which depends on the earlier delays).
//
//   - Phase list: components with the Phase capability. Their contributions
//     are summed, and evaluated at the total delay.
//
//   - Order: the rank table placing each component type in its list. New
//     components are inserted by binary search on rank; types without a rank
//     go last, in the order they were added. A caller may install a
//     different table with WithOrder or SetOrder.
//
//   - Namespace: every parameter of every component, by name. A name may be
//     owned by one component only; a collision is rejected when a component
//     or parameter is added through the model, and reported by Validate if
//     it was introduced by editing a component directly.
//
// # Lifecycle
//
// Components are added with validation (the add is rolled back if the model
// no longer validates) or staged without it, for callers that still have to
// fill in values. Validate is fail-fast: the first failing component aborts
// the pass and its error is returned wrapped in a *ComponentError.
//
// A TimingModel is not safe for concurrent use. Mutations invalidate derived
// state that the compute methods rely on without re-checking; an embedding
// program that shares a model must serialise writers against readers.
package model
