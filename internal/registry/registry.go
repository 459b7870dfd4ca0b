// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package registry

import (
	"errors"
	"fmt"
	"iter"
	"log/slog"
	"slices"
	"sync"

	"github.com/vk/pulsartime/internal/component"
)

var (
	// ErrDuplicateType is returned when a type name is registered twice.
	ErrDuplicateType = errors.New("component type already registered")
	// ErrUnknownType is returned when creating an unregistered type.
	ErrUnknownType = errors.New("unknown component type")
)

// Factory builds a new component with its default parameter set.
type Factory func() component.Component

// Module is the interface that all component packages implement to be
// registered.
type Module interface {
	Register(r *Registry)
}

// Registry holds the registered component factories for a process or, in
// tests, for a single isolated catalog.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]Factory
	order     []string
}

// New creates and initializes a new, empty Registry instance.
func New() *Registry {
	return &Registry{
		factories: make(map[string]Factory),
	}
}

var defaultRegistry = New()

// Default returns the process-wide registry populated by component packages
// at init time.
func Default() *Registry {
	return defaultRegistry
}

// Register adds a factory under typeName.
func (r *Registry) Register(typeName string, f Factory) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.factories[typeName]; exists {
		return fmt.Errorf("%w: %q", ErrDuplicateType, typeName)
	}
	slog.Debug("Registering component type.", "type", typeName)
	r.factories[typeName] = f
	r.order = append(r.order, typeName)
	return nil
}

// MustRegister is Register for init-time use. A duplicate is a programming
// error, so it panics.
func (r *Registry) MustRegister(typeName string, f Factory) {
	if err := r.Register(typeName, f); err != nil {
		panic(err)
	}
}

// Install registers every module.
func (r *Registry) Install(mods ...Module) {
	for _, m := range mods {
		m.Register(r)
	}
}

// Create builds a fresh component of the named type. Every call returns an
// independent instance.
func (r *Registry) Create(typeName string) (component.Component, error) {
	r.mu.RLock()
	f, ok := r.factories[typeName]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownType, typeName)
	}
	return f(), nil
}

// Has reports whether typeName is registered.
func (r *Registry) Has(typeName string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.factories[typeName]
	return ok
}

// Types yields the registered type names in registration order. The
// sequence is lazy and may be ranged over any number of times; each pass
// sees the catalog as of its start.
func (r *Registry) Types() iter.Seq[string] {
	return func(yield func(string) bool) {
		r.mu.RLock()
		names := slices.Clone(r.order)
		r.mu.RUnlock()
		for _, name := range names {
			if !yield(name) {
				return
			}
		}
	}
}
