// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// Package units provides the unit layer the timing model uses to check and
// convert parameter assignments. A Unit is a plain tag; each tag maps to a
// Dimension and a scale factor relative to the dimension's base unit. Two
// units are convertible when they share a dimension.
//
// Conversions are registered with github.com/bcicen/go-units: every
// dimension gets a base unit and every tag a ratio conversion to it.
package units

import (
	"errors"
	"fmt"
	"strconv"
	"sync"

	gounits "github.com/bcicen/go-units"
)

var (
	// ErrUnknownUnit is returned when a unit tag has no definition.
	ErrUnknownUnit = errors.New("unknown unit")
	// ErrIncompatible is returned when two units do not share a dimension.
	ErrIncompatible = errors.New("incompatible units")
)

// Unit is a physical unit tag such as "s", "Hz" or "pc/cm^3".
type Unit string

// Dimension identifies a family of mutually convertible units.
type Dimension string

const (
	Dimensionless Unit = ""
	Cycle         Unit = "cycle"
	Second        Unit = "s"
	Millisecond   Unit = "ms"
	Microsecond   Unit = "us"
	Nanosecond    Unit = "ns"
	Day           Unit = "d"
	Year          Unit = "yr"
	MJD           Unit = "MJD"
	Hertz         Unit = "Hz"
	MegaHertz     Unit = "MHz"
	LightSecond   Unit = "ls"
	Meter         Unit = "m"
	Kilometer     Unit = "km"
	AU            Unit = "AU"
	Radian        Unit = "rad"
	Degree        Unit = "deg"
	DMUnit        Unit = "pc/cm^3"
	PerCubicCm    Unit = "cm^-3"
)

const (
	secondsPerDay  = 86400.0
	secondsPerYear = 365.25 * secondsPerDay
	speedOfLight   = 299792458.0     // m/s
	metersPerAU    = 149597870700.0  // IAU 2012
	degreesPerRad  = 57.295779513082 // 180/pi
)

type definition struct {
	dim   Dimension
	scale float64
	unit  gounits.Unit
}

var builtin = map[Unit]definition{
	Dimensionless: {dim: "1", scale: 1},
	Cycle:         {dim: "1", scale: 1},
	Second:        {dim: "T", scale: 1},
	Millisecond:   {dim: "T", scale: 1e-3},
	Microsecond:   {dim: "T", scale: 1e-6},
	Nanosecond:    {dim: "T", scale: 1e-9},
	Day:           {dim: "T", scale: secondsPerDay},
	Year:          {dim: "T", scale: secondsPerYear},
	MJD:           {dim: "epoch", scale: 1},
	Hertz:         {dim: "T^-1", scale: 1},
	"1/s":         {dim: "T^-1", scale: 1},
	MegaHertz:     {dim: "T^-1", scale: 1e6},
	"Hz/s":        {dim: "T^-2", scale: 1},
	LightSecond:   {dim: "L", scale: 1},
	Meter:         {dim: "L", scale: 1 / speedOfLight},
	Kilometer:     {dim: "L", scale: 1e3 / speedOfLight},
	AU:            {dim: "L", scale: metersPerAU / speedOfLight},
	Radian:        {dim: "angle", scale: 1},
	Degree:        {dim: "angle", scale: 1 / degreesPerRad},
	DMUnit:        {dim: "DM", scale: 1},
	PerCubicCm:    {dim: "n", scale: 1},
}

var (
	mu    sync.RWMutex
	table = make(map[Unit]definition, len(builtin))
	bases = make(map[Dimension]gounits.Unit)
)

func init() {
	for u, def := range builtin {
		MustDefine(u, def.dim, def.scale)
	}
}

// libName keeps tags apart from the library's own unit names, which share
// its global namespace.
func libName(s string) string { return "pulsartime " + s }

// Define registers u as belonging to dim with the given scale relative to
// the dimension's base unit. Redefining an existing unit is a no-op when the
// definition matches and an error otherwise.
func Define(u Unit, dim Dimension, scale float64) error {
	mu.Lock()
	defer mu.Unlock()
	if def, ok := table[u]; ok {
		if def.dim == dim && def.scale == scale {
			return nil
		}
		return fmt.Errorf("unit %q already defined as %s", u, def.dim)
	}
	if scale == 0 {
		return fmt.Errorf("unit %q: zero scale", u)
	}

	base, ok := bases[dim]
	if !ok {
		name := libName("base " + string(dim))
		base = gounits.NewUnit(name, name, gounits.UnitOptionQuantity(string(dim)))
		bases[dim] = base
	}
	name := libName(string(u))
	lu := gounits.NewUnit(name, name, gounits.UnitOptionQuantity(string(dim)))
	gounits.NewRatioConversion(lu, base, scale)
	table[u] = definition{dim: dim, scale: scale, unit: lu}
	return nil
}

// MustDefine is Define for definitions known to be consistent.
func MustDefine(u Unit, dim Dimension, scale float64) {
	if err := Define(u, dim, scale); err != nil {
		panic(err)
	}
}

// Lookup returns the dimension and scale of u.
func Lookup(u Unit) (Dimension, float64, bool) {
	mu.RLock()
	defer mu.RUnlock()
	def, ok := table[u]
	return def.dim, def.scale, ok
}

// Convertible reports whether values in from can be expressed in to.
func Convertible(from, to Unit) bool {
	fd, _, ok1 := Lookup(from)
	td, _, ok2 := Lookup(to)
	return ok1 && ok2 && fd == td
}

// Convert expresses v, given in from, in the unit to.
func Convert(v float64, from, to Unit) (float64, error) {
	if from == to {
		return v, nil
	}
	mu.RLock()
	defer mu.RUnlock()
	fdef, ok := table[from]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownUnit, from)
	}
	tdef, ok := table[to]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownUnit, to)
	}
	if fdef.dim != tdef.dim {
		return 0, fmt.Errorf("%w: %q (%s) and %q (%s)", ErrIncompatible, from, fdef.dim, to, tdef.dim)
	}
	out, err := gounits.ConvertFloat(v, fdef.unit, tdef.unit)
	if err != nil {
		return 0, fmt.Errorf("%w: %q to %q: %w", ErrIncompatible, from, to, err)
	}
	return out.Float(), nil
}

// SpinDerivative returns the unit of the n-th spin frequency derivative:
// Hz, Hz/s, Hz/s^2, ... The unit is defined on first use.
func SpinDerivative(n int) Unit {
	switch n {
	case 0:
		return Hertz
	case 1:
		return "Hz/s"
	}
	u := Unit("Hz/s^" + strconv.Itoa(n))
	MustDefine(u, Dimension("T^-"+strconv.Itoa(n+1)), 1)
	return u
}

// DMDerivative returns the unit of the n-th DM time derivative:
// pc/cm^3, pc/cm^3/yr, pc/cm^3/yr^2, ...
func DMDerivative(n int) Unit {
	if n == 0 {
		return DMUnit
	}
	u := DMUnit + "/yr"
	if n > 1 {
		u += Unit("^" + strconv.Itoa(n))
	}
	MustDefine(u, Dimension("DM/T^"+strconv.Itoa(n)), 1)
	return u
}
