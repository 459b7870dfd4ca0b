// Package binary implements the Roemer delay of a pulsar in a circular
// orbit. The orbit is evaluated at the arrival time corrected by every
// delay stage before it, so the component's position in the delay list
// changes its output.
package binary

import (
	"math"

	"github.com/vk/pulsartime/internal/component"
	"github.com/vk/pulsartime/internal/param"
	"github.com/vk/pulsartime/internal/registry"
	"github.com/vk/pulsartime/internal/toa"
	"github.com/vk/pulsartime/internal/units"
)

// TypeName is the registered name of the component.
const TypeName = "BinaryCircular"

const secondsPerDay = 86400.0

// Module implements the registry.Module interface for this package.
type Module struct{}

// Register registers the component factory.
func (m *Module) Register(r *registry.Registry) {
	r.MustRegister(TypeName, func() component.Component { return New() })
}

func init() {
	(&Module{}).Register(registry.Default())
}

// Circular computes A1 * sin(2*pi*(t - TASC)/PB).
type Circular struct {
	*component.Base
	pb, a1, tasc *param.Parameter
}

// New returns a Circular binary with every orbital parameter unset.
func New() *Circular {
	c := &Circular{Base: component.NewBase(TypeName, component.Delay)}
	c.pb = param.New("PB", param.KindFloat, units.Day, param.WithDescription("Orbital period"))
	c.a1 = param.New("A1", param.KindFloat, units.LightSecond, param.WithDescription("Projected semi-major axis"))
	c.tasc = param.New("TASC", param.KindMJD, units.MJD, param.WithDescription("Epoch of ascending node"))
	for _, p := range []*param.Parameter{c.pb, c.a1, c.tasc} {
		c.MustAddParam(p)
	}
	c.Require("PB", "A1", "TASC")
	c.OnSetup(c.setup)
	c.AddDelayFunc(c.delay)
	return c
}

func (c *Circular) setup() error {
	derivs := map[string]component.DerivFunc{
		"A1":   c.dA1,
		"PB":   c.dPB,
		"TASC": c.dTASC,
	}
	for name, f := range derivs {
		if err := c.RegisterDeriv(name, f); err != nil {
			return err
		}
	}
	return nil
}

// orbit returns the orbital phase in radians at each arrival, evaluated at
// the arrival time minus the accumulated delay.
func (c *Circular) orbit(t *toa.TOAs, acc []float64) []float64 {
	pb, tasc := c.pb.Float(), c.tasc.Float()
	out := make([]float64, t.Len())
	for i, mjd := range t.MJD {
		days := mjd - acc[i]/secondsPerDay - tasc
		out[i] = 2 * math.Pi * days / pb
	}
	return out
}

func (c *Circular) delay(t *toa.TOAs, acc []float64) []float64 {
	a1 := c.a1.Float()
	out := c.orbit(t, acc)
	for i, phi := range out {
		out[i] = a1 * math.Sin(phi)
	}
	return out
}

func (c *Circular) dA1(t *toa.TOAs, acc []float64) []float64 {
	out := c.orbit(t, acc)
	for i, phi := range out {
		out[i] = math.Sin(phi)
	}
	return out
}

func (c *Circular) dPB(t *toa.TOAs, acc []float64) []float64 {
	a1, pb := c.a1.Float(), c.pb.Float()
	out := c.orbit(t, acc)
	for i, phi := range out {
		out[i] = -a1 * math.Cos(phi) * phi / pb
	}
	return out
}

func (c *Circular) dTASC(t *toa.TOAs, acc []float64) []float64 {
	a1, pb := c.a1.Float(), c.pb.Float()
	out := c.orbit(t, acc)
	for i, phi := range out {
		out[i] = -a1 * math.Cos(phi) * 2 * math.Pi / pb
	}
	return out
}
