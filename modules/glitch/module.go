// Package glitch models sudden spin-ups. Each glitch n is an epoch GLEP_n
// with optional phase, frequency and frequency-derivative steps applied to
// every arrival after it.
package glitch

import (
	"fmt"

	"github.com/vk/pulsartime/internal/component"
	"github.com/vk/pulsartime/internal/param"
	"github.com/vk/pulsartime/internal/registry"
	"github.com/vk/pulsartime/internal/toa"
	"github.com/vk/pulsartime/internal/units"
)

// TypeName is the registered name of the component.
const TypeName = "Glitch"

const secondsPerDay = 86400.0

var (
	// Epoch is the primary family; every step needs a matching epoch.
	Epoch = param.Template{Prefix: "GLEP_", Kind: param.KindMJD, Unit: units.MJD, Description: "Epoch of glitch"}
	// Phase is the permanent phase step.
	Phase = param.Template{Prefix: "GLPH_", Kind: param.KindFloat, Unit: units.Cycle, Description: "Phase change of glitch"}
	// F0 is the permanent frequency step.
	F0 = param.Template{Prefix: "GLF0_", Kind: param.KindFloat, Unit: units.Hertz, Description: "Frequency change of glitch"}
	// F1 is the permanent frequency-derivative step.
	F1 = param.Template{Prefix: "GLF1_", Kind: param.KindFloat, Unit: units.SpinDerivative(1), Description: "Frequency-derivative change of glitch"}
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Register registers the component factory.
func (m *Module) Register(r *registry.Registry) {
	r.MustRegister(TypeName, func() component.Component { return New() })
}

func init() {
	(&Module{}).Register(registry.Default())
}

type glitch struct {
	epoch, ph, f0, f1 *param.Parameter
}

// Glitch starts empty; glitches are added as GLEP_n families.
type Glitch struct {
	*component.Base
	glitches []glitch
}

// New returns a Glitch component with no glitches.
func New() *Glitch {
	g := &Glitch{Base: component.NewBase(TypeName, component.Phase)}
	for _, t := range []param.Template{Epoch, Phase, F0, F1} {
		g.DeclareFamily(t)
	}
	g.DeclarePairing(param.Pairing{Primary: Epoch, Optional: []param.Template{Phase, F0, F1}})
	g.OnSetup(g.setup)
	g.OnValidate(g.validate)
	g.AddPhaseFunc(g.phase)
	return g
}

// AddGlitch adds the epoch parameter of glitch n with the given MJD.
func (g *Glitch) AddGlitch(n int, epoch float64) error {
	p, err := param.NewPrefix(Epoch, n, param.WithValue(epoch))
	if err != nil {
		return err
	}
	return g.AddParam(p, true)
}

func (g *Glitch) setup() error {
	g.glitches = g.glitches[:0]
	for _, i := range g.FamilyIndices(Epoch.Prefix) {
		gl := glitch{epoch: g.MustParam(Epoch.Name(i))}
		gl.ph, _ = g.Param(Phase.Name(i))
		gl.f0, _ = g.Param(F0.Name(i))
		gl.f1, _ = g.Param(F1.Name(i))
		g.glitches = append(g.glitches, gl)

		for order, p := range []*param.Parameter{gl.ph, gl.f0, gl.f1} {
			if p == nil {
				continue
			}
			if err := g.RegisterDeriv(p.Name(), g.step(gl, order)); err != nil {
				return err
			}
		}
	}
	return nil
}

func (g *Glitch) validate() error {
	for _, gl := range g.glitches {
		if !gl.epoch.IsSet() {
			return fmt.Errorf("%w: %s has no epoch", component.ErrMissingParam, gl.epoch.Name())
		}
	}
	return nil
}

// since returns the seconds elapsed from the glitch epoch, or a negative
// value before it.
func since(gl glitch, mjd, delay float64) float64 {
	return (mjd-gl.epoch.Float())*secondsPerDay - delay
}

func (g *Glitch) phase(t *toa.TOAs, delay []float64) []float64 {
	out := make([]float64, t.Len())
	for _, gl := range g.glitches {
		ph, f0, f1 := value(gl.ph), value(gl.f0), value(gl.f1)
		for i, mjd := range t.MJD {
			dt := since(gl, mjd, delay[i])
			if dt <= 0 {
				continue
			}
			out[i] += ph + f0*dt + f1*dt*dt/2
		}
	}
	return out
}

// step returns the derivative with respect to the order-th term of glitch
// gl: 1, dt or dt^2/2 after the epoch and zero before.
func (g *Glitch) step(gl glitch, order int) component.DerivFunc {
	return func(t *toa.TOAs, delay []float64) []float64 {
		out := make([]float64, t.Len())
		for i, mjd := range t.MJD {
			dt := since(gl, mjd, delay[i])
			if dt <= 0 {
				continue
			}
			switch order {
			case 0:
				out[i] = 1
			case 1:
				out[i] = dt
			default:
				out[i] = dt * dt / 2
			}
		}
		return out
	}
}

func value(p *param.Parameter) float64 {
	if p == nil {
		return 0
	}
	return p.ValueOr(0)
}
