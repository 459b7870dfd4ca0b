// Package spindown implements the pulsar rotation model: phase as a Taylor
// series in the spin frequency and its derivatives about PEPOCH.
package spindown

import (
	"fmt"
	"math"

	"github.com/vk/pulsartime/internal/component"
	"github.com/vk/pulsartime/internal/param"
	"github.com/vk/pulsartime/internal/registry"
	"github.com/vk/pulsartime/internal/toa"
	"github.com/vk/pulsartime/internal/units"
)

// TypeName is the registered name of the component.
const TypeName = "Spindown"

const secondsPerDay = 86400.0

// FTemplate is the spin derivative family F1, F2, ... F0 is a plain
// parameter and not a member.
var FTemplate = param.Template{
	Prefix:      "F",
	Policy:      param.ContiguousFromOne,
	Kind:        param.KindFloat,
	Description: "Spin-frequency derivative",
	UnitFor:     units.SpinDerivative,
}

// Module implements the registry.Module interface for this package.
type Module struct{}

// Register registers the component factory.
func (m *Module) Register(r *registry.Registry) {
	r.MustRegister(TypeName, func() component.Component { return New() })
}

func init() {
	(&Module{}).Register(registry.Default())
}

// Spindown contributes the rotational phase F0*dt + F1*dt^2/2 + ... where
// dt is the emission time since PEPOCH in seconds.
type Spindown struct {
	*component.Base

	// coeffs[n] holds F_n, rebuilt by Setup from the current family.
	coeffs []*param.Parameter
}

// New returns a Spindown with F0 and PEPOCH unset.
func New() *Spindown {
	s := &Spindown{Base: component.NewBase(TypeName, component.Phase)}
	s.MustAddParam(param.New("F0", param.KindFloat, units.Hertz,
		param.WithDescription("Spin frequency")))
	s.MustAddParam(param.New("PEPOCH", param.KindMJD, units.MJD,
		param.WithDescription("Reference epoch for spin-down")))
	s.Require("F0", "PEPOCH")
	s.DeclareFamily(FTemplate)
	s.OnSetup(s.setup)
	s.AddPhaseFunc(s.phase)
	return s
}

func (s *Spindown) setup() error {
	if err := s.RegisterDeriv("F0", s.derivF(0)); err != nil {
		return err
	}
	idx := s.FamilyIndices(FTemplate.Prefix)
	s.coeffs = []*param.Parameter{s.MustParam("F0")}
	for _, i := range idx {
		s.coeffs = append(s.coeffs, s.MustParam(FTemplate.Name(i)))
	}
	for _, i := range idx {
		if err := s.RegisterDeriv(FTemplate.Name(i), s.derivF(i)); err != nil {
			return err
		}
	}
	return s.RegisterDeriv("PEPOCH", s.derivPEPOCH)
}

// dt returns the emission time since PEPOCH in seconds.
func (s *Spindown) dt(t *toa.TOAs, delay []float64) []float64 {
	pepoch := s.MustParam("PEPOCH").Float()
	out := make([]float64, t.Len())
	for i, mjd := range t.MJD {
		out[i] = (mjd-pepoch)*secondsPerDay - delay[i]
	}
	return out
}

// taylor evaluates sum_k c[k] dt^(k+1)/(k+1)! by Horner's rule.
func taylor(c []float64, dt float64) float64 {
	var acc float64
	for k := len(c) - 1; k >= 0; k-- {
		acc = (acc + c[k]) * dt / float64(k+1)
	}
	return acc
}

func (s *Spindown) values() []float64 {
	c := make([]float64, len(s.coeffs))
	for i, p := range s.coeffs {
		c[i] = p.ValueOr(0)
	}
	return c
}

func (s *Spindown) phase(t *toa.TOAs, delay []float64) []float64 {
	c := s.values()
	out := s.dt(t, delay)
	for i, dt := range out {
		out[i] = taylor(c, dt)
	}
	return out
}

// derivF returns d(phase)/d(F_n) = dt^(n+1)/(n+1)!.
func (s *Spindown) derivF(n int) component.DerivFunc {
	return func(t *toa.TOAs, delay []float64) []float64 {
		fact := 1.0
		for k := 2; k <= n+1; k++ {
			fact *= float64(k)
		}
		out := s.dt(t, delay)
		for i, dt := range out {
			out[i] = math.Pow(dt, float64(n+1)) / fact
		}
		return out
	}
}

// derivPEPOCH returns d(phase)/d(PEPOCH), in cycles per day: minus the
// instantaneous spin frequency times the seconds in a day.
func (s *Spindown) derivPEPOCH(t *toa.TOAs, delay []float64) []float64 {
	c := s.values()
	out := s.dt(t, delay)
	for i, dt := range out {
		out[i] = -frequency(c, dt) * secondsPerDay
	}
	return out
}

// frequency evaluates F0 + F1*dt + F2*dt^2/2 + ...
func frequency(c []float64, dt float64) float64 {
	var acc float64
	for k := len(c) - 1; k >= 1; k-- {
		acc = (acc + c[k]) * dt / float64(k)
	}
	return acc + c[0]
}

// Frequency returns the spin frequency at each arrival.
func (s *Spindown) Frequency(t *toa.TOAs, delay []float64) []float64 {
	c := s.values()
	out := s.dt(t, delay)
	for i, dt := range out {
		out[i] = frequency(c, dt)
	}
	return out
}

// String summarises the spin parameters.
func (s *Spindown) String() string {
	return fmt.Sprintf("%s(F0..F%d)", TypeName, len(s.coeffs)-1)
}
