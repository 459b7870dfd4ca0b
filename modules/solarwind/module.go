// Package solarwind implements the dispersion delay of a spherically
// symmetric solar wind whose electron density falls off as 1/r^2.
package solarwind

import (
	"fmt"
	"math"

	"github.com/vk/pulsartime/internal/component"
	"github.com/vk/pulsartime/internal/param"
	"github.com/vk/pulsartime/internal/registry"
	"github.com/vk/pulsartime/internal/toa"
	"github.com/vk/pulsartime/internal/units"
	"github.com/vk/pulsartime/modules/dispersion"
)

// TypeName is the registered name of the component.
const TypeName = "SolarWindDispersion"

// minDerivFreqMHz is the frequency below which the NE_SW derivative is zero.
const minDerivFreqMHz = 1.0

// parsecsPerAU converts the AU^2/r geometry factor, r in AU, into pc.
const parsecsPerAU = 4.84813681109536e-6

// Module implements the registry.Module interface for this package.
type Module struct{}

// Register registers the component factory.
func (m *Module) Register(r *registry.Registry) {
	r.MustRegister(TypeName, func() component.Component { return New() })
}

func init() {
	(&Module{}).Register(registry.Default())
}

// SolarWind contributes DM = NE_SW * AU^2 * rho / (r * sin(rho)) where rho
// is the pulsar-Sun elongation and r the observatory-Sun distance. Only
// model SWM = 0 is implemented.
type SolarWind struct {
	*component.Base
}

// New returns a SolarWind with NE_SW and SWM set to zero.
func New() *SolarWind {
	s := &SolarWind{Base: component.NewBase(TypeName, component.Delay)}
	s.MustAddParam(param.New("NE_SW", param.KindFloat, units.PerCubicCm,
		param.WithValue(0), param.WithDescription("Solar wind electron density at 1 AU")))
	s.MustAddParam(param.New("SWM", param.KindFloat, units.Dimensionless,
		param.WithValue(0), param.WithDescription("Solar wind model")))
	s.Require("NE_SW", "SWM")
	s.OnValidate(s.validate)
	s.OnSetup(func() error {
		return s.RegisterDeriv("NE_SW", dDelayDNe)
	})
	s.AddDelayFunc(func(t *toa.TOAs, _ []float64) []float64 {
		return dispersion.Delay(t, s.DMValue(t))
	})
	return s
}

// dDelayDNe is the delay per unit NE_SW.
func dDelayDNe(t *toa.TOAs, _ []float64) []float64 {
	out := dispersion.Delay(t, Geometry(t))
	for i := range out {
		if t.Freq(i) < minDerivFreqMHz {
			out[i] = 0
		}
	}
	return out
}

func (s *SolarWind) validate() error {
	if m := s.MustParam("SWM").Float(); m != 0 {
		return fmt.Errorf("%w: solar wind model SWM=%g is not implemented", component.ErrInvalidParam, m)
	}
	return nil
}

// DMValue returns the solar wind DM in pc/cm^3 at each arrival.
func (s *SolarWind) DMValue(t *toa.TOAs) []float64 {
	ne := s.MustParam("NE_SW").ValueOr(0)
	dm := Geometry(t)
	for i := range dm {
		dm[i] *= ne
	}
	return dm
}

// Geometry returns AU^2 * rho / (r * sin(rho)) in pc for each arrival.
// Arrivals without an elongation contribute nothing.
func Geometry(t *toa.TOAs) []float64 {
	out := make([]float64, t.Len())
	for i := range out {
		if i >= len(t.Elongation) {
			continue
		}
		rho := t.Elongation[i]
		r := 1.0
		if i < len(t.SunDistanceAU) && t.SunDistanceAU[i] > 0 {
			r = t.SunDistanceAU[i]
		}
		ratio := 1.0 // rho/sin(rho) as rho -> 0
		if rho != 0 {
			s := math.Sin(rho)
			if s == 0 {
				continue
			}
			ratio = rho / s
		}
		out[i] = parsecsPerAU * ratio / r
	}
	return out
}
