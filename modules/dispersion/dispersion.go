// Package dispersion implements the cold-plasma dispersion delays: a
// Taylor series in DM about DMEPOCH (DispersionDM) and piecewise-constant DM
// offsets over MJD bins (DispersionDMX).
//
// Both components express their effect as a DM value per arrival; the delay
// follows from Delay. Other packages with a dispersive effect (solar wind)
// reuse the same conversion.
package dispersion

import (
	"github.com/vk/pulsartime/internal/component"
	"github.com/vk/pulsartime/internal/registry"
	"github.com/vk/pulsartime/internal/toa"
)

// DMConst is the dispersion constant in s MHz^2 cm^3 / pc, with the
// conventional 1/2.41e-4 definition.
const DMConst = 1.0 / 2.41e-4

// Module registers both dispersion components.
type Module struct{}

// Register registers the component factories.
func (m *Module) Register(r *registry.Registry) {
	r.MustRegister(DMTypeName, func() component.Component { return NewDM() })
	r.MustRegister(DMXTypeName, func() component.Component { return NewDMX() })
}

func init() {
	(&Module{}).Register(registry.Default())
}

// DMValueFunc returns the DM in pc/cm^3 at each arrival.
type DMValueFunc func(t *toa.TOAs) []float64

// Delay converts per-arrival DM into delay seconds at each arrival's
// frequency. Arrivals with unknown or non-positive frequency get zero.
func Delay(t *toa.TOAs, dm []float64) []float64 {
	out := make([]float64, t.Len())
	for i := range out {
		f := t.Freq(i)
		if f <= 0 {
			continue
		}
		out[i] = DMConst * dm[i] / (f * f)
	}
	return out
}

// delayOf adapts a sum of DM value functions into a delay function.
func delayOf(funcs ...DMValueFunc) component.DelayFunc {
	return func(t *toa.TOAs, _ []float64) []float64 {
		dm := make([]float64, t.Len())
		for _, f := range funcs {
			for i, v := range f(t) {
				dm[i] += v
			}
		}
		return Delay(t, dm)
	}
}
