package phaseoffset

import (
	"github.com/vk/pulsartime/internal/component"
	"github.com/vk/pulsartime/internal/param"
	"github.com/vk/pulsartime/internal/registry"
	"github.com/vk/pulsartime/internal/toa"
	"github.com/vk/pulsartime/internal/units"
)

// TypeName is the registered name of the component.
const TypeName = "PhaseOffset"

// Module implements the registry.Module interface for this package.
type Module struct{}

// Register registers the component factory.
func (m *Module) Register(r *registry.Registry) {
	r.MustRegister(TypeName, func() component.Component { return New() })
}

func init() {
	(&Module{}).Register(registry.Default())
}

// New returns a component subtracting the constant PHOFF, in cycles, from
// the phase of every arrival.
func New() *component.Base {
	b := component.NewBase(TypeName, component.Phase)
	b.MustAddParam(param.New("PHOFF", param.KindFloat, units.Cycle,
		param.WithValue(0), param.WithDescription("Overall phase offset")))
	b.Require("PHOFF")
	b.AddPhaseFunc(func(t *toa.TOAs, _ []float64) []float64 {
		return fill(t.Len(), -b.MustParam("PHOFF").Float())
	})
	b.OnSetup(func() error {
		return b.RegisterDeriv("PHOFF", func(t *toa.TOAs, _ []float64) []float64 {
			return fill(t.Len(), -1)
		})
	})
	return b
}

func fill(n int, v float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = v
	}
	return out
}
