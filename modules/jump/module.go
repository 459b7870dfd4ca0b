// Package jump implements arbitrary time offsets between subsets of
// arrivals, such as data taken with different backends.
package jump

import (
	"fmt"

	"github.com/vk/pulsartime/internal/component"
	"github.com/vk/pulsartime/internal/param"
	"github.com/vk/pulsartime/internal/registry"
	"github.com/vk/pulsartime/internal/toa"
	"github.com/vk/pulsartime/internal/units"
)

// TypeName is the registered name of the component.
const TypeName = "JumpDelay"

// Template is the JUMP mask family.
var Template = param.Template{
	Prefix:      "JUMP",
	Kind:        param.KindMask,
	Unit:        units.Second,
	Description: "Time offset for selected arrivals",
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

// Jump applies -JUMPn to every arrival selected by JUMPn. Par files carry
// jumps with the opposite sign to a delay.
type Jump struct {
	*component.Base
	jumps []*param.Parameter
}

// New returns a Jump with no jumps.
func New() *Jump {
	j := &Jump{Base: component.NewBase(TypeName, component.Delay)}
	j.DeclareFamily(Template)
	j.OnSetup(j.setup)
	j.OnValidate(j.validate)
	j.AddDelayFunc(j.delay)
	return j
}

// AddJump adds JUMPn with value seconds over the arrivals sel picks.
func (j *Jump) AddJump(n int, seconds float64, sel toa.Selector) error {
	p, err := param.NewPrefix(Template, n, param.WithValue(seconds), param.WithSelector(sel))
	if err != nil {
		return err
	}
	return j.AddParam(p, true)
}

func (j *Jump) setup() error {
	j.jumps = j.jumps[:0]
	for _, i := range j.FamilyIndices(Template.Prefix) {
		p := j.MustParam(Template.Name(i))
		j.jumps = append(j.jumps, p)
		if err := j.RegisterDeriv(p.Name(), derivative(p)); err != nil {
			return err
		}
	}
	return nil
}

func (j *Jump) validate() error {
	for _, p := range j.jumps {
		sel, ok := p.Selector()
		if !ok {
			return fmt.Errorf("%w: %s selects no arrivals", component.ErrInvalidParam, p.Name())
		}
		if err := sel.Validate(); err != nil {
			return fmt.Errorf("%w: %s: %w", component.ErrInvalidParam, p.Name(), err)
		}
	}
	return nil
}

func (j *Jump) delay(t *toa.TOAs, _ []float64) []float64 {
	out := make([]float64, t.Len())
	for _, p := range j.jumps {
		sel, ok := p.Selector()
		if !ok {
			continue
		}
		v := p.ValueOr(0)
		for i, in := range sel.Mask(t) {
			if in {
				out[i] -= v
			}
		}
	}
	return out
}

func derivative(p *param.Parameter) component.DerivFunc {
	return func(t *toa.TOAs, _ []float64) []float64 {
		out := make([]float64, t.Len())
		sel, ok := p.Selector()
		if !ok {
			return out
		}
		for i, in := range sel.Mask(t) {
			if in {
				out[i] = -1
			}
		}
		return out
	}
}
