package builder

import (
	"github.com/vk/pulsartime/internal/config"
	"github.com/vk/pulsartime/internal/model"
)

// Describe produces the document of m: every component in evaluation order
// with every parameter's value, unit, fit flag, uncertainty and selection.
// Building the result yields an equivalent model.
func Describe(m *model.TimingModel) *config.Document {
	doc := &config.Document{Name: m.Name()}
	for _, c := range m.Components() {
		spec := &config.ComponentSpec{Type: c.TypeName()}
		for _, p := range c.Params() {
			ps := &config.ParamSpec{
				Name: p.Name(),
				Unit: string(p.Unit()),
				Fit:  !p.Frozen(),
			}
			if v, ok := p.Value(); ok {
				ps.Value = config.Float(v)
			}
			if u, ok := p.Uncertainty(); ok {
				ps.Uncertainty = config.Float(u)
			}
			if s, ok := p.Selector(); ok {
				ps.Select = &config.SelectorSpec{Key: s.Key, Lo: s.Lo, Hi: s.Hi}
			}
			spec.Params = append(spec.Params, ps)
		}
		doc.Components = append(doc.Components, spec)
	}
	return doc
}
