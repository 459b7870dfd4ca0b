package builder

import (
	"context"
	"fmt"

	"github.com/vk/pulsartime/internal/component"
	"github.com/vk/pulsartime/internal/config"
	"github.com/vk/pulsartime/internal/ctxlog"
	"github.com/vk/pulsartime/internal/model"
	"github.com/vk/pulsartime/internal/param"
	"github.com/vk/pulsartime/internal/registry"
	"github.com/vk/pulsartime/internal/toa"
	"github.com/vk/pulsartime/internal/units"
)

// Build constructs a complete, validated timing model from a document.
func Build(ctx context.Context, doc *config.Document, r *registry.Registry, opts ...model.Option) (*model.TimingModel, error) {
	ctx = ctxlog.With(ctx, "model", doc.Name)
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Build: Starting model construction.")

	if err := doc.Validate(); err != nil {
		return nil, err
	}

	opts = append([]model.Option{model.WithLogger(logger)}, opts...)
	m, err := model.New(doc.Name, opts...)
	if err != nil {
		return nil, err
	}

	for _, spec := range doc.Components {
		c, err := r.Create(spec.Type)
		if err != nil {
			return nil, err
		}
		for _, ps := range spec.Params {
			if err := bind(c, ps); err != nil {
				return nil, &model.ComponentError{Type: spec.Type, Err: err}
			}
		}
		if err := m.AddComponent(c, false); err != nil {
			return nil, err
		}
		logger.Debug("Build: Component staged.", "type", spec.Type, "params", len(c.Params()))
	}

	if err := m.Validate(); err != nil {
		return nil, err
	}

	logger.Info("Build: Model construction successful.", "components", len(m.Components()))
	return m, nil
}

// bind applies ps to its parameter in c, creating family members on demand.
func bind(c component.Component, ps *config.ParamSpec) error {
	p, ok := c.Param(ps.Name)
	if !ok {
		t, idx, member := c.TemplateFor(ps.Name)
		if !member {
			return fmt.Errorf("%w: %s has no parameter %s", component.ErrParamNotFound, c.TypeName(), ps.Name)
		}
		created, err := param.NewPrefix(t, idx)
		if err != nil {
			return err
		}
		if err := c.AddParam(created, false); err != nil {
			return err
		}
		p = created
	}

	unit := p.Unit()
	if ps.Unit != "" {
		unit = units.Unit(ps.Unit)
	}
	if ps.Value != nil {
		if err := p.SetValue(units.Q(*ps.Value, unit)); err != nil {
			return err
		}
	}
	if ps.Uncertainty != nil {
		if err := p.SetUncertainty(units.Q(*ps.Uncertainty, unit)); err != nil {
			return err
		}
	}
	p.SetFrozen(!ps.Fit)
	if s := ps.Select; s != nil {
		if err := p.SetSelector(toa.Selector{Key: s.Key, Lo: s.Lo, Hi: s.Hi}); err != nil {
			return fmt.Errorf("%w: %w", component.ErrInvalidParam, err)
		}
	}
	return nil
}
