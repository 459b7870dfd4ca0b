package app

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/vk/pulsartime/internal/builder"
	"github.com/vk/pulsartime/internal/config"
	"github.com/vk/pulsartime/internal/ctxlog"
	"github.com/vk/pulsartime/internal/model"
	"github.com/vk/pulsartime/internal/toa"
)

// Run executes the main application logic based on the provided configuration.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	if a.config.ListTypes {
		for name := range a.registry.Types() {
			fmt.Fprintln(a.outW, name)
		}
		return nil
	}

	m, err := builder.Build(ctx, a.doc, a.registry)
	if err != nil {
		return fmt.Errorf("failed to build timing model: %w", err)
	}
	a.logger.Info("Timing model built.",
		"name", m.Name(),
		"delay_components", len(m.DelayComponents()),
		"phase_components", len(m.PhaseComponents()),
		"free_params", len(m.FreeParams()),
	)

	if enc := EncoderFor(a.config.Emit); enc != nil {
		return a.emit(m, enc)
	}
	if err := a.table(m); err != nil {
		return err
	}

	a.logger.Debug("App.Run method finished.")
	return nil
}

func (a *App) emit(m *model.TimingModel, enc config.Encoder) error {
	out, err := enc.Encode(builder.Describe(m))
	if err != nil {
		return fmt.Errorf("failed to encode model as %s: %w", a.config.Emit, err)
	}
	_, err = a.outW.Write(out)
	return err
}

// table prints MJD, total delay in seconds and total phase in cycles for
// each grid point.
func (a *App) table(m *model.TimingModel) error {
	toas := toa.Uniform(a.config.Start, a.config.End, a.config.Points, a.config.FreqMHz)
	delay := m.ComputeTotalDelay(toas)
	phase := m.ComputeTotalPhase(toas)
	a.logger.Debug("Model evaluated.", "points", toas.Len())

	w := tabwriter.NewWriter(a.outW, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "MJD\tDELAY_S\tPHASE")
	for i, mjd := range toas.MJD {
		fmt.Fprintf(w, "%.6f\t%.9e\t%.9f\n", mjd, delay[i], phase[i])
	}
	return w.Flush()
}
