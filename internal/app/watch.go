package app

import (
	"context"
	"fmt"

	"github.com/vk/pulsartime/internal/ctxlog"
	"github.com/vk/pulsartime/internal/watch"
)

// Watch runs once, then reloads the model and runs again after every change
// to the model path until ctx is cancelled. Load and build failures after
// the first run are logged and the previous output stands.
func (a *App) Watch(ctx context.Context, opts ...watch.Option) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	if err := a.Run(ctx); err != nil {
		return err
	}

	w, err := watch.New(a.config.ModelPath, ".hcl", opts...)
	if err != nil {
		return fmt.Errorf("failed to watch %s: %w", a.config.ModelPath, err)
	}
	a.logger.Info("Watching model for changes.", "path", a.config.ModelPath)

	return w.Run(ctx, func(ctx context.Context) {
		if err := a.load(ctx); err != nil {
			a.logger.Error("Reload failed.", "error", err)
			return
		}
		if err := a.Run(ctx); err != nil {
			a.logger.Error("Re-run failed.", "error", err)
		}
	})
}
