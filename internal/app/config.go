package app

import (
	"errors"
	"fmt"
)

// Output formats accepted by Config.Emit.
const (
	EmitTable = "table"
	EmitHCL   = "hcl"
	EmitTOML  = "toml"
	EmitYAML  = "yaml"
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	ModelPath string // .hcl, .toml or .yaml file, or a directory of .hcl files

	LogFormat string
	LogLevel  string

	// Evaluation grid, used by the table output.
	Start   float64
	End     float64
	Points  int
	FreqMHz float64

	ListTypes bool
	Emit      string
	// Watch re-runs the output every time the model changes on disk.
	Watch bool
}

func NewConfig(cfg Config) (*Config, error) {
	if cfg.Emit == "" {
		cfg.Emit = EmitTable
	}
	if cfg.ListTypes {
		return &cfg, nil
	}
	if cfg.ModelPath == "" {
		return nil, errors.New("ModelPath is a required configuration field and cannot be empty")
	}

	switch cfg.Emit {
	case EmitTable, EmitHCL, EmitTOML, EmitYAML:
	default:
		return nil, fmt.Errorf("unknown output format %q", cfg.Emit)
	}
	if cfg.Points < 1 {
		return nil, fmt.Errorf("points must be positive, got %d", cfg.Points)
	}
	if cfg.End < cfg.Start {
		return nil, fmt.Errorf("grid end %g is before start %g", cfg.End, cfg.Start)
	}

	return &cfg, nil
}
