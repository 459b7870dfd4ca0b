package tomlcfg

import (
	"context"
	"fmt"
	"os"

	toml "github.com/pelletier/go-toml/v2"
	"github.com/vk/pulsartime/internal/config"
	"github.com/vk/pulsartime/internal/ctxlog"
)

// file is the on-disk layout.
type file struct {
	Name       string      `toml:"name"`
	Components []component `toml:"component"`
}

type component struct {
	Type   string  `toml:"type"`
	Params []param `toml:"param,omitempty"`
}

type param struct {
	Name        string    `toml:"name"`
	Value       *float64  `toml:"value,omitempty"`
	Unit        string    `toml:"unit,omitempty"`
	Fit         bool      `toml:"fit,omitempty"`
	Uncertainty *float64  `toml:"uncertainty,omitempty"`
	Select      *selector `toml:"select,omitempty"`
}

type selector struct {
	Key string  `toml:"key"`
	Lo  float64 `toml:"lo"`
	Hi  float64 `toml:"hi"`
}

// Loader reads TOML model files.
type Loader struct{}

var _ config.Loader = (*Loader)(nil)

// NewLoader creates a new TOML model loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load reads and translates the model file at path. Unknown keys are
// rejected.
func (l *Loader) Load(ctx context.Context, path string) (*config.Document, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("TOML loader started.", "path", path)

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	defer f.Close()

	var raw file
	dec := toml.NewDecoder(f).DisallowUnknownFields()
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	doc := &config.Document{Name: raw.Name}
	for _, c := range raw.Components {
		spec := &config.ComponentSpec{Type: c.Type}
		for _, p := range c.Params {
			ps := &config.ParamSpec{
				Name:        p.Name,
				Value:       p.Value,
				Unit:        p.Unit,
				Fit:         p.Fit,
				Uncertainty: p.Uncertainty,
			}
			if p.Select != nil {
				ps.Select = &config.SelectorSpec{Key: p.Select.Key, Lo: p.Select.Lo, Hi: p.Select.Hi}
			}
			spec.Params = append(spec.Params, ps)
		}
		doc.Components = append(doc.Components, spec)
	}
	if err := doc.Validate(); err != nil {
		return nil, err
	}

	logger.Debug("TOML loading complete.", "model", doc.Name, "components", len(doc.Components))
	return doc, nil
}

// Encoder renders documents as TOML.
type Encoder struct{}

var _ config.Encoder = Encoder{}

// Encode marshals doc in the layout Loader reads.
func (Encoder) Encode(doc *config.Document) ([]byte, error) {
	raw := file{Name: doc.Name}
	for _, c := range doc.Components {
		rc := component{Type: c.Type}
		for _, p := range c.Params {
			rp := param{Name: p.Name, Value: p.Value, Unit: p.Unit, Fit: p.Fit, Uncertainty: p.Uncertainty}
			if p.Select != nil {
				rp.Select = &selector{Key: p.Select.Key, Lo: p.Select.Lo, Hi: p.Select.Hi}
			}
			rc.Params = append(rc.Params, rp)
		}
		raw.Components = append(raw.Components, rc)
	}
	return toml.Marshal(raw)
}
