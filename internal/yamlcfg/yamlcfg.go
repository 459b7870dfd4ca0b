package yamlcfg

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/vk/pulsartime/internal/config"
	"github.com/vk/pulsartime/internal/ctxlog"
	"gopkg.in/yaml.v3"
)

type file struct {
	Name       string      `yaml:"name"`
	Components []component `yaml:"components"`
}

type component struct {
	Type   string  `yaml:"type"`
	Params []param `yaml:"params,omitempty"`
}

type param struct {
	Name        string    `yaml:"name"`
	Value       *float64  `yaml:"value,omitempty"`
	Unit        string    `yaml:"unit,omitempty"`
	Fit         bool      `yaml:"fit,omitempty"`
	Uncertainty *float64  `yaml:"uncertainty,omitempty"`
	Select      *selector `yaml:"select,omitempty,flow"`
}

type selector struct {
	Key string  `yaml:"key"`
	Lo  float64 `yaml:"lo"`
	Hi  float64 `yaml:"hi"`
}

// Loader reads YAML model files.
type Loader struct{}

var _ config.Loader = (*Loader)(nil)

// NewLoader creates a new YAML model loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load reads the single document in the file at path. Unknown keys are
// rejected.
func (l *Loader) Load(ctx context.Context, path string) (*config.Document, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("YAML loader started.", "path", path)

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	var raw file
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: %s is empty", config.ErrInvalidDocument, path)
		}
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

	logger.Debug("YAML loading complete.", "model", doc.Name, "components", len(doc.Components))
	return doc, nil
}

// Encoder renders documents as YAML.
type Encoder struct{}

var _ config.Encoder = Encoder{}

// Encode marshals doc in the layout Loader reads, with two-space indents.
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

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(raw); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
