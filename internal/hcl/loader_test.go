package hcl

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/pulsartime/internal/config"
)

const sample = `
model "J1713+0747" {
  component "Spindown" {
    param "F0" {
      value       = 218.8118
      unit        = "Hz"
      fit         = true
      uncertainty = 1e-12
    }
    param "PEPOCH" { value = "55000.5" }
    param "F1" { value = -4.08e-16 }
  }

  component "JumpDelay" {
    param "JUMP1" {
      value = 1e-5
      select {
        key = "mjd"
        lo  = 55100
        hi  = 55200
      }
    }
  }

  component "DispersionDMX" {}
}
`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	path := writeFile(t, t.TempDir(), "model.hcl", sample)

	doc, err := NewLoader().Load(context.Background(), path)
	require.NoError(t, err)

	assert.Equal(t, "J1713+0747", doc.Name)
	require.Len(t, doc.Components, 3)

	spin := doc.Components[0]
	assert.Equal(t, "Spindown", spin.Type)
	require.Len(t, spin.Params, 3)

	f0 := spin.Params[0]
	assert.Equal(t, "F0", f0.Name)
	require.NotNil(t, f0.Value)
	assert.Equal(t, 218.8118, *f0.Value)
	assert.Equal(t, "Hz", f0.Unit)
	assert.True(t, f0.Fit)
	require.NotNil(t, f0.Uncertainty)
	assert.Equal(t, 1e-12, *f0.Uncertainty)

	pepoch := spin.Params[1]
	require.NotNil(t, pepoch.Value)
	assert.Equal(t, 55000.5, *pepoch.Value, "strings convert to numbers")
	assert.Nil(t, pepoch.Uncertainty)
	assert.False(t, pepoch.Fit)

	jump := doc.Components[1].Params[0]
	require.NotNil(t, jump.Select)
	assert.Equal(t, config.SelectorSpec{Key: "mjd", Lo: 55100, Hi: 55200}, *jump.Select)

	assert.Empty(t, doc.Components[2].Params)
}

func TestLoadDirectory(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "model.hcl", `model "A" {
  component "PhaseOffset" {}
}`)
	writeFile(t, dir, "notes.txt", "ignored")

	doc, err := NewLoader().Load(context.Background(), dir)
	require.NoError(t, err)
	assert.Equal(t, "A", doc.Name)

	writeFile(t, dir, "second.hcl", `model "B" {}`)
	_, err = NewLoader().Load(context.Background(), dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `Duplicate "model" block`)
}

func TestLoadErrors(t *testing.T) {
	testCases := []struct {
		name    string
		content string
		want    string
	}{
		{name: "syntax", content: `model "A" {`, want: "failed to parse"},
		{name: "unknown top-level attribute", content: `name = "A"`, want: "failed to decode"},
		{name: "no model", content: ``, want: "no model block"},
		{name: "two models", content: `model "A" {}
model "B" {}`, want: `Duplicate "model" block`},
		{name: "non-numeric value", content: `model "A" {
  component "X" {
    param "P" { value = "abc" }
  }
}`, want: "Invalid number"},
		{name: "unknown param attribute", content: `model "A" {
  component "X" {
    param "P" { colour = 1 }
  }
}`, want: "Unsupported argument"},
		{name: "duplicate component", content: `model "A" {
  component "X" {}
  component "X" {}
}`, want: "appears twice"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			path := writeFile(t, t.TempDir(), "model.hcl", tc.content)
			_, err := NewLoader().Load(context.Background(), path)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.want)
		})
	}

	t.Run("missing path", func(t *testing.T) {
		_, err := NewLoader().Load(context.Background(), filepath.Join(t.TempDir(), "nope.hcl"))
		assert.Error(t, err)
	})

	t.Run("empty directory", func(t *testing.T) {
		_, err := NewLoader().Load(context.Background(), t.TempDir())
		assert.ErrorIs(t, err, config.ErrInvalidDocument)
	})
}

func TestEncodeRoundTrip(t *testing.T) {
	doc := &config.Document{
		Name: "J0437-4715",
		Components: []*config.ComponentSpec{
			{Type: "Spindown", Params: []*config.ParamSpec{
				{Name: "F0", Value: config.Float(173.6879458), Unit: "Hz", Fit: true, Uncertainty: config.Float(1e-11)},
				{Name: "PEPOCH", Value: config.Float(55000)},
				{Name: "F1", Value: config.Float(-1.7e-15)},
			}},
			{Type: "JumpDelay", Params: []*config.ParamSpec{
				{Name: "JUMP1", Value: config.Float(2e-6), Select: &config.SelectorSpec{Key: "freq", Lo: 1000, Hi: 2000}},
			}},
			{Type: "Glitch", Params: []*config.ParamSpec{
				{Name: "GLEP_1"},
			}},
		},
	}

	out, err := Encoder{}.Encode(doc)
	require.NoError(t, err)
	assert.Contains(t, string(out), `model "J0437-4715" {`)
	assert.Contains(t, string(out), `component "Spindown" {`)

	path := writeFile(t, t.TempDir(), "model.hcl", string(out))
	got, err := NewLoader().Load(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, doc, got)
}
