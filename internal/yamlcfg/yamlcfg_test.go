package yamlcfg

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/pulsartime/internal/config"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "model.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	path := writeFile(t, `
name: J1713+0747
components:
  - type: Spindown
    params:
      - name: F0
        value: 218.8118
        unit: Hz
        fit: true
        uncertainty: 1.0e-12
      - name: PEPOCH
        value: 55000
  - type: JumpDelay
    params:
      - name: JUMP1
        value: 1.0e-5
        select: {key: mjd, lo: 55100, hi: 55200}
  - type: DispersionDMX
`)

	doc, err := NewLoader().Load(context.Background(), path)
	require.NoError(t, err)

	want := &config.Document{
		Name: "J1713+0747",
		Components: []*config.ComponentSpec{
			{Type: "Spindown", Params: []*config.ParamSpec{
				{Name: "F0", Value: config.Float(218.8118), Unit: "Hz", Fit: true, Uncertainty: config.Float(1e-12)},
				{Name: "PEPOCH", Value: config.Float(55000)},
			}},
			{Type: "JumpDelay", Params: []*config.ParamSpec{
				{Name: "JUMP1", Value: config.Float(1e-5), Select: &config.SelectorSpec{Key: "mjd", Lo: 55100, Hi: 55200}},
			}},
			{Type: "DispersionDMX"},
		},
	}
	if diff := cmp.Diff(want, doc); diff != "" {
		t.Errorf("document mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadErrors(t *testing.T) {
	testCases := []struct {
		name    string
		content string
		wantIs  error
	}{
		{name: "unknown key", content: "name: A\ncolour: 1\n"},
		{name: "not a number", content: "components:\n  - type: X\n    params:\n      - name: P\n        value: abc\n"},
		{name: "empty", content: "", wantIs: config.ErrInvalidDocument},
		{name: "duplicate component", content: "components:\n  - type: X\n  - type: X\n", wantIs: config.ErrInvalidDocument},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewLoader().Load(context.Background(), writeFile(t, tc.content))
			require.Error(t, err)
			if tc.wantIs != nil {
				assert.ErrorIs(t, err, tc.wantIs)
			}
		})
	}

	t.Run("missing file", func(t *testing.T) {
		_, err := NewLoader().Load(context.Background(), filepath.Join(t.TempDir(), "nope.yaml"))
		assert.Error(t, err)
	})
}

func TestEncodeRoundTrip(t *testing.T) {
	doc := &config.Document{
		Name: "B1855+09",
		Components: []*config.ComponentSpec{
			{Type: "DispersionDMX", Params: []*config.ParamSpec{
				{Name: "DMX_0001", Value: config.Float(1e-3), Fit: true},
				{Name: "DMXR1_0001", Value: config.Float(55000)},
				{Name: "DMXR2_0001", Value: config.Float(55010)},
			}},
			{Type: "JumpDelay", Params: []*config.ParamSpec{
				{Name: "JUMP1", Value: config.Float(-3e-6), Unit: "s", Select: &config.SelectorSpec{Key: "freq", Lo: 400, Hi: 500}},
			}},
		},
	}

	out, err := Encoder{}.Encode(doc)
	require.NoError(t, err)
	assert.Contains(t, string(out), "name: B1855+09")

	got, err := NewLoader().Load(context.Background(), writeFile(t, string(out)))
	require.NoError(t, err)
	if diff := cmp.Diff(doc, got); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}
