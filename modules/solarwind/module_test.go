package solarwind

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/pulsartime/internal/component"
	"github.com/vk/pulsartime/internal/registry"
	"github.com/vk/pulsartime/internal/toa"
	"github.com/vk/pulsartime/modules/dispersion"
)

func TestRegistered(t *testing.T) {
	assert.True(t, registry.Default().Has(TypeName))
}

func TestGeometry(t *testing.T) {
	toas := &toa.TOAs{
		MJD:           []float64{1, 2, 3, 4},
		Elongation:    []float64{math.Pi / 2, 0, math.Pi / 2},
		SunDistanceAU: []float64{1, 1, 2},
	}
	got := Geometry(toas)

	assert.InDelta(t, parsecsPerAU*math.Pi/2, got[0], 1e-18)
	assert.InDelta(t, parsecsPerAU, got[1], 1e-18)
	assert.InDelta(t, parsecsPerAU*math.Pi/4, got[2], 1e-18)
	assert.Zero(t, got[3], "no elongation")
}

func TestDelay(t *testing.T) {
	s := New()
	s.MustParam("NE_SW").SetFloat(8)
	require.NoError(t, s.Setup())
	require.NoError(t, s.Validate())

	toas := &toa.TOAs{MJD: []float64{1}, FreqMHz: []float64{400}, Elongation: []float64{math.Pi / 2}}
	want := dispersion.DMConst * 8 * parsecsPerAU * math.Pi / 2 / (400 * 400)
	assert.InDelta(t, want, s.ComputeDelay(toas, nil)[0], 1e-15)

	f, ok := s.Derivative("NE_SW")
	require.True(t, ok)
	assert.InDelta(t, want/8, f(toas, nil)[0], 1e-15)

	low := &toa.TOAs{MJD: []float64{1, 1}, FreqMHz: []float64{0.5, 1}, Elongation: []float64{math.Pi / 2, math.Pi / 2}}
	d := f(low, nil)
	assert.Zero(t, d[0], "below 1 MHz")
	assert.InDelta(t, dispersion.DMConst*parsecsPerAU*math.Pi/2, d[1], 1e-9)
}

func TestUnsupportedModel(t *testing.T) {
	s := New()
	s.MustParam("SWM").SetFloat(1)
	require.NoError(t, s.Setup())
	assert.ErrorIs(t, s.Validate(), component.ErrInvalidParam)
}
