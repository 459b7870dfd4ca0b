package glitch

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/pulsartime/internal/component"
	"github.com/vk/pulsartime/internal/param"
	"github.com/vk/pulsartime/internal/registry"
	"github.com/vk/pulsartime/internal/toa"
)

func TestRegistered(t *testing.T) {
	assert.True(t, registry.Default().Has(TypeName))
}

func TestPhase(t *testing.T) {
	g := New()
	require.NoError(t, g.AddGlitch(1, 0))
	require.NoError(t, g.AddParam(param.MustPrefix(Phase, 1, param.WithValue(0.5)), false))
	require.NoError(t, g.AddParam(param.MustPrefix(F0, 1, param.WithValue(1e-3)), false))
	require.NoError(t, g.AddParam(param.MustPrefix(F1, 1, param.WithValue(-2e-6)), true))
	require.NoError(t, g.Validate())

	toas := &toa.TOAs{MJD: []float64{-1, 10.0 / 86400}}
	got := g.ComputePhase(toas, []float64{0, 0})

	assert.Zero(t, got[0], "before the glitch")
	assert.InDelta(t, 0.5+1e-2-1e-4, got[1], 1e-12)

	assert.Equal(t, []string{"GLF0_1", "GLF1_1", "GLPH_1"}, g.Derivatives())
	f, ok := g.Derivative("GLF1_1")
	require.True(t, ok)
	assert.InDeltaSlice(t, []float64{0, 50}, f(toas, []float64{0, 0}), 1e-9)
}

func TestRemoveStep(t *testing.T) {
	g := New()
	require.NoError(t, g.AddGlitch(1, 0))
	require.NoError(t, g.AddParam(param.MustPrefix(Phase, 1, param.WithValue(0.5)), false))
	require.NoError(t, g.AddParam(param.MustPrefix(F0, 1, param.WithValue(1e-3)), true))
	toas := &toa.TOAs{MJD: []float64{10.0 / 86400}}

	require.NoError(t, g.RemoveParam("GLPH_1"))
	require.NoError(t, g.Validate())

	assert.InDelta(t, 1e-2, g.ComputePhase(toas, []float64{0})[0], 1e-12)
	assert.Equal(t, []string{"GLF0_1"}, g.Derivatives())
}

func TestOrphanedStep(t *testing.T) {
	g := New()
	require.NoError(t, g.AddParam(param.MustPrefix(F0, 2, param.WithValue(1e-3)), true))
	assert.ErrorIs(t, g.Validate(), component.ErrIncompleteFamily)

	require.NoError(t, g.AddGlitch(2, 55000))
	assert.NoError(t, g.Validate())
}

func TestEpochRequired(t *testing.T) {
	g := New()
	require.NoError(t, g.AddParam(param.MustPrefix(Epoch, 1), true))
	assert.ErrorIs(t, g.Validate(), component.ErrMissingParam)
}
