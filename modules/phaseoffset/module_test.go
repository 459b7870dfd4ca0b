package phaseoffset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/pulsartime/internal/registry"
	"github.com/vk/pulsartime/internal/toa"
)

func TestPhaseOffset(t *testing.T) {
	assert.True(t, registry.Default().Has(TypeName))

	c := New()
	c.MustParam("PHOFF").SetFloat(0.125)
	require.NoError(t, c.Setup())
	require.NoError(t, c.Validate())

	toas := &toa.TOAs{MJD: []float64{1, 2}}
	assert.Equal(t, []float64{-0.125, -0.125}, c.ComputePhase(toas, nil))

	f, ok := c.Derivative("PHOFF")
	require.True(t, ok)
	assert.Equal(t, []float64{-1, -1}, f(toas, nil))
}
