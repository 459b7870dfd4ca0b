package component

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/pulsartime/internal/param"
	"github.com/vk/pulsartime/internal/toa"
	"github.com/vk/pulsartime/internal/units"
)

var (
	coeffTemplate = param.Template{Prefix: "C", Policy: param.ContiguousFromOne, Unit: units.Second}
	binTemplate   = param.Template{Prefix: "BIN_", Width: 2, Unit: units.Second}
	binLoTemplate = param.Template{Prefix: "BINLO_", Width: 2, Kind: param.KindMJD, Unit: units.MJD}
)

// toy is a delay component with a constant term C0 plus a contiguous family
// C1..Cn, each adding its value as a constant delay.
type toy struct {
	*Base
	setups int
}

func newToy() *toy {
	c := &toy{Base: NewBase("Toy", Delay)}
	c.MustAddParam(param.New("C0", param.KindFloat, units.Second))
	c.Require("C0")
	c.DeclareFamily(coeffTemplate)
	c.DeclareFamily(binTemplate)
	c.DeclareFamily(binLoTemplate)
	c.DeclarePairing(param.Pairing{Primary: binTemplate, Required: []param.Template{binLoTemplate}})
	c.AddDelayFunc(func(t *toa.TOAs, acc []float64) []float64 {
		out := make([]float64, t.Len())
		sum := c.MustParam("C0").Float()
		for _, idx := range c.FamilyIndices("C") {
			sum += c.MustParam(coeffTemplate.Name(idx)).Float()
		}
		for i := range out {
			out[i] = sum
		}
		return out
	})
	c.OnSetup(func() error {
		c.setups++
		constant := func(t *toa.TOAs, _ []float64) []float64 {
			out := make([]float64, t.Len())
			for i := range out {
				out[i] = 1
			}
			return out
		}
		if err := c.RegisterDeriv("C0", constant); err != nil {
			return err
		}
		for _, idx := range c.FamilyIndices("C") {
			if err := c.RegisterDeriv(coeffTemplate.Name(idx), constant); err != nil {
				return err
			}
		}
		return nil
	})
	return c
}

func TestCategory(t *testing.T) {
	assert.Equal(t, "delay", Delay.String())
	assert.Equal(t, "delay|phase", (Delay | Phase).String())
	assert.Equal(t, "none", Category(0).String())
	assert.True(t, (Delay | Phase).Has(Phase))
	assert.False(t, Delay.Has(Phase))
	assert.False(t, Delay.Has(0))
}

func TestAddParam(t *testing.T) {
	t.Run("duplicate name", func(t *testing.T) {
		c := newToy()
		err := c.AddParam(param.New("C0", param.KindFloat, units.Second), true)
		assert.ErrorIs(t, err, ErrDuplicateParam)
		assert.Len(t, c.Params(), 1)
	})

	t.Run("owned elsewhere", func(t *testing.T) {
		a, b := newToy(), newToy()
		p := param.MustPrefix(coeffTemplate, 1)
		require.NoError(t, a.AddParam(p, true))
		assert.ErrorIs(t, b.AddParam(p, true), ErrParamOwned)
	})

	t.Run("setup wires derivative", func(t *testing.T) {
		c := newToy()
		require.NoError(t, c.AddParam(param.MustPrefix(coeffTemplate, 1), true))
		assert.Equal(t, []string{"C0", "C1"}, c.Derivatives())
		assert.Equal(t, []int{1}, c.FamilyIndices("C"))
	})

	t.Run("deferred setup", func(t *testing.T) {
		c := newToy()
		require.NoError(t, c.AddParam(param.MustPrefix(coeffTemplate, 1), false))
		assert.Empty(t, c.Derivatives(), "nothing derived before Setup")
		require.NoError(t, c.Setup())
		assert.Equal(t, []string{"C0", "C1"}, c.Derivatives())
	})

	t.Run("failed setup rolls back", func(t *testing.T) {
		c := newToy()
		c.OnSetup(func() error {
			if _, ok := c.Param("C1"); ok {
				return errors.New("C1 rejected")
			}
			return nil
		})
		err := c.AddParam(param.MustPrefix(coeffTemplate, 1), true)
		require.ErrorContains(t, err, "C1 rejected")
		_, ok := c.Param("C1")
		assert.False(t, ok)
	})
}

func TestRemoveParam(t *testing.T) {
	c := newToy()
	p := param.MustPrefix(coeffTemplate, 1)
	require.NoError(t, c.AddParam(p, true))

	require.NoError(t, c.RemoveParam("C1"))
	assert.Equal(t, []string{"C0"}, c.Derivatives(), "derivative dropped with its parameter")
	assert.Empty(t, c.FamilyIndices("C"))
	assert.Nil(t, p.Owner())

	assert.ErrorIs(t, c.RemoveParam("C1"), ErrParamNotFound)

	t.Run("setup dependency", func(t *testing.T) {
		err := c.RemoveParam("C0")
		require.ErrorIs(t, err, ErrParamNotFound)
		_, ok := c.Param("C0")
		assert.True(t, ok, "removal undone")
		assert.Equal(t, []string{"C0"}, c.Derivatives())
		assert.Equal(t, c.Base, c.MustParam("C0").Owner())
	})
}

func TestMustAddParam(t *testing.T) {
	c := newToy()
	assert.Panics(t, func() {
		c.MustAddParam(param.New("C0", param.KindFloat, units.Second))
	})
}

func TestSetup_Idempotent(t *testing.T) {
	c := newToy()
	require.NoError(t, c.AddParam(param.MustPrefix(coeffTemplate, 1), false))
	require.NoError(t, c.AddParam(param.MustPrefix(coeffTemplate, 2), false))

	require.NoError(t, c.Setup())
	keys, fam := c.Derivatives(), c.FamilyIndices("C")
	require.NoError(t, c.Setup())

	assert.Equal(t, keys, c.Derivatives())
	assert.Equal(t, fam, c.FamilyIndices("C"))
	assert.Equal(t, 2, c.setups)
}

func TestValidate(t *testing.T) {
	t.Run("required value missing", func(t *testing.T) {
		c := newToy()
		assert.ErrorIs(t, c.Validate(), ErrMissingParam)
	})

	t.Run("free parameter without value", func(t *testing.T) {
		c := newToy()
		c.MustParam("C0").SetFloat(1)
		require.NoError(t, c.AddParam(param.MustPrefix(coeffTemplate, 1, param.Free()), true))
		err := c.Validate()
		assert.ErrorIs(t, err, ErrMissingParam)
		assert.ErrorContains(t, err, "C1 is free")
	})

	t.Run("contiguity gap", func(t *testing.T) {
		c := newToy()
		c.MustParam("C0").SetFloat(1)
		require.NoError(t, c.AddParam(param.MustPrefix(coeffTemplate, 2, param.WithValue(1)), true))
		assert.ErrorIs(t, c.Validate(), ErrIncompleteFamily)
	})

	t.Run("pairing", func(t *testing.T) {
		c := newToy()
		c.MustParam("C0").SetFloat(1)
		require.NoError(t, c.AddParam(param.MustPrefix(binTemplate, 4), false))
		assert.ErrorIs(t, c.Validate(), ErrIncompleteFamily)
		require.NoError(t, c.AddParam(param.MustPrefix(binLoTemplate, 4), false))
		require.NoError(t, c.Setup())
		assert.NoError(t, c.Validate())
	})

	t.Run("component hook", func(t *testing.T) {
		c := newToy()
		c.MustParam("C0").SetFloat(-1)
		c.OnValidate(func() error {
			if c.MustParam("C0").Float() < 0 {
				return ErrInvalidParam
			}
			return nil
		})
		assert.ErrorIs(t, c.Validate(), ErrInvalidParam)
	})
}

func TestCompute(t *testing.T) {
	c := newToy()
	c.MustParam("C0").SetFloat(1)
	require.NoError(t, c.AddParam(param.MustPrefix(coeffTemplate, 1, param.WithValue(2)), true))
	require.NoError(t, c.Validate())

	toas := &toa.TOAs{MJD: []float64{1, 2, 3}}
	assert.Equal(t, []float64{3, 3, 3}, c.ComputeDelay(toas, make([]float64, 3)))
	assert.Equal(t, []float64{0, 0, 0}, c.ComputePhase(toas, make([]float64, 3)), "no phase contributions")
}

func TestInvalidateHook(t *testing.T) {
	c := newToy()
	calls := 0
	c.OnInvalidate(func() { calls++ })
	c.MustParam("C0").SetFloat(5)
	assert.Equal(t, 1, calls, "value change reaches the owning component")
}
