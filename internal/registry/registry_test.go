package registry

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/pulsartime/internal/component"
	"github.com/vk/pulsartime/internal/param"
	"github.com/vk/pulsartime/internal/units"
)

type testModule struct{ names []string }

func (m *testModule) Register(r *Registry) {
	for _, name := range m.names {
		r.MustRegister(name, func() component.Component {
			b := component.NewBase(name, component.Delay)
			_ = b.AddParam(param.New("X", param.KindFloat, units.Second, param.WithValue(1)), true)
			return b
		})
	}
}

func TestRegister(t *testing.T) {
	r := New()
	require.NoError(t, r.Register("A", func() component.Component { return component.NewBase("A", component.Phase) }))

	err := r.Register("A", func() component.Component { return nil })
	assert.ErrorIs(t, err, ErrDuplicateType)
	assert.True(t, r.Has("A"))
	assert.False(t, r.Has("B"))

	assert.Panics(t, func() {
		r.MustRegister("A", func() component.Component { return nil })
	})
}

func TestCreate(t *testing.T) {
	r := New()
	r.Install(&testModule{names: []string{"Toy"}})

	t.Run("unknown type", func(t *testing.T) {
		_, err := r.Create("Nope")
		assert.ErrorIs(t, err, ErrUnknownType)
	})

	t.Run("instances are independent", func(t *testing.T) {
		a, err := r.Create("Toy")
		require.NoError(t, err)
		b, err := r.Create("Toy")
		require.NoError(t, err)

		pa, ok := a.Param("X")
		require.True(t, ok)
		pa.SetFloat(42)
		require.NoError(t, a.AddParam(param.New("Y", param.KindFloat, units.Second), true))

		pb, ok := b.Param("X")
		require.True(t, ok)
		assert.Equal(t, 1.0, pb.Float())
		_, ok = b.Param("Y")
		assert.False(t, ok)
	})
}

func TestTypes(t *testing.T) {
	r := New()
	r.Install(&testModule{names: []string{"Zeta", "Alpha", "Mid"}})

	first := slices.Collect(r.Types())
	assert.Equal(t, []string{"Zeta", "Alpha", "Mid"}, first, "registration order")

	second := slices.Collect(r.Types())
	assert.Equal(t, first, second, "sequence is restartable")

	var seen []string
	for name := range r.Types() {
		seen = append(seen, name)
		break
	}
	assert.Equal(t, []string{"Zeta"}, seen)

	r.MustRegister("Late", func() component.Component { return component.NewBase("Late", component.Delay) })
	assert.Len(t, slices.Collect(r.Types()), 4)
}

func TestDefault(t *testing.T) {
	assert.Same(t, Default(), Default())
}
