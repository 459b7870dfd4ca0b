package units

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConvert(t *testing.T) {
	tests := []struct {
		name     string
		v        float64
		from, to Unit
		want     float64
	}{
		{"same unit", 3, Second, Second, 3},
		{"ms to s", 1500, Millisecond, Second, 1.5},
		{"day to s", 1, Day, Second, 86400},
		{"MHz to Hz", 1.4, MegaHertz, Hertz, 1.4e6},
		{"AU to ls", 1, AU, LightSecond, 499.00478383615643},
		{"deg to rad", 180, Degree, Radian, 3.14159265358979},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Convert(tt.v, tt.from, tt.to)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-9*abs(tt.want)+1e-12)
		})
	}
}

func TestConvert_Errors(t *testing.T) {
	_, err := Convert(1, Second, Hertz)
	assert.ErrorIs(t, err, ErrIncompatible)

	_, err = Convert(1, "furlong", Second)
	assert.ErrorIs(t, err, ErrUnknownUnit)

	_, err = Convert(1, MJD, Day)
	assert.ErrorIs(t, err, ErrIncompatible, "epochs are not durations")
}

func TestSpinDerivative(t *testing.T) {
	assert.Equal(t, Hertz, SpinDerivative(0))
	assert.Equal(t, Unit("Hz/s"), SpinDerivative(1))
	assert.Equal(t, Unit("Hz/s^3"), SpinDerivative(3))

	// Defined lazily and stable on repeat use.
	assert.Equal(t, SpinDerivative(3), SpinDerivative(3))
	assert.True(t, Convertible(SpinDerivative(3), SpinDerivative(3)))
	assert.False(t, Convertible(SpinDerivative(2), SpinDerivative(3)))
}

func TestDMDerivative(t *testing.T) {
	assert.Equal(t, DMUnit, DMDerivative(0))
	assert.Equal(t, Unit("pc/cm^3/yr"), DMDerivative(1))
	assert.Equal(t, Unit("pc/cm^3/yr^2"), DMDerivative(2))
	_, _, ok := Lookup(DMDerivative(2))
	assert.True(t, ok)
}

func TestDefine_Conflict(t *testing.T) {
	require.NoError(t, Define("test-unit", "T", 2))
	require.NoError(t, Define("test-unit", "T", 2))
	assert.Error(t, Define("test-unit", "L", 2))
	assert.Error(t, Define("test-zero", "T", 0))
}

func TestDefine_Converts(t *testing.T) {
	require.NoError(t, Define("test-fortnight", "T", 14*secondsPerDay))

	got, err := Convert(1, "test-fortnight", Day)
	require.NoError(t, err)
	assert.InDelta(t, 14, got, 1e-12)

	got, err = Convert(7, Day, "test-fortnight")
	require.NoError(t, err)
	assert.InDelta(t, 0.5, got, 1e-12)

	_, err = Convert(1, "test-fortnight", LightSecond)
	assert.ErrorIs(t, err, ErrIncompatible)
}

func TestMustDefine(t *testing.T) {
	assert.NotPanics(t, func() { MustDefine(Second, "T", 1) })
	assert.Panics(t, func() { MustDefine(Second, "L", 1) })
}

func TestQuantity(t *testing.T) {
	q := Q(2, Millisecond)
	v, err := q.In(Microsecond)
	require.NoError(t, err)
	assert.InDelta(t, 2000, v, 1e-9)
	assert.Equal(t, "2 ms", q.String())
	assert.Equal(t, "0.5", Q(0.5, Dimensionless).String())
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
