package frame

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360studio/spectral/axis"
)

func fullValues(v float64) map[string]float64 {
	out := make(map[string]float64)
	for _, id := range axis.Default().IDs() {
		out[string(id)] = v
	}
	return out
}

func TestNewCoordinate(t *testing.T) {
	reg := axis.Default()

	c, err := NewCoordinate(reg, fullValues(0.5))
	require.NoError(t, err)

	v, ok := c.At(axis.OrderChaos)
	require.True(t, ok)
	assert.Equal(t, 0.5, v)
	assert.False(t, c.IsZero())
}

func TestNewCoordinate_MissingAxis(t *testing.T) {
	reg := axis.Default()

	values := fullValues(0.5)
	delete(values, string(axis.MatterSpirit))

	_, err := NewCoordinate(reg, values)
	require.Error(t, err)

	var missing *MissingAxisError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, string(axis.MatterSpirit), missing.Axis)
}

func TestNewCoordinate_UnknownAxis(t *testing.T) {
	reg := axis.Default()

	values := fullValues(0.5)
	values["order-entropy"] = 0.5

	_, err := NewCoordinate(reg, values)
	require.Error(t, err)

	var unknown *UnknownAxisError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, "order-entropy", unknown.Axis)
}

func TestNewCoordinate_OutOfRange(t *testing.T) {
	reg := axis.Default()

	for _, bad := range []float64{-0.01, 1.01, 2} {
		values := fullValues(0.5)
		values[string(axis.SelfOther)] = bad

		_, err := NewCoordinate(reg, values)
		require.Error(t, err)

		var oor *OutOfRangeError
		require.ErrorAs(t, err, &oor)
		assert.Equal(t, string(axis.SelfOther), oor.Axis)
		assert.Equal(t, bad, oor.Value)
	}
}

func TestCoordinateWithAndEqual(t *testing.T) {
	reg := axis.Default()

	a, err := NewCoordinate(reg, fullValues(0.5))
	require.NoError(t, err)

	b := a.With(axis.OrderChaos, 0.0)
	assert.False(t, a.Equal(b))
	assert.True(t, a.Equal(a))

	// With must not mutate the receiver.
	v, _ := a.At(axis.OrderChaos)
	assert.Equal(t, 0.5, v)

	back := b.With(axis.OrderChaos, 0.5)
	assert.True(t, a.Equal(back))
}

func TestCoordinateRoundTrip(t *testing.T) {
	reg := axis.Default()

	values := fullValues(0.5)
	values[string(axis.LightShadow)] = 0.875
	values[string(axis.StasisFlux)] = 0.125

	a, err := NewCoordinate(reg, values)
	require.NoError(t, err)

	// Serialize and re-parse: numeric values survive exactly.
	b, err := NewCoordinate(reg, a.Values())
	require.NoError(t, err)
	assert.True(t, a.Equal(b))
}
