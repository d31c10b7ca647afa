package geometry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360studio/spectral/axis"
	"github.com/c360studio/spectral/frame"
)

func TestAxisDistance(t *testing.T) {
	reg := axis.Default()
	k := NewKernel(reg)
	f := frame.Canonical(reg)

	pair := f.Pairs[0]
	d, err := k.AxisDistance(pair.Low.Coordinate, pair.High.Coordinate, pair.Axis)
	require.NoError(t, err)
	assert.Equal(t, 1.0, d)

	// Distance is symmetric.
	rd, err := k.AxisDistance(pair.High.Coordinate, pair.Low.Coordinate, pair.Axis)
	require.NoError(t, err)
	assert.Equal(t, d, rd)
}

func TestEuclideanDistance_OriginToPole(t *testing.T) {
	reg := axis.Default()
	k := NewKernel(reg)
	f := frame.Canonical(reg)

	// A pole deviates from the origin on exactly one axis by 0.5, so the
	// full-space distance is exactly 0.5 for every pole.
	for _, pole := range f.Poles {
		d, err := k.EuclideanDistance(f.Origin.Coordinate, pole.Coordinate)
		require.NoError(t, err)
		assert.InDelta(t, 0.5, d, 1e-12, "pole %s", pole.ID)
	}
}

func TestEuclideanDistance_Zero(t *testing.T) {
	reg := axis.Default()
	k := NewKernel(reg)
	f := frame.Canonical(reg)

	d, err := k.EuclideanDistance(f.Origin.Coordinate, f.Origin.Coordinate)
	require.NoError(t, err)
	assert.Equal(t, 0.0, d)
}

func TestDistance_MissingAxis(t *testing.T) {
	reg := axis.Default()
	k := NewKernel(reg)
	f := frame.Canonical(reg)

	var empty frame.Coordinate

	_, err := k.AxisDistance(f.Origin.Coordinate, empty, axis.OrderChaos)
	var missing *frame.MissingAxisError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, string(axis.OrderChaos), missing.Axis)

	_, err = k.EuclideanDistance(empty, f.Origin.Coordinate)
	require.ErrorAs(t, err, &missing)
}
