package frame

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360studio/spectral/axis"
)

func TestCanonical(t *testing.T) {
	reg := axis.Default()
	f := Canonical(reg)

	require.Equal(t, KindOrigin, f.Origin.Kind)
	for _, id := range reg.IDs() {
		v, ok := f.Origin.Coordinate.At(id)
		require.True(t, ok)
		assert.Equal(t, OriginValue, v)
	}

	require.Len(t, f.Poles, reg.Len()*2)
	require.Len(t, f.Pairs, reg.Len())

	for _, p := range f.Poles {
		v, ok := p.Coordinate.At(p.Axis)
		require.True(t, ok)
		assert.Equal(t, p.Polarity.Value(), v)

		// Every non-defining axis sits at the origin value.
		for _, id := range reg.IDs() {
			if id == p.Axis {
				continue
			}
			v, ok := p.Coordinate.At(id)
			require.True(t, ok)
			assert.Equal(t, OriginValue, v)
		}
	}

	for _, pair := range f.Pairs {
		low, _ := pair.Low.Coordinate.At(pair.Axis)
		high, _ := pair.High.Coordinate.At(pair.Axis)
		assert.Equal(t, 1.0, high-low)
	}
}
