package axis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultRegistry(t *testing.T) {
	reg := Default()

	require.Equal(t, Size, reg.Len())

	ids := reg.IDs()
	require.Len(t, ids, Size)

	// Display order is fixed: order-chaos first, self-other last.
	assert.Equal(t, OrderChaos, ids[0])
	assert.Equal(t, SelfOther, ids[Size-1])

	a, ok := reg.Lookup(OrderChaos)
	require.True(t, ok)
	assert.Equal(t, "order", a.Low)
	assert.Equal(t, "chaos", a.High)

	assert.False(t, reg.Contains("order-entropy"))
}

// withLast returns the canonical table with its final axis replaced.
func withLast(a Axis) []Axis {
	axes := Default().Axes()
	axes[Size-1] = a
	return axes
}

func TestNewRegistry_Rejects(t *testing.T) {
	tests := []struct {
		name string
		axes []Axis
	}{
		{
			name: "wrong count",
			axes: Default().Axes()[:Size-1],
		},
		{
			name: "duplicate identifier",
			axes: withLast(Axis{ID: OrderChaos, Low: "a", High: "b"}),
		},
		{
			name: "empty identifier",
			axes: withLast(Axis{ID: "", Low: "a", High: "b"}),
		},
		{
			name: "unnamed pole",
			axes: withLast(Axis{ID: "x-y", Low: "", High: "y"}),
		},
		{
			name: "identical pole names",
			axes: withLast(Axis{ID: "x-y", Low: "x", High: "x"}),
		},
		{
			name: "pole name shared across axes",
			axes: withLast(Axis{ID: "x-y", Low: "order", High: "y"}),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewRegistry(tt.axes)
			require.Error(t, err)

			var cfgErr *ConfigurationError
			require.ErrorAs(t, err, &cfgErr)
		})
	}
}

func TestRegistryIsolation(t *testing.T) {
	reg := Default()

	// Mutating the returned slices must not affect the registry.
	reg.Axes()[0].Low = "mutated"
	reg.IDs()[0] = "mutated"

	a, ok := reg.Lookup(OrderChaos)
	require.True(t, ok)
	assert.Equal(t, "order", a.Low)
	assert.Equal(t, OrderChaos, reg.IDs()[0])
}
