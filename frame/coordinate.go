package frame

import (
	"github.com/c360studio/spectral/axis"
)

// Coordinate locates a point in the space: one value in [0, 1] per
// registered axis. The zero Coordinate is invalid; use NewCoordinate.
type Coordinate struct {
	values map[axis.ID]float64
}

// NewCoordinate validates a raw value mapping against the registry and
// returns a Coordinate covering exactly the registered axis set.
//
// It returns *MissingAxisError for a registered axis absent from values,
// *UnknownAxisError for a key outside the registry, and *OutOfRangeError
// for a value outside [0, 1]. The first failure encountered is returned;
// registered axes are checked in registry order so the error is stable.
func NewCoordinate(reg *axis.Registry, values map[string]float64) (Coordinate, error) {
	owned := make(map[axis.ID]float64, reg.Len())
	for _, id := range reg.IDs() {
		v, ok := values[string(id)]
		if !ok {
			return Coordinate{}, &MissingAxisError{Axis: string(id)}
		}
		if v < 0 || v > 1 {
			return Coordinate{}, &OutOfRangeError{Axis: string(id), Value: v}
		}
		owned[id] = v
	}
	for key := range values {
		if !reg.Contains(axis.ID(key)) {
			return Coordinate{}, &UnknownAxisError{Axis: key}
		}
	}
	return Coordinate{values: owned}, nil
}

// At returns the value on the given axis.
func (c Coordinate) At(id axis.ID) (float64, bool) {
	v, ok := c.values[id]
	return v, ok
}

// With returns a copy of the coordinate with one axis replaced.
// It performs no range validation; it exists for building perturbed
// coordinates from an already-valid one.
func (c Coordinate) With(id axis.ID, v float64) Coordinate {
	out := make(map[axis.ID]float64, len(c.values))
	for k, val := range c.values {
		out[k] = val
	}
	out[id] = v
	return Coordinate{values: out}
}

// Equal reports exact value equality over the full axis set.
func (c Coordinate) Equal(other Coordinate) bool {
	if len(c.values) != len(other.values) {
		return false
	}
	for k, v := range c.values {
		ov, ok := other.values[k]
		if !ok || ov != v {
			return false
		}
	}
	return true
}

// Values returns the mapping keyed by axis identifier string, suitable for
// serialization. The returned map is a copy.
func (c Coordinate) Values() map[string]float64 {
	out := make(map[string]float64, len(c.values))
	for k, v := range c.values {
		out[string(k)] = v
	}
	return out
}

// IsZero reports whether the coordinate was never constructed.
func (c Coordinate) IsZero() bool {
	return c.values == nil
}
