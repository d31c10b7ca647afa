// Package geometry provides the distance primitives of the coordinate
// space. All functions are pure; both validators are built on them.
package geometry

import (
	"math"

	"github.com/c360studio/spectral/axis"
	"github.com/c360studio/spectral/frame"
)

// Kernel computes distances over a fixed axis registry.
type Kernel struct {
	reg *axis.Registry
}

// NewKernel creates a Kernel for the given registry.
func NewKernel(reg *axis.Registry) *Kernel {
	return &Kernel{reg: reg}
}

// AxisDistance returns |a − b| on a single axis.
// It returns *frame.MissingAxisError when either coordinate lacks the axis.
func (k *Kernel) AxisDistance(a, b frame.Coordinate, id axis.ID) (float64, error) {
	av, ok := a.At(id)
	if !ok {
		return 0, &frame.MissingAxisError{Axis: string(id)}
	}
	bv, ok := b.At(id)
	if !ok {
		return 0, &frame.MissingAxisError{Axis: string(id)}
	}
	return math.Abs(av - bv), nil
}

// EuclideanDistance returns the full-space distance √Σ(aᵢ−bᵢ)² over the
// registry's axis set. Both coordinates must be fully populated.
func (k *Kernel) EuclideanDistance(a, b frame.Coordinate) (float64, error) {
	var sum float64
	for _, id := range k.reg.IDs() {
		av, ok := a.At(id)
		if !ok {
			return 0, &frame.MissingAxisError{Axis: string(id)}
		}
		bv, ok := b.At(id)
		if !ok {
			return 0, &frame.MissingAxisError{Axis: string(id)}
		}
		d := av - bv
		sum += d * d
	}
	return math.Sqrt(sum), nil
}
