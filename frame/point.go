package frame

import "github.com/c360studio/spectral/axis"

// Kind classifies a point record.
type Kind string

// Point kinds. A frame has exactly one origin and sixteen poles; every
// other point is an archetype.
const (
	KindOrigin    Kind = "origin"
	KindPole      Kind = "pole"
	KindArchetype Kind = "archetype"
)

// Polarity marks which end of its defining axis a pole occupies.
type Polarity string

// Pole polarities. Low corresponds to 0.0, High to 1.0.
const (
	PolarityLow  Polarity = "low"
	PolarityHigh Polarity = "high"
)

// Value returns the coordinate value the polarity denotes.
func (p Polarity) Value() float64 {
	if p == PolarityHigh {
		return 1.0
	}
	return 0.0
}

// Point is one positioned entity: the origin, a pole, or an archetype.
type Point struct {
	ID         string
	Name       string
	Kind       Kind
	Coordinate Coordinate

	// Axis and Polarity are set for poles only.
	Axis     axis.ID
	Polarity Polarity
}

// PolarPair is the two poles of one axis.
type PolarPair struct {
	Axis axis.ID
	Low  Point
	High Point
}

// Category classifies a geodesic path.
type Category string

// Geodesic categories.
const (
	CategoryAxis     Category = "axis"
	CategoryDiagonal Category = "diagonal"
	CategorySpiral   Category = "spiral"
	CategoryShadow   Category = "shadow"
)

// Geodesic is a declared transformation path: an ordered sequence of two or
// more points, a category, and a reversibility flag.
type Geodesic struct {
	ID         string
	Name       string
	Category   Category
	Reversible bool
	Points     []Point
}

// Frame is the assembled reference frame plus declared content.
type Frame struct {
	Origin     Point
	Poles      []Point
	Pairs      []PolarPair
	Archetypes []Point
	Geodesics  []Geodesic
}
