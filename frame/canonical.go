package frame

import (
	"strings"

	"github.com/c360studio/spectral/axis"
)

// OriginValue is the origin's value on every axis.
const OriginValue = 0.5

// OriginID is the identifier of the canonical origin record.
const OriginID = "origin"

// PoleID returns the canonical identifier for a pole name.
func PoleID(pole string) string {
	return "pole." + pole
}

// Canonical derives the ideal reference frame from the registry: the origin
// at 0.5 everywhere and, per axis, a low pole at 0.0 and a high pole at 1.0
// with all other axes at 0.5. Reference data is expected to match this frame
// exactly (up to the documented distance tolerance).
func Canonical(reg *axis.Registry) *Frame {
	base := make(map[string]float64, reg.Len())
	for _, id := range reg.IDs() {
		base[string(id)] = OriginValue
	}

	origin := Point{
		ID:         OriginID,
		Name:       "Origin",
		Kind:       KindOrigin,
		Coordinate: mustCoordinate(reg, base),
	}

	f := &Frame{Origin: origin}
	for _, a := range reg.Axes() {
		low := Point{
			ID:         PoleID(a.Low),
			Name:       title(a.Low),
			Kind:       KindPole,
			Axis:       a.ID,
			Polarity:   PolarityLow,
			Coordinate: origin.Coordinate.With(a.ID, PolarityLow.Value()),
		}
		high := Point{
			ID:         PoleID(a.High),
			Name:       title(a.High),
			Kind:       KindPole,
			Axis:       a.ID,
			Polarity:   PolarityHigh,
			Coordinate: origin.Coordinate.With(a.ID, PolarityHigh.Value()),
		}
		f.Poles = append(f.Poles, low, high)
		f.Pairs = append(f.Pairs, PolarPair{Axis: a.ID, Low: low, High: high})
	}
	return f
}

func mustCoordinate(reg *axis.Registry, values map[string]float64) Coordinate {
	c, err := NewCoordinate(reg, values)
	if err != nil {
		panic(err)
	}
	return c
}

func title(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
