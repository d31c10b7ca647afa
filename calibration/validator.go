// Package calibration applies the reference-frame invariants to the loaded
// origin and pole records: the origin sits at 0.5 on every axis, each pole
// sits at its declared polarity on its defining axis and 0.5 elsewhere,
// polar pairs span exactly 1.0, and every pole lies 0.5 from the origin.
//
// Origin, pole, and pair values are hand-authored literals, so those checks
// use exact equality: any deviation is an authoring error, not float noise.
// The origin-to-pole distance is a derived computation (a square root) and
// is compared within a small absolute tolerance instead.
package calibration

import (
	"fmt"

	"github.com/c360studio/spectral/axis"
	"github.com/c360studio/spectral/frame"
	"github.com/c360studio/spectral/geometry"
)

// OriginPoleDistance is the expected full-space distance from the origin to
// any pole: a single-axis deviation of 0.5 and zero elsewhere.
const OriginPoleDistance = 0.5

// PairSpan is the expected distance between the two poles of an axis.
const PairSpan = 1.0

// DefaultDistanceTolerance absorbs float representation noise in the
// origin-to-pole distance check.
const DefaultDistanceTolerance = 0.001

// EntityStatus is the per-entity outcome line of a validation pass.
type EntityStatus struct {
	ID         string `json:"id"`
	Violations int    `json:"violations"`
}

// Result is the accumulated outcome of a calibration pass. Violations hold
// every failed check in a stable order; the counts record how many entities
// of each class were actually checked.
type Result struct {
	Violations []frame.Violation `json:"violations"`
	Entities   []EntityStatus    `json:"entities"`

	OriginChecked int `json:"origin_checked"`
	PolesChecked  int `json:"poles_checked"`
	PairsChecked  int `json:"pairs_checked"`
}

// Passed reports whether the pass found no violations.
func (r Result) Passed() bool {
	return len(r.Violations) == 0
}

// Validator checks origin and pole records against the frame invariants.
type Validator struct {
	reg               *axis.Registry
	kernel            *geometry.Kernel
	distanceTolerance float64
}

// NewValidator creates a Validator. A non-positive tolerance falls back to
// DefaultDistanceTolerance.
func NewValidator(reg *axis.Registry, tolerance float64) *Validator {
	if tolerance <= 0 {
		tolerance = DefaultDistanceTolerance
	}
	return &Validator{
		reg:               reg,
		kernel:            geometry.NewKernel(reg),
		distanceTolerance: tolerance,
	}
}

// Validate runs every check for every entity and never halts on the first
// failure. Entities whose coordinates failed construction are absent from
// the frame and are simply not counted.
func (v *Validator) Validate(f *frame.Frame) Result {
	var res Result

	if !f.Origin.Coordinate.IsZero() {
		n := len(res.Violations)
		res.Violations = append(res.Violations, v.checkOrigin(f.Origin)...)
		res.OriginChecked = 1
		res.Entities = append(res.Entities, EntityStatus{ID: f.Origin.ID, Violations: len(res.Violations) - n})
	}

	for _, pole := range f.Poles {
		n := len(res.Violations)
		res.Violations = append(res.Violations, v.checkPole(pole)...)
		if !f.Origin.Coordinate.IsZero() {
			res.Violations = append(res.Violations, v.checkOriginDistance(f.Origin, pole)...)
		}
		res.PolesChecked++
		res.Entities = append(res.Entities, EntityStatus{ID: pole.ID, Violations: len(res.Violations) - n})
	}

	for _, pair := range f.Pairs {
		n := len(res.Violations)
		res.Violations = append(res.Violations, v.checkPair(pair)...)
		res.PairsChecked++
		res.Entities = append(res.Entities, EntityStatus{ID: pairEntity(pair), Violations: len(res.Violations) - n})
	}

	return res
}

// checkOrigin verifies the origin sits at exactly 0.5 on every axis.
func (v *Validator) checkOrigin(origin frame.Point) []frame.Violation {
	var out []frame.Violation
	for _, id := range v.reg.IDs() {
		val, ok := origin.Coordinate.At(id)
		if !ok {
			continue
		}
		if val != frame.OriginValue {
			out = append(out, frame.Violation{
				Entity:   origin.ID,
				Check:    frame.CheckOriginMismatch,
				Axis:     id,
				Expected: frame.OriginValue,
				Actual:   val,
			})
		}
	}
	return out
}

// checkPole verifies the defining axis carries exactly the declared
// polarity value and every other axis carries exactly 0.5.
func (v *Validator) checkPole(pole frame.Point) []frame.Violation {
	var out []frame.Violation
	for _, id := range v.reg.IDs() {
		val, ok := pole.Coordinate.At(id)
		if !ok {
			continue
		}
		expected := frame.OriginValue
		if id == pole.Axis {
			expected = pole.Polarity.Value()
		}
		if val != expected {
			out = append(out, frame.Violation{
				Entity:   pole.ID,
				Check:    frame.CheckPoleMismatch,
				Axis:     id,
				Expected: expected,
				Actual:   val,
			})
		}
	}
	return out
}

// checkOriginDistance verifies the full-space distance from origin to pole
// within the configured tolerance.
func (v *Validator) checkOriginDistance(origin, pole frame.Point) []frame.Violation {
	d, err := v.kernel.EuclideanDistance(origin.Coordinate, pole.Coordinate)
	if err != nil {
		// Unreachable for constructed coordinates; surface it rather than drop it.
		return []frame.Violation{{
			Entity: pole.ID,
			Check:  frame.CheckOriginDistance,
			Detail: err.Error(),
		}}
	}
	if diff := d - OriginPoleDistance; diff > v.distanceTolerance || diff < -v.distanceTolerance {
		return []frame.Violation{{
			Entity:   pole.ID,
			Check:    frame.CheckOriginDistance,
			Expected: OriginPoleDistance,
			Actual:   d,
			Detail:   fmt.Sprintf("tolerance %g", v.distanceTolerance),
		}}
	}
	return nil
}

// checkPair verifies the two poles of an axis span exactly 1.0.
func (v *Validator) checkPair(pair frame.PolarPair) []frame.Violation {
	d, err := v.kernel.AxisDistance(pair.Low.Coordinate, pair.High.Coordinate, pair.Axis)
	if err != nil {
		return []frame.Violation{{
			Entity: pairEntity(pair),
			Check:  frame.CheckPolarPairDistance,
			Axis:   pair.Axis,
			Detail: err.Error(),
		}}
	}
	if d != PairSpan {
		return []frame.Violation{{
			Entity:   pairEntity(pair),
			Check:    frame.CheckPolarPairDistance,
			Axis:     pair.Axis,
			Expected: PairSpan,
			Actual:   d,
		}}
	}
	return nil
}

func pairEntity(pair frame.PolarPair) string {
	return "pair." + string(pair.Axis)
}
