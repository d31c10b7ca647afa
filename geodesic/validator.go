// Package geodesic applies the path-level invariants to declared
// transformation routes: category rules (axis, diagonal, spiral, shadow)
// plus the cross-cutting continuity, conservation, activation-energy, and
// reversibility checks.
package geodesic

import (
	"fmt"
	"math"
	"sync"

	"github.com/c360studio/spectral/axis"
	"github.com/c360studio/spectral/frame"
	"github.com/c360studio/spectral/geometry"
)

// Config bounds legal movement along a path.
type Config struct {
	// MaxStep is the largest Euclidean distance a single step may span.
	MaxStep float64

	// ConservationCeiling caps the path energy: the sum of absolute
	// per-axis deltas across the whole path.
	ConservationCeiling float64

	// DriftTolerance is how far a nominally fixed axis may wander.
	DriftTolerance float64

	// SpiralThreshold is the axis value a spiral excursion must cross
	// before returning near an earlier value.
	SpiralThreshold float64

	// ShadowBound is how far from the origin line a reversible shadow
	// path may end.
	ShadowBound float64

	// Activation maps an axis to the minimum first-step magnitude required
	// to begin a transition on it. Axes without an entry have no minimum.
	Activation map[axis.ID]float64
}

// DefaultConfig returns the standard path bounds.
func DefaultConfig() Config {
	return Config{
		MaxStep:             0.25,
		ConservationCeiling: 4.0,
		DriftTolerance:      0.01,
		SpiralThreshold:     0.5,
		ShadowBound:         0.15,
	}
}

// Result is the accumulated outcome of validating one or more geodesics.
type Result struct {
	Violations []frame.Violation `json:"violations"`
	Entities   []EntityStatus    `json:"entities"`
	Checked    int               `json:"checked"`
}

// EntityStatus is the per-geodesic outcome line.
type EntityStatus struct {
	ID         string `json:"id"`
	Violations int    `json:"violations"`
}

// Passed reports whether the pass found no violations.
func (r Result) Passed() bool {
	return len(r.Violations) == 0
}

// Validator checks geodesic paths against the configured bounds.
type Validator struct {
	reg    *axis.Registry
	kernel *geometry.Kernel
	cfg    Config
}

// NewValidator creates a Validator with the given bounds.
func NewValidator(reg *axis.Registry, cfg Config) *Validator {
	def := DefaultConfig()
	if cfg.MaxStep <= 0 {
		cfg.MaxStep = def.MaxStep
	}
	if cfg.ConservationCeiling <= 0 {
		cfg.ConservationCeiling = def.ConservationCeiling
	}
	if cfg.DriftTolerance <= 0 {
		cfg.DriftTolerance = def.DriftTolerance
	}
	if cfg.SpiralThreshold <= 0 {
		cfg.SpiralThreshold = def.SpiralThreshold
	}
	if cfg.ShadowBound <= 0 {
		cfg.ShadowBound = def.ShadowBound
	}
	return &Validator{reg: reg, kernel: geometry.NewKernel(reg), cfg: cfg}
}

// ValidateAll validates every geodesic and then runs the cross-path
// reversibility scan. Paths are independent, so per-path validation fans
// out across goroutines; results merge back in declaration order, keeping
// the output deterministic.
func (v *Validator) ValidateAll(geodesics []frame.Geodesic) Result {
	perPath := make([][]frame.Violation, len(geodesics))

	var wg sync.WaitGroup
	for i := range geodesics {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			perPath[i] = v.Validate(geodesics[i]).Violations
		}(i)
	}
	wg.Wait()

	var res Result
	for i, g := range geodesics {
		violations := perPath[i]
		violations = append(violations, v.checkReversibility(g, geodesics)...)
		res.Violations = append(res.Violations, violations...)
		res.Entities = append(res.Entities, EntityStatus{ID: g.ID, Violations: len(violations)})
		res.Checked++
	}
	return res
}

// Validate runs all single-path checks for one geodesic.
func (v *Validator) Validate(g frame.Geodesic) Result {
	var violations []frame.Violation

	violations = append(violations, v.checkContinuity(g)...)
	violations = append(violations, v.checkConservation(g)...)
	violations = append(violations, v.checkActivation(g)...)

	switch g.Category {
	case frame.CategoryAxis:
		violations = append(violations, v.checkAxisCoherence(g)...)
	case frame.CategorySpiral:
		violations = append(violations, v.checkSpiral(g)...)
	case frame.CategoryShadow:
		violations = append(violations, v.checkShadow(g)...)
	case frame.CategoryDiagonal:
		// Diagonal paths carry no constraint beyond the cross-cutting checks.
	}

	return Result{
		Violations: violations,
		Entities:   []EntityStatus{{ID: g.ID, Violations: len(violations)}},
		Checked:    1,
	}
}

// checkContinuity flags any step spanning more than MaxStep: a path may not
// teleport across the space without intermediate points.
func (v *Validator) checkContinuity(g frame.Geodesic) []frame.Violation {
	var out []frame.Violation
	for i := 1; i < len(g.Points); i++ {
		d, err := v.kernel.EuclideanDistance(g.Points[i-1].Coordinate, g.Points[i].Coordinate)
		if err != nil {
			out = append(out, frame.Violation{Entity: g.ID, Check: frame.CheckContinuity, Detail: err.Error()})
			continue
		}
		if d > v.cfg.MaxStep {
			out = append(out, frame.Violation{
				Entity:   g.ID,
				Check:    frame.CheckContinuity,
				Expected: v.cfg.MaxStep,
				Actual:   d,
				Detail:   fmt.Sprintf("step %d", i),
			})
		}
	}
	return out
}

// checkConservation caps the total path energy. Transformation is bounded:
// a path cannot move arbitrarily far even in small steps.
func (v *Validator) checkConservation(g frame.Geodesic) []frame.Violation {
	var energy float64
	for i := 1; i < len(g.Points); i++ {
		for _, id := range v.reg.IDs() {
			prev, ok1 := g.Points[i-1].Coordinate.At(id)
			cur, ok2 := g.Points[i].Coordinate.At(id)
			if ok1 && ok2 {
				energy += math.Abs(cur - prev)
			}
		}
	}
	if energy > v.cfg.ConservationCeiling {
		return []frame.Violation{{
			Entity:   g.ID,
			Check:    frame.CheckConservation,
			Expected: v.cfg.ConservationCeiling,
			Actual:   energy,
		}}
	}
	return nil
}

// checkActivation enforces a declared minimum first-step magnitude on the
// path's dominant axis. A transition below its activation energy never
// legitimately begins.
func (v *Validator) checkActivation(g frame.Geodesic) []frame.Violation {
	dom, ok := v.dominantAxis(g)
	if !ok {
		return nil
	}
	min, declared := v.cfg.Activation[dom]
	if !declared {
		return nil
	}

	first, err := v.kernel.AxisDistance(g.Points[0].Coordinate, g.Points[1].Coordinate, dom)
	if err != nil {
		return []frame.Violation{{Entity: g.ID, Check: frame.CheckActivationThreshold, Axis: dom, Detail: err.Error()}}
	}
	if first < min {
		return []frame.Violation{{
			Entity:   g.ID,
			Check:    frame.CheckActivationThreshold,
			Axis:     dom,
			Expected: min,
			Actual:   first,
			Detail:   "first step below activation energy",
		}}
	}
	return nil
}

// checkAxisCoherence: on an axis-category path exactly one axis may change;
// every other axis must stay within DriftTolerance of its starting value.
func (v *Validator) checkAxisCoherence(g frame.Geodesic) []frame.Violation {
	dom, _ := v.dominantAxis(g)

	var out []frame.Violation
	for _, id := range v.reg.IDs() {
		if id == dom {
			continue
		}
		start, ok := g.Points[0].Coordinate.At(id)
		if !ok {
			continue
		}
		for i := 1; i < len(g.Points); i++ {
			val, ok := g.Points[i].Coordinate.At(id)
			if !ok {
				continue
			}
			if math.Abs(val-start) > v.cfg.DriftTolerance {
				out = append(out, frame.Violation{
					Entity:   g.ID,
					Check:    frame.CheckAxisCoherence,
					Axis:     id,
					Expected: start,
					Actual:   val,
					Detail:   fmt.Sprintf("point %d drifts off a fixed axis", i),
				})
				break // one violation per drifting axis
			}
		}
	}
	return out
}

// checkSpiral: a spiral may return near an earlier value on its dominant
// axis, but only after the excursion crossed the spiral threshold. A return
// that skipped the threshold is a staged progression short-circuited.
func (v *Validator) checkSpiral(g frame.Geodesic) []frame.Violation {
	dom, ok := v.dominantAxis(g)
	if !ok {
		return nil
	}

	values := make([]float64, 0, len(g.Points))
	for _, p := range g.Points {
		val, ok := p.Coordinate.At(dom)
		if !ok {
			return nil
		}
		values = append(values, val)
	}

	var out []frame.Violation
	for i := 0; i < len(values); i++ {
		for j := i + 1; j < len(values); j++ {
			if math.Abs(values[j]-values[i]) > v.cfg.DriftTolerance {
				continue // not a revisit
			}
			// Require a genuine excursion between the two indices; adjacent
			// small steps are not revisits.
			lo, hi := values[i], values[i]
			for k := i + 1; k < j; k++ {
				lo = math.Min(lo, values[k])
				hi = math.Max(hi, values[k])
			}
			excursion := math.Max(hi-values[i], values[i]-lo)
			if excursion <= v.cfg.DriftTolerance {
				continue
			}
			// The excursion must have crossed the threshold value.
			if lo <= v.cfg.SpiralThreshold && v.cfg.SpiralThreshold <= hi {
				continue
			}
			out = append(out, frame.Violation{
				Entity:   g.ID,
				Check:    frame.CheckActivationThreshold,
				Axis:     dom,
				Expected: v.cfg.SpiralThreshold,
				Actual:   values[j],
				Detail:   fmt.Sprintf("points %d and %d revisit without crossing the threshold", i, j),
			})
			return out // one violation identifies the broken winding
		}
	}
	return out
}

// checkShadow: the dominant axis must move away from the origin line and
// come back. A path that never leaves is not a descent at all; a path
// marked reversible that ends beyond ShadowBound claims a return it does
// not make and must instead be declared one-way.
func (v *Validator) checkShadow(g frame.Geodesic) []frame.Violation {
	dom, ok := v.dominantAxis(g)
	if !ok {
		return nil
	}

	start, ok := g.Points[0].Coordinate.At(dom)
	if !ok {
		return nil
	}
	end, ok := g.Points[len(g.Points)-1].Coordinate.At(dom)
	if !ok {
		return nil
	}

	peak := math.Abs(start - frame.OriginValue)
	for _, p := range g.Points {
		val, ok := p.Coordinate.At(dom)
		if !ok {
			continue
		}
		peak = math.Max(peak, math.Abs(val-frame.OriginValue))
	}

	var out []frame.Violation
	if peak <= math.Abs(start-frame.OriginValue)+v.cfg.DriftTolerance {
		out = append(out, frame.Violation{
			Entity:   g.ID,
			Check:    frame.CheckAxisCoherence,
			Axis:     dom,
			Expected: math.Abs(start-frame.OriginValue) + v.cfg.DriftTolerance,
			Actual:   peak,
			Detail:   "path never moves toward the pole",
		})
	}

	if g.Reversible {
		if endDist := math.Abs(end - start); endDist > v.cfg.ShadowBound {
			out = append(out, frame.Violation{
				Entity:   g.ID,
				Check:    frame.CheckReversibility,
				Axis:     dom,
				Expected: v.cfg.ShadowBound,
				Actual:   endDist,
				Detail:   "reversible path ends beyond the shadow bound; declare it one-way",
			})
		}
	}
	return out
}

// checkReversibility: a one-way geodesic must not coexist with a declared
// exact point-reversal of itself.
func (v *Validator) checkReversibility(g frame.Geodesic, all []frame.Geodesic) []frame.Violation {
	if g.Reversible {
		return nil
	}
	var out []frame.Violation
	for _, other := range all {
		if other.ID == g.ID {
			continue
		}
		if isReversal(g, other) {
			out = append(out, frame.Violation{
				Entity: g.ID,
				Check:  frame.CheckReversibility,
				Detail: fmt.Sprintf("declared one-way but %q is its exact reversal", other.ID),
			})
		}
	}
	return out
}

// isReversal reports whether b's point sequence is exactly a's, reversed.
func isReversal(a, b frame.Geodesic) bool {
	if len(a.Points) != len(b.Points) {
		return false
	}
	n := len(a.Points)
	for i := 0; i < n; i++ {
		if !a.Points[i].Coordinate.Equal(b.Points[n-1-i].Coordinate) {
			return false
		}
	}
	return true
}

// dominantAxis returns the axis with the greatest total absolute movement
// across the path. ok is false when nothing moves at all.
func (v *Validator) dominantAxis(g frame.Geodesic) (axis.ID, bool) {
	var (
		dom   axis.ID
		most  float64
		moved bool
	)
	for _, id := range v.reg.IDs() {
		var total float64
		for i := 1; i < len(g.Points); i++ {
			prev, ok1 := g.Points[i-1].Coordinate.At(id)
			cur, ok2 := g.Points[i].Coordinate.At(id)
			if ok1 && ok2 {
				total += math.Abs(cur - prev)
			}
		}
		if total > most {
			most = total
			dom = id
			moved = true
		}
	}
	return dom, moved
}
