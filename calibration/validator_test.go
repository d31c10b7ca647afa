package calibration

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360studio/spectral/axis"
	"github.com/c360studio/spectral/frame"
)

func TestValidate_CanonicalFramePasses(t *testing.T) {
	reg := axis.Default()
	v := NewValidator(reg, 0)

	res := v.Validate(frame.Canonical(reg))

	assert.True(t, res.Passed())
	assert.Empty(t, res.Violations)
	assert.Equal(t, 1, res.OriginChecked)
	assert.Equal(t, 16, res.PolesChecked)
	assert.Equal(t, 8, res.PairsChecked)
	// One status line per checked entity: origin + 16 poles + 8 pairs.
	assert.Len(t, res.Entities, 25)
}

func TestValidate_OriginMismatch(t *testing.T) {
	reg := axis.Default()
	v := NewValidator(reg, 0)

	f := frame.Canonical(reg)
	f.Origin.Coordinate = f.Origin.Coordinate.With(axis.LightShadow, 0.6)

	res := v.Validate(f)

	require.False(t, res.Passed())
	var originViolations []frame.Violation
	for _, viol := range res.Violations {
		if viol.Check == frame.CheckOriginMismatch {
			originViolations = append(originViolations, viol)
		}
	}
	require.Len(t, originViolations, 1)
	assert.Equal(t, axis.LightShadow, originViolations[0].Axis)
	assert.Equal(t, 0.5, originViolations[0].Expected)
	assert.Equal(t, 0.6, originViolations[0].Actual)
}

func TestValidate_PoleMismatchOnDefiningAxis(t *testing.T) {
	reg := axis.Default()
	v := NewValidator(reg, 0)

	// A pole declared at 0.3 instead of 0.0 on its defining axis.
	f := frame.Canonical(reg)
	f.Poles[0].Coordinate = f.Poles[0].Coordinate.With(f.Poles[0].Axis, 0.3)
	// Rebuild the affected pair so both views see the same data.
	f.Pairs[0].Low = f.Poles[0]

	res := v.Validate(f)
	require.False(t, res.Passed())

	var mismatches []frame.Violation
	for _, viol := range res.Violations {
		if viol.Check == frame.CheckPoleMismatch {
			mismatches = append(mismatches, viol)
		}
	}
	require.Len(t, mismatches, 1)
	assert.Equal(t, f.Poles[0].ID, mismatches[0].Entity)
	assert.Equal(t, f.Poles[0].Axis, mismatches[0].Axis)
	assert.Equal(t, 0.0, mismatches[0].Expected)
	assert.Equal(t, 0.3, mismatches[0].Actual)

	// The same deviation also breaks the pair span and the origin distance;
	// every check still runs and every failure is reported.
	checks := make(map[frame.Check]int)
	for _, viol := range res.Violations {
		checks[viol.Check]++
	}
	assert.Equal(t, 1, checks[frame.CheckPolarPairDistance])
	assert.Equal(t, 1, checks[frame.CheckOriginDistance])
}

func TestValidate_PairDistance(t *testing.T) {
	reg := axis.Default()
	v := NewValidator(reg, 0)

	// Pole A at 0.0, pole B at 0.9 on the shared axis.
	f := frame.Canonical(reg)
	pair := &f.Pairs[2]
	pair.High.Coordinate = pair.High.Coordinate.With(pair.Axis, 0.9)

	res := v.Validate(f)

	var pairViolations []frame.Violation
	for _, viol := range res.Violations {
		if viol.Check == frame.CheckPolarPairDistance {
			pairViolations = append(pairViolations, viol)
		}
	}
	require.Len(t, pairViolations, 1)
	assert.Equal(t, "pair."+string(pair.Axis), pairViolations[0].Entity)
	assert.Equal(t, 1.0, pairViolations[0].Expected)
	assert.InDelta(t, 0.9, pairViolations[0].Actual, 1e-12)
}

func TestValidate_OriginDistanceTolerance(t *testing.T) {
	reg := axis.Default()

	// A deviation well inside the tolerance passes the distance check while
	// still failing the exact pole check: the tolerance policy is per-check.
	f := frame.Canonical(reg)
	f.Poles[0].Coordinate = f.Poles[0].Coordinate.With(f.Poles[0].Axis, 0.0004)
	f.Pairs[0].Low = f.Poles[0]

	res := NewValidator(reg, 0.001).Validate(f)

	checks := make(map[frame.Check]int)
	for _, viol := range res.Violations {
		checks[viol.Check]++
	}
	assert.Equal(t, 1, checks[frame.CheckPoleMismatch])
	assert.Equal(t, 1, checks[frame.CheckPolarPairDistance])
	assert.Zero(t, checks[frame.CheckOriginDistance])
}

func TestValidate_SkipsUnconstructedOrigin(t *testing.T) {
	reg := axis.Default()
	v := NewValidator(reg, 0)

	f := frame.Canonical(reg)
	f.Origin = frame.Point{ID: frame.OriginID, Kind: frame.KindOrigin}

	res := v.Validate(f)
	assert.Zero(t, res.OriginChecked)
	assert.Equal(t, 16, res.PolesChecked)

	// No origin-distance checks can run without an origin.
	for _, viol := range res.Violations {
		assert.NotEqual(t, frame.CheckOriginDistance, viol.Check)
	}
}

func TestValidate_Idempotent(t *testing.T) {
	reg := axis.Default()
	v := NewValidator(reg, 0)

	f := frame.Canonical(reg)
	f.Origin.Coordinate = f.Origin.Coordinate.With(axis.SelfOther, 0.1)

	first := v.Validate(f)
	second := v.Validate(f)
	require.Equal(t, first, second)
}
