package frame

import (
	"fmt"

	"github.com/c360studio/spectral/axis"
)

// Check names a single validation rule. Every violation carries exactly one
// check name; the reporter and the history store key on it.
type Check string

// Check names produced by the loader and the validators.
const (
	CheckMissingAxis         Check = "missing-axis"
	CheckOutOfRange          Check = "out-of-range"
	CheckOriginMismatch      Check = "origin-mismatch"
	CheckPoleMismatch        Check = "pole-mismatch"
	CheckPolarPairDistance   Check = "polar-pair-distance"
	CheckOriginDistance      Check = "origin-distance"
	CheckAxisCoherence       Check = "axis-coherence"
	CheckContinuity          Check = "continuity"
	CheckConservation        Check = "conservation"
	CheckActivationThreshold Check = "activation-threshold"
	CheckReversibility       Check = "reversibility"
)

// Violation is one accumulated check failure. Violations are collected,
// never raised: a run reports every failure it finds.
type Violation struct {
	// Entity is the identifier of the point or geodesic that failed.
	Entity string `json:"entity" db:"entity"`

	// Check names the rule that failed.
	Check Check `json:"check" db:"check_name"`

	// Axis is the axis the failure concerns, empty for whole-space checks.
	Axis axis.ID `json:"axis,omitempty" db:"axis"`

	// Expected and Actual are the compared values.
	Expected float64 `json:"expected" db:"expected"`
	Actual   float64 `json:"actual" db:"actual"`

	// Detail carries optional human context (step index, peer entity).
	Detail string `json:"detail,omitempty" db:"detail"`
}

// Error renders the violation as a single report line.
func (v Violation) Error() string {
	s := fmt.Sprintf("%s: %s", v.Entity, v.Check)
	if v.Axis != "" {
		s += fmt.Sprintf(" [%s]", v.Axis)
	}
	s += fmt.Sprintf(": expected %g, actual %g", v.Expected, v.Actual)
	if v.Detail != "" {
		s += " (" + v.Detail + ")"
	}
	return s
}
