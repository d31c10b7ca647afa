package report

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360studio/spectral/axis"
	"github.com/c360studio/spectral/calibration"
	"github.com/c360studio/spectral/frame"
	"github.com/c360studio/spectral/geodesic"
)

func passingSummary() Summary {
	reg := axis.Default()
	cal := calibration.NewValidator(reg, 0).Validate(frame.Canonical(reg))
	geo := geodesic.NewValidator(reg, geodesic.DefaultConfig()).ValidateAll(nil)
	return Build(nil, cal, geo)
}

// failingSummary perturbs one pole off its defining axis, which trips the
// pole-mismatch and origin-distance checks for that pole alone.
func failingSummary() Summary {
	reg := axis.Default()
	f := frame.Canonical(reg)
	f.Poles[1].Coordinate = f.Poles[1].Coordinate.With(f.Poles[1].Axis, 0.9)

	cal := calibration.NewValidator(reg, 0).Validate(f)
	geo := geodesic.NewValidator(reg, geodesic.DefaultConfig()).ValidateAll(nil)
	return Build(nil, cal, geo)
}

func TestBuild_Passing(t *testing.T) {
	s := passingSummary()

	assert.True(t, s.Passed)
	assert.Empty(t, s.Violations)
	assert.Equal(t, 1, s.OriginChecked)
	assert.Equal(t, 16, s.PolesChecked)
	assert.Equal(t, 8, s.PairsChecked)
	assert.Len(t, s.Entities, 25)
}

func TestBuild_OrderIsStable(t *testing.T) {
	load := []frame.Violation{{Entity: "archetype.x", Check: frame.CheckMissingAxis}}
	s := Build(load, calibration.Result{
		Violations: []frame.Violation{{Entity: "origin", Check: frame.CheckOriginMismatch}},
	}, geodesic.Result{
		Violations: []frame.Violation{{Entity: "geodesic.y", Check: frame.CheckContinuity}},
	})

	require.Len(t, s.Violations, 3)
	assert.Equal(t, frame.CheckMissingAxis, s.Violations[0].Check)
	assert.Equal(t, frame.CheckOriginMismatch, s.Violations[1].Check)
	assert.Equal(t, frame.CheckContinuity, s.Violations[2].Check)
	assert.False(t, s.Passed)
	assert.Equal(t, 1, s.RecordViolations)
}

func TestRender(t *testing.T) {
	var out bytes.Buffer
	Render(&out, failingSummary())
	text := out.String()

	assert.Contains(t, text, "PASS origin")
	assert.Contains(t, text, "PASS pole.order")
	assert.Contains(t, text, "FAIL pole.chaos")
	assert.Contains(t, text, "violations:")
	assert.Contains(t, text, "pole-mismatch")
	assert.Contains(t, text, "origin checked: 1, poles checked: 16, pairs checked: 8")
	assert.Contains(t, text, "calibration FAILED")
}

func TestRender_Idempotent(t *testing.T) {
	s := failingSummary()

	var a, b bytes.Buffer
	Render(&a, s)
	Render(&b, s)
	assert.Equal(t, a.Bytes(), b.Bytes())
}

func TestRenderJSON(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, RenderJSON(&out, passingSummary()))

	var decoded Summary
	require.NoError(t, json.Unmarshal(out.Bytes(), &decoded))
	assert.True(t, decoded.Passed)
	assert.Equal(t, 16, decoded.PolesChecked)
}
