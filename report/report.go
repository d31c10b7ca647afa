// Package report aggregates validator results into a single structured
// summary and renders it. Validators never print; everything user-visible
// flows through here, which keeps the core testable without capturing
// output.
package report

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"github.com/c360studio/spectral/calibration"
	"github.com/c360studio/spectral/frame"
	"github.com/c360studio/spectral/geodesic"
)

// EntityLine is one per-entity pass/fail line of the report.
type EntityLine struct {
	ID         string `json:"id"`
	Violations int    `json:"violations"`
}

// Summary is the structured result of a full validation run.
// It carries no timestamps: the same input always produces the same
// Summary, byte for byte.
type Summary struct {
	Entities   []EntityLine      `json:"entities"`
	Violations []frame.Violation `json:"violations"`

	OriginChecked    int  `json:"origin_checked"`
	PolesChecked     int  `json:"poles_checked"`
	PairsChecked     int  `json:"pairs_checked"`
	GeodesicsChecked int  `json:"geodesics_checked"`
	RecordViolations int  `json:"record_violations"`
	Passed           bool `json:"passed"`
}

// Build assembles a Summary from the record-level violations found at load
// time and the two validator results. Order is stable: load violations,
// then calibration, then geodesics.
func Build(loadViolations []frame.Violation, cal calibration.Result, geo geodesic.Result) Summary {
	s := Summary{
		OriginChecked:    cal.OriginChecked,
		PolesChecked:     cal.PolesChecked,
		PairsChecked:     cal.PairsChecked,
		GeodesicsChecked: geo.Checked,
		RecordViolations: len(loadViolations),
	}

	s.Violations = append(s.Violations, loadViolations...)
	s.Violations = append(s.Violations, cal.Violations...)
	s.Violations = append(s.Violations, geo.Violations...)

	for _, e := range cal.Entities {
		s.Entities = append(s.Entities, EntityLine(e))
	}
	for _, e := range geo.Entities {
		s.Entities = append(s.Entities, EntityLine(e))
	}

	s.Passed = len(s.Violations) == 0
	return s
}

var (
	passStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	failStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	faintStyle = lipgloss.NewStyle().Faint(true)
)

// Render writes the human-readable report: one line per checked entity,
// the itemized violations, then the summary count line.
func Render(w io.Writer, s Summary) {
	for _, e := range s.Entities {
		if e.Violations == 0 {
			fmt.Fprintf(w, "%s %s\n", passStyle.Render("PASS"), e.ID)
		} else {
			fmt.Fprintf(w, "%s %s (%d)\n", failStyle.Render("FAIL"), e.ID, e.Violations)
		}
	}

	if len(s.Violations) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "violations:")
		for _, v := range s.Violations {
			fmt.Fprintf(w, "  %s\n", v.Error())
		}
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, faintStyle.Render(fmt.Sprintf(
		"origin checked: %d, poles checked: %d, pairs checked: %d, geodesics checked: %d, violations: %d",
		s.OriginChecked, s.PolesChecked, s.PairsChecked, s.GeodesicsChecked, len(s.Violations))))

	if s.Passed {
		fmt.Fprintln(w, passStyle.Render("calibration OK"))
	} else {
		fmt.Fprintln(w, failStyle.Render("calibration FAILED"))
	}
}

// RenderJSON writes the structured Summary as indented JSON.
func RenderJSON(w io.Writer, s Summary) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(s)
}
