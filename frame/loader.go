package frame

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"gopkg.in/yaml.v3"

	"github.com/c360studio/spectral/axis"
)

// DefaultPatterns are the record discovery globs applied under the frame
// directory when none are configured.
var DefaultPatterns = []string{"**/*.yaml", "**/*.yml"}

// Loader discovers and parses reference records into a Frame.
type Loader struct {
	reg    *axis.Registry
	logger *slog.Logger
}

// NewLoader creates a Loader for the given registry.
func NewLoader(reg *axis.Registry, logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{reg: reg, logger: logger}
}

// rawRecord is the loosely-typed on-disk shape of a single record.
// Kind selects which fields are meaningful.
type rawRecord struct {
	ID         string             `yaml:"id"`
	Name       string             `yaml:"name"`
	Kind       string             `yaml:"kind"`
	Axis       string             `yaml:"axis"`
	Polarity   string             `yaml:"polarity"`
	Coordinate map[string]float64 `yaml:"coordinate"`
	Category   string             `yaml:"category"`
	Reversible *bool              `yaml:"reversible"`
	Points     []rawPathPoint     `yaml:"points"`
}

type rawPathPoint struct {
	ID         string             `yaml:"id"`
	Coordinate map[string]float64 `yaml:"coordinate"`
}

// Load reads every record file matching patterns under dir, assembles the
// reference frame, and returns it together with the coordinate-level
// violations found while parsing (missing axis, out-of-range).
//
// Structural problems — unreadable files, unknown kinds, a missing or
// duplicated origin, a wrong pole count — are returned as an error: the
// record store itself is malformed and no meaningful validation can run.
// Coordinate-level problems are accumulated instead; the affected entity is
// excluded from the frame so no distance computation touches it.
func (l *Loader) Load(dir string, patterns []string) (*Frame, []Violation, error) {
	files, err := l.discover(dir, patterns)
	if err != nil {
		return nil, nil, err
	}
	if len(files) == 0 {
		return nil, nil, fmt.Errorf("no record files under %s", dir)
	}

	var records []rawRecord
	for _, path := range files {
		recs, err := parseFile(path)
		if err != nil {
			return nil, nil, fmt.Errorf("parse %s: %w", path, err)
		}
		records = append(records, recs...)
	}

	return l.assemble(records)
}

// discover resolves record files for the configured glob patterns,
// deduplicated and sorted for deterministic load order.
func (l *Loader) discover(dir string, patterns []string) ([]string, error) {
	if len(patterns) == 0 {
		patterns = DefaultPatterns
	}

	seen := make(map[string]bool)
	var files []string
	fsys := os.DirFS(dir)
	for _, pattern := range patterns {
		matches, err := doublestar.Glob(fsys, pattern)
		if err != nil {
			return nil, fmt.Errorf("resolve pattern %q: %w", pattern, err)
		}
		for _, m := range matches {
			full := filepath.Join(dir, filepath.FromSlash(m))
			if seen[full] {
				continue
			}
			seen[full] = true
			files = append(files, full)
		}
	}
	sort.Strings(files)

	l.logger.Debug("discovered record files", slog.Int("count", len(files)), slog.String("dir", dir))
	return files, nil
}

// parseFile decodes one file, which may hold multiple YAML documents.
func parseFile(path string) ([]rawRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var records []rawRecord
	dec := yaml.NewDecoder(f)
	for {
		var rec rawRecord
		if err := dec.Decode(&rec); err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, err
		}
		if rec.ID == "" {
			return nil, fmt.Errorf("record without id")
		}
		records = append(records, rec)
	}
	return records, nil
}

func (l *Loader) assemble(records []rawRecord) (*Frame, []Violation, error) {
	var (
		f          Frame
		violations []Violation
		originSeen bool
		// endpoint occupancy per axis, to reject duplicate poles
		endpoints = make(map[axis.ID]map[Polarity]string)
	)

	for _, rec := range records {
		switch Kind(rec.Kind) {
		case KindOrigin:
			if originSeen {
				return nil, nil, fmt.Errorf("duplicate origin record %q", rec.ID)
			}
			originSeen = true
			p, v, ok := l.point(rec, KindOrigin)
			violations = append(violations, v...)
			if ok {
				f.Origin = p
			}

		case KindPole:
			p, v, ok := l.polePoint(rec, endpoints)
			violations = append(violations, v...)
			if ok {
				f.Poles = append(f.Poles, p)
			}

		case KindArchetype:
			p, v, ok := l.point(rec, KindArchetype)
			violations = append(violations, v...)
			if ok {
				f.Archetypes = append(f.Archetypes, p)
			}

		case "geodesic":
			g, v, ok := l.geodesic(rec)
			violations = append(violations, v...)
			if ok {
				f.Geodesics = append(f.Geodesics, g)
			}

		default:
			return nil, nil, fmt.Errorf("record %q has unknown kind %q", rec.ID, rec.Kind)
		}
	}

	if !originSeen {
		return nil, nil, fmt.Errorf("no origin record found")
	}
	if want := l.reg.Len() * 2; countPoleRecords(records) != want {
		return nil, nil, fmt.Errorf("expected %d pole records, found %d", want, countPoleRecords(records))
	}

	f.Pairs = derivePairs(l.reg, f.Poles)
	return &f, violations, nil
}

// point builds a plain point, converting coordinate construction failures
// into accumulated violations. ok is false when the coordinate is invalid.
func (l *Loader) point(rec rawRecord, kind Kind) (Point, []Violation, bool) {
	c, err := NewCoordinate(l.reg, rec.Coordinate)
	if err != nil {
		return Point{}, []Violation{coordinateViolation(rec.ID, err)}, false
	}
	return Point{ID: rec.ID, Name: rec.Name, Kind: kind, Coordinate: c}, nil, true
}

// polePoint builds a pole point. Structural problems with the pole
// declaration itself (unregistered axis, bad polarity, occupied endpoint)
// are accumulated as violations and the pole is excluded, which surfaces
// again as an unchecked pair in the summary counts.
func (l *Loader) polePoint(rec rawRecord, endpoints map[axis.ID]map[Polarity]string) (Point, []Violation, bool) {
	id := axis.ID(rec.Axis)
	if !l.reg.Contains(id) {
		return Point{}, []Violation{{
			Entity: rec.ID,
			Check:  CheckMissingAxis,
			Axis:   id,
			Detail: "pole declares unregistered defining axis",
		}}, false
	}

	pol := Polarity(rec.Polarity)
	if pol != PolarityLow && pol != PolarityHigh {
		return Point{}, []Violation{{
			Entity: rec.ID,
			Check:  CheckPoleMismatch,
			Axis:   id,
			Detail: fmt.Sprintf("invalid polarity %q", rec.Polarity),
		}}, false
	}

	if endpoints[id] == nil {
		endpoints[id] = make(map[Polarity]string)
	}
	if prev, dup := endpoints[id][pol]; dup {
		return Point{}, []Violation{{
			Entity: rec.ID,
			Check:  CheckPoleMismatch,
			Axis:   id,
			Detail: fmt.Sprintf("endpoint already occupied by %q", prev),
		}}, false
	}
	endpoints[id][pol] = rec.ID

	c, err := NewCoordinate(l.reg, rec.Coordinate)
	if err != nil {
		return Point{}, []Violation{coordinateViolation(rec.ID, err)}, false
	}

	return Point{
		ID:         rec.ID,
		Name:       rec.Name,
		Kind:       KindPole,
		Axis:       id,
		Polarity:   pol,
		Coordinate: c,
	}, nil, true
}

func (l *Loader) geodesic(rec rawRecord) (Geodesic, []Violation, bool) {
	cat := Category(rec.Category)
	switch cat {
	case CategoryAxis, CategoryDiagonal, CategorySpiral, CategoryShadow:
	default:
		return Geodesic{}, []Violation{{
			Entity: rec.ID,
			Check:  CheckAxisCoherence,
			Detail: fmt.Sprintf("unknown geodesic category %q", rec.Category),
		}}, false
	}

	if len(rec.Points) < 2 {
		return Geodesic{}, []Violation{{
			Entity:   rec.ID,
			Check:    CheckContinuity,
			Expected: 2,
			Actual:   float64(len(rec.Points)),
			Detail:   "geodesic needs at least two points",
		}}, false
	}

	g := Geodesic{
		ID:       rec.ID,
		Name:     rec.Name,
		Category: cat,
		// Paths are reversible unless explicitly declared one-way.
		Reversible: rec.Reversible == nil || *rec.Reversible,
	}
	for i, pp := range rec.Points {
		c, err := NewCoordinate(l.reg, pp.Coordinate)
		if err != nil {
			v := coordinateViolation(rec.ID, err)
			v.Detail = strings.TrimSpace(fmt.Sprintf("point %d (%s) %s", i, pp.ID, v.Detail))
			return Geodesic{}, []Violation{v}, false
		}
		g.Points = append(g.Points, Point{ID: pp.ID, Kind: KindArchetype, Coordinate: c})
	}
	return g, nil, true
}

// coordinateViolation maps a coordinate construction error to a violation.
func coordinateViolation(entity string, err error) Violation {
	var missing *MissingAxisError
	if errors.As(err, &missing) {
		return Violation{Entity: entity, Check: CheckMissingAxis, Axis: axis.ID(missing.Axis), Detail: "coordinate missing required axis"}
	}
	var unknown *UnknownAxisError
	if errors.As(err, &unknown) {
		return Violation{Entity: entity, Check: CheckMissingAxis, Axis: axis.ID(unknown.Axis), Detail: "coordinate has unregistered axis key"}
	}
	var oor *OutOfRangeError
	if errors.As(err, &oor) {
		expected := 0.0
		if oor.Value > 1 {
			expected = 1.0
		}
		return Violation{Entity: entity, Check: CheckOutOfRange, Axis: axis.ID(oor.Axis), Expected: expected, Actual: oor.Value, Detail: "value outside [0, 1]"}
	}
	return Violation{Entity: entity, Check: CheckOutOfRange, Detail: err.Error()}
}

func countPoleRecords(records []rawRecord) int {
	n := 0
	for _, rec := range records {
		if Kind(rec.Kind) == KindPole {
			n++
		}
	}
	return n
}

// derivePairs groups poles by axis into polar pairs, registry order.
// Axes missing either endpoint (because a pole was excluded for a bad
// coordinate) produce no pair; the pair simply goes unchecked and its
// absence shows up in the summary counts.
func derivePairs(reg *axis.Registry, poles []Point) []PolarPair {
	type ends struct {
		low, high *Point
	}
	byAxis := make(map[axis.ID]*ends)
	for i := range poles {
		p := &poles[i]
		e := byAxis[p.Axis]
		if e == nil {
			e = &ends{}
			byAxis[p.Axis] = e
		}
		if p.Polarity == PolarityLow {
			e.low = p
		} else {
			e.high = p
		}
	}

	var pairs []PolarPair
	for _, id := range reg.IDs() {
		e := byAxis[id]
		if e == nil || e.low == nil || e.high == nil {
			continue
		}
		pairs = append(pairs, PolarPair{Axis: id, Low: *e.low, High: *e.high})
	}
	return pairs
}
