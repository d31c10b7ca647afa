package frame

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// pointRecord is the serialized shape of a point record file.
type pointRecord struct {
	ID         string             `yaml:"id"`
	Name       string             `yaml:"name"`
	Kind       Kind               `yaml:"kind"`
	Axis       string             `yaml:"axis,omitempty"`
	Polarity   Polarity           `yaml:"polarity,omitempty"`
	Coordinate map[string]float64 `yaml:"coordinate"`
}

// WriteCanonical writes the reference records for f under dir, one file per
// point: origin.yaml plus pole.<name>.yaml for each pole. It refuses to
// overwrite existing files so a scaffold never clobbers curated data.
func WriteCanonical(f *Frame, dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create frame directory: %w", err)
	}

	points := append([]Point{f.Origin}, f.Poles...)
	for _, p := range points {
		rec := pointRecord{
			ID:         p.ID,
			Name:       p.Name,
			Kind:       p.Kind,
			Axis:       string(p.Axis),
			Polarity:   p.Polarity,
			Coordinate: p.Coordinate.Values(),
		}
		data, err := yaml.Marshal(rec)
		if err != nil {
			return fmt.Errorf("marshal %s: %w", p.ID, err)
		}

		path := filepath.Join(dir, p.ID+".yaml")
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("record file already exists: %s", path)
		}
		if err := os.WriteFile(path, data, 0644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
	}
	return nil
}
