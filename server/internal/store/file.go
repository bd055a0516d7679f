package store

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/openbp/openbp/pkg/reading"
)

// file is the layout of a readings file. JSON files parse too, since JSON
// is a subset of YAML.
type file struct {
	Readings []reading.Reading `yaml:"readings"`
}

// LoadFile reads and parses the readings file at path.
func LoadFile(path string) ([]reading.Reading, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("readings file: read %q: %w", path, err)
	}

	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("readings file: parse %q: %w", path, err)
	}
	return f.Readings, nil
}
