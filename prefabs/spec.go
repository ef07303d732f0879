package prefabs

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// LoadSpec decodes a prefab file into T.
func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

// Vec2 is a YAML [x, y] pair.
type Vec2 [2]float64
