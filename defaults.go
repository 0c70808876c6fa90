package vecmodel

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Defaults holds fallback index metadata applied to vector fields that do not
// declare their own. Dimensions are never defaulted: a vector field with no
// declared dimensionality is a validation error, not a guess.
type Defaults struct {
	IndexKind        string `yaml:"index_kind"`
	DistanceFunction string `yaml:"distance_function"`
}

// DefaultVector returns defaults tuned for HNSW cosine search.
func DefaultVector() Defaults {
	return Defaults{
		IndexKind:        IndexKindHNSW,
		DistanceFunction: DistanceCosine,
	}
}

// LoadDefaults reads Defaults from a YAML file.
func LoadDefaults(path string) (Defaults, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return Defaults{}, fmt.Errorf("read defaults: %w", err)
	}
	var d Defaults
	if err := yaml.Unmarshal(data, &d); err != nil {
		return Defaults{}, fmt.Errorf("parse defaults %s: %w", path, err)
	}
	return d, nil
}

// apply fills missing index metadata on a vector field.
func (d Defaults) apply(f *Field) {
	if f.role != RoleVector {
		return
	}
	if f.indexKind == "" {
		f.indexKind = d.IndexKind
	}
	if f.distanceFunction == "" {
		f.distanceFunction = d.DistanceFunction
	}
}
