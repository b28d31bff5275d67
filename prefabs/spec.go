package prefabs

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// SceneSpec is the YAML description of a scene: a list of top-level entities,
// each optionally nesting children.
type SceneSpec struct {
	Name     string       `yaml:"name"`
	Entities []EntitySpec `yaml:"entities"`
}

// EntitySpec describes one entity and the components to attach to it. Every
// entity gets a scene node; the other sections are optional.
type EntitySpec struct {
	Name      string         `yaml:"name"`
	Transform *TransformSpec `yaml:"transform"`
	Collider  *ColliderSpec  `yaml:"collider"`
	Dynamic   *DynamicSpec   `yaml:"dynamic"`
	Health    *HealthSpec    `yaml:"health"`
	// Lifetime in seconds; 0 means permanent.
	Lifetime float64      `yaml:"lifetime"`
	Children []EntitySpec `yaml:"children"`
}

type TransformSpec struct {
	Position       [2]float64 `yaml:"position"`
	Rotation       float64    `yaml:"rotation"`
	Depth          float64    `yaml:"depth"`
	HeightForDepth float64    `yaml:"height_for_depth"`
}

type ColliderSpec struct {
	HalfExtents [2]float64 `yaml:"half_extents"`
	// Handler names a collision handler registered by the host.
	Handler string `yaml:"handler"`
}

type DynamicSpec struct {
	Mass     float64    `yaml:"mass"`
	Damping  float64    `yaml:"damping"`
	Velocity [2]float64 `yaml:"velocity"`
}

type HealthSpec struct {
	Max float64 `yaml:"max"`
}

// LoadScene reads and parses a scene spec file.
func LoadScene(path string) (*SceneSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load scene: %w", err)
	}
	spec, err := ParseScene(data)
	if err != nil {
		return nil, fmt.Errorf("load scene %q: %w", path, err)
	}
	return spec, nil
}

// ParseScene decodes and validates a scene spec document.
func ParseScene(data []byte) (*SceneSpec, error) {
	var spec SceneSpec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return nil, fmt.Errorf("parse scene: %w", err)
	}
	if len(spec.Entities) == 0 {
		return nil, fmt.Errorf("parse scene: no entities defined")
	}
	for i := range spec.Entities {
		if err := validateEntity(&spec.Entities[i]); err != nil {
			return nil, fmt.Errorf("parse scene: %w", err)
		}
	}
	return &spec, nil
}

func validateEntity(es *EntitySpec) error {
	if es.Collider != nil {
		if es.Collider.HalfExtents[0] <= 0 || es.Collider.HalfExtents[1] <= 0 {
			return fmt.Errorf("entity %q: collider half_extents must be positive", es.Name)
		}
	}
	if es.Dynamic != nil && es.Dynamic.Mass < 0 {
		return fmt.Errorf("entity %q: dynamic mass must not be negative", es.Name)
	}
	if es.Health != nil && es.Health.Max <= 0 {
		return fmt.Errorf("entity %q: health max must be positive", es.Name)
	}
	if es.Lifetime < 0 {
		return fmt.Errorf("entity %q: lifetime must not be negative", es.Name)
	}
	for i := range es.Children {
		if err := validateEntity(&es.Children[i]); err != nil {
			return err
		}
	}
	return nil
}
