package rubric

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Load reads a rubric definition from a YAML file and validates it. An empty
// path returns the built-in rubric. The result is validated here so that a
// malformed file is rejected at startup rather than surfacing as scoring
// errors later.
func Load(path string) (Rubric, error) {
	if path == "" {
		return Default(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read rubric file: %w", err)
	}

	var r Rubric
	if err := yaml.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("failed to parse rubric file %s: %w", path, err)
	}

	if errs := Validate(r); len(errs) > 0 {
		return nil, fmt.Errorf("invalid rubric in %s: %s", path, strings.Join(errs, "; "))
	}

	return r, nil
}
