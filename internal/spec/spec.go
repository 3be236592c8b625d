// Package spec loads, validates, and serializes video specifications.
package spec

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/videoforge/videoforge/pkg/models"
)

// Load reads a VideoSpec YAML file, normalizes it, and validates it
func Load(path string) (*models.VideoSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read spec file: %w", err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("empty spec file: %s", path)
	}
	return Parse(data)
}

// Parse decodes a VideoSpec document, assigns default scene ids, and
// validates it. The returned spec is ready to render.
func Parse(data []byte) (*models.VideoSpec, error) {
	var s models.VideoSpec
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to decode spec: %w", err)
	}

	Normalize(&s)

	if err := Validate(&s); err != nil {
		return nil, err
	}

	return &s, nil
}

// Normalize assigns positional default ids (scene_{i}) to scenes without one.
// It runs before validation so narration linkage can resolve against the
// final id set.
func Normalize(s *models.VideoSpec) {
	for i := range s.Scenes {
		if s.Scenes[i].ID == "" {
			s.Scenes[i].ID = fmt.Sprintf("scene_%d", i)
		}
	}
}

// Dump serializes a VideoSpec to YAML
func Dump(s *models.VideoSpec) ([]byte, error) {
	data, err := yaml.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize spec: %w", err)
	}
	return data, nil
}

// Save writes a VideoSpec to a YAML file, creating parent directories
func Save(s *models.VideoSpec, path string) error {
	data, err := Dump(s)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create spec directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write spec file: %w", err)
	}
	return nil
}
