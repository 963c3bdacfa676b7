package scripting

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// Manifest lists the scripts run at startup, in order.
type Manifest struct {
	Scripts []ManifestEntry `yaml:"scripts"`
}

type ManifestEntry struct {
	Path     string `yaml:"path"` // relative to the script directory
	Optional bool   `yaml:"optional"`
}

// LoadManifest loads a scripts.yaml file.
func LoadManifest(path string) (*Manifest, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read script manifest: %w", err)
	}
	var m Manifest
	if err := yaml.Unmarshal(raw, &m); err != nil {
		return nil, fmt.Errorf("parse script manifest %s: %w", path, err)
	}
	for i, s := range m.Scripts {
		if s.Path == "" {
			return nil, fmt.Errorf("script manifest %s: entry %d has no path", path, i)
		}
	}
	return &m, nil
}

// RunManifest runs every manifest entry from dir. Missing optional scripts
// are skipped; any other failure stops loading.
func (e *Engine) RunManifest(dir string, m *Manifest) error {
	for _, s := range m.Scripts {
		path := filepath.Join(dir, s.Path)
		if err := e.RunFile(path); err != nil {
			if s.Optional && errors.Is(err, os.ErrNotExist) {
				e.log.Debug("skip optional script", zap.String("file", path))
				continue
			}
			return fmt.Errorf("load %s: %w", path, err)
		}
		e.log.Debug("loaded lua script", zap.String("file", path))
	}
	return nil
}
