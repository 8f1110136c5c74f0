// Copyright Immersive Collective, 2026. All rights reserved.

package report

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/Immersive-Collective/signalocr/pkg/types"
)

// Manifest records what one run produced. It lives next to the combined
// artifacts as run.yaml and is what the search index ingests.
type Manifest struct {
	CreatedAt time.Time       `yaml:"created_at"`
	InputDir  string          `yaml:"input_dir"`
	Languages []string        `yaml:"languages"`
	Engine    string          `yaml:"engine"`
	Images    []ManifestImage `yaml:"images"`
}

// ManifestImage summarizes one processed image.
type ManifestImage struct {
	File   string             `yaml:"file"`
	Status types.RecordStatus `yaml:"status"`
	Chars  int                `yaml:"chars"`
	Links  int                `yaml:"links"`
}

// WriteManifest writes the run manifest into outDir.
func WriteManifest(outDir string, m *Manifest) error {
	data, err := yaml.Marshal(m)
	if err != nil {
		return fmt.Errorf("marshaling manifest: %w", err)
	}
	if err := os.WriteFile(filepath.Join(outDir, ManifestFile), data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", ManifestFile, err)
	}
	return nil
}

// LoadManifest reads outDir/run.yaml.
func LoadManifest(outDir string) (*Manifest, error) {
	data, err := os.ReadFile(filepath.Join(outDir, ManifestFile))
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", ManifestFile, err)
	}
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", ManifestFile, err)
	}
	return &m, nil
}
