package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// Manifest is the on-disk run description. Every field is optional; unset
// fields fall through to defaults.
type Manifest struct {
	OutputDir     string   `yaml:"output_dir,omitempty"`
	Zoom          int      `yaml:"zoom,omitempty"`
	BoxThreshold  float64  `yaml:"box_threshold,omitempty"`
	TextThreshold float64  `yaml:"text_threshold,omitempty"`
	Prompts       []string `yaml:"prompts,omitempty"`
	Formats       []string `yaml:"formats,omitempty"`
	TileSource    string   `yaml:"tile_source,omitempty"`
	SegmenterURL  string   `yaml:"segmenter_url,omitempty"`
	Areas         []string `yaml:"areas,omitempty"`
}

// Manifest renders the effective configuration for writing back next to a
// run's outputs, so the run can be reproduced from its artifacts.
func (c Config) Manifest() *Manifest {
	return &Manifest{
		OutputDir:     c.OutputDir,
		Zoom:          c.Zoom,
		BoxThreshold:  c.BoxThreshold,
		TextThreshold: c.TextThreshold,
		Prompts:       c.Prompts,
		Formats:       c.Formats,
		TileSource:    c.TileSource,
		SegmenterURL:  c.SegmenterURL,
		Areas:         c.Areas,
	}
}

// WriteManifest writes a manifest to a YAML file.
func WriteManifest(m *Manifest, path string) error {
	data, err := yaml.Marshal(m)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// ReadManifest reads a manifest from a YAML file.
func ReadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, err
	}

	return &m, nil
}
