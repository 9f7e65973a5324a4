package config

import (
	"fmt"
	"strings"

	"debris/internal/env"
)

// Known export formats, in the order they are written.
const (
	FormatGeoJSON   = "geojson"
	FormatShapefile = "shapefile"
	FormatCSV       = "csv"
)

// Config holds every tunable of a scan run. Values are resolved in three
// layers: built-in defaults, then the run manifest, then environment
// variables. Later layers win.
type Config struct {
	OutputDir     string
	Zoom          int
	BoxThreshold  float64
	TextThreshold float64
	Prompts       []string
	Formats       []string
	TileSource    string
	SegmenterURL  string
	Areas         []string
}

// Default returns the configuration used when nothing else is specified.
// The prompt list is tuned for post-hurricane debris.
func Default() Config {
	return Config{
		OutputDir:     "./debris_output",
		Zoom:          18,
		BoxThreshold:  0.24,
		TextThreshold: 0.24,
		Prompts: []string{
			"debris pile",
			"construction debris",
			"storm debris",
			"waste pile",
			"rubble pile",
			"trash pile",
			"damaged materials",
			"hurricane debris",
		},
		Formats:      []string{FormatGeoJSON, FormatShapefile, FormatCSV},
		TileSource:   "esri",
		SegmenterURL: "http://localhost:8081",
	}
}

// Load resolves the full configuration. manifestPath may be empty, in which
// case only defaults and environment variables apply.
func Load(manifestPath string) (Config, error) {
	cfg := Default()

	if manifestPath != "" {
		m, err := ReadManifest(manifestPath)
		if err != nil {
			return Config{}, fmt.Errorf("reading manifest: %w", err)
		}
		cfg.applyManifest(m)
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) applyManifest(m *Manifest) {
	if m.OutputDir != "" {
		c.OutputDir = m.OutputDir
	}
	if m.Zoom != 0 {
		c.Zoom = m.Zoom
	}
	if m.BoxThreshold != 0 {
		c.BoxThreshold = m.BoxThreshold
	}
	if m.TextThreshold != 0 {
		c.TextThreshold = m.TextThreshold
	}
	if len(m.Prompts) != 0 {
		c.Prompts = m.Prompts
	}
	if len(m.Formats) != 0 {
		c.Formats = m.Formats
	}
	if m.TileSource != "" {
		c.TileSource = m.TileSource
	}
	if m.SegmenterURL != "" {
		c.SegmenterURL = m.SegmenterURL
	}
	if len(m.Areas) != 0 {
		c.Areas = m.Areas
	}
}

func (c *Config) applyEnv() {
	c.OutputDir = env.GetEnv("OUTPUT_DIR", c.OutputDir)
	c.Zoom = env.GetInt("ZOOM", c.Zoom)
	c.BoxThreshold = env.GetFloat("BOX_THRESHOLD", c.BoxThreshold)
	c.TextThreshold = env.GetFloat("TEXT_THRESHOLD", c.TextThreshold)
	c.TileSource = env.GetEnv("TILE_SOURCE", c.TileSource)
	c.SegmenterURL = env.GetEnv("SEGMENTER_URL", c.SegmenterURL)

	if v := env.GetEnv("TEXT_PROMPTS", ""); v != "" {
		c.Prompts = splitList(v)
	}
	if v := env.GetEnv("EXPORT_FORMATS", ""); v != "" {
		c.Formats = splitList(v)
	}
	if v := env.GetEnv("AREAS", ""); v != "" {
		c.Areas = splitList(v)
	}
}

// Validate rejects configurations the pipeline cannot run with.
func (c Config) Validate() error {
	if c.Zoom < 1 || c.Zoom > 22 {
		return fmt.Errorf("zoom %d out of range [1, 22]", c.Zoom)
	}
	if c.BoxThreshold < 0 || c.BoxThreshold > 1 {
		return fmt.Errorf("box threshold %g out of range [0, 1]", c.BoxThreshold)
	}
	if c.TextThreshold < 0 || c.TextThreshold > 1 {
		return fmt.Errorf("text threshold %g out of range [0, 1]", c.TextThreshold)
	}
	if len(c.Prompts) == 0 {
		return fmt.Errorf("at least one text prompt is required")
	}
	if c.SegmenterURL == "" {
		return fmt.Errorf("segmenter URL is required")
	}
	if len(c.Formats) == 0 {
		return fmt.Errorf("at least one export format is required")
	}
	for _, f := range c.Formats {
		switch f {
		case FormatGeoJSON, FormatShapefile, FormatCSV:
		default:
			return fmt.Errorf("unknown export format %q", f)
		}
	}
	return nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
