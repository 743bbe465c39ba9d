package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the pathlength command.
type Config struct {
	// Grid dimensions of raw snapshots.
	Width  int `yaml:"width"`
	Height int `yaml:"height"`

	Units     Units     `yaml:"units"`
	Snapshots Snapshots `yaml:"snapshots"`

	CacheSize   int    `yaml:"cache_size"`
	Concurrency int    `yaml:"concurrency"` // batch mode workers
	MetricsAddr string `yaml:"metrics_addr"`
}

// Units holds real-world sizes of one grid step.
type Units struct {
	Horizontal float64 `yaml:"horizontal"` // meters, 0 for the GeoTIFF pixel scale
	Vertical   float64 `yaml:"vertical"`   // meters
}

// Snapshots holds the location of the before and after snapshots.
type Snapshots struct {
	Dir    string `yaml:"dir"`
	Before string `yaml:"before"`
	After  string `yaml:"after"`
	Format string `yaml:"format"` // "", "raw" or "geotiff"
}

// Default returns Config with the Mount St. Helens defaults.
func Default() Config {
	return Config{
		Width:  512,
		Height: 512,
		Units: Units{
			Horizontal: 30,
			Vertical:   11,
		},
		Snapshots: Snapshots{
			Dir:    "data/st-helens",
			Before: "pre.data",
			After:  "post.data",
		},
		CacheSize:   4,
		Concurrency: 8,
	}
}

// Load loads config from a YAML file.
// If the file doesn't exist, returns defaults.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}

	return cfg, nil
}

// Validate checks that cfg is usable.
func (cfg Config) Validate() error {
	switch {
	case cfg.Width <= 0 || cfg.Height <= 0:
		return fmt.Errorf("invalid dimensions %dx%d", cfg.Width, cfg.Height)
	case cfg.Units.Horizontal < 0 || cfg.Units.Vertical < 0:
		return fmt.Errorf("invalid units %gm/%gm", cfg.Units.Horizontal, cfg.Units.Vertical)
	case cfg.CacheSize <= 0:
		return fmt.Errorf("invalid cache size %d", cfg.CacheSize)
	case cfg.Concurrency <= 0:
		return fmt.Errorf("invalid concurrency %d", cfg.Concurrency)
	}
	switch cfg.Snapshots.Format {
	case "", "raw", "geotiff":
	default:
		return fmt.Errorf("unknown snapshot format %q", cfg.Snapshots.Format)
	}
	return nil
}
