// Package config provides configuration loading and management for
// slantededge. It handles loading the region selection and edge thresholds
// from YAML files and provides default values.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"slantededge/pkg/mtf"
)

// Config represents the measurement configuration loaded from YAML.
// Each region entry is either empty (region skipped) or exactly four
// integers [minRow, maxRow, minCol, maxCol].
type Config struct {
	// Regions holds the pixel bounds of the five canonical edge regions
	Regions struct {
		Center      []int `yaml:"center"`
		TopLeft     []int `yaml:"topLeft"`
		TopRight    []int `yaml:"topRight"`
		BottomLeft  []int `yaml:"bottomLeft"`
		BottomRight []int `yaml:"bottomRight"`
	} `yaml:"regions"`

	// Edge holds the edge detection thresholds
	Edge struct {
		// Width is the straightened edge window width in pixels
		Width int `yaml:"width"`

		// MinAngle is the lowest accepted edge angle in degrees
		MinAngle float64 `yaml:"minAngle"`

		// MaxAngle is the highest accepted edge angle in degrees
		MaxAngle float64 `yaml:"maxAngle"`
	} `yaml:"edge"`
}

// DefaultConfig returns a configuration with default values: all regions
// empty and the standard edge thresholds.
func DefaultConfig() *Config {
	cfg := &Config{}
	cfg.Edge.Width = mtf.EdgeWidth
	cfg.Edge.MinAngle = mtf.DefaultMinAngle
	cfg.Edge.MaxAngle = mtf.DefaultMaxAngle
	return cfg
}

// LoadConfig loads configuration from a YAML file.
// If the file doesn't exist, it returns the default configuration.
func LoadConfig(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return cfg, nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", configPath, err)
	}

	return cfg, nil
}

// SaveConfig saves the configuration to a YAML file.
func SaveConfig(cfg *Config, configPath string) error {
	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("error creating config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("error marshaling config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("error writing config file: %w", err)
	}

	return nil
}

// CreateDefaultConfigFile creates a default configuration file at the
// specified path.
func CreateDefaultConfigFile(configPath string) error {
	return SaveConfig(DefaultConfig(), configPath)
}

// Validate checks that every region entry is either empty or exactly four
// integers and that the thresholds are usable.
func (c *Config) Validate() error {
	for _, corner := range mtf.Corners {
		bounds := c.Bounds(corner)
		if len(bounds) != 0 && len(bounds) != 4 {
			return fmt.Errorf("region %s must have 0 or 4 bounds; has %d", corner, len(bounds))
		}
	}
	if c.Edge.Width <= 0 {
		return fmt.Errorf("edge width must be positive; was %d", c.Edge.Width)
	}
	if c.Edge.MinAngle >= c.Edge.MaxAngle {
		return fmt.Errorf("edge angle interval [%g, %g] is empty", c.Edge.MinAngle, c.Edge.MaxAngle)
	}
	return nil
}

// Bounds returns the configured [minRow, maxRow, minCol, maxCol] bounds of
// the given region, or an empty slice if the region is not selected.
func (c *Config) Bounds(corner mtf.Corner) []int {
	switch corner {
	case mtf.Center:
		return c.Regions.Center
	case mtf.TopLeft:
		return c.Regions.TopLeft
	case mtf.TopRight:
		return c.Regions.TopRight
	case mtf.BottomLeft:
		return c.Regions.BottomLeft
	case mtf.BottomRight:
		return c.Regions.BottomRight
	}
	return nil
}

// SetBounds replaces the bounds of the given region. An empty or nil slice
// deselects the region.
func (c *Config) SetBounds(corner mtf.Corner, bounds []int) {
	switch corner {
	case mtf.Center:
		c.Regions.Center = bounds
	case mtf.TopLeft:
		c.Regions.TopLeft = bounds
	case mtf.TopRight:
		c.Regions.TopRight = bounds
	case mtf.BottomLeft:
		c.Regions.BottomLeft = bounds
	case mtf.BottomRight:
		c.Regions.BottomRight = bounds
	}
}

// RegionList converts the configured bounds into the region records the
// analyzer consumes, in canonical corner order. Deselected regions come out
// with empty bounds so the analyzer skips them.
func (c *Config) RegionList() []mtf.Region {
	regions := make([]mtf.Region, 0, len(mtf.Corners))
	for _, corner := range mtf.Corners {
		region := mtf.Region{Corner: corner}
		if bounds := c.Bounds(corner); len(bounds) == 4 {
			region.MinRow = bounds[0]
			region.MaxRow = bounds[1]
			region.MinCol = bounds[2]
			region.MaxCol = bounds[3]
		}
		regions = append(regions, region)
	}
	return regions
}
