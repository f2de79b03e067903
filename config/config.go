/*
Package config loads default settings for the bmpsteg command from a YAML
file. Command line flags always take precedence over anything set here.
*/
package config

import (
	"fmt"
	"os"

	"github.com/bodgit/bmpsteg/bmp"
	"github.com/bodgit/bmpsteg/pattern"
	"gopkg.in/yaml.v3"
)

// DefaultWorkers is the number of concurrent workers used when scanning
const DefaultWorkers = 10

// Config holds the settings that can be provided by file.
type Config struct {
	Pattern     string             `yaml:"pattern"`
	ColorScheme string             `yaml:"color_scheme"`
	Expression  pattern.Expression `yaml:"expression"`
	Colors      int                `yaml:"colors"`  // palette size used by convert, 0 disables
	Workers     int                `yaml:"workers"` // concurrent workers used by scan
	Verbose     bool               `yaml:"verbose"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Pattern:     string(pattern.Gradient),
		ColorScheme: string(pattern.RGB),
		Workers:     DefaultWorkers,
	}
}

// Load reads the YAML file at path over the top of the defaults. A missing
// file is not an error.
func Load(path string) (*Config, error) {
	c := Default()
	if path == "" {
		return c, nil
	}

	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return c, nil
		}
		return nil, err
	}

	if err := yaml.Unmarshal(b, c); err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}

	if err := c.validate(); err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}

	return c, nil
}

func (c *Config) validate() error {
	if _, err := pattern.ParsePattern(c.Pattern); err != nil {
		return err
	}
	if _, err := pattern.ParseColorScheme(c.ColorScheme); err != nil {
		return err
	}
	if err := c.Expression.Compile(); err != nil {
		return err
	}
	if c.Colors < 0 || c.Colors > bmp.MaxColors {
		return fmt.Errorf("colors must be between 0 and %d, got %d", bmp.MaxColors, c.Colors)
	}
	if c.Workers < 1 {
		return fmt.Errorf("workers must be at least 1, got %d", c.Workers)
	}
	return nil
}
