package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const fileName = ".tputplot.yaml"

// Config holds the CLI configuration
type Config struct {
	Format        string  `yaml:"format"`
	Width         float64 `yaml:"width"`  // inches
	Height        float64 `yaml:"height"` // inches
	OutputDir     string  `yaml:"output_dir"`
	FlushTrailing bool    `yaml:"flush_trailing"`
	Open          bool    `yaml:"open"`
	XLabel        string  `yaml:"x_label"`
	YLabel        string  `yaml:"y_label"`
}

// Default returns the configuration used when no file is present
func Default() *Config {
	return &Config{
		Format: "png",
		Width:  9,
		Height: 6,
		Open:   true,
		XLabel: "Number of Updates",
		YLabel: "Throughput",
	}
}

// DefaultPath returns the path to the config file in the home directory
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, fileName), nil
}

// Load loads the configuration from path, or from DefaultPath when path is
// empty. Keys missing from the file keep their default values.
func Load(path string) (*Config, error) {
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return Default(), nil
		}
		path = p
	}

	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}
