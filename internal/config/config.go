package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/finsift-dev/finsift/internal/feature"
)

// Config represents the top-level finsift.yaml configuration.
type Config struct {
	Data       DataConfig         `yaml:"data"`
	Cleaning   CleaningConfig     `yaml:"cleaning"`
	Thresholds feature.Thresholds `yaml:"thresholds"`
	Detection  DetectionConfig    `yaml:"detection"`
}

// DataConfig locates the raw tables and the output artifacts.
type DataConfig struct {
	RawDir string `yaml:"raw_dir"`
	OutDir string `yaml:"out_dir"`
}

// CleaningConfig parameterizes the cleaners.
type CleaningConfig struct {
	// Countries is the canonical country list for fuzzy correction of the
	// address table. Every raw value is replaced with its closest entry.
	Countries []string `yaml:"countries"`
}

// DetectionConfig controls the built-in anomaly labeling.
type DetectionConfig struct {
	Label           bool    `yaml:"label"`
	ZScoreThreshold float64 `yaml:"zscore_threshold"`
}

// Load reads a finsift.yaml file from disk.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns a Config with sensible defaults for a new project.
func Default(rawDir, outDir string) *Config {
	return &Config{
		Data: DataConfig{
			RawDir: rawDir,
			OutDir: outDir,
		},
		Cleaning: CleaningConfig{
			Countries: []string{"United States"},
		},
		Thresholds: feature.DefaultThresholds(),
		Detection: DetectionConfig{
			Label:           false,
			ZScoreThreshold: 3.5,
		},
	}
}
