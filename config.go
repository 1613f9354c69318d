package scriptorium

import (
	"fmt"
	"os"

	"github.com/tsawler/scriptorium/layout"
	"github.com/tsawler/scriptorium/signature"
	"gopkg.in/yaml.v3"
)

// Config aggregates the configuration of every stage
type Config struct {
	Layout    layout.AnalyzerConfig `yaml:"layout"`
	Signature signature.Config      `yaml:"signature"`
}

// DefaultConfig returns sensible default configuration
func DefaultConfig() Config {
	return Config{
		Layout:    layout.DefaultAnalyzerConfig(),
		Signature: signature.DefaultConfig(),
	}
}

// LoadConfig reads a YAML file and overlays it on the default
// configuration. Keys missing from the file keep their default values.
//
// Example file:
//
//	layout:
//	  columns:
//	    iterations: 4
//	  tracker:
//	    merge_leading_fraction: 0.75
//	signature:
//	  convexity: 0.8
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config: %w", err)
	}
	return ParseConfig(data)
}

// ParseConfig overlays YAML data on the default configuration
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg, nil
}
