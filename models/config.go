package models

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds runtime configuration. Values from a YAML config file are
// overridden by CLI flags in the command actions.
type Config struct {
	OutputDir   string `yaml:"output_dir"`
	Model       string `yaml:"model"`
	SpeechModel string `yaml:"speech_model"`
	Voice       string `yaml:"voice"`
	WorkerCount int    `yaml:"workers"`
	DBPath      string `yaml:"db_path"`
}

// DefaultConfig returns the built-in defaults used when no config file
// or flag overrides a value.
func DefaultConfig() *Config {
	return &Config{
		OutputDir:   "outputs",
		Model:       "gpt-4o",
		SpeechModel: "tts-1",
		Voice:       "alloy",
		WorkerCount: 4,
	}
}

// LoadConfig reads a YAML config file over the defaults. An empty path
// returns the defaults.
func LoadConfig(path string) (*Config, error) {
	config := DefaultConfig()
	if path == "" {
		return config, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if config.WorkerCount <= 0 {
		config.WorkerCount = 4
	}
	return config, nil
}
