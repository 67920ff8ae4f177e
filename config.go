package lox

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds the user settings read from a YAML file such as ~/.lox.yaml.
type Config struct {
	MaxCallDepth    int    `yaml:"max_call_depth"`
	Color           bool   `yaml:"color"`
	HistoryFile     string `yaml:"history_file"`
	ReportAllErrors bool   `yaml:"report_all_errors"`
}

func DefaultConfig() Config {
	return Config{
		MaxCallDepth:    2048,
		Color:           true,
		HistoryFile:     ".lox_history",
		ReportAllErrors: false,
	}
}

// DecodeConfig reads a YAML configuration from r. Settings missing from the
// document keep their default values; unknown settings are an error.
func DecodeConfig(r io.Reader) (Config, error) {
	config := DefaultConfig()
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	if err := decoder.Decode(&config); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, err
	}
	if config.MaxCallDepth < 0 {
		return Config{}, fmt.Errorf("max_call_depth must not be negative, found %d", config.MaxCallDepth)
	}
	return config, nil
}

// LoadConfig reads the configuration file at path.
func LoadConfig(path string) (Config, error) {
	if path == "" {
		return Config{}, fmt.Errorf("config: empty path")
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: resolve %s: %w", path, err)
	}
	file, err := os.Open(abs)
	if err != nil {
		return Config{}, err
	}
	defer file.Close()

	config, err := DecodeConfig(file)
	if err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", abs, err)
	}
	return config, nil
}
