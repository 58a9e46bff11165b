// config.go
package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultConfigFile = "clickcount.yaml"
	DefaultAddr       = ":8080"
	MaxFileSize       = 10 << 20 // 10MB
)

// Config holds settings shared by the count and serve commands. Command-line
// flags override whatever the file sets.
type Config struct {
	Addr           string `yaml:"addr"`
	MaxUploadBytes int64  `yaml:"max_upload_bytes"`
	InputPath      string `yaml:"input_path"`
}

func defaultConfig() Config {
	return Config{
		Addr:           DefaultAddr,
		MaxUploadBytes: MaxFileSize,
	}
}

// loadConfig reads path over the defaults. A missing file is only an error
// when the caller asked for it explicitly.
func loadConfig(path string, explicit bool) (Config, error) {
	cfg := defaultConfig()
	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) && !explicit {
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if cfg.Addr == "" {
		cfg.Addr = DefaultAddr
	}
	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = MaxFileSize
	}
	return cfg, nil
}
