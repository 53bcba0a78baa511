package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileName is the configuration file looked up from the working directory upwards.
const FileName = ".navtoc.yaml"

type SourceConfig struct {
	Dir      string `yaml:"dir" validate:"required"`
	Root     string `yaml:"root,omitempty" validate:"omitempty,excludesall=/\\"`
	Strict   bool   `yaml:"strict"`
	Snapshot string `yaml:"snapshot,omitempty"`
}

type ServerConfig struct {
	Listen string `yaml:"listen" validate:"required,hostname_port"`
}

type Config struct {
	Source  SourceConfig  `yaml:"source"`
	Server  ServerConfig  `yaml:"server"`
	Logging LoggingConfig `yaml:"logging"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		Source: SourceConfig{Dir: "."},
		Server: ServerConfig{Listen: "127.0.0.1:8088"},
		Logging: LoggingConfig{
			ConsoleLogger: LoggerConfig{Level: "normal"},
			FileLogger:    LoggerConfig{Level: "none", Mode: "append"},
		},
	}
}

// Load reads a YAML config file on top of the defaults and returns a
// validated Config. An empty path yields the defaults. Relative source paths
// are taken relative to the file's directory.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, Validate(cfg)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	// Only fields we define are accepted.
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("config: decoding %s: %w", path, err)
	}

	base := filepath.Dir(path)
	cfg.Source.Dir = resolvePath(base, cfg.Source.Dir)
	cfg.Source.Snapshot = resolvePath(base, cfg.Source.Snapshot)
	cfg.Logging.FileLogger.Destination = resolvePath(base, cfg.Logging.FileLogger.Destination)

	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func resolvePath(base, p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(base, p)
}

// Find walks up from dir looking for FileName.
func Find(dir string) (string, bool) {
	for {
		path := filepath.Join(dir, FileName)
		if _, err := os.Stat(path); err == nil {
			return path, true
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}

// Dump renders cfg as YAML.
func Dump(cfg *Config) ([]byte, error) {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config to yaml: %w", err)
	}
	return data, nil
}
