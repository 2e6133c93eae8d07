// Package config loads the CLI configuration file.
package config

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	StorageMap  = "map"
	StorageTrie = "trie"
)

const (
	DumpText = "text"
	DumpJSON = "json"
	DumpBSON = "bson"
)

type Config struct {
	// Storage picks the record store backend: "map" or "trie".
	Storage string `yaml:"storage"`
	// Debug enables the DUMP command.
	Debug bool `yaml:"debug"`
	// DumpFormat is "text", "json" or "bson" (bson prints base64).
	DumpFormat string `yaml:"dump_format"`
	// LogLevel is "debug", "info", "warn" or "error".
	LogLevel string `yaml:"log_level"`
}

func Default() Config {
	return Config{
		Storage:    StorageMap,
		Debug:      false,
		DumpFormat: DumpText,
		LogLevel:   "info",
	}
}

// Load reads path over the defaults. Unknown keys are rejected.
func Load(path string) (Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("reading config: %w", err)
	}

	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	switch c.Storage {
	case StorageMap, StorageTrie:
	default:
		return fmt.Errorf("unknown storage backend %q", c.Storage)
	}
	switch c.DumpFormat {
	case DumpText, DumpJSON, DumpBSON:
	default:
		return fmt.Errorf("unknown dump format %q", c.DumpFormat)
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log level %q", c.LogLevel)
	}
	return nil
}
