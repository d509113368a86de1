package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config represents the optional profio config file.
//
//	catalog:
//	  name_field: transcript_stable_id
//	  coords_field: exons
//	log_level: info
type Config struct {
	Catalog struct {
		NameField   string `yaml:"name_field"`
		CoordsField string `yaml:"coords_field"`
	} `yaml:"catalog"`

	LogLevel string `yaml:"log_level"`
}

// LoadConfig reads the config file at path. An empty path yields a zero Config.
func LoadConfig(path string) (Config, error) {
	var cfg Config
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}

	return cfg, nil
}
