// Package config provides YAML-based configuration loading for prodboard.
package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config is the top-level prodboard configuration, loaded from prodboard.yaml.
type Config struct {
	Port      int            `yaml:"port"`
	Database  DatabaseConfig `yaml:"database"`
	Operators []string       `yaml:"operators"`
	Models    []string       `yaml:"models"`
	Digest    DigestConfig   `yaml:"digest"`
}

// DatabaseConfig selects and configures the storage backend.
type DatabaseConfig struct {
	// Driver is "sqlite" (default, local file) or "mysql" (shared server).
	Driver string `yaml:"driver"`
	// Path is the sqlite database file.
	Path string `yaml:"path"`
	// DSN is the mysql connection string, required when Driver is "mysql".
	DSN string `yaml:"dsn"`
}

// DigestConfig enables the scheduled production digest.
type DigestConfig struct {
	// Schedule is a standard 5-field cron expression. Empty disables the digest.
	Schedule string `yaml:"schedule"`
}

// Load reads a YAML config file from path and returns a validated Config.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	return Parse(data)
}

// Parse unmarshals YAML bytes into a validated Config.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config: parse: %w", err)
	}
	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Default returns the configuration used when no config file exists:
// a local sqlite database in the working directory and the plant's
// standard operator and model rosters.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// applyDefaults fills in derived and default values.
func (c *Config) applyDefaults() {
	if c.Port == 0 {
		c.Port = 8080
	}
	if c.Database.Driver == "" {
		c.Database.Driver = "sqlite"
	}
	if c.Database.Driver == "sqlite" && c.Database.Path == "" {
		c.Database.Path = "producao.db"
	}
	if len(c.Operators) == 0 {
		c.Operators = defaultOperators()
	}
	if len(c.Models) == 0 {
		c.Models = defaultModels()
	}
}

// validate checks that all required fields are present and consistent.
func (c *Config) validate() error {
	switch c.Database.Driver {
	case "sqlite":
		if c.Database.Path == "" {
			return fmt.Errorf("config: database.path is required for the sqlite driver")
		}
	case "mysql":
		if c.Database.DSN == "" {
			return fmt.Errorf("config: database.dsn is required for the mysql driver")
		}
	default:
		return fmt.Errorf("config: unknown database.driver %q (expected sqlite or mysql)", c.Database.Driver)
	}
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config: port %d out of range", c.Port)
	}
	for i, op := range c.Operators {
		if strings.TrimSpace(op) == "" {
			return fmt.Errorf("config: operators[%d] is empty", i)
		}
	}
	for i, m := range c.Models {
		if strings.TrimSpace(m) == "" {
			return fmt.Errorf("config: models[%d] is empty", i)
		}
	}
	return nil
}

func defaultOperators() []string {
	return []string{
		"GILSON ROBERTO DE OLIVEIRA",
		"JÚLIO BONANCIM SILVA",
		"FELIPE DOMINGOS MOREIRA",
		"LUIZ HENRIQUE DE JESUS MARQUES",
		"RAFAEL BARROSO MARQUES",
		"JOÃO VITOR DA SILVA",
		"KEOLIN MIRELA FERRERA",
	}
}

func defaultModels() []string {
	return []string{
		"Unidade Compressora 20+",
		"Unidade Compressora 15+",
		"Unidade Compressora 10 RED",
	}
}
