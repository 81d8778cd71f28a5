package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gorm.io/gorm"

	"github.com/dfagundes/prodboard/internal/config"
	"github.com/dfagundes/prodboard/internal/db"
	"github.com/dfagundes/prodboard/internal/store"
)

// loadConfig resolves the config file. Precedence: explicit --config flag,
// PRODBOARD_CONFIG, then the default path. A missing file at the default
// path falls back to built-in defaults so the binary runs out of the box.
func loadConfig(path string) (*config.Config, error) {
	explicit := path != defaultConfigPath
	if !explicit {
		if env := os.Getenv("PRODBOARD_CONFIG"); env != "" {
			path = env
			explicit = true
		}
	}

	cfg, err := config.Load(path)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return config.Default(), nil
		}
		return nil, err
	}
	return cfg, nil
}

// openStore loads config, opens the database, migrates, and wraps the
// handle in a record store.
func openStore(configPath string) (*config.Config, *gorm.DB, *store.Store, error) {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return nil, nil, nil, err
	}

	gormDB, err := db.Open(cfg.Database)
	if err != nil {
		return nil, nil, nil, err
	}
	if err := db.AutoMigrate(gormDB); err != nil {
		db.Close(gormDB)
		return nil, nil, nil, err
	}
	return cfg, gormDB, store.New(gormDB), nil
}

func describeDatabase(cfg *config.Config) string {
	if cfg.Database.Driver == "sqlite" {
		return fmt.Sprintf("sqlite %s", cfg.Database.Path)
	}
	return "mysql"
}
