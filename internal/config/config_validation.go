package config

import (
	"fmt"
	"path/filepath"
)

// applyDefaults fills the path settings that were left empty by every
// source. All defaults hang off App.DataDir, which itself defaults to
// "Database" next to the working directory, the layout used by earlier
// versions of the application, so existing installations keep working.
func (cfg *StructuredConfig) applyDefaults() {
	if cfg.App.DataDir == "" {
		cfg.App.DataDir = "Database"
	}
	if cfg.Storage.DB.Path == "" {
		cfg.Storage.DB.Path = filepath.Join(cfg.App.DataDir, "ClientDB.db")
	}
	if cfg.Storage.Attachments.Root == "" {
		cfg.Storage.Attachments.Root = filepath.Join(cfg.App.DataDir, "Attachments")
	}
	if cfg.Storage.DB.SeedScript == "" {
		cfg.Storage.DB.SeedScript = "ClientDB.sql"
	}
}

func (cfg *StructuredConfig) validate() error {
	if cfg.App.DataDir == "" {
		return fmt.Errorf("%w: empty data directory", ErrInvalidAppConfigs)
	}
	if cfg.Storage.DB.Path == "" {
		return fmt.Errorf("%w: empty database file path", ErrInvalidStorageConfigs)
	}
	if cfg.Storage.Attachments.Root == "" {
		return fmt.Errorf("%w: empty attachments root", ErrInvalidStorageConfigs)
	}
	if cfg.Storage.DB.Path == cfg.Storage.Attachments.Root {
		return fmt.Errorf("%w: database path and attachments root collide", ErrInvalidStorageConfigs)
	}

	return nil
}
