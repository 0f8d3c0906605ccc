package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEnv(t *testing.T) {
	t.Setenv("APP_DATA_DIR", "/var/lib/cms")
	t.Setenv("APP_VERSION", "1.2.3")
	t.Setenv("STORAGE_DB_PATH", "/var/lib/cms/ClientDB.db")
	t.Setenv("STORAGE_DB_SEED_SCRIPT", "/var/lib/cms/seed.sql")
	t.Setenv("STORAGE_ATTACHMENTS_ROOT", "/var/lib/cms/Attachments")
	t.Setenv("CONFIG", "/etc/cms/config.json")

	var cfg StructuredConfig
	require.NoError(t, parseEnv(&cfg))

	assert.Equal(t, "/var/lib/cms", cfg.App.DataDir)
	assert.Equal(t, "1.2.3", cfg.App.Version)
	assert.Equal(t, "/var/lib/cms/ClientDB.db", cfg.Storage.DB.Path)
	assert.Equal(t, "/var/lib/cms/seed.sql", cfg.Storage.DB.SeedScript)
	assert.Equal(t, "/var/lib/cms/Attachments", cfg.Storage.Attachments.Root)
	assert.Equal(t, "/etc/cms/config.json", cfg.JSONFilePath)
}

func TestParseEnv_EmptyEnvironment(t *testing.T) {
	var cfg StructuredConfig
	require.NoError(t, parseEnv(&cfg))
	assert.Empty(t, cfg.App.DataDir)
}

func TestParseJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	content := `{
		"app": {"data_dir": "/data", "version": "2.0.0"},
		"storage": {
			"db": {"path": "/data/ClientDB.db", "seed_script": "/data/seed.sql"},
			"attachments": {"root": "/data/Attachments"}
		}
	}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := parseJSON(path)
	require.NoError(t, err)

	assert.Equal(t, "/data", cfg.App.DataDir)
	assert.Equal(t, "2.0.0", cfg.App.Version)
	assert.Equal(t, "/data/ClientDB.db", cfg.Storage.DB.Path)
	assert.Equal(t, "/data/seed.sql", cfg.Storage.DB.SeedScript)
	assert.Equal(t, "/data/Attachments", cfg.Storage.Attachments.Root)
}

func TestParseJSON_MissingFile(t *testing.T) {
	_, err := parseJSON(filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)
}

func TestParseJSON_MalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	_, err := parseJSON(path)
	assert.Error(t, err)
}

func TestApplyDefaults(t *testing.T) {
	var cfg StructuredConfig
	cfg.applyDefaults()

	assert.Equal(t, "Database", cfg.App.DataDir)
	assert.Equal(t, filepath.Join("Database", "ClientDB.db"), cfg.Storage.DB.Path)
	assert.Equal(t, filepath.Join("Database", "Attachments"), cfg.Storage.Attachments.Root)
	assert.Equal(t, "ClientDB.sql", cfg.Storage.DB.SeedScript)
}

func TestApplyDefaults_FollowsDataDir(t *testing.T) {
	cfg := StructuredConfig{App: App{DataDir: "/srv/cms"}}
	cfg.applyDefaults()

	assert.Equal(t, filepath.Join("/srv/cms", "ClientDB.db"), cfg.Storage.DB.Path)
	assert.Equal(t, filepath.Join("/srv/cms", "Attachments"), cfg.Storage.Attachments.Root)
}

func TestApplyDefaults_KeepsExplicitValues(t *testing.T) {
	cfg := StructuredConfig{
		App:     App{DataDir: "/srv/cms"},
		Storage: Storage{DB: DB{Path: "/elsewhere/main.db"}},
	}
	cfg.applyDefaults()

	assert.Equal(t, "/elsewhere/main.db", cfg.Storage.DB.Path)
}

func TestValidate(t *testing.T) {
	var cfg StructuredConfig
	cfg.applyDefaults()
	assert.NoError(t, cfg.validate())
}

func TestValidate_PathCollision(t *testing.T) {
	cfg := StructuredConfig{
		App: App{DataDir: "/data"},
		Storage: Storage{
			DB:          DB{Path: "/data/store"},
			Attachments: Attachments{Root: "/data/store"},
		},
	}

	err := cfg.validate()
	assert.ErrorIs(t, err, ErrInvalidStorageConfigs)
}

func TestValidate_EmptyDataDir(t *testing.T) {
	var cfg StructuredConfig
	err := cfg.validate()
	assert.ErrorIs(t, err, ErrInvalidAppConfigs)
}

func TestValidate_EmptyStoragePaths(t *testing.T) {
	cfg := StructuredConfig{App: App{DataDir: "/srv/cms"}}
	err := cfg.validate()
	assert.ErrorIs(t, err, ErrInvalidStorageConfigs)
}
