package config

// StructuredConfig is the top-level configuration container for the
// customer-records manager. It aggregates all sub-configurations and is
// populated by merging values from environment variables, command-line
// flags, and an optional JSON file.
//
// Struct tags:
//   - envPrefix: prefix applied to all nested env tag lookups (caarlos0/env).
//   - env: direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds application-level settings such as the data directory and
	// the application version string.
	App App `envPrefix:"APP_"`

	// Storage holds configuration for both persistence backends: the
	// embedded relational database and the attachment file tree.
	Storage Storage `envPrefix:"STORAGE_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// When non-empty, the file is parsed and merged on top of the values
	// already loaded from environment variables and flags.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// App holds application-level configuration values.
type App struct {
	// DataDir is the root directory for all mutable state: the database
	// file, the attachment tree, and the session log all default to paths
	// under it.
	// Env: APP_DATA_DIR
	DataDir string `env:"DATA_DIR"`

	// Version is the semantic version string of the running application.
	// Env: APP_VERSION
	Version string `env:"VERSION"`
}

// Storage groups the configuration for all persistence backends.
type Storage struct {
	// DB holds the embedded database settings.
	DB DB `envPrefix:"DB_"`

	// Attachments holds the attachment file-tree settings.
	Attachments Attachments `envPrefix:"ATTACHMENTS_"`
}

// DB holds settings for the embedded SQLite database.
type DB struct {
	// Path is the single file the whole database is loaded from at startup
	// and snapshotted to after every mutating statement.
	// Env: STORAGE_DB_PATH
	Path string `env:"PATH"`

	// SeedScript is an optional plain-SQL file applied exactly once, when
	// no database file exists yet. It may contain seed rows; the schema
	// itself comes from the embedded migrations.
	// Env: STORAGE_DB_SEED_SCRIPT
	SeedScript string `env:"SEED_SCRIPT"`
}

// Attachments holds settings for the attachment file tree.
type Attachments struct {
	// Root is the directory under which attachments are stored as
	// <root>/<clientID>/<noteID>/<fileName>.
	// Env: STORAGE_ATTACHMENTS_ROOT
	Root string `env:"ROOT"`
}

// GetStructuredConfig loads, merges, and validates the application
// configuration from all available sources in the following priority order
// (last source wins for non-zero fields):
//  1. Environment variables
//  2. Command-line flags
//  3. JSON file (path resolved from sources 1 and 2)
//
// Returns a fully populated *StructuredConfig or an error if any source
// fails to load or the final config fails validation.
func GetStructuredConfig() (*StructuredConfig, error) {
	return newConfigBuilder().
		withEnv().
		withFlags().
		withJSON().
		build()
}
