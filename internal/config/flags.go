package config

import (
	"flag"
)

// ParseFlags parses all configuration flags.
//
// Flags:
//
//	-data-dir root directory for mutable state
//	-d database file path
//	-seed seed SQL script path (first run only)
//	-attachments attachment tree root directory
//	-c/-config json file path with configs
func ParseFlags() *StructuredConfig {
	var dataDir string
	var dbPath string
	var seedScript string
	var attachmentsRoot string
	var jsonConfigPath string

	flag.StringVar(&dataDir, "data-dir", "", "Root directory for database, attachments and logs")
	flag.StringVar(&dbPath, "d", "", "Database file path")
	flag.StringVar(&seedScript, "seed", "", "Seed SQL script applied on first run")
	flag.StringVar(&attachmentsRoot, "attachments", "", "Attachment tree root directory")
	flag.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	flag.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")

	flag.Parse()

	return &StructuredConfig{
		App: App{
			DataDir: dataDir,
		},
		Storage: Storage{
			DB: DB{
				Path:       dbPath,
				SeedScript: seedScript,
			},
			Attachments: Attachments{
				Root: attachmentsRoot,
			},
		},
		JSONFilePath: jsonConfigPath,
	}
}
