package config

import (
	"encoding/json"
	"fmt"
	"os"
)

// StructuredJSONConfig mirrors [StructuredConfig] with json tags for the
// optional configuration file. Kept as a separate type so the wire format
// can evolve independently of the in-memory struct.
type StructuredJSONConfig struct {
	App struct {
		DataDir string `json:"data_dir"`
		Version string `json:"version"`
	} `json:"app,omitempty"`

	Storage struct {
		DB struct {
			Path       string `json:"path"`
			SeedScript string `json:"seed_script"`
		} `json:"db,omitempty"`

		Attachments struct {
			Root string `json:"root"`
		} `json:"attachments,omitempty"`
	} `json:"storage,omitempty"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	cfg := &StructuredConfig{
		App: App{
			DataDir: jsonCfg.App.DataDir,
			Version: jsonCfg.App.Version,
		},
		Storage: Storage{
			DB: DB{
				Path:       jsonCfg.Storage.DB.Path,
				SeedScript: jsonCfg.Storage.DB.SeedScript,
			},
			Attachments: Attachments{
				Root: jsonCfg.Storage.Attachments.Root,
			},
		},
		JSONFilePath: "",
	}

	return cfg, nil
}
