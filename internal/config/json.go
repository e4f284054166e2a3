package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dmitrijs2005/emaildig/internal/flagx"
)

// JsonConfig is the on-disk shape. Pointer fields tell "absent" from "empty".
type JsonConfig struct {
	DatabasePath *string `json:"database_path"`
	StateKey     *string `json:"state_key"`
	CatalogPath  *string `json:"catalog_path"`
	LogLevel     *string `json:"log_level"`
	OutputFormat *string `json:"output_format"`
}

// parseJson overlays cfg with the JSON file named by -c/-config in args.
// Without the flag it does nothing.
func parseJson(cfg *Config, args []string) error {
	path := flagx.ConfigPath(args)
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	set := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	set(&cfg.DatabasePath, jc.DatabasePath)
	set(&cfg.StateKey, jc.StateKey)
	set(&cfg.CatalogPath, jc.CatalogPath)
	set(&cfg.LogLevel, jc.LogLevel)
	set(&cfg.OutputFormat, jc.OutputFormat)
	return nil
}
