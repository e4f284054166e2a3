package config

import (
	"fmt"

	"github.com/dmitrijs2005/emaildig/internal/common"
	"github.com/dmitrijs2005/emaildig/internal/format"
)

// Defaults.
const (
	DefaultDatabasePath = "dig.db"
	DefaultStateKey     = common.StateKey
	DefaultLogLevel     = "info"
	DefaultOutputFormat = "ascii"
)

// Config holds runtime settings for the game.
type Config struct {
	DatabasePath string
	StateKey     string
	// CatalogPath is empty for the embedded catalog.
	CatalogPath string
	LogLevel    string
	// OutputFormat selects how tables are drawn: ascii or markdown.
	OutputFormat string
}

// LoadDefaults populates c with defaults.
func (c *Config) LoadDefaults() {
	c.DatabasePath = DefaultDatabasePath
	c.StateKey = DefaultStateKey
	c.CatalogPath = ""
	c.LogLevel = DefaultLogLevel
	c.OutputFormat = DefaultOutputFormat
}

// LoadConfig applies defaults, then the JSON file and flags found in args
// (usually os.Args[1:]).
func LoadConfig(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	if err := parseJson(cfg, args); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}
	if cfg.StateKey == "" {
		return nil, fmt.Errorf("state key must not be empty")
	}
	if _, err := format.ParseMode(cfg.OutputFormat); err != nil {
		return nil, err
	}
	return cfg, nil
}
