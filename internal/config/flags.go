package config

import (
	"flag"
	"fmt"
	"io"

	"github.com/dmitrijs2005/emaildig/internal/flagx"
)

var knownFlags = []string{"-d", "-k", "-catalog", "-v", "-format"}

// parseFlags overlays cfg with the flags it knows. Anything else in args,
// including -c, is filtered out first.
func parseFlags(cfg *Config, args []string) error {
	args = flagx.FilterArgs(args, knownFlags)

	fs := flag.NewFlagSet("emaildig", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.DatabasePath, "d", cfg.DatabasePath, "path of the SQLite save database")
	fs.StringVar(&cfg.StateKey, "k", cfg.StateKey, "save slot name")
	fs.StringVar(&cfg.CatalogPath, "catalog", cfg.CatalogPath, "YAML catalog file (empty = built-in)")
	fs.StringVar(&cfg.LogLevel, "v", cfg.LogLevel, "log level: debug, info, warn, error")
	fs.StringVar(&cfg.OutputFormat, "format", cfg.OutputFormat, "table format: ascii or markdown")

	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("parse flags: %w", err)
	}
	return nil
}
