// Package config loads runtime configuration for the emaildig game.
//
// Sources, later ones win:
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file named by -c or -config.
//  3. Command-line flags.
//
// Flags
//
//	-d string        path of the SQLite database holding the saved game
//	-k string        name of the save slot
//	-catalog string  YAML catalog overriding the built-in sites
//	-v string        log level (debug, info, warn, error)
//
// JSON keys mirror the flags; absent keys leave the earlier value alone:
//
//	{
//	  "database_path": "dig.db",
//	  "state_key": "emailArchaeologyDig",
//	  "catalog_path": "",
//	  "log_level": "info"
//	}
package config
