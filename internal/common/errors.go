// Package common defines constants and sentinel errors shared by the engine, the session
// manager and the REPL. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Precondition errors. The engine rejects the action and leaves state untouched.
	ErrNoAnalysis     = errors.New("no analysis performed since the last decision")
	ErrNoEmail        = errors.New("no email is displayed")
	ErrNoSiteSelected = errors.New("no excavation site selected")

	// Lookup errors.
	ErrUnknownSite = errors.New("unknown excavation site")
	ErrUnknownTool = errors.New("unknown forensics tool")

	// Catalog errors.
	ErrInvalidCatalog = errors.New("invalid catalog")
)
