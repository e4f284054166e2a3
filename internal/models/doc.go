// Package models defines the domain types shared by the Email Archaeology Dig
// engine: catalog records (sites, emails, tools, artifact types) and the
// mutable play-through state (discoveries, unlocked artifacts, GameState).
//
// Catalog records are immutable once loaded. Discoveries are never mutated
// after creation. GameState is owned by internal/session and serialized to
// JSON with the same document keys the browser version of the game used, so
// that saved progress stays readable.
package models
