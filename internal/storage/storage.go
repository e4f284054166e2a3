// Package storage opens the game database and exposes the persistence
// operations the session needs: reading and clearing the state slot,
// writing a checkpoint at site completion, and reading the journal.
package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite" // pure-Go SQLite driver

	"github.com/dmitrijs2005/emaildig/internal/dbx"
	"github.com/dmitrijs2005/emaildig/internal/filex"
	"github.com/dmitrijs2005/emaildig/internal/models"
	"github.com/dmitrijs2005/emaildig/internal/repositories/excavations"
	"github.com/dmitrijs2005/emaildig/internal/repositories/metadata"
	"github.com/dmitrijs2005/emaildig/internal/storage/migrations"
)

// SQLite is the database-backed store.
type SQLite struct {
	db      *sql.DB
	slots   metadata.Repository
	journal excavations.Repository
}

// RunMigrations applies the embedded migrations. It is safe to run on an
// already migrated database.
func RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}
	if err := goose.UpContext(ctx, db, "."); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}

// Open opens (creating if needed) the SQLite database at dsn and migrates it.
func Open(ctx context.Context, dsn string) (*SQLite, error) {
	if err := filex.EnsureParentDir(dsn); err != nil {
		return nil, fmt.Errorf("db directory: %w", err)
	}
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("db open error: %w", err)
	}
	// one writer; also keeps a ":memory:" database alive across calls
	db.SetMaxOpenConns(1)

	if err := RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &SQLite{
		db:      db,
		slots:   metadata.NewSQLiteRepository(db),
		journal: excavations.NewSQLiteRepository(db),
	}, nil
}

func (s *SQLite) Conn() *sql.DB {
	return s.db
}

func (s *SQLite) Close() error {
	return s.db.Close()
}

func (s *SQLite) Load(ctx context.Context, key string) ([]byte, error) {
	return s.slots.Get(ctx, key)
}

func (s *SQLite) Clear(ctx context.Context, key string) error {
	return s.slots.Delete(ctx, key)
}

// Checkpoint writes the state document and, when rec is non-nil, the journal
// entry in a single transaction.
func (s *SQLite) Checkpoint(ctx context.Context, key string, doc []byte, rec *models.Excavation) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := metadata.NewSQLiteRepository(tx).Set(ctx, key, doc); err != nil {
			return err
		}
		if rec == nil {
			return nil
		}
		return excavations.NewSQLiteRepository(tx).Add(ctx, *rec)
	})
}

func (s *SQLite) History(ctx context.Context) ([]models.Excavation, error) {
	return s.journal.List(ctx)
}

// Slots returns every save slot document keyed by slot name.
func (s *SQLite) Slots(ctx context.Context) (map[string][]byte, error) {
	return s.slots.List(ctx)
}

// Wipe removes every save slot and the whole journal in one transaction.
func (s *SQLite) Wipe(ctx context.Context) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := metadata.NewSQLiteRepository(tx).Clear(ctx); err != nil {
			return err
		}
		return excavations.NewSQLiteRepository(tx).Clear(ctx)
	})
}
