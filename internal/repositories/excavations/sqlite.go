package excavations

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/emaildig/internal/dbx"
	"github.com/dmitrijs2005/emaildig/internal/models"
)

type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Add(ctx context.Context, e models.Excavation) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO excavations (
			id, site_id, site_name, layers, discoveries, correct,
			false_positives, accuracy, artifacts_found, experience_level, completed_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.SiteID, e.SiteName, e.Layers, e.Discoveries, e.Correct,
		e.FalsePositives, e.Accuracy, e.ArtifactsFound, e.ExperienceLevel,
		e.CompletedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("failed to add excavation %s: %w", e.SiteID, err)
	}
	return nil
}

func (r *SQLiteRepository) List(ctx context.Context) ([]models.Excavation, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, site_id, site_name, layers, discoveries, correct,
		       false_positives, accuracy, artifacts_found, experience_level, completed_at
		FROM excavations
		ORDER BY completed_at DESC, rowid DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list excavations: %w", err)
	}
	defer rows.Close()

	var out []models.Excavation
	for rows.Next() {
		var (
			e  models.Excavation
			ts string
		)
		if err := rows.Scan(&e.ID, &e.SiteID, &e.SiteName, &e.Layers, &e.Discoveries, &e.Correct,
			&e.FalsePositives, &e.Accuracy, &e.ArtifactsFound, &e.ExperienceLevel, &ts); err != nil {
			return nil, fmt.Errorf("failed to scan excavation row: %w", err)
		}
		e.CompletedAt, err = time.Parse(time.RFC3339Nano, ts)
		if err != nil {
			return nil, fmt.Errorf("bad completed_at for excavation %s: %w", e.ID, err)
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate excavation rows: %w", err)
	}
	return out, nil
}

func (r *SQLiteRepository) Clear(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM excavations`); err != nil {
		return fmt.Errorf("failed to clear excavations: %w", err)
	}
	return nil
}
