package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/kodomo-labs/kodomo/internal/domain"
)

// ProgressRepository implements domain.ProgressRepository using SQLite.
type ProgressRepository struct {
	db *sql.DB
}

func (r *ProgressRepository) Get(ctx context.Context, childID int64, appID string) (*domain.Progress, error) {
	p := &domain.Progress{}
	var data string
	err := r.db.QueryRowContext(ctx,
		`SELECT child_id, app_id, data, updated_at FROM progress
		 WHERE child_id = ? AND app_id = ?`, childID, appID,
	).Scan(&p.ChildID, &p.AppID, &data, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("query progress: %w", err)
	}
	p.Data = []byte(data)
	return p, nil
}

// Upsert is last-write-wins on (child_id, app_id); concurrent writers
// get no read-modify-write guarantee.
func (r *ProgressRepository) Upsert(ctx context.Context, progress *domain.Progress) error {
	now := time.Now().UTC()
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO progress (child_id, app_id, data, updated_at)
		 VALUES (?, ?, ?, ?)
		 ON CONFLICT (child_id, app_id) DO UPDATE SET data = excluded.data, updated_at = excluded.updated_at`,
		progress.ChildID, progress.AppID, string(progress.Data), now,
	)
	if err != nil {
		return fmt.Errorf("upsert progress: %w", err)
	}
	progress.UpdatedAt = now
	return nil
}
