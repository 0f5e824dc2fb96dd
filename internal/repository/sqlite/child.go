package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/kodomo-labs/kodomo/internal/domain"
)

// ChildRepository implements domain.ChildRepository using SQLite.
type ChildRepository struct {
	db *sql.DB
}

func (r *ChildRepository) Create(ctx context.Context, child *domain.Child) error {
	now := time.Now().UTC()
	result, err := r.db.ExecContext(ctx,
		`INSERT INTO children (parent_id, name, created_at) VALUES (?, ?, ?)`,
		child.ParentID, child.Name, now,
	)
	if err != nil {
		return fmt.Errorf("insert child: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("get child id: %w", err)
	}

	child.ID = id
	child.CreatedAt = now
	return nil
}

func (r *ChildRepository) GetByID(ctx context.Context, id int64) (*domain.Child, error) {
	child := &domain.Child{}
	err := r.db.QueryRowContext(ctx,
		`SELECT id, parent_id, name, created_at FROM children WHERE id = ?`, id,
	).Scan(&child.ID, &child.ParentID, &child.Name, &child.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("query child by id: %w", err)
	}
	return child, nil
}

func (r *ChildRepository) ListByParent(ctx context.Context, parentID int64) ([]domain.Child, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, parent_id, name, created_at FROM children
		 WHERE parent_id = ? ORDER BY created_at`, parentID)
	if err != nil {
		return nil, fmt.Errorf("list children: %w", err)
	}
	defer rows.Close()

	var children []domain.Child
	for rows.Next() {
		var c domain.Child
		if err := rows.Scan(&c.ID, &c.ParentID, &c.Name, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan child: %w", err)
		}
		children = append(children, c)
	}
	return children, rows.Err()
}

func (r *ChildRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM children WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete child: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}
