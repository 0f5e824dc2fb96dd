package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/kodomo-labs/kodomo/internal/domain"
)

// BadgeRepository implements domain.BadgeRepository using SQLite.
type BadgeRepository struct {
	db *sql.DB
}

func (r *BadgeRepository) UpsertDefinition(ctx context.Context, def *domain.BadgeDefinition) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO badge_definitions (id, name, icon, description)
		 VALUES (?, ?, ?, ?)
		 ON CONFLICT (id) DO UPDATE SET name = excluded.name, icon = excluded.icon, description = excluded.description`,
		def.ID, def.Name, def.Icon, def.Description,
	)
	if err != nil {
		return fmt.Errorf("upsert badge definition: %w", err)
	}
	return nil
}

func (r *BadgeRepository) ListDefinitions(ctx context.Context) ([]domain.BadgeDefinition, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, icon, description FROM badge_definitions ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list badge definitions: %w", err)
	}
	defer rows.Close()

	var defs []domain.BadgeDefinition
	for rows.Next() {
		var d domain.BadgeDefinition
		if err := rows.Scan(&d.ID, &d.Name, &d.Icon, &d.Description); err != nil {
			return nil, fmt.Errorf("scan badge definition: %w", err)
		}
		defs = append(defs, d)
	}
	return defs, rows.Err()
}

func (r *BadgeRepository) Award(ctx context.Context, childID int64, badgeID string) (bool, error) {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO earned_badges (child_id, badge_id, earned_at) VALUES (?, ?, ?)`,
		childID, badgeID, time.Now().UTC(),
	)
	if err != nil {
		if isUniqueConstraintError(err) {
			return false, nil
		}
		return false, fmt.Errorf("award badge: %w", err)
	}
	return true, nil
}

func (r *BadgeRepository) ListEarnedByChild(ctx context.Context, childID int64) ([]domain.EarnedBadge, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT child_id, badge_id, earned_at FROM earned_badges
		 WHERE child_id = ? ORDER BY earned_at DESC`, childID)
	if err != nil {
		return nil, fmt.Errorf("list earned badges: %w", err)
	}
	defer rows.Close()

	var earned []domain.EarnedBadge
	for rows.Next() {
		var e domain.EarnedBadge
		if err := rows.Scan(&e.ChildID, &e.BadgeID, &e.EarnedAt); err != nil {
			return nil, fmt.Errorf("scan earned badge: %w", err)
		}
		earned = append(earned, e)
	}
	return earned, rows.Err()
}
