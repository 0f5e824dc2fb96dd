package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/kodomo-labs/kodomo/internal/domain"
)

// ScheduleRepository implements domain.ScheduleRepository using SQLite.
type ScheduleRepository struct {
	db *sql.DB
}

func (r *ScheduleRepository) Create(ctx context.Context, schedule *domain.Schedule) error {
	result, err := r.db.ExecContext(ctx,
		`INSERT INTO schedules (child_id, app_id, day_of_week, target_sessions, is_active)
		 VALUES (?, ?, ?, ?, ?)`,
		schedule.ChildID, schedule.AppID, schedule.DayOfWeek, schedule.TargetSessions, schedule.IsActive,
	)
	if err != nil {
		if isUniqueConstraintError(err) {
			return fmt.Errorf("%w: schedule already exists for that app and day", domain.ErrInvalidInput)
		}
		return fmt.Errorf("insert schedule: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("get schedule id: %w", err)
	}

	schedule.ID = id
	return nil
}

func (r *ScheduleRepository) GetByID(ctx context.Context, id int64) (*domain.Schedule, error) {
	s := &domain.Schedule{}
	err := r.db.QueryRowContext(ctx,
		`SELECT id, child_id, app_id, day_of_week, target_sessions, is_active
		 FROM schedules WHERE id = ?`, id,
	).Scan(&s.ID, &s.ChildID, &s.AppID, &s.DayOfWeek, &s.TargetSessions, &s.IsActive)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("query schedule: %w", err)
	}
	return s, nil
}

func (r *ScheduleRepository) ListByChild(ctx context.Context, childID int64) ([]domain.Schedule, error) {
	return r.list(ctx,
		`SELECT id, child_id, app_id, day_of_week, target_sessions, is_active
		 FROM schedules WHERE child_id = ? ORDER BY app_id, day_of_week`, childID)
}

func (r *ScheduleRepository) ListActiveByChildAndDay(ctx context.Context, childID int64, dayOfWeek int) ([]domain.Schedule, error) {
	return r.list(ctx,
		`SELECT id, child_id, app_id, day_of_week, target_sessions, is_active
		 FROM schedules WHERE child_id = ? AND day_of_week = ? AND is_active = 1
		 ORDER BY app_id`, childID, dayOfWeek)
}

func (r *ScheduleRepository) list(ctx context.Context, query string, args ...any) ([]domain.Schedule, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list schedules: %w", err)
	}
	defer rows.Close()

	var schedules []domain.Schedule
	for rows.Next() {
		var s domain.Schedule
		if err := rows.Scan(&s.ID, &s.ChildID, &s.AppID, &s.DayOfWeek, &s.TargetSessions, &s.IsActive); err != nil {
			return nil, fmt.Errorf("scan schedule: %w", err)
		}
		schedules = append(schedules, s)
	}
	return schedules, rows.Err()
}

func (r *ScheduleRepository) Update(ctx context.Context, schedule *domain.Schedule) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE schedules SET target_sessions = ?, is_active = ? WHERE id = ?`,
		schedule.TargetSessions, schedule.IsActive, schedule.ID,
	)
	if err != nil {
		return fmt.Errorf("update schedule: %w", err)
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

func (r *ScheduleRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM schedules WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete schedule: %w", err)
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
