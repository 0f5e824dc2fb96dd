package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/kodomo-labs/kodomo/internal/domain"
)

// ActivityLogRepository implements domain.ActivityLogRepository using SQLite.
type ActivityLogRepository struct {
	db *sql.DB
}

func (r *ActivityLogRepository) Create(ctx context.Context, log *domain.ActivityLog) error {
	now := time.Now().UTC()
	if !log.CreatedAt.IsZero() {
		now = log.CreatedAt
	}
	data := string(log.SessionData)
	if data == "" {
		data = "{}"
	}
	result, err := r.db.ExecContext(ctx,
		`INSERT INTO activity_logs (child_id, app_id, duration_seconds, session_data, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		log.ChildID, log.AppID, log.DurationSeconds, data, now,
	)
	if err != nil {
		return fmt.Errorf("insert activity log: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("get activity log id: %w", err)
	}

	log.ID = id
	log.CreatedAt = now
	return nil
}

func (r *ActivityLogRepository) ListByChild(ctx context.Context, childID int64, limit int) ([]domain.ActivityLog, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, child_id, app_id, duration_seconds, session_data, created_at
		 FROM activity_logs WHERE child_id = ?
		 ORDER BY created_at DESC LIMIT ?`, childID, limit)
	if err != nil {
		return nil, fmt.Errorf("list activity logs: %w", err)
	}
	defer rows.Close()

	var logs []domain.ActivityLog
	for rows.Next() {
		var l domain.ActivityLog
		var data string
		if err := rows.Scan(&l.ID, &l.ChildID, &l.AppID, &l.DurationSeconds, &data, &l.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan activity log: %w", err)
		}
		l.SessionData = []byte(data)
		logs = append(logs, l)
	}
	return logs, rows.Err()
}

func (r *ActivityLogRepository) ListDates(ctx context.Context, childID int64) ([]string, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT DISTINCT date(created_at) FROM activity_logs
		 WHERE child_id = ? ORDER BY 1 DESC`, childID)
	if err != nil {
		return nil, fmt.Errorf("list activity dates: %w", err)
	}
	defer rows.Close()

	var dates []string
	for rows.Next() {
		var d string
		if err := rows.Scan(&d); err != nil {
			return nil, fmt.Errorf("scan activity date: %w", err)
		}
		dates = append(dates, d)
	}
	return dates, rows.Err()
}

func (r *ActivityLogRepository) CountByChild(ctx context.Context, childID int64) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM activity_logs WHERE child_id = ?`, childID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count activity logs: %w", err)
	}
	return count, nil
}

func (r *ActivityLogRepository) CountByChildAppOnDate(ctx context.Context, childID int64, appID, date string) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM activity_logs
		 WHERE child_id = ? AND app_id = ? AND date(created_at) = ?`,
		childID, appID, date,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count activity logs on date: %w", err)
	}
	return count, nil
}
