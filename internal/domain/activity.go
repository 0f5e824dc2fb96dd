package domain

import (
	"context"
	"encoding/json"
	"time"
)

// ActivityLog is one completed play session. SessionData carries the
// app-specific summary (day, cards shown, speed).
type ActivityLog struct {
	ID              int64
	ChildID         int64
	AppID           string
	DurationSeconds int
	SessionData     json.RawMessage
	CreatedAt       time.Time
}

// ActivityLogRepository defines persistence operations for activity logs.
type ActivityLogRepository interface {
	Create(ctx context.Context, log *ActivityLog) error
	ListByChild(ctx context.Context, childID int64, limit int) ([]ActivityLog, error)
	// ListDates returns the distinct local dates (YYYY-MM-DD, newest
	// first) on which the child completed at least one session. Used for
	// streak computation.
	ListDates(ctx context.Context, childID int64) ([]string, error)
	CountByChild(ctx context.Context, childID int64) (int, error)
	CountByChildAppOnDate(ctx context.Context, childID int64, appID, date string) (int, error)
}
