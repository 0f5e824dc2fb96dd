package domain

import (
	"context"
	"encoding/json"
	"time"
)

// Progress is the per-(child, activity) progress record. The payload is
// an app-specific JSON document (day counters, speed preference, card
// window, learned sets). Writes are last-write-wins upserts keyed by
// (child_id, app_id); no read-modify-write guarantee is assumed.
type Progress struct {
	ChildID   int64
	AppID     string
	Data      json.RawMessage
	UpdatedAt time.Time
}

// ProgressRepository defines persistence operations for progress records.
type ProgressRepository interface {
	Get(ctx context.Context, childID int64, appID string) (*Progress, error)
	Upsert(ctx context.Context, progress *Progress) error
}
