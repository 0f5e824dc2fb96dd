package domain

import (
	"context"
	"time"
)

// Child is a learner profile owned by a parent account. All progress,
// activity, badges and schedules hang off a child, not the parent.
type Child struct {
	ID        int64
	ParentID  int64
	Name      string
	CreatedAt time.Time
}

// ChildRepository defines persistence operations for child profiles.
type ChildRepository interface {
	Create(ctx context.Context, child *Child) error
	GetByID(ctx context.Context, id int64) (*Child, error)
	ListByParent(ctx context.Context, parentID int64) ([]Child, error)
	Delete(ctx context.Context, id int64) error
}
