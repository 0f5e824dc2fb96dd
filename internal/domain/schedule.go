package domain

import "context"

// Schedule is a weekly learning target: on a given weekday the child
// should complete target_sessions runs of the given app.
type Schedule struct {
	ID             int64
	ChildID        int64
	AppID          string
	DayOfWeek      int // 0 = Sunday .. 6 = Saturday
	TargetSessions int
	IsActive       bool
}

// ScheduleRepository defines persistence operations for schedules.
type ScheduleRepository interface {
	Create(ctx context.Context, schedule *Schedule) error
	GetByID(ctx context.Context, id int64) (*Schedule, error)
	ListByChild(ctx context.Context, childID int64) ([]Schedule, error)
	ListActiveByChildAndDay(ctx context.Context, childID int64, dayOfWeek int) ([]Schedule, error)
	Update(ctx context.Context, schedule *Schedule) error
	Delete(ctx context.Context, id int64) error
}
