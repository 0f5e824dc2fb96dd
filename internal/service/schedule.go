package service

import (
	"context"
	"fmt"

	"github.com/jonboulle/clockwork"
	"github.com/kodomo-labs/kodomo/internal/content"
	"github.com/kodomo-labs/kodomo/internal/domain"
)

// ScheduleService manages weekly activity schedules and reports how far
// along today's targets are.
type ScheduleService struct {
	schedules domain.ScheduleRepository
	activity  domain.ActivityLogRepository
	clock     clockwork.Clock
}

// NewScheduleService creates a new ScheduleService.
func NewScheduleService(schedules domain.ScheduleRepository, activity domain.ActivityLogRepository, clock clockwork.Clock) *ScheduleService {
	return &ScheduleService{schedules: schedules, activity: activity, clock: clock}
}

// Create adds a schedule entry for a child.
func (s *ScheduleService) Create(ctx context.Context, childID int64, appID string, dayOfWeek, targetSessions int) (*domain.Schedule, error) {
	if !content.ValidApp(appID) {
		return nil, fmt.Errorf("%w: unknown app %q", domain.ErrInvalidInput, appID)
	}
	if dayOfWeek < 0 || dayOfWeek > 6 {
		return nil, fmt.Errorf("%w: day of week must be 0-6", domain.ErrInvalidInput)
	}
	if targetSessions < 1 || targetSessions > 10 {
		return nil, fmt.Errorf("%w: target sessions must be 1-10", domain.ErrInvalidInput)
	}

	schedule := &domain.Schedule{
		ChildID:        childID,
		AppID:          appID,
		DayOfWeek:      dayOfWeek,
		TargetSessions: targetSessions,
		IsActive:       true,
	}
	if err := s.schedules.Create(ctx, schedule); err != nil {
		return nil, err
	}
	return schedule, nil
}

// Get returns one schedule entry by ID.
func (s *ScheduleService) Get(ctx context.Context, scheduleID int64) (*domain.Schedule, error) {
	return s.schedules.GetByID(ctx, scheduleID)
}

// ListByChild returns every schedule entry for a child.
func (s *ScheduleService) ListByChild(ctx context.Context, childID int64) ([]domain.Schedule, error) {
	return s.schedules.ListByChild(ctx, childID)
}

// Update changes the target and active flag of a schedule entry after
// confirming it belongs to the child.
func (s *ScheduleService) Update(ctx context.Context, childID, scheduleID int64, targetSessions int, isActive bool) (*domain.Schedule, error) {
	if targetSessions < 1 || targetSessions > 10 {
		return nil, fmt.Errorf("%w: target sessions must be 1-10", domain.ErrInvalidInput)
	}

	schedule, err := s.getOwned(ctx, childID, scheduleID)
	if err != nil {
		return nil, err
	}
	schedule.TargetSessions = targetSessions
	schedule.IsActive = isActive
	if err := s.schedules.Update(ctx, schedule); err != nil {
		return nil, err
	}
	return schedule, nil
}

// Delete removes a schedule entry after an ownership check.
func (s *ScheduleService) Delete(ctx context.Context, childID, scheduleID int64) error {
	if _, err := s.getOwned(ctx, childID, scheduleID); err != nil {
		return err
	}
	return s.schedules.Delete(ctx, scheduleID)
}

// TodayProgress is one active schedule entry with today's session count
// against its target.
type TodayProgress struct {
	Schedule  domain.Schedule
	Completed int
}

// Today returns the child's active schedule entries for the current
// weekday, each with its completion count so far.
func (s *ScheduleService) Today(ctx context.Context, childID int64) ([]TodayProgress, error) {
	now := s.clock.Now()
	active, err := s.schedules.ListActiveByChildAndDay(ctx, childID, int(now.Weekday()))
	if err != nil {
		return nil, err
	}

	today := now.Format(dateLayout)
	out := make([]TodayProgress, 0, len(active))
	for _, sched := range active {
		count, err := s.activity.CountByChildAppOnDate(ctx, childID, sched.AppID, today)
		if err != nil {
			return nil, err
		}
		out = append(out, TodayProgress{Schedule: sched, Completed: count})
	}
	return out, nil
}

func (s *ScheduleService) getOwned(ctx context.Context, childID, scheduleID int64) (*domain.Schedule, error) {
	schedule, err := s.schedules.GetByID(ctx, scheduleID)
	if err != nil {
		return nil, err
	}
	if schedule.ChildID != childID {
		return nil, domain.ErrNotFound
	}
	return schedule, nil
}
