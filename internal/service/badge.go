package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/kodomo-labs/kodomo/internal/content"
	"github.com/kodomo-labs/kodomo/internal/domain"
)

// Badge IDs.
const (
	BadgeFirstSession     = "first-session"
	BadgeSessions10       = "sessions-10"
	BadgeSessions50       = "sessions-50"
	BadgeSessions100      = "sessions-100"
	BadgeStreak3          = "streak-3"
	BadgeStreak7          = "streak-7"
	BadgeStreak30         = "streak-30"
	BadgeEarlyBird        = "early-bird"
	BadgeDotsCardMaster   = "dots-card-master"
	BadgeScheduleComplete = "schedule-complete"
)

// badgeDefs is the built-in badge catalog, seeded into the database at
// startup so earned rows always have a definition to join against.
var badgeDefs = []domain.BadgeDefinition{
	{ID: BadgeFirstSession, Name: "はじめのいっぽ", Icon: "🌱", Description: "はじめてのセッションをやりとげた"},
	{ID: BadgeSessions10, Name: "10かいクリア", Icon: "🎯", Description: "セッションを10かいやりとげた"},
	{ID: BadgeSessions50, Name: "50かいクリア", Icon: "🏅", Description: "セッションを50かいやりとげた"},
	{ID: BadgeSessions100, Name: "100かいクリア", Icon: "🏆", Description: "セッションを100かいやりとげた"},
	{ID: BadgeStreak3, Name: "3にちれんぞく", Icon: "🔥", Description: "3にちつづけてがんばった"},
	{ID: BadgeStreak7, Name: "1しゅうかんれんぞく", Icon: "⚡", Description: "7にちつづけてがんばった"},
	{ID: BadgeStreak30, Name: "1かげつれんぞく", Icon: "🌟", Description: "30にちつづけてがんばった"},
	{ID: BadgeEarlyBird, Name: "はやおきさん", Icon: "🐓", Description: "あさ8じまえにセッションをやりとげた"},
	{ID: BadgeDotsCardMaster, Name: "ドッツマスター", Icon: "💯", Description: "ドッツカードのプログラムをおりかえした"},
	{ID: BadgeScheduleComplete, Name: "きょうのミッションたっせい", Icon: "✅", Description: "きょうのスケジュールをぜんぶやりとげた"},
}

// BadgeService evaluates and awards badges after completed sessions.
type BadgeService struct {
	badges    domain.BadgeRepository
	activity  domain.ActivityLogRepository
	progress  domain.ProgressRepository
	schedules domain.ScheduleRepository
	clock     clockwork.Clock
}

// NewBadgeService creates a new BadgeService.
func NewBadgeService(badges domain.BadgeRepository, activity domain.ActivityLogRepository, progress domain.ProgressRepository, schedules domain.ScheduleRepository, clock clockwork.Clock) *BadgeService {
	return &BadgeService{
		badges:    badges,
		activity:  activity,
		progress:  progress,
		schedules: schedules,
		clock:     clock,
	}
}

// SeedDefinitions upserts the built-in badge catalog.
func (s *BadgeService) SeedDefinitions(ctx context.Context) error {
	for i := range badgeDefs {
		if err := s.badges.UpsertDefinition(ctx, &badgeDefs[i]); err != nil {
			return fmt.Errorf("seed badge %s: %w", badgeDefs[i].ID, err)
		}
	}
	return nil
}

// ListDefinitions returns the badge catalog.
func (s *BadgeService) ListDefinitions(ctx context.Context) ([]domain.BadgeDefinition, error) {
	return s.badges.ListDefinitions(ctx)
}

// ListEarned returns the badges a child has earned, newest first.
func (s *BadgeService) ListEarned(ctx context.Context, childID int64) ([]domain.EarnedBadge, error) {
	return s.badges.ListEarnedByChild(ctx, childID)
}

// CheckAndAward evaluates all badge conditions for a child right after
// a session in appID was logged, and returns the definitions of any
// badges awarded for the first time.
func (s *BadgeService) CheckAndAward(ctx context.Context, childID int64, appID string) ([]domain.BadgeDefinition, error) {
	var candidates []string

	total, err := s.activity.CountByChild(ctx, childID)
	if err != nil {
		return nil, fmt.Errorf("count sessions: %w", err)
	}
	if total >= 1 {
		candidates = append(candidates, BadgeFirstSession)
	}
	if total >= 10 {
		candidates = append(candidates, BadgeSessions10)
	}
	if total >= 50 {
		candidates = append(candidates, BadgeSessions50)
	}
	if total >= 100 {
		candidates = append(candidates, BadgeSessions100)
	}

	dates, err := s.activity.ListDates(ctx, childID)
	if err != nil {
		return nil, fmt.Errorf("list session dates: %w", err)
	}
	streak := CalculateStreak(dates, s.clock.Now().Format(dateLayout))
	if streak >= 3 {
		candidates = append(candidates, BadgeStreak3)
	}
	if streak >= 7 {
		candidates = append(candidates, BadgeStreak7)
	}
	if streak >= 30 {
		candidates = append(candidates, BadgeStreak30)
	}

	if s.clock.Now().Hour() < 8 {
		candidates = append(candidates, BadgeEarlyBird)
	}

	if appID == content.AppDotsCard {
		day, err := s.dotsProgramDay(ctx, childID)
		if err != nil {
			return nil, err
		}
		if day >= 51 {
			candidates = append(candidates, BadgeDotsCardMaster)
		}
	}

	done, err := s.scheduleCompleteToday(ctx, childID)
	if err != nil {
		return nil, err
	}
	if done {
		candidates = append(candidates, BadgeScheduleComplete)
	}

	var awarded []domain.BadgeDefinition
	for _, id := range candidates {
		newly, err := s.badges.Award(ctx, childID, id)
		if err != nil {
			return awarded, fmt.Errorf("award %s: %w", id, err)
		}
		if newly {
			awarded = append(awarded, findBadgeDef(id))
		}
	}
	return awarded, nil
}

func (s *BadgeService) dotsProgramDay(ctx context.Context, childID int64) (int, error) {
	rec, err := s.progress.Get(ctx, childID, content.AppDotsCard)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return 0, nil
		}
		return 0, fmt.Errorf("load dots progress: %w", err)
	}
	var p DotsProgress
	if err := json.Unmarshal(rec.Data, &p); err != nil {
		return 0, nil
	}
	return p.CurrentDay, nil
}

// scheduleCompleteToday reports whether the child has active schedules
// for today's weekday and every one of them has met its session target.
func (s *BadgeService) scheduleCompleteToday(ctx context.Context, childID int64) (bool, error) {
	now := s.clock.Now()
	active, err := s.schedules.ListActiveByChildAndDay(ctx, childID, int(now.Weekday()))
	if err != nil {
		return false, fmt.Errorf("list schedules: %w", err)
	}
	if len(active) == 0 {
		return false, nil
	}

	today := now.Format(dateLayout)
	for _, sched := range active {
		count, err := s.activity.CountByChildAppOnDate(ctx, childID, sched.AppID, today)
		if err != nil {
			return false, fmt.Errorf("count sessions for schedule: %w", err)
		}
		if count < sched.TargetSessions {
			return false, nil
		}
	}
	return true, nil
}

// CalculateStreak counts consecutive activity days ending today or
// yesterday. dates are distinct "2006-01-02" strings in any order.
func CalculateStreak(dates []string, today string) int {
	if len(dates) == 0 {
		return 0
	}
	set := make(map[string]bool, len(dates))
	for _, d := range dates {
		set[d] = true
	}

	day, err := parseDate(today)
	if err != nil {
		return 0
	}
	// A streak that has not been extended today still counts while
	// yesterday is covered.
	if !set[today] {
		day = day.AddDate(0, 0, -1)
		if !set[day.Format(dateLayout)] {
			return 0
		}
	}

	streak := 0
	for set[day.Format(dateLayout)] {
		streak++
		day = day.AddDate(0, 0, -1)
	}
	return streak
}

func parseDate(s string) (time.Time, error) {
	return time.Parse(dateLayout, s)
}

func findBadgeDef(id string) domain.BadgeDefinition {
	for _, d := range badgeDefs {
		if d.ID == id {
			return d
		}
	}
	return domain.BadgeDefinition{ID: id}
}
