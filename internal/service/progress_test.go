package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/kodomo-labs/kodomo/internal/repository/sqlite"
	"github.com/kodomo-labs/kodomo/internal/service"
)

func newProgressService(t *testing.T, clock clockwork.Clock) (*service.ProgressService, *sqlite.DB, int64) {
	t.Helper()
	db := newTestDB(t)
	user := createTestUser(t, db, "progress@example.com")
	child := createTestChild(t, db, user.ID, "はなこ")
	return service.NewProgressService(db.Progress(), db.ActivityLogs(), clock), db, child.ID
}

func TestCardStartForDay(t *testing.T) {
	cases := []struct{ day, want int }{
		{1, 1}, {5, 1}, {6, 3}, {7, 5}, {10, 11}, {55, 101},
	}
	for _, tc := range cases {
		if got := service.CardStartForDay(tc.day); got != tc.want {
			t.Errorf("day %d: expected start %d, got %d", tc.day, tc.want, got)
		}
	}
}

func TestProgressService_LoadDots_Defaults(t *testing.T) {
	clock := clockwork.NewFakeClockAt(time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC))
	svc, _, childID := newProgressService(t, clock)

	p, err := svc.LoadDots(context.Background(), childID)
	if err != nil {
		t.Fatalf("LoadDots: %v", err)
	}
	if p.CurrentDay != 1 {
		t.Fatalf("expected day 1, got %d", p.CurrentDay)
	}
	if p.StartDate != "2026-03-10" {
		t.Fatalf("expected start date 2026-03-10, got %s", p.StartDate)
	}
	if p.CardStart == nil || *p.CardStart != 1 {
		t.Fatal("expected cardStart 1")
	}
	if p.Speed != 1.5 {
		t.Fatalf("expected default speed 1.5, got %v", p.Speed)
	}
}

func TestProgressService_LoadDots_DayRollover(t *testing.T) {
	clock := clockwork.NewFakeClockAt(time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC))
	svc, _, childID := newProgressService(t, clock)
	ctx := context.Background()

	p, err := svc.LoadDots(ctx, childID)
	if err != nil {
		t.Fatalf("LoadDots: %v", err)
	}
	p.TodaySessions = 3
	if err := svc.SaveDots(ctx, childID, p); err != nil {
		t.Fatalf("SaveDots: %v", err)
	}

	// Seven days later the program day catches up and the daily
	// counter resets.
	clock.Advance(7 * 24 * time.Hour)

	p, err = svc.LoadDots(ctx, childID)
	if err != nil {
		t.Fatalf("LoadDots after rollover: %v", err)
	}
	if p.CurrentDay != 8 {
		t.Fatalf("expected day 8, got %d", p.CurrentDay)
	}
	if p.TodaySessions != 0 {
		t.Fatalf("expected today sessions reset, got %d", p.TodaySessions)
	}
	if p.CardStart == nil || *p.CardStart != service.CardStartForDay(8) {
		t.Fatalf("expected cardStart %d, got %v", service.CardStartForDay(8), p.CardStart)
	}
	if p.LastSessionDate != "2026-03-17" {
		t.Fatalf("expected last session date 2026-03-17, got %s", p.LastSessionDate)
	}
}

func TestProgressService_LoadDots_RolloverKeepsManualOffset(t *testing.T) {
	clock := clockwork.NewFakeClockAt(time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC))
	svc, _, childID := newProgressService(t, clock)
	ctx := context.Background()

	p, err := svc.LoadDots(ctx, childID)
	if err != nil {
		t.Fatalf("LoadDots: %v", err)
	}

	// Parent moved the window back to repeat cards.
	offset := 1 // day-1 pacing start is 1; keep it there on purpose
	p.CardStart = &offset
	if err := svc.SaveDots(ctx, childID, p); err != nil {
		t.Fatalf("SaveDots: %v", err)
	}

	// From day 5 to day 6 the curve steps by 2, so the manual window
	// drifts forward by the same amount.
	clock.Advance(5 * 24 * time.Hour) // now day 6

	p, err = svc.LoadDots(ctx, childID)
	if err != nil {
		t.Fatalf("LoadDots: %v", err)
	}
	wantDrift := service.CardStartForDay(6) - service.CardStartForDay(1)
	if *p.CardStart != 1+wantDrift {
		t.Fatalf("expected cardStart %d, got %d", 1+wantDrift, *p.CardStart)
	}
}

func TestProgressService_LoadEnglish_RolloverResetsDailyOnly(t *testing.T) {
	clock := clockwork.NewFakeClockAt(time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC))
	svc, _, childID := newProgressService(t, clock)
	ctx := context.Background()

	p, err := svc.LoadEnglish(ctx, childID)
	if err != nil {
		t.Fatalf("LoadEnglish: %v", err)
	}
	p.TodaySessions = 2
	p.TotalSessions = 9
	p.LearnedWords = []string{"dog", "cat"}
	if err := svc.SaveEnglish(ctx, childID, p); err != nil {
		t.Fatalf("SaveEnglish: %v", err)
	}

	clock.Advance(24 * time.Hour)

	p, err = svc.LoadEnglish(ctx, childID)
	if err != nil {
		t.Fatalf("LoadEnglish after rollover: %v", err)
	}
	if p.TodaySessions != 0 {
		t.Fatalf("expected today sessions reset, got %d", p.TodaySessions)
	}
	if p.TotalSessions != 9 {
		t.Fatalf("expected total sessions kept, got %d", p.TotalSessions)
	}
	if len(p.LearnedWords) != 2 {
		t.Fatalf("expected learned words kept, got %v", p.LearnedWords)
	}
}

func TestProgressService_SaveRaw_RejectsMalformed(t *testing.T) {
	clock := clockwork.NewFakeClockAt(time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC))
	svc, _, childID := newProgressService(t, clock)

	err := svc.SaveRaw(context.Background(), childID, "dots-card", []byte(`{"currentDay":"not a number"}`))
	if err == nil {
		t.Fatal("expected malformed document to be rejected")
	}
}
