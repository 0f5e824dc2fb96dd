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

const dateLayout = "2006-01-02"

// DotsProgress tracks the dots card program for one child. The program
// day derives from StartDate and advances on the first load of each
// calendar day.
type DotsProgress struct {
	StartDate       string  `json:"startDate"`
	CurrentDay      int     `json:"currentDay"`
	TodaySessions   int     `json:"todaySessions"`
	LastSessionDate string  `json:"lastSessionDate"`
	Speed           float64 `json:"speed"`
	CardStart       *int    `json:"cardStart,omitempty"`
}

// MathProgress tracks the dots equation program.
type MathProgress struct {
	StartDate           string  `json:"startDate"`
	CurrentDay          int     `json:"currentDay"`
	TodaySessions       int     `json:"todaySessions"`
	LastSessionDate     string  `json:"lastSessionDate"`
	Speed               float64 `json:"speed"`
	Mode                string  `json:"mode"`
	MaxNumber           int     `json:"maxNumber"`
	EquationsPerSession int     `json:"equationsPerSession"`
}

// EnglishProgress tracks the vocabulary program. Level is derived from
// the learned word count, ten words per level.
type EnglishProgress struct {
	Level           int      `json:"level"`
	TotalSessions   int      `json:"totalSessions"`
	TodaySessions   int      `json:"todaySessions"`
	LastSessionDate string   `json:"lastSessionDate"`
	Speed           float64  `json:"speed"`
	Category        string   `json:"category"`
	LearnedWords    []string `json:"learnedWords"`
}

// HiraganaProgress tracks the hiragana program.
type HiraganaProgress struct {
	Level           int      `json:"level"`
	TotalSessions   int      `json:"totalSessions"`
	TodaySessions   int      `json:"todaySessions"`
	LastSessionDate string   `json:"lastSessionDate"`
	Speed           float64  `json:"speed"`
	Row             string   `json:"row"`
	DisplayMode     string   `json:"displayMode"`
	LearnedKanas    []string `json:"learnedKanas"`
}

// ProgressService loads and stores per-app progress records, applying
// the daily rollover on load so callers always see today's view.
type ProgressService struct {
	progress domain.ProgressRepository
	activity domain.ActivityLogRepository
	clock    clockwork.Clock
}

// NewProgressService creates a new ProgressService.
func NewProgressService(progress domain.ProgressRepository, activity domain.ActivityLogRepository, clock clockwork.Clock) *ProgressService {
	return &ProgressService{progress: progress, activity: activity, clock: clock}
}

// Today returns the current local calendar date.
func (s *ProgressService) Today() string {
	return s.clock.Now().Format(dateLayout)
}

// CardStartForDay is the dots card pacing curve: one new card for the
// first five program days, then two per day.
func CardStartForDay(day int) int {
	if day < 1 {
		day = 1
	}
	if day <= 5 {
		return 1
	}
	return 1 + (day-5)*2
}

// LoadDots returns the dots card progress for a child, creating a
// default record on first use and rolling counters over on a new day.
func (s *ProgressService) LoadDots(ctx context.Context, childID int64) (*DotsProgress, error) {
	p := &DotsProgress{}
	found, err := s.load(ctx, childID, content.AppDotsCard, p)
	if err != nil {
		return nil, err
	}

	today := s.Today()
	changed := false
	if !found {
		*p = DotsProgress{StartDate: today, CurrentDay: 1, LastSessionDate: today, Speed: 1.5}
		changed = true
	}

	if p.LastSessionDate != today {
		prevDay := p.CurrentDay
		p.CurrentDay = programDay(p.StartDate, today)
		p.TodaySessions = 0
		p.LastSessionDate = today
		if p.CardStart != nil {
			// A manually adjusted window still drifts forward with the
			// pacing curve.
			if step := CardStartForDay(p.CurrentDay) - CardStartForDay(prevDay); step > 0 {
				*p.CardStart += step
			}
		}
		changed = true
	}
	if p.CardStart == nil {
		start := CardStartForDay(p.CurrentDay)
		p.CardStart = &start
		changed = true
	}

	if changed {
		if err := s.SaveDots(ctx, childID, p); err != nil {
			return nil, err
		}
	}
	return p, nil
}

// SaveDots persists the dots card progress.
func (s *ProgressService) SaveDots(ctx context.Context, childID int64, p *DotsProgress) error {
	return s.save(ctx, childID, content.AppDotsCard, p)
}

// LoadMath returns the equation program progress, defaulting and
// rolling over like LoadDots.
func (s *ProgressService) LoadMath(ctx context.Context, childID int64) (*MathProgress, error) {
	p := &MathProgress{}
	found, err := s.load(ctx, childID, content.AppDotsCardMath, p)
	if err != nil {
		return nil, err
	}

	today := s.Today()
	changed := false
	if !found {
		*p = MathProgress{
			StartDate:           today,
			CurrentDay:          1,
			LastSessionDate:     today,
			Speed:               1.5,
			Mode:                "addition",
			MaxNumber:           20,
			EquationsPerSession: 3,
		}
		changed = true
	}

	if p.LastSessionDate != today {
		p.CurrentDay = programDay(p.StartDate, today)
		p.TodaySessions = 0
		p.LastSessionDate = today
		changed = true
	}

	if changed {
		if err := s.SaveMath(ctx, childID, p); err != nil {
			return nil, err
		}
	}
	return p, nil
}

// SaveMath persists the equation program progress.
func (s *ProgressService) SaveMath(ctx context.Context, childID int64, p *MathProgress) error {
	return s.save(ctx, childID, content.AppDotsCardMath, p)
}

// LoadEnglish returns the vocabulary progress.
func (s *ProgressService) LoadEnglish(ctx context.Context, childID int64) (*EnglishProgress, error) {
	p := &EnglishProgress{}
	found, err := s.load(ctx, childID, content.AppEnglishFlash, p)
	if err != nil {
		return nil, err
	}

	today := s.Today()
	changed := false
	if !found {
		*p = EnglishProgress{Level: 1, LastSessionDate: today, Speed: 2, Category: "all"}
		changed = true
	}
	if p.LastSessionDate != today {
		p.TodaySessions = 0
		p.LastSessionDate = today
		changed = true
	}

	if changed {
		if err := s.SaveEnglish(ctx, childID, p); err != nil {
			return nil, err
		}
	}
	return p, nil
}

// SaveEnglish persists the vocabulary progress.
func (s *ProgressService) SaveEnglish(ctx context.Context, childID int64, p *EnglishProgress) error {
	return s.save(ctx, childID, content.AppEnglishFlash, p)
}

// LoadHiragana returns the hiragana progress.
func (s *ProgressService) LoadHiragana(ctx context.Context, childID int64) (*HiraganaProgress, error) {
	p := &HiraganaProgress{}
	found, err := s.load(ctx, childID, content.AppHiragana, p)
	if err != nil {
		return nil, err
	}

	today := s.Today()
	changed := false
	if !found {
		*p = HiraganaProgress{Level: 1, LastSessionDate: today, Speed: 2, Row: "all", DisplayMode: "full"}
		changed = true
	}
	if p.LastSessionDate != today {
		p.TodaySessions = 0
		p.LastSessionDate = today
		changed = true
	}

	if changed {
		if err := s.SaveHiragana(ctx, childID, p); err != nil {
			return nil, err
		}
	}
	return p, nil
}

// SaveHiragana persists the hiragana progress.
func (s *ProgressService) SaveHiragana(ctx context.Context, childID int64, p *HiraganaProgress) error {
	return s.save(ctx, childID, content.AppHiragana, p)
}

// Raw returns the stored progress document for an app as-is, for the
// settings API.
func (s *ProgressService) Raw(ctx context.Context, childID int64, appID string) (json.RawMessage, error) {
	if !content.ValidApp(appID) {
		return nil, fmt.Errorf("%w: unknown app %q", domain.ErrInvalidInput, appID)
	}
	rec, err := s.progress.Get(ctx, childID, appID)
	if err != nil {
		return nil, err
	}
	return rec.Data, nil
}

// SaveRaw validates the document against the app's record shape and
// stores it. Last write wins.
func (s *ProgressService) SaveRaw(ctx context.Context, childID int64, appID string, data json.RawMessage) error {
	var probe any
	switch appID {
	case content.AppDotsCard:
		probe = &DotsProgress{}
	case content.AppDotsCardMath:
		probe = &MathProgress{}
	case content.AppEnglishFlash:
		probe = &EnglishProgress{}
	case content.AppHiragana:
		probe = &HiraganaProgress{}
	default:
		return fmt.Errorf("%w: unknown app %q", domain.ErrInvalidInput, appID)
	}
	if err := json.Unmarshal(data, probe); err != nil {
		return fmt.Errorf("%w: malformed progress document", domain.ErrInvalidInput)
	}
	return s.progress.Upsert(ctx, &domain.Progress{ChildID: childID, AppID: appID, Data: data})
}

// RecentActivity lists a child's newest activity log entries.
func (s *ProgressService) RecentActivity(ctx context.Context, childID int64, limit int) ([]domain.ActivityLog, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	return s.activity.ListByChild(ctx, childID, limit)
}

func (s *ProgressService) load(ctx context.Context, childID int64, appID string, out any) (bool, error) {
	rec, err := s.progress.Get(ctx, childID, appID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	if err := json.Unmarshal(rec.Data, out); err != nil {
		return false, fmt.Errorf("decode progress for %s: %w", appID, err)
	}
	return true, nil
}

func (s *ProgressService) save(ctx context.Context, childID int64, appID string, p any) error {
	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("encode progress for %s: %w", appID, err)
	}
	return s.progress.Upsert(ctx, &domain.Progress{ChildID: childID, AppID: appID, Data: data})
}

// programDay is the 1-based day number of today within a program that
// began on startDate. A malformed start date restarts the program.
func programDay(startDate, today string) int {
	start, err := time.Parse(dateLayout, startDate)
	if err != nil {
		return 1
	}
	now, err := time.Parse(dateLayout, today)
	if err != nil {
		return 1
	}
	day := int(now.Sub(start).Hours()/24) + 1
	if day < 1 {
		day = 1
	}
	return day
}
