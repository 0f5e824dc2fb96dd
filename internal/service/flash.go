package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/kodomo-labs/kodomo/internal/content"
	"github.com/kodomo-labs/kodomo/internal/domain"
)

// FlashRun is a prepared flash session: the paced steps plus the
// summary data that goes into the activity log when it completes.
type FlashRun struct {
	ChildID      int64
	AppID        string
	Steps        []Step
	StepDuration time.Duration
	CardCount    int

	day       int
	cards     []int
	equations []domain.Equation
	words     []string
	kanas     []string
}

// FlashService prepares flash sessions from a child's progress and
// books completed ones: progress counters, an activity log entry, and
// a badge recheck.
type FlashService struct {
	progress *ProgressService
	activity domain.ActivityLogRepository
	badges   *BadgeService
	logger   *slog.Logger
	newRNG   func() *rand.Rand
}

// NewFlashService creates a new FlashService.
func NewFlashService(progress *ProgressService, activity domain.ActivityLogRepository, badges *BadgeService, logger *slog.Logger) *FlashService {
	return &FlashService{
		progress: progress,
		activity: activity,
		badges:   badges,
		logger:   logger,
		newRNG: func() *rand.Rand {
			return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
		},
	}
}

// BuildRun assembles a session for the child and app from their current
// progress. Returns ErrInvalidState when the app has no cards left to
// show, which for the dots program means the child finished it.
func (s *FlashService) BuildRun(ctx context.Context, childID int64, appID string) (*FlashRun, error) {
	rng := s.newRNG()
	run := &FlashRun{ChildID: childID, AppID: appID}

	var stimuli []domain.Stimulus
	var speed float64

	switch appID {
	case content.AppDotsCard:
		p, err := s.progress.LoadDots(ctx, childID)
		if err != nil {
			return nil, err
		}
		stimuli, run.cards = BuildDotsDeck(rng, p)
		run.day = p.CurrentDay
		speed = p.Speed

	case content.AppDotsCardMath:
		p, err := s.progress.LoadMath(ctx, childID)
		if err != nil {
			return nil, err
		}
		stimuli, run.equations = BuildMathDeck(rng, p)
		run.day = p.CurrentDay
		speed = p.Speed

	case content.AppEnglishFlash:
		p, err := s.progress.LoadEnglish(ctx, childID)
		if err != nil {
			return nil, err
		}
		stimuli, run.words = BuildEnglishDeck(rng, p)
		speed = p.Speed

	case content.AppHiragana:
		p, err := s.progress.LoadHiragana(ctx, childID)
		if err != nil {
			return nil, err
		}
		stimuli, run.kanas = BuildHiraganaDeck(rng, p)
		speed = p.Speed

	default:
		return nil, fmt.Errorf("%w: unknown app %q", domain.ErrInvalidInput, appID)
	}

	if len(stimuli) == 0 {
		return nil, fmt.Errorf("%w: no cards left for %s", domain.ErrInvalidState, appID)
	}
	if speed <= 0 {
		speed = 1.5
	}

	run.Steps = ExpandStimuli(rng, stimuli)
	run.StepDuration = time.Duration(speed * float64(time.Second))
	run.CardCount = len(stimuli)
	return run, nil
}

// Finalize books a completed run: bump the progress counters, append an
// activity log entry, and recheck badges. A badge failure is logged and
// swallowed; the session itself already counts.
func (s *FlashService) Finalize(ctx context.Context, run *FlashRun, elapsed time.Duration) ([]domain.BadgeDefinition, error) {
	sessionData, err := s.bumpProgress(ctx, run)
	if err != nil {
		return nil, err
	}

	entry := &domain.ActivityLog{
		ChildID:         run.ChildID,
		AppID:           run.AppID,
		DurationSeconds: int(elapsed.Seconds()),
		SessionData:     sessionData,
	}
	if err := s.activity.Create(ctx, entry); err != nil {
		return nil, fmt.Errorf("log session: %w", err)
	}

	awarded, err := s.badges.CheckAndAward(ctx, run.ChildID, run.AppID)
	if err != nil {
		s.logger.Warn("badge check failed", "child_id", run.ChildID, "app_id", run.AppID, "error", err)
		return nil, nil
	}
	return awarded, nil
}

func (s *FlashService) bumpProgress(ctx context.Context, run *FlashRun) ([]byte, error) {
	switch run.AppID {
	case content.AppDotsCard:
		p, err := s.progress.LoadDots(ctx, run.ChildID)
		if err != nil {
			return nil, err
		}
		p.TodaySessions++
		if err := s.progress.SaveDots(ctx, run.ChildID, p); err != nil {
			return nil, err
		}
		return marshalSessionData(map[string]any{"day": run.day, "cards": run.cards})

	case content.AppDotsCardMath:
		p, err := s.progress.LoadMath(ctx, run.ChildID)
		if err != nil {
			return nil, err
		}
		p.TodaySessions++
		if err := s.progress.SaveMath(ctx, run.ChildID, p); err != nil {
			return nil, err
		}
		rendered := make([]string, len(run.equations))
		for i, eq := range run.equations {
			rendered[i] = fmt.Sprintf("%d%s%d=%d", eq.A, eq.Op, eq.B, eq.Answer)
		}
		return marshalSessionData(map[string]any{"day": run.day, "equations": rendered})

	case content.AppEnglishFlash:
		p, err := s.progress.LoadEnglish(ctx, run.ChildID)
		if err != nil {
			return nil, err
		}
		p.TodaySessions++
		p.TotalSessions++
		p.LearnedWords = mergeLearned(p.LearnedWords, run.words)
		p.Level = len(p.LearnedWords)/wordsPerLevel + 1
		if err := s.progress.SaveEnglish(ctx, run.ChildID, p); err != nil {
			return nil, err
		}
		return marshalSessionData(map[string]any{"words": run.words, "level": p.Level})

	case content.AppHiragana:
		p, err := s.progress.LoadHiragana(ctx, run.ChildID)
		if err != nil {
			return nil, err
		}
		p.TodaySessions++
		p.TotalSessions++
		p.LearnedKanas = mergeLearned(p.LearnedKanas, run.kanas)
		p.Level = len(p.LearnedKanas)/wordsPerLevel + 1
		if err := s.progress.SaveHiragana(ctx, run.ChildID, p); err != nil {
			return nil, err
		}
		return marshalSessionData(map[string]any{"kanas": run.kanas, "level": p.Level})
	}
	return nil, fmt.Errorf("%w: unknown app %q", domain.ErrInvalidInput, run.AppID)
}

func marshalSessionData(v map[string]any) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode session data: %w", err)
	}
	return data, nil
}
