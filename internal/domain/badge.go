package domain

import (
	"context"
	"time"
)

// BadgeDefinition is a static badge the gamification layer can award.
// Definitions are seeded at startup; IDs are stable strings.
type BadgeDefinition struct {
	ID          string
	Name        string
	Icon        string
	Description string
}

// EarnedBadge records that a child earned a badge. A badge is earned at
// most once per child.
type EarnedBadge struct {
	ChildID  int64
	BadgeID  string
	EarnedAt time.Time
}

// BadgeRepository defines persistence operations for badge definitions
// and earned badges.
type BadgeRepository interface {
	UpsertDefinition(ctx context.Context, def *BadgeDefinition) error
	ListDefinitions(ctx context.Context) ([]BadgeDefinition, error)
	// Award inserts an earned badge. Returns false when the child already
	// has it.
	Award(ctx context.Context, childID int64, badgeID string) (bool, error)
	ListEarnedByChild(ctx context.Context, childID int64) ([]EarnedBadge, error)
}
