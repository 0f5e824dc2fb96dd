package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/kodomo-labs/kodomo/internal/domain"
)

// tvLoginValidity is how long a pairing session stays approvable after
// creation.
const tvLoginValidity = 5 * time.Minute

// TVLoginService implements the TV pairing handshake: the TV creates a
// session and polls it, a logged-in phone approves it, and the TV then
// trades the approval for a one-time code that mints its own session.
type TVLoginService struct {
	sessions domain.TVLoginRepository
	clock    clockwork.Clock
}

// NewTVLoginService creates a new TVLoginService.
func NewTVLoginService(sessions domain.TVLoginRepository, clock clockwork.Clock) *TVLoginService {
	return &TVLoginService{sessions: sessions, clock: clock}
}

// CreateSession starts a new pairing session with a fresh random token.
func (s *TVLoginService) CreateSession(ctx context.Context) (*domain.TVLoginSession, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return nil, fmt.Errorf("generate pairing token: %w", err)
	}

	session := &domain.TVLoginSession{
		Token:     hex.EncodeToString(buf),
		Status:    domain.TVLoginPending,
		CreatedAt: s.clock.Now().UTC(),
	}
	if err := s.sessions.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("create pairing session: %w", err)
	}
	return session, nil
}

// PollStatus reports the current state of a pairing session. The answer
// is advisory; a poll seeing "approved" does not reserve anything, and
// only EstablishSession consumes the approval.
func (s *TVLoginService) PollStatus(ctx context.Context, token string) (*domain.TVLoginSession, error) {
	if token == "" {
		return nil, fmt.Errorf("%w: token is required", domain.ErrInvalidInput)
	}
	session, err := s.sessions.GetByToken(ctx, token)
	if err != nil {
		return nil, err
	}
	if session.Status == domain.TVLoginPending && s.expired(session) {
		session.Status = domain.TVLoginExpired
	}
	return session, nil
}

// Approve binds the authenticated user to a pending session. A session
// older than the validity window is flipped to expired instead, and the
// caller gets ErrExpired so the phone can tell the user to restart on
// the TV.
func (s *TVLoginService) Approve(ctx context.Context, token string, userID int64) error {
	if token == "" {
		return fmt.Errorf("%w: token is required", domain.ErrInvalidInput)
	}

	session, err := s.sessions.GetByToken(ctx, token)
	if err != nil {
		return err
	}

	if session.Status != domain.TVLoginPending {
		return fmt.Errorf("%w: session is %s", domain.ErrInvalidState, session.Status)
	}

	if s.expired(session) {
		if err := s.sessions.Expire(ctx, session.ID); err != nil {
			return fmt.Errorf("expire pairing session: %w", err)
		}
		return domain.ErrExpired
	}

	if err := s.sessions.Approve(ctx, session.ID, userID, s.clock.Now().UTC()); err != nil {
		return fmt.Errorf("approve pairing session: %w", err)
	}
	return nil
}

// EstablishSession consumes an approved session exactly once and
// returns a one-time login code for the TV. The consume is a guarded
// update, so a concurrent second call loses and gets ErrInvalidState.
func (s *TVLoginService) EstablishSession(ctx context.Context, token string) (string, error) {
	if token == "" {
		return "", fmt.Errorf("%w: token is required", domain.ErrInvalidInput)
	}

	if _, err := s.sessions.GetByToken(ctx, token); err != nil {
		return "", err
	}

	code := uuid.NewString()
	consumed, err := s.sessions.ConsumeApproved(ctx, token, code)
	if err != nil {
		return "", fmt.Errorf("consume pairing session: %w", err)
	}
	if !consumed {
		return "", fmt.Errorf("%w: session is not approved", domain.ErrInvalidState)
	}
	return code, nil
}

// RedeemCode exchanges a one-time code for the bound user ID. Each code
// redeems at most once.
func (s *TVLoginService) RedeemCode(ctx context.Context, code string) (int64, error) {
	if code == "" {
		return 0, fmt.Errorf("%w: code is required", domain.ErrInvalidInput)
	}
	return s.sessions.RedeemCode(ctx, code)
}

func (s *TVLoginService) expired(session *domain.TVLoginSession) bool {
	return s.clock.Now().Sub(session.CreatedAt) > tvLoginValidity
}
