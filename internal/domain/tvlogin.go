package domain

import (
	"context"
	"time"
)

// TVLoginStatus is the lifecycle state of a pairing session.
// Transitions: pending -> approved -> expired, or pending -> expired
// on timeout. Expired is absorbing.
type TVLoginStatus string

const (
	TVLoginPending  TVLoginStatus = "pending"
	TVLoginApproved TVLoginStatus = "approved"
	TVLoginExpired  TVLoginStatus = "expired"
)

// TVLoginSession is a short-lived pairing session that lets a device
// without credential entry (a TV) be logged in by approval from an
// already-authenticated phone. The token is the sole capability; it is
// never shown to the approving user beyond the QR link.
type TVLoginSession struct {
	ID          int64
	Token       string
	Status      TVLoginStatus
	UserID      *int64
	OneTimeCode *string
	CreatedAt   time.Time
	ApprovedAt  *time.Time
}

// TVLoginRepository defines persistence operations for pairing sessions.
// The single-row updates are the serialization point for the handshake;
// the guarded Consume* operations must report whether they changed the
// row so single-use semantics can be enforced without locks.
type TVLoginRepository interface {
	Create(ctx context.Context, session *TVLoginSession) error
	GetByToken(ctx context.Context, token string) (*TVLoginSession, error)
	// Approve transitions pending -> approved and binds the user. It is
	// unguarded; callers check state first, and a concurrent last writer
	// wins.
	Approve(ctx context.Context, id int64, userID int64, approvedAt time.Time) error
	// Expire unconditionally marks the session expired.
	Expire(ctx context.Context, id int64) error
	// ConsumeApproved atomically flips approved -> expired and stores the
	// one-time code. Returns false when the session was not in the
	// approved state, which makes a second establish call fail cleanly.
	ConsumeApproved(ctx context.Context, token string, code string) (bool, error)
	// RedeemCode atomically clears a one-time code and returns the bound
	// user ID. Returns ErrNotFound for unknown or already-redeemed codes.
	RedeemCode(ctx context.Context, code string) (int64, error)
}
