package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/kodomo-labs/kodomo/internal/domain"
)

// TVLoginRepository implements domain.TVLoginRepository using SQLite.
type TVLoginRepository struct {
	db *sql.DB
}

func (r *TVLoginRepository) Create(ctx context.Context, session *domain.TVLoginSession) error {
	now := time.Now().UTC()
	if !session.CreatedAt.IsZero() {
		now = session.CreatedAt
	}
	result, err := r.db.ExecContext(ctx,
		`INSERT INTO tv_login_sessions (token, status, created_at) VALUES (?, ?, ?)`,
		session.Token, domain.TVLoginPending, now,
	)
	if err != nil {
		return fmt.Errorf("insert tv login session: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("get tv login session id: %w", err)
	}

	session.ID = id
	session.Status = domain.TVLoginPending
	session.CreatedAt = now
	return nil
}

func (r *TVLoginRepository) GetByToken(ctx context.Context, token string) (*domain.TVLoginSession, error) {
	s := &domain.TVLoginSession{}
	err := r.db.QueryRowContext(ctx,
		`SELECT id, token, status, user_id, one_time_code, created_at, approved_at
		 FROM tv_login_sessions WHERE token = ?`, token,
	).Scan(&s.ID, &s.Token, &s.Status, &s.UserID, &s.OneTimeCode, &s.CreatedAt, &s.ApprovedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("query tv login session: %w", err)
	}
	return s, nil
}

func (r *TVLoginRepository) Approve(ctx context.Context, id int64, userID int64, approvedAt time.Time) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE tv_login_sessions SET status = ?, user_id = ?, approved_at = ? WHERE id = ?`,
		domain.TVLoginApproved, userID, approvedAt.UTC(), id,
	)
	if err != nil {
		return fmt.Errorf("approve tv login session: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *TVLoginRepository) Expire(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE tv_login_sessions SET status = ? WHERE id = ?`,
		domain.TVLoginExpired, id,
	)
	if err != nil {
		return fmt.Errorf("expire tv login session: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ConsumeApproved is the single-use gate of the handshake: the guarded
// UPDATE only matches while the row is still approved, so exactly one
// caller wins even under concurrent establish calls.
func (r *TVLoginRepository) ConsumeApproved(ctx context.Context, token string, code string) (bool, error) {
	result, err := r.db.ExecContext(ctx,
		`UPDATE tv_login_sessions SET status = ?, one_time_code = ?
		 WHERE token = ? AND status = ? AND user_id IS NOT NULL`,
		domain.TVLoginExpired, code, token, domain.TVLoginApproved,
	)
	if err != nil {
		return false, fmt.Errorf("consume tv login session: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}
	return rows == 1, nil
}

func (r *TVLoginRepository) RedeemCode(ctx context.Context, code string) (int64, error) {
	var id, userID int64
	err := r.db.QueryRowContext(ctx,
		`SELECT id, user_id FROM tv_login_sessions WHERE one_time_code = ?`, code,
	).Scan(&id, &userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, domain.ErrNotFound
		}
		return 0, fmt.Errorf("query one-time code: %w", err)
	}

	result, err := r.db.ExecContext(ctx,
		`UPDATE tv_login_sessions SET one_time_code = NULL WHERE id = ? AND one_time_code = ?`,
		id, code,
	)
	if err != nil {
		return 0, fmt.Errorf("redeem one-time code: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected: %w", err)
	}
	if rows == 0 {
		// Lost the race to a concurrent redemption.
		return 0, domain.ErrNotFound
	}
	return userID, nil
}
