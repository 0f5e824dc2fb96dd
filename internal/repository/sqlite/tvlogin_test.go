package sqlite_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/kodomo-labs/kodomo/internal/domain"
)

func TestTVLoginRepository_Lifecycle(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	user := createTestUser(t, db, "tv@example.com")

	session := &domain.TVLoginSession{
		Token:     "tok-lifecycle",
		Status:    domain.TVLoginPending,
		CreatedAt: time.Now().UTC(),
	}
	if err := db.TVLogins().Create(ctx, session); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if session.ID == 0 {
		t.Fatal("expected session ID to be set")
	}

	got, err := db.TVLogins().GetByToken(ctx, "tok-lifecycle")
	if err != nil {
		t.Fatalf("GetByToken: %v", err)
	}
	if got.Status != domain.TVLoginPending {
		t.Fatalf("expected pending, got %s", got.Status)
	}

	if err := db.TVLogins().Approve(ctx, session.ID, user.ID, time.Now().UTC()); err != nil {
		t.Fatalf("Approve: %v", err)
	}

	got, err = db.TVLogins().GetByToken(ctx, "tok-lifecycle")
	if err != nil {
		t.Fatalf("GetByToken after approve: %v", err)
	}
	if got.Status != domain.TVLoginApproved {
		t.Fatalf("expected approved, got %s", got.Status)
	}
	if got.UserID == nil || *got.UserID != user.ID {
		t.Fatal("expected user to be bound after approve")
	}
	if got.ApprovedAt == nil {
		t.Fatal("expected approved_at to be set")
	}
}

func TestTVLoginRepository_GetByToken_NotFound(t *testing.T) {
	db := newTestDB(t)

	_, err := db.TVLogins().GetByToken(context.Background(), "missing")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestTVLoginRepository_ConsumeApproved_SingleUse(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	user := createTestUser(t, db, "consume@example.com")

	session := &domain.TVLoginSession{
		Token:     "tok-consume",
		Status:    domain.TVLoginPending,
		CreatedAt: time.Now().UTC(),
	}
	if err := db.TVLogins().Create(ctx, session); err != nil {
		t.Fatalf("Create: %v", err)
	}

	// Not approved yet: consume must refuse.
	ok, err := db.TVLogins().ConsumeApproved(ctx, "tok-consume", "code-1")
	if err != nil {
		t.Fatalf("ConsumeApproved: %v", err)
	}
	if ok {
		t.Fatal("expected consume of pending session to fail")
	}

	if err := db.TVLogins().Approve(ctx, session.ID, user.ID, time.Now().UTC()); err != nil {
		t.Fatalf("Approve: %v", err)
	}

	ok, err = db.TVLogins().ConsumeApproved(ctx, "tok-consume", "code-1")
	if err != nil {
		t.Fatalf("ConsumeApproved: %v", err)
	}
	if !ok {
		t.Fatal("expected first consume to succeed")
	}

	// Second consume loses.
	ok, err = db.TVLogins().ConsumeApproved(ctx, "tok-consume", "code-2")
	if err != nil {
		t.Fatalf("ConsumeApproved second: %v", err)
	}
	if ok {
		t.Fatal("expected second consume to fail")
	}
}

func TestTVLoginRepository_RedeemCode_SingleUse(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	user := createTestUser(t, db, "redeem@example.com")

	session := &domain.TVLoginSession{
		Token:     "tok-redeem",
		Status:    domain.TVLoginPending,
		CreatedAt: time.Now().UTC(),
	}
	if err := db.TVLogins().Create(ctx, session); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := db.TVLogins().Approve(ctx, session.ID, user.ID, time.Now().UTC()); err != nil {
		t.Fatalf("Approve: %v", err)
	}
	if ok, err := db.TVLogins().ConsumeApproved(ctx, "tok-redeem", "code-x"); err != nil || !ok {
		t.Fatalf("ConsumeApproved: ok=%v err=%v", ok, err)
	}

	userID, err := db.TVLogins().RedeemCode(ctx, "code-x")
	if err != nil {
		t.Fatalf("RedeemCode: %v", err)
	}
	if userID != user.ID {
		t.Fatalf("expected user %d, got %d", user.ID, userID)
	}

	if _, err := db.TVLogins().RedeemCode(ctx, "code-x"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound on second redeem, got %v", err)
	}
}
