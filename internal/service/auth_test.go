package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/kodomo-labs/kodomo/internal/domain"
	"github.com/kodomo-labs/kodomo/internal/service"
)

const testJWTSecret = "test-secret-key-for-unit-tests"

func newTestAuthService(t *testing.T) *service.AuthService {
	t.Helper()
	db := newTestDB(t)
	// Use cost 4 for fast tests.
	return service.NewAuthService(db.Users(), testJWTSecret, 4)
}

func TestAuthService_Register_Success(t *testing.T) {
	auth := newTestAuthService(t)
	ctx := context.Background()

	user, err := auth.Register(ctx, "new@example.com", "New Parent", "password123", "password123")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if user.ID == 0 {
		t.Fatal("expected user ID to be set")
	}
	if user.Email != "new@example.com" {
		t.Fatalf("expected email new@example.com, got %s", user.Email)
	}
}

func TestAuthService_Register_PasswordMismatch(t *testing.T) {
	auth := newTestAuthService(t)

	_, err := auth.Register(context.Background(), "a@example.com", "A", "password123", "password456")
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestAuthService_Register_ShortPassword(t *testing.T) {
	auth := newTestAuthService(t)

	_, err := auth.Register(context.Background(), "a@example.com", "A", "short", "short")
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestAuthService_LoginAndValidate(t *testing.T) {
	auth := newTestAuthService(t)
	ctx := context.Background()

	user, err := auth.Register(ctx, "login@example.com", "Login", "password123", "password123")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	token, err := auth.Login(ctx, "login@example.com", "password123")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}

	userID, err := auth.ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}
	if userID != user.ID {
		t.Fatalf("expected user %d, got %d", user.ID, userID)
	}
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	auth := newTestAuthService(t)
	ctx := context.Background()

	if _, err := auth.Register(ctx, "wrong@example.com", "W", "password123", "password123"); err != nil {
		t.Fatalf("Register: %v", err)
	}

	_, err := auth.Login(ctx, "wrong@example.com", "nope-nope-nope")
	if !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestAuthService_ValidateToken_Garbage(t *testing.T) {
	auth := newTestAuthService(t)

	if _, err := auth.ValidateToken("not-a-jwt"); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestChildService_OwnershipHidesForeignChildren(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	parentA := createTestUser(t, db, "a@example.com")
	parentB := createTestUser(t, db, "b@example.com")
	child := createTestChild(t, db, parentA.ID, "ゆうと")

	children := service.NewChildService(db.Children())

	if _, err := children.GetOwned(ctx, parentA.ID, child.ID); err != nil {
		t.Fatalf("owner lookup: %v", err)
	}

	_, err := children.GetOwned(ctx, parentB.ID, child.ID)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for foreign child, got %v", err)
	}
}

func TestChildService_Create_Validation(t *testing.T) {
	db := newTestDB(t)
	user := createTestUser(t, db, "val@example.com")
	children := service.NewChildService(db.Children())

	if _, err := children.Create(context.Background(), user.ID, "   "); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for blank name, got %v", err)
	}
}
