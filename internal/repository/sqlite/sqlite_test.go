package sqlite_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/kodomo-labs/kodomo/internal/domain"
	"github.com/kodomo-labs/kodomo/internal/repository/sqlite"
)

// Verify that *sqlite.DB implements domain.Database at compile time.
var _ domain.Database = (*sqlite.DB)(nil)

func newTestDB(t *testing.T) *sqlite.DB {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	db, err := sqlite.New(dbPath)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := db.Migrate(context.Background()); err != nil {
		t.Fatalf("Migrate: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func createTestUser(t *testing.T, db *sqlite.DB, email string) *domain.User {
	t.Helper()
	user := &domain.User{Email: email, DisplayName: "Test Parent", PasswordHash: "x"}
	if err := db.Users().Create(context.Background(), user); err != nil {
		t.Fatalf("create user: %v", err)
	}
	return user
}

func createTestChild(t *testing.T, db *sqlite.DB, parentID int64, name string) *domain.Child {
	t.Helper()
	child := &domain.Child{ParentID: parentID, Name: name}
	if err := db.Children().Create(context.Background(), child); err != nil {
		t.Fatalf("create child: %v", err)
	}
	return child
}

func TestNew(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	db, err := sqlite.New(dbPath)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer db.Close()

	// Verify the file was created.
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Fatal("database file was not created")
	}

	// Verify we can ping the database.
	if err := db.SqlDB.Ping(); err != nil {
		t.Fatalf("ping: %v", err)
	}

	// Verify foreign keys are enabled.
	var fkEnabled int
	if err := db.SqlDB.QueryRow("PRAGMA foreign_keys").Scan(&fkEnabled); err != nil {
		t.Fatalf("check foreign_keys: %v", err)
	}
	if fkEnabled != 1 {
		t.Fatalf("expected foreign_keys=1, got %d", fkEnabled)
	}
}

func TestMigrate_Idempotent(t *testing.T) {
	db := newTestDB(t)

	// A second run must be a no-op.
	if err := db.Migrate(context.Background()); err != nil {
		t.Fatalf("second Migrate: %v", err)
	}

	var count int
	err := db.SqlDB.QueryRow("SELECT COUNT(*) FROM schema_migrations").Scan(&count)
	if err != nil {
		t.Fatalf("count migrations: %v", err)
	}
	if count == 0 {
		t.Fatal("expected at least one applied migration")
	}
}

func TestUserRepository_DuplicateEmail(t *testing.T) {
	db := newTestDB(t)
	createTestUser(t, db, "dup@example.com")

	err := db.Users().Create(context.Background(), &domain.User{
		Email: "dup@example.com", DisplayName: "Other", PasswordHash: "y",
	})
	if err == nil {
		t.Fatal("expected duplicate email error")
	}
}

func TestChildRepository_CascadeDelete(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	user := createTestUser(t, db, "parent@example.com")
	child := createTestChild(t, db, user.ID, "たろう")

	if err := db.Progress().Upsert(ctx, &domain.Progress{
		ChildID: child.ID, AppID: "dots-card", Data: []byte(`{"currentDay":1}`),
	}); err != nil {
		t.Fatalf("upsert progress: %v", err)
	}

	if err := db.Children().Delete(ctx, child.ID); err != nil {
		t.Fatalf("delete child: %v", err)
	}

	if _, err := db.Progress().Get(ctx, child.ID, "dots-card"); err == nil {
		t.Fatal("expected progress rows to be removed with the child")
	}
}
