package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	_ "modernc.org/sqlite"

	"github.com/kodomo-labs/kodomo/internal/repository/sqlite/migrations"
)

// DB wraps the SQLite connection and hands out the typed repositories.
type DB struct {
	SqlDB *sql.DB
}

// New opens a SQLite database at the given path and configures it for
// use. It enables WAL mode and foreign keys.
func New(dbPath string) (*DB, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// Enable WAL mode for better concurrent read performance.
	if _, err := db.ExecContext(context.Background(), "PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable WAL mode: %w", err)
	}

	// Enable foreign key enforcement.
	if _, err := db.ExecContext(context.Background(), "PRAGMA foreign_keys=ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}

	// Single writer; keeps SQLite happy under concurrent handlers.
	db.SetMaxOpenConns(1)

	if err := db.PingContext(context.Background()); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return &DB{SqlDB: db}, nil
}

// Migrate applies all pending schema migrations.
func (d *DB) Migrate(ctx context.Context) error {
	return migrations.Run(ctx, d.SqlDB)
}

// Close closes the underlying connection.
func (d *DB) Close() error {
	return d.SqlDB.Close()
}

func (d *DB) Users() *UserRepository             { return &UserRepository{db: d.SqlDB} }
func (d *DB) Children() *ChildRepository         { return &ChildRepository{db: d.SqlDB} }
func (d *DB) TVLogins() *TVLoginRepository       { return &TVLoginRepository{db: d.SqlDB} }
func (d *DB) Progress() *ProgressRepository      { return &ProgressRepository{db: d.SqlDB} }
func (d *DB) ActivityLogs() *ActivityLogRepository { return &ActivityLogRepository{db: d.SqlDB} }
func (d *DB) Badges() *BadgeRepository           { return &BadgeRepository{db: d.SqlDB} }
func (d *DB) Schedules() *ScheduleRepository     { return &ScheduleRepository{db: d.SqlDB} }

// isUniqueConstraintError checks if the error is a SQLite unique
// constraint violation.
func isUniqueConstraintError(err error) bool {
	if err == nil || errors.Is(err, sql.ErrNoRows) {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "unique constraint")
}
