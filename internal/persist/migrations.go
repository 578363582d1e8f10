package persist

import (
	"context"
	"embed"
	"fmt"

	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

// The frame_journal schema ships inside the binary so a host only needs a
// DSN to start journaling.
//
//go:embed migrations/*.sql
var migrations embed.FS

// RunMigrations brings the frame_journal table and its (run_id, frame)
// index up to date. goose's own output is silenced; failures surface as
// errors to the host.
func RunMigrations(ctx context.Context, db *DB) error {
	goose.SetLogger(goose.NopLogger())
	goose.SetBaseFS(migrations)
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("journal migrations: set dialect: %w", err)
	}

	sqlDB := stdlib.OpenDBFromPool(db.Pool)
	defer sqlDB.Close()

	if err := goose.UpContext(ctx, sqlDB, "migrations"); err != nil {
		return fmt.Errorf("journal migrations: up: %w", err)
	}
	return nil
}
