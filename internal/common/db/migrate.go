package db

import (
	"context"
	"database/sql"
	"embed"
	"fmt"

	_ "github.com/jackc/pgx/v4/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/AlibekovAA/interview-board/internal/common/logger"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

type gooseLogger struct {
	log *logger.Logger
}

func (g gooseLogger) Fatalf(format string, v ...interface{}) { g.log.Fatalf(format, v...) }
func (g gooseLogger) Printf(format string, v ...interface{}) { g.log.Infof(format, v...) }

// migrationLockID keys the advisory lock held while migrating.
const migrationLockID = 7_340_251

// Migrate applies the embedded schema migrations. Both services call it at
// startup, so runs are serialized with a Postgres advisory lock.
func Migrate(ctx context.Context, log *logger.Logger, databaseURL string) error {
	sqlDB, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return fmt.Errorf("migrate open db: %w", err)
	}
	defer sqlDB.Close()

	conn, err := sqlDB.Conn(ctx)
	if err != nil {
		return fmt.Errorf("migrate acquire conn: %w", err)
	}
	defer conn.Close()

	if _, err := conn.ExecContext(ctx, "SELECT pg_advisory_lock($1)", migrationLockID); err != nil {
		return fmt.Errorf("migrate lock: %w", err)
	}
	defer func() {
		if _, err := conn.ExecContext(context.Background(), "SELECT pg_advisory_unlock($1)", migrationLockID); err != nil {
			log.Warnf("migrate unlock failed: %v", err)
		}
	}()

	goose.SetBaseFS(migrationsFS)
	goose.SetLogger(gooseLogger{log: log})
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("migrate dialect: %w", err)
	}

	if err := goose.UpContext(ctx, sqlDB, "migrations"); err != nil {
		return fmt.Errorf("migrate up: %w", err)
	}
	return nil
}
