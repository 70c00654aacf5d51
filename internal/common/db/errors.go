package db

import (
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgconn"
	pgx "github.com/jackc/pgx/v4"

	"github.com/AlibekovAA/interview-board/internal/observability/metrics"
)

const pgUniqueViolation = "23505"

// Query names the statement being timed: Operation is a short verb phrase
// ("insert submission"), Table the relation it targets.
type Query struct {
	Operation string
	Table     string
	Start     time.Time
}

func StartQuery(operation, table string) Query {
	return Query{Operation: operation, Table: table, Start: time.Now()}
}

func (q Query) observe() {
	metrics.DBQueryDurationSeconds.WithLabelValues(q.Operation, q.Table).Observe(time.Since(q.Start).Seconds())
}

// Done records the query duration and, on failure, the error class. A
// pgx.ErrNoRows becomes notFoundErr when one is given.
func (q Query) Done(err error, notFoundErr error) error {
	q.observe()

	if err == nil {
		return nil
	}
	if notFoundErr != nil && errors.Is(err, pgx.ErrNoRows) {
		return notFoundErr
	}
	metrics.DBQueryErrors.WithLabelValues(q.Operation, q.Table, errorType(err)).Inc()
	return fmt.Errorf("failed to %s: %w", q.Operation, err)
}

func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}

func errorType(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return "pg_" + pgErr.Code
	}
	return fmt.Sprintf("%T", err)
}
