package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"

	"github.com/AlibekovAA/interview-board/internal/common/db"
)

type RevokedTokenRepository interface {
	Revoke(ctx context.Context, jti string, userID string, expiresAt time.Time) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
	DeleteExpired(ctx context.Context) (int64, error)
}

type PgRevokedTokenRepository struct {
	pool *pgxpool.Pool
}

func NewPgRevokedTokenRepository(pool *pgxpool.Pool) *PgRevokedTokenRepository {
	return &PgRevokedTokenRepository{pool: pool}
}

func (r *PgRevokedTokenRepository) Revoke(ctx context.Context, jti string, userID string, expiresAt time.Time) error {
	q := db.StartQuery("revoke access token", "revoked_tokens")
	_, err := r.pool.Exec(
		ctx,
		`INSERT INTO revoked_tokens (jti, user_id, expires_at)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (jti) DO NOTHING`,
		jti,
		userID,
		expiresAt,
	)
	return q.Done(err, nil)
}

func (r *PgRevokedTokenRepository) IsRevoked(ctx context.Context, jti string) (bool, error) {
	q := db.StartQuery("check revoked token", "revoked_tokens")
	var revoked bool
	err := r.pool.QueryRow(
		ctx,
		`SELECT EXISTS(SELECT 1 FROM revoked_tokens WHERE jti = $1 AND expires_at > NOW())`,
		jti,
	).Scan(&revoked)
	if err := q.Done(err, nil); err != nil {
		return false, err
	}
	return revoked, nil
}

func (r *PgRevokedTokenRepository) DeleteExpired(ctx context.Context) (int64, error) {
	q := db.StartQuery("delete expired revoked tokens", "revoked_tokens")
	tag, err := r.pool.Exec(ctx, `DELETE FROM revoked_tokens WHERE expires_at < NOW()`)
	if err := q.Done(err, nil); err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
