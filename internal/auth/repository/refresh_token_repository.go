package repository

import (
	"context"
	"errors"

	pgx "github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	authdomain "github.com/AlibekovAA/interview-board/internal/auth/domain"
	"github.com/AlibekovAA/interview-board/internal/common/constants"
	"github.com/AlibekovAA/interview-board/internal/common/db"
)

var ErrRefreshTokenNotFound = errors.New("refresh token not found")

type RefreshTokenRepository interface {
	Create(ctx context.Context, token authdomain.RefreshToken) error
	// Consume atomically deletes the token and returns what was stored.
	Consume(ctx context.Context, hash string) (authdomain.RefreshToken, error)
	DeleteByTokenHash(ctx context.Context, hash string) error
	DeleteExcessByUserID(ctx context.Context, userID string, keep int) error
	DeleteExpired(ctx context.Context) (int64, error)
}

type PgRefreshTokenRepository struct {
	pool *pgxpool.Pool
}

func NewPgRefreshTokenRepository(pool *pgxpool.Pool) *PgRefreshTokenRepository {
	return &PgRefreshTokenRepository{pool: pool}
}

func (r *PgRefreshTokenRepository) Create(ctx context.Context, token authdomain.RefreshToken) error {
	q := db.StartQuery("create refresh token", "refresh_tokens")
	_, err := r.pool.Exec(
		ctx,
		`INSERT INTO refresh_tokens (id, token_hash, user_id, expires_at, created_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		token.ID,
		token.TokenHash,
		token.UserID,
		token.ExpiresAt,
		token.CreatedAt,
	)
	return q.Done(err, nil)
}

func (r *PgRefreshTokenRepository) Consume(ctx context.Context, hash string) (authdomain.RefreshToken, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DBQueryTimeout)
	defer cancel()

	var token authdomain.RefreshToken
	err := db.WithTx(ctx, r.pool, func(ctx context.Context, tx pgx.Tx) error {
		q := db.StartQuery("lock refresh token", "refresh_tokens")
		row := tx.QueryRow(
			ctx,
			`SELECT id, token_hash, user_id, expires_at, created_at
			 FROM refresh_tokens
			 WHERE token_hash = $1
			 FOR UPDATE`,
			hash,
		)
		err := row.Scan(&token.ID, &token.TokenHash, &token.UserID, &token.ExpiresAt, &token.CreatedAt)
		if err := q.Done(err, ErrRefreshTokenNotFound); err != nil {
			return err
		}

		q = db.StartQuery("delete refresh token", "refresh_tokens")
		_, err = tx.Exec(ctx, `DELETE FROM refresh_tokens WHERE id = $1`, token.ID)
		return q.Done(err, nil)
	})
	if err != nil {
		return authdomain.RefreshToken{}, err
	}
	return token, nil
}

func (r *PgRefreshTokenRepository) DeleteByTokenHash(ctx context.Context, hash string) error {
	q := db.StartQuery("delete refresh token", "refresh_tokens")
	tag, err := r.pool.Exec(ctx, `DELETE FROM refresh_tokens WHERE token_hash = $1`, hash)
	if err := q.Done(err, nil); err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrRefreshTokenNotFound
	}
	return nil
}

// DeleteExcessByUserID keeps only the newest keep tokens of a user.
func (r *PgRefreshTokenRepository) DeleteExcessByUserID(ctx context.Context, userID string, keep int) error {
	q := db.StartQuery("delete excess refresh tokens", "refresh_tokens")
	_, err := r.pool.Exec(
		ctx,
		`DELETE FROM refresh_tokens
		 WHERE user_id = $1
		   AND id NOT IN (
		       SELECT id FROM refresh_tokens
		       WHERE user_id = $1
		       ORDER BY created_at DESC
		       LIMIT $2
		   )`,
		userID,
		keep,
	)
	return q.Done(err, nil)
}

func (r *PgRefreshTokenRepository) DeleteExpired(ctx context.Context) (int64, error) {
	q := db.StartQuery("delete expired refresh tokens", "refresh_tokens")
	tag, err := r.pool.Exec(ctx, `DELETE FROM refresh_tokens WHERE expires_at < NOW()`)
	if err := q.Done(err, nil); err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
