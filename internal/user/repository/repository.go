package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v4/pgxpool"

	"github.com/AlibekovAA/interview-board/internal/common/db"
	"github.com/AlibekovAA/interview-board/internal/user/domain"
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailAlreadyExists = errors.New("email already exists")
)

type Repository interface {
	Create(ctx context.Context, user domain.User) (domain.User, error)
	FindByEmail(ctx context.Context, email string) (domain.User, error)
	FindByID(ctx context.Context, id domain.ID) (domain.User, error)
}

type PgRepository struct {
	pool *pgxpool.Pool
}

func NewPgRepository(pool *pgxpool.Pool) *PgRepository {
	return &PgRepository{pool: pool}
}

func (r *PgRepository) Create(ctx context.Context, user domain.User) (domain.User, error) {
	q := db.StartQuery("create user", "users")
	row := r.pool.QueryRow(
		ctx,
		`INSERT INTO users (id, name, email, password_hash)
		 VALUES ($1, $2, $3, $4)
		 RETURNING created_at`,
		string(user.ID),
		user.Name,
		user.Email,
		user.PasswordHash,
	)

	err := row.Scan(&user.CreatedAt)
	if err != nil && db.IsUniqueViolation(err) {
		q.Done(nil, nil)
		return domain.User{}, ErrEmailAlreadyExists
	}
	if err := q.Done(err, nil); err != nil {
		return domain.User{}, err
	}
	return user, nil
}

func (r *PgRepository) FindByEmail(ctx context.Context, email string) (domain.User, error) {
	q := db.StartQuery("find user by email", "users")
	row := r.pool.QueryRow(
		ctx,
		`SELECT id, name, email, password_hash, created_at FROM users WHERE email = $1`,
		email,
	)

	var user domain.User
	err := row.Scan(&user.ID, &user.Name, &user.Email, &user.PasswordHash, &user.CreatedAt)
	if err := q.Done(err, ErrUserNotFound); err != nil {
		return domain.User{}, err
	}
	return user, nil
}

func (r *PgRepository) FindByID(ctx context.Context, id domain.ID) (domain.User, error) {
	q := db.StartQuery("find user by id", "users")
	row := r.pool.QueryRow(
		ctx,
		`SELECT id, name, email, password_hash, created_at FROM users WHERE id = $1`,
		string(id),
	)

	var user domain.User
	err := row.Scan(&user.ID, &user.Name, &user.Email, &user.PasswordHash, &user.CreatedAt)
	if err := q.Done(err, ErrUserNotFound); err != nil {
		return domain.User{}, err
	}
	return user, nil
}
