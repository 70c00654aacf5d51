package repository

import (
	"context"

	pgx "github.com/jackc/pgx/v4"

	"github.com/AlibekovAA/interview-board/internal/common/db"
	"github.com/AlibekovAA/interview-board/internal/submission/domain"
)

type Repository interface {
	Insert(ctx context.Context, s domain.Submission) (domain.Submission, error)
	FindPage(ctx context.Context, skip, take int) ([]domain.Submission, error)
	Count(ctx context.Context) (int, error)
}

// Querier is the part of *pgxpool.Pool the repository uses.
type Querier interface {
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
}

type PgRepository struct {
	pool Querier
}

func NewPgRepository(pool Querier) *PgRepository {
	return &PgRepository{pool: pool}
}

func (r *PgRepository) Insert(ctx context.Context, s domain.Submission) (domain.Submission, error) {
	q := db.StartQuery("insert submission", "submissions")
	row := r.pool.QueryRow(
		ctx,
		`INSERT INTO submissions (id, name, country, company, questions, user_id)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING created_at, updated_at`,
		s.ID,
		s.Name,
		s.Country,
		s.Company,
		s.Questions,
		s.UserID,
	)

	err := row.Scan(&s.CreatedAt, &s.UpdatedAt)
	if err := q.Done(err, nil); err != nil {
		return domain.Submission{}, err
	}
	return s, nil
}

// FindPage returns at most take submissions, newest first, after skipping
// skip of them. Each carries its author's name and email.
func (r *PgRepository) FindPage(ctx context.Context, skip, take int) ([]domain.Submission, error) {
	q := db.StartQuery("find submission page", "submissions")
	rows, err := r.pool.Query(
		ctx,
		`SELECT s.id, s.name, s.country, s.company, s.questions, s.user_id,
		        s.created_at, s.updated_at, u.name, u.email
		 FROM submissions s
		 JOIN users u ON u.id = s.user_id
		 ORDER BY s.created_at DESC, s.id DESC
		 OFFSET $1 LIMIT $2`,
		skip,
		take,
	)
	if err != nil {
		return nil, q.Done(err, nil)
	}
	defer rows.Close()

	result := []domain.Submission{}
	for rows.Next() {
		var (
			s      domain.Submission
			author domain.Author
		)
		if err := rows.Scan(
			&s.ID,
			&s.Name,
			&s.Country,
			&s.Company,
			&s.Questions,
			&s.UserID,
			&s.CreatedAt,
			&s.UpdatedAt,
			&author.Name,
			&author.Email,
		); err != nil {
			return nil, q.Done(err, nil)
		}
		s.User = &author
		result = append(result, s)
	}

	if err := q.Done(rows.Err(), nil); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *PgRepository) Count(ctx context.Context) (int, error) {
	q := db.StartQuery("count submissions", "submissions")
	var total int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM submissions`).Scan(&total)
	if err := q.Done(err, nil); err != nil {
		return 0, err
	}
	return total, nil
}
