package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AlibekovAA/interview-board/internal/submission/domain"
)

func newMockRepo(t *testing.T) (*PgRepository, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return NewPgRepository(mock), mock
}

func TestPgRepository_Insert(t *testing.T) {
	repo, mock := newMockRepo(t)
	created := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta(
		`INSERT INTO submissions (id, name, country, company, questions, user_id) VALUES ($1, $2, $3, $4, $5, $6) RETURNING created_at, updated_at`,
	)).
		WithArgs("sub-1", "Backend", "Germany", "Acme", []string{"q1", "q2"}, "user-1").
		WillReturnRows(pgxmock.NewRows([]string{"created_at", "updated_at"}).AddRow(created, created))

	got, err := repo.Insert(context.Background(), domain.Submission{
		ID:        "sub-1",
		Name:      "Backend",
		Country:   "Germany",
		Company:   "Acme",
		Questions: []string{"q1", "q2"},
		UserID:    "user-1",
	})
	require.NoError(t, err)
	assert.Equal(t, "sub-1", got.ID)
	assert.Equal(t, created, got.CreatedAt)
	assert.Equal(t, created, got.UpdatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPgRepository_InsertError(t *testing.T) {
	repo, mock := newMockRepo(t)
	boom := errors.New("connection reset")

	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO submissions`)).WillReturnError(boom)

	_, err := repo.Insert(context.Background(), domain.Submission{ID: "sub-1", UserID: "user-1"})
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPgRepository_FindPage(t *testing.T) {
	repo, mock := newMockRepo(t)
	newer := time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC)
	older := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta(
		`FROM submissions s JOIN users u ON u.id = s.user_id ORDER BY s.created_at DESC, s.id DESC OFFSET $1 LIMIT $2`,
	)).
		WithArgs(20, 10).
		WillReturnRows(pgxmock.NewRows([]string{
			"id", "name", "country", "company", "questions", "user_id",
			"created_at", "updated_at", "name", "email",
		}).
			AddRow("sub-2", "Go dev", "Spain", "Initech", []string{"a"}, "user-2", newer, newer, "Bob", "bob@example.com").
			AddRow("sub-1", "Backend", "Germany", "Acme", []string{"b", "c"}, "user-1", older, older, "Alice", "alice@example.com"))

	got, err := repo.FindPage(context.Background(), 20, 10)
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, "sub-2", got[0].ID)
	assert.Equal(t, "user-2", got[0].UserID)
	require.NotNil(t, got[0].User)
	assert.Equal(t, domain.Author{Name: "Bob", Email: "bob@example.com"}, *got[0].User)

	assert.Equal(t, "sub-1", got[1].ID)
	assert.Equal(t, []string{"b", "c"}, got[1].Questions)
	assert.Equal(t, older, got[1].CreatedAt)
	require.NotNil(t, got[1].User)
	assert.Equal(t, "Alice", got[1].User.Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPgRepository_FindPageEmpty(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta(`OFFSET $1 LIMIT $2`)).
		WithArgs(1000, 10).
		WillReturnRows(pgxmock.NewRows([]string{
			"id", "name", "country", "company", "questions", "user_id",
			"created_at", "updated_at", "name", "email",
		}))

	got, err := repo.FindPage(context.Background(), 1000, 10)
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPgRepository_FindPageError(t *testing.T) {
	repo, mock := newMockRepo(t)
	boom := errors.New("timeout")

	mock.ExpectQuery(regexp.QuoteMeta(`FROM submissions s`)).WithArgs(0, 10).WillReturnError(boom)

	got, err := repo.FindPage(context.Background(), 0, 10)
	assert.Nil(t, got)
	assert.ErrorIs(t, err, boom)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPgRepository_Count(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT COUNT(*) FROM submissions`)).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(42))

	total, err := repo.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 42, total)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPgRepository_CountError(t *testing.T) {
	repo, mock := newMockRepo(t)
	boom := errors.New("disk full")

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT COUNT(*) FROM submissions`)).WillReturnError(boom)

	total, err := repo.Count(context.Background())
	assert.Zero(t, total)
	assert.ErrorIs(t, err, boom)
	assert.NoError(t, mock.ExpectationsWereMet())
}
