package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AlibekovAA/interview-board/internal/common/config"
	commoncrypto "github.com/AlibekovAA/interview-board/internal/common/crypto"
	commonerrors "github.com/AlibekovAA/interview-board/internal/common/errors"
	"github.com/AlibekovAA/interview-board/internal/common/jwtverify"
	"github.com/AlibekovAA/interview-board/internal/common/logger"
	"github.com/AlibekovAA/interview-board/internal/submission/domain"
	submissionhttp "github.com/AlibekovAA/interview-board/internal/submission/http"
	"github.com/AlibekovAA/interview-board/internal/submission/service"
)

const testSecret = "0123456789abcdef0123456789abcdef"

type mockRepo struct {
	insertFunc   func(ctx context.Context, s domain.Submission) (domain.Submission, error)
	findPageFunc func(ctx context.Context, skip, take int) ([]domain.Submission, error)
	countFunc    func(ctx context.Context) (int, error)
	inserts      int
}

func (m *mockRepo) Insert(ctx context.Context, s domain.Submission) (domain.Submission, error) {
	m.inserts++
	if m.insertFunc != nil {
		return m.insertFunc(ctx, s)
	}
	s.CreatedAt = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	s.UpdatedAt = s.CreatedAt
	return s, nil
}

func (m *mockRepo) FindPage(ctx context.Context, skip, take int) ([]domain.Submission, error) {
	if m.findPageFunc != nil {
		return m.findPageFunc(ctx, skip, take)
	}
	return []domain.Submission{}, nil
}

func (m *mockRepo) Count(ctx context.Context) (int, error) {
	if m.countFunc != nil {
		return m.countFunc(ctx)
	}
	return 0, nil
}

type noRevocations struct{}

func (noRevocations) IsRevoked(ctx context.Context, jti string) (bool, error) {
	return false, nil
}

func newHandler(repo *mockRepo, limit int) http.Handler {
	log := logger.NewWithWriter(&bytes.Buffer{}, "test", "debug")
	svc := service.NewService(repo, commoncrypto.NewUUIDGenerator(), log)
	resolver := jwtverify.NewResolver(testSecret, noRevocations{}, log)
	cfg := config.SubmissionsConfig{RequestTimeout: 5 * time.Second, DefaultPageLimit: limit}
	return submissionhttp.NewHandler(svc, resolver, cfg, log)
}

func bearer(t *testing.T, userID string) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		jwtverify.ClaimSubject: userID,
		jwtverify.ClaimJTI:     "jti-" + userID,
		jwtverify.ClaimExpires: time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return "Bearer " + token
}

func post(h http.Handler, body string, auth string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/submissions", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

type errorBody struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) errorBody {
	t.Helper()
	var body errorBody
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	return body
}

func TestCreate_Success(t *testing.T) {
	repo := &mockRepo{}
	h := newHandler(repo, 10)

	rec := post(h, `{"name":"Alice","country":"NZ","company":"Acme","questions":["Q1"]}`, bearer(t, "u1"))
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]any
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "u1", body["userId"])
	assert.Equal(t, "Alice", body["name"])
	assert.Equal(t, []any{"Q1"}, body["questions"])
	assert.NotEmpty(t, body["id"])
	assert.Equal(t, "2024-05-01T12:00:00Z", body["createdAt"])
	assert.NotContains(t, body, "user")
	assert.Equal(t, 1, repo.inserts)
}

func TestCreate_Unauthenticated(t *testing.T) {
	payloads := []string{
		`{"name":"Alice","country":"NZ","company":"Acme","questions":["Q1"]}`,
		`{}`,
		`not json`,
	}
	for _, payload := range payloads {
		repo := &mockRepo{}
		rec := post(newHandler(repo, 10), payload, "")

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "Unauthorized", decodeError(t, rec).Error)
		assert.Equal(t, 0, repo.inserts)
	}

	repo := &mockRepo{}
	rec := post(newHandler(repo, 10), `{}`, "Bearer forged.token.value")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, 0, repo.inserts)
}

func TestCreate_MissingFields(t *testing.T) {
	repo := &mockRepo{}
	rec := post(newHandler(repo, 10), `{"name":"","country":"NZ","company":"Acme","questions":["Q1"]}`, bearer(t, "u1"))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeError(t, rec)
	assert.Equal(t, "Missing required fields", body.Error)
	assert.Equal(t, "MISSING_REQUIRED_FIELDS", body.Code)
	assert.Equal(t, 0, repo.inserts)
}

func TestCreate_InternalErrors(t *testing.T) {
	repo := &mockRepo{insertFunc: func(ctx context.Context, s domain.Submission) (domain.Submission, error) {
		return domain.Submission{}, errors.New("pq: relation does not exist")
	}}
	h := newHandler(repo, 10)

	rec := post(h, `{"name":"Alice","country":"NZ","company":"Acme","questions":["Q1"]}`, bearer(t, "u1"))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	body := decodeError(t, rec)
	assert.Equal(t, commonerrors.ErrInternalError.Message(), body.Error)
	assert.NotContains(t, body.Error, "relation")

	rec = post(h, `{"name":"Alice","questions":"Q1"}`, bearer(t, "u1"))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestCreate_UndecodableBodies(t *testing.T) {
	bodies := map[string]string{
		"trailing garbage": `{"name":"Alice","country":"NZ","company":"Acme","questions":["Q1"]} trailing-garbage`,
		"two objects":      `{"name":"Alice","country":"NZ","company":"Acme","questions":["Q1"]}{}`,
		"null body":        `null`,
		"null question":    `{"name":"Alice","country":"NZ","company":"Acme","questions":[null]}`,
		"wrong types":      `{"name":"Alice","country":"NZ","company":"Acme","questions":"Q1"}`,
		"truncated":        `{"name":"Alice",`,
	}

	for name, body := range bodies {
		t.Run(name, func(t *testing.T) {
			repo := &mockRepo{}
			rec := post(newHandler(repo, 10), body, bearer(t, "u1"))

			assert.Equal(t, http.StatusInternalServerError, rec.Code)
			assert.Equal(t, "Internal Server Error", decodeError(t, rec).Error)
			assert.Equal(t, 0, repo.inserts)
		})
	}
}

func TestCreate_EmptyQuestionListIsMissingField(t *testing.T) {
	repo := &mockRepo{}
	rec := post(newHandler(repo, 10), `{"name":"Alice","country":"NZ","company":"Acme","questions":[]}`, bearer(t, "u1"))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, 0, repo.inserts)
}

func TestList_QueryDefaults(t *testing.T) {
	tests := []struct {
		query    string
		wantSkip int
		wantTake int
		current  float64
	}{
		{"", 0, 7, 1},
		{"?page=3&limit=5", 10, 5, 3},
		{"?page=abc&limit=xyz", 0, 7, 1},
		{"?page=2abc&limit=4x", 4, 4, 2},
		{"?page=0&limit=0", 0, 7, 1},
		{"?page=-2&limit=-1", 0, 7, 1},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			var skip, take int
			repo := &mockRepo{
				findPageFunc: func(ctx context.Context, s, l int) ([]domain.Submission, error) {
					skip, take = s, l
					return []domain.Submission{}, nil
				},
				countFunc: func(ctx context.Context) (int, error) { return 15, nil },
			}

			req := httptest.NewRequest(http.MethodGet, "/api/submissions"+tt.query, nil)
			rec := httptest.NewRecorder()
			newHandler(repo, 7).ServeHTTP(rec, req)

			require.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, tt.wantSkip, skip)
			assert.Equal(t, tt.wantTake, take)

			var body struct {
				Submissions []any          `json:"submissions"`
				Pagination  map[string]any `json:"pagination"`
			}
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
			assert.NotNil(t, body.Submissions)
			assert.Equal(t, float64(15), body.Pagination["total"])
			assert.Equal(t, tt.current, body.Pagination["current"])
		})
	}
}

func TestList_IncludesAuthor(t *testing.T) {
	repo := &mockRepo{
		findPageFunc: func(ctx context.Context, skip, take int) ([]domain.Submission, error) {
			return []domain.Submission{{
				ID:        "s1",
				Name:      "Alice",
				Questions: []string{"Q1"},
				UserID:    "u1",
				User:      &domain.Author{Name: "Alice A.", Email: "alice@example.com"},
			}}, nil
		},
		countFunc: func(ctx context.Context) (int, error) { return 1, nil },
	}

	req := httptest.NewRequest(http.MethodGet, "/api/submissions", nil)
	rec := httptest.NewRecorder()
	newHandler(repo, 10).ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Submissions []map[string]any `json:"submissions"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	require.Len(t, body.Submissions, 1)
	assert.Equal(t, map[string]any{"name": "Alice A.", "email": "alice@example.com"}, body.Submissions[0]["user"])
}

func TestList_PersistenceFailure(t *testing.T) {
	repo := &mockRepo{countFunc: func(ctx context.Context) (int, error) { return 0, errors.New("timeout") }}

	req := httptest.NewRequest(http.MethodGet, "/api/submissions", nil)
	rec := httptest.NewRecorder()
	newHandler(repo, 10).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "Internal Server Error", decodeError(t, rec).Error)
}

func TestSubmissions_MethodNotAllowed(t *testing.T) {
	req := httptest.NewRequest(http.MethodDelete, "/api/submissions", nil)
	rec := httptest.NewRecorder()
	newHandler(&mockRepo{}, 10).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
