package service_test

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	authdomain "github.com/AlibekovAA/interview-board/internal/auth/domain"
	authrepo "github.com/AlibekovAA/interview-board/internal/auth/repository"
	"github.com/AlibekovAA/interview-board/internal/auth/service"
	"github.com/AlibekovAA/interview-board/internal/common/clock"
	"github.com/AlibekovAA/interview-board/internal/common/logger"
	userdomain "github.com/AlibekovAA/interview-board/internal/user/domain"
	userrepo "github.com/AlibekovAA/interview-board/internal/user/repository"
)

const testSecret = "0123456789abcdef0123456789abcdef"

type mockUserRepo struct {
	createFunc      func(ctx context.Context, user userdomain.User) (userdomain.User, error)
	findByEmailFunc func(ctx context.Context, email string) (userdomain.User, error)
	findByIDFunc    func(ctx context.Context, id userdomain.ID) (userdomain.User, error)
}

func (m *mockUserRepo) Create(ctx context.Context, user userdomain.User) (userdomain.User, error) {
	if m.createFunc != nil {
		return m.createFunc(ctx, user)
	}
	return user, nil
}

func (m *mockUserRepo) FindByEmail(ctx context.Context, email string) (userdomain.User, error) {
	if m.findByEmailFunc != nil {
		return m.findByEmailFunc(ctx, email)
	}
	return userdomain.User{}, userrepo.ErrUserNotFound
}

func (m *mockUserRepo) FindByID(ctx context.Context, id userdomain.ID) (userdomain.User, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return userdomain.User{}, userrepo.ErrUserNotFound
}

// memRefreshTokenRepo keeps tokens in memory so rotation can be observed.
type memRefreshTokenRepo struct {
	mu        sync.Mutex
	tokens    map[string]authdomain.RefreshToken
	createErr error
}

func newMemRefreshTokenRepo() *memRefreshTokenRepo {
	return &memRefreshTokenRepo{tokens: map[string]authdomain.RefreshToken{}}
}

func (m *memRefreshTokenRepo) Create(ctx context.Context, token authdomain.RefreshToken) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.createErr != nil {
		return m.createErr
	}
	m.tokens[token.TokenHash] = token
	return nil
}

func (m *memRefreshTokenRepo) Consume(ctx context.Context, hash string) (authdomain.RefreshToken, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	token, ok := m.tokens[hash]
	if !ok {
		return authdomain.RefreshToken{}, authrepo.ErrRefreshTokenNotFound
	}
	delete(m.tokens, hash)
	return token, nil
}

func (m *memRefreshTokenRepo) DeleteByTokenHash(ctx context.Context, hash string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.tokens[hash]; !ok {
		return authrepo.ErrRefreshTokenNotFound
	}
	delete(m.tokens, hash)
	return nil
}

func (m *memRefreshTokenRepo) DeleteExcessByUserID(ctx context.Context, userID string, keep int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for {
		var oldest *authdomain.RefreshToken
		count := 0
		for _, t := range m.tokens {
			if t.UserID != userID {
				continue
			}
			count++
			if oldest == nil || t.CreatedAt.Before(oldest.CreatedAt) {
				tt := t
				oldest = &tt
			}
		}
		if count <= keep || oldest == nil {
			return nil
		}
		delete(m.tokens, oldest.TokenHash)
	}
}

func (m *memRefreshTokenRepo) DeleteExpired(ctx context.Context) (int64, error) {
	return 0, nil
}

func (m *memRefreshTokenRepo) countFor(userID string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, t := range m.tokens {
		if t.UserID == userID {
			n++
		}
	}
	return n
}

type mockRevokedTokenRepo struct {
	mu      sync.Mutex
	revoked map[string]time.Time
	err     error
}

func (m *mockRevokedTokenRepo) Revoke(ctx context.Context, jti string, userID string, expiresAt time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	if m.revoked == nil {
		m.revoked = map[string]time.Time{}
	}
	m.revoked[jti] = expiresAt
	return nil
}

func (m *mockRevokedTokenRepo) IsRevoked(ctx context.Context, jti string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.revoked[jti]
	return ok, nil
}

func (m *mockRevokedTokenRepo) DeleteExpired(ctx context.Context) (int64, error) {
	return 0, nil
}

type mockHasher struct{}

func (mockHasher) Hash(password string) (string, error) {
	return "hashed:" + password, nil
}

func (mockHasher) Compare(hash string, password string) error {
	if hash != "hashed:"+password {
		return errors.New("password mismatch")
	}
	return nil
}

type seqIDGenerator struct {
	mu sync.Mutex
	n  int
}

func (g *seqIDGenerator) NewID() (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.n++
	return fmt.Sprintf("00000000-0000-0000-0000-%012d", g.n), nil
}

type fixture struct {
	svc     *service.AuthService
	issuer  *service.TokenIssuer
	users   *mockUserRepo
	refresh *memRefreshTokenRepo
	revoked *mockRevokedTokenRepo
	clock   *clock.MockClock
}

func setupAuthService(t *testing.T) *fixture {
	t.Helper()

	ids := &seqIDGenerator{}
	c := clock.NewMockClock(time.Now())
	issuer := service.NewTokenIssuer(testSecret, ids, 15*time.Minute, c)

	f := &fixture{
		issuer:  issuer,
		users:   &mockUserRepo{},
		refresh: newMemRefreshTokenRepo(),
		revoked: &mockRevokedTokenRepo{},
		clock:   c,
	}
	f.svc = service.NewAuthService(service.AuthServiceDeps{
		Users:            f.users,
		RefreshTokens:    f.refresh,
		RevokedTokens:    f.revoked,
		Hasher:           mockHasher{},
		IDGenerator:      ids,
		Issuer:           issuer,
		Clock:            c,
		RefreshTokenTTL:  time.Hour,
		MaxRefreshTokens: 2,
		Log:              logger.NewWithWriter(&bytes.Buffer{}, "test", "debug"),
	})
	return f
}

func alice() userdomain.User {
	return userdomain.User{
		ID:           "00000000-0000-0000-0000-00000000a11c",
		Name:         "Alice",
		Email:        "alice@example.com",
		PasswordHash: "hashed:password123",
	}
}
