package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	authrepo "github.com/AlibekovAA/interview-board/internal/auth/repository"
	"github.com/AlibekovAA/interview-board/internal/common/clock"
	commoncrypto "github.com/AlibekovAA/interview-board/internal/common/crypto"
	commonerrors "github.com/AlibekovAA/interview-board/internal/common/errors"
	"github.com/AlibekovAA/interview-board/internal/common/jwtverify"
	"github.com/AlibekovAA/interview-board/internal/common/logger"
	"github.com/AlibekovAA/interview-board/internal/observability/metrics"
	userdomain "github.com/AlibekovAA/interview-board/internal/user/domain"
	userrepo "github.com/AlibekovAA/interview-board/internal/user/repository"
)

type AuthServiceDeps struct {
	Users            userrepo.Repository
	RefreshTokens    authrepo.RefreshTokenRepository
	RevokedTokens    authrepo.RevokedTokenRepository
	Hasher           commoncrypto.PasswordHasher
	IDGenerator      commoncrypto.IDGenerator
	Issuer           *TokenIssuer
	Clock            clock.Clock
	RefreshTokenTTL  time.Duration
	MaxRefreshTokens int
	Log              *logger.Logger
}

type AuthService struct {
	users            userrepo.Repository
	refreshTokens    authrepo.RefreshTokenRepository
	revokedTokens    authrepo.RevokedTokenRepository
	hasher           commoncrypto.PasswordHasher
	idGenerator      commoncrypto.IDGenerator
	issuer           *TokenIssuer
	clock            clock.Clock
	refreshTokenTTL  time.Duration
	maxRefreshTokens int
	log              *logger.Logger
}

func NewAuthService(deps AuthServiceDeps) *AuthService {
	c := deps.Clock
	if c == nil {
		c = clock.NewRealClock()
	}
	return &AuthService{
		users:            deps.Users,
		refreshTokens:    deps.RefreshTokens,
		revokedTokens:    deps.RevokedTokens,
		hasher:           deps.Hasher,
		idGenerator:      deps.IDGenerator,
		issuer:           deps.Issuer,
		clock:            c,
		refreshTokenTTL:  deps.RefreshTokenTTL,
		maxRefreshTokens: deps.MaxRefreshTokens,
		log:              deps.Log,
	}
}

type AuthResult struct {
	AccessToken      string
	AccessExpiresAt  time.Time
	RefreshToken     string
	RefreshExpiresAt time.Time
	User             userdomain.User
}

func (s *AuthService) Register(ctx context.Context, input RegisterInput) (AuthResult, error) {
	input.Email = normalizeEmail(input.Email)

	s.log.WithFields(ctx, logger.Fields{
		"email":  input.Email,
		"action": "register_attempt",
	}).Info("register attempt")

	if err := validateInput(input); err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"email":  input.Email,
			"action": "register_validation_failed",
		}).Warnf("register validation failed: %v", err)
		return AuthResult{}, err
	}

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"email":  input.Email,
			"action": "register_hash_failed",
		}).Errorf("register failed: password hash error: %v", err)
		return AuthResult{}, commonerrors.ErrInternalError.WithCause(err)
	}

	id, err := s.idGenerator.NewID()
	if err != nil {
		return AuthResult{}, commonerrors.ErrInternalError.WithCause(fmt.Errorf("generate user id: %w", err))
	}

	user, err := s.users.Create(ctx, userdomain.User{
		ID:           userdomain.ID(id),
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: hash,
	})
	if err != nil {
		if errors.Is(err, userrepo.ErrEmailAlreadyExists) {
			s.log.WithFields(ctx, logger.Fields{
				"email":  input.Email,
				"action": "register_email_exists",
			}).Warn("register failed: email already exists")
			return AuthResult{}, ErrEmailTaken
		}
		s.log.WithFields(ctx, logger.Fields{
			"email":  input.Email,
			"action": "register_create_failed",
		}).Errorf("register failed: %v", err)
		return AuthResult{}, commonerrors.ErrDatabaseError.WithCause(err)
	}

	result, err := s.issueTokens(ctx, user)
	if err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"user_id": string(user.ID),
			"action":  "register_token_issue_failed",
		}).Errorf("register failed: token issue error: %v", err)
		return AuthResult{}, err
	}

	metrics.UsersRegistered.Inc()
	s.log.WithFields(ctx, logger.Fields{
		"user_id": string(user.ID),
		"action":  "register_success",
	}).Info("register success")

	return result, nil
}

func (s *AuthService) Login(ctx context.Context, input LoginInput) (AuthResult, error) {
	input.Email = normalizeEmail(input.Email)

	if err := validateInput(input); err != nil {
		metrics.LoginAttempts.WithLabelValues("invalid").Inc()
		return AuthResult{}, ErrInvalidCredentials
	}

	user, err := s.users.FindByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, userrepo.ErrUserNotFound) {
			metrics.LoginAttempts.WithLabelValues("unknown_user").Inc()
			s.log.WithFields(ctx, logger.Fields{
				"email":  input.Email,
				"action": "login_user_not_found",
			}).Warn("login failed: not found")
			return AuthResult{}, ErrInvalidCredentials
		}
		metrics.LoginAttempts.WithLabelValues("error").Inc()
		s.log.WithFields(ctx, logger.Fields{
			"email":  input.Email,
			"action": "login_fetch_failed",
		}).Errorf("login failed: %v", err)
		return AuthResult{}, commonerrors.ErrDatabaseError.WithCause(err)
	}

	if err := s.hasher.Compare(user.PasswordHash, input.Password); err != nil {
		metrics.LoginAttempts.WithLabelValues("bad_password").Inc()
		s.log.WithFields(ctx, logger.Fields{
			"user_id": string(user.ID),
			"action":  "login_invalid_password",
		}).Warn("login failed: invalid password")
		return AuthResult{}, ErrInvalidCredentials
	}

	result, err := s.issueTokens(ctx, user)
	if err != nil {
		metrics.LoginAttempts.WithLabelValues("error").Inc()
		s.log.WithFields(ctx, logger.Fields{
			"user_id": string(user.ID),
			"action":  "login_token_issue_failed",
		}).Errorf("login failed: token issue error: %v", err)
		return AuthResult{}, err
	}

	metrics.LoginAttempts.WithLabelValues("success").Inc()
	s.log.WithFields(ctx, logger.Fields{
		"user_id": string(user.ID),
		"action":  "login_success",
	}).Info("login success")

	return result, nil
}

// Refresh exchanges a refresh token for a new pair. The presented token is
// consumed whether or not it turns out to be expired.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (AuthResult, error) {
	if refreshToken == "" {
		return AuthResult{}, ErrInvalidRefreshToken
	}

	stored, err := s.refreshTokens.Consume(ctx, hashRefreshToken(refreshToken))
	if err != nil {
		if errors.Is(err, authrepo.ErrRefreshTokenNotFound) {
			s.log.WithFields(ctx, logger.Fields{
				"action": "refresh_token_not_found",
			}).Warn("refresh token failed: not found")
			return AuthResult{}, ErrInvalidRefreshToken
		}
		s.log.WithFields(ctx, logger.Fields{
			"action": "refresh_token_lookup_failed",
		}).Errorf("refresh token lookup failed: %v", err)
		return AuthResult{}, commonerrors.ErrDatabaseError.WithCause(err)
	}

	if stored.Expired(s.clock.Now()) {
		metrics.RefreshTokensExpired.Inc()
		s.log.WithFields(ctx, logger.Fields{
			"user_id": stored.UserID,
			"action":  "refresh_token_expired",
		}).Warn("refresh token expired")
		return AuthResult{}, ErrRefreshTokenExpired
	}

	user, err := s.users.FindByID(ctx, userdomain.ID(stored.UserID))
	if err != nil {
		if errors.Is(err, userrepo.ErrUserNotFound) {
			return AuthResult{}, ErrInvalidRefreshToken
		}
		s.log.WithFields(ctx, logger.Fields{
			"user_id": stored.UserID,
			"action":  "refresh_token_user_lookup_failed",
		}).Errorf("refresh token failed: user lookup error: %v", err)
		return AuthResult{}, commonerrors.ErrDatabaseError.WithCause(err)
	}

	result, err := s.issueTokens(ctx, user)
	if err != nil {
		return AuthResult{}, err
	}

	metrics.RefreshTokensUsed.Inc()
	s.log.WithFields(ctx, logger.Fields{
		"user_id": stored.UserID,
		"action":  "refresh_token_success",
	}).Info("refresh token success")

	return result, nil
}

func (s *AuthService) RevokeRefreshToken(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return nil
	}

	err := s.refreshTokens.DeleteByTokenHash(ctx, hashRefreshToken(refreshToken))
	if err != nil {
		if errors.Is(err, authrepo.ErrRefreshTokenNotFound) {
			return nil
		}
		s.log.WithFields(ctx, logger.Fields{
			"action": "revoke_refresh_token_failed",
		}).Errorf("revoke refresh token failed: %v", err)
		return commonerrors.ErrDatabaseError.WithCause(err)
	}

	metrics.RefreshTokensRevoked.Inc()
	return nil
}

// RevokeAccessToken blocks the jti until the token would have expired anyway.
func (s *AuthService) RevokeAccessToken(ctx context.Context, claims jwtverify.Claims) error {
	if claims.JTI == "" {
		return nil
	}

	expiresAt := claims.ExpiresAt
	if expiresAt.IsZero() {
		expiresAt = s.clock.Now().Add(s.issuer.accessTokenTTL)
	}

	if err := s.revokedTokens.Revoke(ctx, claims.JTI, claims.UserID, expiresAt); err != nil {
		s.log.WithFields(ctx, logger.Fields{
			"jti":     claims.JTI,
			"user_id": claims.UserID,
			"action":  "revoke_access_token_failed",
		}).Errorf("revoke access token failed: %v", err)
		return commonerrors.ErrDatabaseError.WithCause(err)
	}

	metrics.AccessTokensRevoked.Inc()
	s.log.WithFields(ctx, logger.Fields{
		"jti":     claims.JTI,
		"user_id": claims.UserID,
		"action":  "access_token_revoked",
	}).Info("access token revoked")
	return nil
}

// Logout drops the refresh token and, when the caller presented a valid
// access token, revokes it too.
func (s *AuthService) Logout(ctx context.Context, refreshToken string, accessToken string) error {
	if err := s.RevokeRefreshToken(ctx, refreshToken); err != nil {
		return err
	}
	if accessToken == "" {
		return nil
	}

	claims, err := s.issuer.ParseToken(accessToken)
	if err != nil {
		return nil
	}
	return s.RevokeAccessToken(ctx, claims)
}

func (s *AuthService) CurrentUser(ctx context.Context, userID string) (userdomain.User, error) {
	user, err := s.users.FindByID(ctx, userdomain.ID(userID))
	if err != nil {
		if errors.Is(err, userrepo.ErrUserNotFound) {
			return userdomain.User{}, commonerrors.ErrUnauthorized
		}
		return userdomain.User{}, commonerrors.ErrDatabaseError.WithCause(err)
	}
	return user, nil
}

func (s *AuthService) issueTokens(ctx context.Context, user userdomain.User) (AuthResult, error) {
	access, err := s.issuer.IssueAccessToken(user)
	if err != nil {
		return AuthResult{}, commonerrors.ErrInternalError.WithCause(fmt.Errorf("issue access token: %w", err))
	}

	refresh, err := s.issueRefreshToken(ctx, user)
	if err != nil {
		return AuthResult{}, commonerrors.ErrDatabaseError.WithCause(fmt.Errorf("issue refresh token: %w", err))
	}

	return AuthResult{
		AccessToken:      access.Token,
		AccessExpiresAt:  access.ExpiresAt,
		RefreshToken:     refresh.RawToken,
		RefreshExpiresAt: refresh.ExpiresAt,
		User:             user,
	}, nil
}
