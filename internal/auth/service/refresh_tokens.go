package service

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"

	authdomain "github.com/AlibekovAA/interview-board/internal/auth/domain"
	"github.com/AlibekovAA/interview-board/internal/common/constants"
	"github.com/AlibekovAA/interview-board/internal/common/logger"
	"github.com/AlibekovAA/interview-board/internal/observability/metrics"
	userdomain "github.com/AlibekovAA/interview-board/internal/user/domain"
)

func (s *AuthService) issueRefreshToken(ctx context.Context, user userdomain.User) (authdomain.RefreshToken, error) {
	rawToken, err := generateRefreshToken()
	if err != nil {
		return authdomain.RefreshToken{}, err
	}

	id, err := s.idGenerator.NewID()
	if err != nil {
		return authdomain.RefreshToken{}, err
	}

	now := s.clock.Now()
	token := authdomain.RefreshToken{
		ID:        id,
		TokenHash: hashRefreshToken(rawToken),
		UserID:    string(user.ID),
		ExpiresAt: now.Add(s.refreshTokenTTL),
		CreatedAt: now,
	}

	if err := s.refreshTokens.Create(ctx, token); err != nil {
		return authdomain.RefreshToken{}, err
	}

	if s.maxRefreshTokens > 0 {
		if err := s.refreshTokens.DeleteExcessByUserID(ctx, token.UserID, s.maxRefreshTokens); err != nil {
			s.log.WithFields(ctx, logger.Fields{
				"user_id": token.UserID,
				"action":  "refresh_token_trim_failed",
			}).Warnf("failed to trim refresh tokens: %v", err)
		}
	}

	metrics.RefreshTokensIssued.Inc()

	token.RawToken = rawToken
	return token, nil
}

func generateRefreshToken() (string, error) {
	b := make([]byte, constants.RefreshTokenSize)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

func hashRefreshToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
