package service

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/AlibekovAA/interview-board/internal/common/clock"
	commoncrypto "github.com/AlibekovAA/interview-board/internal/common/crypto"
	"github.com/AlibekovAA/interview-board/internal/common/jwtverify"
	"github.com/AlibekovAA/interview-board/internal/observability/metrics"
	userdomain "github.com/AlibekovAA/interview-board/internal/user/domain"
)

type AccessToken struct {
	Token     string
	JTI       string
	ExpiresAt time.Time
}

type TokenIssuer struct {
	jwtSecret      []byte
	idGenerator    commoncrypto.IDGenerator
	clock          clock.Clock
	accessTokenTTL time.Duration
}

func NewTokenIssuer(
	jwtSecret string,
	idGenerator commoncrypto.IDGenerator,
	accessTokenTTL time.Duration,
	clock clock.Clock,
) *TokenIssuer {
	return &TokenIssuer{
		jwtSecret:      []byte(jwtSecret),
		idGenerator:    idGenerator,
		clock:          clock,
		accessTokenTTL: accessTokenTTL,
	}
}

func (ti *TokenIssuer) IssueAccessToken(user userdomain.User) (AccessToken, error) {
	jti, err := ti.idGenerator.NewID()
	if err != nil {
		return AccessToken{}, err
	}

	now := ti.clock.Now()
	expiresAt := now.Add(ti.accessTokenTTL)
	claims := jwt.MapClaims{
		jwtverify.ClaimSubject: string(user.ID),
		jwtverify.ClaimName:    user.Name,
		jwtverify.ClaimEmail:   user.Email,
		jwtverify.ClaimJTI:     jti,
		jwtverify.ClaimExpires: expiresAt.Unix(),
		jwtverify.ClaimIssued:  now.Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := t.SignedString(ti.jwtSecret)
	if err != nil {
		return AccessToken{}, err
	}

	metrics.AccessTokensIssued.Inc()
	return AccessToken{Token: tokenString, JTI: jti, ExpiresAt: expiresAt}, nil
}

func (ti *TokenIssuer) ParseToken(tokenString string) (jwtverify.Claims, error) {
	return jwtverify.ParseToken(tokenString, ti.jwtSecret)
}
