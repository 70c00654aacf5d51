package jwtverify

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/AlibekovAA/interview-board/internal/common/constants"
)

const (
	ClaimSubject = "sub"
	ClaimName    = "name"
	ClaimEmail   = "email"
	ClaimJTI     = "jti"
	ClaimExpires = "exp"
	ClaimIssued  = "iat"
)

var ErrMissingClaims = errors.New("missing sub or jti claims")

type Claims struct {
	UserID    string
	Name      string
	Email     string
	JTI       string
	ExpiresAt time.Time
}

type contextKey string

const claimsKey contextKey = "jwt_claims"

func WithClaims(ctx context.Context, claims Claims) context.Context {
	return context.WithValue(ctx, claimsKey, claims)
}

func FromContext(ctx context.Context) (Claims, bool) {
	claims, ok := ctx.Value(claimsKey).(Claims)
	return claims, ok
}

// ExtractToken returns the bearer token of the request, preferring the
// Authorization header over the session cookie.
func ExtractToken(r *http.Request) (string, bool) {
	if raw := r.Header.Get("Authorization"); strings.HasPrefix(raw, "Bearer ") {
		token := strings.TrimSpace(strings.TrimPrefix(raw, "Bearer "))
		return token, token != ""
	}
	if cookie, err := r.Cookie(constants.SessionCookieName); err == nil && cookie.Value != "" {
		return cookie.Value, true
	}
	return "", false
}

func ParseToken(tokenString string, secret []byte) (Claims, error) {
	parsed, err := jwt.Parse(
		tokenString,
		func(token *jwt.Token) (any, error) { return secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return Claims{}, fmt.Errorf("parse token: %w", err)
	}

	mapClaims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return Claims{}, errors.New("invalid claims type")
	}

	sub, _ := mapClaims[ClaimSubject].(string)
	jti, _ := mapClaims[ClaimJTI].(string)
	if sub == "" || jti == "" {
		return Claims{}, ErrMissingClaims
	}

	claims := Claims{UserID: sub, JTI: jti}
	claims.Name, _ = mapClaims[ClaimName].(string)
	claims.Email, _ = mapClaims[ClaimEmail].(string)
	if exp, err := mapClaims.GetExpirationTime(); err == nil && exp != nil {
		claims.ExpiresAt = exp.Time
	}

	return claims, nil
}
