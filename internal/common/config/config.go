package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/AlibekovAA/interview-board/internal/common/constants"
)

var (
	ErrMissingRequiredEnv = errors.New("missing required environment variable")
	ErrInvalidJWTSecret   = errors.New("JWT_SECRET must be at least 32 bytes")
)

type AuthConfig struct {
	HTTPPort                string
	DatabaseURL             string
	JWTSecret               string
	RequestTimeout          time.Duration
	AccessTokenTTL          time.Duration
	RefreshTokenTTL         time.Duration
	MaxRefreshTokensPerUser int
	CleanupInterval         time.Duration
}

type SubmissionsConfig struct {
	HTTPPort         string
	DatabaseURL      string
	JWTSecret        string
	RequestTimeout   time.Duration
	DefaultPageLimit int
}

func LoadAuthConfig() (AuthConfig, error) {
	jwtSecret, databaseURL, err := loadShared()
	if err != nil {
		return AuthConfig{}, err
	}

	return AuthConfig{
		HTTPPort:                getEnv("AUTH_HTTP_PORT", constants.DefaultAuthHTTPPort),
		DatabaseURL:             databaseURL,
		JWTSecret:               jwtSecret,
		RequestTimeout:          getDurationEnv("AUTH_REQUEST_TIMEOUT", constants.DefaultAuthRequestTimeout),
		AccessTokenTTL:          getDurationEnv("ACCESS_TOKEN_TTL", constants.DefaultAccessTokenTTL),
		RefreshTokenTTL:         getDurationEnv("REFRESH_TOKEN_TTL", constants.DefaultRefreshTokenTTL),
		MaxRefreshTokensPerUser: getIntEnv("MAX_REFRESH_TOKENS_PER_USER", constants.DefaultMaxRefreshTokensPerUser),
		CleanupInterval:         getDurationEnv("TOKEN_CLEANUP_INTERVAL", constants.TokenCleanupInterval),
	}, nil
}

func LoadSubmissionsConfig() (SubmissionsConfig, error) {
	jwtSecret, databaseURL, err := loadShared()
	if err != nil {
		return SubmissionsConfig{}, err
	}

	return SubmissionsConfig{
		HTTPPort:         getEnv("SUBMISSIONS_HTTP_PORT", constants.DefaultSubmissionsHTTPPort),
		DatabaseURL:      databaseURL,
		JWTSecret:        jwtSecret,
		RequestTimeout:   getDurationEnv("SUBMISSIONS_REQUEST_TIMEOUT", constants.DefaultSubmissionsRequestTimeout),
		DefaultPageLimit: getIntEnv("SUBMISSIONS_DEFAULT_LIMIT", constants.DefaultPageLimit),
	}, nil
}

func loadShared() (string, string, error) {
	jwtSecret, err := mustEnv("JWT_SECRET")
	if err != nil {
		return "", "", err
	}

	if err := validateJWTSecret(jwtSecret); err != nil {
		return "", "", err
	}

	databaseURL, err := mustEnv("DATABASE_URL")
	if err != nil {
		return "", "", err
	}

	return jwtSecret, databaseURL, nil
}

func validateJWTSecret(secret string) error {
	if len(secret) < constants.JWTSecretMinLength {
		return fmt.Errorf("%w: got %d bytes", ErrInvalidJWTSecret, len(secret))
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return fallback
}

func mustEnv(key string) (string, error) {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return "", fmt.Errorf("%w: %s", ErrMissingRequiredEnv, key)
	}
	return v, nil
}

func getDurationEnv(key string, fallback time.Duration) time.Duration {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}

func getIntEnv(key string, fallback int) int {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return fallback
	}
	i, err := strconv.Atoi(v)
	if err != nil || i <= 0 {
		return fallback
	}
	return i
}
