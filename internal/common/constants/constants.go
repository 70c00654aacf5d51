package constants

import "time"

const (
	NameMaxLength      = 100
	PasswordMinLength  = 8
	PasswordMaxLength  = 72
	JWTSecretMinLength = 32
	RefreshTokenSize   = 32

	DefaultPage           = 1
	DefaultPageLimit      = 10
	DefaultMaxRequestSize = 1 << 20

	DBPoolMaxOpenConns    = 25
	DBPoolMinOpenConns    = 5
	DBPoolConnMaxLifetime = time.Hour
	DBPoolConnMaxIdleTime = 30 * time.Minute
	DBPoolHealthCheck     = 1 * time.Minute
	DBPoolConnectTimeout  = 5 * time.Second
	DBPoolMaxAttempts     = 10
	DBPoolRetryDelay      = 1 * time.Second
	DBPoolMetricsInterval = 30 * time.Second
	DBQueryTimeout        = 30 * time.Second

	ServerReadHeaderTimeout = 10 * time.Second
	ServerReadTimeout       = 30 * time.Second
	ServerWriteTimeout      = 30 * time.Second
	ServerIdleTimeout       = 120 * time.Second

	ShutdownTimeout = 30 * time.Second
	DrainTimeout    = 10 * time.Second

	TokenCleanupInterval = 1 * time.Hour

	DefaultAuthHTTPPort        = "8081"
	DefaultSubmissionsHTTPPort = "8082"

	DefaultAuthRequestTimeout        = 5 * time.Second
	DefaultSubmissionsRequestTimeout = 5 * time.Second
	DefaultAccessTokenTTL            = 30 * time.Minute
	DefaultRefreshTokenTTL           = 7 * 24 * time.Hour
	DefaultMaxRefreshTokensPerUser   = 5

	SessionCookieName = "session_token"
	RefreshCookieName = "refresh_token"

	LoggerMaxSize    = 100
	LoggerMaxBackups = 3
	LoggerMaxAge     = 28
)

type TraceIDKeyType string

const TraceIDKey TraceIDKeyType = "trace_id"
