package bootstrap

import (
	"context"
	"fmt"
	"os"

	"github.com/jackc/pgx/v4/pgxpool"

	"github.com/AlibekovAA/interview-board/internal/common/config"
	"github.com/AlibekovAA/interview-board/internal/common/constants"
	"github.com/AlibekovAA/interview-board/internal/common/db"
	"github.com/AlibekovAA/interview-board/internal/common/logger"
	srv "github.com/AlibekovAA/interview-board/internal/common/server"
)

// App holds the process-wide resources every service starts with. The pool
// lives for the whole process and is released by the shutdown hook.
type App struct {
	Log  *logger.Logger
	Pool *pgxpool.Pool

	stopBackground context.CancelFunc
	background     context.Context
}

type AuthApp struct {
	App
	Config config.AuthConfig
}

type SubmissionsApp struct {
	App
	Config config.SubmissionsConfig
}

func NewAuthApp(ctx context.Context) (*AuthApp, error) {
	log, err := initializeLogger("auth")
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	cfg, err := config.LoadAuthConfig()
	if err != nil {
		log.Errorf("failed to load config: %v", err)
		return nil, err
	}

	app, err := initializeApp(ctx, log, cfg.DatabaseURL, "auth")
	if err != nil {
		return nil, err
	}

	return &AuthApp{App: *app, Config: cfg}, nil
}

func NewSubmissionsApp(ctx context.Context) (*SubmissionsApp, error) {
	log, err := initializeLogger("submissions")
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	cfg, err := config.LoadSubmissionsConfig()
	if err != nil {
		log.Errorf("failed to load config: %v", err)
		return nil, err
	}

	app, err := initializeApp(ctx, log, cfg.DatabaseURL, "submissions")
	if err != nil {
		return nil, err
	}

	return &SubmissionsApp{App: *app, Config: cfg}, nil
}

// Background is cancelled by the shutdown hook; long-running goroutines of
// the service should watch it.
func (a *App) Background() context.Context {
	return a.background
}

// ShutdownHook stops background work and closes the pool.
func (a *App) ShutdownHook() srv.ShutdownHook {
	return func(ctx context.Context) error {
		a.stopBackground()
		a.Pool.Close()
		a.Log.Info("database pool closed")
		return nil
	}
}

func initializeApp(ctx context.Context, log *logger.Logger, databaseURL, appName string) (*App, error) {
	pool, err := db.NewPool(ctx, log, databaseURL, appName)
	if err != nil {
		log.Errorf("failed to initialize database pool: %v", err)
		return nil, err
	}

	if err := db.Migrate(ctx, log, databaseURL); err != nil {
		pool.Close()
		log.Errorf("failed to apply migrations: %v", err)
		return nil, err
	}

	background, stop := context.WithCancel(context.Background())
	db.StartPoolMetrics(background, pool, constants.DBPoolMetricsInterval)

	return &App{
		Log:            log,
		Pool:           pool,
		stopBackground: stop,
		background:     background,
	}, nil
}

func initializeLogger(serviceName string) (*logger.Logger, error) {
	return logger.New(os.Getenv("LOG_DIR"), serviceName, os.Getenv("LOG_LEVEL"))
}
