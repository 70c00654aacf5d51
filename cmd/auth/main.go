package main

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	authcleanup "github.com/AlibekovAA/interview-board/internal/auth/cleanup"
	authhttp "github.com/AlibekovAA/interview-board/internal/auth/http"
	authrepo "github.com/AlibekovAA/interview-board/internal/auth/repository"
	"github.com/AlibekovAA/interview-board/internal/auth/service"
	"github.com/AlibekovAA/interview-board/internal/common/bootstrap"
	"github.com/AlibekovAA/interview-board/internal/common/clock"
	commoncrypto "github.com/AlibekovAA/interview-board/internal/common/crypto"
	commonhttp "github.com/AlibekovAA/interview-board/internal/common/http"
	"github.com/AlibekovAA/interview-board/internal/common/jwtverify"
	srv "github.com/AlibekovAA/interview-board/internal/common/server"
	userrepo "github.com/AlibekovAA/interview-board/internal/user/repository"
)

func main() {
	app, err := bootstrap.NewAuthApp(context.Background())
	if err != nil {
		fmt.Fprintf(os.Stderr, "auth service failed to start: %v\n", err)
		os.Exit(1)
	}
	log := app.Log
	cfg := app.Config

	refreshTokenRepo := authrepo.NewPgRefreshTokenRepository(app.Pool)
	revokedTokenRepo := authrepo.NewPgRevokedTokenRepository(app.Pool)
	idGenerator := commoncrypto.NewUUIDGenerator()
	realClock := clock.NewRealClock()

	authService := service.NewAuthService(service.AuthServiceDeps{
		Users:            userrepo.NewPgRepository(app.Pool),
		RefreshTokens:    refreshTokenRepo,
		RevokedTokens:    revokedTokenRepo,
		Hasher:           commoncrypto.NewBcryptHasher(),
		IDGenerator:      idGenerator,
		Issuer:           service.NewTokenIssuer(cfg.JWTSecret, idGenerator, cfg.AccessTokenTTL, realClock),
		Clock:            realClock,
		RefreshTokenTTL:  cfg.RefreshTokenTTL,
		MaxRefreshTokens: cfg.MaxRefreshTokensPerUser,
		Log:              log,
	})
	resolver := jwtverify.NewResolver(cfg.JWTSecret, revokedTokenRepo, log)

	go authcleanup.Run(app.Background(), refreshTokenRepo, cfg.CleanupInterval, authcleanup.KindRefreshToken, log)
	go authcleanup.Run(app.Background(), revokedTokenRepo, cfg.CleanupInterval, authcleanup.KindRevokedToken, log)

	mux := http.NewServeMux()
	mux.Handle("/", authhttp.NewHandler(authService, resolver, cfg, log))
	mux.Handle("/metrics", promhttp.Handler())

	server := srv.NewServer(srv.DefaultServerConfig(cfg.HTTPPort), commonhttp.BuildBaseHandler("auth", log, mux))

	if err := srv.Run(server, log, "auth", app.ShutdownHook()); err != nil {
		log.Fatalf("auth service failed: %v", err)
	}
}
