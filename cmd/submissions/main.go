package main

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	authrepo "github.com/AlibekovAA/interview-board/internal/auth/repository"
	"github.com/AlibekovAA/interview-board/internal/common/bootstrap"
	commoncrypto "github.com/AlibekovAA/interview-board/internal/common/crypto"
	commonhttp "github.com/AlibekovAA/interview-board/internal/common/http"
	"github.com/AlibekovAA/interview-board/internal/common/jwtverify"
	srv "github.com/AlibekovAA/interview-board/internal/common/server"
	submissionhttp "github.com/AlibekovAA/interview-board/internal/submission/http"
	submissionrepo "github.com/AlibekovAA/interview-board/internal/submission/repository"
	"github.com/AlibekovAA/interview-board/internal/submission/service"
)

func main() {
	app, err := bootstrap.NewSubmissionsApp(context.Background())
	if err != nil {
		fmt.Fprintf(os.Stderr, "submissions service failed to start: %v\n", err)
		os.Exit(1)
	}
	log := app.Log
	cfg := app.Config

	submissions := service.NewService(
		submissionrepo.NewPgRepository(app.Pool),
		commoncrypto.NewUUIDGenerator(),
		log,
	)
	resolver := jwtverify.NewResolver(cfg.JWTSecret, authrepo.NewPgRevokedTokenRepository(app.Pool), log)

	mux := http.NewServeMux()
	mux.Handle("/", submissionhttp.NewHandler(submissions, resolver, cfg, log))
	mux.Handle("/metrics", promhttp.Handler())

	server := srv.NewServer(srv.DefaultServerConfig(cfg.HTTPPort), commonhttp.BuildBaseHandler("submissions", log, mux))

	if err := srv.Run(server, log, "submissions", app.ShutdownHook()); err != nil {
		log.Fatalf("submissions service failed: %v", err)
	}
}
