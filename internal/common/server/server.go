package server

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/AlibekovAA/interview-board/internal/common/constants"
	"github.com/AlibekovAA/interview-board/internal/common/logger"
)

type ShutdownHook func(ctx context.Context) error

// Run serves until SIGINT/SIGTERM, then runs hooks and shuts the server down.
// Hooks run after the listener stops so in-flight requests can still use the
// resources they release.
func Run(server *http.Server, log *logger.Logger, serviceName string, hooks ...ShutdownHook) error {
	serveErr := make(chan error, 1)
	go func() {
		log.Infof("%s service listening on %s", serviceName, server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case err := <-serveErr:
		if err != nil {
			return err
		}
	case sig := <-quit:
		log.Infof("shutting down %s service (signal %s)", serviceName, sig)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), constants.ShutdownTimeout)
	defer cancel()

	server.SetKeepAlivesEnabled(false)
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Errorf("%s service forced to shutdown: %v", serviceName, err)
	} else {
		log.Infof("%s service stopped accepting requests", serviceName)
	}

	drainCtx, drainCancel := context.WithTimeout(context.Background(), constants.DrainTimeout)
	defer drainCancel()
	for i, hook := range hooks {
		if err := hook(drainCtx); err != nil {
			log.Errorf("%s service: shutdown hook %d failed: %v", serviceName, i, err)
		}
	}

	log.Infof("%s service stopped gracefully", serviceName)
	return nil
}
