package http

import (
	"net/http"

	"github.com/AlibekovAA/interview-board/internal/common/constants"
	"github.com/AlibekovAA/interview-board/internal/common/httpmetrics"
	"github.com/AlibekovAA/interview-board/internal/common/logger"
)

// BuildBaseHandler wraps a service mux with the middleware every service shares.
func BuildBaseHandler(appName string, log *logger.Logger, handler http.Handler) http.Handler {
	collector := httpmetrics.New(appName)
	recovery := RecoveryMiddleware(log)
	maxRequestSize := MaxRequestSizeMiddleware(constants.DefaultMaxRequestSize)

	return SecurityHeadersMiddleware(recovery(TraceIDMiddleware(maxRequestSize(collector.Wrap(handler)))))
}
