package http

import (
	"net/http"
	"runtime/debug"

	"github.com/AlibekovAA/interview-board/internal/common/logger"
)

func RecoveryMiddleware(log *logger.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					log.WithFields(r.Context(), logger.Fields{
						"path":   r.URL.Path,
						"method": r.Method,
					}).Errorf("panic recovered: %v\n%s", err, debug.Stack())
					WriteErrorCode(w, http.StatusInternalServerError, CodeInternal, "Internal Server Error")
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}
