package cleanup

import (
	"context"
	"time"

	"github.com/AlibekovAA/interview-board/internal/common/constants"
	"github.com/AlibekovAA/interview-board/internal/common/logger"
	"github.com/AlibekovAA/interview-board/internal/observability/metrics"
)

const (
	KindRefreshToken = "refresh_token"
	KindRevokedToken = "revoked_token"
)

type ExpiredDeleter interface {
	DeleteExpired(ctx context.Context) (int64, error)
}

// Run deletes expired rows every interval until ctx is cancelled.
func Run(ctx context.Context, repo ExpiredDeleter, interval time.Duration, kind string, log *logger.Logger) {
	if interval <= 0 {
		interval = constants.TokenCleanupInterval
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			RunOnce(ctx, repo, kind, log)
		}
	}
}

func RunOnce(ctx context.Context, repo ExpiredDeleter, kind string, log *logger.Logger) int64 {
	deleted, err := repo.DeleteExpired(ctx)
	if err != nil {
		log.WithFields(ctx, logger.Fields{
			"kind":   kind,
			"action": "token_cleanup_failed",
		}).Errorf("%s cleanup failed: %v", kind, err)
		return 0
	}
	if deleted > 0 {
		metrics.TokenCleanupDeleted.WithLabelValues(kind).Add(float64(deleted))
		log.WithFields(ctx, logger.Fields{
			"kind":    kind,
			"deleted": deleted,
			"action":  "token_cleanup",
		}).Infof("%s cleanup: deleted %d expired tokens", kind, deleted)
	}
	return deleted
}
