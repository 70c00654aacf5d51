package cleanup

import (
	"bytes"
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/AlibekovAA/interview-board/internal/common/logger"
)

type mockDeleter struct {
	calls             atomic.Int32
	deleteExpiredFunc func(ctx context.Context) (int64, error)
}

func (m *mockDeleter) DeleteExpired(ctx context.Context) (int64, error) {
	m.calls.Add(1)
	if m.deleteExpiredFunc != nil {
		return m.deleteExpiredFunc(ctx)
	}
	return 0, nil
}

func testLogger() *logger.Logger {
	return logger.NewWithWriter(&bytes.Buffer{}, "test", "debug")
}

func TestRunOnce_ReportsDeleted(t *testing.T) {
	repo := &mockDeleter{deleteExpiredFunc: func(ctx context.Context) (int64, error) { return 5, nil }}

	deleted := RunOnce(context.Background(), repo, KindRefreshToken, testLogger())

	assert.Equal(t, int64(5), deleted)
	assert.Equal(t, int32(1), repo.calls.Load())
}

func TestRunOnce_ErrorIsSwallowed(t *testing.T) {
	repo := &mockDeleter{deleteExpiredFunc: func(ctx context.Context) (int64, error) {
		return 0, errors.New("cleanup error")
	}}

	assert.Equal(t, int64(0), RunOnce(context.Background(), repo, KindRevokedToken, testLogger()))
}

func TestRun_TicksUntilCancelled(t *testing.T) {
	repo := &mockDeleter{}
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		Run(ctx, repo, 10*time.Millisecond, KindRefreshToken, testLogger())
		close(done)
	}()

	assert.Eventually(t, func() bool { return repo.calls.Load() >= 2 }, time.Second, 5*time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("cleanup did not stop after cancel")
	}
}
