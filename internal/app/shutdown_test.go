package app_test

import (
	"context"
	"os"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"netmonitor/internal/app"
	"netmonitor/internal/logging"
)

func TestShutdownContextCancelledOnSignal(t *testing.T) {
	signalCh := make(chan os.Signal, 1)
	manager := app.NewShutdownManager(50*time.Millisecond, logging.Discard(), app.WithSignalChannel(signalCh))

	ctx, cancel := manager.WithContext(context.Background())
	defer cancel()

	signalCh <- syscall.SIGTERM

	select {
	case <-ctx.Done():
	case <-time.After(time.Second):
		t.Fatal("context was not cancelled after signal")
	}
}

func TestCleanupContextTimeout(t *testing.T) {
	manager := app.NewShutdownManager(25*time.Millisecond, logging.Discard(), app.WithSignalChannel(make(chan os.Signal)))

	cleanupCtx, cancel := manager.CleanupContext()
	defer cancel()

	deadline, ok := cleanupCtx.Deadline()
	require.True(t, ok)

	remaining := time.Until(deadline)
	assert.True(t, remaining > 0 && remaining <= 30*time.Millisecond, "unexpected cleanup timeout: %s", remaining)
}

func TestWaitFor(t *testing.T) {
	manager := app.NewShutdownManager(time.Second, logging.Discard(), app.WithSignalChannel(make(chan os.Signal)))
	defer manager.Close()

	done := make(chan struct{})
	close(done)
	assert.NoError(t, manager.WaitFor(context.Background(), done))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, manager.WaitFor(ctx, make(chan struct{})), context.DeadlineExceeded)
}
