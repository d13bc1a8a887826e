package app

import (
	"context"
	"errors"
	"sync"

	grpcapi "netmonitor/internal/api/grpc"
	"netmonitor/internal/config"
	"netmonitor/internal/logging"
	"netmonitor/internal/screen"
	"netmonitor/pkg/version"
)

// App runs the monitor screen and its transports.
type App struct {
	config          *config.Config
	logger          *logging.Logger
	shutdownManager *ShutdownManager
	screen          *screen.Controller
	httpServer      *HTTPServer
	grpcServer      *grpcapi.Server
}

func New(
	cfg *config.Config,
	logger *logging.Logger,
	shutdownManager *ShutdownManager,
	ctrl *screen.Controller,
	httpServer *HTTPServer,
	grpcServer *grpcapi.Server,
) *App {
	return &App{
		config:          cfg,
		logger:          logger,
		shutdownManager: shutdownManager,
		screen:          ctrl,
		httpServer:      httpServer,
		grpcServer:      grpcServer,
	}
}

// Run starts the screen and both servers and blocks until a shutdown signal,
// ctx cancellation, or a server failure.
func (a *App) Run(ctx context.Context) error {
	a.logger.Info("starting netmonitor",
		"version", version.Version,
		"httpAddr", a.httpServer.Addr().String(),
		"grpcAddr", a.grpcServer.Addr().String(),
		"refreshInterval", a.config.Screen.RefreshInterval.String(),
		"clipboard", a.config.Clipboard,
	)

	runCtx, cancel := a.shutdownManager.WithContext(ctx)
	defer cancel()
	defer a.shutdownManager.Close()

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		errs []error
	)
	run := func(name string, fn func() error) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := fn(); err != nil && !errors.Is(err, context.Canceled) {
				a.logger.Error("component stopped with error", logging.AttachError(err, "component", name)...)
				mu.Lock()
				errs = append(errs, err)
				mu.Unlock()
			}
			// One component going down takes the rest with it.
			cancel()
		}()
	}

	run("screen", func() error { return a.screen.Run(runCtx) })
	run("http", func() error { return a.httpServer.Serve(runCtx, a.shutdownManager.Timeout()) })
	run("grpc", func() error { return a.grpcServer.Serve(runCtx) })

	<-runCtx.Done()
	a.logger.Info("shutdown initiated")

	cleanupCtx, cleanupCancel := a.shutdownManager.CleanupContext()
	defer cleanupCancel()

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	if err := a.shutdownManager.WaitFor(cleanupCtx, done); err != nil {
		a.logger.Warn("shutdown deadline exceeded", "timeout", a.shutdownManager.Timeout().String())
		return err
	}
	a.logger.Info("shutdown completed")

	mu.Lock()
	defer mu.Unlock()
	return errors.Join(errs...)
}
