package app

import (
	"fmt"
	"net"
	"strconv"

	"github.com/google/wire"

	grpcapi "netmonitor/internal/api/grpc"
	httpapi "netmonitor/internal/api/http"
	"netmonitor/internal/auth"
	"netmonitor/internal/clipboard"
	"netmonitor/internal/config"
	"netmonitor/internal/domain"
	"netmonitor/internal/generator"
	"netmonitor/internal/logging"
	"netmonitor/internal/metrics"
	"netmonitor/internal/screen"
)

// ProviderSet builds an App from a loaded configuration.
var ProviderSet = wire.NewSet(
	provideLogger,
	provideGeneratorConfig,
	generator.ProviderSet,
	provideMetrics,
	provideClipboard,
	provideScreen,
	provideVerifier,
	provideHTTPServer,
	provideGRPCServer,
	provideShutdownManager,
	New,
)

func provideConfig() (*config.Config, error) { return config.Load() }

func provideLogger(cfg *config.Config) (*logging.Logger, error) {
	logger, err := logging.New(cfg.Log.Level, logging.WithRotatingFile(logging.RotatingFile{
		Path:       cfg.Log.File,
		MaxSizeMB:  cfg.Log.MaxSizeMB,
		MaxBackups: 3,
		Compress:   true,
	}))
	if err != nil {
		return nil, err
	}
	logger.SetDefault()
	return logger, nil
}

func provideGeneratorConfig(cfg *config.Config) generator.Config {
	return generator.Config{Seed: cfg.GeneratorSeed}
}

func provideMetrics() (*metrics.Collector, error) {
	return metrics.New(nil)
}

func provideClipboard(cfg *config.Config, logger *logging.Logger) domain.Clipboard {
	return clipboard.New(cfg.Clipboard, logger)
}

func provideScreen(
	cfg *config.Config,
	source domain.SampleSource,
	logger *logging.Logger,
	cb domain.Clipboard,
	collector *metrics.Collector,
) *screen.Controller {
	return screen.New(source, screen.Config{
		RefreshInterval: cfg.Screen.RefreshInterval,
		RefreshDelay:    cfg.Screen.RefreshDelay,
		NoticeDuration:  cfg.Screen.NoticeDuration,
	},
		screen.WithLogger(logger.With("component", "screen")),
		screen.WithClipboard(cb),
		screen.WithRecorder(collector),
	)
}

func provideVerifier(cfg *config.Config) *auth.Verifier {
	return auth.NewVerifier(cfg.IngestTokenSecret)
}

func provideHTTPServer(
	cfg *config.Config,
	ctrl *screen.Controller,
	logger *logging.Logger,
	verifier *auth.Verifier,
	collector *metrics.Collector,
) (*HTTPServer, error) {
	handler := httpapi.NewServer(ctrl,
		httpapi.WithLogger(logger),
		httpapi.WithVerifier(verifier),
		httpapi.WithMetrics(collector.Handler(), collector.HTTPMiddleware),
	)
	return NewHTTPServer(listenAddress(cfg.HttpPort), handler, logger.With("component", "http"))
}

func provideGRPCServer(
	cfg *config.Config,
	ctrl *screen.Controller,
	logger *logging.Logger,
	verifier *auth.Verifier,
	collector *metrics.Collector,
) (*grpcapi.Server, error) {
	server, err := grpcapi.NewServer(logger.With("component", "grpc"), grpcapi.NewHandler(ctrl, verifier), grpcapi.Options{
		Address:         listenAddress(cfg.GrpcPort),
		ShutdownTimeout: cfg.ShutdownTimeout,
		Registerer:      collector.Registry(),
	})
	if err != nil {
		return nil, fmt.Errorf("grpc server: %w", err)
	}
	return server, nil
}

func provideShutdownManager(cfg *config.Config, logger *logging.Logger) *ShutdownManager {
	return NewShutdownManager(cfg.ShutdownTimeout, logger)
}

func listenAddress(port int) string {
	return net.JoinHostPort("", strconv.Itoa(port))
}
