package app

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"netmonitor/internal/logging"
)

const readHeaderTimeout = 5 * time.Second

// HTTPServer binds the REST and event-stream handler to a listener.
type HTTPServer struct {
	server   *http.Server
	listener net.Listener
	logger   *logging.Logger
}

func NewHTTPServer(address string, handler http.Handler, logger *logging.Logger) (*HTTPServer, error) {
	listener, err := net.Listen("tcp", address)
	if err != nil {
		return nil, fmt.Errorf("listen %s: %w", address, err)
	}

	return &HTTPServer{
		server: &http.Server{
			Handler:           handler,
			ReadHeaderTimeout: readHeaderTimeout,
		},
		listener: listener,
		logger:   logger,
	}, nil
}

func (s *HTTPServer) Addr() net.Addr {
	return s.listener.Addr()
}

// Serve runs until ctx is cancelled, then drains connections within timeout.
// Open event streams end when the screen stops, so they do not hold up the drain.
func (s *HTTPServer) Serve(ctx context.Context, timeout time.Duration) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- s.server.Serve(s.listener)
	}()

	s.logger.Info("HTTP server started", "address", s.listener.Addr().String())

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := s.server.Shutdown(shutdownCtx); err != nil {
		s.logger.Warn("HTTP server graceful shutdown timed out, forcing close", logging.AttachError(err)...)
		_ = s.server.Close()
		return fmt.Errorf("http shutdown: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	s.logger.Info("HTTP server stopped gracefully")
	return nil
}
