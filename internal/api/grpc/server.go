package grpc

import (
	"context"
	"errors"
	"fmt"
	"net"
	"time"

	"github.com/google/uuid"
	grpc_prometheus "github.com/grpc-ecosystem/go-grpc-prometheus"
	"github.com/prometheus/client_golang/prometheus"
	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"

	"netmonitor/internal/logging"
	"netmonitor/pkg/api"
)

const (
	defaultShutdownTimeout = 10 * time.Second
	traceMetadataKey       = "x-trace-id"
)

// Options configures the gRPC server.
type Options struct {
	// Address to listen on, e.g. ":50051". Ignored when Listener is set.
	Address  string
	Listener net.Listener
	// ShutdownTimeout bounds the graceful stop before connections are cut.
	ShutdownTimeout time.Duration
	// Registerer receives the server metrics; prometheus.DefaultRegisterer when nil.
	Registerer prometheus.Registerer
}

// Server wraps the screen gRPC server and its lifecycle.
type Server struct {
	logger          *logging.Logger
	grpcServer      *grpc.Server
	listener        net.Listener
	shutdownTimeout time.Duration
}

// NewServer creates a gRPC server with logging and metrics interceptors.
func NewServer(logger *logging.Logger, service api.ScreenServiceServer, opts Options) (*Server, error) {
	if service == nil {
		return nil, errors.New("screen service is required")
	}
	if logger == nil {
		logger = logging.Discard()
	}

	listener := opts.Listener
	if listener == nil {
		if opts.Address == "" {
			return nil, errors.New("address is required")
		}
		var err error
		listener, err = net.Listen("tcp", opts.Address)
		if err != nil {
			return nil, fmt.Errorf("listen %s: %w", opts.Address, err)
		}
	}

	shutdownTimeout := opts.ShutdownTimeout
	if shutdownTimeout <= 0 {
		shutdownTimeout = defaultShutdownTimeout
	}

	metrics, err := registerMetrics(opts.Registerer)
	if err != nil {
		_ = listener.Close()
		return nil, err
	}

	server := grpc.NewServer(
		grpc.ChainUnaryInterceptor(
			loggingUnaryInterceptor(logger),
			metrics.UnaryServerInterceptor(),
		),
		grpc.ChainStreamInterceptor(
			loggingStreamInterceptor(logger),
			metrics.StreamServerInterceptor(),
		),
	)

	api.RegisterScreenServiceServer(server, service)
	metrics.InitializeMetrics(server)

	return &Server{
		logger:          logger,
		grpcServer:      server,
		listener:        listener,
		shutdownTimeout: shutdownTimeout,
	}, nil
}

func registerMetrics(registerer prometheus.Registerer) (*grpc_prometheus.ServerMetrics, error) {
	metrics := grpc_prometheus.NewServerMetrics()
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}
	if err := registerer.Register(metrics); err != nil {
		var already prometheus.AlreadyRegisteredError
		if errors.As(err, &already) {
			if existing, ok := already.ExistingCollector.(*grpc_prometheus.ServerMetrics); ok {
				return existing, nil
			}
		}
		return nil, fmt.Errorf("register metrics: %w", err)
	}
	return metrics, nil
}

// Addr returns the address the server listens on.
func (s *Server) Addr() net.Addr {
	return s.listener.Addr()
}

// Serve runs the server until ctx is cancelled, then stops it gracefully.
func (s *Server) Serve(ctx context.Context) error {
	if s == nil {
		return errors.New("server is not initialized")
	}
	defer s.listener.Close()

	errCh := make(chan error, 1)
	go func() {
		errCh <- s.grpcServer.Serve(s.listener)
	}()

	s.logger.Info("gRPC server started", "address", s.listener.Addr().String())

	select {
	case <-ctx.Done():
		s.logger.Info("gRPC server shutdown initiated")
		shutdownErr := s.shutdown()
		serveErr := <-errCh
		if errors.Is(serveErr, grpc.ErrServerStopped) {
			serveErr = nil
		}
		if serveErr != nil && shutdownErr == nil {
			shutdownErr = serveErr
		}
		return shutdownErr
	case err := <-errCh:
		if errors.Is(err, grpc.ErrServerStopped) {
			return nil
		}
		return err
	}
}

func (s *Server) shutdown() error {
	done := make(chan struct{})
	go func() {
		s.grpcServer.GracefulStop()
		close(done)
	}()

	select {
	case <-done:
		s.logger.Info("gRPC server stopped gracefully")
		return nil
	case <-time.After(s.shutdownTimeout):
		s.logger.Warn("gRPC server graceful shutdown timed out, forcing stop", "timeout", s.shutdownTimeout.String())
		s.grpcServer.Stop()
		return fmt.Errorf("graceful shutdown exceeded %s", s.shutdownTimeout)
	}
}

func loggingUnaryInterceptor(logger *logging.Logger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		start := time.Now()

		log := logger.WithTraceID(traceID(ctx))
		ctx = log.WithContext(ctx)

		resp, err := handler(ctx, req)

		fields := []any{"method", info.FullMethod, "duration", time.Since(start)}
		if err != nil {
			log.Warn("gRPC unary call completed", logging.AttachError(err, fields...)...)
		} else {
			log.Debug("gRPC unary call completed", fields...)
		}
		return resp, err
	}
}

func loggingStreamInterceptor(logger *logging.Logger) grpc.StreamServerInterceptor {
	return func(srv any, stream grpc.ServerStream, info *grpc.StreamServerInfo, handler grpc.StreamHandler) error {
		log := logger.WithTraceID(traceID(stream.Context()))
		wrapped := &streamWithContext{ServerStream: stream, ctx: log.WithContext(stream.Context())}

		start := time.Now()
		err := handler(srv, wrapped)

		fields := []any{"method", info.FullMethod, "duration", time.Since(start)}
		if err != nil {
			log.Warn("gRPC stream call completed", logging.AttachError(err, fields...)...)
		} else {
			log.Info("gRPC stream call completed", fields...)
		}
		return err
	}
}

// traceID takes the caller's x-trace-id metadata or mints a new one.
func traceID(ctx context.Context) string {
	if md, ok := metadata.FromIncomingContext(ctx); ok {
		if values := md.Get(traceMetadataKey); len(values) > 0 {
			if _, err := uuid.Parse(values[0]); err == nil {
				return values[0]
			}
		}
	}
	return uuid.NewString()
}

type streamWithContext struct {
	grpc.ServerStream
	ctx context.Context
}

func (s *streamWithContext) Context() context.Context {
	return s.ctx
}
