package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os/signal"
	"syscall"
	"time"

	"github.com/MKhiriev/budget-keeper/internal/config"
	"github.com/MKhiriev/budget-keeper/internal/handler"
	"github.com/MKhiriev/budget-keeper/internal/logger"
)

// shutdownTimeout bounds the graceful shutdown of HTTP and workers together.
const shutdownTimeout = 15 * time.Second

type server struct {
	httpServer *httpServer
	background Background

	// ready receives the bound address once the listener is open.
	ready chan net.Addr

	logger *logger.Logger
}

// NewServer builds the server from the configured handlers. background is
// started before the first request is served and drained after the last.
func NewServer(handlers *handler.Handlers, background Background, cfg config.Server, logger *logger.Logger) (Server, error) {
	logger.Info().Msg("creating new server...")

	if handlers == nil || handlers.HTTP == nil {
		return nil, errNoServersAreCreated
	}

	return &server{
		httpServer: newHTTPServer(handlers.HTTP.Init(), cfg, logger),
		background: background,
		ready:      make(chan net.Addr, 1),
		logger:     logger,
	}, nil
}

func (s *server) RunServer() error {
	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGTERM,
		syscall.SIGINT,
		syscall.SIGQUIT,
	)
	defer stop()

	return s.run(ctx)
}

// Shutdown stops HTTP first so no new notification can be queued, then
// drains the background workers.
func (s *server) Shutdown(ctx context.Context) error {
	var errs []error

	if err := s.httpServer.shutdown(ctx); err != nil {
		errs = append(errs, fmt.Errorf("http server shutdown: %w", err))
	}

	if s.background != nil {
		if err := s.background.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("background shutdown: %w", err))
		}
	}

	return errors.Join(errs...)
}

func (s *server) run(ctx context.Context) error {
	listener, err := s.httpServer.listen()
	if err != nil {
		return fmt.Errorf("listen on %q: %w", s.httpServer.server.Addr, err)
	}

	if s.background != nil {
		s.background.Run(ctx)
	}

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- s.httpServer.serve(listener)
	}()
	s.ready <- listener.Addr()

	var runErr error
	select {
	case <-ctx.Done():
		s.logger.Info().Msg("stop signal received")
	case err = <-serveErr:
		runErr = errors.Join(errServerStopped, err)
		s.logger.Err(err).Msg("HTTP server stopped")
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()

	if err = s.Shutdown(shutdownCtx); err != nil {
		return errors.Join(runErr, err)
	}

	s.logger.Info().Msg("server Shutdown gracefully")
	return runErr
}
