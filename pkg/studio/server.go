package studio

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/dmitrymomot/sigkit/pkg/config"
	"github.com/dmitrymomot/sigkit/pkg/logger"
)

var (
	// ErrStart indicates that the server failed to start.
	ErrStart = errors.New("failed to start HTTP server")
	// ErrShutdown indicates that graceful shutdown failed.
	ErrShutdown = errors.New("failed to shutdown HTTP server gracefully")
	// ErrNoRasterizer is reported by the readiness probe.
	ErrNoRasterizer = errors.New("studio: no rasterizer configured")
)

// ServerOption configures a Server.
type ServerOption func(*Server)

// WithHTTPConfig copies address and timeouts from the loaded configuration.
func WithHTTPConfig(c config.HTTP) ServerOption {
	return func(s *Server) {
		if c.Addr != "" {
			s.srv.Addr = c.Addr
		}
		s.srv.ReadTimeout = c.ReadTimeout
		s.srv.WriteTimeout = c.WriteTimeout
		s.srv.IdleTimeout = c.IdleTimeout
		if c.ShutdownTimeout > 0 {
			s.shutdownTimeout = c.ShutdownTimeout
		}
	}
}

// WithServerLogger sets the logger.
func WithServerLogger(l *slog.Logger) ServerOption {
	return func(s *Server) {
		if l != nil {
			s.log = l
		}
	}
}

// WithStopHook registers a callback run after the server has shut down.
func WithStopHook(h func(context.Context)) ServerOption {
	return func(s *Server) {
		if h != nil {
			s.stopHooks = append(s.stopHooks, h)
		}
	}
}

// Server runs the studio with graceful shutdown on SIGINT and SIGTERM.
type Server struct {
	srv             *http.Server
	shutdownTimeout time.Duration
	log             *slog.Logger
	stopHooks       []func(context.Context)

	mu      sync.Mutex
	running bool
	once    sync.Once
}

// NewServer returns a server listening on :8080 unless configured otherwise.
func NewServer(opts ...ServerOption) *Server {
	s := &Server{
		srv:             &http.Server{Addr: ":8080", ReadHeaderTimeout: 10 * time.Second},
		shutdownTimeout: 10 * time.Second,
		log:             slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.log = s.log.With(logger.Component("server"))
	return s
}

// Addr is the configured listen address.
func (s *Server) Addr() string {
	return s.srv.Addr
}

// Run listens on the configured address and serves h until ctx is done or
// a termination signal arrives.
func (s *Server) Run(ctx context.Context, h http.Handler) error {
	ln, err := net.Listen("tcp", s.srv.Addr)
	if err != nil {
		return errors.Join(ErrStart, err)
	}
	return s.Serve(ctx, ln, h)
}

// Serve is Run on an existing listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener, h http.Handler) error {
	if h == nil {
		h = http.NotFoundHandler()
	}
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		_ = ln.Close()
		return errors.Join(ErrStart, errors.New("server already running"))
	}
	s.running = true
	s.srv.Handler = h
	s.mu.Unlock()

	s.log.InfoContext(ctx, "listening", slog.String("addr", ln.Addr().String()))

	errCh := make(chan error, 1)
	go func() { errCh <- s.srv.Serve(ln) }()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(stop)

	var runErr error
	select {
	case <-ctx.Done():
		runErr = s.shutdownAndWait(errCh)
	case sig := <-stop:
		s.log.Info("signal received", slog.String("signal", sig.String()))
		runErr = s.shutdownAndWait(errCh)
	case runErr = <-errCh:
	}

	if runErr != nil && !errors.Is(runErr, http.ErrServerClosed) {
		return errors.Join(ErrStart, runErr)
	}
	return nil
}

func (s *Server) shutdownAndWait(errCh <-chan error) error {
	if err := s.Shutdown(context.Background()); err != nil {
		s.log.Error("shutdown failed", logger.Error(err))
	}
	return <-errCh
}

// Shutdown drains in-flight requests. Repeated calls are no-ops.
func (s *Server) Shutdown(ctx context.Context) error {
	var err error
	s.once.Do(func() {
		ctx, cancel := context.WithTimeout(ctx, s.shutdownTimeout)
		defer cancel()
		err = s.srv.Shutdown(ctx)
		for _, h := range s.stopHooks {
			h(ctx)
		}
		s.log.Info("server stopped")
	})
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return errors.Join(ErrShutdown, err)
	}
	return nil
}

// HealthCheckHandler answers liveness probes with "ALIVE" when no checks
// are given. With checks it answers "READY", or 503 "NOT_READY" as soon
// as one fails.
func HealthCheckHandler(log *slog.Logger, checks ...func(context.Context) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		if len(checks) == 0 {
			_, _ = w.Write([]byte("ALIVE"))
			return
		}
		for _, check := range checks {
			if err := check(r.Context()); err != nil {
				log.WarnContext(r.Context(), "readiness check failed", logger.Error(err))
				w.WriteHeader(http.StatusServiceUnavailable)
				_, _ = w.Write([]byte("NOT_READY"))
				return
			}
		}
		_, _ = w.Write([]byte("READY"))
	}
}

func (s *Service) ready(context.Context) error {
	if s.raster == nil {
		return ErrNoRasterizer
	}
	return nil
}
