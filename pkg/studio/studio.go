package studio

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/dmitrymomot/sigkit/handler"
	"github.com/dmitrymomot/sigkit/pkg/clientip"
	"github.com/dmitrymomot/sigkit/pkg/clipboard"
	"github.com/dmitrymomot/sigkit/pkg/export"
	"github.com/dmitrymomot/sigkit/pkg/file"
	"github.com/dmitrymomot/sigkit/pkg/logger"
	"github.com/dmitrymomot/sigkit/pkg/preview"
	"github.com/dmitrymomot/sigkit/pkg/ratelimiter"
	"github.com/dmitrymomot/sigkit/pkg/requestid"
	"github.com/dmitrymomot/sigkit/pkg/signature"
)

// Default upload and body limits.
const (
	DefaultMaxBodyBytes = 6 << 20
	DefaultLogoMaxBytes = 5 << 20
	DefaultLogoMaxSide  = 400
)

// Option configures a Service.
type Option func(*Service)

// WithRegistry replaces the in-memory workspace registry.
func WithRegistry(r *preview.Registry) Option {
	return func(s *Service) {
		if r != nil {
			s.workspaces = r
		}
	}
}

// WithStore replaces the saved signature store.
func WithStore(st *signature.Store) Option {
	return func(s *Service) {
		if st != nil {
			s.store = st
		}
	}
}

// WithStorage enables downloads into a storage backend. Artifacts are
// stored under random keys and removed when their workspace goes away.
func WithStorage(st file.Storage) Option {
	return func(s *Service) { s.storage = st }
}

// WithClipboard shares one clipboard between all workspaces, typically
// the system clipboard of a desktop session. Without it every workspace
// gets an in-memory clipboard that can be read back over HTTP.
func WithClipboard(c export.Clipboard) Option {
	return func(s *Service) { s.clipboard = c }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.log = l
		}
	}
}

// WithViews overrides components. Nil fields keep their defaults.
func WithViews(v Views) Option {
	return func(s *Service) { s.views = v.withDefaults() }
}

// WithLogoLimits caps logo uploads.
func WithLogoLimits(maxBytes int64, maxSide int) Option {
	return func(s *Service) {
		if maxBytes > 0 {
			s.logoMaxBytes = maxBytes
		}
		if maxSide > 0 {
			s.logoMaxSide = maxSide
		}
	}
}

// WithMaxBodyBytes caps request bodies.
func WithMaxBodyBytes(n int64) Option {
	return func(s *Service) {
		if n > 0 {
			s.maxBody = n
		}
	}
}

// WithRateLimit throttles exports, downloads and HTML rendering per client
// address.
func WithRateLimit(l *ratelimiter.Limiter) Option {
	return func(s *Service) { s.limiter = l }
}

// WithExports serves local downloads under prefix.
func WithExports(prefix string, h http.Handler) Option {
	return func(s *Service) {
		s.exportsPrefix, s.exports = prefix, h
	}
}

// Service is the signature studio web application.
type Service struct {
	workspaces *preview.Registry
	store      *signature.Store
	raster     export.Rasterizer
	storage    file.Storage
	clipboard  export.Clipboard
	views      Views
	log        *slog.Logger
	base       *slog.Logger

	logoMaxBytes int64
	logoMaxSide  int
	maxBody      int64

	exportsPrefix string
	exports       http.Handler
	limiter       *ratelimiter.Limiter

	mu        sync.Mutex
	memory    map[string]*clipboard.Memory
	artifacts map[string][]string

	errorHandler handler.ErrorHandler[handler.Context]
}

// New creates the studio around a rasterizer.
func New(r export.Rasterizer, opts ...Option) *Service {
	s := &Service{
		workspaces:   preview.NewRegistry(preview.RegistryConfig{}),
		store:        signature.NewStore(),
		raster:       r,
		views:        DefaultViews(),
		log:          slog.Default(),
		logoMaxBytes: DefaultLogoMaxBytes,
		logoMaxSide:  DefaultLogoMaxSide,
		maxBody:      DefaultMaxBodyBytes,
		memory:       make(map[string]*clipboard.Memory),
		artifacts:    make(map[string][]string),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.base = s.log
	s.log = s.log.With(logger.Component("studio"))
	s.workspaces.OnEvict(s.evicted)
	s.errorHandler = handler.NewErrorHandler(s.log, handler.ErrorHandlerConfig{
		ErrorPage:  s.views.ErrorPage,
		ErrorToast: s.views.ErrorToast,
	})
	return s
}

// Workspaces exposes the registry, mainly for readiness checks.
func (s *Service) Workspaces() *preview.Registry {
	return s.workspaces
}

// Handle returns the studio router.
func (s *Service) Handle() http.Handler {
	r := chi.NewRouter()
	r.Use(
		requestid.Middleware,
		clientip.Middleware,
		middleware.CleanPath,
		middleware.Recoverer,
		middleware.RequestSize(s.maxBody),
		s.accessLog,
	)
	r.NotFound(s.fail(handler.ErrNotFound))
	r.MethodNotAllowed(s.fail(handler.ErrMethodNotAllowed))

	r.Get("/healthz", HealthCheckHandler(s.log))
	r.Get("/readyz", HealthCheckHandler(s.log, s.ready))
	if s.exports != nil && s.exportsPrefix != "" {
		r.Mount(s.exportsPrefix, http.StripPrefix(s.exportsPrefix, s.exports))
	}

	r.Get("/", handler.Wrap(s.home,
		handler.WithErrorHandler[handler.Context, struct{}](s.errorHandler),
	))
	r.Post("/w", handler.Wrap(s.createWorkspace,
		handler.WithErrorHandler[handler.Context, struct{}](s.errorHandler),
	))
	r.Route("/w/{workspace}", s.workspaceRoutes)
	r.Route("/api", s.apiRoutes)
	return r
}

// accessLog records one line per request.
func (s *Service) accessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.log.LogAttrs(r.Context(), slog.LevelDebug, "request",
			logger.RequestID(requestid.FromContext(r.Context())),
			slog.String("client_ip", clientip.FromContext(r.Context())),
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Int("status", ww.Status()),
			slog.Int("bytes", ww.BytesWritten()),
			logger.Duration(time.Since(start)),
		)
	})
}

// throttle spends one token of the client address per request. Without a
// limiter it is a no-op.
func (s *Service) throttle(next http.Handler) http.Handler {
	if s.limiter == nil {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		res, err := s.limiter.Allow(r.Context(), clientip.FromContext(r.Context()))
		if err != nil {
			s.errorHandler(handler.NewContext(w, r), err)
			return
		}
		res.SetHeaders(w.Header())
		if !res.Allowed() {
			s.errorHandler(handler.NewContext(w, r), handler.ErrTooManyRequests)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Service) fail(err error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.errorHandler(handler.NewContext(w, r), err)
	}
}

// workspaceClipboard returns the clipboard exports of a workspace write to.
func (s *Service) workspaceClipboard(id string) export.Clipboard {
	if s.clipboard != nil {
		return s.clipboard
	}
	return s.memoryFor(id)
}

func (s *Service) memoryFor(id string) *clipboard.Memory {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.memory[id]
	if !ok {
		m = clipboard.NewMemory()
		s.memory[id] = m
	}
	return m
}

// remember records an artifact key stored for a workspace.
func (s *Service) remember(id, key string) {
	s.mu.Lock()
	s.artifacts[id] = append(s.artifacts[id], key)
	s.mu.Unlock()
}

// forget drops the in-memory state of a workspace and returns the keys of
// its stored artifacts.
func (s *Service) forget(id string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.memory, id)
	keys := s.artifacts[id]
	delete(s.artifacts, id)
	return keys
}

// purge removes stored artifacts. Keys already gone are skipped.
func (s *Service) purge(ctx context.Context, id string, keys []string) {
	if s.storage == nil {
		return
	}
	for _, key := range keys {
		if !s.storage.Exists(ctx, key) {
			continue
		}
		if err := s.storage.Delete(ctx, key); err != nil {
			s.log.WarnContext(ctx, "delete artifact", logger.WorkspaceID(id), slog.String("key", key), logger.Error(err))
		}
	}
}

// evicted runs when the registry lets go of a workspace. It runs under the
// registry lock, so storage is cleaned up in the background.
func (s *Service) evicted(id string) {
	keys := s.forget(id)
	if len(keys) == 0 || s.storage == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		s.purge(ctx, id, keys)
	}()
}

// dispatcher builds the export dispatcher of one workspace.
func (s *Service) dispatcher(id string) *export.Dispatcher {
	log := s.base.With(logger.WorkspaceID(id))
	opts := []export.Option{
		export.WithClipboard(s.workspaceClipboard(id)),
		export.WithNotifier(export.NewLogNotifier(log)),
		export.WithLogger(log.With(logger.Component("export"))),
	}
	if s.storage != nil {
		opts = append(opts, export.WithSink(export.NewStorageSink(s.storage, func(key string) {
			s.remember(id, key)
		})))
	}
	return export.NewDispatcher(s.raster, opts...)
}
