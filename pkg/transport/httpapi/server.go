package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/framescope/pkg/buildinfo"
	"github.com/matzehuels/framescope/pkg/cache"
	"github.com/matzehuels/framescope/pkg/errors"
	"github.com/matzehuels/framescope/pkg/geometry"
	"github.com/matzehuels/framescope/pkg/inspector"
	"github.com/matzehuels/framescope/pkg/recorder"
)

// maxBodyBytes bounds request bodies.
const maxBodyBytes = 8 << 20

// hierarchyTTL is how long rendered hierarchy diagrams stay cached.
const hierarchyTTL = 24 * time.Hour

// Option configures a Server.
type Option func(*Server)

// WithCache caches hierarchy diagrams rendered by graphviz.
func WithCache(c cache.Cache) Option {
	return func(s *Server) { s.cache = c }
}

// Server exposes a recorder and controller pair over HTTP.
type Server struct {
	Logger *log.Logger

	rec    *recorder.Recorder
	ctrl   *inspector.Controller
	router chi.Router
	stop   func()
	cache  cache.Cache

	mu       sync.RWMutex
	viewport geometry.Rect
}

// New creates a server and subscribes ctrl to rec. Call Close to
// unsubscribe. If logger is nil, log.Default() is used.
func New(rec *recorder.Recorder, ctrl *inspector.Controller, logger *log.Logger, opts ...Option) *Server {
	if logger == nil {
		logger = log.Default()
	}
	s := &Server{Logger: logger, rec: rec, ctrl: ctrl, cache: cache.NewNullCache()}
	for _, opt := range opts {
		opt(s)
	}
	s.stop = ctrl.Follow(context.Background(), rec)
	s.router = s.routes()
	return s
}

// SetViewport sets the area overlay snapshots cover. Without one the bounds
// of the current pass are used.
func (s *Server) SetViewport(r geometry.Rect) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.viewport = r
}

func (s *Server) currentViewport() geometry.Rect {
	s.mu.RLock()
	vp := s.viewport
	s.mu.RUnlock()
	if vp.Width > 0 && vp.Height > 0 {
		return vp
	}
	b := s.ctrl.Set().Bounds()
	return geometry.NewRect(0, 0, max(b.MaxX(), 0), max(b.MaxY(), 0))
}

// Handler returns the root handler.
func (s *Server) Handler() http.Handler { return s.router }

// Close stops following the recorder.
func (s *Server) Close() { s.stop() }

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()
	s.Logger.Info("serving inspector", "addr", addr)

	select {
	case err := <-errc:
		if err == http.ErrServerClosed {
			return nil
		}
		return errors.Wrap(errors.ErrCodeNetwork, err, "listen %s", addr)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, healthResponse{Status: "ok", Build: buildinfo.Get()})
	})

	r.Route("/v1", func(r chi.Router) {
		r.Post("/passes", s.handlePublishPass)
		r.Get("/nodes", s.handleNodes)
		r.Get("/spacings", s.handleSpacings)
		r.Get("/selection", s.handleGetSelection)
		r.Post("/selection", s.handleSetSelection)
		r.Post("/tap", s.handleTap)
		r.Post("/double-tap", s.handleDoubleTap)
		r.Post("/toggle", s.handleToggle)
		r.Get("/overlay.svg", s.handleOverlaySVG)
		r.Get("/hierarchy.dot", s.handleHierarchyDOT)
		r.Get("/hierarchy.svg", s.handleHierarchySVG)
	})
	return r
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.Logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()))
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

type errorResponse struct {
	Error string      `json:"error"`
	Code  errors.Code `json:"code,omitempty"`
}

func writeError(w http.ResponseWriter, err error) {
	writeJSON(w, statusFor(err), errorResponse{Error: errors.UserMessage(err), Code: errors.GetCode(err)})
}

func statusFor(err error) int {
	switch {
	case errors.IsNotFound(err):
		return http.StatusNotFound
	case errors.IsInvalid(err):
		return http.StatusBadRequest
	case errors.Is(err, errors.ErrCodeUnsupported):
		return http.StatusNotImplemented
	}
	return http.StatusInternalServerError
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode request body")
	}
	return nil
}
