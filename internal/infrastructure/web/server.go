// Package web exposes the analyze/create pipeline over a local HTTP API.
package web

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/rs/cors"

	"github.com/mkessler/quickcap/internal/application"
	"github.com/mkessler/quickcap/internal/domain/settings"
	"github.com/mkessler/quickcap/internal/domain/tracker"
)

// Server hosts the quickcap HTTP API. It is meant for localhost use by the
// browser extension and similar capture surfaces.
type Server struct {
	analyze    *application.AnalyzeService
	captures   *application.CaptureService
	categories *application.CategoryService
	settings   settings.Store
	tracker    tracker.Tracker
	logger     *slog.Logger

	httpServer *http.Server
}

// Deps carries the server's collaborators. Tracker may be nil when the
// tracker connection is not configured.
type Deps struct {
	Analyze    *application.AnalyzeService
	Captures   *application.CaptureService
	Categories *application.CategoryService
	Settings   settings.Store
	Tracker    tracker.Tracker
	Logger     *slog.Logger
}

func NewServer(deps Deps) *Server {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		analyze:    deps.Analyze,
		captures:   deps.Captures,
		categories: deps.Categories,
		settings:   deps.Settings,
		tracker:    deps.Tracker,
		logger:     logger,
	}
}

// Handler builds the full middleware chain: CORS, request ids, logging.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/health", s.handleHealth)
	mux.HandleFunc("POST /api/analyze", s.handleAnalyze)
	mux.HandleFunc("POST /api/tasks", s.handleCreateTasks)
	mux.HandleFunc("GET /api/models", s.handleListModels)
	mux.HandleFunc("POST /api/connection/test", s.handleConnectionTest)
	mux.HandleFunc("GET /api/settings", s.handleGetSettings)
	mux.HandleFunc("PUT /api/settings", s.handleUpdateSettings)
	mux.HandleFunc("GET /api/categories", s.handleListCategories)
	mux.HandleFunc("POST /api/categories", s.handleSaveCategory)
	mux.HandleFunc("PUT /api/categories", s.handleSaveCategory)
	mux.HandleFunc("DELETE /api/categories/{key}", s.handleDeleteCategory)

	return cors.AllowAll().Handler(s.withRequestLog(mux))
}

// ListenAndServe runs the API until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- s.httpServer.ListenAndServe()
	}()

	s.logger.Info("http api listening", "addr", addr)

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return s.httpServer.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

func (s *Server) withRequestLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := uuid.New().String()
		w.Header().Set("X-Request-ID", requestID)

		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		s.logger.Info("request",
			"id", requestID,
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration", time.Since(start),
		)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}
