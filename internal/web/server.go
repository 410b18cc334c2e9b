// Package web serves the task page over HTTP.
package web

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"tasklist/internal/controller"
	"tasklist/internal/logfields"
	"tasklist/internal/service"
	"tasklist/internal/view"
)

// Server serves the task page for one controller.
type Server struct {
	ctrl    *controller.Controller
	style   view.Style
	metrics http.Handler
	logger  *slog.Logger
	router  *chi.Mux
}

// Option configures a Server.
type Option func(*Server)

// WithMetrics mounts h at /metrics.
func WithMetrics(h http.Handler) Option { return func(s *Server) { s.metrics = h } }

// WithLogger sets the request logger.
func WithLogger(l *slog.Logger) Option { return func(s *Server) { s.logger = l } }

// NewServer creates a server for ctrl using style for the page.
func NewServer(ctrl *controller.Controller, style view.Style, opts ...Option) *Server {
	s := &Server{
		ctrl:   ctrl,
		style:  style,
		logger: slog.Default(),
		router: chi.NewRouter(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.router.Use(requestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(s.logRequests)
	s.router.Use(middleware.Recoverer)

	s.router.Get("/", s.handlePage)
	s.router.Get("/tasks", s.handleList)
	s.router.Post("/tasks", s.handleSubmit)
	s.router.Post("/tasks/actions", s.handleAction)
	s.router.Get("/tasks.json", s.handleJSON)
	s.router.Get("/healthz", s.handleHealth)

	if s.metrics != nil {
		s.router.Method(http.MethodGet, "/metrics", s.metrics)
	}
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// ListenAndServe serves on addr until ctx is done, then shuts down.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve serves on ln until ctx is done, then shuts down.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:      s,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errc := make(chan error, 1)
	go func() { errc <- srv.Serve(ln) }()
	s.logger.Info("listening", logfields.Addr(ln.Addr().String()))

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	s.renderPage(w, r, http.StatusOK)
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	form, rows := s.ctrl.Snapshot()
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := view.RenderList(w, view.Page{Style: s.style, Form: form, Rows: rows}); err != nil {
		s.requestLogger(r).Error("render list", logfields.Error(err))
	}
}

func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	err := s.ctrl.Submit(r.Context(), controller.Submission{
		Title:    r.PostFormValue("task"),
		Priority: r.PostFormValue("priority"),
		Action:   r.PostFormValue("action"),
	})
	if err != nil {
		s.renderPage(w, r, statusOf(err))
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) handleAction(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	err := s.ctrl.Action(r.Context(), r.PostFormValue("type"), r.PostFormValue("key"))
	if err != nil {
		s.renderPage(w, r, statusOf(err))
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) handleJSON(w http.ResponseWriter, r *http.Request) {
	tasks := []service.Task{}
	err := s.ctrl.Each(r.Context(), func(t service.Task) error {
		tasks = append(tasks, t)
		return nil
	})
	if err != nil {
		http.Error(w, err.Error(), statusOf(err))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(tasks)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if !s.ctrl.Ready() {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte(`{"status":"unavailable"}`))
		return
	}
	_, _ = w.Write([]byte(`{"status":"healthy"}`))
}

func (s *Server) renderPage(w http.ResponseWriter, r *http.Request, status int) {
	form, rows := s.ctrl.Snapshot()
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := view.RenderPage(w, view.Page{Style: s.style, Form: form, Rows: rows}); err != nil {
		s.requestLogger(r).Error("render page", logfields.Error(err))
	}
}

// statusOf maps a controller error to an HTTP status.
func statusOf(err error) int {
	switch {
	case controller.IsInvalid(err), errors.Is(err, service.ErrDuplicate):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, controller.ErrNotReady):
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}
