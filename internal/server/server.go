package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/ziadkadry99/keggview/internal/session"
	"github.com/ziadkadry99/keggview/internal/site"
)

// Config holds server configuration.
type Config struct {
	Port     int
	Title    string // page title
	AllowAll bool   // allow all CORS origins (dev mode)
}

// Server serves the interactive tree page, its JSON API and the event
// websocket for one session.
type Server struct {
	cfg        Config
	sess       *session.Session
	router     chi.Router
	httpServer *http.Server
}

// New creates a server for sess.
func New(cfg Config, sess *session.Session) *Server {
	if cfg.Title == "" {
		cfg.Title = "KEGG pathways"
	}
	s := &Server{
		cfg:  cfg,
		sess: sess,
	}

	s.router = s.buildRouter()
	s.httpServer = s.newHTTPServer()
	return s
}

// NewUnavailable creates a server for a session that failed to load. The page
// shows the load error and every API call answers 503.
func NewUnavailable(cfg Config, loadErr error) *Server {
	if cfg.Title == "" {
		cfg.Title = "KEGG pathways"
	}
	s := &Server{cfg: cfg}
	r := s.baseRouter()
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := site.RenderPage(w, site.PageData{Title: cfg.Title, LoadError: loadErr.Error()}); err != nil {
			slog.Error("rendering page", "component", "server", "error", err)
		}
	})
	r.HandleFunc("/api/*", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": loadErr.Error()})
	})
	s.router = r
	s.httpServer = s.newHTTPServer()
	return s
}

// baseRouter creates the chi router with middleware and the health check.
func (s *Server) baseRouter() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	corsOpts := cors.Options{
		AllowedOrigins:   []string{"http://localhost:*", "http://127.0.0.1:*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}
	if s.cfg.AllowAll {
		corsOpts.AllowedOrigins = []string{"*"}
	}
	r.Use(cors.Handler(corsOpts))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	return r
}

// buildRouter adds the page, API and event routes to the base router.
func (s *Server) buildRouter() chi.Router {
	r := s.baseRouter()

	// The websocket outlives any request timeout.
	r.Get("/ws/events", s.handleEvents)

	r.Group(func(r chi.Router) {
		r.Use(middleware.Timeout(60 * time.Second))
		s.RegisterRoutes(r)
	})

	return r
}

// Router returns the chi router for registering additional routes.
func (s *Server) Router() chi.Router { return s.router }

// ServerConfig returns the server configuration.
func (s *Server) ServerConfig() Config { return s.cfg }

// Addr returns the local URL the server listens on.
func (s *Server) Addr() string {
	return fmt.Sprintf("http://localhost:%d", s.cfg.Port)
}

// newHTTPServer is built with the Server so Shutdown and Start can run on
// different goroutines in either order.
func (s *Server) newHTTPServer() *http.Server {
	return &http.Server{
		Addr:              fmt.Sprintf(":%d", s.cfg.Port),
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
}

// Start begins listening on the configured port. After Shutdown it returns
// http.ErrServerClosed.
func (s *Server) Start() error {
	slog.Info("keggview server listening", "component", "server", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
