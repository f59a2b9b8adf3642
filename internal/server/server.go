// Package server exposes the HTTP API that drives the relay.
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

	"relaybot/internal/audit"
	"relaybot/internal/auth"
	"relaybot/internal/dispatch"
	"relaybot/internal/domain"
	"relaybot/internal/metrics"
)

const maxBodySize = 1 << 20 // 1MB

// Config holds server settings.
type Config struct {
	Host           string
	Port           int
	Version        string
	MetricsEnabled bool
}

// Server wires the auth gate, dispatch engine, and read paths onto a chi
// router.
type Server struct {
	cfg     Config
	gate    *auth.Gate
	engine  *dispatch.Engine
	gw      domain.Gateway
	log     audit.Log
	logger  *slog.Logger
	router  chi.Router
	httpSrv *http.Server
}

func New(cfg Config, gate *auth.Gate, engine *dispatch.Engine, gw domain.Gateway, log audit.Log, logger *slog.Logger) *Server {
	if cfg.Version == "" {
		cfg.Version = "dev"
	}
	s := &Server{
		cfg:    cfg,
		gate:   gate,
		engine: engine,
		gw:     gw,
		log:    log,
		logger: logger,
	}
	s.router = s.buildRouter()
	return s
}

func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(countRequests)

	// The original ran with allow-all CORS for its app frontend; narrow the
	// origins per deployment.
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Get("/", s.handleRoot)

	if s.cfg.MetricsEnabled {
		r.Get("/metrics", metrics.Default.Handler())
	}

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", s.handleHealth)

		r.Group(func(r chi.Router) {
			r.Use(s.requireKey)
			r.Get("/bot/info", s.handleBotInfo)
			r.Get("/chat/{chat_id}", s.handleChatInfo)
			r.Post("/messages/send", s.handleSend)
			r.Put("/messages/edit", s.handleEdit)
			r.Delete("/messages/delete", s.handleDelete)
			r.Get("/messages/history", s.handleHistory)
			r.Post("/messages/send-bulk", s.handleSendBulk)
		})
	})

	return r
}

// Router exposes the router for tests.
func (s *Server) Router() chi.Router { return s.router }

// requireKey checks the api_key request parameter against the configured
// secret. Everything under /api except /api/health goes through here.
func (s *Server) requireKey(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := s.gate.Authorize(r.URL.Query().Get("api_key")); err != nil {
			s.logger.Warn("request rejected", "path", r.URL.Path, "remote", r.RemoteAddr)
			writeError(w, http.StatusForbidden, "Invalid API key")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func countRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		metrics.HTTPRequests.Inc()
		next.ServeHTTP(w, r)
	})
}

// Start listens until ctx is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)
	s.httpSrv = &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		IdleTimeout:       120 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	s.logger.Info("API server started", "addr", addr)

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.httpSrv.Shutdown(shutdownCtx)
	}()

	if err := s.httpSrv.ListenAndServe(); err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *Server) Stop() error {
	if s.httpSrv != nil {
		return s.httpSrv.Close()
	}
	return nil
}
