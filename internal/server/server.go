// Package server wires the HTTP router, middleware and lifecycle.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/moniyo/financequest/internal/eventlog"
	"github.com/moniyo/financequest/internal/gamification"
	"github.com/moniyo/financequest/internal/handler"
	"github.com/moniyo/financequest/internal/metrics"
	"github.com/moniyo/financequest/internal/progress"
)

// Config holds the transport settings
type Config struct {
	Port           int
	APIKey         string
	TrustedProxies []string
	MaxBodyBytes   int64
}

// Deps are the services behind the routes
type Deps struct {
	Store      handler.Pinger
	Progress   progress.Service
	EventLog   eventlog.Service
	Quests     handler.QuestLister
	Engine     *gamification.Engine
	DailyXPCap int
	Storage    string
}

type Server struct {
	httpServer *http.Server
	router     chi.Router
}

// NewServer creates a new Server instance
func NewServer(cfg Config, deps Deps) *Server {
	if cfg.MaxBodyBytes <= 0 {
		cfg.MaxBodyBytes = DefaultMaxBodyBytes
	}
	if deps.Engine == nil {
		deps.Engine = gamification.Default()
	}
	if cfg.APIKey == "" {
		slog.Default().Warn(LogMsgAuthDisabled)
	}

	r := chi.NewRouter()

	// Outermost first
	ips := NewClientIPResolver(cfg.TrustedProxies)
	monitor := NewClientMonitor()
	r.Use(requestIDMiddleware)
	r.Use(SecurityHeadersMiddleware())
	r.Use(RateLimitMiddleware(ips, monitor))
	r.Use(AuthMiddleware(cfg.APIKey, ips, monitor))
	r.Use(RequestSizeLimitMiddleware(cfg.MaxBodyBytes))
	r.Use(metrics.Middleware)
	r.Use(loggingMiddleware)

	r.Get("/healthz", handler.HandleHealthz())
	r.Get("/readyz", handler.HandleReadyz(deps.Store))
	r.Get("/version", handler.HandleVersion(deps.Storage))
	r.Handle("/metrics", promhttp.Handler())

	progressHandler := handler.NewProgressHandler(deps.Progress, deps.EventLog)
	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/levels", handler.HandleGetLevels(deps.Engine, deps.DailyXPCap))
		r.Get("/badges", handler.HandleGetBadges(deps.Engine))
		r.Get("/quests", handler.HandleListQuests(deps.Quests))

		r.Post(handler.PatternUserProgress, progressHandler.HandleInitProgress)
		r.Get(handler.PatternUserProgress, progressHandler.HandleGetProgress)
		r.Get(handler.PatternUserActivity, progressHandler.HandleGetActivity)
		r.Post(handler.PatternQuestComplete, progressHandler.HandleCompleteQuest)
		r.Get(handler.PatternSavings, progressHandler.HandleListSavings)
		r.Post(handler.PatternSavings, progressHandler.HandleRecordSavings)
		r.Put(handler.PatternSavingsEvent, progressHandler.HandleUpdateSavings)
		r.Delete(handler.PatternSavingsEvent, progressHandler.HandleDeleteSavings)
	})

	r.Get("/swagger/*", httpSwagger.WrapHandler)

	return &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf(":%d", cfg.Port),
			Handler:           r,
			ReadHeaderTimeout: readHeaderTimeout,
			ReadTimeout:       readTimeout,
			WriteTimeout:      writeTimeout,
			IdleTimeout:       idleTimeout,
		},
		router: r,
	}
}

// Handler exposes the router
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start serves until Stop is called. A clean shutdown returns nil.
func (s *Server) Start() error {
	slog.Default().Info(LogMsgServerStarting, "addr", s.httpServer.Addr)
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Stop stops the server gracefully
func (s *Server) Stop(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
