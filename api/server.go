// Package api provides the HTTP REST API server for EdgarScope.
//
// It exposes endpoints for normalized metric series, growth
// calculations, insider activity, recent filings, and WebSocket
// streaming of insider aggregation progress.
package api

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/finbrook/edgarscope/internal/config"
	"github.com/finbrook/edgarscope/internal/edgar"
)

// Server is the HTTP API server.
type Server struct {
	router chi.Router
	cfg    *config.Config
	client *edgar.Client
	hub    *WSHub
}

// NewServer creates a configured API server with all routes and
// middleware.
func NewServer(cfg *config.Config) *Server {
	client := edgar.NewClient(edgar.Options{
		UserAgent: cfg.Edgar.UserAgent,
		CacheTTL:  time.Duration(cfg.Edgar.CacheTTL) * time.Second,
		RateLimit: cfg.Edgar.RateLimit,
	})

	srv := &Server{
		cfg:    cfg,
		client: client,
		hub:    NewWSHub(),
	}
	srv.router = srv.buildRouter()
	return srv
}

// Router returns the chi router for testing.
func (s *Server) Router() chi.Router {
	return s.router
}

func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(120 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.cfg.API.CORSOrigins,
		AllowedMethods: []string{"GET", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/healthz", s.handleHealth)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/metrics", s.handleCatalog)
		r.Get("/metrics/{symbol}/{metric}", s.handleMetric)
		r.Get("/growth/{symbol}/{metric}", s.handleGrowth)
		r.Get("/insiders/{symbol}", s.handleInsiders)
		r.Get("/filings/{symbol}", s.handleFilings)
	})

	r.Get("/ws", s.handleWebSocket)

	return r
}

// ListenAndServe starts the HTTP server with graceful shutdown.
func (s *Server) ListenAndServe(addr string) error {
	httpSrv := &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go s.hub.Run()

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("HTTP server error: %v", err)
		}
	}()
	log.Printf("API listening on %s", addr)

	<-done
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return httpSrv.Shutdown(ctx)
}
