// Package api serves a read-only HTTP view of a Scratch Live library file.
//
// All routes live under /api/v1 and answer with the APIResponse envelope.
// When an API key is configured every /api/v1 request must carry it in the
// X-API-Key header. Prometheus metrics are served unauthenticated at /metrics.
package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

const shutdownTimeout = 5 * time.Second

// Routes builds the router for s
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger(s.logger))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// Prometheus metrics endpoint (unprotected for scraping)
	r.Handle("/metrics", s.metrics.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		if s.config.APIKey != "" {
			r.Use(s.metrics.InstrumentAuthMiddleware(apiKeyMiddleware(s.config.APIKey)))
		}

		r.Get("/health", s.metrics.InstrumentHandler("GET", "/api/v1/health", s.handleHealth))
		r.Get("/header", s.metrics.InstrumentHandler("GET", "/api/v1/header", s.handleHeader))
		r.Get("/entries", s.metrics.InstrumentHandler("GET", "/api/v1/entries", s.handleEntries))
		r.Get("/entries/{index}", s.metrics.InstrumentHandler("GET", "/api/v1/entries/{index}", s.handleEntry))
		r.Get("/unknowns", s.metrics.InstrumentHandler("GET", "/api/v1/unknowns", s.handleUnknowns))
		r.Post("/reload", s.metrics.InstrumentHandler("POST", "/api/v1/reload", s.handleReload))
	})

	return r
}

// StartServer loads the configured file and serves the API until ctx is
// canceled.
func StartServer(ctx context.Context, loader Loader, config ServerConfig, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}
	server := NewServer(loader, config, NewMetrics(), logger)

	if _, err := server.Reload(ctx); err != nil {
		return fmt.Errorf("initial load: %w", err)
	}

	addr := fmt.Sprintf("%s:%d", config.Bind, config.Port)
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           server.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting inspection API", "addr", addr, "path", config.Path)
		logger.Info("metrics available", "url", fmt.Sprintf("http://%s/metrics", addr))
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		logger.Info("shutting down inspection API")
		return httpServer.Shutdown(shutdownCtx)
	}
}

func requestLogger(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)
			logger.Debug("http request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start),
				"request_id", middleware.GetReqID(r.Context()))
		})
	}
}
