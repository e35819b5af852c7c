// Package server exposes the REST API for managing sources, browsing
// stored articles and triggering ingestion on demand.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/go-pkgz/lgr"
	"github.com/go-pkgz/rest"
	"github.com/go-pkgz/rest/logger"
	"github.com/go-pkgz/routegroup"

	"github.com/newspool/newspool/pkg/domain"
)

//go:generate moq -out mocks/config.go -pkg mocks -skip-ensure -fmt goimports . ConfigProvider
//go:generate moq -out mocks/source_store.go -pkg mocks -skip-ensure -fmt goimports . SourceStore
//go:generate moq -out mocks/article_store.go -pkg mocks -skip-ensure -fmt goimports . ArticleStore
//go:generate moq -out mocks/health_store.go -pkg mocks -skip-ensure -fmt goimports . HealthStore
//go:generate moq -out mocks/scheduler.go -pkg mocks -skip-ensure -fmt goimports . Scheduler

// Server represents HTTP server instance
type Server struct {
	config    ConfigProvider
	sources   SourceStore
	articles  ArticleStore
	health    HealthStore
	scheduler Scheduler
	version   string
	debug     bool

	lock       sync.Mutex
	httpServer *http.Server
	router     *routegroup.Bundle
}

// SourceStore interface for source operations
type SourceStore interface {
	CreateSource(ctx context.Context, src *domain.Source) error
	GetSource(ctx context.Context, id int64) (*domain.Source, error)
	GetSources(ctx context.Context, enabledOnly bool) ([]domain.Source, error)
	SetSourceActive(ctx context.Context, sourceID int64, active bool) error
}

// ArticleStore interface for article queries
type ArticleStore interface {
	GetArticle(ctx context.Context, id int64) (*domain.Article, error)
	GetArticles(ctx context.Context, filter domain.ArticleFilter) ([]domain.Article, error)
}

// HealthStore interface for the health check log
type HealthStore interface {
	GetRecentHealthChecks(ctx context.Context, sourceID int64, limit int) ([]domain.HealthCheckRecord, error)
}

// Scheduler interface for on-demand ingestion
type Scheduler interface {
	FetchAll(ctx context.Context) (*domain.FetchSummary, error)
	FetchSourceNow(ctx context.Context, sourceID int64) (*domain.SourceTestResult, error)
}

// ConfigProvider provides server configuration
type ConfigProvider interface {
	GetServerConfig() (listen string, timeout time.Duration)
}

// New initializes a new server instance
func New(cfg ConfigProvider, sources SourceStore, articles ArticleStore, health HealthStore, scheduler Scheduler, version string, debug bool) *Server {
	s := &Server{
		config:    cfg,
		sources:   sources,
		articles:  articles,
		health:    health,
		scheduler: scheduler,
		version:   version,
		debug:     debug,
		router:    routegroup.New(http.NewServeMux()),
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

// Run starts the HTTP server and handles graceful shutdown
func (s *Server) Run(ctx context.Context) error {
	listen, timeout := s.config.GetServerConfig()
	lgr.Printf("[INFO] starting server on %s", listen)

	s.lock.Lock()
	s.httpServer = &http.Server{
		Addr:         listen,
		Handler:      s.router,
		ReadTimeout:  timeout,
		WriteTimeout: timeout,
	}
	s.lock.Unlock()

	go func() {
		<-ctx.Done()
		lgr.Printf("[INFO] shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			lgr.Printf("[WARN] server shutdown error: %v", err)
		}
	}()

	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http server error: %w", err)
	}

	return nil
}

// setupMiddleware configures standard middleware for the server
func (s *Server) setupMiddleware() {
	s.router.Use(rest.AppInfo("newspool", "newspool", s.version))
	s.router.Use(rest.Ping)

	if s.debug {
		s.router.Use(logger.New(logger.Log(lgr.Default()), logger.Prefix("[DEBUG]")).Handler)
	}

	s.router.Use(rest.Recoverer(lgr.Default()))
	s.router.Use(rest.Throttle(100))
	s.router.Use(rest.SizeLimit(1024 * 1024)) // 1MB
}

// setupRoutes configures application routes
func (s *Server) setupRoutes() {
	s.router.Mount("/api/v1").Route(func(r *routegroup.Bundle) {
		r.HandleFunc("GET /status", s.statusHandler)

		r.HandleFunc("GET /sources", s.listSourcesHandler)
		r.HandleFunc("POST /sources", s.createSourceHandler)
		r.HandleFunc("GET /sources/{id}", s.getSourceHandler)
		r.HandleFunc("POST /sources/{id}/enable", s.enableSourceHandler)
		r.HandleFunc("POST /sources/{id}/disable", s.disableSourceHandler)
		r.HandleFunc("DELETE /sources/{id}", s.disableSourceHandler) // delete is a soft-disable
		r.HandleFunc("POST /sources/{id}/fetch", s.fetchSourceHandler)
		r.HandleFunc("GET /sources/{id}/health", s.sourceHealthHandler)

		r.HandleFunc("GET /articles", s.listArticlesHandler)
		r.HandleFunc("GET /articles/{id}", s.getArticleHandler)

		r.HandleFunc("POST /fetch", s.fetchAllHandler)
	})
}

// statusHandler returns server status
func (s *Server) statusHandler(w http.ResponseWriter, r *http.Request) {
	status := map[string]interface{}{
		"status":  "ok",
		"version": s.version,
		"time":    time.Now().UTC(),
	}
	RenderJSON(w, r, http.StatusOK, status)
}

// RenderJSON sends JSON response
func RenderJSON(w http.ResponseWriter, _ *http.Request, code int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			lgr.Printf("[ERROR] can't encode response to JSON: %v", err)
		}
	}
}

// RenderError sends error response as JSON
func RenderError(w http.ResponseWriter, r *http.Request, err error, code int) {
	errMsg := "unknown error"
	if err != nil {
		errMsg = err.Error()
	}
	RenderJSON(w, r, code, map[string]string{"error": errMsg})
}
