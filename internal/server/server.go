// Package server exposes the recommendation pipeline over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/spigell/career-compass/internal/ai"
	"github.com/spigell/career-compass/internal/catalog"
	"github.com/spigell/career-compass/internal/history"
	"github.com/spigell/career-compass/internal/jobs"
	"github.com/spigell/career-compass/internal/mentors"
	"github.com/spigell/career-compass/internal/profile"
)

const (
	defaultAddress         = "127.0.0.1:5000"
	defaultReadTimeout     = 15 * time.Second
	defaultShutdownTimeout = 10 * time.Second
)

var (
	// ErrAssistantDisabled is reported when no chat provider is configured.
	ErrAssistantDisabled = errors.New("assistant is not configured")
	// ErrJobsDisabled is reported when no job board client is configured.
	ErrJobsDisabled = errors.New("job search is not configured")
	// ErrHistoryDisabled is reported when no history store is configured.
	ErrHistoryDisabled = errors.New("history is not configured")
)

type Config struct {
	Address         string        `mapstructure:"address" validate:"omitempty,hostname_port"`
	ReadTimeout     time.Duration `mapstructure:"read-timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown-timeout"`
}

// Recommender is the read-only catalog API used by handlers.
type Recommender interface {
	Recommend(p *profile.Profile) (*catalog.Recommendation, error)
	Mentors(label string) []mentors.Mentor
	StoredRoadmap(label string) ([]string, bool)
}

type JobSearcher interface {
	Search(ctx context.Context, keywords string) (*jobs.Jobs, error)
}

type HistoryStore interface {
	Save(ctx context.Context, r history.Record) error
	Recent(ctx context.Context, limit int) ([]history.Record, error)
}

// Deps aggregates handler dependencies. Everything except Catalog is
// optional; endpoints backed by a missing dependency answer 503.
type Deps struct {
	Catalog   Recommender
	Jobs      JobSearcher
	Assistant ai.Assistant
	History   HistoryStore
	Logger    *zap.Logger
}

type Server struct {
	cfg    Config
	deps   Deps
	logger *zap.Logger
	engine *gin.Engine
}

func New(cfg Config, deps Deps) (*Server, error) {
	if deps.Catalog == nil {
		return nil, errors.New("catalog is required")
	}
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	if cfg.Address == "" {
		cfg.Address = defaultAddress
	}
	if cfg.ReadTimeout <= 0 {
		cfg.ReadTimeout = defaultReadTimeout
	}
	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = defaultShutdownTimeout
	}

	s := &Server{cfg: cfg, deps: deps, logger: deps.Logger}
	s.engine = s.routes()
	return s, nil
}

func (s *Server) routes() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), requestID(), requestLogger(s.logger), cors())

	r.GET("/", s.handleHome)
	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})
	r.POST("/api/predict", s.handlePredict)
	r.GET("/get_roadmap/:career", s.handleRoadmap)
	r.GET("/get_mentors/:career", s.handleMentors)
	r.GET("/api/jobs", s.handleJobs)
	r.POST("/api/chat", s.handleChat)
	r.GET("/api/history", s.handleHistory)

	return r
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves until ctx is done, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Address,
		Handler:           s.engine,
		ReadHeaderTimeout: s.cfg.ReadTimeout,
		ReadTimeout:       s.cfg.ReadTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("http server started", zap.String("address", s.cfg.Address))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve: %w", err)
	case <-ctx.Done():
	}

	s.logger.Info("shutting down http server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
