// Package http provides the HTTP API for draftd.
package http

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/fyrsmithlabs/draftd/internal/llm"
	"github.com/fyrsmithlabs/draftd/internal/workflow"
)

// Runner executes one post generation workflow. Satisfied by
// *workflow.Engine; narrowed to an interface for testing.
type Runner interface {
	Run(ctx context.Context, req workflow.Request) (*workflow.State, error)
}

// Server provides HTTP endpoints for draftd.
type Server struct {
	echo   *echo.Echo
	runner Runner
	logger *zap.Logger
	config *Config
}

// Config holds HTTP server configuration.
type Config struct {
	Host string
	Port int

	// DefaultDrafts is applied when a request omits the draft target.
	DefaultDrafts int
}

// NewServer creates a new HTTP server.
func NewServer(runner Runner, logger *zap.Logger, cfg *Config) (*Server, error) {
	if runner == nil {
		return nil, fmt.Errorf("runner cannot be nil")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger is required for request tracking and debugging")
	}
	if cfg == nil {
		cfg = &Config{
			Host:          "localhost",
			Port:          8093,
			DefaultDrafts: 3,
		}
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// Middleware
	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			duration := time.Since(start)

			logger.Info("http request",
				zap.String("method", c.Request().Method),
				zap.String("uri", c.Request().RequestURI),
				zap.Int("status", c.Response().Status),
				zap.Duration("duration", duration),
				zap.String("request_id", c.Response().Header().Get(echo.HeaderXRequestID)),
			)

			return err
		}
	})

	s := &Server{
		echo:   e,
		runner: runner,
		logger: logger,
		config: cfg,
	}

	// Register routes
	s.registerRoutes()

	return s, nil
}

// registerRoutes sets up the HTTP endpoints.
func (s *Server) registerRoutes() {
	// Health check
	s.echo.GET("/health", s.handleHealth)

	// API v1 routes
	v1 := s.echo.Group("/api/v1")
	v1.POST("/posts", s.handlePosts)
}

// PostsRequest is the request body for POST /api/v1/posts.
type PostsRequest struct {
	Text           string `json:"text"`
	TargetAudience string `json:"target_audience"`
	Drafts         int    `json:"drafts"`
}

// PostsResponse is the response body for POST /api/v1/posts.
type PostsResponse struct {
	RunID        string              `json:"run_id"`
	EditText     string              `json:"edit_text"`
	Tweet        *workflow.Workspace `json:"tweet"`
	LinkedInPost *workflow.Workspace `json:"linkedin_post"`
}

// HealthResponse is the response body for GET /health.
type HealthResponse struct {
	Status string `json:"status"`
}

// handleHealth returns a simple health check response.
func (s *Server) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, HealthResponse{Status: "ok"})
}

// handlePosts runs one workflow and returns the fully populated result.
func (s *Server) handlePosts(c echo.Context) error {
	var req PostsRequest
	if err := c.Bind(&req); err != nil {
		s.logger.Warn("invalid posts request", zap.Error(err))
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	if req.Drafts == 0 {
		req.Drafts = s.config.DefaultDrafts
	}

	wfReq := workflow.Request{
		UserText:       req.Text,
		TargetAudience: req.TargetAudience,
		Drafts:         req.Drafts,
	}
	if err := wfReq.Validate(); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	state, err := s.runner.Run(c.Request().Context(), wfReq)
	if err != nil {
		var genErr *llm.GenerationError
		if errors.As(err, &genErr) {
			// Generation failures abort the run with no partial state;
			// report the reason verbatim.
			return echo.NewHTTPError(http.StatusBadGateway, err.Error())
		}
		s.logger.Error("workflow run failed", zap.Error(err))
		return echo.NewHTTPError(http.StatusInternalServerError, "workflow execution failed")
	}

	return c.JSON(http.StatusOK, PostsResponse{
		RunID:        state.RunID,
		EditText:     state.EditText,
		Tweet:        state.Tweet,
		LinkedInPost: state.LinkedInPost,
	})
}

// Start begins listening on the configured address. Blocks until the server
// stops.
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)
	s.logger.Info("starting http server", zap.String("addr", addr))

	if err := s.echo.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down http server")
	return s.echo.Shutdown(ctx)
}

// Handler exposes the underlying handler for tests.
func (s *Server) Handler() http.Handler {
	return s.echo
}
