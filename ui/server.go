package ui

import (
	"context"
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"time"

	"csvexplorer/app"
	"csvexplorer/internal"
	"csvexplorer/internal/config"
	"csvexplorer/ui/middleware"

	"github.com/gin-gonic/gin"
)

//go:embed templates/*.html static/css/*
var embeddedFiles embed.FS

// Server is the web shell around the explorer: one page that reruns the
// analysis on every interaction, plus downloads and a JSON API
type Server struct {
	router    *gin.Engine
	templates *template.Template
	explorer  *app.Explorer
	sessions  *SessionStore
	config    *config.Config
	logger    *internal.Logger
}

// NewServer creates a new web server instance
func NewServer(cfg *config.Config, explorer *app.Explorer, sessions *SessionStore) (*Server, error) {
	gin.SetMode(cfg.Server.GinMode)

	templates, err := parseTemplates()
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	s := &Server{
		router:    gin.New(),
		templates: templates,
		explorer:  explorer,
		sessions:  sessions,
		config:    cfg,
		logger:    internal.DefaultLogger.Component("Server"),
	}

	s.setupMiddleware()
	s.setupRoutes()
	return s, nil
}

// setupRoutes configures the application routes
func (s *Server) setupRoutes() {
	cfg := s.config
	s.router.GET("/healthz", s.handleHealth)

	page := s.router.Group("/", middleware.EnsureSession(int(s.config.Session.TTL.Seconds())))
	page.GET("/", s.handleIndex)
	page.POST("/upload", s.handleUpload)
	page.POST("/reset", s.handleReset)
	page.GET("/chart.svg", s.handleChart)
	page.GET("/download", s.handleDownloadCSV)
	page.GET("/download.xlsx", s.handleDownloadXLSX)
	page.GET("/report", s.handleReport)
	page.GET("/report.md", s.handleReportMarkdown)

	api := NewAPI(s.explorer, cfg.Upload.MaxBytes())
	s.router.Any("/api/*path", gin.WrapH(api))
}

// Handler exposes the router for http.Server and tests
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start serves on addr until ctx is cancelled, then shuts down gracefully
func (s *Server) Start(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("Starting CSV Explorer on http://%s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.config.Server.ShutdownTimeout)
	defer cancel()
	s.logger.Info("Shutting down (timeout %s)", s.config.Server.ShutdownTimeout)
	return srv.Shutdown(shutdownCtx)
}
