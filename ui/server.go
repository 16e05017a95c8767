package ui

import (
	"net/http"

	"normfit/app"
	"normfit/internal"
	"normfit/internal/config"
	"normfit/ports"

	"github.com/gin-gonic/gin"
)

// Server exposes fit runs over a JSON API
type Server struct {
	router   *gin.Engine
	service  *app.FitService
	exporter ports.ReportExporter
	defaults config.FitConfig
	logger   *internal.Logger
}

// NewServer creates a new API server instance
func NewServer(service *app.FitService, exporter ports.ReportExporter, defaults config.FitConfig, logger *internal.Logger) *Server {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	s := &Server{
		router:   gin.New(),
		service:  service,
		exporter: exporter,
		defaults: defaults,
		logger:   logger,
	}
	s.setupMiddleware()
	s.setupRoutes()
	return s
}

// setupRoutes configures the application routes
func (s *Server) setupRoutes() {
	s.router.GET("/healthz", s.handleHealth)

	api := s.router.Group("/api/v1")
	api.POST("/fit", s.handleFitJSON)
	api.GET("/fit", s.handleFitQuery)
	api.GET("/fit/xlsx", s.handleFitWorkbook)
	api.GET("/critical/:df", s.handleCritical)
}

// Handler returns the router for embedding in an http.Server or tests
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start starts the web server
func (s *Server) Start(addr string) error {
	s.logger.Info("Starting normfit API on http://%s", addr)
	return s.router.Run(addr)
}
