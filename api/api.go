package api

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/sorenmh/infrastructure-shared/package-browser/config"
	"github.com/sorenmh/infrastructure-shared/package-browser/db"
	"github.com/sorenmh/infrastructure-shared/package-browser/display"
	"github.com/sorenmh/infrastructure-shared/package-browser/mendix"
	"github.com/sorenmh/infrastructure-shared/package-browser/metrics"
	"github.com/sorenmh/infrastructure-shared/package-browser/models"
)

// SourceFactory builds a packages source for the stored API configuration
type SourceFactory func(baseURL, token string) mendix.PackagesSource

type Server struct {
	config    *config.Config
	db        *db.Database
	newSource SourceFactory
	formatter *display.Formatter
	logger    *zap.Logger
	now       func() time.Time
	router    *gin.Engine
}

const Version = "1.0.0"

func NewServer(cfg *config.Config, database *db.Database, logger *zap.Logger) *Server {
	if cfg.Logging.Level == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	s := &Server{
		config: cfg,
		db:     database,
		newSource: func(baseURL, token string) mendix.PackagesSource {
			return mendix.Instrument(mendix.NewClient(baseURL, token), logger)
		},
		formatter: display.NewFormatter(cfg.Display.Locale, cfg.Location()),
		logger:    logger,
		now:       time.Now,
		router:    gin.New(),
	}

	s.router.Use(gin.Recovery(), s.requestLogger(), corsMiddleware())
	s.setupRoutes()
	s.refreshApplicationGauge()
	return s
}

func (s *Server) setupRoutes() {
	// Health check and metrics (no auth)
	s.router.GET("/health", s.handleHealth)
	s.router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// API routes (with auth)
	api := s.router.Group("/api/v1")
	api.Use(s.authMiddleware())
	{
		// Application registry
		api.GET("/apps", s.handleListApps)
		api.POST("/apps", s.handleRegisterApp)
		api.GET("/apps/:id", s.handleGetApp)
		api.DELETE("/apps/:id", s.handleDeleteApp)

		// Packages API connection
		api.GET("/config", s.handleGetConfig)
		api.PUT("/config", s.handleSaveConfig)

		// Packages
		api.GET("/apps/:id/packages", s.handleListPackages)
	}
}

func (s *Server) handleHealth(c *gin.Context) {
	dbOK := s.db.Ping() == nil

	status := "healthy"
	if !dbOK {
		status = "degraded"
	}

	c.JSON(http.StatusOK, models.HealthResponse{
		Status:             status,
		Version:            Version,
		DatabaseAccessible: dbOK,
	})
}

func (s *Server) handleListApps(c *gin.Context) {
	apps, err := s.db.ListApplications()
	if err != nil {
		s.logger.Error("failed to list applications", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list applications"})
		return
	}

	c.JSON(http.StatusOK, models.ListAppsResponse{Apps: apps, Total: len(apps)})
}

func (s *Server) handleRegisterApp(c *gin.Context) {
	var req models.RegisterAppRequest
	if !s.bindAndValidate(c, &req, req.Normalize) {
		return
	}

	app, err := s.db.CreateApplication(req.Name, req.AppID)
	if err != nil {
		s.logger.Error("failed to register application", zap.String("name", req.Name), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to register application"})
		return
	}

	s.logger.Info("application registered",
		zap.String("id", app.ID),
		zap.String("name", app.Name),
		zap.String("app_id", app.AppID),
	)
	s.refreshApplicationGauge()

	c.JSON(http.StatusCreated, app)
}

func (s *Server) handleGetApp(c *gin.Context) {
	app, ok := s.lookupApp(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, app)
}

func (s *Server) handleDeleteApp(c *gin.Context) {
	app, ok := s.lookupApp(c)
	if !ok {
		return
	}

	err := s.db.DeleteApplication(app.ID)
	if errors.Is(err, db.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "application not found"})
		return
	}
	if err != nil {
		s.logger.Error("failed to delete application", zap.String("id", app.ID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete application"})
		return
	}

	s.logger.Info("application removed", zap.String("id", app.ID), zap.String("name", app.Name))
	s.refreshApplicationGauge()

	c.Status(http.StatusNoContent)
}

func (s *Server) handleGetConfig(c *gin.Context) {
	cfg, err := s.db.GetAPIConfig()
	if errors.Is(err, db.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": errConfigNotSet})
		return
	}
	if err != nil {
		s.logger.Error("failed to load api config", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load API configuration"})
		return
	}

	c.JSON(http.StatusOK, cfg.Masked())
}

func (s *Server) handleSaveConfig(c *gin.Context) {
	var req models.SaveConfigRequest
	if !s.bindAndValidate(c, &req, req.Normalize) {
		return
	}

	cfg, err := s.db.SaveAPIConfig(req.BaseURL, req.Token)
	if err != nil {
		s.logger.Error("failed to save api config", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save API configuration"})
		return
	}

	s.logger.Info("api configuration saved", zap.String("base_url", cfg.BaseURL))
	c.JSON(http.StatusOK, cfg.Masked())
}

// bindAndValidate decodes the JSON body into req, normalizes it and runs the validator.
// It writes the 400 response itself and reports whether the handler may continue.
func (s *Server) bindAndValidate(c *gin.Context, req interface{}, normalize func()) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "Invalid request body",
			Details: err.Error(),
			Time:    time.Now(),
		})
		return false
	}

	normalize()

	if err := models.Validate(req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "Validation failed",
			Details: err.Error(),
			Time:    time.Now(),
		})
		return false
	}
	return true
}

// lookupApp resolves the :id path parameter as a local ID first, then as an application name
func (s *Server) lookupApp(c *gin.Context) (*models.Application, bool) {
	ref := c.Param("id")

	app, err := s.db.GetApplication(ref)
	if errors.Is(err, db.ErrNotFound) {
		app, err = s.db.GetApplicationByName(ref)
	}
	if errors.Is(err, db.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "application not found"})
		return nil, false
	}
	if err != nil {
		s.logger.Error("failed to get application", zap.String("ref", ref), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get application"})
		return nil, false
	}
	return app, true
}

func (s *Server) refreshApplicationGauge() {
	count, err := s.db.CountApplications()
	if err != nil {
		s.logger.Warn("failed to count applications", zap.Error(err))
		return
	}
	metrics.ApplicationsRegistered.Set(float64(count))
}

func (s *Server) Run() error {
	addr := fmt.Sprintf(":%d", s.config.Server.Port)
	s.logger.Info("starting server", zap.String("addr", addr), zap.String("version", Version))
	return s.router.Run(addr)
}
