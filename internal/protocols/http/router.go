package http

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"mdcatalog/internal/normalize"
	"mdcatalog/pkg/config"
)

// maxBodyBytes caps the size of an envelope accepted by the service
const maxBodyBytes = 8 << 20

// Server manages the normalization HTTP API
type Server struct {
	router     *gin.Engine
	config     *config.Config
	normalizer normalize.Normalizer
	limiter    *rate.Limiter
	httpServer *http.Server
}

// NewServer creates a new HTTP server with all handlers
func NewServer(cfg *config.Config, normalizer normalize.Normalizer) *Server {
	mode := cfg.Server.Mode
	if mode == "" {
		mode = gin.ReleaseMode
	}
	gin.SetMode(mode)

	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(requestIDMiddleware())
	router.Use(accessLogMiddleware())
	router.Use(corsMiddleware())

	s := &Server{
		router:     router,
		config:     cfg,
		normalizer: normalizer,
	}
	if cfg.Server.RateLimit > 0 {
		s.limiter = rate.NewLimiter(rate.Limit(cfg.Server.RateLimit), cfg.Server.Burst)
	}

	s.setupRoutes()
	return s
}

// setupRoutes registers all HTTP routes
func (s *Server) setupRoutes() {
	s.router.GET("/health", s.healthCheck)

	v1 := s.router.Group("/api/v1", rateLimitMiddleware(s.limiter))
	{
		norm := v1.Group("/normalize")
		{
			norm.POST("/manga", s.normalizeManga)
			norm.POST("/manga/tags", s.normalizeMangaTags)
			norm.POST("/chapter", s.normalizeChapter)
			norm.POST("/links", s.normalizeLinks)
			norm.POST("/partial-chapters/groups", s.resolveChapterGroups)
			norm.POST("/followed-updates", s.normalizeFollowedUpdates)
		}

		v1.GET("/status/:code", s.getStatusLabel)
		v1.GET("/demographics/:code", s.getDemographicLabel)
		v1.GET("/languages/:code", s.getLanguageName)
	}

	s.router.NoRoute(func(c *gin.Context) {
		abortWithError(c, notFound(c.Request.URL.Path))
	})
}

// Start starts the HTTP server and blocks until it stops
func (s *Server) Start(addr string) error {
	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown gracefully stops a started server
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer == nil {
		return nil
	}
	return s.httpServer.Shutdown(ctx)
}

// Router returns the gin router (for testing)
func (s *Server) Router() *gin.Engine {
	return s.router
}

// healthCheck returns server health status
func (s *Server) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"time":   time.Now().Format(time.RFC3339),
	})
}
