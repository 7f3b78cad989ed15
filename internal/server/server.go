// Package server exposes the hhradar query surface over HTTP. All boundary
// payloads are JSON; the route layout mirrors the classic parser UI endpoints.
package server

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"hhradar/internal/service"
)

// Version is reported by the health endpoint.
const Version = "1.0.0"

// Server wires the service into a gin router.
type Server struct {
	svc    *service.Service
	logger *slog.Logger
}

// New returns a configured Server.
func New(svc *service.Service, logger *slog.Logger) *Server {
	return &Server{svc: svc, logger: logger}
}

// Router builds the gin engine with all routes registered.
func (s *Server) Router() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/health", s.health)

	api := r.Group("/api")
	api.POST("/collect", s.collect)
	api.GET("/vacancies", s.listVacancies)
	api.POST("/filter-vacancies", s.filterVacancies)
	api.GET("/statistics", s.statistics)
	api.POST("/generate-letter", s.generateLetter)

	return r
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"service": "hhradar",
		"version": Version,
	})
}
