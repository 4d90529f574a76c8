package ui

import (
	"io/fs"
	"net/http"

	"github.com/gin-gonic/gin"
)

// setupMiddleware configures Gin middleware
func (s *Server) setupMiddleware() {
	s.router.Use(gin.Logger(), gin.Recovery())
	s.router.MaxMultipartMemory = 32 << 20

	staticFS, err := fs.Sub(embeddedFiles, "static")
	if err != nil {
		s.logger.Error("static filesystem unavailable: %v", err)
		return
	}
	s.logger.Debug("Serving static files from embedded FS at /static")
	s.router.StaticFS("/static", http.FS(staticFS))
}
