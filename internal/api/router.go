package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"sgpj-client/internal/logging"
)

func NewRouter(h *Handler, logger *logging.Logger, basePath string) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestLoggingMiddleware(logger))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/ws", h.ServeWS)

	api := r.Group(basePath)
	{
		api.GET("/agenda/audiencias", h.GetAudiencias)
		api.GET("/agenda/diligencias", h.GetDiligencias)
		api.GET("/agenda/plazos", h.GetPlazos)
		api.GET("/agenda/revision", h.GetRevision)
		api.POST("/agenda/refresh", h.Refresh)
	}
	return r
}
