package http

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(g *gin.RouterGroup, h *Handler) {
	group := g.Group("/bookings")
	{
		group.GET("", h.List)
		group.GET("/:id", h.Get)
		group.POST("", h.Create)
		group.DELETE("/:id", h.Cancel)
	}

	// Room-scoped overlap query lives under /rooms for a natural URL.
	g.GET("/rooms/:id/bookings", h.Overlapping)
}
