package http

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(g *gin.RouterGroup, h *Handler) {
	rooms := g.Group("/rooms")
	{
		rooms.GET("", h.ListRooms)
		rooms.GET("/:id", h.GetRoom)
		rooms.POST("", h.CreateRoom)
		rooms.DELETE("/:id", h.DeleteRoom)
	}

	users := g.Group("/users")
	{
		users.POST("", h.CreateUser)
		users.DELETE("/:id", h.DeleteUser)
	}

	g.POST("/lecturers", h.CreateLecturer)

	courses := g.Group("/courses")
	{
		courses.POST("", h.CreateCourse)
		courses.PUT("/:id/lecturer", h.AssignLecturer)
		courses.DELETE("/:id", h.DeleteCourse)
	}
}
