package http

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(g *gin.RouterGroup, h *Handler) {
	group := g.Group("/reports")
	{
		group.GET("/unassigned-course-bookings", h.UnassignedCourseBookings)
		group.GET("/courses", h.Courses)
		group.GET("/room-availability", h.RoomAvailability)
		group.GET("/rooms/:id/occupancy", h.RoomOccupancy)
		group.GET("/room-utilization", h.RoomUtilization)
		group.GET("/lecturer-course-load", h.LecturerCourseLoad)
		group.GET("/lecturer-weekly-hours", h.LecturerWeeklyHours)
		group.GET("/average-enrollment", h.AverageEnrollment)
	}
}
