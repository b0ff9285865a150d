package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	bookingHttp "github.com/quietriver/campus-booking-backend/internal/booking/http"
	"github.com/quietriver/campus-booking-backend/internal/pkg/request"
	"github.com/quietriver/campus-booking-backend/internal/pkg/response"
	"github.com/quietriver/campus-booking-backend/internal/report"
)

type Handler struct {
	engine *report.Engine
}

func NewHandler(engine *report.Engine) *Handler {
	return &Handler{engine: engine}
}

func (h *Handler) UnassignedCourseBookings(c *gin.Context) {
	rows := h.engine.UnassignedCourseBookings(c.Request.Context())
	items := make([]UnassignedCourseBookingResponse, len(rows))
	for i, r := range rows {
		items[i] = NewUnassignedCourseBookingResponse(r)
	}
	c.JSON(http.StatusOK, response.NewListResponse(items))
}

func (h *Handler) Courses(c *gin.Context) {
	var req CoursesRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: err.Error()})
		return
	}

	rows, err := h.engine.CoursesForLecturer(c.Request.Context(), req.LecturerID)
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]CourseWithLecturerResponse, len(rows))
	for i, r := range rows {
		items[i] = NewCourseWithLecturerResponse(r)
	}
	c.JSON(http.StatusOK, response.NewListResponse(items))
}

func (h *Handler) RoomAvailability(c *gin.Context) {
	var req AvailabilityRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: err.Error()})
		return
	}

	date, err := request.ParseDate(req.Date)
	if err != nil {
		response.Error(c, err)
		return
	}

	rooms, err := h.engine.RoomAvailability(c.Request.Context(), date, *req.StartHour, *req.EndHour)
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]RoomResponse, len(rooms))
	for i, r := range rooms {
		items[i] = RoomResponse{ID: r.ID, Building: r.Building, Size: r.Size}
	}
	c.JSON(http.StatusOK, response.NewListResponse(items))
}

func (h *Handler) RoomOccupancy(c *gin.Context) {
	var idReq request.ByIDRequest
	if err := c.ShouldBindUri(&idReq); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: "invalid room id"})
		return
	}

	var req OccupancyRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{Error: err.Error()})
		return
	}

	date, err := request.ParseDate(req.Date)
	if err != nil {
		response.Error(c, err)
		return
	}

	bookings, err := h.engine.BookingsAt(c.Request.Context(), idReq.ID, date, *req.Hour)
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]bookingHttp.BookingResponse, len(bookings))
	for i, b := range bookings {
		items[i] = bookingHttp.NewBookingResponse(b)
	}
	c.JSON(http.StatusOK, response.NewListResponse(items))
}

func (h *Handler) RoomUtilization(c *gin.Context) {
	rows := h.engine.RoomUtilizations(c.Request.Context())
	items := make([]RoomUtilizationResponse, len(rows))
	for i, r := range rows {
		items[i] = RoomUtilizationResponse{
			RoomID:          r.RoomID,
			StudentBookings: r.StudentBookings,
			CourseBookings:  r.CourseBookings,
			TotalBookings:   r.TotalBookings,
		}
	}
	c.JSON(http.StatusOK, response.NewListResponse(items))
}

func (h *Handler) LecturerCourseLoad(c *gin.Context) {
	rows := h.engine.LecturerCourseLoads(c.Request.Context())
	items := make([]LecturerCourseLoadResponse, len(rows))
	for i, r := range rows {
		items[i] = LecturerCourseLoadResponse{
			LecturerID:  r.LecturerID,
			TeacherName: r.TeacherName,
			CourseCount: r.CourseCount,
		}
	}
	c.JSON(http.StatusOK, response.NewListResponse(items))
}

func (h *Handler) LecturerWeeklyHours(c *gin.Context) {
	rows := h.engine.LecturerWeeklyHoursReport(c.Request.Context())
	items := make([]LecturerWeeklyHoursResponse, len(rows))
	for i, r := range rows {
		items[i] = LecturerWeeklyHoursResponse{
			WeekNumber:   r.WeekNumber,
			LecturerID:   r.LecturerID,
			LecturerName: r.LecturerName,
			TotalHours:   r.TotalHours,
		}
	}
	c.JSON(http.StatusOK, response.NewListResponse(items))
}

func (h *Handler) AverageEnrollment(c *gin.Context) {
	rows := h.engine.AverageEnrollmentByLecturer(c.Request.Context())
	items := make([]LecturerEnrollmentResponse, len(rows))
	for i, r := range rows {
		items[i] = LecturerEnrollmentResponse{
			LecturerID:    r.LecturerID,
			LecturerName:  r.LecturerName,
			AvgEnrollment: r.AvgEnrollment,
		}
	}
	c.JSON(http.StatusOK, response.NewListResponse(items))
}
