package http

import (
	"github.com/quietriver/campus-booking-backend/internal/report"

	bookingHttp "github.com/quietriver/campus-booking-backend/internal/booking/http"
)

// AvailabilityRequest asks which rooms are free over a window.
type AvailabilityRequest struct {
	Date      string `form:"date" binding:"required"`
	StartHour *int   `form:"start_hour" binding:"required"`
	EndHour   *int   `form:"end_hour" binding:"required"`
}

// OccupancyRequest asks which bookings hold a room at a single hour.
type OccupancyRequest struct {
	Date string `form:"date" binding:"required"`
	Hour *int   `form:"hour" binding:"required"`
}

// CoursesRequest optionally narrows the course report to one lecturer.
type CoursesRequest struct {
	LecturerID *int64 `form:"lecturer_id" binding:"omitempty,min=1"`
}

type UnassignedCourseBookingResponse struct {
	Booking     bookingHttp.BookingResponse `json:"booking"`
	Building    string                      `json:"building"`
	CourseName  string                      `json:"course_name"`
	Description string                      `json:"description"`
}

func NewUnassignedCourseBookingResponse(r report.UnassignedCourseBooking) UnassignedCourseBookingResponse {
	return UnassignedCourseBookingResponse{
		Booking:     bookingHttp.NewBookingResponse(r.Booking),
		Building:    r.Building,
		CourseName:  r.CourseName,
		Description: r.Description,
	}
}

type CourseWithLecturerResponse struct {
	CourseID         int64  `json:"course_id"`
	CourseName       string `json:"course_name"`
	Description      string `json:"description"`
	EnrolledStudents int    `json:"enrolled_students"`
	LecturerID       *int64 `json:"lecturer_id,omitempty"`
	LecturerName     string `json:"lecturer_name,omitempty"`
	Institute        string `json:"institute,omitempty"`
}

func NewCourseWithLecturerResponse(r report.CourseWithLecturer) CourseWithLecturerResponse {
	resp := CourseWithLecturerResponse{
		CourseID:         r.Course.ID,
		CourseName:       r.Course.Name,
		Description:      r.Course.Description,
		EnrolledStudents: r.Course.EnrolledStudents,
		LecturerID:       r.Course.LecturerID,
		LecturerName:     r.RealName,
	}
	if r.Lecturer != nil {
		resp.Institute = r.Lecturer.Institute
	}
	return resp
}

type RoomResponse struct {
	ID       int64  `json:"id"`
	Building string `json:"building"`
	Size     int    `json:"size"`
}

type RoomUtilizationResponse struct {
	RoomID          int64 `json:"room_id"`
	StudentBookings int   `json:"student_bookings"`
	CourseBookings  int   `json:"course_bookings"`
	TotalBookings   int   `json:"total_bookings"`
}

type LecturerCourseLoadResponse struct {
	LecturerID  int64  `json:"lecturer_id"`
	TeacherName string `json:"teacher_name"`
	CourseCount int    `json:"course_count"`
}

type LecturerWeeklyHoursResponse struct {
	WeekNumber   int    `json:"week_number"`
	LecturerID   int64  `json:"lecturer_id"`
	LecturerName string `json:"lecturer_name"`
	TotalHours   int    `json:"total_hours"`
}

type LecturerEnrollmentResponse struct {
	LecturerID    int64   `json:"lecturer_id"`
	LecturerName  string  `json:"lecturer_name"`
	AvgEnrollment float64 `json:"avg_enrollment"`
}
