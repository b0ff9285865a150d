package http

import (
	"github.com/quietriver/campus-booking-backend/internal/catalog"
)

type CreateRoomRequest struct {
	Building string `json:"building" binding:"required"`
	Size     int    `json:"size" binding:"required,min=1"`
}

type RoomResponse struct {
	ID       int64  `json:"id"`
	Building string `json:"building"`
	Size     int    `json:"size"`
}

func NewRoomResponse(r catalog.Room) RoomResponse {
	return RoomResponse{ID: r.ID, Building: r.Building, Size: r.Size}
}

type CreateUserRequest struct {
	RealName string `json:"real_name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
}

type UserResponse struct {
	ID       int64  `json:"id"`
	RealName string `json:"real_name"`
	Email    string `json:"email"`
}

func NewUserResponse(u catalog.User) UserResponse {
	return UserResponse{ID: u.ID, RealName: u.RealName, Email: u.Email}
}

type CreateLecturerRequest struct {
	UserID    int64  `json:"user_id" binding:"required,min=1"`
	Institute string `json:"institute" binding:"required"`
}

type LecturerResponse struct {
	UserID    int64  `json:"user_id"`
	Institute string `json:"institute"`
}

type CreateCourseRequest struct {
	CourseName       string `json:"course_name" binding:"required"`
	Description      string `json:"description"`
	LecturerID       *int64 `json:"lecturer_id" binding:"omitempty,min=1"`
	EnrolledStudents *int   `json:"enrolled_students" binding:"required,min=0"`
}

// AssignLecturerRequest sets or clears a course's lecturer. A null
// lecturer_id detaches the course.
type AssignLecturerRequest struct {
	LecturerID *int64 `json:"lecturer_id" binding:"omitempty,min=1"`
}

type CourseResponse struct {
	ID               int64  `json:"id"`
	CourseName       string `json:"course_name"`
	Description      string `json:"description"`
	LecturerID       *int64 `json:"lecturer_id,omitempty"`
	EnrolledStudents int    `json:"enrolled_students"`
}

func NewCourseResponse(co catalog.Course) CourseResponse {
	return CourseResponse{
		ID:               co.ID,
		CourseName:       co.Name,
		Description:      co.Description,
		LecturerID:       co.LecturerID,
		EnrolledStudents: co.EnrolledStudents,
	}
}
