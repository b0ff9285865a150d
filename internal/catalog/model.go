package catalog

import (
	"net/http"

	"github.com/quietriver/campus-booking-backend/internal/pkg/apperror"
)

var (
	ErrRoomNotFound      = apperror.New(http.StatusNotFound, "room not found")
	ErrUserNotFound      = apperror.New(http.StatusNotFound, "user not found")
	ErrLecturerNotFound  = apperror.New(http.StatusNotFound, "lecturer not found")
	ErrCourseNotFound    = apperror.New(http.StatusNotFound, "course not found")
	ErrStillReferenced   = apperror.New(http.StatusConflict, "entity is referenced by an active booking")
	ErrDuplicateID       = apperror.New(http.StatusConflict, "entity with this id already exists")
	ErrInvalidEnrollment = apperror.New(http.StatusBadRequest, "enrolled_students must be non-negative")
)

// Room is a bookable lecture room. Rooms are reference data: immutable
// after creation except for administrative deletion.
type Room struct {
	ID       int64
	Building string
	Size     int
}

// User is a person known to the system. Reference data only; accounts and
// authentication live outside this service.
type User struct {
	ID       int64
	RealName string
	Email    string
}

// Lecturer is a role attached 1:1 to a User. A User need not be a Lecturer.
type Lecturer struct {
	UserID    int64
	Institute string
}

// Course is a taught course, optionally assigned to a Lecturer.
type Course struct {
	ID               int64
	Name             string
	Description      string
	LecturerID       *int64 // nil while the course is unassigned
	EnrolledStudents int
}
