package booking

import (
	"fmt"
	"net/http"
	"time"

	"github.com/quietriver/campus-booking-backend/internal/pkg/apperror"
)

var (
	ErrNotFound         = apperror.New(http.StatusNotFound, "booking not found")
	ErrInvalidTimeRange = apperror.New(http.StatusBadRequest, "start_hour must be before end_hour and within 0..24")
	ErrInvalidType      = apperror.New(http.StatusBadRequest, "booking_type must be 'course' or 'student'")
	ErrCourseRequired   = apperror.New(http.StatusBadRequest, "course_id is required for course bookings")
	ErrCourseForbidden  = apperror.New(http.StatusBadRequest, "course_id must be empty for student bookings")
	ErrUnknownRoom      = apperror.New(http.StatusBadRequest, "room_id does not reference an existing room")
	ErrUnknownUser      = apperror.New(http.StatusBadRequest, "user_id does not reference an existing user")
	ErrUnknownCourse    = apperror.New(http.StatusBadRequest, "course_id does not reference an existing course")
	ErrPersistence      = apperror.New(http.StatusBadGateway, "booking decided but not persisted")
)

// DateLayout is the wire format for booking dates.
const DateLayout = "2006-01-02"

// Type partitions bookings into course sessions and individual student
// reservations.
type Type string

const (
	TypeCourse  Type = "course"
	TypeStudent Type = "student"
)

func (t Type) Valid() bool {
	return t == TypeCourse || t == TypeStudent
}

// Status marks whether a booking still occupies its interval. Cancelled
// bookings are kept (soft delete) so historical reports stay possible, but
// they no longer participate in conflict checks or aggregates.
type Status string

const (
	StatusActive    Status = "active"
	StatusCancelled Status = "cancelled"
)

// Booking is a reservation of one room for one date and a contiguous
// half-open hour range [StartHour, EndHour).
//
// UserID records who made the reservation. For course bookings it may
// differ from the course's lecturer: co-taught and delegated sessions are
// legal, so no equality is enforced.
type Booking struct {
	ID        int64
	RoomID    int64
	Date      time.Time // normalized to midnight UTC
	StartHour int
	EndHour   int
	Type      Type
	CourseID  *int64 // set iff Type == TypeCourse
	UserID    int64
	Status    Status
	CreatedAt time.Time
}

// WeekNumber is the ISO week of the booking date. Always derived, never
// stored, so it cannot drift from Date.
func (b *Booking) WeekNumber() int {
	_, week := b.Date.ISOWeek()
	return week
}

// Weekday is derived from Date the same way.
func (b *Booking) Weekday() time.Weekday {
	return b.Date.Weekday()
}

func (b *Booking) Active() bool {
	return b.Status == StatusActive
}

// Draft is a candidate booking before validation and id assignment.
type Draft struct {
	RoomID    int64
	Date      time.Time
	StartHour int
	EndHour   int
	Type      Type
	CourseID  *int64
	UserID    int64
}

// ConflictError reports an attempted double booking. It is a legitimate
// business outcome, not a system fault: the ids let a client offer
// alternatives.
type ConflictError struct {
	BookingIDs []int64
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("time range conflicts with bookings %v", e.BookingIDs)
}

// NormalizeDate strips the time-of-day component so every booking on the
// same calendar day lands in the same bucket.
func NormalizeDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
