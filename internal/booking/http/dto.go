package http

import (
	"time"

	"github.com/quietriver/campus-booking-backend/internal/booking"
	"github.com/quietriver/campus-booking-backend/internal/pkg/interval"
	"github.com/quietriver/campus-booking-backend/internal/pkg/request"
)

// CreateBookingRequest carries the external form of a booking draft. Hours
// use pointers so hour 0 survives the required check.
type CreateBookingRequest struct {
	RoomID    int64  `json:"room_id" binding:"required,min=1"`
	Date      string `json:"date" binding:"required"`
	StartHour *int   `json:"start_hour" binding:"required"`
	EndHour   *int   `json:"end_hour" binding:"required"`
	Type      string `json:"booking_type" binding:"required,oneof=course student"`
	CourseID  *int64 `json:"course_id"`
	UserID    int64  `json:"user_id" binding:"required,min=1"`
}

// Validate converts and range-checks the request into a typed draft.
func (r *CreateBookingRequest) Validate() (booking.Draft, error) {
	date, err := request.ParseDate(r.Date)
	if err != nil {
		return booking.Draft{}, err
	}
	if !interval.ValidRange(*r.StartHour, *r.EndHour) {
		return booking.Draft{}, booking.ErrInvalidTimeRange
	}
	return booking.Draft{
		RoomID:    r.RoomID,
		Date:      date,
		StartHour: *r.StartHour,
		EndHour:   *r.EndHour,
		Type:      booking.Type(r.Type),
		CourseID:  r.CourseID,
		UserID:    r.UserID,
	}, nil
}

// ListBookingsRequest filters the booking list by owner or room.
type ListBookingsRequest struct {
	UserID int64 `form:"user_id" binding:"omitempty,min=1"`
	RoomID int64 `form:"room_id" binding:"omitempty,min=1"`
}

// OverlapQueryRequest asks which bookings intersect a window on a room-day.
type OverlapQueryRequest struct {
	Date      string `form:"date" binding:"required"`
	StartHour *int   `form:"start_hour" binding:"required"`
	EndHour   *int   `form:"end_hour" binding:"required"`
}

// Validate parses the date and range-checks the window.
func (r *OverlapQueryRequest) Validate() (time.Time, int, int, error) {
	date, err := request.ParseDate(r.Date)
	if err != nil {
		return time.Time{}, 0, 0, err
	}
	if !interval.ValidRange(*r.StartHour, *r.EndHour) {
		return time.Time{}, 0, 0, booking.ErrInvalidTimeRange
	}
	return date, *r.StartHour, *r.EndHour, nil
}

type BookingResponse struct {
	ID         int64     `json:"id"`
	RoomID     int64     `json:"room_id"`
	Date       string    `json:"date"`
	WeekNumber int       `json:"week_number"`
	WeekDay    string    `json:"week_day"`
	StartHour  int       `json:"start_hour"`
	EndHour    int       `json:"end_hour"`
	Type       string    `json:"booking_type"`
	CourseID   *int64    `json:"course_id,omitempty"`
	UserID     int64     `json:"user_id"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"created_at"`
}

func NewBookingResponse(b *booking.Booking) BookingResponse {
	return BookingResponse{
		ID:         b.ID,
		RoomID:     b.RoomID,
		Date:       b.Date.Format(booking.DateLayout),
		WeekNumber: b.WeekNumber(),
		WeekDay:    b.Weekday().String(),
		StartHour:  b.StartHour,
		EndHour:    b.EndHour,
		Type:       string(b.Type),
		CourseID:   b.CourseID,
		UserID:     b.UserID,
		Status:     string(b.Status),
		CreatedAt:  b.CreatedAt,
	}
}

// ConflictResponse extends the plain error body with the ids a client needs
// to offer alternative slots.
type ConflictResponse struct {
	Error                 string  `json:"error"`
	ConflictingBookingIDs []int64 `json:"conflicting_booking_ids"`
}
