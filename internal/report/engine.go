// Package report computes read-only aggregates over the booking store and
// the entity catalog. Nothing here mutates state; every operation is a
// bounded local computation over a snapshot of the buckets it touches.
package report

import (
	"context"
	"slices"
	"time"

	"github.com/quietriver/campus-booking-backend/internal/booking"
	"github.com/quietriver/campus-booking-backend/internal/catalog"
	"github.com/quietriver/campus-booking-backend/internal/pkg/interval"
)

// UnassignedCourseBooking is a room occupied by a course that currently has
// no lecturer.
type UnassignedCourseBooking struct {
	Booking     *booking.Booking
	Building    string
	CourseName  string
	Description string
}

// CourseWithLecturer joins a course with its lecturer's profile, where one
// is assigned.
type CourseWithLecturer struct {
	Course   catalog.Course
	Lecturer *catalog.Lecturer
	RealName string // lecturer's name, empty when unassigned
}

// RoomUtilization counts a room's active bookings partitioned by type.
type RoomUtilization struct {
	RoomID          int64
	StudentBookings int
	CourseBookings  int
	TotalBookings   int
}

// LecturerCourseLoad counts the courses assigned to a lecturer.
type LecturerCourseLoad struct {
	LecturerID  int64
	TeacherName string
	CourseCount int
}

// LecturerWeeklyHours sums a lecturer's booked teaching hours within one
// ISO week.
type LecturerWeeklyHours struct {
	WeekNumber   int
	LecturerID   int64
	LecturerName string
	TotalHours   int
}

// LecturerEnrollment is the mean enrollment across a lecturer's courses.
type LecturerEnrollment struct {
	LecturerID    int64
	LecturerName  string
	AvgEnrollment float64
}

// Engine answers reporting queries. It holds no state of its own.
type Engine struct {
	store *booking.Store
	cat   *catalog.Catalog
}

func NewEngine(store *booking.Store, cat *catalog.Catalog) *Engine {
	return &Engine{store: store, cat: cat}
}

// UnassignedCourseBookings lists active course bookings whose course has no
// lecturer, ordered by booking date.
func (e *Engine) UnassignedCourseBookings(ctx context.Context) []UnassignedCourseBooking {
	var out []UnassignedCourseBooking
	for _, b := range e.store.ListAll() {
		if !b.Active() || b.CourseID == nil {
			continue
		}
		co, err := e.cat.Course(*b.CourseID)
		if err != nil || co.LecturerID != nil {
			continue
		}
		row := UnassignedCourseBooking{
			Booking:     b,
			CourseName:  co.Name,
			Description: co.Description,
		}
		if rm, err := e.cat.Room(b.RoomID); err == nil {
			row.Building = rm.Building
		}
		out = append(out, row)
	}
	// ListAll is already date-ordered; keep that order.
	return out
}

// CoursesForLecturer lists courses joined with the lecturer profile. A nil
// lecturerID means all courses, including unassigned ones; a non-nil id
// restricts to that lecturer and fails with NotFound when no such lecturer
// exists.
func (e *Engine) CoursesForLecturer(ctx context.Context, lecturerID *int64) ([]CourseWithLecturer, error) {
	if lecturerID != nil {
		if _, err := e.cat.Lecturer(*lecturerID); err != nil {
			return nil, err
		}
	}

	var out []CourseWithLecturer
	for _, co := range e.cat.Courses() {
		if lecturerID != nil {
			if co.LecturerID == nil || *co.LecturerID != *lecturerID {
				continue
			}
		}
		row := CourseWithLecturer{Course: co}
		if co.LecturerID != nil {
			if l, err := e.cat.Lecturer(*co.LecturerID); err == nil {
				lec := l
				row.Lecturer = &lec
				if u, err := e.cat.User(l.UserID); err == nil {
					row.RealName = u.RealName
				}
			}
		}
		out = append(out, row)
	}
	return out, nil
}

// RoomAvailability lists the rooms with no active booking overlapping
// [start, end) on the given date, ordered by room id.
func (e *Engine) RoomAvailability(ctx context.Context, date time.Time, start, end int) ([]catalog.Room, error) {
	if !interval.ValidRange(start, end) {
		return nil, booking.ErrInvalidTimeRange
	}

	var out []catalog.Room
	for r := range e.cat.Rooms() {
		if len(e.store.FindOverlapping(r.ID, date, start, end)) == 0 {
			out = append(out, r)
		}
	}
	return out, nil
}

// BookingsAt is the single-hour degenerate case of FindOverlapping: which
// bookings occupy the room during [hour, hour+1).
func (e *Engine) BookingsAt(ctx context.Context, roomID int64, date time.Time, hour int) ([]*booking.Booking, error) {
	if !interval.ValidRange(hour, hour+1) {
		return nil, booking.ErrInvalidTimeRange
	}
	if _, err := e.cat.Room(roomID); err != nil {
		return nil, err
	}
	return e.store.FindOverlapping(roomID, date, hour, hour+1), nil
}

// RoomUtilizations counts active bookings per room and type. Every room
// appears, including rooms with zero bookings.
func (e *Engine) RoomUtilizations(ctx context.Context) []RoomUtilization {
	counts := make(map[int64]*RoomUtilization)
	var out []RoomUtilization

	for r := range e.cat.Rooms() {
		u := &RoomUtilization{RoomID: r.ID}
		counts[r.ID] = u
	}
	for _, b := range e.store.ListAll() {
		if !b.Active() {
			continue
		}
		u, ok := counts[b.RoomID]
		if !ok {
			continue // booking for a room since removed from the catalog
		}
		u.TotalBookings++
		switch b.Type {
		case booking.TypeCourse:
			u.CourseBookings++
		case booking.TypeStudent:
			u.StudentBookings++
		}
	}
	for r := range e.cat.Rooms() {
		out = append(out, *counts[r.ID])
	}
	return out
}

// LecturerCourseLoads counts assigned courses per lecturer, ordered by
// count descending with lecturer id ascending as the tie-break. Lecturers
// with zero courses are included.
func (e *Engine) LecturerCourseLoads(ctx context.Context) []LecturerCourseLoad {
	rows := make(map[int64]*LecturerCourseLoad)
	for _, l := range e.cat.Lecturers() {
		name := ""
		if u, err := e.cat.User(l.UserID); err == nil {
			name = u.RealName
		}
		rows[l.UserID] = &LecturerCourseLoad{LecturerID: l.UserID, TeacherName: name}
	}
	for _, co := range e.cat.Courses() {
		if co.LecturerID == nil {
			continue
		}
		if row, ok := rows[*co.LecturerID]; ok {
			row.CourseCount++
		}
	}

	out := make([]LecturerCourseLoad, 0, len(rows))
	for _, row := range rows {
		out = append(out, *row)
	}
	slices.SortFunc(out, func(a, b LecturerCourseLoad) int {
		if a.CourseCount != b.CourseCount {
			return b.CourseCount - a.CourseCount
		}
		return int(a.LecturerID - b.LecturerID)
	})
	return out
}

// LecturerWeeklyHoursReport sums booked hours of each lecturer's courses
// grouped per (ISO week, lecturer). The grouping is per-week: three hours
// in week 2 never merge with five in week 1.
func (e *Engine) LecturerWeeklyHoursReport(ctx context.Context) []LecturerWeeklyHours {
	type key struct {
		week     int
		lecturer int64
	}
	sums := make(map[key]int)

	for _, b := range e.store.ListAll() {
		if !b.Active() || b.CourseID == nil {
			continue
		}
		co, err := e.cat.Course(*b.CourseID)
		if err != nil || co.LecturerID == nil {
			continue
		}
		k := key{week: b.WeekNumber(), lecturer: *co.LecturerID}
		sums[k] += b.EndHour - b.StartHour
	}

	out := make([]LecturerWeeklyHours, 0, len(sums))
	for k, hours := range sums {
		name := ""
		if l, err := e.cat.Lecturer(k.lecturer); err == nil {
			if u, err := e.cat.User(l.UserID); err == nil {
				name = u.RealName
			}
		}
		out = append(out, LecturerWeeklyHours{
			WeekNumber:   k.week,
			LecturerID:   k.lecturer,
			LecturerName: name,
			TotalHours:   hours,
		})
	}
	slices.SortFunc(out, func(a, b LecturerWeeklyHours) int {
		if a.WeekNumber != b.WeekNumber {
			return a.WeekNumber - b.WeekNumber
		}
		return int(a.LecturerID - b.LecturerID)
	})
	return out
}

// AverageEnrollmentByLecturer reports the mean enrollment across each
// lecturer's courses, highest first. Lecturers with no courses have no
// defined mean and are excluded rather than reported as zero.
func (e *Engine) AverageEnrollmentByLecturer(ctx context.Context) []LecturerEnrollment {
	type acc struct {
		sum, n int
	}
	accs := make(map[int64]*acc)
	for _, co := range e.cat.Courses() {
		if co.LecturerID == nil {
			continue
		}
		a, ok := accs[*co.LecturerID]
		if !ok {
			a = &acc{}
			accs[*co.LecturerID] = a
		}
		a.sum += co.EnrolledStudents
		a.n++
	}

	out := make([]LecturerEnrollment, 0, len(accs))
	for id, a := range accs {
		name := ""
		if l, err := e.cat.Lecturer(id); err == nil {
			if u, err := e.cat.User(l.UserID); err == nil {
				name = u.RealName
			}
		}
		out = append(out, LecturerEnrollment{
			LecturerID:    id,
			LecturerName:  name,
			AvgEnrollment: float64(a.sum) / float64(a.n),
		})
	}
	slices.SortFunc(out, func(a, b LecturerEnrollment) int {
		if a.AvgEnrollment != b.AvgEnrollment {
			if a.AvgEnrollment > b.AvgEnrollment {
				return -1
			}
			return 1
		}
		return int(a.LecturerID - b.LecturerID)
	})
	return out
}
