package booking

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/quietriver/campus-booking-backend/internal/pkg/interval"
)

var testDate = time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)

func draft(room int64, start, end int) Draft {
	return Draft{
		RoomID:    room,
		Date:      testDate,
		StartHour: start,
		EndHour:   end,
		Type:      TypeStudent,
		UserID:    1,
	}
}

func TestInsertConflictScenario(t *testing.T) {
	s := NewStore()

	first, err := s.Insert(draft(1, 10, 12))
	require.NoError(t, err)

	// [11,13) overlaps [10,12) and must name the existing booking.
	_, err = s.Insert(draft(1, 11, 13))
	var conflict *ConflictError
	require.ErrorAs(t, err, &conflict)
	require.Equal(t, []int64{first.ID}, conflict.BookingIDs)

	// Adjacent on the right: [12,14) is free.
	_, err = s.Insert(draft(1, 12, 14))
	require.NoError(t, err)

	// Abutting the start: [9,10) is free.
	_, err = s.Insert(draft(1, 9, 10))
	require.NoError(t, err)

	// Same interval on another room does not conflict.
	_, err = s.Insert(draft(2, 10, 12))
	require.NoError(t, err)

	// Same interval on another date does not conflict.
	d := draft(1, 10, 12)
	d.Date = testDate.AddDate(0, 0, 1)
	_, err = s.Insert(d)
	require.NoError(t, err)
}

func TestInsertValidation(t *testing.T) {
	s := NewStore()

	tests := []struct {
		name    string
		mutate  func(*Draft)
		wantErr error
	}{
		{"start after end", func(d *Draft) { d.StartHour = 14; d.EndHour = 12 }, ErrInvalidTimeRange},
		{"empty interval", func(d *Draft) { d.StartHour = 10; d.EndHour = 10 }, ErrInvalidTimeRange},
		{"negative hour", func(d *Draft) { d.StartHour = -1 }, ErrInvalidTimeRange},
		{"past midnight", func(d *Draft) { d.EndHour = 25 }, ErrInvalidTimeRange},
		{"unknown type", func(d *Draft) { d.Type = "weekly" }, ErrInvalidType},
		{"course without course id", func(d *Draft) { d.Type = TypeCourse }, ErrCourseRequired},
		{"student with course id", func(d *Draft) { cid := int64(7); d.CourseID = &cid }, ErrCourseForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := draft(1, 10, 12)
			tt.mutate(&d)
			_, err := s.Insert(d)
			require.ErrorIs(t, err, tt.wantErr)
		})
	}

	// None of the rejected drafts may have left state behind.
	require.Empty(t, s.ListAll())
}

func TestCancelFreesInterval(t *testing.T) {
	s := NewStore()

	b, err := s.Insert(draft(1, 10, 12))
	require.NoError(t, err)

	_, err = s.Insert(draft(1, 10, 12))
	var conflict *ConflictError
	require.ErrorAs(t, err, &conflict)

	require.NoError(t, s.Cancel(b.ID))

	// The slot is free immediately after cancellation.
	_, err = s.Insert(draft(1, 10, 12))
	require.NoError(t, err)
}

func TestCancelIdempotence(t *testing.T) {
	s := NewStore()

	b, err := s.Insert(draft(1, 10, 12))
	require.NoError(t, err)

	require.NoError(t, s.Cancel(b.ID))
	require.ErrorIs(t, s.Cancel(b.ID), ErrNotFound)
	require.ErrorIs(t, s.Cancel(9999), ErrNotFound)
}

func TestFindOverlapping(t *testing.T) {
	s := NewStore()

	a, err := s.Insert(draft(1, 9, 11))
	require.NoError(t, err)
	b, err := s.Insert(draft(1, 14, 16))
	require.NoError(t, err)

	got := s.FindOverlapping(1, testDate, 10, 15)
	require.Len(t, got, 2)
	require.Equal(t, a.ID, got[0].ID)
	require.Equal(t, b.ID, got[1].ID)

	require.Empty(t, s.FindOverlapping(1, testDate, 11, 14))
	require.Empty(t, s.FindOverlapping(2, testDate, 9, 16))

	require.NoError(t, s.Cancel(a.ID))
	got = s.FindOverlapping(1, testDate, 10, 15)
	require.Len(t, got, 1)
	require.Equal(t, b.ID, got[0].ID)
}

func TestListOrdering(t *testing.T) {
	s := NewStore()

	later := draft(3, 8, 9)
	later.Date = testDate.AddDate(0, 0, 2)
	lb, err := s.Insert(later)
	require.NoError(t, err)

	afternoon, err := s.Insert(draft(3, 13, 15))
	require.NoError(t, err)
	morning, err := s.Insert(draft(3, 9, 10))
	require.NoError(t, err)

	all := s.ListAll()
	require.Len(t, all, 3)
	require.Equal(t, []int64{morning.ID, afternoon.ID, lb.ID},
		[]int64{all[0].ID, all[1].ID, all[2].ID})

	forRoom := s.ListForRoom(3)
	require.Len(t, forRoom, 3)
	require.Empty(t, s.ListForRoom(4))

	forUser := s.ListForUser(1)
	require.Len(t, forUser, 3)
	require.Empty(t, s.ListForUser(2))
}

func TestWeekFieldsDerivedFromDate(t *testing.T) {
	s := NewStore()

	d := draft(1, 10, 12)
	d.Date = time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC) // Wednesday, ISO week 1
	b, err := s.Insert(d)
	require.NoError(t, err)
	require.Equal(t, 1, b.WeekNumber())
	require.Equal(t, time.Wednesday, b.Weekday())
}

func TestSeedRestoresState(t *testing.T) {
	s := NewStore()
	cid := int64(4)
	s.Seed([]Booking{
		{ID: 10, RoomID: 1, Date: testDate, StartHour: 10, EndHour: 12, Type: TypeCourse, CourseID: &cid, UserID: 2, Status: StatusActive},
		{ID: 11, RoomID: 1, Date: testDate, StartHour: 12, EndHour: 13, Type: TypeStudent, UserID: 3, Status: StatusCancelled},
	})

	// Conflict checks respect seeded active bookings...
	_, err := s.Insert(draft(1, 11, 12))
	var conflict *ConflictError
	require.ErrorAs(t, err, &conflict)
	require.Equal(t, []int64{10}, conflict.BookingIDs)

	// ...but not cancelled ones, and fresh ids continue past the maximum.
	b, err := s.Insert(draft(1, 12, 13))
	require.NoError(t, err)
	require.Greater(t, b.ID, int64(11))
}

// TestConcurrentSameBucketInserts hammers one room-day with identical
// drafts; exactly one insert may win, and the bucket must hold no
// overlapping pair afterwards.
func TestConcurrentSameBucketInserts(t *testing.T) {
	s := NewStore()

	const workers = 32
	var wg sync.WaitGroup
	errs := make([]error, workers)

	for i := range workers {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = s.Insert(draft(1, 10, 12))
		}(i)
	}
	wg.Wait()

	won := 0
	for _, err := range errs {
		if err == nil {
			won++
		} else {
			var conflict *ConflictError
			require.ErrorAs(t, err, &conflict)
		}
	}
	require.Equal(t, 1, won)
	requireNoOverlapInvariant(t, s)
}

// TestConcurrentMixedInserts spreads goroutines over rooms and slots and
// verifies the no-overlap invariant bucket by bucket afterwards.
func TestConcurrentMixedInserts(t *testing.T) {
	s := NewStore()

	var wg sync.WaitGroup
	for room := int64(1); room <= 4; room++ {
		for start := 8; start < 18; start++ {
			wg.Add(2)
			go func(room int64, start int) {
				defer wg.Done()
				s.Insert(draft(room, start, start+2))
			}(room, start)
			go func(room int64, start int) {
				defer wg.Done()
				s.Insert(draft(room, start+1, start+3))
			}(room, start)
		}
	}
	wg.Wait()
	requireNoOverlapInvariant(t, s)
}

func requireNoOverlapInvariant(t *testing.T, s *Store) {
	t.Helper()
	type key struct {
		room int64
		date string
	}
	byBucket := make(map[key][]*Booking)
	for _, b := range s.ListAll() {
		if !b.Active() {
			continue
		}
		k := key{room: b.RoomID, date: b.Date.Format(DateLayout)}
		byBucket[k] = append(byBucket[k], b)
	}
	for k, bookings := range byBucket {
		for i := range bookings {
			for j := i + 1; j < len(bookings); j++ {
				a, b := bookings[i], bookings[j]
				require.False(t,
					interval.Overlaps(a.StartHour, a.EndHour, b.StartHour, b.EndHour),
					"bucket %v holds overlapping bookings %d and %d", k, a.ID, b.ID)
			}
		}
	}
}
