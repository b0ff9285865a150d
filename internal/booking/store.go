package booking

import (
	"slices"
	"sort"
	"sync"
	"time"

	"github.com/quietriver/campus-booking-backend/internal/pkg/interval"
)

// bucketKey identifies the unit of conflict checking: all bookings of one
// room on one calendar day.
type bucketKey struct {
	roomID int64
	date   string // DateLayout
}

func keyFor(roomID int64, date time.Time) bucketKey {
	return bucketKey{roomID: roomID, date: date.Format(DateLayout)}
}

// bucket holds one room-day's bookings ordered by start hour. Its mutex
// serializes the check-then-insert sequence: inserts on different room-days
// never contend.
type bucket struct {
	mu       sync.Mutex
	bookings []*Booking
}

// Store is the in-memory booking index. It owns all Booking values; every
// method hands out copies so callers can never observe a concurrent status
// flip.
type Store struct {
	mu      sync.RWMutex // guards buckets, byID, nextID
	buckets map[bucketKey]*bucket
	byID    map[int64]*Booking
	nextID  int64
}

func NewStore() *Store {
	return &Store{
		buckets: make(map[bucketKey]*bucket),
		byID:    make(map[int64]*Booking),
	}
}

// Seed installs bookings loaded from the durable store. Startup only, not
// concurrency safe against other store methods.
func (s *Store) Seed(bookings []Booking) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range bookings {
		bk := bookings[i]
		bk.Date = NormalizeDate(bk.Date)
		b := &bk
		key := keyFor(b.RoomID, b.Date)
		bu, ok := s.buckets[key]
		if !ok {
			bu = &bucket{}
			s.buckets[key] = bu
		}
		bu.bookings = append(bu.bookings, b)
		s.byID[b.ID] = b
		if b.ID > s.nextID {
			s.nextID = b.ID
		}
	}
	for _, bu := range s.buckets {
		slices.SortFunc(bu.bookings, func(a, b *Booking) int {
			if a.StartHour != b.StartHour {
				return a.StartHour - b.StartHour
			}
			return int(a.ID - b.ID)
		})
	}
}

func (s *Store) bucketFor(key bucketKey) *bucket {
	s.mu.Lock()
	defer s.mu.Unlock()
	bu, ok := s.buckets[key]
	if !ok {
		bu = &bucket{}
		s.buckets[key] = bu
	}
	return bu
}

// Insert validates the draft, checks the room-day bucket for conflicts and
// commits the booking, all while holding that bucket's lock. Two
// near-simultaneous inserts for the same room-day are strictly ordered;
// inserts for different room-days proceed in parallel.
func (s *Store) Insert(d Draft) (*Booking, error) {
	if !interval.ValidRange(d.StartHour, d.EndHour) {
		return nil, ErrInvalidTimeRange
	}
	if !d.Type.Valid() {
		return nil, ErrInvalidType
	}
	if d.Type == TypeCourse && d.CourseID == nil {
		return nil, ErrCourseRequired
	}
	if d.Type == TypeStudent && d.CourseID != nil {
		return nil, ErrCourseForbidden
	}

	date := NormalizeDate(d.Date)
	bu := s.bucketFor(keyFor(d.RoomID, date))

	bu.mu.Lock()
	defer bu.mu.Unlock()

	var conflicts []int64
	for _, ex := range bu.bookings {
		if ex.Active() && interval.Overlaps(d.StartHour, d.EndHour, ex.StartHour, ex.EndHour) {
			conflicts = append(conflicts, ex.ID)
		}
	}
	if len(conflicts) > 0 {
		return nil, &ConflictError{BookingIDs: conflicts}
	}

	s.mu.Lock()
	s.nextID++
	b := &Booking{
		ID:        s.nextID,
		RoomID:    d.RoomID,
		Date:      date,
		StartHour: d.StartHour,
		EndHour:   d.EndHour,
		Type:      d.Type,
		CourseID:  d.CourseID,
		UserID:    d.UserID,
		Status:    StatusActive,
		CreatedAt: time.Now().UTC(),
	}
	s.byID[b.ID] = b
	s.mu.Unlock()

	i := sort.Search(len(bu.bookings), func(i int) bool {
		return bu.bookings[i].StartHour > b.StartHour
	})
	bu.bookings = slices.Insert(bu.bookings, i, b)

	out := *b
	return &out, nil
}

// Cancel soft-deletes a booking, immediately freeing its interval.
// Cancelling an unknown or already-cancelled booking fails with NotFound.
func (s *Store) Cancel(id int64) error {
	s.mu.RLock()
	b, ok := s.byID[id]
	var bu *bucket
	if ok {
		bu = s.buckets[keyFor(b.RoomID, b.Date)]
	}
	s.mu.RUnlock()
	if !ok || bu == nil {
		return ErrNotFound
	}

	bu.mu.Lock()
	defer bu.mu.Unlock()
	if !b.Active() {
		return ErrNotFound
	}
	b.Status = StatusCancelled
	return nil
}

// Get returns a booking by id regardless of status.
func (s *Store) Get(id int64) (*Booking, error) {
	s.mu.RLock()
	b, ok := s.byID[id]
	var bu *bucket
	if ok {
		bu = s.buckets[keyFor(b.RoomID, b.Date)]
	}
	s.mu.RUnlock()
	if !ok || bu == nil {
		return nil, ErrNotFound
	}

	bu.mu.Lock()
	out := *b
	bu.mu.Unlock()
	return &out, nil
}

// FindOverlapping returns the active bookings on a room-day whose interval
// intersects [start, end), ordered by start hour. An empty result is a
// valid answer, not an error.
func (s *Store) FindOverlapping(roomID int64, date time.Time, start, end int) []*Booking {
	s.mu.RLock()
	bu := s.buckets[keyFor(roomID, NormalizeDate(date))]
	s.mu.RUnlock()
	if bu == nil {
		return nil
	}

	bu.mu.Lock()
	defer bu.mu.Unlock()
	var out []*Booking
	for _, b := range bu.bookings {
		if b.Active() && interval.Overlaps(start, end, b.StartHour, b.EndHour) {
			cp := *b
			out = append(out, &cp)
		}
	}
	return out
}

// ListForUser returns all bookings made by a user, ordered by date then
// start hour.
func (s *Store) ListForUser(userID int64) []*Booking {
	return s.collect(func(b *Booking) bool { return b.UserID == userID })
}

// ListForRoom returns all bookings of a room, ordered by date then start
// hour.
func (s *Store) ListForRoom(roomID int64) []*Booking {
	return s.collect(func(b *Booking) bool { return b.RoomID == roomID })
}

// ListAll returns every booking, ordered by date then start hour.
func (s *Store) ListAll() []*Booking {
	return s.collect(func(*Booking) bool { return true })
}

// collect snapshots matching bookings bucket by bucket. Reports get a
// consistent view of each bucket they touch; strict serializability against
// concurrent inserts is not needed for informational queries.
func (s *Store) collect(match func(*Booking) bool) []*Booking {
	s.mu.RLock()
	buckets := make([]*bucket, 0, len(s.buckets))
	for _, bu := range s.buckets {
		buckets = append(buckets, bu)
	}
	s.mu.RUnlock()

	var out []*Booking
	for _, bu := range buckets {
		bu.mu.Lock()
		for _, b := range bu.bookings {
			if match(b) {
				cp := *b
				out = append(out, &cp)
			}
		}
		bu.mu.Unlock()
	}

	slices.SortFunc(out, func(a, b *Booking) int {
		if c := a.Date.Compare(b.Date); c != 0 {
			return c
		}
		if a.StartHour != b.StartHour {
			return a.StartHour - b.StartHour
		}
		return int(a.ID - b.ID)
	})
	return out
}

// RoomInUse reports whether a room has any active booking. Part of the
// catalog's referential-integrity check on delete.
func (s *Store) RoomInUse(roomID int64) bool {
	return s.anyActive(func(b *Booking) bool { return b.RoomID == roomID })
}

// UserInUse reports whether a user has any active booking.
func (s *Store) UserInUse(userID int64) bool {
	return s.anyActive(func(b *Booking) bool { return b.UserID == userID })
}

// CourseInUse reports whether a course has any active booking.
func (s *Store) CourseInUse(courseID int64) bool {
	return s.anyActive(func(b *Booking) bool {
		return b.CourseID != nil && *b.CourseID == courseID
	})
}

func (s *Store) anyActive(match func(*Booking) bool) bool {
	s.mu.RLock()
	buckets := make([]*bucket, 0, len(s.buckets))
	for _, bu := range s.buckets {
		buckets = append(buckets, bu)
	}
	s.mu.RUnlock()

	for _, bu := range buckets {
		bu.mu.Lock()
		for _, b := range bu.bookings {
			if b.Active() && match(b) {
				bu.mu.Unlock()
				return true
			}
		}
		bu.mu.Unlock()
	}
	return false
}
