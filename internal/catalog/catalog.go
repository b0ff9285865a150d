package catalog

import (
	"iter"
	"slices"
	"sync"
)

// BookingRefs answers whether an entity is still referenced by an active
// booking. It is implemented by the booking store and consulted on every
// delete so referential integrity is enforced here, at the catalog.
type BookingRefs interface {
	RoomInUse(roomID int64) bool
	UserInUse(userID int64) bool
	CourseInUse(courseID int64) bool
}

// Catalog is the in-memory registry of rooms, users, lecturers and courses.
// It is read-mostly: reporting and booking validation hit the getters, while
// administrative mutation is rare.
type Catalog struct {
	mu        sync.RWMutex
	rooms     map[int64]Room
	users     map[int64]User
	lecturers map[int64]Lecturer // keyed by user id
	courses   map[int64]Course
	refs      BookingRefs
}

func New() *Catalog {
	return &Catalog{
		rooms:     make(map[int64]Room),
		users:     make(map[int64]User),
		lecturers: make(map[int64]Lecturer),
		courses:   make(map[int64]Course),
	}
}

// Populate replaces the catalog contents with a freshly loaded snapshot.
// Called once at startup, before any requests are served.
func (c *Catalog) Populate(snap *Snapshot) {
	c.mu.Lock()
	defer c.mu.Unlock()
	clear(c.rooms)
	clear(c.users)
	clear(c.lecturers)
	clear(c.courses)
	for _, r := range snap.Rooms {
		c.rooms[r.ID] = r
	}
	for _, u := range snap.Users {
		c.users[u.ID] = u
	}
	for _, l := range snap.Lecturers {
		c.lecturers[l.UserID] = l
	}
	for _, co := range snap.Courses {
		c.courses[co.ID] = co
	}
}

// BindBookings wires the booking store in after construction; the store
// needs the catalog first, so the cycle is broken here.
func (c *Catalog) BindBookings(refs BookingRefs) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.refs = refs
}

// CheckBookingRefs verifies that the referenced room, user and (optional)
// course exist, then runs fn while still holding the read lock. A concurrent
// delete needs the write lock, so an entity verified here cannot disappear
// before fn has committed against it.
func (c *Catalog) CheckBookingRefs(roomID, userID int64, courseID *int64, fn func() error) error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if _, ok := c.rooms[roomID]; !ok {
		return ErrRoomNotFound
	}
	if _, ok := c.users[userID]; !ok {
		return ErrUserNotFound
	}
	if courseID != nil {
		if _, ok := c.courses[*courseID]; !ok {
			return ErrCourseNotFound
		}
	}
	return fn()
}

func (c *Catalog) Room(id int64) (Room, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	r, ok := c.rooms[id]
	if !ok {
		return Room{}, ErrRoomNotFound
	}
	return r, nil
}

func (c *Catalog) User(id int64) (User, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	u, ok := c.users[id]
	if !ok {
		return User{}, ErrUserNotFound
	}
	return u, nil
}

func (c *Catalog) Lecturer(userID int64) (Lecturer, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	l, ok := c.lecturers[userID]
	if !ok {
		return Lecturer{}, ErrLecturerNotFound
	}
	return l, nil
}

func (c *Catalog) Course(id int64) (Course, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	co, ok := c.courses[id]
	if !ok {
		return Course{}, ErrCourseNotFound
	}
	return co, nil
}

// Rooms returns a restartable sequence of all rooms ordered by id. The
// snapshot is taken when iteration starts, so a sequence can be ranged over
// more than once.
func (c *Catalog) Rooms() iter.Seq[Room] {
	return func(yield func(Room) bool) {
		c.mu.RLock()
		rooms := make([]Room, 0, len(c.rooms))
		for _, r := range c.rooms {
			rooms = append(rooms, r)
		}
		c.mu.RUnlock()

		slices.SortFunc(rooms, func(a, b Room) int { return int(a.ID - b.ID) })
		for _, r := range rooms {
			if !yield(r) {
				return
			}
		}
	}
}

// Lecturers returns all lecturers ordered by user id.
func (c *Catalog) Lecturers() []Lecturer {
	c.mu.RLock()
	out := make([]Lecturer, 0, len(c.lecturers))
	for _, l := range c.lecturers {
		out = append(out, l)
	}
	c.mu.RUnlock()

	slices.SortFunc(out, func(a, b Lecturer) int { return int(a.UserID - b.UserID) })
	return out
}

// Courses returns all courses ordered by id.
func (c *Catalog) Courses() []Course {
	c.mu.RLock()
	out := make([]Course, 0, len(c.courses))
	for _, co := range c.courses {
		out = append(out, co)
	}
	c.mu.RUnlock()

	slices.SortFunc(out, func(a, b Course) int { return int(a.ID - b.ID) })
	return out
}

func (c *Catalog) AddRoom(r Room) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.rooms[r.ID]; ok {
		return ErrDuplicateID
	}
	c.rooms[r.ID] = r
	return nil
}

func (c *Catalog) AddUser(u User) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.users[u.ID]; ok {
		return ErrDuplicateID
	}
	c.users[u.ID] = u
	return nil
}

// AddLecturer attaches the lecturer role to an existing user.
func (c *Catalog) AddLecturer(l Lecturer) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.users[l.UserID]; !ok {
		return ErrUserNotFound
	}
	if _, ok := c.lecturers[l.UserID]; ok {
		return ErrDuplicateID
	}
	c.lecturers[l.UserID] = l
	return nil
}

func (c *Catalog) AddCourse(co Course) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.courses[co.ID]; ok {
		return ErrDuplicateID
	}
	if co.EnrolledStudents < 0 {
		return ErrInvalidEnrollment
	}
	if co.LecturerID != nil {
		if _, ok := c.lecturers[*co.LecturerID]; !ok {
			return ErrLecturerNotFound
		}
	}
	c.courses[co.ID] = co
	return nil
}

// AssignLecturer sets (or clears, with nil) the lecturer of a course.
func (c *Catalog) AssignLecturer(courseID int64, lecturerID *int64) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	co, ok := c.courses[courseID]
	if !ok {
		return ErrCourseNotFound
	}
	if lecturerID != nil {
		if _, ok := c.lecturers[*lecturerID]; !ok {
			return ErrLecturerNotFound
		}
	}
	co.LecturerID = lecturerID
	c.courses[courseID] = co
	return nil
}

// DeleteRoom removes a room. Fails if any active booking still uses it.
func (c *Catalog) DeleteRoom(id int64) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.rooms[id]; !ok {
		return ErrRoomNotFound
	}
	if c.refs != nil && c.refs.RoomInUse(id) {
		return ErrStillReferenced
	}
	delete(c.rooms, id)
	return nil
}

// DeleteUser removes a user and their lecturer role. Fails if the user has
// active bookings or is the lecturer of any course.
func (c *Catalog) DeleteUser(id int64) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.users[id]; !ok {
		return ErrUserNotFound
	}
	if c.refs != nil && c.refs.UserInUse(id) {
		return ErrStillReferenced
	}
	for _, co := range c.courses {
		if co.LecturerID != nil && *co.LecturerID == id {
			return ErrStillReferenced
		}
	}
	delete(c.lecturers, id)
	delete(c.users, id)
	return nil
}

// DeleteCourse removes a course. Fails if any active booking references it.
func (c *Catalog) DeleteCourse(id int64) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.courses[id]; !ok {
		return ErrCourseNotFound
	}
	if c.refs != nil && c.refs.CourseInUse(id) {
		return ErrStillReferenced
	}
	delete(c.courses, id)
	return nil
}
