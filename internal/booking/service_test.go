package booking

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/quietriver/campus-booking-backend/internal/catalog"
)

// stubRepository records persisted bookings and can be told to fail.
type stubRepository struct {
	persisted []int64
	cancelled []int64
	fail      bool
}

func (r *stubRepository) Load(ctx context.Context) ([]Booking, error) {
	return nil, nil
}

func (r *stubRepository) Persist(ctx context.Context, b *Booking) error {
	if r.fail {
		return errors.New("connection refused")
	}
	r.persisted = append(r.persisted, b.ID)
	return nil
}

func (r *stubRepository) PersistCancel(ctx context.Context, id int64) error {
	if r.fail {
		return errors.New("connection refused")
	}
	r.cancelled = append(r.cancelled, id)
	return nil
}

func testCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	cat := catalog.New()
	require.NoError(t, cat.AddRoom(catalog.Room{ID: 1, Building: "Main", Size: 40}))
	require.NoError(t, cat.AddUser(catalog.User{ID: 1, RealName: "Dana Weiss", Email: "dana@example.edu"}))
	require.NoError(t, cat.AddLecturer(catalog.Lecturer{UserID: 1, Institute: "Mathematics"}))
	require.NoError(t, cat.AddCourse(catalog.Course{ID: 4, Name: "Linear Algebra", EnrolledStudents: 120}))
	return cat
}

func newTestService(t *testing.T, repo Repository) (Service, *Store) {
	t.Helper()
	store := NewStore()
	return NewService(store, testCatalog(t), repo, zap.NewNop()), store
}

func TestServiceCreatePersists(t *testing.T) {
	repo := &stubRepository{}
	svc, _ := newTestService(t, repo)

	cid := int64(4)
	b, err := svc.Create(context.Background(), Draft{
		RoomID: 1, Date: testDate, StartHour: 10, EndHour: 12,
		Type: TypeCourse, CourseID: &cid, UserID: 1,
	})
	require.NoError(t, err)
	require.Equal(t, []int64{b.ID}, repo.persisted)
}

func TestServiceCreateUnknownReferences(t *testing.T) {
	repo := &stubRepository{}
	svc, _ := newTestService(t, repo)

	base := Draft{RoomID: 1, Date: testDate, StartHour: 10, EndHour: 12, Type: TypeStudent, UserID: 1}

	d := base
	d.RoomID = 99
	_, err := svc.Create(context.Background(), d)
	require.ErrorIs(t, err, ErrUnknownRoom)

	d = base
	d.UserID = 99
	_, err = svc.Create(context.Background(), d)
	require.ErrorIs(t, err, ErrUnknownUser)

	d = base
	d.Type = TypeCourse
	cid := int64(99)
	d.CourseID = &cid
	_, err = svc.Create(context.Background(), d)
	require.ErrorIs(t, err, ErrUnknownCourse)

	// Nothing was persisted for any rejected draft.
	require.Empty(t, repo.persisted)
}

func TestServiceCreatePersistenceFailure(t *testing.T) {
	repo := &stubRepository{fail: true}
	svc, store := newTestService(t, repo)

	_, err := svc.Create(context.Background(), Draft{
		RoomID: 1, Date: testDate, StartHour: 10, EndHour: 12,
		Type: TypeStudent, UserID: 1,
	})
	require.ErrorIs(t, err, ErrPersistence)

	// The in-memory decision stands: the interval remains taken.
	require.Len(t, store.FindOverlapping(1, testDate, 10, 12), 1)
}

// A user delete racing booking creation must never leave an active booking
// referencing a deleted user: either the delete loses to an in-flight create,
// or it wins and every later create is rejected.
func TestServiceCreateSerializesWithUserDelete(t *testing.T) {
	repo := &stubRepository{}
	store := NewStore()
	cat := testCatalog(t)
	require.NoError(t, cat.AddUser(catalog.User{ID: 2, RealName: "Omar Haddad", Email: "omar@example.edu"}))
	cat.BindBookings(store)
	svc := NewService(store, cat, repo, zap.NewNop())

	var wg sync.WaitGroup
	createErrs := make(chan error, 8)
	for hour := 8; hour < 16; hour++ {
		wg.Add(1)
		go func(h int) {
			defer wg.Done()
			_, err := svc.Create(context.Background(), Draft{
				RoomID: 1, Date: testDate, StartHour: h, EndHour: h + 1,
				Type: TypeStudent, UserID: 2,
			})
			createErrs <- err
		}(hour)
	}
	deleteErr := make(chan error, 1)
	wg.Add(1)
	go func() { defer wg.Done(); deleteErr <- cat.DeleteUser(2) }()
	wg.Wait()

	close(createErrs)
	for err := range createErrs {
		if err != nil {
			require.ErrorIs(t, err, ErrUnknownUser)
		}
	}
	if err := <-deleteErr; err == nil {
		require.Empty(t, store.ListForUser(2))
	} else {
		require.ErrorIs(t, err, catalog.ErrStillReferenced)
	}
}

func TestServiceCancel(t *testing.T) {
	repo := &stubRepository{}
	svc, _ := newTestService(t, repo)

	b, err := svc.Create(context.Background(), Draft{
		RoomID: 1, Date: testDate, StartHour: 10, EndHour: 12,
		Type: TypeStudent, UserID: 1,
	})
	require.NoError(t, err)

	require.NoError(t, svc.Cancel(context.Background(), b.ID))
	require.Equal(t, []int64{b.ID}, repo.cancelled)

	require.ErrorIs(t, svc.Cancel(context.Background(), b.ID), ErrNotFound)
}

func TestServiceListChecksOwner(t *testing.T) {
	repo := &stubRepository{}
	svc, _ := newTestService(t, repo)

	_, err := svc.ListForUser(context.Background(), 99)
	require.ErrorIs(t, err, catalog.ErrUserNotFound)

	_, err = svc.ListForRoom(context.Background(), 99)
	require.ErrorIs(t, err, catalog.ErrRoomNotFound)
}
