package booking

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/quietriver/campus-booking-backend/internal/catalog"
)

// Service composes the catalog (reference checks), the in-memory store
// (conflict decision) and the repository (durability).
type Service interface {
	Create(ctx context.Context, d Draft) (*Booking, error)
	Cancel(ctx context.Context, id int64) error
	Get(ctx context.Context, id int64) (*Booking, error)
	ListForUser(ctx context.Context, userID int64) ([]*Booking, error)
	ListForRoom(ctx context.Context, roomID int64) ([]*Booking, error)
	ListAll(ctx context.Context) []*Booking
	FindOverlapping(ctx context.Context, roomID int64, date time.Time, start, end int) ([]*Booking, error)
}

type service struct {
	store  *Store
	cat    *catalog.Catalog
	repo   Repository
	logger *zap.Logger
}

func NewService(store *Store, cat *catalog.Catalog, repo Repository, logger *zap.Logger) Service {
	return &service{store: store, cat: cat, repo: repo, logger: logger}
}

// Create runs the referential checks, then hands the draft to the store for
// the atomic conflict check, then persists. The checks and the insert run
// under the catalog's read lock so a concurrent delete cannot remove an
// entity between its check and the store committing the booking. A
// persistence failure after the store has committed is surfaced as
// ErrPersistence: the in-memory booking stands and only the persistence step
// should be retried.
func (s *service) Create(ctx context.Context, d Draft) (*Booking, error) {
	var courseRef *int64
	if d.Type == TypeCourse {
		courseRef = d.CourseID
	}

	var b *Booking
	err := s.cat.CheckBookingRefs(d.RoomID, d.UserID, courseRef, func() error {
		var insertErr error
		b, insertErr = s.store.Insert(d)
		return insertErr
	})
	switch err {
	case nil:
	case catalog.ErrRoomNotFound:
		return nil, ErrUnknownRoom
	case catalog.ErrUserNotFound:
		return nil, ErrUnknownUser
	case catalog.ErrCourseNotFound:
		return nil, ErrUnknownCourse
	default:
		return nil, err
	}

	if err := s.repo.Persist(ctx, b); err != nil {
		s.logger.Error("booking not persisted",
			zap.Int64("booking_id", b.ID),
			zap.Int64("room_id", b.RoomID),
			zap.Error(err))
		return nil, ErrPersistence
	}

	s.logger.Info("booking created",
		zap.Int64("booking_id", b.ID),
		zap.Int64("room_id", b.RoomID),
		zap.String("date", b.Date.Format(DateLayout)),
		zap.Int("start_hour", b.StartHour),
		zap.Int("end_hour", b.EndHour),
		zap.String("type", string(b.Type)))
	return b, nil
}

func (s *service) Cancel(ctx context.Context, id int64) error {
	if err := s.store.Cancel(id); err != nil {
		return err
	}

	if err := s.repo.PersistCancel(ctx, id); err != nil {
		s.logger.Error("cancellation not persisted",
			zap.Int64("booking_id", id), zap.Error(err))
		return ErrPersistence
	}

	s.logger.Info("booking cancelled", zap.Int64("booking_id", id))
	return nil
}

func (s *service) Get(ctx context.Context, id int64) (*Booking, error) {
	return s.store.Get(id)
}

func (s *service) ListForUser(ctx context.Context, userID int64) ([]*Booking, error) {
	if _, err := s.cat.User(userID); err != nil {
		return nil, err
	}
	return s.store.ListForUser(userID), nil
}

func (s *service) ListForRoom(ctx context.Context, roomID int64) ([]*Booking, error) {
	if _, err := s.cat.Room(roomID); err != nil {
		return nil, err
	}
	return s.store.ListForRoom(roomID), nil
}

func (s *service) ListAll(ctx context.Context) []*Booking {
	return s.store.ListAll()
}

func (s *service) FindOverlapping(ctx context.Context, roomID int64, date time.Time, start, end int) ([]*Booking, error) {
	if _, err := s.cat.Room(roomID); err != nil {
		return nil, err
	}
	return s.store.FindOverlapping(roomID, date, start, end), nil
}
