package catalog

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"github.com/quietriver/campus-booking-backend/internal/pkg/apperror"
)

// Service is the administrative surface over the catalog: it decides in
// memory first, then records the change durably. A persistence failure
// after a decided mutation is surfaced as a 502 so the caller can retry
// just the persistence step; the in-memory state stays authoritative.
type Service interface {
	Room(ctx context.Context, id int64) (Room, error)
	ListRooms(ctx context.Context) []Room

	CreateRoom(ctx context.Context, building string, size int) (Room, error)
	DeleteRoom(ctx context.Context, id int64) error
	CreateUser(ctx context.Context, realName, email string) (User, error)
	DeleteUser(ctx context.Context, id int64) error
	CreateLecturer(ctx context.Context, userID int64, institute string) (Lecturer, error)
	CreateCourse(ctx context.Context, name, description string, lecturerID *int64, enrolled int) (Course, error)
	AssignLecturer(ctx context.Context, courseID int64, lecturerID *int64) error
	DeleteCourse(ctx context.Context, id int64) error
}

type service struct {
	cat    *Catalog
	repo   Repository
	logger *zap.Logger
}

func NewService(cat *Catalog, repo Repository, logger *zap.Logger) Service {
	return &service{cat: cat, repo: repo, logger: logger}
}

func persistErr(err error) error {
	return apperror.Wrap(err, http.StatusBadGateway, "durable store update failed")
}

func (s *service) Room(ctx context.Context, id int64) (Room, error) {
	return s.cat.Room(id)
}

func (s *service) ListRooms(ctx context.Context) []Room {
	var rooms []Room
	for r := range s.cat.Rooms() {
		rooms = append(rooms, r)
	}
	return rooms
}

func (s *service) CreateRoom(ctx context.Context, building string, size int) (Room, error) {
	id, err := s.repo.CreateRoom(ctx, building, size)
	if err != nil {
		return Room{}, persistErr(err)
	}
	r := Room{ID: id, Building: building, Size: size}
	if err := s.cat.AddRoom(r); err != nil {
		return Room{}, err
	}
	s.logger.Info("room created", zap.Int64("room_id", id), zap.String("building", building))
	return r, nil
}

func (s *service) DeleteRoom(ctx context.Context, id int64) error {
	if err := s.cat.DeleteRoom(id); err != nil {
		return err
	}
	if err := s.repo.DeleteRoom(ctx, id); err != nil {
		s.logger.Error("room delete not persisted", zap.Int64("room_id", id), zap.Error(err))
		return persistErr(err)
	}
	s.logger.Info("room deleted", zap.Int64("room_id", id))
	return nil
}

func (s *service) CreateUser(ctx context.Context, realName, email string) (User, error) {
	id, err := s.repo.CreateUser(ctx, realName, email)
	if err != nil {
		return User{}, persistErr(err)
	}
	u := User{ID: id, RealName: realName, Email: email}
	if err := s.cat.AddUser(u); err != nil {
		return User{}, err
	}
	s.logger.Info("user created", zap.Int64("user_id", id))
	return u, nil
}

func (s *service) DeleteUser(ctx context.Context, id int64) error {
	if err := s.cat.DeleteUser(id); err != nil {
		return err
	}
	if err := s.repo.DeleteUser(ctx, id); err != nil {
		s.logger.Error("user delete not persisted", zap.Int64("user_id", id), zap.Error(err))
		return persistErr(err)
	}
	s.logger.Info("user deleted", zap.Int64("user_id", id))
	return nil
}

func (s *service) CreateLecturer(ctx context.Context, userID int64, institute string) (Lecturer, error) {
	// User must exist in memory before touching the durable store.
	if _, err := s.cat.User(userID); err != nil {
		return Lecturer{}, err
	}
	if err := s.repo.CreateLecturer(ctx, userID, institute); err != nil {
		return Lecturer{}, persistErr(err)
	}
	l := Lecturer{UserID: userID, Institute: institute}
	if err := s.cat.AddLecturer(l); err != nil {
		return Lecturer{}, err
	}
	s.logger.Info("lecturer created", zap.Int64("user_id", userID), zap.String("institute", institute))
	return l, nil
}

func (s *service) CreateCourse(ctx context.Context, name, description string, lecturerID *int64, enrolled int) (Course, error) {
	if enrolled < 0 {
		return Course{}, ErrInvalidEnrollment
	}
	if lecturerID != nil {
		if _, err := s.cat.Lecturer(*lecturerID); err != nil {
			return Course{}, err
		}
	}
	id, err := s.repo.CreateCourse(ctx, name, description, lecturerID, enrolled)
	if err != nil {
		return Course{}, persistErr(err)
	}
	co := Course{ID: id, Name: name, Description: description, LecturerID: lecturerID, EnrolledStudents: enrolled}
	if err := s.cat.AddCourse(co); err != nil {
		return Course{}, err
	}
	s.logger.Info("course created", zap.Int64("course_id", id))
	return co, nil
}

func (s *service) AssignLecturer(ctx context.Context, courseID int64, lecturerID *int64) error {
	if err := s.cat.AssignLecturer(courseID, lecturerID); err != nil {
		return err
	}
	if err := s.repo.AssignLecturer(ctx, courseID, lecturerID); err != nil {
		s.logger.Error("lecturer assignment not persisted",
			zap.Int64("course_id", courseID), zap.Error(err))
		return persistErr(err)
	}
	return nil
}

func (s *service) DeleteCourse(ctx context.Context, id int64) error {
	if err := s.cat.DeleteCourse(id); err != nil {
		return err
	}
	if err := s.repo.DeleteCourse(ctx, id); err != nil {
		s.logger.Error("course delete not persisted", zap.Int64("course_id", id), zap.Error(err))
		return persistErr(err)
	}
	s.logger.Info("course deleted", zap.Int64("course_id", id))
	return nil
}
