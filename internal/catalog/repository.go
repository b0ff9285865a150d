package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Snapshot is the full catalog state as loaded from the durable store.
type Snapshot struct {
	Rooms     []Room
	Users     []User
	Lecturers []Lecturer
	Courses   []Course
}

// Repository is the persistence collaborator for catalog reference data.
// The in-memory catalog is authoritative at runtime; the repository loads
// it at startup and records administrative changes.
type Repository interface {
	Load(ctx context.Context) (*Snapshot, error)

	CreateRoom(ctx context.Context, building string, size int) (int64, error)
	DeleteRoom(ctx context.Context, id int64) error
	CreateUser(ctx context.Context, realName, email string) (int64, error)
	DeleteUser(ctx context.Context, id int64) error
	CreateLecturer(ctx context.Context, userID int64, institute string) error
	CreateCourse(ctx context.Context, name, description string, lecturerID *int64, enrolled int) (int64, error)
	AssignLecturer(ctx context.Context, courseID int64, lecturerID *int64) error
	DeleteCourse(ctx context.Context, id int64) error
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

func (r *pgxRepository) Load(ctx context.Context) (*Snapshot, error) {
	snap := &Snapshot{}
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

	query, args, err := psql.Select("id", "building", "size").
		From("public.rooms").OrderBy("id").ToSql()
	if err != nil {
		return nil, fmt.Errorf("build load rooms query failed: %w", err)
	}
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("load rooms failed: %w", err)
	}
	for rows.Next() {
		var rm Room
		if err := rows.Scan(&rm.ID, &rm.Building, &rm.Size); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan room failed: %w", err)
		}
		snap.Rooms = append(snap.Rooms, rm)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("load rooms failed: %w", err)
	}

	query, args, err = psql.Select("id", "real_name", "email").
		From("public.users").OrderBy("id").ToSql()
	if err != nil {
		return nil, fmt.Errorf("build load users query failed: %w", err)
	}
	rows, err = r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("load users failed: %w", err)
	}
	for rows.Next() {
		var u User
		if err := rows.Scan(&u.ID, &u.RealName, &u.Email); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan user failed: %w", err)
		}
		snap.Users = append(snap.Users, u)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("load users failed: %w", err)
	}

	query, args, err = psql.Select("user_id", "institute").
		From("public.lecturers").OrderBy("user_id").ToSql()
	if err != nil {
		return nil, fmt.Errorf("build load lecturers query failed: %w", err)
	}
	rows, err = r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("load lecturers failed: %w", err)
	}
	for rows.Next() {
		var l Lecturer
		if err := rows.Scan(&l.UserID, &l.Institute); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan lecturer failed: %w", err)
		}
		snap.Lecturers = append(snap.Lecturers, l)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("load lecturers failed: %w", err)
	}

	query, args, err = psql.Select("id", "course_name", "description", "lecturer_id", "enrolled_students").
		From("public.courses").OrderBy("id").ToSql()
	if err != nil {
		return nil, fmt.Errorf("build load courses query failed: %w", err)
	}
	rows, err = r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("load courses failed: %w", err)
	}
	for rows.Next() {
		var co Course
		if err := rows.Scan(&co.ID, &co.Name, &co.Description, &co.LecturerID, &co.EnrolledStudents); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan course failed: %w", err)
		}
		snap.Courses = append(snap.Courses, co)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("load courses failed: %w", err)
	}

	return snap, nil
}

func (r *pgxRepository) CreateRoom(ctx context.Context, building string, size int) (int64, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.rooms").
		Columns("building", "size").
		Values(building, size).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build create room query failed: %w", err)
	}

	var id int64
	if err := r.pool.QueryRow(ctx, query, args...).Scan(&id); err != nil {
		return 0, fmt.Errorf("create room failed: %w", err)
	}
	return id, nil
}

func (r *pgxRepository) DeleteRoom(ctx context.Context, id int64) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Delete("public.rooms").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete room query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		// The bookings table carries a foreign key on room_id; the database
		// backstops the catalog's own referential check.
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.ForeignKeyViolation {
			return ErrStillReferenced
		}
		return fmt.Errorf("delete room failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrRoomNotFound
	}
	return nil
}

func (r *pgxRepository) CreateUser(ctx context.Context, realName, email string) (int64, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.users").
		Columns("real_name", "email").
		Values(realName, email).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build create user query failed: %w", err)
	}

	var id int64
	if err := r.pool.QueryRow(ctx, query, args...).Scan(&id); err != nil {
		return 0, fmt.Errorf("create user failed: %w", err)
	}
	return id, nil
}

func (r *pgxRepository) DeleteUser(ctx context.Context, id int64) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Delete("public.users").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete user query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.ForeignKeyViolation {
			return ErrStillReferenced
		}
		return fmt.Errorf("delete user failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *pgxRepository) CreateLecturer(ctx context.Context, userID int64, institute string) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.lecturers").
		Columns("user_id", "institute").
		Values(userID, institute).
		ToSql()
	if err != nil {
		return fmt.Errorf("build create lecturer query failed: %w", err)
	}

	if _, err := r.pool.Exec(ctx, query, args...); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return ErrDuplicateID
		}
		return fmt.Errorf("create lecturer failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) CreateCourse(ctx context.Context, name, description string, lecturerID *int64, enrolled int) (int64, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.courses").
		Columns("course_name", "description", "lecturer_id", "enrolled_students").
		Values(name, description, lecturerID, enrolled).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build create course query failed: %w", err)
	}

	var id int64
	if err := r.pool.QueryRow(ctx, query, args...).Scan(&id); err != nil {
		return 0, fmt.Errorf("create course failed: %w", err)
	}
	return id, nil
}

func (r *pgxRepository) AssignLecturer(ctx context.Context, courseID int64, lecturerID *int64) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Update("public.courses").
		Set("lecturer_id", lecturerID).
		Where(squirrel.Eq{"id": courseID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build assign lecturer query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("assign lecturer failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrCourseNotFound
	}
	return nil
}

func (r *pgxRepository) DeleteCourse(ctx context.Context, id int64) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Delete("public.courses").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete course query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.ForeignKeyViolation {
			return ErrStillReferenced
		}
		return fmt.Errorf("delete course failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrCourseNotFound
	}
	return nil
}
