package booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository makes booking decisions durable. The in-memory store decides;
// the repository only records. Load runs once at startup to rebuild the
// store from the backing table.
type Repository interface {
	Load(ctx context.Context) ([]Booking, error)
	Persist(ctx context.Context, b *Booking) error
	PersistCancel(ctx context.Context, id int64) error
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

func (r *pgxRepository) Load(ctx context.Context) ([]Booking, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(
		"id", "room_id", "booking_date", "start_hour", "end_hour",
		"booking_type", "course_id", "user_id", "status", "created_at",
	).
		From("public.bookings").
		OrderBy("booking_date", "start_hour", "id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build load bookings query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("load bookings failed: %w", err)
	}
	defer rows.Close()

	var bookings []Booking
	for rows.Next() {
		var b Booking
		if err := rows.Scan(
			&b.ID, &b.RoomID, &b.Date, &b.StartHour, &b.EndHour,
			&b.Type, &b.CourseID, &b.UserID, &b.Status, &b.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan booking failed: %w", err)
		}
		bookings = append(bookings, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("load bookings failed: %w", err)
	}
	return bookings, nil
}

func (r *pgxRepository) Persist(ctx context.Context, b *Booking) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.bookings").
		Columns("id", "room_id", "booking_date", "start_hour", "end_hour",
			"booking_type", "course_id", "user_id", "status", "created_at").
		Values(b.ID, b.RoomID, b.Date, b.StartHour, b.EndHour,
			b.Type, b.CourseID, b.UserID, b.Status, b.CreatedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("build persist booking query failed: %w", err)
	}

	if _, err := r.pool.Exec(ctx, query, args...); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.ForeignKeyViolation {
			// The store validated references against the catalog already;
			// hitting this means catalog and table have diverged.
			return fmt.Errorf("booking references unknown entity: %w", err)
		}
		return fmt.Errorf("persist booking failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) PersistCancel(ctx context.Context, id int64) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Update("public.bookings").
		Set("status", StatusCancelled).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build persist cancel query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("persist cancel failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
