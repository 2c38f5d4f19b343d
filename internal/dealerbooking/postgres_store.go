package dealerbooking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DB is the subset of pgxpool.Pool used by the store, kept narrow so tests
// can substitute pgxmock.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

const bookingColumns = `id, call_id, customer_name, customer_phone, vehicle_id, vehicle_label,
	preferred_date, preferred_time, status, confirmation, created_at, updated_at`

// PostgresStore persists test drive bookings in Postgres.
type PostgresStore struct {
	db DB
}

func NewPostgresStore(db DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Create(ctx context.Context, req Request) (*Booking, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}

	b := newBooking(req, time.Now().UTC())
	_, err := s.db.Exec(ctx, `
		INSERT INTO test_drive_bookings (`+bookingColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		b.ID, b.CallID, b.CustomerName, b.CustomerPhone, b.VehicleID, b.VehicleLabel,
		b.PreferredDate, b.PreferredTime, string(b.Status), b.Confirmation, b.CreatedAt, b.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("dealerbooking: insert booking: %w", err)
	}
	return b, nil
}

func (s *PostgresStore) GetByID(ctx context.Context, id string) (*Booking, error) {
	row := s.db.QueryRow(ctx, `SELECT `+bookingColumns+` FROM test_drive_bookings WHERE id = $1`, id)
	return scanBooking(row)
}

func (s *PostgresStore) ListByPhone(ctx context.Context, phone string) ([]*Booking, error) {
	rows, err := s.db.Query(ctx, `
		SELECT `+bookingColumns+`
		FROM test_drive_bookings
		WHERE customer_phone = $1
		ORDER BY created_at DESC`, phone)
	if err != nil {
		return nil, fmt.Errorf("dealerbooking: list by phone: %w", err)
	}
	defer rows.Close()

	var out []*Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func (s *PostgresStore) UpdateStatus(ctx context.Context, id string, status Status) (*Booking, error) {
	tag, err := s.db.Exec(ctx, `
		UPDATE test_drive_bookings SET status = $2, updated_at = NOW() WHERE id = $1`,
		id, string(status),
	)
	if err != nil {
		return nil, fmt.Errorf("dealerbooking: update status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return nil, ErrBookingNotFound
	}
	return s.GetByID(ctx, id)
}

func scanBooking(row pgx.Row) (*Booking, error) {
	var b Booking
	var status string
	err := row.Scan(
		&b.ID, &b.CallID, &b.CustomerName, &b.CustomerPhone, &b.VehicleID, &b.VehicleLabel,
		&b.PreferredDate, &b.PreferredTime, &status, &b.Confirmation, &b.CreatedAt, &b.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("dealerbooking: scan booking: %w", err)
	}
	b.Status = Status(status)
	return &b, nil
}
