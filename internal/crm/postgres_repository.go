package crm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DB abstracts the pgx query interface for testing.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PostgresRepository stores customer profiles in the relational database.
type PostgresRepository struct {
	db DB
}

// NewPostgresRepository initializes a repo backed by a pgx pool.
func NewPostgresRepository(db DB) *PostgresRepository {
	if db == nil {
		panic("crm: pgx pool required")
	}
	return &PostgresRepository{db: db}
}

const profileColumns = `id, phone_number, name, email, budget, preferred_make, preferred_model,
	preferred_year, vehicle_type, min_mileage, max_mileage, price_range_min, price_range_max,
	purchase_timeline, created_at`

// GetOrCreateByPhone inserts the profile unless one already exists for the
// phone number. ON CONFLICT DO NOTHING keeps the first call's preferences; the
// follow-up select returns whichever row won.
func (r *PostgresRepository) GetOrCreateByPhone(ctx context.Context, profile *CustomerProfile) (*CustomerProfile, error) {
	phone := strings.TrimSpace(profile.PhoneNumber)
	if phone == "" {
		return nil, ErrMissingPhone
	}

	id := uuid.New()
	insert := `
		INSERT INTO customer_profiles (
			id, phone_number, name, email, budget, preferred_make, preferred_model,
			preferred_year, vehicle_type, min_mileage, max_mileage, price_range_min,
			price_range_max, purchase_timeline
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		ON CONFLICT (phone_number) DO NOTHING
	`
	if _, err := r.db.Exec(ctx, insert,
		id,
		phone,
		profile.Name,
		profile.Email,
		profile.Budget,
		profile.PreferredMake,
		profile.PreferredModel,
		profile.PreferredYear,
		profile.VehicleType,
		profile.MinMileage,
		profile.MaxMileage,
		profile.PriceRangeMin,
		profile.PriceRangeMax,
		profile.Timeline,
	); err != nil {
		return nil, fmt.Errorf("crm: insert profile: %w", err)
	}

	return r.GetByPhone(ctx, phone)
}

// GetByPhone fetches a profile by its natural key.
func (r *PostgresRepository) GetByPhone(ctx context.Context, phoneNumber string) (*CustomerProfile, error) {
	query := `SELECT ` + profileColumns + ` FROM customer_profiles WHERE phone_number = $1`
	return r.scanOne(r.db.QueryRow(ctx, query, strings.TrimSpace(phoneNumber)))
}

// GetByID fetches a profile by generated id.
func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*CustomerProfile, error) {
	query := `SELECT ` + profileColumns + ` FROM customer_profiles WHERE id = $1`
	return r.scanOne(r.db.QueryRow(ctx, query, id))
}

func (r *PostgresRepository) scanOne(row pgx.Row) (*CustomerProfile, error) {
	var p CustomerProfile
	if err := row.Scan(
		&p.ID,
		&p.PhoneNumber,
		&p.Name,
		&p.Email,
		&p.Budget,
		&p.PreferredMake,
		&p.PreferredModel,
		&p.PreferredYear,
		&p.VehicleType,
		&p.MinMileage,
		&p.MaxMileage,
		&p.PriceRangeMin,
		&p.PriceRangeMax,
		&p.Timeline,
		&p.CreatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrProfileNotFound
		}
		return nil, fmt.Errorf("crm: select profile: %w", err)
	}
	return &p, nil
}
