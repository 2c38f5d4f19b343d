package inventory

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DB abstracts the pgx query interface for testing.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PostgresRepository reads the lot from the relational database.
type PostgresRepository struct {
	db DB
}

// NewPostgresRepository initializes a repo backed by a pgx pool.
func NewPostgresRepository(db DB) *PostgresRepository {
	if db == nil {
		panic("inventory: pgx pool required")
	}
	return &PostgresRepository{db: db}
}

const vehicleColumns = `id, stock_number, vin, year, make, model, type, color, price, mileage, features, mpg_city, mpg_highway, status`

// Search builds a WHERE clause from the set criteria and returns matching
// available vehicles.
func (r *PostgresRepository) Search(ctx context.Context, criteria SearchCriteria) ([]Vehicle, error) {
	clauses := []string{"status = 'available'"}
	var args []any

	add := func(clause string, value any) {
		args = append(args, value)
		clauses = append(clauses, clause+"$"+strconv.Itoa(len(args)))
	}

	if criteria.StockNumber != "" {
		add("stock_number ILIKE ", criteria.StockNumber)
	}
	if criteria.Make != "" {
		add("make ILIKE ", criteria.Make)
	}
	if criteria.Model != "" {
		add("model ILIKE ", criteria.Model)
	}
	if criteria.Type != "" {
		add("type ILIKE ", criteria.Type)
	}
	if criteria.YearMin != 0 {
		add("year >= ", criteria.YearMin)
	}
	if criteria.YearMax != 0 {
		add("year <= ", criteria.YearMax)
	}
	if criteria.PriceMin != 0 {
		add("price >= ", criteria.PriceMin)
	}
	if criteria.PriceMax != 0 {
		add("price <= ", criteria.PriceMax)
	}
	if criteria.MileageMin != 0 {
		add("mileage >= ", criteria.MileageMin)
	}
	if criteria.MileageMax != 0 {
		add("mileage <= ", criteria.MileageMax)
	}

	query := `SELECT ` + vehicleColumns + ` FROM vehicles WHERE ` +
		strings.Join(clauses, " AND ") + ` ORDER BY price ASC`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("inventory: search: %w", err)
	}
	defer rows.Close()

	var out []Vehicle
	for rows.Next() {
		var v Vehicle
		if err := rows.Scan(
			&v.ID, &v.StockNumber, &v.VIN, &v.Year, &v.Make, &v.Model, &v.Type,
			&v.Color, &v.Price, &v.Mileage, &v.Features, &v.MPGCity, &v.MPGHighway, &v.Status,
		); err != nil {
			return nil, fmt.Errorf("inventory: scan vehicle: %w", err)
		}
		// Feature filtering happens in-process; array containment queries are
		// not worth the index for a lot this size.
		if (SearchCriteria{Features: criteria.Features}).Matches(v) {
			out = append(out, v)
		}
	}
	return out, rows.Err()
}

// GetByID looks a vehicle up by id, stock number, or VIN.
func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*Vehicle, error) {
	query := `SELECT ` + vehicleColumns + ` FROM vehicles WHERE id = $1 OR stock_number = $1 OR vin = $1`
	var v Vehicle
	if err := r.db.QueryRow(ctx, query, id).Scan(
		&v.ID, &v.StockNumber, &v.VIN, &v.Year, &v.Make, &v.Model, &v.Type,
		&v.Color, &v.Price, &v.Mileage, &v.Features, &v.MPGCity, &v.MPGHighway, &v.Status,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrVehicleNotFound
		}
		return nil, fmt.Errorf("inventory: select vehicle: %w", err)
	}
	return &v, nil
}
