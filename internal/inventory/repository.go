package inventory

import (
	"context"
	"errors"
	"strings"
	"sync"
)

// ErrVehicleNotFound is returned when no vehicle matches the given id.
var ErrVehicleNotFound = errors.New("vehicle not found")

// Repository defines read access to the lot.
type Repository interface {
	Search(ctx context.Context, criteria SearchCriteria) ([]Vehicle, error)
	GetByID(ctx context.Context, id string) (*Vehicle, error)
}

// InMemoryRepository serves a fixed vehicle list, used in tests and demo mode.
type InMemoryRepository struct {
	mu       sync.RWMutex
	vehicles []Vehicle
}

// NewInMemoryRepository creates a repository over the given vehicles. A nil
// slice seeds the demo lot.
func NewInMemoryRepository(vehicles []Vehicle) *InMemoryRepository {
	if vehicles == nil {
		vehicles = demoLot()
	}
	return &InMemoryRepository{vehicles: vehicles}
}

// Search returns all available vehicles matching the criteria.
func (r *InMemoryRepository) Search(ctx context.Context, criteria SearchCriteria) ([]Vehicle, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []Vehicle
	for _, v := range r.vehicles {
		if criteria.Matches(v) {
			out = append(out, v)
		}
	}
	return out, nil
}

// GetByID looks a vehicle up by id, stock number, or VIN.
func (r *InMemoryRepository) GetByID(ctx context.Context, id string) (*Vehicle, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for i := range r.vehicles {
		v := &r.vehicles[i]
		if strings.EqualFold(v.ID, id) || strings.EqualFold(v.StockNumber, id) || strings.EqualFold(v.VIN, id) {
			return v, nil
		}
	}
	return nil, ErrVehicleNotFound
}

// demoLot mirrors a small sample floor so the platform works without a
// database.
func demoLot() []Vehicle {
	return []Vehicle{
		{
			ID: "INV001", StockNumber: "A1001", VIN: "1HGCM82633A123456",
			Year: 2024, Make: "Honda", Model: "Accord", Type: "sedan", Color: "Pearl White",
			Price: 28500, Mileage: 15,
			Features:   []string{"leather seats", "sunroof", "apple carplay", "lane keeping assist"},
			MPGCity:    32, MPGHighway: 42, Status: "available",
		},
		{
			ID: "INV002", StockNumber: "A1002", VIN: "5XYZU3LB8JG123456",
			Year: 2024, Make: "Hyundai", Model: "Santa Fe", Type: "suv", Color: "Calypso Red",
			Price: 34900, Mileage: 8,
			Features:   []string{"awd", "3rd row seating", "panoramic sunroof", "blind spot monitoring"},
			MPGCity:    25, MPGHighway: 31, Status: "available",
		},
		{
			ID: "INV003", StockNumber: "A1003", VIN: "1FTFW1ET5DFC12345",
			Year: 2023, Make: "Ford", Model: "F-150", Type: "truck", Color: "Velocity Blue",
			Price: 45500, Mileage: 5200,
			Features:   []string{"4wd", "crew cab", "towing package", "bed liner", "apple carplay"},
			MPGCity:    20, MPGHighway: 27, Status: "available",
		},
		{
			ID: "INV004", StockNumber: "A1004", VIN: "JTEBU5JR8K5123456",
			Year: 2024, Make: "Toyota", Model: "4Runner", Type: "suv", Color: "Army Green",
			Price: 42800, Mileage: 120,
			Features:   []string{"4wd", "crawl control", "leather seats", "jbl audio", "sunroof"},
			MPGCity:    17, MPGHighway: 21, Status: "available",
		},
	}
}
