package inventory

import (
	"fmt"
	"strings"
)

// Vehicle is one unit on the lot.
type Vehicle struct {
	ID          string   `json:"id"`
	StockNumber string   `json:"stock_number"`
	VIN         string   `json:"vin"`
	Year        int      `json:"year"`
	Make        string   `json:"make"`
	Model       string   `json:"model"`
	Type        string   `json:"type"` // sedan, suv, truck, ...
	Color       string   `json:"color"`
	Price       float64  `json:"price"`
	Mileage     int      `json:"mileage"`
	Features    []string `json:"features,omitempty"`
	MPGCity     int      `json:"mpg_city,omitempty"`
	MPGHighway  int      `json:"mpg_highway,omitempty"`
	Status      string   `json:"status"` // available, sold, hold
}

// Description returns the short spoken form, e.g. "2024 Honda Accord".
func (v Vehicle) Description() string {
	return fmt.Sprintf("%d %s %s", v.Year, v.Make, v.Model)
}

// SearchCriteria filters the lot. Zero values mean "don't care".
type SearchCriteria struct {
	Make        string
	Model       string
	Type        string
	StockNumber string
	YearMin     int
	YearMax     int
	PriceMin    float64
	PriceMax    float64
	MileageMin  int
	MileageMax  int
	Features    []string
}

// Matches reports whether the vehicle satisfies every set criterion. Only
// available units match.
func (c SearchCriteria) Matches(v Vehicle) bool {
	if v.Status != "" && v.Status != "available" {
		return false
	}
	if c.StockNumber != "" && !strings.EqualFold(c.StockNumber, v.StockNumber) {
		return false
	}
	if c.Make != "" && !strings.EqualFold(c.Make, v.Make) {
		return false
	}
	if c.Model != "" && !strings.EqualFold(c.Model, v.Model) {
		return false
	}
	if c.Type != "" && !strings.EqualFold(c.Type, v.Type) {
		return false
	}
	if c.YearMin != 0 && v.Year < c.YearMin {
		return false
	}
	if c.YearMax != 0 && v.Year > c.YearMax {
		return false
	}
	if c.PriceMin != 0 && v.Price < c.PriceMin {
		return false
	}
	if c.PriceMax != 0 && v.Price > c.PriceMax {
		return false
	}
	if c.MileageMin != 0 && v.Mileage < c.MileageMin {
		return false
	}
	if c.MileageMax != 0 && v.Mileage > c.MileageMax {
		return false
	}
	for _, want := range c.Features {
		found := false
		for _, have := range v.Features {
			if strings.Contains(strings.ToLower(have), strings.ToLower(want)) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}
