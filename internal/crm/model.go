package crm

import (
	"strings"
	"time"
)

// CustomerInfo is the raw, partially-populated attribute bag extracted by the
// voice platform during a call. Any field may be empty or zero.
type CustomerInfo struct {
	PhoneNumber    string  `json:"phoneNumber"`
	Name           string  `json:"name"`
	Email          string  `json:"email"`
	Budget         float64 `json:"budget"`
	Intent         string  `json:"intent"`
	Urgency        string  `json:"urgency"`
	Timeline       string  `json:"timeline"`
	PreferredMake  string  `json:"preferredMake"`
	PreferredModel string  `json:"preferredModel"`
	PreferredYear  int     `json:"preferredYear"`
	VehicleType    string  `json:"vehicleType"`
	StockNumber    string  `json:"stockNumber"`
	MinMileage     int     `json:"minMileage"`
	MaxMileage     int     `json:"maxMileage"`
	PriceRangeMin  float64 `json:"priceRangeMin"`
	PriceRangeMax  float64 `json:"priceRangeMax"`
}

// HasContact reports whether any outbound channel exists for this caller.
func (c CustomerInfo) HasContact() bool {
	return c.PhoneNumber != "" || c.Email != ""
}

// CustomerProfile is the persisted record for a distinct phone number.
// Profiles are created at the first qualification touch and read-mostly
// afterward; repeat calls reuse the first-call preferences.
type CustomerProfile struct {
	ID             string    `json:"id"`
	PhoneNumber    string    `json:"phone_number"`
	Name           string    `json:"name"`
	Email          string    `json:"email,omitempty"`
	Budget         float64   `json:"budget,omitempty"`
	PreferredMake  string    `json:"preferred_make,omitempty"`
	PreferredModel string    `json:"preferred_model,omitempty"`
	PreferredYear  int       `json:"preferred_year,omitempty"`
	VehicleType    string    `json:"vehicle_type,omitempty"`
	MinMileage     int       `json:"min_mileage,omitempty"`
	MaxMileage     int       `json:"max_mileage,omitempty"`
	PriceRangeMin  float64   `json:"price_range_min,omitempty"`
	PriceRangeMax  float64   `json:"price_range_max,omitempty"`
	Timeline       string    `json:"purchase_timeline,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

// NewProfile builds a profile from caller-supplied info. Price range defaults
// to budget +/- 20% when the caller gave a budget but no explicit range.
func NewProfile(info CustomerInfo) *CustomerProfile {
	p := &CustomerProfile{
		PhoneNumber:    strings.TrimSpace(info.PhoneNumber),
		Name:           strings.TrimSpace(info.Name),
		Email:          strings.TrimSpace(info.Email),
		Budget:         info.Budget,
		PreferredMake:  info.PreferredMake,
		PreferredModel: info.PreferredModel,
		PreferredYear:  info.PreferredYear,
		VehicleType:    info.VehicleType,
		MinMileage:     info.MinMileage,
		MaxMileage:     info.MaxMileage,
		PriceRangeMin:  info.PriceRangeMin,
		PriceRangeMax:  info.PriceRangeMax,
		Timeline:       info.Timeline,
	}
	if p.PriceRangeMin == 0 && info.Budget > 0 {
		p.PriceRangeMin = info.Budget * 0.8
	}
	if p.PriceRangeMax == 0 && info.Budget > 0 {
		p.PriceRangeMax = info.Budget * 1.2
	}
	return p
}
