package dealerbooking

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Status tracks a test drive booking through its lifecycle.
type Status string

const (
	StatusConfirmed Status = "confirmed"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
	StatusNoShow    Status = "no_show"
)

var (
	ErrBookingNotFound = errors.New("dealerbooking: booking not found")
	ErrMissingCustomer = errors.New("dealerbooking: customer name and phone are required")
	ErrMissingVehicle  = errors.New("dealerbooking: vehicle is required")
	ErrMissingSlot     = errors.New("dealerbooking: preferred date and time are required")
)

// Booking is a scheduled test drive at the dealership.
type Booking struct {
	ID            string    `json:"id"`
	CallID        string    `json:"call_id"`
	CustomerName  string    `json:"customer_name"`
	CustomerPhone string    `json:"customer_phone"`
	VehicleID     string    `json:"vehicle_id"`
	VehicleLabel  string    `json:"vehicle_label"`
	PreferredDate string    `json:"preferred_date"`
	PreferredTime string    `json:"preferred_time"`
	Status        Status    `json:"status"`
	Confirmation  string    `json:"confirmation"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// Request carries the fields collected on the call.
type Request struct {
	CallID        string
	CustomerName  string
	CustomerPhone string
	VehicleID     string
	VehicleLabel  string
	PreferredDate string
	PreferredTime string
}

func (r Request) validate() error {
	if strings.TrimSpace(r.CustomerName) == "" || strings.TrimSpace(r.CustomerPhone) == "" {
		return ErrMissingCustomer
	}
	if strings.TrimSpace(r.VehicleID) == "" && strings.TrimSpace(r.VehicleLabel) == "" {
		return ErrMissingVehicle
	}
	if strings.TrimSpace(r.PreferredDate) == "" || strings.TrimSpace(r.PreferredTime) == "" {
		return ErrMissingSlot
	}
	return nil
}

func newBooking(req Request, now time.Time) *Booking {
	id := uuid.NewString()
	return &Booking{
		ID:            id,
		CallID:        req.CallID,
		CustomerName:  strings.TrimSpace(req.CustomerName),
		CustomerPhone: strings.TrimSpace(req.CustomerPhone),
		VehicleID:     strings.TrimSpace(req.VehicleID),
		VehicleLabel:  strings.TrimSpace(req.VehicleLabel),
		PreferredDate: strings.TrimSpace(req.PreferredDate),
		PreferredTime: strings.TrimSpace(req.PreferredTime),
		Status:        StatusConfirmed,
		Confirmation:  confirmationCode(id),
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// confirmationCode derives a short human-readable code from the booking ID.
func confirmationCode(id string) string {
	compact := strings.ToUpper(strings.ReplaceAll(id, "-", ""))
	if len(compact) > 8 {
		compact = compact[:8]
	}
	return fmt.Sprintf("TD-%s", compact)
}
