package sheets

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLeadRowValuesDefaults(t *testing.T) {
	row := LeadRow{Timestamp: time.Date(2026, 9, 1, 14, 30, 0, 0, time.UTC)}
	values := row.values()

	assert.Len(t, values, 9)
	assert.Equal(t, "browse", values[3])
	assert.Equal(t, "Not specified", values[4])
	assert.Equal(t, "In Progress", values[5])
	assert.Equal(t, "Transferred to Sales", values[6])
	assert.Equal(t, 0, values[7])
}

func TestLeadRowValuesPopulated(t *testing.T) {
	row := LeadRow{
		Timestamp:       time.Date(2026, 9, 1, 14, 30, 0, 0, time.UTC),
		CustomerName:    "Dana Fields",
		PhoneNumber:     "+15551234567",
		Intent:          "buy",
		VehicleInterest: "Honda Accord",
		CallDuration:    "4m12s",
		Outcome:         "Test drive booked",
		LeadScore:       85,
		Summary:         "Qualified buyer",
	}
	values := row.values()

	assert.Equal(t, "Dana Fields", values[1])
	assert.Equal(t, "buy", values[3])
	assert.Equal(t, "Honda Accord", values[4])
	assert.Equal(t, 85, values[7])
}

func TestNewRequiresConfig(t *testing.T) {
	_, err := New(context.Background(), "", `{"type":"service_account"}`, nil)
	assert.Error(t, err)

	_, err = New(context.Background(), "sheet-id", "", nil)
	assert.Error(t, err)
}

func TestNoopSink(t *testing.T) {
	sink := NewNoopSink(nil)
	assert.NoError(t, sink.AppendLead(context.Background(), LeadRow{PhoneNumber: "+15551234567"}))
}
