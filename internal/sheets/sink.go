package sheets

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"google.golang.org/api/option"
	sheetsv4 "google.golang.org/api/sheets/v4"

	"github.com/wheelhouse-ai/dealership-ai-platform/pkg/logging"
)

const leadRange = "Sheet1!A:I"

// LeadRow is one lead record appended to the dealership's tracking sheet.
type LeadRow struct {
	Timestamp       time.Time
	CustomerName    string
	PhoneNumber     string
	Intent          string
	VehicleInterest string
	CallDuration    string
	Outcome         string
	LeadScore       int
	Summary         string
}

// values flattens the row in sheet column order.
func (r LeadRow) values() []any {
	intent := r.Intent
	if intent == "" {
		intent = "browse"
	}
	interest := strings.TrimSpace(r.VehicleInterest)
	if interest == "" {
		interest = "Not specified"
	}
	duration := r.CallDuration
	if duration == "" {
		duration = "In Progress"
	}
	outcome := r.Outcome
	if outcome == "" {
		outcome = "Transferred to Sales"
	}
	return []any{
		r.Timestamp.Format("1/2/2006, 3:04:05 PM"),
		r.CustomerName,
		r.PhoneNumber,
		intent,
		interest,
		duration,
		outcome,
		r.LeadScore,
		r.Summary,
	}
}

// LeadSink receives completed-call lead rows.
type LeadSink interface {
	AppendLead(ctx context.Context, row LeadRow) error
}

// Sink appends lead rows to a Google Sheet. Failures here must never fail
// the call flow; callers log and continue.
type Sink struct {
	svc           *sheetsv4.Service
	spreadsheetID string
	logger        *logging.Logger
}

// New builds a sink from service-account credentials JSON.
func New(ctx context.Context, spreadsheetID, credentialsJSON string, logger *logging.Logger) (*Sink, error) {
	if spreadsheetID == "" {
		return nil, errors.New("sheets: spreadsheet id is required")
	}
	if credentialsJSON == "" {
		return nil, errors.New("sheets: credentials are required")
	}
	if logger == nil {
		logger = logging.Default()
	}

	svc, err := sheetsv4.NewService(ctx,
		option.WithCredentialsJSON([]byte(credentialsJSON)),
		option.WithScopes(sheetsv4.SpreadsheetsScope),
	)
	if err != nil {
		return nil, fmt.Errorf("sheets: create service: %w", err)
	}

	return &Sink{svc: svc, spreadsheetID: spreadsheetID, logger: logger}, nil
}

// AppendLead appends one row to the tracking sheet.
func (s *Sink) AppendLead(ctx context.Context, row LeadRow) error {
	vr := &sheetsv4.ValueRange{Values: [][]any{row.values()}}

	_, err := s.svc.Spreadsheets.Values.
		Append(s.spreadsheetID, leadRange, vr).
		ValueInputOption("USER_ENTERED").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("sheets: append lead: %w", err)
	}

	s.logger.Info("sheets: lead row appended", "phone", row.PhoneNumber, "score", row.LeadScore)
	return nil
}

// EnsureHeader writes the column header row. Safe to call on an empty sheet.
func (s *Sink) EnsureHeader(ctx context.Context) error {
	vr := &sheetsv4.ValueRange{Values: [][]any{{
		"Timestamp", "Customer Name", "Phone Number", "Intent", "Vehicle Interest",
		"Call Duration", "Outcome", "Lead Score", "Summary",
	}}}
	_, err := s.svc.Spreadsheets.Values.
		Update(s.spreadsheetID, "Sheet1!A1:I1", vr).
		ValueInputOption("USER_ENTERED").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("sheets: write header: %w", err)
	}
	return nil
}

// NoopSink is used when sheet tracking is not configured.
type NoopSink struct {
	logger *logging.Logger
}

func NewNoopSink(logger *logging.Logger) *NoopSink {
	if logger == nil {
		logger = logging.Default()
	}
	return &NoopSink{logger: logger}
}

func (s *NoopSink) AppendLead(_ context.Context, row LeadRow) error {
	s.logger.Debug("sheets: tracking disabled, dropping lead row", "phone", row.PhoneNumber)
	return nil
}
