package callsession

import (
	"time"

	"github.com/wheelhouse-ai/dealership-ai-platform/internal/agents"
)

// Status tracks the call lifecycle.
type Status string

const (
	StatusActive    Status = "active"
	StatusCompleted Status = "completed"
)

// Transfer is one entry in a session's append-only transfer history.
type Transfer struct {
	From      agents.Agent `json:"from"`
	To        agents.Agent `json:"to"`
	Reason    string       `json:"reason"`
	Timestamp time.Time    `json:"timestamp"`
}

// Session is the authoritative record for one in-progress phone call. The id
// is the telephony platform's call id, never generated here.
type Session struct {
	ID              string            `json:"id"`
	CurrentAgent    agents.Agent      `json:"current_agent"`
	Context         map[string]string `json:"context"`
	TransferHistory []Transfer        `json:"transfer_history"`
	Status          Status            `json:"status"`
	Outcome         string            `json:"outcome,omitempty"`
	Summary         string            `json:"summary,omitempty"`
	StartedAt       time.Time         `json:"started_at"`
	LastActivityAt  time.Time         `json:"last_activity_at"`
	CompletedAt     time.Time         `json:"completed_at,omitempty"`
}

func newSession(callID string, now time.Time) *Session {
	return &Session{
		ID:             callID,
		CurrentAgent:   agents.LeadQualifier,
		Context:        make(map[string]string),
		Status:         StatusActive,
		StartedAt:      now,
		LastActivityAt: now,
	}
}

// mergeContext grows the context bag; existing keys are overwritten with the
// newest value but never removed.
func (s *Session) mergeContext(ctx map[string]string) {
	if len(ctx) == 0 {
		return
	}
	if s.Context == nil {
		s.Context = make(map[string]string, len(ctx))
	}
	for k, v := range ctx {
		s.Context[k] = v
	}
}

// RouteContext projects the session's context bag into the router's view.
func (s *Session) RouteContext() agents.Context {
	return agents.Context{
		Intent:       s.Context["intent"],
		CustomerType: s.Context["customerType"],
		Urgency:      s.Context["urgency"],
		Stage:        s.Context["stage"],
	}
}
