package comms

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Channel is the delivery transport for a scheduled communication.
type Channel string

const (
	ChannelSMS   Channel = "sms"
	ChannelEmail Channel = "email"
)

// Kind classifies what a message is for.
type Kind string

const (
	KindInventoryLink Kind = "inventory_link"
	KindClientSummary Kind = "client_summary"
	KindEducation     Kind = "education"
)

// MessageStatus tracks a scheduled communication through its lifecycle.
type MessageStatus string

const (
	StatusPending MessageStatus = "pending"
	StatusSent    MessageStatus = "sent"
	StatusFailed  MessageStatus = "failed"
)

var (
	// ErrDuplicate is returned by stores when a message with the same
	// dedupe key has already been scheduled.
	ErrDuplicate = errors.New("comms: message already scheduled")

	ErrMessageNotFound = errors.New("comms: message not found")
)

// Message is one scheduled outbound communication.
type Message struct {
	ID          uuid.UUID     `json:"id"`
	CallID      string        `json:"call_id"`
	CustomerID  string        `json:"customer_id"`
	Channel     Channel       `json:"channel"`
	Kind        Kind          `json:"kind"`
	Recipient   string        `json:"recipient"`
	Subject     string        `json:"subject,omitempty"`
	Body        string        `json:"body"`
	Campaign    string        `json:"campaign,omitempty"`
	Sequence    int           `json:"sequence,omitempty"`
	DedupeKey   string        `json:"dedupe_key"`
	Status      MessageStatus `json:"status"`
	ScheduledAt time.Time     `json:"scheduled_at"`
	SentAt      *time.Time    `json:"sent_at,omitempty"`
	LastError   string        `json:"last_error,omitempty"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}

// linkDedupeKey and friends make re-planning the same call a no-op: the
// store rejects a second message carrying the same key.
func linkDedupeKey(callID string) string {
	return fmt.Sprintf("%s:inventory_link", callID)
}

func summaryDedupeKey(callID string) string {
	return fmt.Sprintf("%s:client_summary", callID)
}

func educationDedupeKey(callID, campaign string, sequence int) string {
	return fmt.Sprintf("%s:%s:%d", callID, campaign, sequence)
}
