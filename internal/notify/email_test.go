package notify

import (
	"context"
	"testing"
)

func TestNewSendGridSender_NilWithoutAPIKey(t *testing.T) {
	sender := NewSendGridSender(SendGridConfig{
		APIKey:    "",
		FromEmail: "test@example.com",
	}, nil)

	if sender != nil {
		t.Error("expected nil sender when API key is empty")
	}
}

func TestNewSendGridSender_DefaultFromName(t *testing.T) {
	sender := NewSendGridSender(SendGridConfig{
		APIKey:    "test-key",
		FromEmail: "test@example.com",
		FromName:  "",
	}, nil)

	if sender == nil {
		t.Fatal("expected non-nil sender")
	}
	if sender.fromName != "Wheelhouse Motors" {
		t.Errorf("expected default from name 'Wheelhouse Motors', got %q", sender.fromName)
	}
}

func TestNewSendGridSender_CustomFromName(t *testing.T) {
	sender := NewSendGridSender(SendGridConfig{
		APIKey:    "test-key",
		FromEmail: "test@example.com",
		FromName:  "Custom Name",
	}, nil)

	if sender == nil {
		t.Fatal("expected non-nil sender")
	}
	if sender.fromName != "Custom Name" {
		t.Errorf("expected from name 'Custom Name', got %q", sender.fromName)
	}
}

func TestSendGridSender_Send_NilClient(t *testing.T) {
	sender := &SendGridSender{}
	if err := sender.Send(context.Background(), EmailMessage{To: "x@example.com"}); err == nil {
		t.Error("expected error when client is nil")
	}
}

func TestNewSESSender_NilWithoutClient(t *testing.T) {
	if sender := NewSESSender(nil, SESConfig{FromEmail: "x@example.com"}, nil); sender != nil {
		t.Error("expected nil sender when client is nil")
	}
}

func TestStubEmailSender_Send(t *testing.T) {
	sender := NewStubEmailSender(nil)
	if err := sender.Send(context.Background(), EmailMessage{To: "x@example.com", Subject: "hi"}); err != nil {
		t.Errorf("stub send returned error: %v", err)
	}
}

func TestEmailAdapter(t *testing.T) {
	captured := &capturingEmailSender{}
	adapter := EmailAdapter{Sender: captured}

	if err := adapter.SendEmail(context.Background(), "x@example.com", "subject", "body"); err != nil {
		t.Fatalf("adapter send error: %v", err)
	}
	if captured.last.To != "x@example.com" || captured.last.Subject != "subject" || captured.last.Body != "body" {
		t.Errorf("unexpected message: %+v", captured.last)
	}
}

type capturingEmailSender struct {
	last EmailMessage
}

func (c *capturingEmailSender) Send(_ context.Context, msg EmailMessage) error {
	c.last = msg
	return nil
}
