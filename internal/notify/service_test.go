package notify

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	appconfig "github.com/wheelhouse-ai/dealership-ai-platform/internal/config"
)

func TestNewEmailSenderFromConfig_StubWhenDisabled(t *testing.T) {
	cfg := &appconfig.Config{EmailProvider: "disabled"}
	sender := NewEmailSenderFromConfig(context.Background(), cfg, nil)
	if _, ok := sender.(*StubEmailSender); !ok {
		t.Errorf("expected stub sender, got %T", sender)
	}
}

func TestNewEmailSenderFromConfig_SendGrid(t *testing.T) {
	cfg := &appconfig.Config{
		EmailProvider:     "sendgrid",
		SendGridAPIKey:    "sg-key",
		SendGridFromEmail: "sales@wheelhousemotors.com",
	}
	sender := NewEmailSenderFromConfig(context.Background(), cfg, nil)
	if _, ok := sender.(*SendGridSender); !ok {
		t.Errorf("expected sendgrid sender, got %T", sender)
	}
}

func TestNewEmailSenderFromConfig_SendGridWithoutKeyFallsBack(t *testing.T) {
	cfg := &appconfig.Config{EmailProvider: "sendgrid"}
	sender := NewEmailSenderFromConfig(context.Background(), cfg, nil)
	if _, ok := sender.(*StubEmailSender); !ok {
		t.Errorf("expected stub fallback, got %T", sender)
	}
}

func TestNewSMSSenderFromConfig_StubWithoutCredentials(t *testing.T) {
	sender := NewSMSSenderFromConfig(&appconfig.Config{}, nil)
	if _, ok := sender.(*StubSMSSender); !ok {
		t.Errorf("expected stub sender, got %T", sender)
	}
}

func TestNewSMSSenderFromConfig_Twilio(t *testing.T) {
	cfg := &appconfig.Config{
		SMSAccountSID: "AC123",
		SMSAuthToken:  "token",
		SMSFromNumber: "+15550009999",
	}
	sender := NewSMSSenderFromConfig(cfg, nil)
	if _, ok := sender.(*TwilioSender); !ok {
		t.Errorf("expected twilio sender, got %T", sender)
	}
}

func TestTwilioSenderSendSMS(t *testing.T) {
	var gotPath, gotTo string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		if err := r.ParseForm(); err == nil {
			gotTo = r.PostFormValue("To")
		}
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"sid":"SM1","status":"queued"}`))
	}))
	defer srv.Close()

	sender := NewTwilioSender("AC123", "token", "+15550009999", nil).WithBaseURL(srv.URL)
	if err := sender.SendSMS(context.Background(), "+15551234567", "hello"); err != nil {
		t.Fatalf("SendSMS error: %v", err)
	}
	if !strings.Contains(gotPath, "AC123") {
		t.Errorf("unexpected path %q", gotPath)
	}
	if gotTo != "+15551234567" {
		t.Errorf("unexpected To %q", gotTo)
	}
}

func TestTwilioSenderNoRetryOnBadRequest(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"code":21211,"message":"invalid To number"}`))
	}))
	defer srv.Close()

	sender := NewTwilioSender("AC123", "token", "+15550009999", nil).WithBaseURL(srv.URL)
	err := sender.SendSMS(context.Background(), "+1bad", "hello")
	if err == nil {
		t.Fatal("expected error")
	}
	if calls != 1 {
		t.Errorf("expected 1 call, got %d", calls)
	}
	if !strings.Contains(err.Error(), "21211") {
		t.Errorf("expected provider code in error, got %v", err)
	}
}

func TestTwilioSenderValidation(t *testing.T) {
	sender := NewTwilioSender("", "", "+15550009999", nil)
	if err := sender.SendSMS(context.Background(), "+15551234567", "hello"); err == nil {
		t.Error("expected error with missing credentials")
	}

	sender = NewTwilioSender("AC123", "token", "+15550009999", nil)
	if err := sender.SendSMS(context.Background(), "", "hello"); err == nil {
		t.Error("expected error with empty recipient")
	}
	if err := sender.SendSMS(context.Background(), "+15551234567", "  "); err == nil {
		t.Error("expected error with empty body")
	}
}
