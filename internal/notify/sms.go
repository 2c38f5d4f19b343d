package notify

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/wheelhouse-ai/dealership-ai-platform/pkg/logging"
)

var smsSendTracer = otel.Tracer("dealership.internal.notify.sms_send")

// SMSSender sends SMS messages.
type SMSSender interface {
	SendSMS(ctx context.Context, to, body string) error
}

// TwilioSender posts SMS messages using Twilio's REST API.
type TwilioSender struct {
	accountSID string
	authToken  string
	from       string
	baseURL    string
	httpClient *http.Client
	logger     *logging.Logger
}

// NewTwilioSender builds a sender with sane defaults.
func NewTwilioSender(accountSID, authToken, from string, logger *logging.Logger) *TwilioSender {
	if logger == nil {
		logger = logging.Default()
	}
	return &TwilioSender{
		accountSID: accountSID,
		authToken:  authToken,
		from:       from,
		baseURL:    "https://api.twilio.com",
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		logger: logger,
	}
}

// WithBaseURL points the sender at a different API host. Used for tests and
// provider-compatible gateways.
func (s *TwilioSender) WithBaseURL(u string) *TwilioSender {
	if u != "" {
		s.baseURL = strings.TrimRight(u, "/")
	}
	return s
}

var _ SMSSender = (*TwilioSender)(nil)

// SendSMS dispatches a single SMS, retrying transient failures.
func (s *TwilioSender) SendSMS(ctx context.Context, to, body string) error {
	if s.accountSID == "" || s.authToken == "" {
		return errors.New("notify: twilio credentials missing")
	}
	if to == "" {
		return errors.New("notify: to required")
	}
	if s.from == "" {
		return errors.New("notify: from required")
	}
	if strings.TrimSpace(body) == "" {
		return errors.New("notify: body required")
	}

	ctx, span := smsSendTracer.Start(ctx, "notify.sms.send")
	defer span.End()
	span.SetAttributes(
		attribute.String("dealership.to", to),
	)

	payload := url.Values{}
	payload.Set("To", to)
	payload.Set("From", s.from)
	payload.Set("Body", body)

	endpoint := fmt.Sprintf("%s/2010-04-01/Accounts/%s/Messages.json", s.baseURL, s.accountSID)

	var lastErr error
	for attempt := 1; attempt <= 3; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(payload.Encode()))
		if err != nil {
			lastErr = err
			break
		}
		req.SetBasicAuth(s.accountSID, s.authToken)
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

		resp, err := s.httpClient.Do(req)
		if err != nil {
			lastErr = err
		} else {
			respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
			resp.Body.Close()
			if resp.StatusCode >= 200 && resp.StatusCode < 300 {
				s.logger.Info("sms sent", "to", to)
				return nil
			}
			lastErr = fmt.Errorf("twilio send failed: %s", formatProviderError(resp.StatusCode, respBody))
			// Don't retry non-rate-limit 4xx errors.
			if resp.StatusCode >= 400 && resp.StatusCode < 500 && resp.StatusCode != 429 {
				break
			}
		}

		if attempt < 3 {
			sleep := time.Duration(200+rand.Intn(300)) * time.Millisecond
			time.Sleep(sleep)
		}
	}

	s.logger.Error("sms send failed after retries", "to", to, "error", lastErr)
	return fmt.Errorf("notify: send sms: %w", lastErr)
}

func formatProviderError(status int, body []byte) string {
	var parsed struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &parsed); err == nil && parsed.Message != "" {
		return fmt.Sprintf("status %d code %d: %s", status, parsed.Code, parsed.Message)
	}
	return fmt.Sprintf("status %d", status)
}

// StubSMSSender logs instead of sending. Used in tests and local runs.
type StubSMSSender struct {
	logger *logging.Logger
}

func NewStubSMSSender(logger *logging.Logger) *StubSMSSender {
	if logger == nil {
		logger = logging.Default()
	}
	return &StubSMSSender{logger: logger}
}

func (s *StubSMSSender) SendSMS(ctx context.Context, to, body string) error {
	s.logger.Info("stub sms sender: would send sms", "to", to, "chars", len(body))
	return nil
}
