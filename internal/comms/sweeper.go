package comms

import (
	"context"
	"fmt"
	"time"

	"github.com/wheelhouse-ai/dealership-ai-platform/pkg/logging"
)

// SMSSender abstracts outbound SMS delivery.
type SMSSender interface {
	SendSMS(ctx context.Context, to, body string) error
}

// EmailSender abstracts outbound email delivery.
type EmailSender interface {
	SendEmail(ctx context.Context, to, subject, body string) error
}

// SweeperMetrics receives delivery counts. Implementations must tolerate
// being nil-initialized out of tests.
type SweeperMetrics interface {
	MessageSent(channel string)
	MessageFailed(channel string)
}

// Sweeper drains due scheduled communications and hands them to the channel
// senders. Delivery is at-least-once: a message is marked sent only after
// the sender returns, so a crash in between re-delivers on the next sweep.
type Sweeper struct {
	store   Store
	sms     SMSSender
	email   EmailSender
	metrics SweeperMetrics
	logger  *logging.Logger
	batch   int
	now     func() time.Time
}

func NewSweeper(store Store, sms SMSSender, email EmailSender, logger *logging.Logger) *Sweeper {
	if logger == nil {
		logger = logging.Default()
	}
	return &Sweeper{
		store:  store,
		sms:    sms,
		email:  email,
		logger: logger,
		batch:  50,
		now:    time.Now,
	}
}

// WithBatchSize caps how many messages one sweep processes.
func (s *Sweeper) WithBatchSize(n int) *Sweeper {
	if n > 0 {
		s.batch = n
	}
	return s
}

// WithMetrics attaches delivery counters.
func (s *Sweeper) WithMetrics(m SweeperMetrics) *Sweeper {
	s.metrics = m
	return s
}

// ProcessDue sends every due pending message. One message failing does not
// stop the rest. Returns the number delivered.
func (s *Sweeper) ProcessDue(ctx context.Context) (int, error) {
	due, err := s.store.ListDue(ctx, s.now().UTC(), s.batch)
	if err != nil {
		return 0, fmt.Errorf("comms sweeper: list due: %w", err)
	}
	if len(due) == 0 {
		return 0, nil
	}

	s.logger.Info("comms sweeper: processing due messages", "count", len(due))

	sent := 0
	for i := range due {
		m := &due[i]
		if err := s.deliver(ctx, m); err != nil {
			s.logger.Error("comms sweeper: delivery failed",
				"id", m.ID, "channel", m.Channel, "kind", m.Kind, "error", err)
			if markErr := s.store.MarkFailed(ctx, m.ID, err.Error()); markErr != nil {
				s.logger.Error("comms sweeper: mark failed", "id", m.ID, "error", markErr)
			}
			if s.metrics != nil {
				s.metrics.MessageFailed(string(m.Channel))
			}
			continue
		}
		if err := s.store.MarkSent(ctx, m.ID); err != nil {
			s.logger.Error("comms sweeper: mark sent", "id", m.ID, "error", err)
			continue
		}
		if s.metrics != nil {
			s.metrics.MessageSent(string(m.Channel))
		}
		sent++
	}
	return sent, nil
}

func (s *Sweeper) deliver(ctx context.Context, m *Message) error {
	switch m.Channel {
	case ChannelSMS:
		if s.sms == nil {
			return fmt.Errorf("no sms sender configured")
		}
		return s.sms.SendSMS(ctx, m.Recipient, m.Body)
	case ChannelEmail:
		if s.email == nil {
			return fmt.Errorf("no email sender configured")
		}
		return s.email.SendEmail(ctx, m.Recipient, m.Subject, m.Body)
	default:
		return fmt.Errorf("unknown channel %q", m.Channel)
	}
}

// Run sweeps on an interval until the context is cancelled.
func (s *Sweeper) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = 30 * time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	s.logger.Info("comms sweeper: started", "interval", interval)
	for {
		select {
		case <-ctx.Done():
			s.logger.Info("comms sweeper: stopped")
			return
		case <-ticker.C:
			if _, err := s.ProcessDue(ctx); err != nil {
				s.logger.Error("comms sweeper: sweep failed", "error", err)
			}
		}
	}
}
