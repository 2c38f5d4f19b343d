package comms

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingSMS struct {
	mu    sync.Mutex
	sent  []string
	fail  bool
	calls int
}

func (r *recordingSMS) SendSMS(_ context.Context, to, body string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	if r.fail {
		return errors.New("carrier rejected")
	}
	r.sent = append(r.sent, to)
	return nil
}

type recordingEmail struct {
	mu   sync.Mutex
	sent []string
}

func (r *recordingEmail) SendEmail(_ context.Context, to, subject, body string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sent = append(r.sent, to)
	return nil
}

func seedMessage(t *testing.T, store Store, channel Channel, recipient string, at time.Time) *Message {
	t.Helper()
	m := &Message{
		CallID:      "call-sweep",
		Channel:     channel,
		Kind:        KindInventoryLink,
		Recipient:   recipient,
		Body:        "hello",
		ScheduledAt: at,
	}
	if channel == ChannelEmail {
		m.Kind = KindClientSummary
		m.Subject = "subject"
	}
	require.NoError(t, store.Create(context.Background(), m))
	return m
}

func TestProcessDueSendsDueMessages(t *testing.T) {
	store := NewMemoryStore()
	sms := &recordingSMS{}
	email := &recordingEmail{}
	sweeper := NewSweeper(store, sms, email, nil)

	past := time.Now().Add(-time.Minute)
	seedMessage(t, store, ChannelSMS, "+15550001111", past)
	seedMessage(t, store, ChannelEmail, "x@example.com", past)

	n, err := sweeper.ProcessDue(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, []string{"+15550001111"}, sms.sent)
	assert.Equal(t, []string{"x@example.com"}, email.sent)

	// Everything delivered, nothing left due.
	n, err = sweeper.ProcessDue(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestProcessDueLeavesFutureMessages(t *testing.T) {
	store := NewMemoryStore()
	sms := &recordingSMS{}
	sweeper := NewSweeper(store, sms, &recordingEmail{}, nil)

	seedMessage(t, store, ChannelSMS, "+15550001111", time.Now().Add(time.Hour))

	n, err := sweeper.ProcessDue(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.Empty(t, sms.sent)
}

func TestProcessDueIsolatesFailures(t *testing.T) {
	store := NewMemoryStore()
	sms := &recordingSMS{fail: true}
	email := &recordingEmail{}
	sweeper := NewSweeper(store, sms, email, nil)

	past := time.Now().Add(-time.Minute)
	failed := seedMessage(t, store, ChannelSMS, "+15550001111", past)
	seedMessage(t, store, ChannelEmail, "x@example.com", past)

	n, err := sweeper.ProcessDue(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, n, "email should deliver despite sms failure")

	all, err := store.ListByCall(context.Background(), "call-sweep")
	require.NoError(t, err)
	for _, m := range all {
		if m.ID == failed.ID {
			assert.Equal(t, StatusFailed, m.Status)
			assert.Contains(t, m.LastError, "carrier rejected")
		} else {
			assert.Equal(t, StatusSent, m.Status)
		}
	}

	// Failed messages stay failed; the sweep does not retry them.
	n, err = sweeper.ProcessDue(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.Equal(t, 1, sms.calls)
}

func TestProcessDueRespectsBatchSize(t *testing.T) {
	store := NewMemoryStore()
	sms := &recordingSMS{}
	sweeper := NewSweeper(store, sms, &recordingEmail{}, nil).WithBatchSize(2)

	past := time.Now().Add(-time.Minute)
	for i := 0; i < 5; i++ {
		m := &Message{
			CallID:      "call-batch",
			Channel:     ChannelSMS,
			Kind:        KindInventoryLink,
			Recipient:   "+15550001111",
			Body:        "hi",
			DedupeKey:   "",
			ScheduledAt: past.Add(time.Duration(i) * time.Second),
		}
		require.NoError(t, store.Create(context.Background(), m))
	}

	n, err := sweeper.ProcessDue(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestProcessDueWithoutSenderMarksFailed(t *testing.T) {
	store := NewMemoryStore()
	sweeper := NewSweeper(store, nil, nil, nil)

	m := seedMessage(t, store, ChannelSMS, "+15550001111", time.Now().Add(-time.Minute))

	n, err := sweeper.ProcessDue(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n)

	all, err := store.ListByCall(context.Background(), "call-sweep")
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, m.ID, all[0].ID)
	assert.Equal(t, StatusFailed, all[0].Status)
}

func TestRunStopsOnContextCancel(t *testing.T) {
	store := NewMemoryStore()
	sweeper := NewSweeper(store, &recordingSMS{}, &recordingEmail{}, nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		sweeper.Run(ctx, 10*time.Millisecond)
		close(done)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("sweeper did not stop after cancel")
	}
}
