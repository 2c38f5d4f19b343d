package callsession

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/wheelhouse-ai/dealership-ai-platform/internal/agents"
	"github.com/wheelhouse-ai/dealership-ai-platform/pkg/logging"
)

// ErrMissingCallID is returned when an operation has no call id to key on.
var ErrMissingCallID = errors.New("callsession: call id required")

// Store is the authoritative record of call state used by routing and
// communication planning. Mutations are atomic read-modify-write units: two
// concurrent transfers for the same call must both land in the history.
type Store interface {
	// GetOrCreate returns the session for the call id, creating an active one
	// assigned to the lead qualifier if none exists. Idempotent.
	GetOrCreate(ctx context.Context, callID string) (*Session, error)

	// AppendContext merges the given keys into the session's context bag.
	AppendContext(ctx context.Context, callID string, kv map[string]string) (*Session, error)

	// RecordTransfer appends to the transfer history and updates the current
	// agent. Unknown call ids create the session first (fail-open).
	RecordTransfer(ctx context.Context, callID string, from, to agents.Agent, reason string) (*Session, error)

	// Complete marks the session completed. Later transfers on a completed
	// session are still recorded, only logged as anomalous.
	Complete(ctx context.Context, callID, outcome, summary string) (*Session, error)
}

// MemoryStore is a Store backed by a mutex-guarded map.
type MemoryStore struct {
	mu       sync.Mutex
	sessions map[string]*Session
	logger   *logging.Logger
	now      func() time.Time
}

// NewMemoryStore creates an empty in-memory session store.
func NewMemoryStore(logger *logging.Logger) *MemoryStore {
	if logger == nil {
		logger = logging.Default()
	}
	return &MemoryStore{
		sessions: make(map[string]*Session),
		logger:   logger,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

func (s *MemoryStore) getOrCreateLocked(callID string) *Session {
	if sess, ok := s.sessions[callID]; ok {
		return sess
	}
	sess := newSession(callID, s.now())
	s.sessions[callID] = sess
	return sess
}

func clone(sess *Session) *Session {
	out := *sess
	out.Context = make(map[string]string, len(sess.Context))
	for k, v := range sess.Context {
		out.Context[k] = v
	}
	out.TransferHistory = append([]Transfer(nil), sess.TransferHistory...)
	return &out
}

// GetOrCreate implements Store.
func (s *MemoryStore) GetOrCreate(ctx context.Context, callID string) (*Session, error) {
	if callID == "" {
		return nil, ErrMissingCallID
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return clone(s.getOrCreateLocked(callID)), nil
}

// AppendContext implements Store.
func (s *MemoryStore) AppendContext(ctx context.Context, callID string, kv map[string]string) (*Session, error) {
	if callID == "" {
		return nil, ErrMissingCallID
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	sess := s.getOrCreateLocked(callID)
	sess.mergeContext(kv)
	sess.LastActivityAt = s.now()
	return clone(sess), nil
}

// RecordTransfer implements Store.
func (s *MemoryStore) RecordTransfer(ctx context.Context, callID string, from, to agents.Agent, reason string) (*Session, error) {
	if callID == "" {
		return nil, ErrMissingCallID
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	sess := s.getOrCreateLocked(callID)
	if sess.Status == StatusCompleted {
		s.logger.Warn("transfer recorded on completed session",
			"call_id", callID, "from", from, "to", to)
	}
	now := s.now()
	sess.TransferHistory = append(sess.TransferHistory, Transfer{
		From:      from,
		To:        to,
		Reason:    reason,
		Timestamp: now,
	})
	sess.CurrentAgent = to
	sess.LastActivityAt = now
	return clone(sess), nil
}

// Complete implements Store.
func (s *MemoryStore) Complete(ctx context.Context, callID, outcome, summary string) (*Session, error) {
	if callID == "" {
		return nil, ErrMissingCallID
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	sess := s.getOrCreateLocked(callID)
	now := s.now()
	sess.Status = StatusCompleted
	sess.Outcome = outcome
	sess.Summary = summary
	sess.CompletedAt = now
	sess.LastActivityAt = now
	return clone(sess), nil
}
