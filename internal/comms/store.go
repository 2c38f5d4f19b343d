package comms

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Store persists scheduled communications.
type Store interface {
	// Create schedules a message. Returns ErrDuplicate when a message with
	// the same dedupe key already exists.
	Create(ctx context.Context, m *Message) error
	// ListDue returns pending messages whose scheduled time is at or before
	// asOf, oldest first, up to limit.
	ListDue(ctx context.Context, asOf time.Time, limit int) ([]Message, error)
	ListByCall(ctx context.Context, callID string) ([]Message, error)
	MarkSent(ctx context.Context, id uuid.UUID) error
	MarkFailed(ctx context.Context, id uuid.UUID, reason string) error
}

// MemoryStore keeps scheduled communications in process memory.
type MemoryStore struct {
	mu       sync.Mutex
	byID     map[uuid.UUID]*Message
	byDedupe map[string]uuid.UUID
	now      func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		byID:     make(map[uuid.UUID]*Message),
		byDedupe: make(map[string]uuid.UUID),
		now:      time.Now,
	}
}

func (s *MemoryStore) Create(_ context.Context, m *Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if m.DedupeKey != "" {
		if _, exists := s.byDedupe[m.DedupeKey]; exists {
			return ErrDuplicate
		}
	}

	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	now := s.now().UTC()
	m.CreatedAt = now
	m.UpdatedAt = now
	if m.Status == "" {
		m.Status = StatusPending
	}

	cp := *m
	s.byID[m.ID] = &cp
	if m.DedupeKey != "" {
		s.byDedupe[m.DedupeKey] = m.ID
	}
	return nil
}

func (s *MemoryStore) ListDue(_ context.Context, asOf time.Time, limit int) ([]Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if limit <= 0 {
		limit = 50
	}

	var due []Message
	for _, m := range s.byID {
		if m.Status == StatusPending && !m.ScheduledAt.After(asOf) {
			due = append(due, *m)
		}
	}
	sort.Slice(due, func(i, j int) bool { return due[i].ScheduledAt.Before(due[j].ScheduledAt) })
	if len(due) > limit {
		due = due[:limit]
	}
	return due, nil
}

func (s *MemoryStore) ListByCall(_ context.Context, callID string) ([]Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []Message
	for _, m := range s.byID {
		if m.CallID == callID {
			out = append(out, *m)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ScheduledAt.Before(out[j].ScheduledAt) })
	return out, nil
}

func (s *MemoryStore) MarkSent(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, ok := s.byID[id]
	if !ok {
		return ErrMessageNotFound
	}
	now := s.now().UTC()
	m.Status = StatusSent
	m.SentAt = &now
	m.UpdatedAt = now
	return nil
}

func (s *MemoryStore) MarkFailed(_ context.Context, id uuid.UUID, reason string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, ok := s.byID[id]
	if !ok {
		return ErrMessageNotFound
	}
	m.Status = StatusFailed
	m.LastError = reason
	m.UpdatedAt = s.now().UTC()
	return nil
}
