package dealerbooking

import (
	"context"
	"sync"
	"time"
)

// Store persists test drive bookings.
type Store interface {
	Create(ctx context.Context, req Request) (*Booking, error)
	GetByID(ctx context.Context, id string) (*Booking, error)
	ListByPhone(ctx context.Context, phone string) ([]*Booking, error)
	UpdateStatus(ctx context.Context, id string, status Status) (*Booking, error)
}

// MemoryStore keeps bookings in process memory. Useful for tests and demo
// deployments without Postgres.
type MemoryStore struct {
	mu   sync.Mutex
	byID map[string]*Booking
	now  func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		byID: make(map[string]*Booking),
		now:  time.Now,
	}
}

func (s *MemoryStore) Create(_ context.Context, req Request) (*Booking, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	b := newBooking(req, s.now().UTC())
	s.byID[b.ID] = b
	return clone(b), nil
}

func (s *MemoryStore) GetByID(_ context.Context, id string) (*Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.byID[id]
	if !ok {
		return nil, ErrBookingNotFound
	}
	return clone(b), nil
}

func (s *MemoryStore) ListByPhone(_ context.Context, phone string) ([]*Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []*Booking
	for _, b := range s.byID {
		if b.CustomerPhone == phone {
			out = append(out, clone(b))
		}
	}
	return out, nil
}

func (s *MemoryStore) UpdateStatus(_ context.Context, id string, status Status) (*Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.byID[id]
	if !ok {
		return nil, ErrBookingNotFound
	}
	b.Status = status
	b.UpdatedAt = s.now().UTC()
	return clone(b), nil
}

func clone(b *Booking) *Booking {
	cp := *b
	return &cp
}
