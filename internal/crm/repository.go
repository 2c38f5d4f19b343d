package crm

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Repository defines storage for customer profiles. Profiles are
// create-if-absent: an existing profile for a phone number is reused as-is,
// preserving the first call's stated preferences.
type Repository interface {
	GetOrCreateByPhone(ctx context.Context, profile *CustomerProfile) (*CustomerProfile, error)
	GetByPhone(ctx context.Context, phoneNumber string) (*CustomerProfile, error)
	GetByID(ctx context.Context, id string) (*CustomerProfile, error)
}

// InMemoryRepository is a Repository backed by a mutex-guarded map, used in
// tests and when no database is configured.
type InMemoryRepository struct {
	mu      sync.RWMutex
	byPhone map[string]*CustomerProfile
	byID    map[string]*CustomerProfile
}

// NewInMemoryRepository creates an empty in-memory repository.
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		byPhone: make(map[string]*CustomerProfile),
		byID:    make(map[string]*CustomerProfile),
	}
}

// GetOrCreateByPhone returns the existing profile for the phone number or
// stores the given one.
func (r *InMemoryRepository) GetOrCreateByPhone(ctx context.Context, profile *CustomerProfile) (*CustomerProfile, error) {
	phone := strings.TrimSpace(profile.PhoneNumber)
	if phone == "" {
		return nil, ErrMissingPhone
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.byPhone[phone]; ok {
		return existing, nil
	}

	stored := *profile
	stored.PhoneNumber = phone
	stored.ID = uuid.New().String()
	stored.CreatedAt = time.Now().UTC()
	r.byPhone[phone] = &stored
	r.byID[stored.ID] = &stored
	return &stored, nil
}

// GetByPhone looks up a profile by its natural key.
func (r *InMemoryRepository) GetByPhone(ctx context.Context, phoneNumber string) (*CustomerProfile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	profile, ok := r.byPhone[strings.TrimSpace(phoneNumber)]
	if !ok {
		return nil, ErrProfileNotFound
	}
	return profile, nil
}

// GetByID looks up a profile by generated id.
func (r *InMemoryRepository) GetByID(ctx context.Context, id string) (*CustomerProfile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	profile, ok := r.byID[id]
	if !ok {
		return nil, ErrProfileNotFound
	}
	return profile, nil
}
