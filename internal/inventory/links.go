package inventory

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"
	"sync"
	"time"
)

// ShareableLink grants a specific customer short-lived view access to a
// filtered set of vehicles.
type ShareableLink struct {
	Token      string    `json:"token"`
	CallID     string    `json:"call_id"`
	CustomerID string    `json:"customer_id"`
	VehicleIDs []string  `json:"vehicle_ids"`
	FullURL    string    `json:"full_url"`
	CreatedAt  time.Time `json:"created_at"`
	ExpiresAt  time.Time `json:"expires_at"`
}

// Expired reports whether the link is past its lifetime.
func (l ShareableLink) Expired(now time.Time) bool {
	return now.After(l.ExpiresAt)
}

// LinkStore creates and resolves shareable inventory links.
type LinkStore interface {
	Create(ctx context.Context, callID, customerID string, vehicleIDs []string) (*ShareableLink, error)
	Resolve(ctx context.Context, token string) (*ShareableLink, error)
}

// ErrLinkNotFound is returned for unknown or expired tokens.
var ErrLinkNotFound = fmt.Errorf("inventory: link not found")

// MemoryLinkStore keeps links in process memory.
type MemoryLinkStore struct {
	mu      sync.RWMutex
	links   map[string]*ShareableLink
	baseURL string
	ttl     time.Duration
	now     func() time.Time
}

// NewMemoryLinkStore creates a link store rooted at baseURL with the given
// lifetime per link.
func NewMemoryLinkStore(baseURL string, ttl time.Duration) *MemoryLinkStore {
	if ttl <= 0 {
		ttl = 72 * time.Hour
	}
	return &MemoryLinkStore{
		links:   make(map[string]*ShareableLink),
		baseURL: strings.TrimRight(baseURL, "/"),
		ttl:     ttl,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

func newToken() string {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		panic(err) // crypto/rand failure is unrecoverable
	}
	return hex.EncodeToString(b)
}

// Create mints a link for the matched vehicle set. Returns an error when
// there is nothing to share.
func (s *MemoryLinkStore) Create(ctx context.Context, callID, customerID string, vehicleIDs []string) (*ShareableLink, error) {
	if len(vehicleIDs) == 0 {
		return nil, fmt.Errorf("inventory: no vehicles to share")
	}
	now := s.now()
	link := &ShareableLink{
		Token:      newToken(),
		CallID:     callID,
		CustomerID: customerID,
		VehicleIDs: append([]string(nil), vehicleIDs...),
		CreatedAt:  now,
		ExpiresAt:  now.Add(s.ttl),
	}
	link.FullURL = s.baseURL + "/inventory/view/" + link.Token

	s.mu.Lock()
	s.links[link.Token] = link
	s.mu.Unlock()
	return link, nil
}

// Resolve returns the link for a token if it exists and has not expired.
func (s *MemoryLinkStore) Resolve(ctx context.Context, token string) (*ShareableLink, error) {
	s.mu.RLock()
	link, ok := s.links[token]
	s.mu.RUnlock()
	if !ok || link.Expired(s.now()) {
		return nil, ErrLinkNotFound
	}
	return link, nil
}
