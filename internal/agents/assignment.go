package agents

import (
	"encoding/json"
	"fmt"
	"strings"
	"sync"
)

// Salesperson is a human team member a qualified lead can be assigned to.
type Salesperson struct {
	Name      string   `json:"name"`
	Email     string   `json:"email"`
	Phone     string   `json:"phone"`
	Expertise []string `json:"expertise"` // vehicle makes this person knows best
}

// AssignmentPolicy selects a salesperson for a qualified lead. Implementations
// must be safe for concurrent use.
type AssignmentPolicy interface {
	Assign(preferredMake string) (Salesperson, error)
}

// ErrEmptyRoster is returned when a policy has nobody to assign.
var ErrEmptyRoster = fmt.Errorf("agents: salesperson roster is empty")

// defaultRoster is used when no roster is configured. Mirrors a small
// dealership floor team.
func defaultRoster() []Salesperson {
	return []Salesperson{
		{Name: "John Smith", Email: "john.smith@wheelhousemotors.com", Phone: "+1-555-0123", Expertise: []string{"Toyota", "Honda", "Nissan"}},
		{Name: "Sarah Johnson", Email: "sarah.johnson@wheelhousemotors.com", Phone: "+1-555-0124", Expertise: []string{"Mercedes-Benz", "BMW", "Audi"}},
		{Name: "Mike Wilson", Email: "mike.wilson@wheelhousemotors.com", Phone: "+1-555-0125", Expertise: []string{"Ford", "Chevrolet", "GMC"}},
	}
}

// ParseRoster decodes a JSON roster, falling back to the built-in floor team
// when the input is empty.
func ParseRoster(rosterJSON string) ([]Salesperson, error) {
	if strings.TrimSpace(rosterJSON) == "" {
		return defaultRoster(), nil
	}
	var roster []Salesperson
	if err := json.Unmarshal([]byte(rosterJSON), &roster); err != nil {
		return nil, fmt.Errorf("agents: parse roster: %w", err)
	}
	if len(roster) == 0 {
		return nil, ErrEmptyRoster
	}
	return roster, nil
}

// RoundRobinPolicy hands leads out in rotation so no salesperson is starved.
type RoundRobinPolicy struct {
	mu     sync.Mutex
	roster []Salesperson
	next   int
}

// NewRoundRobinPolicy creates a rotation over the given roster.
func NewRoundRobinPolicy(roster []Salesperson) *RoundRobinPolicy {
	return &RoundRobinPolicy{roster: roster}
}

// Assign returns the next salesperson in rotation.
func (p *RoundRobinPolicy) Assign(preferredMake string) (Salesperson, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.roster) == 0 {
		return Salesperson{}, ErrEmptyRoster
	}
	sp := p.roster[p.next%len(p.roster)]
	p.next++
	return sp, nil
}

// ExpertiseMatchPolicy prefers a salesperson whose expertise covers the
// customer's preferred make, falling back to rotation when nobody matches.
type ExpertiseMatchPolicy struct {
	fallback *RoundRobinPolicy
	roster   []Salesperson
}

// NewExpertiseMatchPolicy creates an expertise-first policy over the roster.
func NewExpertiseMatchPolicy(roster []Salesperson) *ExpertiseMatchPolicy {
	return &ExpertiseMatchPolicy{
		fallback: NewRoundRobinPolicy(roster),
		roster:   roster,
	}
}

// Assign matches on make first, then rotates.
func (p *ExpertiseMatchPolicy) Assign(preferredMake string) (Salesperson, error) {
	if len(p.roster) == 0 {
		return Salesperson{}, ErrEmptyRoster
	}
	want := strings.ToLower(strings.TrimSpace(preferredMake))
	if want != "" {
		for _, sp := range p.roster {
			for _, m := range sp.Expertise {
				if strings.ToLower(m) == want {
					return sp, nil
				}
			}
		}
	}
	return p.fallback.Assign(preferredMake)
}
