package crm

import (
	"context"
	"sync"
	"testing"
)

func TestGetOrCreatePreservesFirstCall(t *testing.T) {
	repo := NewInMemoryRepository()
	ctx := context.Background()

	first, err := repo.GetOrCreateByPhone(ctx, NewProfile(CustomerInfo{
		PhoneNumber:   "+15551230001",
		Name:          "Dana",
		Budget:        30000,
		PreferredMake: "Honda",
	}))
	if err != nil {
		t.Fatalf("GetOrCreateByPhone error: %v", err)
	}
	if first.ID == "" {
		t.Fatal("expected generated id")
	}

	// A repeat call with different preferences reuses the original profile.
	second, err := repo.GetOrCreateByPhone(ctx, NewProfile(CustomerInfo{
		PhoneNumber:   "+15551230001",
		Name:          "Dana",
		Budget:        90000,
		PreferredMake: "Porsche",
	}))
	if err != nil {
		t.Fatalf("GetOrCreateByPhone (repeat) error: %v", err)
	}
	if second.ID != first.ID {
		t.Errorf("repeat call created new profile: %q vs %q", second.ID, first.ID)
	}
	if second.PreferredMake != "Honda" {
		t.Errorf("PreferredMake = %q, want first-call Honda", second.PreferredMake)
	}
}

func TestGetOrCreateRequiresPhone(t *testing.T) {
	repo := NewInMemoryRepository()
	if _, err := repo.GetOrCreateByPhone(context.Background(), &CustomerProfile{}); err != ErrMissingPhone {
		t.Errorf("expected ErrMissingPhone, got %v", err)
	}
}

func TestGetByPhoneNotFound(t *testing.T) {
	repo := NewInMemoryRepository()
	if _, err := repo.GetByPhone(context.Background(), "+15559999999"); err != ErrProfileNotFound {
		t.Errorf("expected ErrProfileNotFound, got %v", err)
	}
}

func TestGetOrCreateConcurrentSamePhone(t *testing.T) {
	repo := NewInMemoryRepository()
	ctx := context.Background()

	ids := make(chan string, 20)
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			p, err := repo.GetOrCreateByPhone(ctx, NewProfile(CustomerInfo{PhoneNumber: "+15551230002"}))
			if err != nil {
				t.Errorf("GetOrCreateByPhone error: %v", err)
				return
			}
			ids <- p.ID
		}()
	}
	wg.Wait()
	close(ids)

	seen := make(map[string]bool)
	for id := range ids {
		seen[id] = true
	}
	if len(seen) != 1 {
		t.Errorf("concurrent upserts produced %d distinct profiles, want 1", len(seen))
	}
}

func TestNewProfilePriceRangeDefaults(t *testing.T) {
	p := NewProfile(CustomerInfo{PhoneNumber: "+15551230003", Budget: 30000})
	if p.PriceRangeMin != 24000 || p.PriceRangeMax != 36000 {
		t.Errorf("price range = [%v, %v], want [24000, 36000]", p.PriceRangeMin, p.PriceRangeMax)
	}

	// Explicit ranges are kept.
	p = NewProfile(CustomerInfo{PhoneNumber: "+15551230004", Budget: 30000, PriceRangeMin: 10000, PriceRangeMax: 20000})
	if p.PriceRangeMin != 10000 || p.PriceRangeMax != 20000 {
		t.Errorf("explicit range overridden: [%v, %v]", p.PriceRangeMin, p.PriceRangeMax)
	}
}
