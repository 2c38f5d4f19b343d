package inventory

import (
	"context"
	"testing"
	"time"
)

func TestSearchByMakeAndModel(t *testing.T) {
	repo := NewInMemoryRepository(nil)
	ctx := context.Background()

	got, err := repo.Search(ctx, SearchCriteria{Make: "honda", Model: "accord"})
	if err != nil {
		t.Fatalf("Search error: %v", err)
	}
	if len(got) != 1 || got[0].Model != "Accord" {
		t.Errorf("Search(honda accord) = %+v, want one Accord", got)
	}
}

func TestSearchCriteriaTable(t *testing.T) {
	repo := NewInMemoryRepository(nil)
	ctx := context.Background()

	tests := []struct {
		name     string
		criteria SearchCriteria
		want     int
	}{
		{"everything", SearchCriteria{}, 4},
		{"suvs only", SearchCriteria{Type: "suv"}, 2},
		{"price ceiling", SearchCriteria{PriceMax: 30000}, 1},
		{"price floor", SearchCriteria{PriceMin: 40000}, 2},
		{"year min", SearchCriteria{YearMin: 2024}, 3},
		{"feature match", SearchCriteria{Features: []string{"sunroof"}}, 3},
		{"feature no match", SearchCriteria{Features: []string{"ejector seat"}}, 0},
		{"stock number", SearchCriteria{StockNumber: "a1003"}, 1},
		{"mileage ceiling", SearchCriteria{MileageMax: 200}, 3},
		{"combined", SearchCriteria{Type: "suv", PriceMax: 43000, Features: []string{"4wd"}}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := repo.Search(ctx, tt.criteria)
			if err != nil {
				t.Fatalf("Search error: %v", err)
			}
			if len(got) != tt.want {
				t.Errorf("Search(%+v) returned %d vehicles, want %d", tt.criteria, len(got), tt.want)
			}
		})
	}
}

func TestSearchExcludesSold(t *testing.T) {
	repo := NewInMemoryRepository([]Vehicle{
		{ID: "V1", Make: "Honda", Model: "Civic", Status: "sold"},
		{ID: "V2", Make: "Honda", Model: "Civic", Status: "available"},
	})
	got, err := repo.Search(context.Background(), SearchCriteria{Make: "Honda"})
	if err != nil {
		t.Fatalf("Search error: %v", err)
	}
	if len(got) != 1 || got[0].ID != "V2" {
		t.Errorf("sold vehicle leaked into results: %+v", got)
	}
}

func TestGetByIDVariants(t *testing.T) {
	repo := NewInMemoryRepository(nil)
	ctx := context.Background()

	for _, key := range []string{"INV003", "A1003", "1FTFW1ET5DFC12345"} {
		v, err := repo.GetByID(ctx, key)
		if err != nil {
			t.Fatalf("GetByID(%q) error: %v", key, err)
		}
		if v.Model != "F-150" {
			t.Errorf("GetByID(%q) = %s, want F-150", key, v.Model)
		}
	}

	if _, err := repo.GetByID(ctx, "NOPE"); err != ErrVehicleNotFound {
		t.Errorf("expected ErrVehicleNotFound, got %v", err)
	}
}

func TestShareableLinks(t *testing.T) {
	store := NewMemoryLinkStore("https://wheelhousemotors.example.com", time.Hour)
	ctx := context.Background()

	link, err := store.Create(ctx, "call-1", "cust-1", []string{"INV001", "INV004"})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if link.Token == "" || link.FullURL == "" {
		t.Fatalf("link missing token or URL: %+v", link)
	}

	resolved, err := store.Resolve(ctx, link.Token)
	if err != nil {
		t.Fatalf("Resolve error: %v", err)
	}
	if len(resolved.VehicleIDs) != 2 {
		t.Errorf("resolved vehicle ids = %v", resolved.VehicleIDs)
	}

	if _, err := store.Resolve(ctx, "missing-token"); err != ErrLinkNotFound {
		t.Errorf("expected ErrLinkNotFound, got %v", err)
	}
}

func TestShareableLinkExpiry(t *testing.T) {
	store := NewMemoryLinkStore("https://example.com", time.Minute)
	base := time.Now().UTC()
	store.now = func() time.Time { return base }

	link, err := store.Create(context.Background(), "call-1", "cust-1", []string{"INV001"})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}

	store.now = func() time.Time { return base.Add(2 * time.Minute) }
	if _, err := store.Resolve(context.Background(), link.Token); err != ErrLinkNotFound {
		t.Errorf("expired link resolved: %v", err)
	}
}

func TestCreateLinkRequiresVehicles(t *testing.T) {
	store := NewMemoryLinkStore("https://example.com", time.Hour)
	if _, err := store.Create(context.Background(), "call-1", "cust-1", nil); err == nil {
		t.Error("expected error for empty vehicle set")
	}
}
