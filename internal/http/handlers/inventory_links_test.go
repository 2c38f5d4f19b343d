package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wheelhouse-ai/dealership-ai-platform/internal/inventory"
)

func TestInventoryLinkHandlerView(t *testing.T) {
	repo := inventory.NewInMemoryRepository(nil)
	links := inventory.NewMemoryLinkStore("https://wheelhousemotors.example", time.Hour)

	link, err := links.Create(context.Background(), "call-1", "cust-1", []string{"INV001", "INV004"})
	require.NoError(t, err)

	h := NewInventoryLinkHandler(links, repo, nil)

	r := chi.NewRouter()
	r.Get("/inventory/view/{token}", h.HandleView)

	req := httptest.NewRequest(http.MethodGet, "/inventory/view/"+link.Token, nil)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)

	var view struct {
		Token    string              `json:"token"`
		Vehicles []inventory.Vehicle `json:"vehicles"`
	}
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&view))
	assert.Equal(t, link.Token, view.Token)
	require.Len(t, view.Vehicles, 2)
	assert.Equal(t, "Accord", view.Vehicles[0].Model)
	assert.Equal(t, "4Runner", view.Vehicles[1].Model)
}

func TestInventoryLinkHandlerSoldVehicleSkipped(t *testing.T) {
	repo := inventory.NewInMemoryRepository(nil)
	links := inventory.NewMemoryLinkStore("https://wheelhousemotors.example", time.Hour)

	link, err := links.Create(context.Background(), "call-1", "cust-1", []string{"INV001", "GONE"})
	require.NoError(t, err)

	h := NewInventoryLinkHandler(links, repo, nil)

	r := chi.NewRouter()
	r.Get("/inventory/view/{token}", h.HandleView)

	req := httptest.NewRequest(http.MethodGet, "/inventory/view/"+link.Token, nil)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)

	var view struct {
		Vehicles []inventory.Vehicle `json:"vehicles"`
	}
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&view))
	assert.Len(t, view.Vehicles, 1)
}
