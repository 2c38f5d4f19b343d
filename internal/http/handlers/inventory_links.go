package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/wheelhouse-ai/dealership-ai-platform/internal/inventory"
	"github.com/wheelhouse-ai/dealership-ai-platform/pkg/logging"
)

// InventoryLinkHandler resolves shareable inventory links sent to customers
// by SMS and email after qualification.
type InventoryLinkHandler struct {
	links     inventory.LinkStore
	inventory inventory.Repository
	logger    *logging.Logger
}

func NewInventoryLinkHandler(links inventory.LinkStore, repo inventory.Repository, logger *logging.Logger) *InventoryLinkHandler {
	if logger == nil {
		logger = logging.Default()
	}
	return &InventoryLinkHandler{links: links, inventory: repo, logger: logger}
}

type inventoryLinkView struct {
	Token    string              `json:"token"`
	Vehicles []inventory.Vehicle `json:"vehicles"`
}

// HandleView is the HTTP handler for GET /inventory/view/{token}.
func (h *InventoryLinkHandler) HandleView(w http.ResponseWriter, r *http.Request) {
	token := chi.URLParam(r, "token")

	link, err := h.links.Resolve(r.Context(), token)
	if err != nil {
		if errors.Is(err, inventory.ErrLinkNotFound) {
			http.Error(w, "link not found or expired", http.StatusNotFound)
			return
		}
		h.logger.Error("inventory-link: resolve failed", "token", token, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	view := inventoryLinkView{Token: link.Token}
	for _, id := range link.VehicleIDs {
		v, err := h.inventory.GetByID(r.Context(), id)
		if err != nil {
			// Vehicle may have sold since the link was created.
			continue
		}
		view.Vehicles = append(view.Vehicles, *v)
	}

	writeJSON(w, http.StatusOK, view)
}
