package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/wheelhouse-ai/dealership-ai-platform/internal/callsession"
	"github.com/wheelhouse-ai/dealership-ai-platform/internal/comms"
	"github.com/wheelhouse-ai/dealership-ai-platform/internal/crm"
	"github.com/wheelhouse-ai/dealership-ai-platform/internal/dealerbooking"
	"github.com/wheelhouse-ai/dealership-ai-platform/pkg/logging"
)

// AdminHandler serves the read-only operations surface: call sessions, lead
// profiles, scheduled communications, and test-drive bookings.
type AdminHandler struct {
	sessions callsession.Store
	profiles crm.Repository
	comms    comms.Store
	bookings dealerbooking.Store
	logger   *logging.Logger
}

type AdminHandlerConfig struct {
	Sessions callsession.Store
	Profiles crm.Repository
	Comms    comms.Store
	Bookings dealerbooking.Store
	Logger   *logging.Logger
}

func NewAdminHandler(cfg AdminHandlerConfig) *AdminHandler {
	if cfg.Logger == nil {
		cfg.Logger = logging.Default()
	}
	return &AdminHandler{
		sessions: cfg.Sessions,
		profiles: cfg.Profiles,
		comms:    cfg.Comms,
		bookings: cfg.Bookings,
		logger:   cfg.Logger,
	}
}

// GetSession is the handler for GET /admin/sessions/{callID}.
func (h *AdminHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	if h.sessions == nil {
		http.Error(w, "sessions not configured", http.StatusNotFound)
		return
	}
	callID := chi.URLParam(r, "callID")
	if callID == "" {
		http.Error(w, "missing call id", http.StatusBadRequest)
		return
	}
	sess, err := h.sessions.GetOrCreate(r.Context(), callID)
	if err != nil {
		h.logger.Error("admin: load session failed", "call_id", callID, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, sess)
}

// GetCustomer is the handler for GET /admin/customers/{phone}.
func (h *AdminHandler) GetCustomer(w http.ResponseWriter, r *http.Request) {
	if h.profiles == nil {
		http.Error(w, "profiles not configured", http.StatusNotFound)
		return
	}
	phone := chi.URLParam(r, "phone")
	profile, err := h.profiles.GetByPhone(r.Context(), phone)
	if err != nil {
		if errors.Is(err, crm.ErrProfileNotFound) {
			http.Error(w, "customer not found", http.StatusNotFound)
			return
		}
		h.logger.Error("admin: load customer failed", "phone", phone, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, profile)
}

// ListCommunications is the handler for GET /admin/communications?call_id=.
func (h *AdminHandler) ListCommunications(w http.ResponseWriter, r *http.Request) {
	if h.comms == nil {
		http.Error(w, "communications not configured", http.StatusNotFound)
		return
	}
	callID := r.URL.Query().Get("call_id")
	if callID == "" {
		http.Error(w, "call_id query parameter required", http.StatusBadRequest)
		return
	}
	msgs, err := h.comms.ListByCall(r.Context(), callID)
	if err != nil {
		h.logger.Error("admin: list communications failed", "call_id", callID, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"communications": msgs, "count": len(msgs)})
}

// ListBookings is the handler for GET /admin/bookings?phone=.
func (h *AdminHandler) ListBookings(w http.ResponseWriter, r *http.Request) {
	if h.bookings == nil {
		http.Error(w, "bookings not configured", http.StatusNotFound)
		return
	}
	phone := r.URL.Query().Get("phone")
	if phone == "" {
		http.Error(w, "phone query parameter required", http.StatusBadRequest)
		return
	}
	list, err := h.bookings.ListByPhone(r.Context(), phone)
	if err != nil {
		h.logger.Error("admin: list bookings failed", "phone", phone, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"bookings": list, "count": len(list)})
}
