package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/wheelhouse-ai/dealership-ai-platform/internal/toolcall"
	"github.com/wheelhouse-ai/dealership-ai-platform/pkg/logging"
)

// VoiceToolsHandler receives tool-call webhooks from the voice platform and
// feeds them through the dispatcher. The platform's TTS engine speaks the
// result text back to the caller, so this endpoint must always answer with a
// well-formed response body, even for junk input.
type VoiceToolsHandler struct {
	dispatcher *toolcall.Dispatcher
	logger     *logging.Logger
}

func NewVoiceToolsHandler(dispatcher *toolcall.Dispatcher, logger *logging.Logger) *VoiceToolsHandler {
	if logger == nil {
		logger = logging.Default()
	}
	return &VoiceToolsHandler{dispatcher: dispatcher, logger: logger}
}

// HandleTools is the HTTP handler for POST /webhooks/voice/tools.
func (h *VoiceToolsHandler) HandleTools(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	body, err := io.ReadAll(io.LimitReader(r.Body, 1<<20))
	if err != nil {
		h.logger.Error("voice-tools: read body failed", "error", err)
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	resp := h.dispatcher.Dispatch(r.Context(), body)

	h.logger.Info("voice-tools: dispatched",
		"bytes", len(body),
		"results", len(resp.Results),
		"transfer", resp.Transfer != nil,
		"duration_ms", time.Since(start).Milliseconds(),
	)

	writeJSON(w, http.StatusOK, resp)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
