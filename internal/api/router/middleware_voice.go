package router

import (
	"crypto/subtle"
	"net/http"
	"strings"
)

const voiceSecretHeader = "X-Voice-Secret"

// requireVoiceSecret enforces the shared webhook secret the voice platform
// sends with every tool-call request. When expected is empty, the middleware
// is a no-op.
func requireVoiceSecret(expected string) func(http.Handler) http.Handler {
	expected = strings.TrimSpace(expected)
	return func(next http.Handler) http.Handler {
		if expected == "" {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got := strings.TrimSpace(r.Header.Get(voiceSecretHeader))
			if got == "" || subtle.ConstantTimeCompare([]byte(got), []byte(expected)) != 1 {
				http.Error(w, "invalid webhook secret", http.StatusUnauthorized)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
