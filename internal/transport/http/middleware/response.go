package middleware

import (
	"encoding/json"
	"net/http"
)

// writeJSONError emits the rejection body for requests that never reach a
// handler: missing or bad tokens, rate-limit refusals.
func writeJSONError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
