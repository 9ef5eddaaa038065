package handler

import "net/http"

// Health responds to liveness probes and the root route.
func Health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, MessageEnvelope{Message: "shike auth service running"})
}
