// Package health serves the unauthenticated liveness endpoint.
package health

import (
	"encoding/json"
	"net/http"
)

// Response is the health endpoint payload.
type Response struct {
	Status string `json:"status"`
}

// Handler answers liveness probes. It bypasses the versioned API and its
// envelope so load balancers get a minimal constant body.
func Handler(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(Response{Status: "healthy"})
}
