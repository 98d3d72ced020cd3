package gateway

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/podkit/approvalgate/internal/probe"
)

// HealthResponse is the JSON response for GET /healthz.
type HealthResponse struct {
	Status  string        `json:"status"` // "ok" or "degraded"
	Uptime  time.Duration `json:"uptime_seconds"`
	Backend *probe.Status `json:"backend,omitempty"`
}

// handleHealth returns the handler for GET /healthz. Returns 200 while the
// backend is reachable (or unprobed), 503 once a probe has reported it down.
func (g *Gateway) handleHealth() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		resp := HealthResponse{
			Status: "ok",
			Uptime: time.Since(g.startedAt).Truncate(time.Second),
		}

		if g.probe != nil {
			if st := g.probe.Snapshot(); !st.CheckedAt.IsZero() {
				resp.Backend = &st
				if !st.OK {
					resp.Status = "degraded"
				}
			}
		}

		w.Header().Set("Content-Type", "application/json")
		if resp.Status == "degraded" {
			w.WriteHeader(http.StatusServiceUnavailable)
		}
		_ = json.NewEncoder(w).Encode(resp)
	}
}
