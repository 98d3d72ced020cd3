package gateway

import (
	"bytes"
	"net/http"
	"time"

	"github.com/podkit/approvalgate/internal/token"
)

// pageState is the terminal state of one render. Every page load or confirm
// ends in exactly one of these; there is no retry loop.
type pageState string

const (
	stateNoToken pageState = "no_token"
	stateInvalid pageState = "invalid"
	stateExpired pageState = "expired"
	stateDetails pageState = "details"
	stateSuccess pageState = "success"
	stateFailure pageState = "failure"
)

// pageData feeds the approval page template.
type pageData struct {
	State   pageState
	Token   string
	JobID   string
	Stage   string
	Action  string
	Message string
}

// handlePage returns the handler for GET /. It decodes the token for display
// and renders one of the terminal states. No network call happens here.
func (g *Gateway) handlePage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		raw := r.URL.Query().Get("token")
		if raw == "" {
			g.render(w, pageData{State: stateNoToken})
			return
		}

		claims, err := token.Decode(raw)
		if err != nil {
			g.logger.Warn("page: undecodable token", "error", err)
			g.render(w, pageData{State: stateInvalid})
			return
		}

		if claims.Expired(time.Now()) {
			g.render(w, pageData{State: stateExpired})
			return
		}

		g.render(w, pageData{
			State:  stateDetails,
			Token:  raw,
			JobID:  claims.DisplayJobID(),
			Stage:  claims.DisplayStage(),
			Action: claims.DisplayAction(),
		})
	}
}

// render writes the page for the given state. Render failures are the only
// path that does not produce a complete page.
func (g *Gateway) render(w http.ResponseWriter, data pageData) {
	g.metrics.RecordRender(data.State)

	var buf bytes.Buffer
	if err := g.tmpl.ExecuteTemplate(&buf, "page.html", data); err != nil {
		g.logger.Error("page render failed", "state", data.State, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}
