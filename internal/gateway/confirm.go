package gateway

import (
	"net/http"
	"time"

	"github.com/podkit/approvalgate/internal/token"
)

// handleConfirm returns the handler for POST /approve. It re-gates the token
// (the page could have been open past expiry) and performs the one relay
// call. Every outcome, including backend failure, renders a complete page.
func (g *Gateway) handleConfirm() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		raw := r.PostFormValue("token")
		if raw == "" {
			g.render(w, pageData{State: stateNoToken})
			return
		}

		claims, err := token.Decode(raw)
		if err != nil {
			g.logger.Warn("confirm: undecodable token", "error", err)
			g.render(w, pageData{State: stateInvalid})
			return
		}

		if claims.Expired(time.Now()) {
			g.render(w, pageData{State: stateExpired})
			return
		}

		outcome := g.relay.Submit(r.Context(), raw)
		g.metrics.RecordRelay(outcome.OK)

		state := stateFailure
		if outcome.OK {
			state = stateSuccess
		}

		g.render(w, pageData{
			State:   state,
			JobID:   claims.DisplayJobID(),
			Stage:   claims.DisplayStage(),
			Action:  claims.DisplayAction(),
			Message: outcome.Message,
		})
	}
}
