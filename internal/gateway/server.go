package gateway

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// buildRouter constructs the chi mux with all routes wired.
func (g *Gateway) buildRouter() http.Handler {
	r := chi.NewRouter()

	r.Get("/", g.handlePage())
	r.Post("/approve", g.handleConfirm())
	r.Get("/healthz", g.handleHealth())
	r.Method(http.MethodGet, "/metrics",
		promhttp.HandlerFor(g.metrics.registry, promhttp.HandlerOpts{}))

	return r
}
