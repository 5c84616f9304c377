// Package api exposes the planner over HTTP.
package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mini-rodalies-3d/metroplanner/internal/metrics"
	"github.com/mini-rodalies-3d/metroplanner/internal/network"
)

// Options wires the router
type Options struct {
	Network        *network.Network
	Disruptions    DisruptionSource // nil when no alert feed is configured
	PlanLog        PlanLog          // nil when plan recording is off
	Stats          *metrics.JourneyStats
	AllowedOrigins []string
}

// NewRouter builds the HTTP routes
func NewRouter(opts Options) http.Handler {
	if opts.Stats == nil {
		opts.Stats = metrics.NewJourneyStats()
	}
	networkHandler := NewNetworkHandler(opts.Network)
	routeHandler := NewRouteHandler(opts.Network, opts.Disruptions, opts.PlanLog, opts.Stats)
	healthHandler := NewHealthHandler(opts.Network, opts.Disruptions)

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: opts.AllowedOrigins,
		AllowedMethods: []string{"GET", "OPTIONS"},
		AllowedHeaders: []string{"*"},
	}))

	r.Get("/health", healthHandler.Health)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Get("/stations", networkHandler.ListStations)
		r.Get("/stations/{code}", networkHandler.GetStation)
		r.Get("/lines", networkHandler.ListLines)
		r.Get("/lines/{code}", networkHandler.GetLine)
		r.Get("/routes", routeHandler.PlanRoute)
		r.Get("/plans/recent", routeHandler.RecentPlans)
		r.Get("/stats", routeHandler.Stats)
		r.Get("/disruptions", healthHandler.Disruptions)
	})

	return r
}
