package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/mini-rodalies-3d/metroplanner/internal/models"
	"github.com/mini-rodalies-3d/metroplanner/internal/network"
)

// HealthHandler reports service status and active disruptions
type HealthHandler struct {
	net         *network.Network
	disruptions DisruptionSource // optional
}

// NewHealthHandler creates a handler. disruptions may be nil.
func NewHealthHandler(n *network.Network, disruptions DisruptionSource) *HealthHandler {
	return &HealthHandler{net: n, disruptions: disruptions}
}

// Health handles GET /health
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	resp := models.HealthResponse{
		Status:    "ok",
		Network:   h.net.Name(),
		Stations:  len(h.net.Stations()),
		Lines:     len(h.net.Lines()),
		Timestamp: time.Now().UTC(),
	}
	if h.disruptions != nil {
		d := h.disruptions.Current()
		resp.ClosedLines = len(d.ClosedLines)
		resp.ClosedStations = len(d.ClosedStations)
		if !d.Empty() {
			resp.Status = "degraded"
		}
	}
	if resp.Lines == 0 {
		resp.Status = "empty"
		writeJSON(w, http.StatusServiceUnavailable, resp)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// Disruptions handles GET /api/disruptions
func (h *HealthHandler) Disruptions(w http.ResponseWriter, r *http.Request) {
	resp := models.DisruptionsResponse{
		ClosedLines:    []string{},
		ClosedStations: []string{},
		Alerts:         []models.AlertEntry{},
	}
	if h.disruptions != nil {
		d := h.disruptions.Current()
		resp.ClosedLines = d.Lines()
		resp.ClosedStations = d.Stations()
		if !d.FetchedAt.IsZero() {
			fetched := d.FetchedAt.UTC()
			resp.FetchedAt = &fetched
		}
		for _, a := range d.Alerts {
			resp.Alerts = append(resp.Alerts, models.AlertEntry{
				ID:          a.ID,
				Cause:       a.Cause,
				Effect:      a.Effect,
				Header:      a.Header,
				Description: a.Description,
				Start:       a.Start,
				End:         a.End,
				Routes:      a.Routes,
				Stops:       a.Stops,
			})
		}
	}
	w.Header().Set("Cache-Control", "public, max-age=15")
	writeJSON(w, http.StatusOK, resp)
}

func parseLimit(v string) (int, error) {
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, err
	}
	if n < 1 || n > 500 {
		return 0, strconv.ErrRange
	}
	return n, nil
}
