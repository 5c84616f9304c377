package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mini-rodalies-3d/metroplanner/internal/models"
	"github.com/mini-rodalies-3d/metroplanner/internal/network"
)

// NetworkHandler serves the stations and lines of the loaded network
type NetworkHandler struct {
	net *network.Network
}

// NewNetworkHandler creates a handler for the given network
func NewNetworkHandler(n *network.Network) *NetworkHandler {
	return &NetworkHandler{net: n}
}

// ListStations handles GET /api/stations
func (h *NetworkHandler) ListStations(w http.ResponseWriter, r *http.Request) {
	stations := make([]models.Station, 0, len(h.net.Stations()))
	for _, s := range h.net.Stations() {
		stations = append(stations, models.NewStation(h.net, s))
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"stations": stations,
		"count":    len(stations),
	})
}

// GetStation handles GET /api/stations/{code}
func (h *NetworkHandler) GetStation(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")
	s := h.net.Station(code)
	if s == nil {
		writeError(w, http.StatusNotFound, "Station not found", map[string]interface{}{"code": code})
		return
	}
	writeJSON(w, http.StatusOK, models.NewStation(h.net, s))
}

// ListLines handles GET /api/lines
func (h *NetworkHandler) ListLines(w http.ResponseWriter, r *http.Request) {
	lines := make([]models.Line, 0, len(h.net.Lines()))
	for _, l := range h.net.Lines() {
		lines = append(lines, models.NewLine(l))
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"lines": lines,
		"count": len(lines),
	})
}

// GetLine handles GET /api/lines/{code}
func (h *NetworkHandler) GetLine(w http.ResponseWriter, r *http.Request) {
	code := chi.URLParam(r, "code")
	l := h.net.Line(code)
	if l == nil {
		writeError(w, http.StatusNotFound, "Line not found", map[string]interface{}{"code": code})
		return
	}
	writeJSON(w, http.StatusOK, models.NewLine(l))
}
