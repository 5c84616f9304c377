package api

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/mini-rodalies-3d/metroplanner/internal/metrics"
	"github.com/mini-rodalies-3d/metroplanner/internal/models"
	"github.com/mini-rodalies-3d/metroplanner/internal/network"
	"github.com/mini-rodalies-3d/metroplanner/internal/planner"
	"github.com/mini-rodalies-3d/metroplanner/internal/realtime"
	"github.com/mini-rodalies-3d/metroplanner/internal/repository"
)

// DisruptionSource provides the lines and stations currently closed
type DisruptionSource interface {
	Current() realtime.Disruptions
}

// PlanLog stores planned journeys
type PlanLog interface {
	RecordPlan(ctx context.Context, rec repository.PlanRecord) error
	RecentPlans(ctx context.Context, limit int) ([]repository.PlanRecord, error)
}

// RouteHandler plans journeys over the loaded network
type RouteHandler struct {
	net         *network.Network
	disruptions DisruptionSource // optional
	planLog     PlanLog          // optional
	stats       *metrics.JourneyStats
}

// NewRouteHandler creates a handler. disruptions and planLog may be nil.
func NewRouteHandler(n *network.Network, disruptions DisruptionSource, planLog PlanLog, stats *metrics.JourneyStats) *RouteHandler {
	return &RouteHandler{net: n, disruptions: disruptions, planLog: planLog, stats: stats}
}

// PlanRoute handles GET /api/routes?from=&to=&objective=
func (h *RouteHandler) PlanRoute(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	req := models.PlanRequest{
		From:      q.Get("from"),
		To:        q.Get("to"),
		Objective: q.Get("objective"),
	}
	if details, err := req.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid route request", details)
		return
	}
	objective, err := planner.ParseObjective(req.Objective)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid objective", map[string]interface{}{"objective": req.Objective})
		return
	}

	var view network.View = h.net
	disrupted := false
	if h.disruptions != nil {
		if d := h.disruptions.Current(); !d.Empty() {
			view = d.Apply(h.net, h.net.Name())
			disrupted = true
		}
	}

	from, status, msg := h.endpoint(view, req.From)
	if from == nil {
		writeError(w, status, msg, map[string]interface{}{"code": req.From})
		return
	}
	to, status, msg := h.endpoint(view, req.To)
	if to == nil {
		writeError(w, status, msg, map[string]interface{}{"code": req.To})
		return
	}

	p, err := planner.New(objective, view)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to create planner", map[string]interface{}{"internal": err.Error()})
		return
	}

	start := time.Now()
	journey, err := planner.Plan(p, from, to)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, planner.ErrInvalidArgument) {
			status = http.StatusBadRequest
		}
		writeError(w, status, "Failed to plan route", map[string]interface{}{"internal": err.Error()})
		return
	}
	metrics.ObservePlan(string(p.Objective()), journey.Outcome.String(), time.Since(start))
	h.recordStats(p, journey)

	resp := models.NewPlanResponse(uuid.New(), h.net.Name(), p.Objective(), journey)
	resp.Disrupted = disrupted
	h.logPlan(r.Context(), resp, journey)

	writeJSON(w, http.StatusOK, resp)
}

// endpoint resolves a station code against the (possibly disrupted) view
func (h *RouteHandler) endpoint(view network.View, code string) (*network.Station, int, string) {
	if s := network.Lookup(view, code); s != nil {
		return s, http.StatusOK, ""
	}
	if h.net.Station(code) != nil {
		return nil, http.StatusConflict, "Station closed by a service alert"
	}
	return nil, http.StatusNotFound, "Station not found"
}

func (h *RouteHandler) recordStats(p planner.Planner, j planner.Journey) {
	if h.stats == nil {
		return
	}
	objective := string(p.Objective())
	switch j.Outcome {
	case planner.Found:
		h.stats.Found(objective, j.Stops, j.Transfers)
	case planner.Unreachable:
		h.stats.Unreachable(objective)
	}
}

func (h *RouteHandler) logPlan(ctx context.Context, resp models.PlanResponse, j planner.Journey) {
	if h.planLog == nil {
		return
	}
	rec := repository.PlanRecord{
		ID:        resp.PlanID,
		Network:   resp.Network,
		Objective: resp.Objective,
		From:      resp.From.Code,
		To:        resp.To.Code,
		Outcome:   resp.Outcome,
		Segments:  j.Route.Len(),
		Stops:     j.Stops,
		Transfers: j.Transfers,
		CreatedAt: resp.PlannedAt,
	}
	if err := h.planLog.RecordPlan(ctx, rec); err != nil {
		log.Printf("Warning: failed to record plan %s: %v", rec.ID, err)
	}
}

// RecentPlans handles GET /api/plans/recent?limit=
func (h *RouteHandler) RecentPlans(w http.ResponseWriter, r *http.Request) {
	if h.planLog == nil {
		writeError(w, http.StatusNotFound, "Plan log disabled", nil)
		return
	}
	limit := 20
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := parseLimit(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid limit", map[string]interface{}{"limit": v})
			return
		}
		limit = n
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()
	plans, err := h.planLog.RecentPlans(ctx, limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to read plan log", map[string]interface{}{"internal": err.Error()})
		return
	}

	entries := make([]models.PlanLogEntry, 0, len(plans))
	for _, p := range plans {
		entries = append(entries, models.PlanLogEntry{
			ID:        p.ID.String(),
			Network:   p.Network,
			Objective: p.Objective,
			From:      p.From,
			To:        p.To,
			Outcome:   p.Outcome,
			Segments:  p.Segments,
			Stops:     p.Stops,
			Transfers: p.Transfers,
			CreatedAt: p.CreatedAt,
		})
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"plans": entries, "count": len(entries)})
}

// Stats handles GET /api/stats
func (h *RouteHandler) Stats(w http.ResponseWriter, r *http.Request) {
	resp := models.StatsResponse{Objectives: []metrics.JourneySummary{}}
	if h.stats != nil {
		resp.Objectives = h.stats.Snapshot()
	}
	writeJSON(w, http.StatusOK, resp)
}
