package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/mini-rodalies-3d/metroplanner/internal/planner"
)

var validate = validator.New()

// PlanRequest holds the query parameters of GET /api/routes
type PlanRequest struct {
	From      string `validate:"required,max=64"`
	To        string `validate:"required,max=64"`
	Objective string `validate:"omitempty,oneof=stops transfers"`
}

// Validate checks the request. The error lists each failing field.
// The objective is matched case insensitively.
func (r PlanRequest) Validate() (map[string]interface{}, error) {
	r.Objective = strings.ToLower(strings.TrimSpace(r.Objective))
	err := validate.Struct(r)
	if err == nil {
		return nil, nil
	}
	details := make(map[string]interface{})
	if errs, ok := err.(validator.ValidationErrors); ok {
		for _, fe := range errs {
			details[lowerFirst(fe.Field())] = fe.Tag()
		}
	}
	return details, fmt.Errorf("invalid plan request: %w", err)
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}

// Segment is one ride of a planned journey
type Segment struct {
	Line      string     `json:"line"`
	From      StationRef `json:"from"`
	To        StationRef `json:"to"`
	Direction StationRef `json:"direction"`
	Circular  bool       `json:"circular"`
	Stops     int        `json:"stops"`
}

// PlanResponse is the JSON response for GET /api/routes
type PlanResponse struct {
	PlanID       uuid.UUID  `json:"planId"`
	Network      string     `json:"network"`
	Objective    string     `json:"objective"`
	Outcome      string     `json:"outcome"`
	From         StationRef `json:"from"`
	To           StationRef `json:"to"`
	Segments     []Segment  `json:"segments"`
	Stops        int        `json:"stops"`
	Transfers    int        `json:"transfers"`
	Instructions []string   `json:"instructions"`
	Disrupted    bool       `json:"disrupted"`
	PlannedAt    time.Time  `json:"plannedAt"`
}

// NewPlanResponse converts a journey
func NewPlanResponse(id uuid.UUID, networkName string, objective planner.Objective, j planner.Journey) PlanResponse {
	resp := PlanResponse{
		PlanID:       id,
		Network:      networkName,
		Objective:    string(objective),
		Outcome:      j.Outcome.String(),
		From:         *NewStationRef(j.From),
		To:           *NewStationRef(j.To),
		Segments:     []Segment{},
		Stops:        j.Stops,
		Transfers:    j.Transfers,
		Instructions: []string{},
		PlannedAt:    time.Now().UTC(),
	}
	for _, s := range j.Route.Segments() {
		resp.Segments = append(resp.Segments, Segment{
			Line:      s.Line().Code(),
			From:      *NewStationRef(s.From()),
			To:        *NewStationRef(s.To()),
			Direction: *NewStationRef(s.Direction()),
			Circular:  s.UsesCircular(),
			Stops:     s.Stops(),
		})
		resp.Instructions = append(resp.Instructions, s.String())
	}
	return resp
}
