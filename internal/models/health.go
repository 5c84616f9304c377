package models

import (
	"time"

	"github.com/mini-rodalies-3d/metroplanner/internal/metrics"
)

// HealthResponse is the JSON response for GET /health
type HealthResponse struct {
	Status         string    `json:"status"`
	Network        string    `json:"network"`
	Stations       int       `json:"stations"`
	Lines          int       `json:"lines"`
	ClosedLines    int       `json:"closedLines"`
	ClosedStations int       `json:"closedStations"`
	Timestamp      time.Time `json:"timestamp"`
}

// DisruptionsResponse is the JSON response for GET /api/disruptions
type DisruptionsResponse struct {
	ClosedLines    []string     `json:"closedLines"`
	ClosedStations []string     `json:"closedStations"`
	Alerts         []AlertEntry `json:"alerts"`
	FetchedAt      *time.Time   `json:"fetchedAt,omitempty"`
}

// AlertEntry is one active service alert
type AlertEntry struct {
	ID          string     `json:"id"`
	Cause       string     `json:"cause"`
	Effect      string     `json:"effect"`
	Header      string     `json:"header,omitempty"`
	Description string     `json:"description,omitempty"`
	Start       *time.Time `json:"start,omitempty"`
	End         *time.Time `json:"end,omitempty"`
	Routes      []string   `json:"routes,omitempty"`
	Stops       []string   `json:"stops,omitempty"`
}

// PlanLogEntry is one row of GET /api/plans/recent
type PlanLogEntry struct {
	ID        string    `json:"id"`
	Network   string    `json:"network"`
	Objective string    `json:"objective"`
	From      string    `json:"from"`
	To        string    `json:"to"`
	Outcome   string    `json:"outcome"`
	Segments  int       `json:"segments"`
	Stops     int       `json:"stops"`
	Transfers int       `json:"transfers"`
	CreatedAt time.Time `json:"createdAt"`
}

// StatsResponse is the JSON response for GET /api/stats
type StatsResponse struct {
	Objectives []metrics.JourneySummary `json:"objectives"`
}
