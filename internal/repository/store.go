// Package repository persists networks and the plan log in SQLite or PostgreSQL.
package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mini-rodalies-3d/metroplanner/internal/network"
)

// ErrNotFound is returned when a named network is not stored
var ErrNotFound = errors.New("network not found")

// NetworkStore is implemented by SQLiteStore and PostgresStore
type NetworkStore interface {
	// SaveNetwork stores a network, replacing any network with the same name
	SaveNetwork(ctx context.Context, n *network.Network) error
	LoadNetwork(ctx context.Context, name string) (*network.Network, error)
	ListNetworks(ctx context.Context) ([]string, error)
	RecordPlan(ctx context.Context, rec PlanRecord) error
	// RecentPlans returns the latest plan log entries, newest first
	RecentPlans(ctx context.Context, limit int) ([]PlanRecord, error)
	Close() error
}

// PlanRecord is one row of the plan log
type PlanRecord struct {
	ID        uuid.UUID
	Network   string
	Objective string
	From      string
	To        string
	Outcome   string
	Segments  int
	Stops     int
	Transfers int
	CreatedAt time.Time
}

// lineRow is a stored line before its stops are attached
type lineRow struct {
	code     string
	circular bool
	oneWay   bool
}

// assemble rebuilds a network from stored rows. stops is keyed by line code
// and already ordered by sequence.
func assemble(name string, stations [][2]string, lines []lineRow, stops map[string][]string) (*network.Network, error) {
	n := network.New(name)
	for _, row := range stations {
		s, err := network.NewStation(row[0], row[1])
		if err != nil {
			return nil, fmt.Errorf("failed to load station %s: %w", row[0], err)
		}
		if err := n.AddStation(s); err != nil {
			return nil, fmt.Errorf("failed to load station %s: %w", row[0], err)
		}
	}
	for _, row := range lines {
		l, err := network.NewLine(row.code, row.circular, row.oneWay)
		if err != nil {
			return nil, fmt.Errorf("failed to load line %s: %w", row.code, err)
		}
		for _, code := range stops[row.code] {
			s := n.Station(code)
			if s == nil {
				return nil, fmt.Errorf("failed to load line %s: %w: %s", row.code, network.ErrUnknownStation, code)
			}
			if err := l.Add(s); err != nil {
				return nil, fmt.Errorf("failed to load line %s: %w", row.code, err)
			}
		}
		if err := n.AddLine(l); err != nil {
			return nil, fmt.Errorf("failed to load line %s: %w", row.code, err)
		}
	}
	return n, nil
}

// planID returns the record id as text, generating one when unset
func planID(id uuid.UUID) string {
	if id == uuid.Nil {
		id = uuid.New()
	}
	return id.String()
}

func parsePlanID(s string) (uuid.UUID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to parse plan id %q: %w", s, err)
	}
	return id, nil
}
