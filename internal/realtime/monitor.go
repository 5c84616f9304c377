package realtime

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/mini-rodalies-3d/metroplanner/internal/metrics"
)

// Monitor polls an alert feed and keeps the latest disruptions
type Monitor struct {
	client   *Client
	interval time.Duration
	now      func() time.Time

	mu      sync.RWMutex
	current Disruptions
}

// NewMonitor creates a monitor polling client every interval
func NewMonitor(client *Client, interval time.Duration) *Monitor {
	return &Monitor{
		client:   client,
		interval: interval,
		now:      time.Now,
		current:  NewDisruptions(nil, time.Time{}),
	}
}

// Current returns the disruptions from the last successful poll
func (m *Monitor) Current() Disruptions {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current
}

// Poll fetches the feed once and replaces the current disruptions.
// On error the previous disruptions are kept.
func (m *Monitor) Poll(ctx context.Context) error {
	feed, err := m.client.Fetch(ctx)
	if err != nil {
		return err
	}
	now := m.now()
	d := NewDisruptions(DecodeAlerts(feed, now), now)

	m.mu.Lock()
	m.current = d
	m.mu.Unlock()

	metrics.SetDisruptions(len(d.ClosedLines), len(d.ClosedStations))
	log.Printf("Alerts polled: %d active, %d lines and %d stations closed",
		len(d.Alerts), len(d.ClosedLines), len(d.ClosedStations))
	return nil
}

// Run polls immediately and then on every tick until ctx is cancelled.
// With a non-positive interval it polls once and returns.
func (m *Monitor) Run(ctx context.Context) {
	if err := m.Poll(ctx); err != nil {
		log.Printf("Warning: alert poll failed: %v", err)
	}
	if m.interval <= 0 {
		log.Printf("Warning: alert poll interval %v is not positive, polling stopped", m.interval)
		return
	}

	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			if err := m.Poll(ctx); err != nil {
				log.Printf("Warning: alert poll failed: %v", err)
			}
		case <-ctx.Done():
			log.Println("Alert monitor stopped")
			return
		}
	}
}
