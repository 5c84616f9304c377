package metrics

import (
	"math"
	"sort"
	"sync"
)

// RunningStats holds a running mean and variance using Welford's online
// algorithm, so no observation has to be kept.
type RunningStats struct {
	Count int
	Mean  float64
	M2    float64 // sum of squared differences from the mean
}

// Update adds an observation
func (r *RunningStats) Update(value float64) {
	r.Count++
	delta := value - r.Mean
	r.Mean += delta / float64(r.Count)
	r.M2 += delta * (value - r.Mean)
}

// StdDev returns the population standard deviation, 0 below two observations
func (r *RunningStats) StdDev() float64 {
	if r.Count < 2 {
		return 0
	}
	return math.Sqrt(r.M2 / float64(r.Count))
}

// JourneySummary is a snapshot of the statistics for one objective
type JourneySummary struct {
	Objective       string  `json:"objective"`
	Journeys        int     `json:"journeys"`
	Unreachable     int     `json:"unreachable"`
	StopsMean       float64 `json:"stopsMean"`
	StopsStdDev     float64 `json:"stopsStdDev"`
	TransfersMean   float64 `json:"transfersMean"`
	TransfersStdDev float64 `json:"transfersStdDev"`
}

type journeyStats struct {
	stops       RunningStats
	transfers   RunningStats
	unreachable int
}

// JourneyStats aggregates stop and transfer counts of found journeys per
// objective. Safe for concurrent use.
type JourneyStats struct {
	mu    sync.Mutex
	byObj map[string]*journeyStats
}

// NewJourneyStats creates an empty aggregate
func NewJourneyStats() *JourneyStats {
	return &JourneyStats{byObj: make(map[string]*journeyStats)}
}

func (s *JourneyStats) entry(objective string) *journeyStats {
	e, ok := s.byObj[objective]
	if !ok {
		e = &journeyStats{}
		s.byObj[objective] = e
	}
	return e
}

// Found records a journey that reached its destination
func (s *JourneyStats) Found(objective string, stops, transfers int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e := s.entry(objective)
	e.stops.Update(float64(stops))
	e.transfers.Update(float64(transfers))
}

// Unreachable records a journey with no route
func (s *JourneyStats) Unreachable(objective string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entry(objective).unreachable++
}

// Snapshot returns the current statistics sorted by objective
func (s *JourneyStats) Snapshot() []JourneySummary {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]JourneySummary, 0, len(s.byObj))
	for objective, e := range s.byObj {
		out = append(out, JourneySummary{
			Objective:       objective,
			Journeys:        e.stops.Count,
			Unreachable:     e.unreachable,
			StopsMean:       e.stops.Mean,
			StopsStdDev:     e.stops.StdDev(),
			TransfersMean:   e.transfers.Mean,
			TransfersStdDev: e.transfers.StdDev(),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Objective < out[j].Objective })
	return out
}
