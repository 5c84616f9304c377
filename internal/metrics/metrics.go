// Package metrics exposes planner activity to Prometheus and keeps running
// statistics about the journeys served.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	planDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "metroplanner_plan_duration_seconds",
		Help:    "Time spent computing a journey",
		Buckets: []float64{.0001, .0005, .001, .005, .01, .05, .1, .5},
	}, []string{"objective", "outcome"})

	plansTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "metroplanner_plans_total",
		Help: "Number of journeys planned",
	}, []string{"objective", "outcome"})

	networkStations = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "metroplanner_network_stations",
		Help: "Stations in the network currently served",
	})

	networkLines = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "metroplanner_network_lines",
		Help: "Lines in the network currently served",
	})

	disruptionsActive = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "metroplanner_disruptions_active",
		Help: "Lines and stations closed by service alerts",
	}, []string{"kind"})
)

func init() {
	prometheus.MustRegister(planDuration, plansTotal, networkStations, networkLines, disruptionsActive)
}

// ObservePlan records one planner call
func ObservePlan(objective, outcome string, took time.Duration) {
	planDuration.WithLabelValues(objective, outcome).Observe(took.Seconds())
	plansTotal.WithLabelValues(objective, outcome).Inc()
}

// SetNetwork publishes the size of the loaded network
func SetNetwork(stations, lines int) {
	networkStations.Set(float64(stations))
	networkLines.Set(float64(lines))
}

// SetDisruptions publishes how many lines and stations are closed
func SetDisruptions(lines, stations int) {
	disruptionsActive.WithLabelValues("line").Set(float64(lines))
	disruptionsActive.WithLabelValues("station").Set(float64(stations))
}
