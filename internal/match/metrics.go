package match

import "github.com/prometheus/client_golang/prometheus"

var (
	roomsActive = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "rps_rooms_active",
			Help: "Rooms currently held by the registry, including rooms in their teardown grace period",
		},
	)
	roomsCreated = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "rps_rooms_created_total",
			Help: "Total rooms created",
		},
	)
	roundsResolved = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "rps_rounds_resolved_total",
			Help: "Total rounds resolved across all rooms",
		},
	)
	matchesFinished = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rps_matches_finished_total",
			Help: "Matches that reached a terminal state",
		},
		[]string{"result"},
	)
	statsReportFailures = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "rps_stats_report_failures_total",
			Help: "Match results the stats reporter failed to record",
		},
	)
)

func init() {
	prometheus.MustRegister(roomsActive)
	prometheus.MustRegister(roomsCreated)
	prometheus.MustRegister(roundsResolved)
	prometheus.MustRegister(matchesFinished)
	prometheus.MustRegister(statsReportFailures)
}
