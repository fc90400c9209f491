package ws

import "github.com/prometheus/client_golang/prometheus"

var (
	sessionsActive = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "rps_ws_sessions_active",
			Help: "Open websocket sessions",
		},
	)
	messagesReceived = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rps_ws_messages_received_total",
			Help: "Inbound websocket messages by type",
		},
		[]string{"type"},
	)
	eventsDropped = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rps_ws_events_dropped_total",
			Help: "Server events that could not be queued for a session",
		},
		[]string{"reason"},
	)
)

func init() {
	prometheus.MustRegister(sessionsActive)
	prometheus.MustRegister(messagesReceived)
	prometheus.MustRegister(eventsDropped)
}
