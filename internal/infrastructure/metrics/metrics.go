// Package metrics exposes the Prometheus instrumentation for the
// service. Collectors are registered once at package load.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// TicketsCreated counts tickets opened by visitors.
	TicketsCreated = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "onlyhelper_tickets_created_total",
		Help: "Total number of tickets created.",
	})

	// TicketsTaken counts successful take transitions.
	TicketsTaken = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "onlyhelper_tickets_taken_total",
		Help: "Total number of tickets taken by attendants.",
	})

	// TicketsClosed counts successful close transitions.
	TicketsClosed = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "onlyhelper_tickets_closed_total",
		Help: "Total number of tickets closed.",
	})

	// MessagesAppended counts persisted messages by sender side.
	MessagesAppended = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "onlyhelper_messages_total",
		Help: "Total number of chat messages persisted.",
	}, []string{"sender_type"})

	// EventsBroadcast counts events fanned out to observers.
	EventsBroadcast = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "onlyhelper_events_broadcast_total",
		Help: "Total number of events broadcast to observers.",
	}, []string{"event"})

	// ObserverConnections tracks currently connected observers.
	ObserverConnections = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "onlyhelper_observer_connections",
		Help: "Number of currently connected real-time observers.",
	})
)

func init() {
	prometheus.MustRegister(
		TicketsCreated,
		TicketsTaken,
		TicketsClosed,
		MessagesAppended,
		EventsBroadcast,
		ObserverConnections,
	)
}

// Handler serves the Prometheus scrape endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}
