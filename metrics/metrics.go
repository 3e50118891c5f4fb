// Package metrics holds the process-wide prometheus collectors. They are
// registered on the default registerer and exposed by the ops HTTP server.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "libreninja"

var (
	ActiveSessions = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "active_sessions",
		Help:      "Currently connected control-channel sessions.",
	})

	Rooms = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "rooms",
		Help:      "Rooms created since process start.",
	})

	RoutedMessages = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "routed_messages_total",
		Help:      "Inbound messages by routing outcome.",
	}, []string{"outcome"})

	DeliveryFailures = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "delivery_failures_total",
		Help:      "Messages that could not be delivered to their target session.",
	})
)

// Routing outcome label values.
const (
	OutcomeHandled   = "handled"
	OutcomeForwarded = "forwarded"
	OutcomeFailed    = "failed"
	OutcomeInvalid   = "invalid"
)
