// Package metrics expone los contadores Prometheus del store.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	storeOperations = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "kennel",
		Subsystem: "store",
		Name:      "operations_total",
		Help:      "Mutations applied to the breeding record store, by entity and operation.",
	}, []string{"entity", "op"})

	storeErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "kennel",
		Subsystem: "store",
		Name:      "rejected_total",
		Help:      "Mutations rejected by validation, by entity and reason.",
	}, []string{"entity", "reason"})

	derivedEvents = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "kennel",
		Subsystem: "calendar",
		Name:      "derived_events_total",
		Help:      "Breeding events generated by derivation rules, by event type.",
	}, []string{"type"})
)

func Operation(entity, op string) {
	storeOperations.WithLabelValues(entity, op).Inc()
}

func Rejected(entity, reason string) {
	storeErrors.WithLabelValues(entity, reason).Inc()
}

func Derived(eventType string) {
	derivedEvents.WithLabelValues(eventType).Inc()
}
