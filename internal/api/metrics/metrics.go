// Package metrics defines the custom Prometheus metrics of the Explora
// services. Metrics are bound to an explicit registry so each service (and
// each test) owns its own set.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "explora"

// Metrics groups the counters recorded by the HTTP handlers.
type Metrics struct {
	// TokensIssuedTotal counts successful logins.
	TokensIssuedTotal prometheus.Counter

	// AuthFailuresTotal counts rejected logins and token checks.
	// Label:
	//   - reason: "invalid_credentials", "throttled", "invalid_token", "forbidden"
	AuthFailuresTotal *prometheus.CounterVec

	// RegistrationsTotal counts newly registered users.
	RegistrationsTotal prometheus.Counter

	// ReservationsCreatedTotal counts stored reservations. Idempotent replays
	// are not counted.
	ReservationsCreatedTotal prometheus.Counter

	// DestinationMutationsTotal counts admin writes to the catalogue.
	// Label:
	//   - op: "create", "update", "delete"
	DestinationMutationsTotal *prometheus.CounterVec
}

// New registers every metric with reg.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)

	return &Metrics{
		TokensIssuedTotal: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "tokens_issued_total",
			Help:      "Total number of access tokens issued.",
		}),
		AuthFailuresTotal: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "auth_failures_total",
			Help:      "Total number of rejected authentication attempts, by reason.",
		}, []string{"reason"}),
		RegistrationsTotal: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "registrations_total",
			Help:      "Total number of registered users.",
		}),
		ReservationsCreatedTotal: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reservations_created_total",
			Help:      "Total number of reservations created.",
		}),
		DestinationMutationsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "destination_mutations_total",
			Help:      "Total number of destination writes, by operation.",
		}, []string{"op"}),
	}
}
