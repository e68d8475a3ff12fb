package dashboard

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type domainMetrics struct {
	toasts    *prometheus.CounterVec
	entityOps *prometheus.CounterVec
}

// newDomainMetrics registers on reg. A nil reg keeps the counters
// unregistered.
func newDomainMetrics(reg prometheus.Registerer) *domainMetrics {
	f := promauto.With(reg)
	return &domainMetrics{
		toasts: f.NewCounterVec(prometheus.CounterOpts{
			Name: "dashboard_toasts_total",
			Help: "Toasts queued, by severity.",
		}, []string{"severity"}),
		entityOps: f.NewCounterVec(prometheus.CounterOpts{
			Name: "dashboard_entity_ops_total",
			Help: "Entity mutations, by kind and action.",
		}, []string{"kind", "action"}),
	}
}
