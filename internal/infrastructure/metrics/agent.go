package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"flipper/internal/domain/value"
)

const namespace = "flipper"

// Agent exports the scan and decision counters of the agent.
type Agent struct {
	listingsScanned *prometheus.CounterVec
	decisions       *prometheus.CounterVec
	remainingBudget prometheus.Gauge
}

func NewAgent(reg prometheus.Registerer) *Agent {
	a := &Agent{
		listingsScanned: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "listings_scanned_total",
			Help:      "Valid listings fetched per marketplace.",
		}, []string{"marketplace"}),
		decisions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "decisions_total",
			Help:      "Decisions made by action.",
		}, []string{"action"}),
		remainingBudget: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "remaining_budget",
			Help:      "Budget left to spend.",
		}),
	}

	reg.MustRegister(a.listingsScanned, a.decisions, a.remainingBudget)

	return a
}

func (a *Agent) ListingsScanned(m value.Marketplace, n int) {
	a.listingsScanned.WithLabelValues(m.String()).Add(float64(n))
}

func (a *Agent) Decision(action value.Action) {
	a.decisions.WithLabelValues(action.String()).Inc()
}

func (a *Agent) RemainingBudget(budget float64) {
	a.remainingBudget.Set(budget)
}
