package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the compensation API.
// Tracks entity creation, sanitized inputs and roster outcomes.
type Metrics struct {
	Registry *prometheus.Registry

	EntitiesCreated *prometheus.CounterVec
	FieldsDefaulted *prometheus.CounterVec
	RosterAdds      *prometheus.CounterVec
	BonusesGranted  prometheus.Counter
}

// New creates a Metrics instance on its own registry so several instances
// (one per test server) can coexist.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	f := promauto.With(reg)
	return &Metrics{
		Registry: reg,
		EntitiesCreated: f.NewCounterVec(prometheus.CounterOpts{
			Name: "payroll_entities_created_total",
			Help: "Total number of workers, supervisors and members created",
		}, []string{"kind"}),
		FieldsDefaulted: f.NewCounterVec(prometheus.CounterOpts{
			Name: "payroll_fields_defaulted_total",
			Help: "Supplied construction fields replaced by their default",
		}, []string{"field"}),
		RosterAdds: f.NewCounterVec(prometheus.CounterOpts{
			Name: "payroll_roster_adds_total",
			Help: "Roster assignment attempts by outcome (added, shift_mismatch, full)",
		}, []string{"outcome"}),
		BonusesGranted: f.NewCounter(prometheus.CounterOpts{
			Name: "payroll_bonuses_granted_total",
			Help: "Total number of supervisor bonuses applied",
		}),
	}
}

// IncrementCreated records a created entity of the given kind.
func (m *Metrics) IncrementCreated(kind string) {
	m.EntitiesCreated.WithLabelValues(kind).Inc()
}

// ObserveDefaulted records each sanitized field.
func (m *Metrics) ObserveDefaulted(fields []string) {
	for _, f := range fields {
		m.FieldsDefaulted.WithLabelValues(f).Inc()
	}
}

// ObserveRosterAdd records one AddWorker outcome.
func (m *Metrics) ObserveRosterAdd(outcome string) {
	m.RosterAdds.WithLabelValues(outcome).Inc()
}

// IncrementBonus records a granted bonus.
func (m *Metrics) IncrementBonus() {
	m.BonusesGranted.Inc()
}
