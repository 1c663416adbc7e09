package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the intake funnel: how many leads land,
// how many bounce off validation, and how many hit the duplicate guard.
type Metrics struct {
	RegistrationsCreated prometheus.Counter
	DuplicateEmails      prometheus.Counter
	ValidationRejects    prometheus.Counter
	RegisterDuration     prometheus.Histogram
}

// New creates a Metrics instance with all intake metrics registered on the
// default registry.
func New() *Metrics {
	return &Metrics{
		RegistrationsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "pawhere_registrations_created_total",
			Help: "Total number of registrations persisted",
		}),
		DuplicateEmails: promauto.NewCounter(prometheus.CounterOpts{
			Name: "pawhere_registrations_duplicate_total",
			Help: "Total number of submissions rejected as duplicate email",
		}),
		ValidationRejects: promauto.NewCounter(prometheus.CounterOpts{
			Name: "pawhere_registrations_invalid_total",
			Help: "Total number of submissions rejected by validation",
		}),
		RegisterDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "pawhere_register_duration_seconds",
			Help:    "Duration of the full register flow (schema, validate, dedup, insert)",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}),
	}
}

// IncrementCreated records a successfully persisted registration.
func (m *Metrics) IncrementCreated() {
	m.RegistrationsCreated.Inc()
}

// IncrementDuplicate records a submission stopped by the duplicate guard.
func (m *Metrics) IncrementDuplicate() {
	m.DuplicateEmails.Inc()
}

// IncrementInvalid records a submission rejected by validation.
func (m *Metrics) IncrementInvalid() {
	m.ValidationRejects.Inc()
}

// ObserveRegister records the duration of a Register call.
// Call with time.Now() captured at the start of the operation.
func (m *Metrics) ObserveRegister(start time.Time) {
	m.RegisterDuration.Observe(time.Since(start).Seconds())
}
