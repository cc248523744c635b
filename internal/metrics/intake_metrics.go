package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Виды заявок
const (
	KindOrder   = "order"
	KindMessage = "message"
)

// IntakeMetrics интерфейс для метрик приема заявок
type IntakeMetrics interface {
	// ObserveSubmission учитывает заявку с итогом accepted, rejected или failed
	ObserveSubmission(kind, outcome string, duration time.Duration)
	// IncStepFailure учитывает сбой необязательного шага
	IncStepFailure(kind, step string)
}

type intakeMetrics struct {
	submissions  *prometheus.CounterVec
	duration     *prometheus.HistogramVec
	stepFailures *prometheus.CounterVec
}

// NewIntakeMetrics создает метрики приема заявок
func NewIntakeMetrics(registry *prometheus.Registry) IntakeMetrics {
	submissions := promauto.With(registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "intake_submissions_total",
			Help: "The total number of order and message submissions by outcome",
		},
		[]string{"kind", "outcome"},
	)

	duration := promauto.With(registry).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "intake_duration_seconds",
			Help:    "Time spent processing a submission",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"kind"},
	)

	stepFailures := promauto.With(registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "intake_step_failures_total",
			Help: "Best-effort intake steps that failed and were skipped",
		},
		[]string{"kind", "step"},
	)

	return &intakeMetrics{
		submissions:  submissions,
		duration:     duration,
		stepFailures: stepFailures,
	}
}

func (m *intakeMetrics) ObserveSubmission(kind, outcome string, d time.Duration) {
	m.submissions.WithLabelValues(kind, outcome).Inc()
	m.duration.WithLabelValues(kind).Observe(d.Seconds())
}

func (m *intakeMetrics) IncStepFailure(kind, step string) {
	m.stepFailures.WithLabelValues(kind, step).Inc()
}

// NopIntakeMetrics ничего не записывает
type NopIntakeMetrics struct{}

func (NopIntakeMetrics) ObserveSubmission(string, string, time.Duration) {}
func (NopIntakeMetrics) IncStepFailure(string, string)                   {}
