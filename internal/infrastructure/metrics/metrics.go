package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Batch outcomes used as the "outcome" label.
const (
	OutcomeSucceeded = "succeeded"
	OutcomeSkipped   = "skipped"
	OutcomeFailed    = "failed"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// Batch metrics
	BatchItems    *prometheus.CounterVec
	BatchDuration *prometheus.HistogramVec

	// EOD metrics
	EODRuns            *prometheus.CounterVec
	EODImbalance       prometheus.Gauge
	SystemDateAdvances prometheus.Counter

	// Posting metrics
	TransactionsCreated  prometheus.Counter
	TransactionsVerified prometheus.Counter

	// Sequence metrics
	SequenceAllocations *prometheus.CounterVec
	SequenceExhausted   *prometheus.CounterVec

	// Value-date metrics
	ValueDateClassified *prometheus.CounterVec
	DeltaInterestPosted prometheus.Counter

	// Settlement metrics
	SettlementAlerts *prometheus.CounterVec

	// Cache metrics
	CacheLookups *prometheus.CounterVec

	// Outbox metrics
	EventsPublished *prometheus.CounterVec

	// API metrics
	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec

	// Rate limiting metrics
	RateLimitHits *prometheus.CounterVec
}

// New creates all metrics and registers them with reg. A nil reg uses the
// default registerer.
func New(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)

	return &Metrics{
		// Batch metrics
		BatchItems: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "corebank_batch_items_total",
				Help: "Batch items processed by job and outcome",
			},
			[]string{"job", "outcome"},
		),
		BatchDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "corebank_batch_duration_seconds",
				Help:    "Duration of batch jobs",
				Buckets: []float64{0.05, 0.1, 0.5, 1, 5, 15, 60, 300},
			},
			[]string{"job"},
		),

		// EOD metrics
		EODRuns: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "corebank_eod_runs_total",
				Help: "EOD runs by final status",
			},
			[]string{"status"},
		),
		EODImbalance: factory.NewGauge(prometheus.GaugeOpts{
			Name: "corebank_eod_imbalance",
			Help: "Debit minus credit total of the last EOD double-entry check",
		}),
		SystemDateAdvances: factory.NewCounter(prometheus.CounterOpts{
			Name: "corebank_system_date_advances_total",
			Help: "Number of times the system date was advanced",
		}),

		// Posting metrics
		TransactionsCreated: factory.NewCounter(prometheus.CounterOpts{
			Name: "corebank_transactions_created_total",
			Help: "Total number of transactions entered",
		}),
		TransactionsVerified: factory.NewCounter(prometheus.CounterOpts{
			Name: "corebank_transactions_verified_total",
			Help: "Total number of transactions verified",
		}),

		// Sequence metrics
		SequenceAllocations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "corebank_sequence_allocations_total",
				Help: "Identifiers allocated by kind",
			},
			[]string{"kind"},
		),
		SequenceExhausted: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "corebank_sequence_exhausted_total",
				Help: "Allocation attempts rejected because the range is full",
			},
			[]string{"kind"},
		),

		// Value-date metrics
		ValueDateClassified: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "corebank_value_date_classified_total",
				Help: "Verified transactions by value-date class",
			},
			[]string{"class"},
		),
		DeltaInterestPosted: factory.NewCounter(prometheus.CounterOpts{
			Name: "corebank_delta_interest_posted_total",
			Help: "Sum of delta interest posted for past-dated transactions",
		}),

		// Settlement metrics
		SettlementAlerts: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "corebank_settlement_alerts_total",
				Help: "Settlement alerts raised by kind and severity",
			},
			[]string{"kind", "severity"},
		),

		// Cache metrics
		CacheLookups: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "corebank_cache_lookups_total",
				Help: "Cache lookups by cache and result",
			},
			[]string{"cache", "result"},
		),

		// Outbox metrics
		EventsPublished: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "corebank_outbox_events_total",
				Help: "Outbox events relayed by type and outcome",
			},
			[]string{"event_type", "outcome"},
		),

		// API metrics
		HTTPRequests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "corebank_http_requests_total",
				Help: "Total HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "corebank_http_duration_seconds",
				Help:    "HTTP request duration",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),

		// Rate limiting metrics
		RateLimitHits: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "corebank_rate_limit_hits_total",
				Help: "Total rate limit hits",
			},
			[]string{"ip"},
		),
	}
}

// ObserveBatch records the item counts of one batch job run.
func (m *Metrics) ObserveBatch(job string, succeeded, skipped, failed int, seconds float64) {
	if m == nil {
		return
	}
	m.BatchItems.WithLabelValues(job, OutcomeSucceeded).Add(float64(succeeded))
	m.BatchItems.WithLabelValues(job, OutcomeSkipped).Add(float64(skipped))
	m.BatchItems.WithLabelValues(job, OutcomeFailed).Add(float64(failed))
	m.BatchDuration.WithLabelValues(job).Observe(seconds)
}
