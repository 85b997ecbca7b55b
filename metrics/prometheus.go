package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics contains all Prometheus metrics for the dictation pipeline.
type Metrics struct {
	// Session lifecycle
	SessionsStarted   prometheus.Counter
	SessionsCompleted prometheus.Counter
	SessionsFailed    *prometheus.CounterVec
	TogglesIgnored    prometheus.Counter

	// Pipeline stages
	StageDuration *prometheus.HistogramVec
	AudioBytes    prometheus.Histogram

	// Non-fatal degradation
	RefinementFallbacks prometheus.Counter
	DeliveryFailures    prometheus.Counter
	KeepalivePings      prometheus.Counter
}

// New creates and registers all pipeline metrics on reg. Passing nil uses
// the default registerer.
func New(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)

	return &Metrics{
		SessionsStarted: factory.NewCounter(prometheus.CounterOpts{
			Name: "dictate_sessions_started_total",
			Help: "Total number of recording sessions started",
		}),
		SessionsCompleted: factory.NewCounter(prometheus.CounterOpts{
			Name: "dictate_sessions_completed_total",
			Help: "Total number of sessions that delivered text",
		}),
		SessionsFailed: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "dictate_sessions_failed_total",
			Help: "Total number of sessions aborted by a fatal error, by error code",
		}, []string{"code"}),
		TogglesIgnored: factory.NewCounter(prometheus.CounterOpts{
			Name: "dictate_toggles_ignored_total",
			Help: "Total number of toggles dropped while a pipeline was in flight",
		}),
		StageDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "dictate_stage_duration_seconds",
			Help:    "Duration of each pipeline stage",
			Buckets: prometheus.ExponentialBuckets(0.05, 2, 12),
		}, []string{"stage"}),
		AudioBytes: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "dictate_audio_bytes",
			Help:    "Size of the encoded audio buffer per session",
			Buckets: prometheus.ExponentialBuckets(1024, 4, 10),
		}),
		RefinementFallbacks: factory.NewCounter(prometheus.CounterOpts{
			Name: "dictate_refinement_fallbacks_total",
			Help: "Total number of sessions that fell back to the raw transcript",
		}),
		DeliveryFailures: factory.NewCounter(prometheus.CounterOpts{
			Name: "dictate_delivery_failures_total",
			Help: "Total number of transcripts that could not be inserted into the page",
		}),
		KeepalivePings: factory.NewCounter(prometheus.CounterOpts{
			Name: "dictate_keepalive_pings_total",
			Help: "Total number of keepalive pings sent while recording",
		}),
	}
}

// All recording methods are nil-safe so instrumentation stays optional for
// hosts that do not scrape.

// SessionStarted records one started session.
func (m *Metrics) SessionStarted() {
	if m != nil {
		m.SessionsStarted.Inc()
	}
}

// SessionCompleted records one session that delivered text.
func (m *Metrics) SessionCompleted() {
	if m != nil {
		m.SessionsCompleted.Inc()
	}
}

// SessionFailed records a fatal session failure by error code.
func (m *Metrics) SessionFailed(code string) {
	if m != nil {
		m.SessionsFailed.WithLabelValues(code).Inc()
	}
}

// ToggleIgnored records a toggle dropped mid-pipeline.
func (m *Metrics) ToggleIgnored() {
	if m != nil {
		m.TogglesIgnored.Inc()
	}
}

// ObserveStage records one stage duration.
func (m *Metrics) ObserveStage(stage string, d time.Duration) {
	if m != nil {
		m.StageDuration.WithLabelValues(stage).Observe(d.Seconds())
	}
}

// ObserveAudioBytes records the encoded audio size for one session.
func (m *Metrics) ObserveAudioBytes(n int) {
	if m != nil {
		m.AudioBytes.Observe(float64(n))
	}
}

// RefinementFallback records a session that fell back to the raw transcript.
func (m *Metrics) RefinementFallback() {
	if m != nil {
		m.RefinementFallbacks.Inc()
	}
}

// DeliveryFailure records a transcript that could not be inserted.
func (m *Metrics) DeliveryFailure() {
	if m != nil {
		m.DeliveryFailures.Inc()
	}
}

// KeepalivePing records one keepalive ping.
func (m *Metrics) KeepalivePing() {
	if m != nil {
		m.KeepalivePings.Inc()
	}
}
