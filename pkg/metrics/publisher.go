package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// PublisherMetrics records outbox publisher progress.
type PublisherMetrics struct {
	published prometheus.Counter
	failed    prometheus.Counter
	batchTime prometheus.Histogram
}

// NewPublisherMetrics registers the outbox publisher metrics on the provided registerer.
func NewPublisherMetrics(reg prometheus.Registerer) *PublisherMetrics {
	if reg == nil {
		return &PublisherMetrics{}
	}
	published := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "outbox_events_published_total",
		Help: "Outbox events successfully published.",
	})
	failed := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "outbox_events_failed_total",
		Help: "Outbox events that failed to publish.",
	})
	batchTime := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "outbox_batch_duration_seconds",
		Help:    "Duration of outbox drain batches in seconds.",
		Buckets: prometheus.DefBuckets,
	})
	reg.MustRegister(published, failed, batchTime)
	return &PublisherMetrics{
		published: published,
		failed:    failed,
		batchTime: batchTime,
	}
}

// IncPublished increments the published counter.
func (p *PublisherMetrics) IncPublished() {
	if p == nil || p.published == nil {
		return
	}
	p.published.Inc()
}

// IncFailed increments the failed counter.
func (p *PublisherMetrics) IncFailed() {
	if p == nil || p.failed == nil {
		return
	}
	p.failed.Inc()
}

// ObserveBatch records the duration of a drain batch.
func (p *PublisherMetrics) ObserveBatch(duration time.Duration) {
	if p == nil || p.batchTime == nil {
		return
	}
	p.batchTime.Observe(duration.Seconds())
}
