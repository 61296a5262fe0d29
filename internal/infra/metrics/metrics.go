package metrics

import (
	"strconv"
	"time"

	"homework_status_bot/internal/app"

	"github.com/prometheus/client_golang/prometheus"
)

// Collector exposes poll loop counters to Prometheus and implements app.Observer.
type Collector struct {
	Registry *prometheus.Registry

	cycles        *prometheus.CounterVec
	cycleDuration prometheus.Histogram
	notifications *prometheus.CounterVec
}

// NewCollector registers all collectors on a dedicated registry.
func NewCollector() *Collector {
	c := &Collector{
		Registry: prometheus.NewRegistry(),
		cycles: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "homework_bot_poll_cycles_total",
				Help: "Number of poll cycles by outcome",
			},
			[]string{"outcome"},
		),
		cycleDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "homework_bot_poll_cycle_duration_seconds",
				Help:    "Duration of poll cycles, excluding the wait between them",
				Buckets: prometheus.DefBuckets,
			},
		),
		notifications: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "homework_bot_notifications_total",
				Help: "Notification delivery attempts by kind and result",
			},
			[]string{"kind", "delivered"},
		),
	}
	c.Registry.MustRegister(c.cycles, c.cycleDuration, c.notifications)
	return c
}

func (c *Collector) CycleFinished(outcome app.Outcome, duration time.Duration) {
	c.cycles.WithLabelValues(string(outcome)).Inc()
	c.cycleDuration.Observe(duration.Seconds())
}

func (c *Collector) NotificationAttempted(kind string, delivered bool) {
	c.notifications.WithLabelValues(kind, strconv.FormatBool(delivered)).Inc()
}
