package logging

import (
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	log "github.com/sirupsen/logrus"
)

// PrometheusHook implements logrus.Hook
type PrometheusHook struct {
	counter *prometheus.CounterVec
}

// NewPrometheusHook creates and registers a Prometheus counter of log lines by level.
func NewPrometheusHook(reg prometheus.Registerer) (*PrometheusHook, error) {
	counter := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "log_messages",
			Help: "Total number of log lines logged by level",
		},
		[]string{"level"},
	)
	if err := reg.Register(counter); err != nil {
		return nil, errors.WithStack(err)
	}
	return &PrometheusHook{counter: counter}, nil
}

func (h *PrometheusHook) Levels() []log.Level {
	return []log.Level{log.DebugLevel, log.InfoLevel, log.WarnLevel, log.ErrorLevel}
}

func (h *PrometheusHook) Fire(entry *log.Entry) error {
	h.counter.WithLabelValues(entry.Level.String()).Inc()
	return nil
}
