// Package metrics exposes Prometheus metrics about job-info resolution and settings reloads.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const prefix = "jobinfo_"

const (
	hostLabel   = "host"
	resultLabel = "result"
	ruleLabel   = "rule"
)

// Resolution outcomes.
const (
	ResultMatched   = "matched"
	ResultDefaulted = "defaulted"
	ResultDisabled  = "disabled"
	ResultFailed    = "failed"
)

// Reload outcomes.
const (
	ReloadAccepted = "accepted"
	ReloadRejected = "rejected"
)

// Metrics implements prometheus.Collector.
type Metrics struct {
	resolutions           *prometheus.CounterVec
	ruleExpansionFailures *prometheus.CounterVec
	matchCacheLookups     *prometheus.CounterVec
	reloads               *prometheus.CounterVec
	generation            prometheus.Gauge
	profiles              prometheus.Gauge
}

func New() *Metrics {
	return &Metrics{
		resolutions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: prefix + "resolutions_total",
				Help: "Number of job-info resolutions by host and outcome",
			},
			[]string{hostLabel, resultLabel},
		),
		ruleExpansionFailures: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: prefix + "rule_expansion_failures_total",
				Help: "Number of resolutions failed by an environment rule that did not converge",
			},
			[]string{ruleLabel},
		),
		matchCacheLookups: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: prefix + "match_cache_lookups_total",
				Help: "Number of profile match cache lookups by outcome",
			},
			[]string{resultLabel},
		),
		reloads: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: prefix + "settings_reloads_total",
				Help: "Number of settings reloads by outcome",
			},
			[]string{resultLabel},
		),
		generation: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: prefix + "settings_generation",
				Help: "Generation of the settings currently used for resolution",
			},
		),
		profiles: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: prefix + "profiles",
				Help: "Number of job-info profiles in the current settings",
			},
		),
	}
}

func (m *Metrics) collectors() []prometheus.Collector {
	return []prometheus.Collector{
		m.resolutions,
		m.ruleExpansionFailures,
		m.matchCacheLookups,
		m.reloads,
		m.generation,
		m.profiles,
	}
}

func (m *Metrics) Describe(ch chan<- *prometheus.Desc) {
	for _, c := range m.collectors() {
		c.Describe(ch)
	}
}

func (m *Metrics) Collect(ch chan<- prometheus.Metric) {
	for _, c := range m.collectors() {
		c.Collect(ch)
	}
}

func (m *Metrics) RecordResolution(host, result string) {
	m.resolutions.WithLabelValues(host, result).Inc()
}

func (m *Metrics) RecordRuleExpansionFailure(rule string) {
	m.ruleExpansionFailures.WithLabelValues(rule).Inc()
}

func (m *Metrics) RecordMatchCacheLookup(hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	m.matchCacheLookups.WithLabelValues(result).Inc()
}

func (m *Metrics) RecordReload(result string) {
	m.reloads.WithLabelValues(result).Inc()
}

// RecordSettings reports the settings now used for resolution.
func (m *Metrics) RecordSettings(generation uint64, profiles int) {
	m.generation.Set(float64(generation))
	m.profiles.Set(float64(profiles))
}
