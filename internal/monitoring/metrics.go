// internal/monitoring/metrics.go

// Package monitoring provides Prometheus counters for one scraping run.
// Counters live on a private registry so runs do not interfere with each
// other or with the default registry in tests.
package monitoring

import (
	"sort"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics tracks per-source counters for a scraping run. A nil *Metrics is
// valid and discards all observations.
type Metrics struct {
	registry *prometheus.Registry

	requestsTotal *prometheus.CounterVec
	pagesScraped  *prometheus.CounterVec
	cardsSeen     *prometheus.CounterVec
	parseFailures *prometheus.CounterVec
	reviewsKept   *prometheus.CounterVec
}

// NewMetrics creates a metrics set on a fresh registry.
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	newCounter := func(name, help string) *prometheus.CounterVec {
		return factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "reviewscraper",
			Name:      name,
			Help:      help,
		}, []string{"source"})
	}

	return &Metrics{
		registry:      registry,
		requestsTotal: newCounter("requests_total", "HTTP requests issued"),
		pagesScraped:  newCounter("pages_scraped_total", "Review pages successfully fetched and parsed"),
		cardsSeen:     newCounter("cards_seen_total", "Review cards located on fetched pages"),
		parseFailures: newCounter("parse_failures_total", "Review cards that could not be parsed"),
		reviewsKept:   newCounter("reviews_kept_total", "Reviews kept after date-range filtering"),
	}
}

func (m *Metrics) ObserveRequest(source string) {
	if m == nil {
		return
	}
	m.requestsTotal.WithLabelValues(source).Inc()
}

func (m *Metrics) ObservePage(source string) {
	if m == nil {
		return
	}
	m.pagesScraped.WithLabelValues(source).Inc()
}

func (m *Metrics) ObserveCard(source string) {
	if m == nil {
		return
	}
	m.cardsSeen.WithLabelValues(source).Inc()
}

func (m *Metrics) ObserveParseFailure(source string) {
	if m == nil {
		return
	}
	m.parseFailures.WithLabelValues(source).Inc()
}

func (m *Metrics) ObserveReviewKept(source string) {
	if m == nil {
		return
	}
	m.reviewsKept.WithLabelValues(source).Inc()
}

// SummaryLine is one gathered counter value, used for the verbose run report.
type SummaryLine struct {
	Metric string
	Source string
	Value  float64
}

// Summary gathers all counters into a deterministic, sorted slice.
func (m *Metrics) Summary() []SummaryLine {
	if m == nil {
		return nil
	}
	families, err := m.registry.Gather()
	if err != nil {
		return nil
	}

	var lines []SummaryLine
	for _, family := range families {
		for _, metric := range family.GetMetric() {
			source := ""
			for _, label := range metric.GetLabel() {
				if label.GetName() == "source" {
					source = label.GetValue()
				}
			}
			lines = append(lines, SummaryLine{
				Metric: family.GetName(),
				Source: source,
				Value:  metric.GetCounter().GetValue(),
			})
		}
	}
	sort.Slice(lines, func(i, j int) bool {
		if lines[i].Metric != lines[j].Metric {
			return lines[i].Metric < lines[j].Metric
		}
		return lines[i].Source < lines[j].Source
	})
	return lines
}
