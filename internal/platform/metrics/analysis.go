package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"

	"sentimeter/internal/core/domain"
	"sentimeter/internal/core/ports"
	"sentimeter/internal/platform/errors"
)

// AnalysisMetrics records analysis outcomes. It implements ports.AnalysisObserver.
type AnalysisMetrics struct {
	AnalysesTotal    *prometheus.CounterVec
	StarsTotal       *prometheus.CounterVec
	FailuresTotal    *prometheus.CounterVec
	AnalysisDuration prometheus.Histogram
}

var _ ports.AnalysisObserver = (*AnalysisMetrics)(nil)

// NewAnalysisMetrics creates and registers analysis metrics on the given registry.
func NewAnalysisMetrics(reg prometheus.Registerer) *AnalysisMetrics {
	m := &AnalysisMetrics{
		AnalysesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "analyses_total",
			Help:      "Total number of successful analyses, by sentiment and confidence tier.",
		}, []string{"sentiment", "tier"}),
		StarsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "analysis_stars_total",
			Help:      "Total number of analyses, by star rating.",
		}, []string{"stars"}),
		FailuresTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "analysis_failures_total",
			Help:      "Total number of failed analyses, by stage and error kind.",
		}, []string{"stage", "kind"}),
		AnalysisDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "analysis_duration_seconds",
			Help:      "End-to-end duration of successful analyses in seconds.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}),
	}

	reg.MustRegister(m.AnalysesTotal, m.StarsTotal, m.FailuresTotal, m.AnalysisDuration)
	return m
}

// OnAnalysis counts a successful analysis.
func (m *AnalysisMetrics) OnAnalysis(a *domain.Analysis) {
	if a == nil {
		return
	}
	m.AnalysesTotal.WithLabelValues(a.Verdict.Sentiment.String(), a.Verdict.Tier.String()).Inc()
	m.StarsTotal.WithLabelValues(strconv.Itoa(a.Verdict.Stars)).Inc()
	m.AnalysisDuration.Observe(a.Duration.Seconds())
}

// OnFailure counts a failed analysis.
func (m *AnalysisMetrics) OnFailure(stage ports.Stage, err error) {
	m.FailuresTotal.WithLabelValues(stage.String(), errors.Kind(err)).Inc()
}
