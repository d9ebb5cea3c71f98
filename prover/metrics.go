package prover

import (
	"fmt"
	"sort"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	dto "github.com/prometheus/client_model/go"

	"github.com/rfielding/kripke-tableau/parser"
)

// Metrics counts what a prover does. Each instance owns its registry so
// several runs in one process do not share counters. A nil *Metrics is
// valid and records nothing.
type Metrics struct {
	registry *prometheus.Registry

	expansions *prometheus.CounterVec
	worlds     prometheus.Counter
	closures   prometheus.Counter
	runs       *prometheus.CounterVec
	steps      prometheus.Histogram
}

// NewMetrics registers the prover metrics on a fresh registry.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)
	return &Metrics{
		registry: reg,
		expansions: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "tableau",
			Name:      "expansions_total",
			Help:      "Rule applications by main connective.",
		}, []string{"operator"}),
		worlds: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "tableau",
			Name:      "worlds_created_total",
			Help:      "Worlds added to the frame.",
		}),
		closures: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "tableau",
			Name:      "branches_closed_total",
			Help:      "Branches closed by a contradiction.",
		}),
		runs: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "tableau",
			Name:      "runs_total",
			Help:      "Finished proofs by verdict.",
		}, []string{"verdict"}),
		steps: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: "tableau",
			Name:      "run_steps",
			Help:      "Expansions needed per proof.",
			Buckets:   prometheus.ExponentialBuckets(1, 4, 8),
		}),
	}
}

func (m *Metrics) expanded(op parser.Operator) {
	if m == nil {
		return
	}
	m.expansions.WithLabelValues(op.String()).Inc()
}

func (m *Metrics) worldCreated() {
	if m == nil {
		return
	}
	m.worlds.Inc()
}

func (m *Metrics) closed(n int) {
	if m == nil {
		return
	}
	m.closures.Add(float64(n))
}

func (m *Metrics) finished(res *Result) {
	if m == nil {
		return
	}
	m.runs.WithLabelValues(res.Verdict.String()).Inc()
	m.steps.Observe(float64(res.Steps))
}

// GenerateMetricsTable renders the gathered metrics as a markdown table.
func (m *Metrics) GenerateMetricsTable() (string, error) {
	families, err := m.registry.Gather()
	if err != nil {
		return "", fmt.Errorf("gather metrics: %w", err)
	}
	sort.Slice(families, func(i, j int) bool {
		return families[i].GetName() < families[j].GetName()
	})

	var sb strings.Builder
	sb.WriteString("| Metric | Labels | Type | Value | Description |\n")
	sb.WriteString("|--------|--------|------|-------|-------------|\n")
	for _, mf := range families {
		for _, metric := range mf.GetMetric() {
			fmt.Fprintf(&sb, "| %s | %s | %s | %s | %s |\n",
				mf.GetName(),
				labelString(metric.GetLabel()),
				strings.ToLower(mf.GetType().String()),
				metricValue(mf.GetType(), metric),
				mf.GetHelp())
		}
	}
	return sb.String(), nil
}

func labelString(pairs []*dto.LabelPair) string {
	parts := make([]string, 0, len(pairs))
	for _, lp := range pairs {
		parts = append(parts, lp.GetName()+"="+lp.GetValue())
	}
	return strings.Join(parts, ",")
}

func metricValue(t dto.MetricType, metric *dto.Metric) string {
	switch t {
	case dto.MetricType_COUNTER:
		return fmt.Sprintf("%.0f", metric.GetCounter().GetValue())
	case dto.MetricType_GAUGE:
		return fmt.Sprintf("%.2f", metric.GetGauge().GetValue())
	case dto.MetricType_HISTOGRAM:
		h := metric.GetHistogram()
		return fmt.Sprintf("count=%d sum=%.0f", h.GetSampleCount(), h.GetSampleSum())
	}
	return ""
}
