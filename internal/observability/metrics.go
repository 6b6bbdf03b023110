package observability

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

// Request outcomes used as the outcome label of RequestsTotal.
const (
	OutcomeSuccess = "success"
	OutcomeError   = "error"
)

// Verdict labels of AuthorsClassified.
const (
	VerdictAcademic    = "academic"
	VerdictNonAcademic = "non_academic"
)

// Metrics holds the counters for one pipeline run. A nil *Metrics is valid
// and records nothing.
type Metrics struct {
	registry *prometheus.Registry

	// RequestsTotal counts E-utilities calls by phase (search, fetch) and outcome.
	RequestsTotal *prometheus.CounterVec

	// ArticlesParsed counts article records produced by the extractor.
	ArticlesParsed prometheus.Counter

	// ArticleParseFailures counts articles skipped during extraction.
	ArticleParseFailures prometheus.Counter

	// AuthorExtractionFailures counts authors skipped during extraction.
	AuthorExtractionFailures prometheus.Counter

	// AuthorsClassified counts classifier verdicts by label (academic, non_academic).
	AuthorsClassified *prometheus.CounterVec

	// ReportRows is the number of rows in the final report.
	ReportRows prometheus.Gauge
}

// NewMetrics creates the run metrics on a private registry. The namespace
// prefixes every metric name.
func NewMetrics(namespace string) *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		RequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "requests_total",
			Help:      "E-utilities requests by phase and outcome",
		}, []string{"phase", "outcome"}),
		ArticlesParsed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "articles_parsed_total",
			Help:      "Article records extracted from efetch responses",
		}),
		ArticleParseFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "article_parse_failures_total",
			Help:      "Articles skipped because they could not be extracted",
		}),
		AuthorExtractionFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "author_extraction_failures_total",
			Help:      "Authors skipped because they could not be extracted",
		}),
		AuthorsClassified: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "authors_classified_total",
			Help:      "Classifier verdicts by label",
		}, []string{"verdict"}),
		ReportRows: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "report_rows",
			Help:      "Rows in the final report",
		}),
	}
	reg.MustRegister(
		m.RequestsTotal,
		m.ArticlesParsed,
		m.ArticleParseFailures,
		m.AuthorExtractionFailures,
		m.AuthorsClassified,
		m.ReportRows,
	)
	return m
}

// ObserveRequest records one E-utilities call.
func (m *Metrics) ObserveRequest(phase string, err error) {
	if m == nil {
		return
	}
	outcome := OutcomeSuccess
	if err != nil {
		outcome = OutcomeError
	}
	m.RequestsTotal.WithLabelValues(phase, outcome).Inc()
}

// ObserveExtraction records the outcome of parsing one efetch response.
func (m *Metrics) ObserveExtraction(parsed, articleFailures, authorFailures int) {
	if m == nil {
		return
	}
	m.ArticlesParsed.Add(float64(parsed))
	m.ArticleParseFailures.Add(float64(articleFailures))
	m.AuthorExtractionFailures.Add(float64(authorFailures))
}

// ObserveVerdicts records the classifier verdicts of one run.
func (m *Metrics) ObserveVerdicts(nonAcademic, academic int) {
	if m == nil {
		return
	}
	m.AuthorsClassified.WithLabelValues(VerdictNonAcademic).Add(float64(nonAcademic))
	m.AuthorsClassified.WithLabelValues(VerdictAcademic).Add(float64(academic))
}

// SetReportRows records the size of the final report.
func (m *Metrics) SetReportRows(n int) {
	if m == nil {
		return
	}
	m.ReportRows.Set(float64(n))
}

// WriteFile writes all metrics to path in Prometheus text format.
func (m *Metrics) WriteFile(path string) error {
	if m == nil {
		return nil
	}
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("writing metrics file: %w", err)
	}
	return nil
}
