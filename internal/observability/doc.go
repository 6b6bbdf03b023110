// Package observability provides the structured logger and run metrics for
// get-papers-list.
//
// Logging uses zerolog. The CLI writes human-readable console lines to stderr
// by default; JSON output is available for machine consumption.
//
// Metrics are Prometheus counters registered on a per-run registry and
// written to a text file at the end of a run, in the format read by the
// node_exporter textfile collector.
package observability
