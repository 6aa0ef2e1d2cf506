// Package observability provides a metrics extension for exgroup. The
// MetricsExtension implements lifecycle hooks to record system-wide
// counters for block dispatch, handled and propagated outcomes, clause
// suppressions and re-raises, newly raised errors, and chain links.
//
// For per-clause tracing and metrics, see the middleware package:
// middleware.Tracing() and middleware.Metrics().
package observability
