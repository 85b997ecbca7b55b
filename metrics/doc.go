// Package metrics exposes Prometheus instrumentation for the dictation
// pipeline: session lifecycle counters, per-stage durations and the
// non-fatal degradation counters (refinement fallbacks, page delivery
// failures) that would otherwise only be visible in logs.
package metrics
