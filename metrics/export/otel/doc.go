// Package otel provides OpenTelemetry metric exporter bindings for goAdmit counters and
// the check-latency histogram.
//
// [NewOTelExporter] registers Int64ObservableCounter instruments for each goAdmit metric
// and Int64ObservableGauge per histogram bucket. A single callback reads
// [goAdmit.Engine.MetricsSnapshot] on each collection cycle.
//
// # What this package must NOT do
//
//   - Own the OTel MeterProvider — callers supply the Meter.
//   - Mutate engine state.
package otel
