// Package prometheus provides Prometheus collectors for goAdmit metrics.
//
// [NewPrometheusExporter] accepts a [goAdmit.Engine] and exposes an [http.Handler]
// that renders all goAdmit counters and the check-latency histogram in Prometheus
// text exposition format. Counter names are prefixed goadmit_*_total; the single
// histogram is goadmit_check_latency_seconds.
//
// # What this package must NOT do
//
//   - Register metrics in a global Prometheus registry — callers mount the Handler.
//   - Mutate engine state.
package prometheus
