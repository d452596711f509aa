package internaldefs

import (
	goAdmit "github.com/MrEthical07/goAdmit"
)

// CounterDef binds one engine counter to its exported metric name.
//
// CounterDef instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type CounterDef struct {
	ID   goAdmit.MetricID
	Name string
	Help string
}

// HistogramDef binds one engine histogram to its exported metric name.
//
// HistogramDef instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type HistogramDef struct {
	ID   goAdmit.MetricID
	Name string
	Help string
}

// CounterDefs lists every counter exporters must expose, in render order.
var CounterDefs = []CounterDef{
	{ID: goAdmit.MetricConnectionAuthorized, Name: "goadmit_connection_authorized_total", Help: "Connections authorized in live mode."},
	{ID: goAdmit.MetricConnectionUnauthorized, Name: "goadmit_connection_unauthorized_total", Help: "Connections rejected in live mode."},
	{ID: goAdmit.MetricConnectionAuthorizedShadow, Name: "goadmit_connection_authorized_shadow_total", Help: "Connections that matched the permission index while shadow mode was active."},
	{ID: goAdmit.MetricConnectionUnauthorizedShadow, Name: "goadmit_connection_unauthorized_shadow_total", Help: "Connections that failed the permission index but were accepted under shadow mode."},
	{ID: goAdmit.MetricUpdateAuthorizationFailed, Name: "goadmit_update_authorization_failed_total", Help: "Refresh cycles that failed to read or decode the ACL document."},
	{ID: goAdmit.MetricPolicyApplied, Name: "goadmit_policy_applied_total", Help: "Successful ACL document applies."},
	{ID: goAdmit.MetricPolicyCleared, Name: "goadmit_policy_cleared_total", Help: "Policy clears from document removal or the management surface."},
	{ID: goAdmit.MetricPolicyUnchanged, Name: "goadmit_policy_unchanged_total", Help: "Refresh cycles skipped on an unchanged document fingerprint."},
}

// HistogramDefs lists every histogram exporters must expose.
var HistogramDefs = []HistogramDef{
	{ID: goAdmit.MetricCheckLatency, Name: "goadmit_check_latency_seconds", Help: "Connection check latency histogram."},
}

// HistogramBounds holds the upper bucket bounds in seconds, as Prometheus le
// label values. The check path is index lookups only, so bounds sit in the
// microsecond range.
var HistogramBounds = []string{
	"0.000001",
	"0.000005",
	"0.00001",
	"0.00005",
	"0.0001",
	"0.0005",
	"0.001",
	"+Inf",
}

// HistogramBoundSuffix holds instrument-name-safe forms of HistogramBounds.
var HistogramBoundSuffix = []string{
	"1us",
	"5us",
	"10us",
	"50us",
	"100us",
	"500us",
	"1ms",
	"inf",
}

// NormalizeBuckets pads or truncates a raw bucket slice to the fixed bucket
// count so exporters never index out of range.
func NormalizeBuckets(raw []uint64) [8]uint64 {
	var out [8]uint64
	for i := 0; i < len(out) && i < len(raw); i++ {
		out[i] = raw[i]
	}
	return out
}

// CumulativeBuckets converts per-bucket counts into the cumulative form
// Prometheus histograms use.
func CumulativeBuckets(raw [8]uint64) [8]uint64 {
	var out [8]uint64
	var running uint64
	for i := 0; i < len(raw); i++ {
		running += raw[i]
		out[i] = running
	}
	return out
}
