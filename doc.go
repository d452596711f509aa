// Package goAdmit provides the connection-admission authorization engine for
// a distributed coordination service: given the client identities presented on
// a connection, it decides whether the connection may proceed, driven by an
// ACL document that lives in the coordination service itself and is polled
// into a live, hot-swappable permission index.
//
// The package is designed for concurrent server workloads: Engine methods are
// safe to call from multiple goroutines after initialization through
// [Builder.Build]. Decision-path methods never block on the background
// refresher and never return errors; malformed input degrades to the
// policy-default outcome.
//
// # Architecture boundaries
//
// goAdmit is the public surface. It exposes [Engine], [Builder], [Config],
// [Management], and value types (Document, AuthorizationResult,
// MetricsSnapshot, AuditEvent). Identity parsing lives in identity/, the
// document store adapter in store/, authentication providers in provider/,
// and metric exporters under metrics/export/.
//
// # What this package must NOT do
//
//   - Authenticate raw connections — it consumes an already-resolved
//     [identity.Identities] value (see provider/ for the collaborators that
//     produce one).
//   - Own the replicated store — it only reads bytes at a configured path
//     through the [DocumentStore] interface.
//   - Write log lines — observability flows through [AuditSink] events and
//     the metric counters.
//
// # Performance contract
//
// CheckConnectPermission and IsAdmin are the hot path. They must complete in
// bounded local work (index lookups only, no I/O, no locks shared with the
// refresher) and must not allocate beyond the returned result.
package goAdmit
