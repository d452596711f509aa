package goAdmit

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

// DocumentStore is the engine's only view of the backing store: read the
// document bytes at a path. Implementations signal a missing document with
// store.ErrNotFound; see the store package for a Redis-backed implementation.
type DocumentStore interface {
	Load(ctx context.Context, path string) ([]byte, error)
}

// Engine owns the live permission index and answers the per-connection
// authorization questions. Build one through [Builder]; all methods are safe
// for concurrent use afterwards.
//
// Two roles touch engine state: many concurrent decision-path callers, which
// only read, and a single periodic refresher, which is the only writer. The
// index is a concurrent map so decisions never block on a refresh in
// progress; the add-before-remove apply discipline guarantees a decision
// never observes a torn policy.
type Engine struct {
	config Config
	store  DocumentStore

	// permissions maps identity.Identity to Permission. permCount mirrors its
	// size because the decision path needs an O(1) emptiness check.
	permissions sync.Map
	permCount   atomic.Int64

	// shadow defaults to true at construction: a brand-new engine fails open
	// until the first applied document says otherwise.
	shadow atomic.Bool

	rejectNullIdentity         atomic.Bool
	rejectWithoutACLDefinition atomic.Bool
	forceShadowMode            atomic.Bool

	// applyMu serializes every writer of index state: the refresher's whole
	// cycle and the management clear. Decision-path readers never take it.
	applyMu sync.Mutex
	// fingerprint is the CRC32 of the last successfully applied document
	// bytes, or fingerprintNone. Guarded by applyMu.
	fingerprint int64

	monitor *refreshMonitor
	audit   *auditDispatcher
	metrics *Metrics
}

// Close stops the refresh monitor and drains the audit dispatcher. It is safe
// to call more than once.
func (e *Engine) Close() {
	if e == nil {
		return
	}
	if e.monitor != nil {
		e.monitor.Stop()
	}
	if e.audit != nil {
		e.audit.Close()
	}
}

// MetricsSnapshot returns a point-in-time copy of all engine metrics.
func (e *Engine) MetricsSnapshot() MetricsSnapshot {
	if e == nil || e.metrics == nil {
		return MetricsSnapshot{
			Counters:   map[MetricID]uint64{},
			Histograms: map[MetricID][]uint64{},
		}
	}
	return e.metrics.Snapshot()
}

// AuditDropped returns the number of audit events dropped under backpressure.
func (e *Engine) AuditDropped() uint64 {
	if e == nil || e.audit == nil {
		return 0
	}
	return e.audit.Dropped()
}

// PermissionCount returns the number of identities in the live index.
func (e *Engine) PermissionCount() int {
	if e == nil {
		return 0
	}
	return int(e.permCount.Load())
}

// ShadowEnabled reports the effective shadow state, including the
// force-shadow override.
func (e *Engine) ShadowEnabled() bool {
	if e == nil {
		return true
	}
	return e.forceShadowMode.Load() || e.shadow.Load()
}

func (e *Engine) metricInc(id MetricID) {
	if e == nil || e.metrics == nil {
		return
	}
	e.metrics.Inc(id)
}

// auditEmit fills in the event envelope and hands it to the dispatcher. Used
// by the refresh and management paths; the decision path uses auditTryEmit.
func (e *Engine) auditEmit(ctx context.Context, event AuditEvent) {
	if e == nil || e.audit == nil {
		return
	}
	e.stampEvent(&event)
	e.audit.emit(ctx, event)
}

func (e *Engine) auditTryEmit(event AuditEvent) {
	if e == nil || e.audit == nil {
		return
	}
	e.stampEvent(&event)
	e.audit.tryEmit(event)
}

func (e *Engine) stampEvent(event *AuditEvent) {
	if event.EventID == "" {
		event.EventID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}
}
