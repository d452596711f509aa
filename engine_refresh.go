package goAdmit

import (
	"context"
	"errors"
	"hash/crc32"
	"sync"
	"sync/atomic"
	"time"

	"github.com/MrEthical07/goAdmit/identity"
	"github.com/MrEthical07/goAdmit/store"
)

// fingerprintNone marks "no document has been applied". CRC32 values occupy
// [0, 2^32), so -1 can never collide with a real fingerprint.
const fingerprintNone = int64(-1)

// refreshMonitor drives the periodic refresh loop: one goroutine, one cycle
// per interval, cooperative stop between cycles. Start is idempotent and Stop
// lets an in-flight cycle finish; there is no hard cancellation mid-cycle.
type refreshMonitor struct {
	engine   *Engine
	interval time.Duration
	done     chan struct{}
	wg       sync.WaitGroup
	started  atomic.Bool
	stopOnce sync.Once
}

func newRefreshMonitor(e *Engine, interval time.Duration) *refreshMonitor {
	return &refreshMonitor{
		engine:   e,
		interval: interval,
		done:     make(chan struct{}),
	}
}

// Start launches the loop. Calling it again is a no-op.
func (m *refreshMonitor) Start() {
	if !m.started.CompareAndSwap(false, true) {
		return
	}
	m.wg.Add(1)
	go m.run()
}

func (m *refreshMonitor) run() {
	defer m.wg.Done()

	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			m.engine.refreshOnce(context.Background())
		case <-m.done:
			return
		}
	}
}

// Stop requests shutdown and waits for the loop goroutine to exit. Safe to
// call more than once, and safe to call without a prior Start.
func (m *refreshMonitor) Stop() {
	m.stopOnce.Do(func() {
		close(m.done)
	})
	m.wg.Wait()
}

// refreshOnce executes one refresh cycle. Every failure mode leaves the live
// policy exactly as it was: availability wins over freshness, and the next
// scheduled cycle is the only retry.
func (e *Engine) refreshOnce(ctx context.Context) {
	e.applyMu.Lock()
	defer e.applyMu.Unlock()

	data, err := e.store.Load(ctx, e.config.Refresh.Path)
	if errors.Is(err, store.ErrNotFound) {
		// No document is not an error: it means the policy was withdrawn.
		// Only act if a document had actually been applied before.
		if e.fingerprint != fingerprintNone {
			e.clearPolicyLocked()
			e.fingerprint = fingerprintNone
			e.metricInc(MetricPolicyCleared)
			e.auditEmit(ctx, AuditEvent{
				EventType: AuditPolicyCleared,
				Path:      e.config.Refresh.Path,
				Success:   true,
			})
		}
		return
	}
	if err != nil {
		e.metricInc(MetricUpdateAuthorizationFailed)
		e.auditEmit(ctx, AuditEvent{
			EventType: AuditPolicyUpdateFailed,
			Path:      e.config.Refresh.Path,
			Error:     err.Error(),
		})
		return
	}

	sum := int64(crc32.ChecksumIEEE(data))
	if sum == e.fingerprint {
		e.metricInc(MetricPolicyUnchanged)
		return
	}

	doc, err := DecodeDocument(data)
	if err != nil {
		e.metricInc(MetricUpdateAuthorizationFailed)
		e.auditEmit(ctx, AuditEvent{
			EventType: AuditPolicyUpdateFailed,
			Path:      e.config.Refresh.Path,
			Error:     err.Error(),
		})
		return
	}

	e.applyDocumentLocked(doc)
	e.fingerprint = sum
	e.metricInc(MetricPolicyApplied)
	e.auditEmit(ctx, AuditEvent{
		EventType: AuditPolicyApplied,
		Path:      e.config.Refresh.Path,
		Shadow:    doc.Shadow,
		Success:   true,
	})
}

// applyDocumentLocked republishes the permission index from doc. Caller holds
// applyMu.
//
// The fresh index is computed aside, then pushed into the live map with the
// add-before-remove discipline: new and changed grants first, then the shadow
// flag, then removal of stale entries. An identity authorized both before and
// after the update can therefore never observe a spurious rejection
// mid-apply, and a shadow transition never lands in a window with neither
// old nor new grants visible.
func (e *Engine) applyDocumentLocked(doc *Document) {
	next := make(map[identity.Identity]Permission, len(doc.Rules))
	for _, rule := range doc.Rules {
		for _, id := range rule.Identities {
			next[id] |= rule.Permission
		}
	}

	for id, perm := range next {
		if _, existed := e.permissions.Swap(id, perm); !existed {
			e.permCount.Add(1)
		}
	}

	e.shadow.Store(doc.Shadow)

	e.permissions.Range(func(key, _ any) bool {
		id := key.(identity.Identity)
		if _, keep := next[id]; !keep {
			e.permissions.Delete(id)
			e.permCount.Add(-1)
		}
		return true
	})
}

// clearPolicyLocked empties the index and re-enables shadow mode. Shadow goes
// first so a concurrent decision between the two steps fails open rather than
// closed. Caller holds applyMu.
func (e *Engine) clearPolicyLocked() {
	e.shadow.Store(true)
	e.permissions.Range(func(key, _ any) bool {
		e.permissions.Delete(key)
		e.permCount.Add(-1)
		return true
	})
}
