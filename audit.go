package goAdmit

import (
	"context"
	"encoding/json"
	"io"
	"sync"
	"time"
)

// Audit event types emitted by the engine.
const (
	// AuditPolicyApplied is emitted when a refresh cycle applies a new document.
	AuditPolicyApplied = "policy_applied"
	// AuditPolicyCleared is emitted when the refresher clears the policy after
	// the document disappeared from the store.
	AuditPolicyCleared = "policy_cleared"
	// AuditPolicyClearedAdmin is emitted when the management surface clears
	// the policy directly.
	AuditPolicyClearedAdmin = "policy_cleared_admin"
	// AuditPolicyUpdateFailed is emitted when a refresh cycle fails to read or
	// decode the document; the previous policy stays authoritative.
	AuditPolicyUpdateFailed = "policy_update_failed"
	// AuditConnectionRejected is emitted for connections rejected in live mode.
	AuditConnectionRejected = "connection_rejected"
	// AuditConnectionAccepted is emitted for accepted connections when
	// AuditConfig.LogAccepted is set.
	AuditConnectionAccepted = "connection_accepted"
)

// AuditEvent is one observability record emitted by the engine. The engine
// fills EventID with a fresh UUID when the emitter leaves it empty.
type AuditEvent struct {
	EventID   string            `json:"event_id,omitempty"`
	Timestamp time.Time         `json:"timestamp"`
	EventType string            `json:"event_type"`
	Identity  string            `json:"identity,omitempty"`
	Path      string            `json:"path,omitempty"`
	Shadow    bool              `json:"shadow,omitempty"`
	Success   bool              `json:"success"`
	Error     string            `json:"error,omitempty"`
	Metadata  map[string]string `json:"metadata,omitempty"`
}

// AuditSink receives engine events. Implementations must tolerate concurrent
// Emit calls; the dispatcher serializes them, but sinks are also usable
// standalone.
type AuditSink interface {
	Emit(ctx context.Context, event AuditEvent)
}

// NoOpSink discards every event.
type NoOpSink struct{}

// Emit discards the event.
func (NoOpSink) Emit(context.Context, AuditEvent) {}

// ChannelSink forwards events into a buffered channel, for tests and for
// callers that bridge events onto their own pipeline.
type ChannelSink struct {
	events chan AuditEvent
}

// NewChannelSink creates a ChannelSink with the given buffer size.
func NewChannelSink(buffer int) *ChannelSink {
	if buffer <= 0 {
		buffer = 1
	}
	return &ChannelSink{
		events: make(chan AuditEvent, buffer),
	}
}

// Emit forwards the event, giving up when ctx is done.
func (s *ChannelSink) Emit(ctx context.Context, event AuditEvent) {
	select {
	case s.events <- event:
	case <-ctx.Done():
	}
}

// Events exposes the receiving side of the channel.
func (s *ChannelSink) Events() <-chan AuditEvent {
	return s.events
}

// JSONWriterSink writes one JSON object per line to the wrapped writer.
type JSONWriterSink struct {
	writer io.Writer
	mu     sync.Mutex
}

// NewJSONWriterSink creates a JSONWriterSink over w.
func NewJSONWriterSink(w io.Writer) *JSONWriterSink {
	return &JSONWriterSink{
		writer: w,
	}
}

// Emit marshals and writes the event. Marshal and write failures are dropped;
// the audit stream is best-effort by design.
func (s *JSONWriterSink) Emit(ctx context.Context, event AuditEvent) {
	if s == nil || s.writer == nil {
		return
	}
	data, err := json.Marshal(event)
	if err != nil {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	_, _ = s.writer.Write(data)
	_, _ = s.writer.Write([]byte("\n"))
}
