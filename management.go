package goAdmit

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
)

/*
====================================
TYPED TOGGLE SURFACE
====================================
*/

// RejectNullIdentity reports whether connections without any identity are
// rejected.
func (e *Engine) RejectNullIdentity() bool {
	return e.rejectNullIdentity.Load()
}

// SetRejectNullIdentity updates the null-identity policy toggle.
func (e *Engine) SetRejectNullIdentity(v bool) {
	e.rejectNullIdentity.Store(v)
}

// RejectWithoutACLDefinition reports whether connections are rejected while
// the permission index is empty.
func (e *Engine) RejectWithoutACLDefinition() bool {
	return e.rejectWithoutACLDefinition.Load()
}

// SetRejectWithoutACLDefinition updates the empty-index policy toggle.
func (e *Engine) SetRejectWithoutACLDefinition(v bool) {
	e.rejectWithoutACLDefinition.Store(v)
}

// ForceShadowMode reports whether the emergency shadow override is active.
func (e *Engine) ForceShadowMode() bool {
	return e.forceShadowMode.Load()
}

// SetForceShadowMode updates the emergency shadow override.
func (e *Engine) SetForceShadowMode(v bool) {
	e.forceShadowMode.Store(v)
}

// ClearACLConfigs empties the permission index and forces shadow mode
// immediately, bypassing the refresh cycle. The document fingerprint is
// deliberately left alone: the cleared state holds until the stored document
// bytes actually change, so an operator clear cannot be silently undone by
// the next poll of an unchanged document.
func (e *Engine) ClearACLConfigs() {
	e.applyMu.Lock()
	defer e.applyMu.Unlock()

	e.clearPolicyLocked()
	e.metricInc(MetricPolicyCleared)
	e.auditEmit(context.Background(), AuditEvent{
		EventType: AuditPolicyClearedAdmin,
		Success:   true,
	})
}

/*
====================================
STRING-ENCODED MANAGEMENT ADAPTER
====================================
*/

// Toggle names accepted by the Management surface.
const (
	ToggleRejectNullIdentity         = "rejectNullIdentity"
	ToggleRejectWithoutACLDefinition = "rejectWithoutAclDefinition"
	ToggleForceShadowMode            = "forceShadowMode"
)

// Management is the string-encoded view of the engine's runtime toggles, for
// binding to an external administrative transport. Values cross the boundary
// as strings so the transport needs no schema beyond toggle names.
type Management struct {
	engine *Engine
}

// NewManagement wraps the engine's management operations.
func NewManagement(e *Engine) *Management {
	return &Management{engine: e}
}

// Get returns the string-encoded value of the named toggle.
func (m *Management) Get(name string) (string, error) {
	switch name {
	case ToggleRejectNullIdentity:
		return strconv.FormatBool(m.engine.RejectNullIdentity()), nil
	case ToggleRejectWithoutACLDefinition:
		return strconv.FormatBool(m.engine.RejectWithoutACLDefinition()), nil
	case ToggleForceShadowMode:
		return strconv.FormatBool(m.engine.ForceShadowMode()), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownToggle, name)
	}
}

// Set parses value as a boolean and updates the named toggle.
func (m *Management) Set(name, value string) error {
	v, err := strconv.ParseBool(value)
	if err != nil {
		return fmt.Errorf("toggle %s: %w", name, err)
	}
	switch name {
	case ToggleRejectNullIdentity:
		m.engine.SetRejectNullIdentity(v)
	case ToggleRejectWithoutACLDefinition:
		m.engine.SetRejectWithoutACLDefinition(v)
	case ToggleForceShadowMode:
		m.engine.SetForceShadowMode(v)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownToggle, name)
	}
	return nil
}

// ClearACLConfigs delegates to the engine's immediate policy clear.
func (m *Management) ClearACLConfigs() {
	m.engine.ClearACLConfigs()
}

// Handler returns an http.Handler exposing the management surface:
//
//	GET  /toggles/{name}  — current value, text/plain "true"/"false"
//	PUT  /toggles/{name}  — body is the new boolean value
//	POST /clear           — clear all ACLs, force shadow mode
//
// Callers mount it on whatever admin mux they already protect; it performs no
// authentication of its own.
func (m *Management) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/toggles/", func(w http.ResponseWriter, r *http.Request) {
		name := strings.TrimPrefix(r.URL.Path, "/toggles/")

		switch r.Method {
		case http.MethodGet:
			value, err := m.Get(name)
			if err != nil {
				http.Error(w, err.Error(), http.StatusNotFound)
				return
			}
			w.Header().Set("Content-Type", "text/plain; charset=utf-8")
			_, _ = io.WriteString(w, value+"\n")
		case http.MethodPut:
			body, err := io.ReadAll(io.LimitReader(r.Body, 64))
			if err != nil {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			if err := m.Set(name, strings.TrimSpace(string(body))); err != nil {
				status := http.StatusBadRequest
				if errors.Is(err, ErrUnknownToggle) {
					status = http.StatusNotFound
				}
				http.Error(w, err.Error(), status)
				return
			}
			w.WriteHeader(http.StatusNoContent)
		default:
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		}
	})

	mux.HandleFunc("/clear", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		m.ClearACLConfigs()
		w.WriteHeader(http.StatusNoContent)
	})

	return mux
}
