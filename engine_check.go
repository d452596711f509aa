package goAdmit

import (
	"time"

	"github.com/MrEthical07/goAdmit/identity"
)

// AuthorizationResult is the outcome of one connection-admission check.
type AuthorizationResult struct {
	// Authorized reports whether some presented identity matched the
	// permission index (or the applicable policy default matched, for null
	// identities and empty indexes).
	Authorized bool
	// Shadow reports whether shadow mode was in effect for this decision.
	Shadow bool
	// AuthorizedIdentity is the first presented identity found in the index,
	// or nil when the decision came from a policy default or no identity
	// matched. Shadow acceptance never fabricates an identity here.
	AuthorizedIdentity *identity.Identity
}

// IsAccepted is the externally meaningful outcome: the connection proceeds
// when it is authorized or when shadow mode lets it through for observation.
func (r AuthorizationResult) IsAccepted() bool {
	return r.Authorized || r.Shadow
}

// CheckConnectPermission decides whether a connection presenting the given
// identities may proceed. It has no error path: nil identities, an empty
// index, and garbage input all resolve to the configured policy default. The
// only side effects are metric counters and best-effort audit events.
//
// The identity list is scanned in order; the first identity present in the
// index authorizes the connection regardless of which permission bits it
// holds; any grant at all is what admits a connection.
func (e *Engine) CheckConnectPermission(ids *identity.Identities) AuthorizationResult {
	var start time.Time
	if e.metrics.LatencyEnabled() {
		start = time.Now()
	}

	shadowEnabled := e.forceShadowMode.Load() || e.shadow.Load()

	var authorized bool
	var authorizedID *identity.Identity

	switch {
	case ids.Len() == 0:
		authorized = !e.rejectNullIdentity.Load()
	case e.permCount.Load() == 0:
		authorized = !e.rejectWithoutACLDefinition.Load()
	default:
		for _, id := range ids.Ids() {
			if _, ok := e.permissions.Load(id); ok {
				matched := id
				authorized = true
				authorizedID = &matched
				break
			}
		}
	}

	switch {
	case authorized && shadowEnabled:
		e.metricInc(MetricConnectionAuthorizedShadow)
	case !authorized && shadowEnabled:
		e.metricInc(MetricConnectionUnauthorizedShadow)
	case authorized:
		e.metricInc(MetricConnectionAuthorized)
	default:
		e.metricInc(MetricConnectionUnauthorized)
	}

	result := AuthorizationResult{
		Authorized:         authorized,
		Shadow:             shadowEnabled,
		AuthorizedIdentity: authorizedID,
	}

	if !result.IsAccepted() || (e.config.Audit.LogAccepted && e.audit != nil) {
		eventType := AuditConnectionAccepted
		if !result.IsAccepted() {
			eventType = AuditConnectionRejected
		}
		e.auditTryEmit(AuditEvent{
			EventType: eventType,
			Identity:  ids.String(),
			Shadow:    shadowEnabled,
			Success:   result.IsAccepted(),
		})
	}

	if e.metrics.LatencyEnabled() {
		e.metrics.Observe(MetricCheckLatency, time.Since(start))
	}

	return result
}

// IsAdmin reports whether any presented identity holds the admin bit in the
// live index. Absence from the index and presence without the admin bit both
// count as non-admin for that identity; one admin identity is sufficient.
func (e *Engine) IsAdmin(ids *identity.Identities) bool {
	if ids.Len() == 0 {
		return false
	}

	for _, id := range ids.Ids() {
		value, ok := e.permissions.Load(id)
		if !ok {
			continue
		}
		if value.(Permission).Has(PermAdmin) {
			return true
		}
	}
	return false
}
