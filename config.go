package goAdmit

import (
	"errors"
	"time"
)

// Config groups the engine's static configuration. Pass it through
// [Builder.WithConfig]; it is cloned at Build and never mutated afterwards.
// The three runtime policy toggles in PolicyConfig are only the initial
// values; they stay mutable at runtime through the management surface.
type Config struct {
	Policy  PolicyConfig
	Refresh RefreshConfig
	Audit   AuditConfig
	Metrics MetricsConfig
}

/*
====================================
POLICY CONFIG
====================================
*/

// PolicyConfig holds the initial values of the engine's runtime policy
// toggles. All three default to false: a fresh engine is compatible with an
// unauthorized status quo and fails open until a policy document says
// otherwise.
type PolicyConfig struct {
	// RejectNullIdentity rejects connections that present no identity at all.
	RejectNullIdentity bool
	// RejectWithoutACLDefinition rejects every connection while the
	// permission index is empty (no document applied, or policy cleared).
	RejectWithoutACLDefinition bool
	// ForceShadowMode overrides the document's shadow flag and accepts all
	// connections while still tallying them, for emergency rollback.
	ForceShadowMode bool
}

/*
====================================
REFRESH CONFIG
====================================
*/

// RefreshConfig controls the background policy refresher.
type RefreshConfig struct {
	// Path is the well-known store path holding the ACL document bytes.
	Path string
	// Interval is the poll interval between refresh cycles.
	Interval time.Duration
}

/*
====================================
AUDIT CONFIG
====================================
*/

// AuditConfig controls the async audit dispatcher.
type AuditConfig struct {
	Enabled    bool
	BufferSize int
	// DropIfFull drops events instead of blocking the emitter when the
	// buffer is full. The connection decision path always drops rather than
	// blocks, regardless of this setting.
	DropIfFull bool
	// LogAccepted also emits connection events for accepted connections.
	// Off by default; rejected connections are always event-worthy.
	LogAccepted bool
}

/*
====================================
METRICS CONFIG
====================================
*/

// MetricsConfig controls the lock-free metric counters.
type MetricsConfig struct {
	Enabled                 bool
	EnableLatencyHistograms bool
}

func defaultConfig() Config {
	return Config{
		Policy: PolicyConfig{
			RejectNullIdentity:         false,
			RejectWithoutACLDefinition: false,
			ForceShadowMode:            false,
		},
		Refresh: RefreshConfig{
			Path:     "/zookeeper/auth/acls",
			Interval: 60 * time.Second,
		},
		Audit: AuditConfig{
			Enabled:    false,
			BufferSize: 1024,
			DropIfFull: true,
		},
		Metrics: MetricsConfig{
			Enabled:                 true,
			EnableLatencyHistograms: false,
		},
	}
}

// cloneConfig exists for parity with reference fields added later; today a
// value copy is already deep.
func cloneConfig(cfg Config) Config {
	return cfg
}

/*
====================================
VALIDATION
====================================
*/

// Validate checks the configuration for values Build must refuse.
func (c *Config) Validate() error {
	if c.Refresh.Path == "" {
		return errors.New("Refresh Path must not be empty")
	}
	if c.Refresh.Interval <= 0 {
		return errors.New("Refresh Interval must be > 0")
	}
	if c.Audit.Enabled && c.Audit.BufferSize <= 0 {
		return errors.New("Audit BufferSize must be > 0 when Audit is enabled")
	}
	return nil
}
