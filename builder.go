package goAdmit

import "context"

// Builder assembles an Engine. Configure it with the WithX methods, then call
// Build exactly once. A Builder is not safe for concurrent use.
type Builder struct {
	config    Config
	store     DocumentStore
	auditSink AuditSink

	built bool
}

// New creates a Builder with the default configuration: refresh every 60s
// from /zookeeper/auth/acls, metrics on, audit off, all policy toggles off.
func New() *Builder {
	return &Builder{
		config: defaultConfig(),
	}
}

// WithConfig replaces the entire configuration.
func (b *Builder) WithConfig(cfg Config) *Builder {
	b.config = cloneConfig(cfg)
	return b
}

// WithStore sets the document store the refresher reads from. Required.
func (b *Builder) WithStore(s DocumentStore) *Builder {
	b.store = s
	return b
}

// WithAuditSink sets the sink receiving engine events. Only consulted when
// audit is enabled in the configuration.
func (b *Builder) WithAuditSink(sink AuditSink) *Builder {
	b.auditSink = sink
	return b
}

// WithMetricsEnabled toggles metric collection.
func (b *Builder) WithMetricsEnabled(enabled bool) *Builder {
	b.config.Metrics.Enabled = enabled
	return b
}

// WithLatencyHistograms toggles the check-latency histogram.
func (b *Builder) WithLatencyHistograms(enabled bool) *Builder {
	b.config.Metrics.EnableLatencyHistograms = enabled
	return b
}

// Build validates the configuration, constructs the engine, performs one
// synchronous refresh so the first connection already sees whatever policy is
// in the store, and starts the background monitor. The caller owns the
// returned engine and must Close it.
func (b *Builder) Build() (*Engine, error) {
	if b.built {
		return nil, ErrBuilderUsed
	}

	cfg := cloneConfig(b.config)

	if b.store == nil {
		return nil, ErrStoreRequired
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	engine := &Engine{
		config:      cfg,
		store:       b.store,
		fingerprint: fingerprintNone,
	}
	engine.shadow.Store(true)
	engine.rejectNullIdentity.Store(cfg.Policy.RejectNullIdentity)
	engine.rejectWithoutACLDefinition.Store(cfg.Policy.RejectWithoutACLDefinition)
	engine.forceShadowMode.Store(cfg.Policy.ForceShadowMode)

	engine.audit = newAuditDispatcher(cfg.Audit, b.auditSink)
	engine.metrics = NewMetrics(cfg.Metrics)

	engine.refreshOnce(context.Background())
	engine.monitor = newRefreshMonitor(engine, cfg.Refresh.Interval)
	engine.monitor.Start()

	b.built = true

	return engine, nil
}
