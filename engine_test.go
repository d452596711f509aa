package goAdmit

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/MrEthical07/goAdmit/store"
)

// stubStore is an in-memory DocumentStore with fault injection for tests.
type stubStore struct {
	mu   sync.Mutex
	data map[string][]byte
	err  error
}

func newStubStore() *stubStore {
	return &stubStore{data: make(map[string][]byte)}
}

func (s *stubStore) Load(_ context.Context, path string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	data, ok := s.data[path]
	if !ok {
		return nil, store.ErrNotFound
	}
	out := make([]byte, len(data))
	copy(out, data)
	return out, nil
}

func (s *stubStore) put(path, doc string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[path] = []byte(doc)
}

func (s *stubStore) remove(path string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, path)
}

func (s *stubStore) fail(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = err
}

const testPath = "/zookeeper/auth/acls"

func testConfig() Config {
	cfg := defaultConfig()
	cfg.Refresh.Path = testPath
	// Long interval: tests drive refreshOnce directly.
	cfg.Refresh.Interval = time.Hour
	return cfg
}

// buildTestEngine seeds the stub store with doc (if non-empty), builds an
// engine over it, and registers cleanup.
func buildTestEngine(t *testing.T, doc string, mutate func(*Config)) (*Engine, *stubStore) {
	t.Helper()

	st := newStubStore()
	if doc != "" {
		st.put(testPath, doc)
	}

	cfg := testConfig()
	if mutate != nil {
		mutate(&cfg)
	}

	engine, err := New().WithConfig(cfg).WithStore(st).Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	t.Cleanup(engine.Close)

	return engine, st
}

func counterValue(t *testing.T, e *Engine, id MetricID) uint64 {
	t.Helper()
	return e.MetricsSnapshot().Counters[id]
}

func TestEngineCloseIsIdempotent(t *testing.T) {
	engine, _ := buildTestEngine(t, sampleDocument, nil)
	engine.Close()
	engine.Close()
}

func TestEngineNilSafeAccessors(t *testing.T) {
	var e *Engine
	if e.PermissionCount() != 0 {
		t.Fatal("nil engine must report an empty index")
	}
	if !e.ShadowEnabled() {
		t.Fatal("nil engine must report shadow mode")
	}
	if e.AuditDropped() != 0 {
		t.Fatal("nil engine must report zero dropped events")
	}
	e.Close()
}

func TestStoreErrorSurfacesAsFailureNotPanic(t *testing.T) {
	engine, st := buildTestEngine(t, sampleDocument, nil)
	if engine.PermissionCount() == 0 {
		t.Fatal("expected seeded policy")
	}

	st.fail(errors.New("backend down"))
	engine.refreshOnce(context.Background())

	if engine.PermissionCount() == 0 {
		t.Fatal("store failure must keep the previous policy")
	}
	if got := counterValue(t, engine, MetricUpdateAuthorizationFailed); got != 1 {
		t.Fatalf("expected 1 failed update, got %d", got)
	}
}
