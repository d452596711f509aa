package store

import (
	"context"
	"errors"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestStore(t *testing.T) (*Redis, *miniredis.Miniredis, func()) {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis run failed: %v", err)
	}

	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return NewRedis(rdb), mr, func() {
		_ = rdb.Close()
		mr.Close()
	}
}

func TestLoadReturnsStoredBytes(t *testing.T) {
	s, mr, done := newTestStore(t)
	defer done()

	mr.Set("/zookeeper/auth/acls", `{"acl":[],"shadow":true}`)

	data, err := s.Load(context.Background(), "/zookeeper/auth/acls")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if string(data) != `{"acl":[],"shadow":true}` {
		t.Fatalf("unexpected bytes: %s", data)
	}
}

func TestLoadMissingKeyIsNotFound(t *testing.T) {
	s, _, done := newTestStore(t)
	defer done()

	_, err := s.Load(context.Background(), "/zookeeper/auth/acls")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestLoadBackendErrorIsNotNotFound(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis run failed: %v", err)
	}
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	s := NewRedis(rdb)
	mr.Close()

	_, err = s.Load(context.Background(), "/zookeeper/auth/acls")
	if err == nil {
		t.Fatal("expected error after backend shutdown")
	}
	if errors.Is(err, ErrNotFound) {
		t.Fatalf("backend failure must not map to ErrNotFound, got %v", err)
	}
	_ = rdb.Close()
}
