package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// ErrNotFound reports that no document exists at the requested path. The
// engine treats it as "policy cleared", not as a failure.
var ErrNotFound = errors.New("no document at path")

// Redis reads the ACL document from a Redis-compatible store, keyed by path.
type Redis struct {
	client redis.UniversalClient
}

// NewRedis creates a Redis document store over the given client.
func NewRedis(client redis.UniversalClient) *Redis {
	return &Redis{client: client}
}

// Load returns the document bytes stored at path. A missing key maps to
// [ErrNotFound]; every other failure is returned as-is for the caller to
// count and retry on the next cycle.
func (s *Redis) Load(ctx context.Context, path string) ([]byte, error) {
	data, err := s.client.Get(ctx, path).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
	}
	if err != nil {
		return nil, fmt.Errorf("load document at %s: %w", path, err)
	}
	return data, nil
}
