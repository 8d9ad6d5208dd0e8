package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	pkgerrors "github.com/paketshop/storefront-backend/pkg/errors"
	"github.com/paketshop/storefront-backend/pkg/redis"
)

// ErrCorruptSnapshot marks a stored snapshot that no longer parses. Callers
// treat it as an empty cart rather than failing the request.
var ErrCorruptSnapshot = errors.New("cart snapshot is corrupt")

// SnapshotStore persists cart contents between requests, keyed by session.
type SnapshotStore interface {
	Load(ctx context.Context, sessionID string) (Lines, error)
	Save(ctx context.Context, sessionID string, lines Lines) error
	Delete(ctx context.Context, sessionID string) error
}

type redisSnapshots struct {
	client *redis.Client
	ttl    time.Duration
}

// NewSnapshotStore builds a Redis-backed snapshot store. Snapshots expire
// after ttl of inactivity; every save refreshes the clock.
func NewSnapshotStore(client *redis.Client, ttl time.Duration) (SnapshotStore, error) {
	if client == nil {
		return nil, fmt.Errorf("redis client required")
	}
	return &redisSnapshots{client: client, ttl: ttl}, nil
}

func (s *redisSnapshots) Load(ctx context.Context, sessionID string) (Lines, error) {
	raw, err := s.client.Get(ctx, s.client.CartKey(sessionID))
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "failed to load cart snapshot")
	}

	var lines Lines
	if err := json.Unmarshal([]byte(raw), &lines); err != nil {
		return nil, ErrCorruptSnapshot
	}
	return lines, nil
}

func (s *redisSnapshots) Save(ctx context.Context, sessionID string, lines Lines) error {
	payload, err := json.Marshal(lines)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "failed to encode cart snapshot")
	}
	if err := s.client.Set(ctx, s.client.CartKey(sessionID), payload, s.ttl); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "failed to save cart snapshot")
	}
	return nil
}

func (s *redisSnapshots) Delete(ctx context.Context, sessionID string) error {
	if err := s.client.Del(ctx, s.client.CartKey(sessionID)); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "failed to delete cart snapshot")
	}
	return nil
}
