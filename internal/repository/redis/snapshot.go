package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/redis/go-redis/v9"
)

// ErrSnapshotNotFound is returned when no snapshot is stored for a world.
var ErrSnapshotNotFound = errors.New("snapshot not found")

const (
	snapshotPrefix = "world:"
	snapshotSuffix = ":snapshot"
)

func snapshotKey(worldID string) string { return snapshotPrefix + worldID + snapshotSuffix }

// GetSnapshot retrieves the JSON snapshot published for a world.
func (c *Client) GetSnapshot(ctx context.Context, worldID string) (json.RawMessage, error) {
	data, err := c.rdb.Get(ctx, snapshotKey(worldID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("world %q: %w", worldID, ErrSnapshotNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get snapshot: %w", err)
	}
	return json.RawMessage(data), nil
}

// Worlds lists the ids of every world with a published snapshot, sorted.
func (c *Client) Worlds(ctx context.Context) ([]string, error) {
	var worlds []string
	iter := c.rdb.Scan(ctx, 0, snapshotKey("*"), 100).Iterator()
	for iter.Next(ctx) {
		key := iter.Val()
		worlds = append(worlds, strings.TrimSuffix(strings.TrimPrefix(key, snapshotPrefix), snapshotSuffix))
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("scan snapshots: %w", err)
	}
	sort.Strings(worlds)
	return worlds, nil
}
