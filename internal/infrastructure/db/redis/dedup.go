package redis

import (
	"context"
	"fmt"
	"hash/fnv"
	"time"

	"github.com/redis/go-redis/v9"
)

const dedupTTL = time.Hour

// NotificationDedup suppresses duplicate notification sends backed by Redis.
// Key format: notify:<message_hash>:<recipient>
type NotificationDedup struct {
	client *redis.Client
}

// NewNotificationDedup creates a NotificationDedup wrapping the given Redis client.
func NewNotificationDedup(client *redis.Client) *NotificationDedup {
	return &NotificationDedup{client: client}
}

// IsDuplicate reports whether this exact message was already sent to
// recipient within the dedup window.
func (d *NotificationDedup) IsDuplicate(ctx context.Context, recipient, subject, body string) (bool, error) {
	n, err := d.client.Exists(ctx, d.key(recipient, subject, body)).Result()
	if err != nil {
		return false, fmt.Errorf("dedup check: %w", err)
	}
	return n > 0, nil
}

// Mark records that this message went out (expires after dedupTTL).
func (d *NotificationDedup) Mark(ctx context.Context, recipient, subject, body string) error {
	return d.client.Set(ctx, d.key(recipient, subject, body), "1", dedupTTL).Err()
}

func (d *NotificationDedup) key(recipient, subject, body string) string {
	h := fnv.New32a()
	_, _ = h.Write([]byte(subject))
	_, _ = h.Write([]byte(body))
	return fmt.Sprintf("notify:%08X:%s", h.Sum32(), recipient)
}
