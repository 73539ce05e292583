package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Reminder marks survive slightly past the next daily run so a restart
// mid-cycle cannot double-send.
const reminderTTL = 26 * time.Hour

// ReminderDedup guards against sending a debtor more than one payment
// reminder per day. Key format: reminder:<user_id>:<yyyy-mm-dd>
type ReminderDedup struct {
	client *redis.Client
}

func NewReminderDedup(client *redis.Client) *ReminderDedup {
	return &ReminderDedup{client: client}
}

// AlreadySent reports whether userID was reminded on the given day.
func (d *ReminderDedup) AlreadySent(ctx context.Context, userID string, day time.Time) (bool, error) {
	n, err := d.client.Exists(ctx, d.key(userID, day)).Result()
	if err != nil {
		return false, fmt.Errorf("reminder dedup check: %w", err)
	}
	return n > 0, nil
}

// MarkSent records that userID was reminded on the given day.
func (d *ReminderDedup) MarkSent(ctx context.Context, userID string, day time.Time) error {
	return d.client.Set(ctx, d.key(userID, day), "1", reminderTTL).Err()
}

func (d *ReminderDedup) key(userID string, day time.Time) string {
	return fmt.Sprintf("reminder:%s:%s", userID, day.UTC().Format("2006-01-02"))
}
