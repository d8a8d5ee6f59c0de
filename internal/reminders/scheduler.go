package reminders

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/stocknote/stocknote-backend/internal/orders"
)

const notificationIDPrefix = "order_reminder_"

// NewNotificationID mints a queue identity for one order reminder.
func NewNotificationID() string {
	return notificationIDPrefix + uuid.NewString()
}

// Payload is the JSON blob stored alongside each queued reminder. The sweep
// turns it into a notification row once the due time passes.
type Payload struct {
	NotificationID string    `json:"notification_id"`
	OrderID        uuid.UUID `json:"order_id"`
	Due            time.Time `json:"due"`
	Message        string    `json:"message"`
}

// queueStore defines the redis operations the reminder queue needs.
type queueStore interface {
	ZAdd(ctx context.Context, key string, score float64, member string) error
	ZRem(ctx context.Context, key string, members ...string) error
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
	ReminderQueueKey() string
	ReminderPayloadKey(notificationID string) string
}

// Scheduler queues order reminders in a redis sorted set scored by due time.
type Scheduler struct {
	store queueStore
}

// NewScheduler builds a reminder scheduler over the provided store.
func NewScheduler(store queueStore) (*Scheduler, error) {
	if store == nil {
		return nil, fmt.Errorf("reminder store required")
	}
	return &Scheduler{store: store}, nil
}

// Schedule queues or requeues a reminder. ZADD on an existing member only
// moves its score, so rescheduling under the same id is a plain re-add.
func (s *Scheduler) Schedule(ctx context.Context, req orders.ReminderRequest) (string, error) {
	if req.OrderID == uuid.Nil {
		return "", fmt.Errorf("order id required")
	}
	if req.Due.IsZero() {
		return "", fmt.Errorf("due time required")
	}

	notificationID := req.NotificationID
	if notificationID == "" {
		notificationID = NewNotificationID()
	}

	payload, err := json.Marshal(Payload{
		NotificationID: notificationID,
		OrderID:        req.OrderID,
		Due:            req.Due.UTC(),
		Message:        req.Message,
	})
	if err != nil {
		return "", fmt.Errorf("encode reminder payload: %w", err)
	}

	if err := s.store.Set(ctx, s.store.ReminderPayloadKey(notificationID), payload, 0); err != nil {
		return "", fmt.Errorf("store reminder payload: %w", err)
	}
	if err := s.store.ZAdd(ctx, s.store.ReminderQueueKey(), float64(req.Due.UTC().Unix()), notificationID); err != nil {
		return "", fmt.Errorf("queue reminder: %w", err)
	}
	return notificationID, nil
}

// Cancel removes a queued reminder and its payload. Canceling an already
// swept or unknown id is a no-op.
func (s *Scheduler) Cancel(ctx context.Context, notificationID string) error {
	if notificationID == "" {
		return nil
	}
	if err := s.store.ZRem(ctx, s.store.ReminderQueueKey(), notificationID); err != nil {
		return fmt.Errorf("dequeue reminder: %w", err)
	}
	if err := s.store.Del(ctx, s.store.ReminderPayloadKey(notificationID)); err != nil {
		return fmt.Errorf("drop reminder payload: %w", err)
	}
	return nil
}
