package reminders

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/stocknote/stocknote-backend/pkg/db/models"
	"github.com/stocknote/stocknote-backend/pkg/enums"
	"github.com/stocknote/stocknote-backend/pkg/logger"
	"github.com/stocknote/stocknote-backend/pkg/metrics"
)

const sweepJobName = "reminder_sweep"

const defaultSweepBatch = 100

// sweepStore adds the range read the sweep needs on top of the queue store.
type sweepStore interface {
	queueStore
	ZRangeByScoreMax(ctx context.Context, key string, max float64, count int64) ([]string, error)
	Get(ctx context.Context, key string) (string, error)
}

// NotificationCreator persists swept reminders as notification rows.
type NotificationCreator interface {
	Create(ctx context.Context, notification *models.Notification) error
}

// SweepJobParams configure the reminder sweep.
type SweepJobParams struct {
	Store         sweepStore
	Notifications NotificationCreator
	Logger        *logger.Logger
	Metrics       *metrics.JobMetrics
	Batch         int
	Clock         func() time.Time
}

// SweepJob drains due reminders from the queue into the notifications table.
type SweepJob struct {
	store         sweepStore
	notifications NotificationCreator
	logg          *logger.Logger
	metrics       *metrics.JobMetrics
	batch         int
	clock         func() time.Time
}

// NewSweepJob builds the reminder sweep job.
func NewSweepJob(params SweepJobParams) (*SweepJob, error) {
	if params.Store == nil {
		return nil, fmt.Errorf("reminder store required")
	}
	if params.Notifications == nil {
		return nil, fmt.Errorf("notification creator required")
	}
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	batch := params.Batch
	if batch <= 0 {
		batch = defaultSweepBatch
	}
	clock := params.Clock
	if clock == nil {
		clock = time.Now
	}
	return &SweepJob{
		store:         params.Store,
		notifications: params.Notifications,
		logg:          params.Logger,
		metrics:       params.Metrics,
		batch:         batch,
		clock:         clock,
	}, nil
}

func (j *SweepJob) Name() string {
	return sweepJobName
}

// Run pops every reminder whose due time has passed and writes one
// notification per reminder. Queue entries are removed only after the row
// persists, so a failed write retries next cycle.
func (j *SweepJob) Run(ctx context.Context) error {
	now := j.clock().UTC()
	due, err := j.store.ZRangeByScoreMax(ctx, j.store.ReminderQueueKey(), float64(now.Unix()), int64(j.batch))
	if err != nil {
		return fmt.Errorf("read due reminders: %w", err)
	}
	if len(due) == 0 {
		return nil
	}

	swept := 0
	for _, notificationID := range due {
		if err := j.sweepOne(ctx, notificationID); err != nil {
			j.logg.Error(j.logg.WithField(ctx, "notification_id", notificationID), "sweep reminder", err)
			continue
		}
		swept++
	}
	if j.metrics != nil {
		j.metrics.AddProcessed(sweepJobName, swept)
	}
	j.logg.Info(j.logg.WithField(ctx, "swept", swept), "reminder sweep cycle done")
	return nil
}

func (j *SweepJob) sweepOne(ctx context.Context, notificationID string) error {
	payloadKey := j.store.ReminderPayloadKey(notificationID)
	raw, err := j.store.Get(ctx, payloadKey)
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			// Orphaned queue entry; drop it.
			return j.store.ZRem(ctx, j.store.ReminderQueueKey(), notificationID)
		}
		return fmt.Errorf("load payload: %w", err)
	}

	var payload Payload
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		j.logg.Error(ctx, "reminder payload corrupt, dropping", err)
		if err := j.store.ZRem(ctx, j.store.ReminderQueueKey(), notificationID); err != nil {
			return err
		}
		return j.store.Del(ctx, payloadKey)
	}

	link := fmt.Sprintf("/orders/%s", payload.OrderID)
	notification := &models.Notification{
		Type:    enums.NotificationTypeOrderReminder,
		Title:   "Order reminder",
		Message: payload.Message,
		Link:    &link,
	}
	if err := j.notifications.Create(ctx, notification); err != nil {
		return fmt.Errorf("create notification: %w", err)
	}

	if err := j.store.ZRem(ctx, j.store.ReminderQueueKey(), notificationID); err != nil {
		return err
	}
	return j.store.Del(ctx, payloadKey)
}
