package queue

import (
	"fmt"

	"github.com/hibiken/asynq"
	jsoniter "github.com/json-iterator/go"

	"buyback/internal/domain/entity"
)

const (
	TypeBuyRequestEvent    = "buyrequest:event"
	QueueNotifications     = "notifications"
	notificationMaxRetries = 5
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary //nolint:gochecknoglobals // skip

func NewEventTask(event entity.LifecycleEvent) (*asynq.Task, error) {
	payload, err := json.Marshal(event)
	if err != nil {
		return nil, fmt.Errorf("json.Marshal: %w", err)
	}

	return asynq.NewTask(
		TypeBuyRequestEvent,
		payload,
		asynq.Queue(QueueNotifications),
		asynq.MaxRetry(notificationMaxRetries),
	), nil
}

func ParseEventTask(task *asynq.Task) (entity.LifecycleEvent, error) {
	var event entity.LifecycleEvent

	if err := json.Unmarshal(task.Payload(), &event); err != nil {
		return entity.LifecycleEvent{}, fmt.Errorf("json.Unmarshal: %w", err)
	}

	return event, nil
}
