package queue

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/hibiken/asynq"

	"buyback/internal/domain/entity"
	"buyback/pkg/contextx"
	"buyback/pkg/logx"
)

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals // skip

type Enqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// Publisher кладёт события жизненного цикла в очередь уведомлений.
type Publisher struct {
	client Enqueuer
}

func NewPublisher(client Enqueuer) *Publisher {
	return &Publisher{client: client}
}

func (p *Publisher) Publish(ctx context.Context, event entity.LifecycleEvent) error {
	task, err := NewEventTask(event)
	if err != nil {
		return fmt.Errorf("NewEventTask: %w", err)
	}

	info, err := p.client.EnqueueContext(ctx, task)
	if err != nil {
		return fmt.Errorf("client.EnqueueContext: %w", err)
	}

	logger(ctx).Debug("lifecycle event enqueued",
		slog.String(logx.FieldEventType, string(event.Type)),
		slog.String(logx.FieldBuyRequestID, event.BuyRequestID),
		slog.String(logx.FieldTaskID, info.ID),
	)

	return nil
}
