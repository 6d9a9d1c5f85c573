package worker

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/hibiken/asynq"

	"buyback/internal/infrastructure/queue"
	"buyback/internal/transport/bot/view"
	"buyback/pkg/contextx"
	"buyback/pkg/logx"
)

type Notifier interface {
	SendHTML(ctx context.Context, text string) error
}

// Notifications доставляет события заявок в чат администраторов.
type Notifications struct {
	notifier Notifier
}

func NewNotifications(notifier Notifier) *Notifications {
	return &Notifications{notifier: notifier}
}

func (n *Notifications) Handle(ctx context.Context, task *asynq.Task) error {
	event, err := queue.ParseEventTask(task)
	if err != nil {
		// Битый payload не починится повтором.
		return fmt.Errorf("queue.ParseEventTask: %w: %w", err, asynq.SkipRetry)
	}

	ctx = contextx.WithLogger(ctx, logger(ctx).With(
		slog.String(logx.FieldEventType, string(event.Type)),
		slog.String(logx.FieldBuyRequestID, event.BuyRequestID),
	))

	if err := n.notifier.SendHTML(ctx, view.Event(event)); err != nil {
		return fmt.Errorf("notifier.SendHTML: %w", err)
	}

	logger(ctx).Info("admin notified")

	return nil
}
