package entity

import "time"

type EventType string

const (
	EventCreated         EventType = "created"
	EventStatusChanged   EventType = "status_changed"
	EventCancelledByUser EventType = "cancelled_by_user"
)

// LifecycleEvent описывает событие жизненного цикла заявки. Используется только для уведомлений.
type LifecycleEvent struct {
	Type         EventType        `json:"type"`
	BuyRequestID string           `json:"buyRequestId"`
	Status       BuyRequestStatus `json:"status"`
	Actor        string           `json:"actor,omitempty"`
	CustomerName string           `json:"customerName"`
	ModelName    string           `json:"modelName"`
	BuyPrice     int64            `json:"buyPrice"`
	Currency     string           `json:"currency"`
	OccurredAt   time.Time        `json:"occurredAt"`
}

func NewLifecycleEvent(t EventType, r BuyRequest, actor string, at time.Time) LifecycleEvent {
	return LifecycleEvent{
		Type:         t,
		BuyRequestID: r.ID,
		Status:       r.Status.Normalized(),
		Actor:        actor,
		CustomerName: r.CustomerName,
		ModelName:    r.ModelName,
		BuyPrice:     r.BuyPrice,
		Currency:     r.Currency,
		OccurredAt:   at,
	}
}
