package buyrequest

import (
	"context"
	"log/slog"
	"time"

	"buyback/internal/domain/entity"
	"buyback/pkg/logx"
)

type Repository interface {
	GetByID(ctx context.Context, id string) (*entity.BuyRequest, error)
	// GetByIDAndOwner отдаёт ту же ошибку NotFound, что и GetByID, если владелец другой.
	GetByIDAndOwner(ctx context.Context, id, ownerEmail string) (*entity.BuyRequest, error)
	List(ctx context.Context, filter entity.BuyRequestFilter, offset, limit int) ([]entity.BuyRequest, error)
	Count(ctx context.Context, filter entity.BuyRequestFilter) (int, error)
	Insert(ctx context.Context, r *entity.BuyRequest) error
	Update(ctx context.Context, r *entity.BuyRequest) error
	Delete(ctx context.Context, id string) error
}

type PriceCatalog interface {
	// FindActiveByID возвращает nil, если позиции нет или она выключена.
	FindActiveByID(ctx context.Context, id string) (*entity.ModelPrice, error)
}

type ShippingSource interface {
	// CurrentShippingInfo возвращает nil, если адрес приёма не настроен.
	CurrentShippingInfo(ctx context.Context) *entity.ShippingInfo
}

type ShippingSourceFunc func(ctx context.Context) *entity.ShippingInfo

func (f ShippingSourceFunc) CurrentShippingInfo(ctx context.Context) *entity.ShippingInfo {
	return f(ctx)
}

type Clock interface {
	Now() time.Time
}

type ClockFunc func() time.Time

func (f ClockFunc) Now() time.Time {
	return f()
}

type EventPublisher interface {
	Publish(ctx context.Context, event entity.LifecycleEvent) error
}

type MetricsRecorder interface {
	RequestCreated(category entity.DeviceCategory)
	StatusChanged(status entity.BuyRequestStatus, actor string)
}

// Service ведёт жизненный цикл заявки на выкуп: переходы статусов, историю,
// отметки времени и снимок адреса доставки.
type Service struct {
	repo      Repository
	catalog   PriceCatalog
	shipping  ShippingSource
	clock     Clock
	publisher EventPublisher
	metrics   MetricsRecorder
}

func NewService(
	repo Repository,
	catalog PriceCatalog,
	shipping ShippingSource,
) *Service {
	return &Service{
		repo:      repo,
		catalog:   catalog,
		shipping:  shipping,
		clock:     ClockFunc(time.Now),
		publisher: nopPublisher{},
		metrics:   nopMetrics{},
	}
}

func (s *Service) WithClock(c Clock) *Service {
	s.clock = c
	return s
}

func (s *Service) WithPublisher(p EventPublisher) *Service {
	s.publisher = p
	return s
}

func (s *Service) WithMetrics(m MetricsRecorder) *Service {
	s.metrics = m
	return s
}

// transitionTime не даёт истории пойти назад во времени.
func (s *Service) transitionTime(r *entity.BuyRequest) time.Time {
	now := s.clock.Now().UTC()

	if last, ok := r.StatusHistory.Last(); ok && now.Before(last.ChangedAt) {
		return last.ChangedAt
	}

	return now
}

// publish никогда не роняет операцию: уведомление вторично.
func (s *Service) publish(ctx context.Context, event entity.LifecycleEvent) {
	if err := s.publisher.Publish(ctx, event); err != nil {
		logger(ctx).Warn("failed to publish lifecycle event",
			slog.String(logx.FieldEventType, string(event.Type)),
			slog.String(logx.FieldBuyRequestID, event.BuyRequestID),
			logx.Error(err),
		)
	}
}

type nopPublisher struct{}

func (nopPublisher) Publish(context.Context, entity.LifecycleEvent) error { return nil }

type nopMetrics struct{}

func (nopMetrics) RequestCreated(entity.DeviceCategory)         {}
func (nopMetrics) StatusChanged(entity.BuyRequestStatus, string) {}
