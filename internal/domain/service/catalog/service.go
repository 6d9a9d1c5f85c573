package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/rs/xid"

	"buyback/internal/domain"
	"buyback/internal/domain/entity"
	"buyback/internal/domain/value"
	"buyback/pkg/errcodes"
	"buyback/pkg/logx"
)

const (
	DefaultCacheTTL = 5 * time.Minute
	MaxListLimit    = 200
)

type Repository interface {
	GetByID(ctx context.Context, id string) (*entity.ModelPrice, error)
	List(ctx context.Context, filter entity.ModelPriceFilter, offset, limit int) ([]entity.ModelPrice, error)
	Insert(ctx context.Context, mp *entity.ModelPrice) error
	Update(ctx context.Context, mp *entity.ModelPrice) error
	Delete(ctx context.Context, id string) error
}

// Service управляет прайс-листом. Чтение активных позиций для заявок идёт через кэш.
type Service struct {
	repo  Repository
	cache *cache.Cache
	now   func() time.Time
}

func NewService(repo Repository, cacheTTL time.Duration) *Service {
	if cacheTTL <= 0 {
		cacheTTL = DefaultCacheTTL
	}

	return &Service{
		repo:  repo,
		cache: cache.New(cacheTTL, 2*cacheTTL),
		now:   time.Now,
	}
}

type CreateInput struct {
	Category  entity.DeviceCategory
	ModelCode string
	ModelName string
	StorageGB *int
	Color     *string
	BuyPrice  int64
	Currency  *string
	IsActive  *bool
}

type UpdateInput struct {
	Category  *entity.DeviceCategory
	ModelCode *string
	ModelName *string
	StorageGB value.Patch[int]
	Color     value.Patch[string]
	BuyPrice  *int64
	Currency  *string
	IsActive  *bool
}

type ListInput struct {
	Filter entity.ModelPriceFilter
	Skip   int
	Limit  int
}

// FindActiveByID возвращает позицию, только если она есть и включена.
func (s *Service) FindActiveByID(ctx context.Context, id string) (*entity.ModelPrice, error) {
	if cached, ok := s.cache.Get(id); ok {
		mp := cached.(entity.ModelPrice) //nolint:forcetypeassert // only ModelPrice is stored
		return activeOrNil(mp), nil
	}

	mp, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if domain.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("repo.GetByID: %w", err)
	}

	s.cache.Set(id, mp.Clone(), cache.DefaultExpiration)

	return activeOrNil(*mp), nil
}

func activeOrNil(mp entity.ModelPrice) *entity.ModelPrice {
	if !mp.IsActive {
		return nil
	}

	// Значение из кеша отдается копией: вызывающий не должен делить с ним указатели.
	mp = mp.Clone()

	return &mp
}

func (s *Service) Get(ctx context.Context, id string) (entity.ModelPrice, error) {
	mp, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return entity.ModelPrice{}, fmt.Errorf("repo.GetByID: %w", err)
	}

	return *mp, nil
}

// List отдаёт не больше MaxListLimit позиций за раз.
func (s *Service) List(ctx context.Context, in ListInput) ([]entity.ModelPrice, error) {
	if in.Filter.Category != nil && !in.Filter.Category.IsValid() {
		return nil, domain.NewInvalidInputError(errcodes.InvalidCategory,
			fmt.Sprintf("unknown category %q", *in.Filter.Category))
	}

	limit := in.Limit
	if limit <= 0 || limit > MaxListLimit {
		limit = MaxListLimit
	}

	items, err := s.repo.List(ctx, in.Filter, max(in.Skip, 0), limit)
	if err != nil {
		return nil, fmt.Errorf("repo.List: %w", err)
	}

	if items == nil {
		items = []entity.ModelPrice{}
	}

	return items, nil
}

func (s *Service) Create(ctx context.Context, in CreateInput) (entity.ModelPrice, error) {
	now := s.now().UTC()

	mp := entity.ModelPrice{
		ID:        xid.New().String(),
		Category:  in.Category,
		ModelCode: strings.TrimSpace(in.ModelCode),
		ModelName: strings.TrimSpace(in.ModelName),
		StorageGB: in.StorageGB,
		Color:     in.Color,
		BuyPrice:  in.BuyPrice,
		Currency:  entity.DefaultCurrency,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if in.Currency != nil && strings.TrimSpace(*in.Currency) != "" {
		mp.Currency = strings.ToUpper(strings.TrimSpace(*in.Currency))
	}

	if in.IsActive != nil {
		mp.IsActive = *in.IsActive
	}

	if err := validate(mp); err != nil {
		return entity.ModelPrice{}, err
	}

	if err := s.repo.Insert(ctx, &mp); err != nil {
		return entity.ModelPrice{}, fmt.Errorf("repo.Insert: %w", err)
	}

	logger(ctx).Info("model price created",
		slog.String(logx.FieldModelPriceID, mp.ID),
	)

	return mp, nil
}

func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (entity.ModelPrice, error) {
	mp, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return entity.ModelPrice{}, fmt.Errorf("repo.GetByID: %w", err)
	}

	if in.Category != nil {
		mp.Category = *in.Category
	}
	if in.ModelCode != nil {
		mp.ModelCode = strings.TrimSpace(*in.ModelCode)
	}
	if in.ModelName != nil {
		mp.ModelName = strings.TrimSpace(*in.ModelName)
	}
	in.StorageGB.Apply(&mp.StorageGB)
	in.Color.Apply(&mp.Color)
	if in.BuyPrice != nil {
		mp.BuyPrice = *in.BuyPrice
	}
	if in.Currency != nil {
		mp.Currency = strings.ToUpper(strings.TrimSpace(*in.Currency))
	}
	if in.IsActive != nil {
		mp.IsActive = *in.IsActive
	}

	if err := validate(*mp); err != nil {
		return entity.ModelPrice{}, err
	}

	mp.UpdatedAt = s.now().UTC()

	if err := s.repo.Update(ctx, mp); err != nil {
		return entity.ModelPrice{}, fmt.Errorf("repo.Update: %w", err)
	}

	s.cache.Delete(id)

	logger(ctx).Info("model price updated",
		slog.String(logx.FieldModelPriceID, mp.ID),
	)

	return *mp, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("repo.Delete: %w", err)
	}

	s.cache.Delete(id)

	logger(ctx).Info("model price deleted",
		slog.String(logx.FieldModelPriceID, id),
	)

	return nil
}

func validate(mp entity.ModelPrice) error {
	if !mp.Category.IsValid() {
		return domain.NewInvalidInputError(errcodes.InvalidCategory,
			"category must be one of: iphone, ps5, switch")
	}

	if mp.ModelCode == "" || mp.ModelName == "" {
		return domain.NewInvalidInputError(errcodes.InvalidModelPrice,
			"model code and model name are required")
	}

	if mp.BuyPrice < 0 {
		return domain.NewInvalidInputError(errcodes.InvalidModelPrice,
			"buy price must not be negative")
	}

	if mp.StorageGB != nil && *mp.StorageGB < 0 {
		return domain.NewInvalidInputError(errcodes.InvalidModelPrice,
			"storage must not be negative")
	}

	if mp.Currency == "" {
		return domain.NewInvalidInputError(errcodes.InvalidModelPrice,
			"currency must not be empty")
	}

	return nil
}
