package persistence

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"buyback/internal/domain"
	"buyback/internal/domain/entity"
	"buyback/pkg/errcodes"
)

const modelPriceColumns = `id, category, model_code, model_name, storage_gb, color, buy_price, currency, is_active, created_at, updated_at`

type ModelPriceRepository struct {
	db *sqlx.DB
}

func NewModelPriceRepository(db *sqlx.DB) *ModelPriceRepository {
	return &ModelPriceRepository{db: db}
}

func errModelPriceNotFound() error {
	return domain.NewNotFoundError(errcodes.ModelPriceNotFound, "model price not found")
}

func errModelPriceDuplicated() error {
	return domain.NewInvalidStateError(errcodes.ModelPriceDuplicated,
		"model price with the same model code and color already exists")
}

func (r *ModelPriceRepository) GetByID(ctx context.Context, id string) (*entity.ModelPrice, error) {
	var schema modelPriceSchema
	if err := r.db.GetContext(ctx, &schema, `SELECT `+modelPriceColumns+` FROM model_prices WHERE id = $1`, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errModelPriceNotFound()
		}
		return nil, domain.WrapError(err, errcodes.InternalServerError, "failed to get model price")
	}

	mp := schema.toDomain()

	return &mp, nil
}

// List отдаёт позиции в порядке категория, модель, объём памяти.
func (r *ModelPriceRepository) List(
	ctx context.Context,
	filter entity.ModelPriceFilter,
	offset, limit int,
) ([]entity.ModelPrice, error) {
	var (
		conds []string
		args  []any
	)

	if filter.ActiveOnly {
		conds = append(conds, "is_active")
	}

	if filter.Category != nil {
		args = append(args, string(*filter.Category))
		conds = append(conds, fmt.Sprintf("category = $%d", len(args)))
	}

	where := ""
	if len(conds) > 0 {
		where = "WHERE " + strings.Join(conds, " AND ")
	}

	args = append(args, limit, offset)
	query := fmt.Sprintf(
		`SELECT %s FROM model_prices %s
		ORDER BY category, model_name, storage_gb NULLS FIRST, color NULLS FIRST, id
		LIMIT $%d OFFSET $%d`,
		modelPriceColumns, where, len(args)-1, len(args),
	)

	var schemas []modelPriceSchema
	if err := r.db.SelectContext(ctx, &schemas, query, args...); err != nil {
		return nil, domain.WrapError(err, errcodes.InternalServerError, "failed to list model prices")
	}

	items := make([]entity.ModelPrice, 0, len(schemas))
	for i := range schemas {
		items = append(items, schemas[i].toDomain())
	}

	return items, nil
}

func (r *ModelPriceRepository) Insert(ctx context.Context, mp *entity.ModelPrice) error {
	query := `
		INSERT INTO model_prices (` + modelPriceColumns + `)
		VALUES (:id, :category, :model_code, :model_name, :storage_gb, :color, :buy_price, :currency, :is_active, :created_at, :updated_at)`

	if _, err := r.db.NamedExecContext(ctx, query, fromModelPrice(mp)); err != nil {
		if isUniqueViolation(err) {
			return errModelPriceDuplicated()
		}
		return domain.WrapError(err, errcodes.InternalServerError, "failed to insert model price")
	}

	return nil
}

func (r *ModelPriceRepository) Update(ctx context.Context, mp *entity.ModelPrice) error {
	query := `
		UPDATE model_prices SET
			category = :category,
			model_code = :model_code,
			model_name = :model_name,
			storage_gb = :storage_gb,
			color = :color,
			buy_price = :buy_price,
			currency = :currency,
			is_active = :is_active,
			updated_at = :updated_at
		WHERE id = :id`

	bound, args, err := r.db.BindNamed(query, fromModelPrice(mp))
	if err != nil {
		return domain.WrapError(err, errcodes.InternalServerError, "failed to bind model price")
	}

	err = execAffectingOne(ctx, r.db, errModelPriceNotFound(), bound, args...)
	if isUniqueViolation(err) {
		return errModelPriceDuplicated()
	}

	return err
}

func (r *ModelPriceRepository) Delete(ctx context.Context, id string) error {
	return execAffectingOne(ctx, r.db, errModelPriceNotFound(), `DELETE FROM model_prices WHERE id = $1`, id)
}
