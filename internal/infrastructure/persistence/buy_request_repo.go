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

const buyRequestColumns = `
	id, customer_name, customer_phone, customer_email,
	model_price_id, device_category, model_code, model_name, storage_gb, color, buy_price, currency,
	status, status_history, notes, admin_notes, final_price,
	imei_serial, has_receipt, photo_urls,
	bank_name, bank_account, bank_holder,
	shipping_method, shipping_tracking_code, shipping_tracking_url, shipping_submitted_at, shipping_info,
	approved_at, approved_by, paid_at, cancelled_at, cancelled_by,
	created_at, updated_at`

type BuyRequestRepository struct {
	db *sqlx.DB
}

func NewBuyRequestRepository(db *sqlx.DB) *BuyRequestRepository {
	return &BuyRequestRepository{db: db}
}

func errBuyRequestNotFound() error {
	return domain.NewNotFoundError(errcodes.BuyRequestNotFound, "buy request not found")
}

// GetByID возвращает заявку без нормализации статусов.
func (r *BuyRequestRepository) GetByID(ctx context.Context, id string) (*entity.BuyRequest, error) {
	return r.get(ctx, `SELECT `+buyRequestColumns+` FROM buy_requests WHERE id = $1`, id)
}

// GetByIDAndOwner не различает отсутствующую заявку и чужую.
func (r *BuyRequestRepository) GetByIDAndOwner(ctx context.Context, id, ownerEmail string) (*entity.BuyRequest, error) {
	return r.get(ctx,
		`SELECT `+buyRequestColumns+` FROM buy_requests WHERE id = $1 AND customer_email = lower($2)`,
		id, ownerEmail,
	)
}

func (r *BuyRequestRepository) get(ctx context.Context, query string, args ...any) (*entity.BuyRequest, error) {
	var schema buyRequestSchema
	if err := r.db.GetContext(ctx, &schema, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errBuyRequestNotFound()
		}
		return nil, domain.WrapError(err, errcodes.InternalServerError, "failed to get buy request")
	}

	result := schema.toDomain()

	return &result, nil
}

func (r *BuyRequestRepository) List(
	ctx context.Context,
	filter entity.BuyRequestFilter,
	offset, limit int,
) ([]entity.BuyRequest, error) {
	where, args := buildBuyRequestWhere(filter)
	args = append(args, limit, offset)

	query := fmt.Sprintf(
		`SELECT %s FROM buy_requests %s ORDER BY created_at DESC, id DESC LIMIT $%d OFFSET $%d`,
		buyRequestColumns, where, len(args)-1, len(args),
	)

	var schemas []buyRequestSchema
	if err := r.db.SelectContext(ctx, &schemas, query, args...); err != nil {
		return nil, domain.WrapError(err, errcodes.InternalServerError, "failed to list buy requests")
	}

	items := make([]entity.BuyRequest, 0, len(schemas))
	for i := range schemas {
		items = append(items, schemas[i].toDomain())
	}

	return items, nil
}

func (r *BuyRequestRepository) Count(ctx context.Context, filter entity.BuyRequestFilter) (int, error) {
	where, args := buildBuyRequestWhere(filter)

	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT count(*) FROM buy_requests `+where, args...); err != nil {
		return 0, domain.WrapError(err, errcodes.InternalServerError, "failed to count buy requests")
	}

	return total, nil
}

//nolint:gochecknoglobals
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern строит ILIKE-шаблон, в котором поисковая строка сравнивается буквально.
func containsPattern(s string) string {
	return "%" + likeEscaper.Replace(s) + "%"
}

func buildBuyRequestWhere(filter entity.BuyRequestFilter) (string, []any) {
	var (
		conds []string
		args  []any
	)

	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if statuses := filter.StoredStatuses(); len(statuses) > 0 {
		values := make([]string, 0, len(statuses))
		for _, s := range statuses {
			values = append(values, string(s))
		}
		conds = append(conds, "status = ANY("+arg(values)+")")
	}

	if filter.OwnerEmail != "" {
		conds = append(conds, "customer_email = lower("+arg(filter.OwnerEmail)+")")
	}

	if search := strings.TrimSpace(filter.Search); search != "" {
		p := arg(containsPattern(search))
		conds = append(conds, fmt.Sprintf(
			"(customer_email ILIKE %[1]s OR customer_name ILIKE %[1]s OR customer_phone ILIKE %[1]s OR imei_serial ILIKE %[1]s)",
			p,
		))
	}

	if len(conds) == 0 {
		return "", args
	}

	return "WHERE " + strings.Join(conds, " AND "), args
}

func (r *BuyRequestRepository) Insert(ctx context.Context, req *entity.BuyRequest) error {
	query := `
		INSERT INTO buy_requests (` + buyRequestColumns + `)
		VALUES (
			:id, :customer_name, :customer_phone, :customer_email,
			:model_price_id, :device_category, :model_code, :model_name, :storage_gb, :color, :buy_price, :currency,
			:status, :status_history, :notes, :admin_notes, :final_price,
			:imei_serial, :has_receipt, :photo_urls,
			:bank_name, :bank_account, :bank_holder,
			:shipping_method, :shipping_tracking_code, :shipping_tracking_url, :shipping_submitted_at, :shipping_info,
			:approved_at, :approved_by, :paid_at, :cancelled_at, :cancelled_by,
			:created_at, :updated_at
		)`

	if _, err := r.db.NamedExecContext(ctx, query, fromBuyRequest(req)); err != nil {
		return domain.WrapError(err, errcodes.InternalServerError, "failed to insert buy request")
	}

	return nil
}

// Update перезаписывает изменяемые поля. Снимок устройства и владелец не трогаются.
func (r *BuyRequestRepository) Update(ctx context.Context, req *entity.BuyRequest) error {
	return r.update(ctx, r.db, req)
}

type namedExtContext interface {
	sqlx.ExtContext
	BindNamed(query string, arg any) (string, []any, error)
}

func (r *BuyRequestRepository) update(ctx context.Context, ext namedExtContext, req *entity.BuyRequest) error {
	query := `
		UPDATE buy_requests SET
			status = :status,
			status_history = :status_history,
			admin_notes = :admin_notes,
			final_price = :final_price,
			bank_name = :bank_name,
			bank_account = :bank_account,
			bank_holder = :bank_holder,
			shipping_method = :shipping_method,
			shipping_tracking_code = :shipping_tracking_code,
			shipping_tracking_url = :shipping_tracking_url,
			shipping_submitted_at = :shipping_submitted_at,
			shipping_info = :shipping_info,
			approved_at = :approved_at,
			approved_by = :approved_by,
			paid_at = :paid_at,
			cancelled_at = :cancelled_at,
			cancelled_by = :cancelled_by,
			updated_at = :updated_at
		WHERE id = :id`

	bound, args, err := ext.BindNamed(query, fromBuyRequest(req))
	if err != nil {
		return domain.WrapError(err, errcodes.InternalServerError, "failed to bind buy request")
	}

	return execAffectingOne(ctx, ext, errBuyRequestNotFound(), bound, args...)
}

func (r *BuyRequestRepository) Delete(ctx context.Context, id string) error {
	return execAffectingOne(ctx, r.db, errBuyRequestNotFound(), `DELETE FROM buy_requests WHERE id = $1`, id)
}

// ListAfter листает все заявки по возрастанию id.
func (r *BuyRequestRepository) ListAfter(ctx context.Context, afterID string, limit int) ([]entity.BuyRequest, error) {
	var schemas []buyRequestSchema

	query := `SELECT ` + buyRequestColumns + ` FROM buy_requests WHERE id > $1 ORDER BY id LIMIT $2`
	if err := r.db.SelectContext(ctx, &schemas, query, afterID, limit); err != nil {
		return nil, domain.WrapError(err, errcodes.InternalServerError, "failed to list buy requests")
	}

	items := make([]entity.BuyRequest, 0, len(schemas))
	for i := range schemas {
		items = append(items, schemas[i].toDomain())
	}

	return items, nil
}

// CountLegacy считает заявки, где ещё остался статус "completed".
func (r *BuyRequestRepository) CountLegacy(ctx context.Context) (int, error) {
	query := `
		SELECT count(*) FROM buy_requests
		WHERE status = $1 OR status_history @> jsonb_build_array(jsonb_build_object('status', $1::text))`

	var total int
	if err := r.db.GetContext(ctx, &total, query, string(entity.StatusLegacyCompleted)); err != nil {
		return 0, domain.WrapError(err, errcodes.InternalServerError, "failed to count legacy buy requests")
	}

	return total, nil
}

// UpdateBatch обновляет пачку заявок в одной транзакции.
func (r *BuyRequestRepository) UpdateBatch(ctx context.Context, reqs []entity.BuyRequest) error {
	if len(reqs) == 0 {
		return nil
	}

	return withTx(ctx, r.db, func(tx *sqlx.Tx) error {
		for i := range reqs {
			if err := r.update(ctx, tx, &reqs[i]); err != nil {
				return fmt.Errorf("update %s: %w", reqs[i].ID, err)
			}
		}
		return nil
	})
}
