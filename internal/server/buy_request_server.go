package server

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"buyback/internal/domain"
	"buyback/internal/domain/entity"
	"buyback/internal/domain/service/buyrequest"
	"buyback/pkg/contextx"
	"buyback/pkg/errcodes"
	"buyback/pkg/httpx/reply"
	"buyback/pkg/httpx/req"
	"buyback/pkg/rest"
)

const (
	defaultPageLimit = 20
	maxPageLimit     = 100
)

type buyRequestService interface {
	Create(ctx context.Context, in buyrequest.CreateInput) (entity.BuyRequest, error)
	Get(ctx context.Context, id string) (entity.BuyRequest, error)
	List(ctx context.Context, filter entity.BuyRequestFilter, page, limit int) (entity.Page[entity.BuyRequest], error)
	UpdateByAdmin(ctx context.Context, id string, in buyrequest.AdminUpdateInput) (entity.BuyRequest, error)
	MarkAsPaid(ctx context.Context, id string) (entity.BuyRequest, error)
	DeleteByAdmin(ctx context.Context, id string) error
	ListByOwner(ctx context.Context, ownerEmail string, page, limit int) (entity.Page[entity.BuyRequest], error)
	UpdateByUser(ctx context.Context, id, ownerEmail string, in buyrequest.UserUpdateInput) (entity.BuyRequest, error)
	CancelByUser(ctx context.Context, ownerEmail, id string) (entity.BuyRequest, error)
	DeleteByUser(ctx context.Context, ownerEmail, id string) error
}

type BuyRequestServer struct {
	buyRequestService buyRequestService
}

func NewBuyRequestServer(buyRequestService buyRequestService) BuyRequestServer {
	return BuyRequestServer{
		buyRequestService: buyRequestService,
	}
}

func (s BuyRequestServer) postV1BuyRequests(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	var body rest.CreateBuyRequest
	if err := req.Read(r, &body); err != nil {
		return fmt.Errorf("req.Read: %w", err)
	}

	created, err := s.buyRequestService.Create(ctx, newCreateInput(body))
	if err != nil {
		return fmt.Errorf("buyRequestService.Create: %w", err)
	}

	reply.JSON(ctx, w, http.StatusCreated, newRESTBuyRequest(created))

	return nil
}

func (s BuyRequestServer) getV1AdminBuyRequests(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	page, limit, err := readPaging(r)
	if err != nil {
		return err
	}

	filter := entity.BuyRequestFilter{Search: strings.TrimSpace(r.URL.Query().Get("search"))}

	if raw := strings.TrimSpace(r.URL.Query().Get("status")); raw != "" {
		status, err := entity.ParseStatus(raw)
		if err != nil {
			return domain.NewInvalidInputError(errcodes.InvalidStatus, err.Error())
		}

		filter.Status = &status
	}

	result, err := s.buyRequestService.List(ctx, filter, page, limit)
	if err != nil {
		return fmt.Errorf("buyRequestService.List: %w", err)
	}

	reply.JSON(ctx, w, http.StatusOK, newRESTBuyRequestPage(result))

	return nil
}

func (s BuyRequestServer) getV1AdminBuyRequest(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	found, err := s.buyRequestService.Get(ctx, chi.URLParam(r, "id"))
	if err != nil {
		return fmt.Errorf("buyRequestService.Get: %w", err)
	}

	reply.JSON(ctx, w, http.StatusOK, newRESTBuyRequest(found))

	return nil
}

func (s BuyRequestServer) patchV1AdminBuyRequest(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	var body rest.AdminUpdateBuyRequest
	if err := req.Read(r, &body); err != nil {
		return fmt.Errorf("req.Read: %w", err)
	}

	updated, err := s.buyRequestService.UpdateByAdmin(ctx, chi.URLParam(r, "id"), newAdminUpdateInput(body))
	if err != nil {
		return fmt.Errorf("buyRequestService.UpdateByAdmin: %w", err)
	}

	reply.JSON(ctx, w, http.StatusOK, newRESTBuyRequest(updated))

	return nil
}

func (s BuyRequestServer) patchV1AdminBuyRequestMarkPaid(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	paid, err := s.buyRequestService.MarkAsPaid(ctx, chi.URLParam(r, "id"))
	if err != nil {
		return fmt.Errorf("buyRequestService.MarkAsPaid: %w", err)
	}

	reply.JSON(ctx, w, http.StatusOK, newRESTBuyRequest(paid))

	return nil
}

func (s BuyRequestServer) deleteV1AdminBuyRequest(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	if err := s.buyRequestService.DeleteByAdmin(ctx, chi.URLParam(r, "id")); err != nil {
		return fmt.Errorf("buyRequestService.DeleteByAdmin: %w", err)
	}

	reply.Success(ctx, w)

	return nil
}

func (s BuyRequestServer) getV1MeRequests(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	email, err := contextx.UserEmailFromContext(ctx)
	if err != nil {
		return fmt.Errorf("contextx.UserEmailFromContext: %w", err)
	}

	page, limit, err := readPaging(r)
	if err != nil {
		return err
	}

	result, err := s.buyRequestService.ListByOwner(ctx, email.String(), page, limit)
	if err != nil {
		return fmt.Errorf("buyRequestService.ListByOwner: %w", err)
	}

	reply.JSON(ctx, w, http.StatusOK, newRESTBuyRequestPage(result))

	return nil
}

func (s BuyRequestServer) patchV1MeRequest(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	email, err := contextx.UserEmailFromContext(ctx)
	if err != nil {
		return fmt.Errorf("contextx.UserEmailFromContext: %w", err)
	}

	var body rest.UserUpdateBuyRequest
	if err := req.Read(r, &body); err != nil {
		return fmt.Errorf("req.Read: %w", err)
	}

	updated, err := s.buyRequestService.UpdateByUser(ctx, chi.URLParam(r, "id"), email.String(), newUserUpdateInput(body))
	if err != nil {
		return fmt.Errorf("buyRequestService.UpdateByUser: %w", err)
	}

	reply.JSON(ctx, w, http.StatusOK, newRESTBuyRequest(updated))

	return nil
}

func (s BuyRequestServer) patchV1MeRequestCancel(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	email, err := contextx.UserEmailFromContext(ctx)
	if err != nil {
		return fmt.Errorf("contextx.UserEmailFromContext: %w", err)
	}

	cancelled, err := s.buyRequestService.CancelByUser(ctx, email.String(), chi.URLParam(r, "id"))
	if err != nil {
		return fmt.Errorf("buyRequestService.CancelByUser: %w", err)
	}

	reply.JSON(ctx, w, http.StatusOK, newRESTBuyRequest(cancelled))

	return nil
}

func (s BuyRequestServer) deleteV1MeRequest(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	email, err := contextx.UserEmailFromContext(ctx)
	if err != nil {
		return fmt.Errorf("contextx.UserEmailFromContext: %w", err)
	}

	if err := s.buyRequestService.DeleteByUser(ctx, email.String(), chi.URLParam(r, "id")); err != nil {
		return fmt.Errorf("buyRequestService.DeleteByUser: %w", err)
	}

	reply.Success(ctx, w)

	return nil
}

// readPaging: page с единицы, limit от 1 до 100, по умолчанию 20.
func readPaging(r *http.Request) (int, int, error) {
	page, err := req.PositiveInt(r, "page", 1)
	if err != nil {
		return 0, 0, fmt.Errorf("req.PositiveInt(page): %w", err)
	}

	limit, err := req.PositiveInt(r, "limit", defaultPageLimit)
	if err != nil {
		return 0, 0, fmt.Errorf("req.PositiveInt(limit): %w", err)
	}

	if limit > maxPageLimit {
		return 0, 0, domain.NewInvalidInputError(errcodes.InvalidPaging,
			fmt.Sprintf("limit must not exceed %d", maxPageLimit))
	}

	return page, limit, nil
}
