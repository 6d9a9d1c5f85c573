package server

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"buyback/internal/domain/entity"
	"buyback/internal/domain/service/catalog"
	"buyback/pkg/httpx/reply"
	"buyback/pkg/httpx/req"
	"buyback/pkg/lox"
	"buyback/pkg/rest"
)

type modelPriceService interface {
	Get(ctx context.Context, id string) (entity.ModelPrice, error)
	List(ctx context.Context, in catalog.ListInput) ([]entity.ModelPrice, error)
	Create(ctx context.Context, in catalog.CreateInput) (entity.ModelPrice, error)
	Update(ctx context.Context, id string, in catalog.UpdateInput) (entity.ModelPrice, error)
	Delete(ctx context.Context, id string) error
}

type ModelPriceServer struct {
	modelPriceService modelPriceService
}

func NewModelPriceServer(modelPriceService modelPriceService) ModelPriceServer {
	return ModelPriceServer{
		modelPriceService: modelPriceService,
	}
}

// getV1ModelPrices разбирает параметры мягко: кривые limit и skip игнорируются.
func (s ModelPriceServer) getV1ModelPrices(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()
	query := r.URL.Query()

	in := catalog.ListInput{
		Filter: entity.ModelPriceFilter{ActiveOnly: query.Get("activeOnly") == "true"},
		Limit:  lenientNonNegative(query.Get("limit")),
		Skip:   lenientNonNegative(query.Get("skip")),
	}

	if raw := strings.TrimSpace(query.Get("category")); raw != "" {
		category := entity.DeviceCategory(raw)
		in.Filter.Category = &category
	}

	items, err := s.modelPriceService.List(ctx, in)
	if err != nil {
		return fmt.Errorf("modelPriceService.List: %w", err)
	}

	reply.JSON(ctx, w, http.StatusOK, lox.Map(items, newRESTModelPrice))

	return nil
}

func (s ModelPriceServer) getV1ModelPrice(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	mp, err := s.modelPriceService.Get(ctx, chi.URLParam(r, "id"))
	if err != nil {
		return fmt.Errorf("modelPriceService.Get: %w", err)
	}

	reply.JSON(ctx, w, http.StatusOK, newRESTModelPrice(mp))

	return nil
}

func (s ModelPriceServer) postV1AdminModelPrices(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	var body rest.CreateModelPrice
	if err := req.Read(r, &body); err != nil {
		return fmt.Errorf("req.Read: %w", err)
	}

	created, err := s.modelPriceService.Create(ctx, newCatalogCreateInput(body))
	if err != nil {
		return fmt.Errorf("modelPriceService.Create: %w", err)
	}

	reply.JSON(ctx, w, http.StatusCreated, newRESTModelPrice(created))

	return nil
}

func (s ModelPriceServer) patchV1AdminModelPrice(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	var body rest.UpdateModelPrice
	if err := req.Read(r, &body); err != nil {
		return fmt.Errorf("req.Read: %w", err)
	}

	updated, err := s.modelPriceService.Update(ctx, chi.URLParam(r, "id"), newCatalogUpdateInput(body))
	if err != nil {
		return fmt.Errorf("modelPriceService.Update: %w", err)
	}

	reply.JSON(ctx, w, http.StatusOK, newRESTModelPrice(updated))

	return nil
}

func (s ModelPriceServer) deleteV1AdminModelPrice(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	if err := s.modelPriceService.Delete(ctx, chi.URLParam(r, "id")); err != nil {
		return fmt.Errorf("modelPriceService.Delete: %w", err)
	}

	reply.Success(ctx, w)

	return nil
}

func lenientNonNegative(raw string) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 0 {
		return 0
	}

	return n
}
