package server_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"buyback/internal/domain"
	"buyback/internal/domain/entity"
	"buyback/internal/domain/service/buyrequest"
	"buyback/internal/domain/service/catalog"
	"buyback/internal/server"
	"buyback/pkg/errcodes"
	"buyback/pkg/httpx"
	"buyback/pkg/ratelimit"
	"buyback/pkg/rest"
	"buyback/pkg/tests"
)

const adminToken = "admin-secret"

type fakeBuyRequests struct {
	created   buyrequest.CreateInput
	filter    entity.BuyRequestFilter
	page      int
	limit     int
	owner     string
	adminEdit buyrequest.AdminUpdateInput
	stored    map[string]entity.BuyRequest
}

func newFakeBuyRequests(items ...entity.BuyRequest) *fakeBuyRequests {
	f := &fakeBuyRequests{stored: map[string]entity.BuyRequest{}}
	for _, item := range items {
		f.stored[item.ID] = item
	}

	return f
}

func (f *fakeBuyRequests) find(id string) (entity.BuyRequest, error) {
	r, ok := f.stored[id]
	if !ok {
		return entity.BuyRequest{}, domain.NewNotFoundError(errcodes.BuyRequestNotFound, "Buy request not found")
	}

	return r, nil
}

func (f *fakeBuyRequests) Create(_ context.Context, in buyrequest.CreateInput) (entity.BuyRequest, error) {
	f.created = in

	return entity.BuyRequest{
		ID:            "new",
		CustomerName:  in.CustomerName,
		CustomerEmail: in.CustomerEmail,
		ModelPriceID:  in.ModelPriceID,
		Status:        entity.StatusPending,
	}, nil
}

func (f *fakeBuyRequests) Get(_ context.Context, id string) (entity.BuyRequest, error) {
	return f.find(id)
}

func (f *fakeBuyRequests) List(
	_ context.Context,
	filter entity.BuyRequestFilter,
	page, limit int,
) (entity.Page[entity.BuyRequest], error) {
	f.filter, f.page, f.limit = filter, page, limit

	items := make([]entity.BuyRequest, 0, len(f.stored))
	for _, r := range f.stored {
		items = append(items, r)
	}

	return entity.NewPage(items, len(items), page, limit), nil
}

func (f *fakeBuyRequests) UpdateByAdmin(
	_ context.Context,
	id string,
	in buyrequest.AdminUpdateInput,
) (entity.BuyRequest, error) {
	f.adminEdit = in

	r, err := f.find(id)
	if err != nil {
		return entity.BuyRequest{}, err
	}

	if in.Status != nil {
		r.Status = *in.Status
	}

	return r, nil
}

func (f *fakeBuyRequests) MarkAsPaid(_ context.Context, id string) (entity.BuyRequest, error) {
	r, err := f.find(id)
	if err != nil {
		return entity.BuyRequest{}, err
	}

	if r.Status != entity.StatusApproved {
		return entity.BuyRequest{}, domain.NewInvalidStateError(errcodes.InvalidStatusForAction, "Only approved requests can be paid")
	}

	r.Status = entity.StatusPaid

	return r, nil
}

func (f *fakeBuyRequests) DeleteByAdmin(_ context.Context, id string) error {
	if _, err := f.find(id); err != nil {
		return err
	}

	delete(f.stored, id)

	return nil
}

func (f *fakeBuyRequests) ListByOwner(
	_ context.Context,
	ownerEmail string,
	page, limit int,
) (entity.Page[entity.BuyRequest], error) {
	f.owner, f.page, f.limit = ownerEmail, page, limit

	return entity.NewPage[entity.BuyRequest](nil, 0, page, limit), nil
}

func (f *fakeBuyRequests) UpdateByUser(
	_ context.Context,
	id, ownerEmail string,
	_ buyrequest.UserUpdateInput,
) (entity.BuyRequest, error) {
	f.owner = ownerEmail

	return f.find(id)
}

func (f *fakeBuyRequests) CancelByUser(_ context.Context, ownerEmail, id string) (entity.BuyRequest, error) {
	f.owner = ownerEmail

	r, err := f.find(id)
	if err != nil {
		return entity.BuyRequest{}, err
	}

	r.Status = entity.StatusCancelled

	return r, nil
}

func (f *fakeBuyRequests) DeleteByUser(_ context.Context, ownerEmail, id string) error {
	f.owner = ownerEmail

	_, err := f.find(id)

	return err
}

type fakeModelPrices struct {
	listed catalog.ListInput
}

func (f *fakeModelPrices) Get(_ context.Context, id string) (entity.ModelPrice, error) {
	if id != "mp-1" {
		return entity.ModelPrice{}, domain.NewNotFoundError(errcodes.ModelPriceNotFound, "Model price not found")
	}

	return entity.ModelPrice{ID: id, Category: entity.CategoryPS5, ModelCode: "CFI-2000", BuyPrice: 400000, Currency: "KRW"}, nil
}

func (f *fakeModelPrices) List(_ context.Context, in catalog.ListInput) ([]entity.ModelPrice, error) {
	f.listed = in
	return nil, nil
}

func (f *fakeModelPrices) Create(_ context.Context, in catalog.CreateInput) (entity.ModelPrice, error) {
	return entity.ModelPrice{ID: "mp-new", Category: in.Category, ModelCode: in.ModelCode, IsActive: true}, nil
}

func (f *fakeModelPrices) Update(ctx context.Context, id string, _ catalog.UpdateInput) (entity.ModelPrice, error) {
	return f.Get(ctx, id)
}

func (f *fakeModelPrices) Delete(ctx context.Context, id string) error {
	_, err := f.Get(ctx, id)
	return err
}

type denyAll struct{}

func (denyAll) Allow(context.Context, string) ratelimit.Result {
	return ratelimit.Result{RetryAfter: 30 * time.Second}
}

func newTestServer(t *testing.T, buyRequests *fakeBuyRequests, modelPrices *fakeModelPrices, opts server.Options) string {
	t.Helper()

	opts.AdminToken = adminToken

	srv := server.NewServer(
		server.NewBuyRequestServer(buyRequests),
		server.NewModelPriceServer(modelPrices),
		opts,
	)

	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)

	return ts.URL
}

func adminClient(baseURL string) tests.APIClient {
	return tests.NewAPIClient(baseURL, &http.Client{
		Transport: httpx.NewAuthBearerRoundTripper(http.DefaultTransport, httpx.StaticToken(adminToken)),
	})
}

func TestServer_CreateBuyRequest(t *testing.T) {
	t.Parallel()

	tc := []struct {
		name       string
		body       string
		wantStatus int
		wantCode   rest.ErrorCode
	}{
		{
			name:       "created",
			body:       `{"customerName":"Kim","customerPhone":"010","customerEmail":"kim@example.com","modelPriceId":"mp-1"}`,
			wantStatus: http.StatusCreated,
		},
		{
			name:       "missing fields",
			body:       `{"customerName":"Kim"}`,
			wantStatus: http.StatusBadRequest,
			wantCode:   rest.ErrorCode(errcodes.ValidationError),
		},
		{
			name:       "broken json",
			body:       `{"customerName":`,
			wantStatus: http.StatusBadRequest,
			wantCode:   rest.ErrorCode(errcodes.ValidationError),
		},
	}

	for _, tt := range tc {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			r := require.New(t)
			baseURL := newTestServer(t, newFakeBuyRequests(), &fakeModelPrices{}, server.Options{})
			client := tests.NewAPIClient(baseURL, nil)

			var (
				created rest.BuyRequest
				apiErr  rest.Error
			)

			resp, err := client.PostJSON(context.Background(), "/v1/buy-requests", nil, tt.body, &created, &apiErr)
			r.NoError(err)
			r.Equal(tt.wantStatus, resp.StatusCode)

			if tt.wantCode != "" {
				r.Equal(tt.wantCode, apiErr.Code)
				r.NotEmpty(apiErr.SupportID)

				return
			}

			r.Equal("new", created.ID)
			r.Equal("pending", created.Status)
			r.NotNil(created.PhotoURLs)
		})
	}
}

func TestServer_CreateThrottled(t *testing.T) {
	t.Parallel()

	r := require.New(t)
	baseURL := newTestServer(t, newFakeBuyRequests(), &fakeModelPrices{}, server.Options{CreateLimiter: denyAll{}})

	var apiErr rest.Error

	resp, err := tests.NewAPIClient(baseURL, nil).Post(context.Background(), "/v1/buy-requests", nil,
		rest.CreateBuyRequest{}, nil, &apiErr)
	r.NoError(err)
	r.Equal(http.StatusTooManyRequests, resp.StatusCode)
	r.Equal("30", resp.Header.Get("Retry-After"))
	r.Equal(rest.ErrorCode(errcodes.TooManyRequests), apiErr.Code)
}

func TestServer_AdminAuth(t *testing.T) {
	t.Parallel()

	r := require.New(t)
	ctx := context.Background()
	baseURL := newTestServer(t, newFakeBuyRequests(), &fakeModelPrices{}, server.Options{})

	var apiErr rest.Error

	resp, err := tests.NewAPIClient(baseURL, nil).
		WithHeader("Authorization", "Bearer wrong").
		Get(ctx, "/v1/admin/buy-requests", nil, nil, &apiErr)
	r.NoError(err)
	r.Equal(http.StatusUnauthorized, resp.StatusCode)
	r.Equal(rest.ErrorCode(errcodes.AccessTokenInvalid), apiErr.Code)

	var page rest.BuyRequestPage

	resp, err = adminClient(baseURL).Get(ctx, "/v1/admin/buy-requests", nil, &page, nil)
	r.NoError(err)
	r.Equal(http.StatusOK, resp.StatusCode)
	r.NotNil(page.Items)
}

func TestServer_AdminListQuery(t *testing.T) {
	t.Parallel()

	tc := []struct {
		name       string
		query      string
		wantStatus int
		wantCode   rest.ErrorCode
		wantPage   int
		wantLimit  int
	}{
		{name: "defaults", query: "", wantStatus: http.StatusOK, wantPage: 1, wantLimit: 20},
		{name: "explicit", query: "?page=3&limit=100&status=approved&search=ps5", wantStatus: http.StatusOK, wantPage: 3, wantLimit: 100},
		{name: "limit too big", query: "?limit=101", wantStatus: http.StatusBadRequest, wantCode: rest.ErrorCode(errcodes.InvalidPaging)},
		{name: "zero page", query: "?page=0", wantStatus: http.StatusBadRequest, wantCode: rest.ErrorCode(errcodes.InvalidPaging)},
		{name: "legacy status", query: "?status=completed", wantStatus: http.StatusBadRequest, wantCode: rest.ErrorCode(errcodes.InvalidStatus)},
	}

	for _, tt := range tc {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			r := require.New(t)
			buyRequests := newFakeBuyRequests()
			baseURL := newTestServer(t, buyRequests, &fakeModelPrices{}, server.Options{})

			var apiErr rest.Error

			resp, err := adminClient(baseURL).Get(context.Background(), "/v1/admin/buy-requests"+tt.query, nil, nil, &apiErr)
			r.NoError(err)
			r.Equal(tt.wantStatus, resp.StatusCode)

			if tt.wantCode != "" {
				r.Equal(tt.wantCode, apiErr.Code)
				return
			}

			r.Equal(tt.wantPage, buyRequests.page)
			r.Equal(tt.wantLimit, buyRequests.limit)
		})
	}
}

func TestServer_AdminLifecycle(t *testing.T) {
	t.Parallel()

	r := require.New(t)
	ctx := context.Background()
	buyRequests := newFakeBuyRequests(
		entity.BuyRequest{ID: "a1", Status: entity.StatusPending},
		entity.BuyRequest{ID: "a2", Status: entity.StatusApproved},
	)
	client := adminClient(newTestServer(t, buyRequests, &fakeModelPrices{}, server.Options{}))

	var (
		got    rest.BuyRequest
		apiErr rest.Error
	)

	resp, err := client.Get(ctx, "/v1/admin/buy-requests/missing", nil, nil, &apiErr)
	r.NoError(err)
	r.Equal(http.StatusNotFound, resp.StatusCode)
	r.Equal(rest.ErrorCode(errcodes.BuyRequestNotFound), apiErr.Code)

	resp, err = client.Patch(ctx, "/v1/admin/buy-requests/a1", nil,
		map[string]any{"status": "approved", "adminNotes": nil}, &got, nil)
	r.NoError(err)
	r.Equal(http.StatusOK, resp.StatusCode)
	r.Equal("approved", got.Status)
	r.True(buyRequests.adminEdit.AdminNotes.Set)
	r.True(buyRequests.adminEdit.AdminNotes.Null)
	r.False(buyRequests.adminEdit.FinalPrice.Set)

	resp, err = client.Patch(ctx, "/v1/admin/buy-requests/a1/mark-paid", nil, nil, nil, &apiErr)
	r.NoError(err)
	r.Equal(http.StatusConflict, resp.StatusCode)
	r.Equal(rest.ErrorCode(errcodes.InvalidStatusForAction), apiErr.Code)

	resp, err = client.Patch(ctx, "/v1/admin/buy-requests/a2/mark-paid", nil, nil, &got, nil)
	r.NoError(err)
	r.Equal(http.StatusOK, resp.StatusCode)
	r.Equal("paid", got.Status)

	var ok rest.Success

	resp, err = client.Delete(ctx, "/v1/admin/buy-requests/a2", nil, &ok, nil)
	r.NoError(err)
	r.Equal(http.StatusOK, resp.StatusCode)
	r.True(ok.Success)
}

func TestServer_MeRequests(t *testing.T) {
	t.Parallel()

	r := require.New(t)
	ctx := context.Background()
	buyRequests := newFakeBuyRequests(entity.BuyRequest{ID: "u1", Status: entity.StatusPending})
	baseURL := newTestServer(t, buyRequests, &fakeModelPrices{}, server.Options{})

	var apiErr rest.Error

	resp, err := tests.NewAPIClient(baseURL, nil).Get(ctx, "/v1/me/requests", nil, nil, &apiErr)
	r.NoError(err)
	r.Equal(http.StatusUnauthorized, resp.StatusCode)
	r.Equal(rest.ErrorCode(errcodes.UserEmailMissing), apiErr.Code)

	client := tests.NewAPIClient(baseURL, nil).WithHeader("X-User-Email", " Kim@Example.COM ")

	var page rest.BuyRequestPage

	resp, err = client.Get(ctx, "/v1/me/requests?limit=5", nil, &page, nil)
	r.NoError(err)
	r.Equal(http.StatusOK, resp.StatusCode)
	r.Equal("kim@example.com", buyRequests.owner)
	r.Equal(5, page.Limit)
	r.Empty(page.Items)

	var cancelled rest.BuyRequest

	resp, err = client.Patch(ctx, "/v1/me/requests/u1/cancel", nil, nil, &cancelled, nil)
	r.NoError(err)
	r.Equal(http.StatusOK, resp.StatusCode)
	r.Equal("cancelled", cancelled.Status)

	resp, err = client.Patch(ctx, "/v1/me/requests/u1", nil,
		map[string]any{"shippingTrackingUrl": "not a url"}, nil, &apiErr)
	r.NoError(err)
	r.Equal(http.StatusBadRequest, resp.StatusCode)
	r.Equal(rest.ErrorCode(errcodes.ValidationError), apiErr.Code)

	var ok rest.Success

	resp, err = client.Delete(ctx, "/v1/me/requests/u1", nil, &ok, nil)
	r.NoError(err)
	r.Equal(http.StatusOK, resp.StatusCode)
	r.True(ok.Success)
}

func TestServer_ModelPrices(t *testing.T) {
	t.Parallel()

	r := require.New(t)
	ctx := context.Background()
	modelPrices := &fakeModelPrices{}
	baseURL := newTestServer(t, newFakeBuyRequests(), modelPrices, server.Options{})
	public := tests.NewAPIClient(baseURL, nil)

	var list []rest.ModelPrice

	resp, err := public.Get(ctx, "/v1/model-prices?activeOnly=true&limit=abc&skip=5&category=ps5", nil, &list, nil)
	r.NoError(err)
	r.Equal(http.StatusOK, resp.StatusCode)
	r.NotNil(list)
	r.True(modelPrices.listed.Filter.ActiveOnly)
	r.Equal(0, modelPrices.listed.Limit)
	r.Equal(5, modelPrices.listed.Skip)
	r.NotNil(modelPrices.listed.Filter.Category)
	r.Equal(entity.CategoryPS5, *modelPrices.listed.Filter.Category)

	var mp rest.ModelPrice

	resp, err = public.Get(ctx, "/v1/model-prices/mp-1", nil, &mp, nil)
	r.NoError(err)
	r.Equal(http.StatusOK, resp.StatusCode)
	r.Equal("CFI-2000", mp.ModelCode)

	resp, err = public.Post(ctx, "/v1/admin/model-prices", nil, rest.CreateModelPrice{}, nil, nil)
	r.NoError(err)
	r.Equal(http.StatusUnauthorized, resp.StatusCode)

	resp, err = adminClient(baseURL).Post(ctx, "/v1/admin/model-prices", nil, rest.CreateModelPrice{
		Category:  "ps5",
		ModelCode: "CFI-2000",
		ModelName: "PS5 Slim",
		BuyPrice:  400000,
	}, &mp, nil)
	r.NoError(err)
	r.Equal(http.StatusCreated, resp.StatusCode)
	r.Equal("mp-new", mp.ID)

	var ok rest.Success

	resp, err = adminClient(baseURL).Delete(ctx, "/v1/admin/model-prices/mp-1", nil, &ok, nil)
	r.NoError(err)
	r.Equal(http.StatusOK, resp.StatusCode)
	r.True(ok.Success)
}
