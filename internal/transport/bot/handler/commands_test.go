package handler

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"buyback/internal/domain"
	"buyback/internal/domain/entity"
	"buyback/internal/domain/service/buyrequest"
	"buyback/internal/transport/bot/view"
	"buyback/pkg/errcodes"
)

type fakeService struct {
	items   map[string]entity.BuyRequest
	updated buyrequest.AdminUpdateInput
	listErr error
}

func (f *fakeService) Get(_ context.Context, id string) (entity.BuyRequest, error) {
	r, ok := f.items[id]
	if !ok {
		return entity.BuyRequest{}, domain.NewNotFoundError(errcodes.BuyRequestNotFound, "Buy request not found")
	}

	return r, nil
}

func (f *fakeService) List(
	_ context.Context,
	filter entity.BuyRequestFilter,
	page, limit int,
) (entity.Page[entity.BuyRequest], error) {
	if f.listErr != nil {
		return entity.Page[entity.BuyRequest]{}, f.listErr
	}

	var items []entity.BuyRequest

	for _, r := range f.items {
		if filter.Status == nil || r.Status == *filter.Status {
			items = append(items, r)
		}
	}

	return entity.NewPage(items, len(items), page, limit), nil
}

func (f *fakeService) UpdateByAdmin(ctx context.Context, id string, in buyrequest.AdminUpdateInput) (entity.BuyRequest, error) {
	f.updated = in

	r, err := f.Get(ctx, id)
	if err != nil {
		return entity.BuyRequest{}, err
	}

	r.Status = *in.Status

	return r, nil
}

func (f *fakeService) MarkAsPaid(ctx context.Context, id string) (entity.BuyRequest, error) {
	r, err := f.Get(ctx, id)
	if err != nil {
		return entity.BuyRequest{}, err
	}

	if !r.HasBankInfo() {
		return entity.BuyRequest{}, domain.NewInvalidStateError(errcodes.BankInfoIncomplete, "Bank info is incomplete")
	}

	r.Status = entity.StatusPaid

	return r, nil
}

func newFakeService() *fakeService {
	return &fakeService{items: map[string]entity.BuyRequest{
		"p1": {ID: "p1", Status: entity.StatusPending, ModelName: "iPhone 15 Pro", BuyPrice: 1250000, Currency: "KRW"},
		"a1": {ID: "a1", Status: entity.StatusApproved, ModelName: "PS5"},
	}}
}

func TestHandler_Commands(t *testing.T) {
	t.Parallel()

	tc := []struct {
		name string
		run  func(h *Handler, ctx context.Context) string
		want string
	}{
		{
			name: "show without id",
			run:  func(h *Handler, ctx context.Context) string { return h.show(ctx, "/show") },
			want: "❌ Использование: /show <code>ID</code>",
		},
		{
			name: "show unknown",
			run:  func(h *Handler, ctx context.Context) string { return h.show(ctx, "/show nope") },
			want: view.NotFound,
		},
		{
			name: "approve",
			run:  func(h *Handler, ctx context.Context) string { return h.approve(ctx, "/approve p1") },
			want: "Заявка <code>p1</code>: ✅ одобрена",
		},
		{
			name: "paid without bank info",
			run:  func(h *Handler, ctx context.Context) string { return h.paid(ctx, "/paid a1") },
			want: view.Rejected("Bank info is incomplete"),
		},
		{
			name: "paid without id",
			run:  func(h *Handler, ctx context.Context) string { return h.paid(ctx, "/paid   ") },
			want: "❌ Использование: /paid <code>ID</code>",
		},
	}

	for _, tt := range tc {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			r := require.New(t)
			h := New(newFakeService())

			r.Equal(tt.want, tt.run(h, context.Background()))
		})
	}
}

func TestHandler_RejectKeepsReason(t *testing.T) {
	t.Parallel()

	r := require.New(t)
	svc := newFakeService()
	h := New(svc)

	got := h.reject(context.Background(), "/reject p1  screen is  cracked ")
	r.Equal("Заявка <code>p1</code>: 🚫 отклонена", got)
	r.True(svc.updated.AdminNotes.Set)
	r.Equal("screen is  cracked", svc.updated.AdminNotes.Value)

	h.reject(context.Background(), "/reject p1")
	r.False(svc.updated.AdminNotes.Set)
}

func TestHandler_Pending(t *testing.T) {
	t.Parallel()

	r := require.New(t)
	svc := newFakeService()
	h := New(svc)

	got := h.pending(context.Background())
	r.Contains(got, "iPhone 15 Pro")
	r.Contains(got, "<code>p1</code>")
	r.NotContains(got, "<code>a1</code>")

	svc.listErr = errors.New("db is down")
	r.Equal(view.InternalError, h.pending(context.Background()))
}

func TestCommandArgs(t *testing.T) {
	t.Parallel()

	tc := []struct {
		text     string
		wantID   string
		wantRest string
		wantOK   bool
	}{
		{text: "/show", wantOK: false},
		{text: "/show abc", wantID: "abc", wantOK: true},
		{text: "/reject abc too old", wantID: "abc", wantRest: "too old", wantOK: true},
		{text: "/reject@buyback_bot abc", wantID: "abc", wantOK: true},
	}

	for _, tt := range tc {
		t.Run(tt.text, func(t *testing.T) {
			t.Parallel()

			r := require.New(t)

			id, rest, ok := commandArgs(tt.text)
			r.Equal(tt.wantOK, ok)
			r.Equal(tt.wantID, id)
			r.Equal(tt.wantRest, rest)
		})
	}
}
