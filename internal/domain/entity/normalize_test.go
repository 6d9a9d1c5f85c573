package entity_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"buyback/internal/domain/entity"
)

func TestNormalize(t *testing.T) {
	t0 := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name        string
		in          entity.BuyRequest
		wantStatus  entity.BuyRequestStatus
		wantHistory []entity.BuyRequestStatus
	}{
		{
			name: "legacy status and history",
			in: entity.BuyRequest{
				Status: entity.StatusLegacyCompleted,
				StatusHistory: entity.StatusHistory{
					{Status: entity.StatusPending, ChangedAt: t0},
					{Status: entity.StatusApproved, ChangedAt: t0.Add(time.Hour)},
					{Status: entity.StatusLegacyCompleted, ChangedAt: t0.Add(2 * time.Hour)},
				},
			},
			wantStatus: entity.StatusPaid,
			wantHistory: []entity.BuyRequestStatus{
				entity.StatusPending, entity.StatusApproved, entity.StatusPaid,
			},
		},
		{
			name: "current statuses untouched",
			in: entity.BuyRequest{
				Status: entity.StatusCancelled,
				StatusHistory: entity.StatusHistory{
					{Status: entity.StatusPending, ChangedAt: t0},
					{Status: entity.StatusCancelled, ChangedAt: t0},
				},
			},
			wantStatus:  entity.StatusCancelled,
			wantHistory: []entity.BuyRequestStatus{entity.StatusPending, entity.StatusCancelled},
		},
		{
			name:       "nil history",
			in:         entity.BuyRequest{Status: entity.StatusPending},
			wantStatus: entity.StatusPending,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rq := require.New(t)

			before := tt.in.StatusHistory
			var beforeStatuses []entity.BuyRequestStatus
			for _, e := range before {
				beforeStatuses = append(beforeStatuses, e.Status)
			}

			got := entity.Normalize(tt.in)

			rq.Equal(tt.wantStatus, got.Status)

			var gotHistory []entity.BuyRequestStatus
			for _, e := range got.StatusHistory {
				gotHistory = append(gotHistory, e.Status)
			}
			rq.Equal(tt.wantHistory, gotHistory)
			rq.False(entity.HasLegacyStatus(got))

			// исходная история не тронута
			var afterStatuses []entity.BuyRequestStatus
			for _, e := range tt.in.StatusHistory {
				afterStatuses = append(afterStatuses, e.Status)
			}
			rq.Equal(beforeStatuses, afterStatuses)

			rq.Equal(got, entity.Normalize(got))
		})
	}
}

func TestBackfillTimestamps(t *testing.T) {
	rq := require.New(t)

	t0 := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	approvedAt := t0.Add(time.Minute)
	preset := t0.Add(time.Hour)

	r := entity.BuyRequest{
		Status: entity.StatusLegacyCompleted,
		StatusHistory: entity.StatusHistory{
			{Status: entity.StatusPending, ChangedAt: t0},
			{Status: entity.StatusApproved, ChangedAt: approvedAt},
			{Status: entity.StatusApproved, ChangedAt: t0.Add(2 * time.Minute)},
			{Status: entity.StatusLegacyCompleted, ChangedAt: t0.Add(3 * time.Minute)},
		},
		PaidAt: &preset,
	}

	approved, paid, cancelled := entity.BackfillTimestamps(&r)
	rq.True(approved)
	rq.False(paid)
	rq.False(cancelled)

	rq.NotNil(r.ApprovedAt)
	rq.Equal(approvedAt, *r.ApprovedAt)
	rq.Equal(preset, *r.PaidAt)
	rq.Nil(r.CancelledAt)

	// запись в хранилище остаётся со старым статусом
	rq.Equal(entity.StatusLegacyCompleted, r.Status)

	approved, paid, cancelled = entity.BackfillTimestamps(&r)
	rq.False(approved || paid || cancelled)
}

func TestParseStatus(t *testing.T) {
	tests := []struct {
		in      string
		want    entity.BuyRequestStatus
		wantErr bool
	}{
		{in: "pending", want: entity.StatusPending},
		{in: "approved", want: entity.StatusApproved},
		{in: "rejected", want: entity.StatusRejected},
		{in: "paid", want: entity.StatusPaid},
		{in: "cancelled", want: entity.StatusCancelled},
		{in: "completed", wantErr: true},
		{in: "", wantErr: true},
		{in: "PAID", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			rq := require.New(t)

			got, err := entity.ParseStatus(tt.in)
			if tt.wantErr {
				rq.Error(err)
				return
			}

			rq.NoError(err)
			rq.Equal(tt.want, got)
		})
	}
}

func TestNewPage(t *testing.T) {
	rq := require.New(t)

	p := entity.NewPage[int](nil, 41, 3, 20)
	rq.Equal(3, p.TotalPages)
	rq.NotNil(p.Items)
	rq.Empty(p.Items)

	p = entity.NewPage([]int{1}, 0, 1, 20)
	rq.Equal(0, p.TotalPages)

	p = entity.NewPage([]int{1, 2}, 40, 2, 20)
	rq.Equal(2, p.TotalPages)
}
