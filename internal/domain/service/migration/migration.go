package migration

import (
	"context"
	"fmt"
	"log/slog"

	"buyback/internal/domain/entity"
	"buyback/pkg/logx"
)

const DefaultBatchSize = 200

type Repository interface {
	// ListAfter отдаёт записи с id больше afterID по возрастанию id.
	ListAfter(ctx context.Context, afterID string, limit int) ([]entity.BuyRequest, error)
	// UpdateBatch сохраняет пачку атомарно.
	UpdateBatch(ctx context.Context, items []entity.BuyRequest) error
	CountLegacy(ctx context.Context) (int, error)
}

type Options struct {
	RewriteStatuses    bool
	BackfillTimestamps bool
	DryRun             bool
	BatchSize          int
}

type Report struct {
	Scanned         int
	Updated         int
	StatusRewritten int
	ApprovedAtSet   int
	PaidAtSet       int
	CancelledAtSet  int
	RemainingLegacy int
}

// Migrator переводит старые записи на актуальную схему статусов.
type Migrator struct {
	repo Repository
}

func NewMigrator(repo Repository) *Migrator {
	return &Migrator{repo: repo}
}

func (m *Migrator) Run(ctx context.Context, opts Options) (Report, error) {
	batch := opts.BatchSize
	if batch <= 0 {
		batch = DefaultBatchSize
	}

	var (
		report Report
		after  string
	)

	for {
		items, err := m.repo.ListAfter(ctx, after, batch)
		if err != nil {
			return report, fmt.Errorf("repo.ListAfter: %w", err)
		}

		changed := make([]entity.BuyRequest, 0, len(items))

		for i := range items {
			report.Scanned++

			if m.apply(&items[i], opts, &report) {
				changed = append(changed, items[i])
			}
		}

		report.Updated += len(changed)

		if !opts.DryRun {
			if err := m.repo.UpdateBatch(ctx, changed); err != nil {
				return report, fmt.Errorf("repo.UpdateBatch: %w", err)
			}
		}

		if len(items) < batch {
			break
		}

		after = items[len(items)-1].ID
	}

	remaining, err := m.repo.CountLegacy(ctx)
	if err != nil {
		return report, fmt.Errorf("repo.CountLegacy: %w", err)
	}
	report.RemainingLegacy = remaining

	logger(ctx).Info("legacy migration finished",
		slog.Int("scanned", report.Scanned),
		slog.Int("updated", report.Updated),
		slog.Int("status-rewritten", report.StatusRewritten),
		slog.Int("approved-at-set", report.ApprovedAtSet),
		slog.Int("paid-at-set", report.PaidAtSet),
		slog.Int("cancelled-at-set", report.CancelledAtSet),
		slog.Int(logx.FieldCount, report.RemainingLegacy),
		slog.Bool("dry-run", opts.DryRun),
	)

	if report.RemainingLegacy > 0 && !opts.DryRun && opts.RewriteStatuses {
		logger(ctx).Warn("legacy statuses remain after migration",
			slog.Int(logx.FieldCount, report.RemainingLegacy),
		)
	}

	return report, nil
}

// apply меняет r на месте и сообщает, нужно ли сохранять запись.
func (m *Migrator) apply(r *entity.BuyRequest, opts Options, report *Report) bool {
	changed := false

	if opts.RewriteStatuses && entity.HasLegacyStatus(*r) {
		*r = entity.Normalize(*r)
		report.StatusRewritten++
		changed = true
	}

	if opts.BackfillTimestamps {
		approved, paid, cancelled := entity.BackfillTimestamps(r)
		if approved {
			report.ApprovedAtSet++
		}
		if paid {
			report.PaidAtSet++
		}
		if cancelled {
			report.CancelledAtSet++
		}
		changed = changed || approved || paid || cancelled
	}

	return changed
}
