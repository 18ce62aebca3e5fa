package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/brightlms/commission-service/internal/commission"
	"github.com/brightlms/commission-service/internal/domain"
	reconciledto "github.com/brightlms/commission-service/internal/usecase/dto/reconcile"
)

type RecalcUsecase interface {
	// DriftReport compares cached creator stats against the ledger
	// without modifying anything.
	DriftReport(ctx context.Context) ([]*reconciledto.CreatorDrift, error)
	// RecalculateStats rebuilds every creator cache and every monthly
	// payout record from the attribution ledger. Idempotent.
	RecalculateStats(ctx context.Context) (*reconciledto.RecalcReport, error)
}

type DefaultRecalcUsecase struct {
	AttributionRepo domain.AttributionRepository
	CreatorRepo     domain.CreatorRepository
	PayoutRepo      domain.PayoutRepository
	Schedule        commission.Schedule
	Guard           *BulkOpGuard
}

func NewDefaultRecalcUsecase(
	attributionRepo domain.AttributionRepository,
	creatorRepo domain.CreatorRepository,
	payoutRepo domain.PayoutRepository,
	schedule commission.Schedule,
	guard *BulkOpGuard) *DefaultRecalcUsecase {

	return &DefaultRecalcUsecase{
		AttributionRepo: attributionRepo,
		CreatorRepo:     creatorRepo,
		PayoutRepo:      payoutRepo,
		Schedule:        schedule,
		Guard:           guard,
	}
}

func (uc *DefaultRecalcUsecase) DriftReport(ctx context.Context) ([]*reconciledto.CreatorDrift, error) {
	aggregates, err := uc.AttributionRepo.AggregateByCreator(ctx)
	if err != nil {
		return nil, err
	}
	byCreator := make(map[string]*domain.CreatorAggregate, len(aggregates))
	for _, agg := range aggregates {
		byCreator[agg.CreatorID] = agg
	}

	creators, err := uc.CreatorRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	drifts := make([]*reconciledto.CreatorDrift, 0)
	for _, creator := range creators {
		var actualUsers int64
		var actualCommission float64
		if agg, ok := byCreator[creator.ID]; ok {
			actualUsers = agg.PaidUsers
			actualCommission = agg.TotalCommission
		}
		actualBalance := commission.RoundCents(actualCommission - creator.TotalWithdrawn)

		if creator.LifetimePaidUsers == actualUsers && creator.AvailableBalance == actualBalance {
			continue
		}
		drifts = append(drifts, &reconciledto.CreatorDrift{
			CreatorID:       creator.ID,
			CachedPaidUsers: creator.LifetimePaidUsers,
			ActualPaidUsers: actualUsers,
			CachedBalance:   creator.AvailableBalance,
			ActualBalance:   actualBalance,
		})
	}

	return drifts, nil
}

func (uc *DefaultRecalcUsecase) RecalculateStats(ctx context.Context) (*reconciledto.RecalcReport, error) {
	if !uc.Guard.TryAcquire() {
		return nil, domain.ErrReconciliationRunning
	}
	defer uc.Guard.Release()

	aggregates, err := uc.AttributionRepo.AggregateByCreator(ctx)
	if err != nil {
		return nil, fmt.Errorf("aggregate ledger: %w", err)
	}
	byCreator := make(map[string]*domain.CreatorAggregate, len(aggregates))
	for _, agg := range aggregates {
		byCreator[agg.CreatorID] = agg
	}

	creators, err := uc.CreatorRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list creators: %w", err)
	}

	report := &reconciledto.RecalcReport{}

	// Creators with no attributions are overwritten too: a drifted
	// cache must converge to zero, not keep its stale values.
	for _, creator := range creators {
		var paidUsers int64
		var totalCommission float64
		if agg, ok := byCreator[creator.ID]; ok {
			paidUsers = agg.PaidUsers
			totalCommission = agg.TotalCommission
		}
		if err := uc.CreatorRepo.OverwriteStats(ctx, creator.ID, paidUsers, totalCommission); err != nil {
			report.CreatorsFailed++
			slog.Error("creator stat rebuild failed", "creator_id", creator.ID, "error", err.Error())
			continue
		}
		report.CreatorsUpdated++
	}

	creatorMonthly, err := uc.AttributionRepo.AggregateCreatorMonthly(ctx)
	if err != nil {
		return nil, fmt.Errorf("aggregate creator payouts: %w", err)
	}
	for _, agg := range creatorMonthly {
		if err := uc.PayoutRepo.UpsertAggregate(ctx, domain.PayoutEntityCreator, agg); err != nil {
			report.PayoutsFailed++
			slog.Error("creator payout rebuild failed", "creator_id", agg.EntityID, "month", agg.PayoutMonth, "error", err.Error())
			continue
		}
		report.CreatorPayoutsUpserted++
	}

	cmoMonthly, err := uc.AttributionRepo.AggregateCMOMonthly(ctx, uc.Schedule.CMOOverrideRate)
	if err != nil {
		return nil, fmt.Errorf("aggregate cmo payouts: %w", err)
	}
	for _, agg := range cmoMonthly {
		if err := uc.PayoutRepo.UpsertAggregate(ctx, domain.PayoutEntityCMO, agg); err != nil {
			report.PayoutsFailed++
			slog.Error("cmo payout rebuild failed", "cmo_id", agg.EntityID, "month", agg.PayoutMonth, "error", err.Error())
			continue
		}
		report.CMOPayoutsRegenerated++
	}

	slog.Info("stat recalculation finished",
		"creators_updated", report.CreatorsUpdated,
		"cmo_payouts_regenerated", report.CMOPayoutsRegenerated,
		"failures", report.CreatorsFailed+report.PayoutsFailed,
	)
	return report, nil
}
