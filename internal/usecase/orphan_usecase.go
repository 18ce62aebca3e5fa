package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/brightlms/commission-service/internal/domain"
	attributiondto "github.com/brightlms/commission-service/internal/usecase/dto/attribution"
	reconciledto "github.com/brightlms/commission-service/internal/usecase/dto/reconcile"
)

type OrphanUsecase interface {
	// ListOrphans returns completed payments with no attribution: a
	// pure set difference, never a heuristic match.
	ListOrphans(ctx context.Context) ([]*reconciledto.Orphan, error)
	FixOrphan(ctx context.Context, orderID string) (*attributiondto.FinalizePaymentOutput, error)
	// ReconcileAll sweeps every orphan through the attribution writer,
	// continuing past individual failures.
	ReconcileAll(ctx context.Context) (*reconciledto.ReconcileReport, error)
}

type DefaultOrphanUsecase struct {
	RawPaymentRepo  domain.RawPaymentRepository
	AttributionRepo domain.AttributionRepository
	Writer          AttributionUsecase
	Guard           *BulkOpGuard
}

func NewDefaultOrphanUsecase(
	rawPaymentRepo domain.RawPaymentRepository,
	attributionRepo domain.AttributionRepository,
	writer AttributionUsecase,
	guard *BulkOpGuard) *DefaultOrphanUsecase {

	return &DefaultOrphanUsecase{
		RawPaymentRepo:  rawPaymentRepo,
		AttributionRepo: attributionRepo,
		Writer:          writer,
		Guard:           guard,
	}
}

func (uc *DefaultOrphanUsecase) ListOrphans(ctx context.Context) ([]*reconciledto.Orphan, error) {
	completed, err := uc.RawPaymentRepo.ListByStatus(ctx, domain.RawPaymentCompleted)
	if err != nil {
		return nil, fmt.Errorf("list completed payments: %w", err)
	}

	orderIDs, err := uc.AttributionRepo.ListOrderIDs(ctx)
	if err != nil {
		return nil, fmt.Errorf("list attributed order ids: %w", err)
	}

	attributed := make(map[string]struct{}, len(orderIDs))
	for _, id := range orderIDs {
		attributed[id] = struct{}{}
	}

	orphans := make([]*reconciledto.Orphan, 0)
	for _, payment := range completed {
		if _, ok := attributed[payment.OrderID]; ok {
			continue
		}
		orphans = append(orphans, &reconciledto.Orphan{
			OrderID:     payment.OrderID,
			UserID:      payment.UserID,
			BuyerEmail:  payment.BuyerEmail,
			BuyerName:   payment.BuyerName,
			FinalAmount: payment.FinalAmount,
			PaymentType: string(payment.PaymentType),
			CreatedAt:   payment.CreatedAt,
		})
	}

	return orphans, nil
}

func (uc *DefaultOrphanUsecase) FixOrphan(ctx context.Context, orderID string) (*attributiondto.FinalizePaymentOutput, error) {
	payment, err := uc.RawPaymentRepo.GetByOrderID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if payment.Status != domain.RawPaymentCompleted {
		return nil, domain.ErrPaymentNotCompleted
	}

	// Re-drive the writer with the metadata the checkout flow captured.
	// The writer's idempotency gate makes this safe even if the orphan
	// was repaired in the meantime.
	return uc.Writer.FinalizePayment(ctx, &attributiondto.FinalizePaymentInput{
		OrderID:        payment.OrderID,
		UserID:         payment.UserID,
		EnrollmentID:   payment.EnrollmentID,
		Tier:           payment.Tier,
		OriginalAmount: payment.OriginalAmount,
		FinalAmount:    payment.FinalAmount,
		ReferralCode:   payment.ReferralCode,
		DiscountCode:   payment.DiscountCode,
		PaymentType:    payment.PaymentType,
	})
}

func (uc *DefaultOrphanUsecase) ReconcileAll(ctx context.Context) (*reconciledto.ReconcileReport, error) {
	if !uc.Guard.TryAcquire() {
		return nil, domain.ErrReconciliationRunning
	}
	defer uc.Guard.Release()

	orphans, err := uc.ListOrphans(ctx)
	if err != nil {
		return nil, err
	}

	report := &reconciledto.ReconcileReport{}
	for _, orphan := range orphans {
		if _, err := uc.FixOrphan(ctx, orphan.OrderID); err != nil {
			report.Failed++
			report.Failures = append(report.Failures, reconciledto.OrphanFailure{
				OrderID: orphan.OrderID,
				Error:   err.Error(),
			})
			slog.Error("orphan repair failed", "order_id", orphan.OrderID, "error", err.Error())
			continue
		}
		report.Fixed++
	}

	slog.Info("orphan reconciliation finished", "fixed", report.Fixed, "failed", report.Failed)
	return report, nil
}
