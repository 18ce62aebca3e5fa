package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/brightlms/commission-service/internal/domain"
	payoutdto "github.com/brightlms/commission-service/internal/usecase/dto/payout"
	"github.com/google/uuid"
	"github.com/jaevor/go-nanoid"
)

type PayoutUsecase interface {
	ListPayouts(ctx context.Context, filter domain.PayoutFilter) ([]*payoutdto.PayoutOutput, error)
	// IssueConfirmation generates the one-time code an operator must
	// present before a sensitive mark-paid.
	IssueConfirmation(ctx context.Context, payoutID string) (*payoutdto.ConfirmationOutput, error)
	MarkEligible(ctx context.Context, payoutID string) error
	// MarkPaid is operator-only and irreversible. Payouts at or above
	// the confirmation threshold require a valid code.
	MarkPaid(ctx context.Context, payoutID, confirmationCode string) (*payoutdto.PayoutOutput, error)
}

type DefaultPayoutUsecase struct {
	PayoutRepo            domain.PayoutRepository
	Publisher             domain.EventPublisher
	ConfirmationThreshold float64
	ConfirmationTTL       time.Duration
}

func NewDefaultPayoutUsecase(
	payoutRepo domain.PayoutRepository,
	publisher domain.EventPublisher,
	confirmationThreshold float64,
	confirmationTTL time.Duration) *DefaultPayoutUsecase {

	return &DefaultPayoutUsecase{
		PayoutRepo:            payoutRepo,
		Publisher:             publisher,
		ConfirmationThreshold: confirmationThreshold,
		ConfirmationTTL:       confirmationTTL,
	}
}

func (uc *DefaultPayoutUsecase) ListPayouts(ctx context.Context, filter domain.PayoutFilter) ([]*payoutdto.PayoutOutput, error) {
	payouts, err := uc.PayoutRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	outputs := make([]*payoutdto.PayoutOutput, len(payouts))
	for i, p := range payouts {
		outputs[i] = &payoutdto.PayoutOutput{
			ID:               p.ID,
			EntityID:         p.EntityID,
			EntityType:       string(p.EntityType),
			PayoutMonth:      p.PayoutMonth,
			TotalPaidUsers:   p.TotalPaidUsers,
			CommissionAmount: p.CommissionAmount,
			Status:           string(p.Status),
			PaidAt:           p.PaidAt,
		}
	}
	return outputs, nil
}

func (uc *DefaultPayoutUsecase) IssueConfirmation(ctx context.Context, payoutID string) (*payoutdto.ConfirmationOutput, error) {
	payout, err := uc.PayoutRepo.GetByID(ctx, payoutID)
	if err != nil {
		return nil, err
	}
	if payout.Status == domain.PayoutStatusPaid {
		return nil, domain.ErrPayoutAlreadyPaid
	}

	codeGenerator, err := nanoid.Standard(10)
	if err != nil {
		return nil, fmt.Errorf("init code generator: %w", err)
	}

	confirmation := &domain.PayoutConfirmation{
		ID:        uuid.New().String(),
		PayoutID:  payoutID,
		Code:      codeGenerator(),
		ExpiresAt: time.Now().UTC().Add(uc.ConfirmationTTL),
		CreatedAt: time.Now().UTC(),
	}
	if err := uc.PayoutRepo.CreateConfirmation(ctx, confirmation); err != nil {
		return nil, fmt.Errorf("store confirmation: %w", err)
	}

	return &payoutdto.ConfirmationOutput{
		PayoutID:  payoutID,
		Code:      confirmation.Code,
		ExpiresAt: confirmation.ExpiresAt,
	}, nil
}

func (uc *DefaultPayoutUsecase) MarkEligible(ctx context.Context, payoutID string) error {
	payout, err := uc.PayoutRepo.GetByID(ctx, payoutID)
	if err != nil {
		return err
	}
	if payout.Status == domain.PayoutStatusPaid {
		return domain.ErrPayoutAlreadyPaid
	}
	return uc.PayoutRepo.UpdateStatus(ctx, payoutID, domain.PayoutStatusEligible, nil)
}

func (uc *DefaultPayoutUsecase) MarkPaid(ctx context.Context, payoutID, confirmationCode string) (*payoutdto.PayoutOutput, error) {
	payout, err := uc.PayoutRepo.GetByID(ctx, payoutID)
	if err != nil {
		return nil, err
	}
	if payout.Status == domain.PayoutStatusPaid {
		return nil, domain.ErrPayoutAlreadyPaid
	}

	if payout.CommissionAmount >= uc.ConfirmationThreshold {
		if confirmationCode == "" {
			return nil, domain.ErrConfirmationRequired
		}
		if err := uc.PayoutRepo.ConsumeConfirmation(ctx, payoutID, confirmationCode); err != nil {
			return nil, err
		}
	}

	now := time.Now().UTC()
	if err := uc.PayoutRepo.UpdateStatus(ctx, payoutID, domain.PayoutStatusPaid, &now); err != nil {
		return nil, err
	}

	event := domain.PayoutPaidEvent{
		PayoutID:         payout.ID,
		EntityID:         payout.EntityID,
		EntityType:       string(payout.EntityType),
		PayoutMonth:      payout.PayoutMonth.Format("2006-01"),
		CommissionAmount: payout.CommissionAmount,
	}
	if err := uc.Publisher.PublishPayoutPaid(ctx, event); err != nil {
		slog.Error("failed to publish payout event", "payout_id", payout.ID, "error", err.Error())
	}

	return &payoutdto.PayoutOutput{
		ID:               payout.ID,
		EntityID:         payout.EntityID,
		EntityType:       string(payout.EntityType),
		PayoutMonth:      payout.PayoutMonth,
		TotalPaidUsers:   payout.TotalPaidUsers,
		CommissionAmount: payout.CommissionAmount,
		Status:           string(domain.PayoutStatusPaid),
		PaidAt:           &now,
	}, nil
}
