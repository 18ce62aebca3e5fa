package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/brightlms/commission-service/internal/commission"
	"github.com/brightlms/commission-service/internal/domain"
	attributiondto "github.com/brightlms/commission-service/internal/usecase/dto/attribution"
	"github.com/google/uuid"
)

type AttributionUsecase interface {
	// FinalizePayment turns one completed payment into at most one
	// attribution. Safe to call repeatedly for the same order_id.
	FinalizePayment(ctx context.Context, input *attributiondto.FinalizePaymentInput) (*attributiondto.FinalizePaymentOutput, error)
}

type DefaultAttributionUsecase struct {
	AttributionRepo     domain.AttributionRepository
	UserAttributionRepo domain.UserAttributionRepository
	CreatorRepo         domain.CreatorRepository
	DiscountRepo        domain.DiscountCodeRepository
	Publisher           domain.EventPublisher
	Schedule            commission.Schedule
}

func NewDefaultAttributionUsecase(
	attributionRepo domain.AttributionRepository,
	userAttributionRepo domain.UserAttributionRepository,
	creatorRepo domain.CreatorRepository,
	discountRepo domain.DiscountCodeRepository,
	publisher domain.EventPublisher,
	schedule commission.Schedule) *DefaultAttributionUsecase {

	return &DefaultAttributionUsecase{
		AttributionRepo:     attributionRepo,
		UserAttributionRepo: userAttributionRepo,
		CreatorRepo:         creatorRepo,
		DiscountRepo:        discountRepo,
		Publisher:           publisher,
		Schedule:            schedule,
	}
}

func (uc *DefaultAttributionUsecase) FinalizePayment(ctx context.Context, input *attributiondto.FinalizePaymentInput) (*attributiondto.FinalizePaymentOutput, error) {
	if input.OrderID == "" {
		return nil, fmt.Errorf("order_id is required")
	}
	if input.UserID == "" {
		return nil, fmt.Errorf("user_id is required")
	}

	// Idempotency gate: a repeated webhook delivery or admin fix call
	// for an attributed order is a no-op success.
	existing, err := uc.AttributionRepo.GetByOrderID(ctx, input.OrderID)
	if err != nil && !errors.Is(err, domain.ErrAttributionNotFound) {
		return nil, fmt.Errorf("idempotency check: %w", err)
	}
	if existing != nil {
		return toOutput(existing, true), nil
	}

	creator, binding, usedDiscountCode, err := uc.resolveReferral(ctx, input)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	att := &domain.PaymentAttribution{
		ID:             uuid.New().String(),
		OrderID:        input.OrderID,
		UserID:         input.UserID,
		EnrollmentID:   input.EnrollmentID,
		OriginalAmount: input.OriginalAmount,
		FinalAmount:    input.FinalAmount,
		Tier:           input.Tier,
		PaymentType:    input.PaymentType,
		PaymentMonth:   commission.MonthOf(now),
		CreatedAt:      now,
	}

	app := domain.LedgerAppend{
		Attribution:  att,
		DiscountCode: usedDiscountCode,
	}

	if creator != nil {
		rate := uc.Schedule.Resolve(creator.LifetimePaidUsers, creator.CustomCommissionRate)
		att.CreatorID = &creator.ID
		att.CommissionRate = rate
		att.CommissionAmount = commission.RoundCents(input.FinalAmount * rate)
		app.BindUser = binding == nil
		if creator.CMOID != nil {
			app.CMOID = *creator.CMOID
			app.CMOShare = uc.Schedule.CMOShare(att.CommissionAmount)
		}
	}

	if err := uc.AttributionRepo.Append(ctx, &app); err != nil {
		if errors.Is(err, domain.ErrAlreadyAttributed) {
			// Lost a race against a concurrent duplicate; the winner's
			// row is authoritative.
			winner, getErr := uc.AttributionRepo.GetByOrderID(ctx, input.OrderID)
			if getErr != nil {
				return nil, fmt.Errorf("fetch winning attribution: %w", getErr)
			}
			return toOutput(winner, true), nil
		}
		return nil, fmt.Errorf("append attribution: %w", err)
	}

	uc.publishRecorded(ctx, att)

	return toOutput(att, false), nil
}

// resolveReferral decides who, if anyone, earns commission on this
// payment. An existing first-touch binding always wins, even over an
// explicit code for another creator. Unknown codes degrade to a direct
// sale rather than failing the payment.
func (uc *DefaultAttributionUsecase) resolveReferral(ctx context.Context, input *attributiondto.FinalizePaymentInput) (*domain.CreatorAccount, *domain.UserAttribution, string, error) {
	usedDiscountCode := ""
	if input.DiscountCode != "" {
		if _, err := uc.DiscountRepo.GetByCode(ctx, input.DiscountCode); err == nil {
			usedDiscountCode = input.DiscountCode
		} else if !errors.Is(err, domain.ErrUnknownDiscountCode) {
			return nil, nil, "", fmt.Errorf("lookup discount code: %w", err)
		}
	}

	binding, err := uc.UserAttributionRepo.Find(ctx, input.UserID)
	if err != nil {
		return nil, nil, "", fmt.Errorf("lookup user attribution: %w", err)
	}

	if binding != nil {
		creator, err := uc.CreatorRepo.GetByID(ctx, binding.CreatorID)
		if err != nil {
			if errors.Is(err, domain.ErrCreatorNotFound) {
				// Bound creator no longer exists; record the sale as direct.
				slog.Warn("user bound to missing creator", "user_id", input.UserID, "creator_id", binding.CreatorID)
				return nil, binding, usedDiscountCode, nil
			}
			return nil, nil, "", fmt.Errorf("lookup bound creator: %w", err)
		}
		return creator, binding, usedDiscountCode, nil
	}

	if input.ReferralCode != "" {
		creator, err := uc.CreatorRepo.GetByReferralCode(ctx, input.ReferralCode)
		if err == nil {
			return creator, nil, usedDiscountCode, nil
		}
		if !errors.Is(err, domain.ErrUnknownReferralCode) {
			return nil, nil, "", fmt.Errorf("lookup referral code: %w", err)
		}
		slog.Warn("unknown referral code on payment", "order_id", input.OrderID, "referral_code", input.ReferralCode)
	}

	if usedDiscountCode != "" {
		dc, err := uc.DiscountRepo.GetByCode(ctx, usedDiscountCode)
		if err != nil {
			return nil, nil, "", fmt.Errorf("lookup discount code: %w", err)
		}
		creator, err := uc.CreatorRepo.GetByID(ctx, dc.CreatorID)
		if err == nil {
			return creator, nil, usedDiscountCode, nil
		}
		if !errors.Is(err, domain.ErrCreatorNotFound) {
			return nil, nil, "", fmt.Errorf("lookup discount owner: %w", err)
		}
		slog.Warn("discount code owned by missing creator", "code", usedDiscountCode, "creator_id", dc.CreatorID)
	}

	return nil, nil, usedDiscountCode, nil
}

func (uc *DefaultAttributionUsecase) publishRecorded(ctx context.Context, att *domain.PaymentAttribution) {
	event := domain.AttributionRecordedEvent{
		OrderID:          att.OrderID,
		UserID:           att.UserID,
		CommissionRate:   att.CommissionRate,
		CommissionAmount: att.CommissionAmount,
		FinalAmount:      att.FinalAmount,
		PaymentMonth:     att.PaymentMonth.Format("2006-01"),
	}
	if att.CreatorID != nil {
		event.CreatorID = *att.CreatorID
	}
	if err := uc.Publisher.PublishAttributionRecorded(ctx, event); err != nil {
		slog.Error("failed to publish attribution event", "order_id", att.OrderID, "error", err.Error())
	}
}

func toOutput(att *domain.PaymentAttribution, alreadyAttributed bool) *attributiondto.FinalizePaymentOutput {
	out := &attributiondto.FinalizePaymentOutput{
		AttributionID:     att.ID,
		OrderID:           att.OrderID,
		CommissionRate:    att.CommissionRate,
		CommissionAmount:  att.CommissionAmount,
		PaymentMonth:      att.PaymentMonth,
		AlreadyAttributed: alreadyAttributed,
	}
	if att.CreatorID != nil {
		out.CreatorID = *att.CreatorID
	}
	return out
}
