package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/brightlms/commission-service/internal/commission"
	"github.com/brightlms/commission-service/internal/domain"
	creatordto "github.com/brightlms/commission-service/internal/usecase/dto/creator"
	"github.com/google/uuid"
)

type CreatorUsecase interface {
	GetStats(ctx context.Context, creatorID string) (*creatordto.StatsOutput, error)
	RecordWithdrawal(ctx context.Context, creatorID string, amount float64) error
	CreateDiscountCode(ctx context.Context, creatorID, code string, discountPercent float64) (*creatordto.DiscountCodeOutput, error)
	ListDiscountCodes(ctx context.Context, creatorID string) ([]*creatordto.DiscountCodeOutput, error)
}

type DefaultCreatorUsecase struct {
	CreatorRepo  domain.CreatorRepository
	CMORepo      domain.CMORepository
	DiscountRepo domain.DiscountCodeRepository
	Schedule     commission.Schedule
}

func NewDefaultCreatorUsecase(
	creatorRepo domain.CreatorRepository,
	cmoRepo domain.CMORepository,
	discountRepo domain.DiscountCodeRepository,
	schedule commission.Schedule) *DefaultCreatorUsecase {

	return &DefaultCreatorUsecase{
		CreatorRepo:  creatorRepo,
		CMORepo:      cmoRepo,
		DiscountRepo: discountRepo,
		Schedule:     schedule,
	}
}

func (uc *DefaultCreatorUsecase) GetStats(ctx context.Context, creatorID string) (*creatordto.StatsOutput, error) {
	creator, err := uc.CreatorRepo.GetByID(ctx, creatorID)
	if err != nil {
		return nil, err
	}

	stats := &creatordto.StatsOutput{
		CreatorID:         creator.ID,
		ReferralCode:      creator.ReferralCode,
		LifetimePaidUsers: creator.LifetimePaidUsers,
		AvailableBalance:  creator.AvailableBalance,
		TotalWithdrawn:    creator.TotalWithdrawn,
		EffectiveRate:     uc.Schedule.Resolve(creator.LifetimePaidUsers, creator.CustomCommissionRate),
		CustomRateSet:     creator.CustomCommissionRate != nil,
	}

	if creator.CMOID != nil {
		stats.CMOID = *creator.CMOID
		cmo, err := uc.CMORepo.GetByID(ctx, *creator.CMOID)
		if err == nil {
			stats.CMOReferralCode = cmo.ReferralCode
		}
	}

	return stats, nil
}

func (uc *DefaultCreatorUsecase) RecordWithdrawal(ctx context.Context, creatorID string, amount float64) error {
	if amount <= 0 {
		return fmt.Errorf("withdrawal amount must be positive")
	}
	return uc.CreatorRepo.RecordWithdrawal(ctx, creatorID, commission.RoundCents(amount))
}

func (uc *DefaultCreatorUsecase) CreateDiscountCode(ctx context.Context, creatorID, code string, discountPercent float64) (*creatordto.DiscountCodeOutput, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return nil, fmt.Errorf("code is required")
	}
	if discountPercent < 0 || discountPercent > 100 {
		return nil, fmt.Errorf("discount percent must be between 0 and 100")
	}
	if _, err := uc.CreatorRepo.GetByID(ctx, creatorID); err != nil {
		return nil, err
	}

	dc := &domain.DiscountCode{
		ID:              uuid.New().String(),
		Code:            code,
		CreatorID:       creatorID,
		DiscountPercent: discountPercent,
		CreatedAt:       time.Now().UTC(),
	}
	if err := uc.DiscountRepo.Create(ctx, dc); err != nil {
		return nil, err
	}

	return toDiscountOutput(dc), nil
}

func (uc *DefaultCreatorUsecase) ListDiscountCodes(ctx context.Context, creatorID string) ([]*creatordto.DiscountCodeOutput, error) {
	codes, err := uc.DiscountRepo.ListByCreator(ctx, creatorID)
	if err != nil {
		return nil, err
	}

	outputs := make([]*creatordto.DiscountCodeOutput, len(codes))
	for i, dc := range codes {
		outputs[i] = toDiscountOutput(dc)
	}
	return outputs, nil
}

func toDiscountOutput(dc *domain.DiscountCode) *creatordto.DiscountCodeOutput {
	return &creatordto.DiscountCodeOutput{
		ID:              dc.ID,
		Code:            dc.Code,
		CreatorID:       dc.CreatorID,
		DiscountPercent: dc.DiscountPercent,
		PaidConversions: dc.PaidConversions,
		CreatedAt:       dc.CreatedAt,
	}
}
