package mappers

import (
	"github.com/brightlms/commission-service/internal/domain"
	"github.com/brightlms/commission-service/internal/infrastructure/postgres/models"
)

func ToDomainCreator(model *models.CreatorAccountModel) *domain.CreatorAccount {
	return &domain.CreatorAccount{
		ID:                   model.ID,
		ReferralCode:         model.ReferralCode,
		CMOID:                model.CMOID,
		LifetimePaidUsers:    model.LifetimePaidUsers,
		AvailableBalance:     model.AvailableBalance,
		TotalWithdrawn:       model.TotalWithdrawn,
		CustomCommissionRate: model.CustomCommissionRate,
		CreatedAt:            model.CreatedAt,
		UpdatedAt:            model.UpdatedAt,
	}
}

func ToDomainCMO(model *models.CMOAccountModel) *domain.CMOAccount {
	return &domain.CMOAccount{
		ID:           model.ID,
		ReferralCode: model.ReferralCode,
		CreatedAt:    model.CreatedAt,
	}
}

func ToDomainDiscountCode(model *models.DiscountCodeModel) *domain.DiscountCode {
	return &domain.DiscountCode{
		ID:              model.ID,
		Code:            model.Code,
		CreatorID:       model.CreatorID,
		DiscountPercent: model.DiscountPercent,
		PaidConversions: model.PaidConversions,
		CreatedAt:       model.CreatedAt,
	}
}

func ToGORMDiscountCode(dc *domain.DiscountCode) *models.DiscountCodeModel {
	return &models.DiscountCodeModel{
		ID:              dc.ID,
		Code:            dc.Code,
		CreatorID:       dc.CreatorID,
		DiscountPercent: dc.DiscountPercent,
		PaidConversions: dc.PaidConversions,
		CreatedAt:       dc.CreatedAt,
	}
}
