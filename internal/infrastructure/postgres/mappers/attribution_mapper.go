package mappers

import (
	"github.com/brightlms/commission-service/internal/domain"
	"github.com/brightlms/commission-service/internal/infrastructure/postgres/models"
)

func ToDomainAttribution(model *models.PaymentAttributionModel) *domain.PaymentAttribution {
	return &domain.PaymentAttribution{
		ID:               model.ID,
		OrderID:          model.OrderID,
		UserID:           model.UserID,
		CreatorID:        model.CreatorID,
		EnrollmentID:     model.EnrollmentID,
		OriginalAmount:   model.OriginalAmount,
		FinalAmount:      model.FinalAmount,
		CommissionRate:   model.CommissionRate,
		CommissionAmount: model.CommissionAmount,
		Tier:             model.Tier,
		PaymentType:      domain.PaymentType(model.PaymentType),
		PaymentMonth:     model.PaymentMonth,
		CreatedAt:        model.CreatedAt,
	}
}

func ToGORMAttribution(att *domain.PaymentAttribution) *models.PaymentAttributionModel {
	return &models.PaymentAttributionModel{
		ID:               att.ID,
		OrderID:          att.OrderID,
		UserID:           att.UserID,
		CreatorID:        att.CreatorID,
		EnrollmentID:     att.EnrollmentID,
		OriginalAmount:   att.OriginalAmount,
		FinalAmount:      att.FinalAmount,
		CommissionRate:   att.CommissionRate,
		CommissionAmount: att.CommissionAmount,
		Tier:             att.Tier,
		PaymentType:      string(att.PaymentType),
		PaymentMonth:     att.PaymentMonth,
		CreatedAt:        att.CreatedAt,
	}
}

func ToDomainUserAttribution(model *models.UserAttributionModel) *domain.UserAttribution {
	return &domain.UserAttribution{
		UserID:    model.UserID,
		CreatorID: model.CreatorID,
		CreatedAt: model.CreatedAt,
	}
}
