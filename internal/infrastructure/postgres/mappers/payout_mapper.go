package mappers

import (
	"github.com/brightlms/commission-service/internal/domain"
	"github.com/brightlms/commission-service/internal/infrastructure/postgres/models"
)

func ToDomainPayout(model *models.PayoutRecordModel) *domain.PayoutRecord {
	return &domain.PayoutRecord{
		ID:               model.ID,
		EntityID:         model.EntityID,
		EntityType:       domain.PayoutEntityType(model.EntityType),
		PayoutMonth:      model.PayoutMonth,
		TotalPaidUsers:   model.TotalPaidUsers,
		CommissionAmount: model.CommissionAmount,
		Status:           domain.PayoutStatus(model.Status),
		PaidAt:           model.PaidAt,
		CreatedAt:        model.CreatedAt,
		UpdatedAt:        model.UpdatedAt,
	}
}

func ToDomainRawPayment(model *models.RawPaymentModel) *domain.RawPayment {
	return &domain.RawPayment{
		OrderID:        model.OrderID,
		UserID:         model.UserID,
		EnrollmentID:   model.EnrollmentID,
		BuyerEmail:     model.BuyerEmail,
		BuyerName:      model.BuyerName,
		Status:         domain.RawPaymentStatus(model.Status),
		OriginalAmount: model.OriginalAmount,
		FinalAmount:    model.FinalAmount,
		ReferralCode:   model.ReferralCode,
		DiscountCode:   model.DiscountCode,
		PaymentType:    domain.PaymentType(model.PaymentType),
		Tier:           model.Tier,
		CreatedAt:      model.CreatedAt,
		UpdatedAt:      model.UpdatedAt,
	}
}
