package repository

import (
	"context"
	"errors"

	"github.com/brightlms/commission-service/internal/domain"
	"github.com/brightlms/commission-service/internal/infrastructure/postgres/mappers"
	"github.com/brightlms/commission-service/internal/infrastructure/postgres/models"
	"gorm.io/gorm"
)

type DefaultRawPaymentRepository struct {
	DB *gorm.DB
}

func NewDefaultRawPaymentRepository(db *gorm.DB) *DefaultRawPaymentRepository {
	return &DefaultRawPaymentRepository{DB: db}
}

func (r *DefaultRawPaymentRepository) GetByOrderID(ctx context.Context, orderID string) (*domain.RawPayment, error) {
	var model models.RawPaymentModel
	if err := r.DB.WithContext(ctx).First(&model, "order_id = ?", orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrPaymentNotFound
		}
		return nil, err
	}
	return mappers.ToDomainRawPayment(&model), nil
}

func (r *DefaultRawPaymentRepository) ListByStatus(ctx context.Context, status domain.RawPaymentStatus) ([]*domain.RawPayment, error) {
	var paymentModels []models.RawPaymentModel
	if err := r.DB.WithContext(ctx).
		Where("status = ?", string(status)).
		Order("created_at ASC").
		Find(&paymentModels).Error; err != nil {
		return nil, err
	}

	payments := make([]*domain.RawPayment, len(paymentModels))
	for i := range paymentModels {
		payments[i] = mappers.ToDomainRawPayment(&paymentModels[i])
	}
	return payments, nil
}
