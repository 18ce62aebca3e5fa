package repository

import (
	"context"
	"errors"

	"github.com/brightlms/commission-service/internal/domain"
	"github.com/brightlms/commission-service/internal/infrastructure/postgres/mappers"
	"github.com/brightlms/commission-service/internal/infrastructure/postgres/models"
	"gorm.io/gorm"
)

type DefaultDiscountCodeRepository struct {
	DB *gorm.DB
}

func NewDefaultDiscountCodeRepository(db *gorm.DB) *DefaultDiscountCodeRepository {
	return &DefaultDiscountCodeRepository{DB: db}
}

func (r *DefaultDiscountCodeRepository) GetByCode(ctx context.Context, code string) (*domain.DiscountCode, error) {
	var model models.DiscountCodeModel
	if err := r.DB.WithContext(ctx).First(&model, "code = ?", code).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUnknownDiscountCode
		}
		return nil, err
	}
	return mappers.ToDomainDiscountCode(&model), nil
}

func (r *DefaultDiscountCodeRepository) Create(ctx context.Context, dc *domain.DiscountCode) error {
	if err := r.DB.WithContext(ctx).Create(mappers.ToGORMDiscountCode(dc)).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.ErrDiscountCodeExists
		}
		return err
	}
	return nil
}

func (r *DefaultDiscountCodeRepository) ListByCreator(ctx context.Context, creatorID string) ([]*domain.DiscountCode, error) {
	var codeModels []models.DiscountCodeModel
	if err := r.DB.WithContext(ctx).
		Where("creator_id = ?", creatorID).
		Order("created_at DESC").
		Find(&codeModels).Error; err != nil {
		return nil, err
	}

	codes := make([]*domain.DiscountCode, len(codeModels))
	for i := range codeModels {
		codes[i] = mappers.ToDomainDiscountCode(&codeModels[i])
	}
	return codes, nil
}
