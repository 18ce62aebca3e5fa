package repository

import (
	"context"
	"errors"

	"github.com/brightlms/commission-service/internal/domain"
	"github.com/brightlms/commission-service/internal/infrastructure/postgres/mappers"
	"github.com/brightlms/commission-service/internal/infrastructure/postgres/models"
	"gorm.io/gorm"
)

type DefaultUserAttributionRepository struct {
	DB *gorm.DB
}

func NewDefaultUserAttributionRepository(db *gorm.DB) *DefaultUserAttributionRepository {
	return &DefaultUserAttributionRepository{DB: db}
}

func (r *DefaultUserAttributionRepository) Find(ctx context.Context, userID string) (*domain.UserAttribution, error) {
	var model models.UserAttributionModel
	if err := r.DB.WithContext(ctx).First(&model, "user_id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return mappers.ToDomainUserAttribution(&model), nil
}
