package repository

import (
	"context"
	"errors"

	"github.com/brightlms/commission-service/internal/domain"
	"github.com/brightlms/commission-service/internal/infrastructure/postgres/mappers"
	"github.com/brightlms/commission-service/internal/infrastructure/postgres/models"
	"gorm.io/gorm"
)

type DefaultCMORepository struct {
	DB *gorm.DB
}

func NewDefaultCMORepository(db *gorm.DB) *DefaultCMORepository {
	return &DefaultCMORepository{DB: db}
}

func (r *DefaultCMORepository) GetByID(ctx context.Context, cmoID string) (*domain.CMOAccount, error) {
	var model models.CMOAccountModel
	if err := r.DB.WithContext(ctx).First(&model, "id = ?", cmoID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrCMONotFound
		}
		return nil, err
	}
	return mappers.ToDomainCMO(&model), nil
}
