package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/brightlms/commission-service/internal/domain"
	"github.com/brightlms/commission-service/internal/infrastructure/postgres/mappers"
	"github.com/brightlms/commission-service/internal/infrastructure/postgres/models"
	"gorm.io/gorm"
)

type DefaultCreatorRepository struct {
	DB *gorm.DB
}

func NewDefaultCreatorRepository(db *gorm.DB) *DefaultCreatorRepository {
	return &DefaultCreatorRepository{DB: db}
}

func (r *DefaultCreatorRepository) GetByID(ctx context.Context, creatorID string) (*domain.CreatorAccount, error) {
	var model models.CreatorAccountModel
	if err := r.DB.WithContext(ctx).First(&model, "id = ?", creatorID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrCreatorNotFound
		}
		return nil, err
	}
	return mappers.ToDomainCreator(&model), nil
}

func (r *DefaultCreatorRepository) GetByReferralCode(ctx context.Context, code string) (*domain.CreatorAccount, error) {
	var model models.CreatorAccountModel
	if err := r.DB.WithContext(ctx).First(&model, "referral_code = ?", code).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUnknownReferralCode
		}
		return nil, err
	}
	return mappers.ToDomainCreator(&model), nil
}

func (r *DefaultCreatorRepository) ListAll(ctx context.Context) ([]*domain.CreatorAccount, error) {
	var creatorModels []models.CreatorAccountModel
	if err := r.DB.WithContext(ctx).Order("created_at ASC").Find(&creatorModels).Error; err != nil {
		return nil, err
	}

	creators := make([]*domain.CreatorAccount, len(creatorModels))
	for i := range creatorModels {
		creators[i] = mappers.ToDomainCreator(&creatorModels[i])
	}
	return creators, nil
}

func (r *DefaultCreatorRepository) OverwriteStats(ctx context.Context, creatorID string, paidUsers int64, totalCommission float64) error {
	res := r.DB.WithContext(ctx).Model(&models.CreatorAccountModel{}).
		Where("id = ?", creatorID).
		UpdateColumns(map[string]interface{}{
			"lifetime_paid_users": paidUsers,
			"available_balance":   gorm.Expr("ROUND((? - total_withdrawn)::numeric, 2)", totalCommission),
			"updated_at":          time.Now().UTC(),
		})
	if res.Error != nil {
		return fmt.Errorf("overwrite creator stats: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrCreatorNotFound
	}
	return nil
}

func (r *DefaultCreatorRepository) RecordWithdrawal(ctx context.Context, creatorID string, amount float64) error {
	res := r.DB.WithContext(ctx).Model(&models.CreatorAccountModel{}).
		Where("id = ? AND available_balance >= ?", creatorID, amount).
		UpdateColumns(map[string]interface{}{
			"available_balance": gorm.Expr("available_balance - ?", amount),
			"total_withdrawn":   gorm.Expr("total_withdrawn + ?", amount),
			"updated_at":        time.Now().UTC(),
		})
	if res.Error != nil {
		return fmt.Errorf("record withdrawal: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		// Either the creator is unknown or the balance cannot cover it.
		if _, err := r.GetByID(ctx, creatorID); err != nil {
			return err
		}
		return domain.ErrInsufficientBalance
	}
	return nil
}
