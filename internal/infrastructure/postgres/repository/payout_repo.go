package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/brightlms/commission-service/internal/domain"
	"github.com/brightlms/commission-service/internal/infrastructure/postgres/mappers"
	"github.com/brightlms/commission-service/internal/infrastructure/postgres/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type DefaultPayoutRepository struct {
	DB *gorm.DB
}

func NewDefaultPayoutRepository(db *gorm.DB) *DefaultPayoutRepository {
	return &DefaultPayoutRepository{DB: db}
}

func (r *DefaultPayoutRepository) GetByID(ctx context.Context, payoutID string) (*domain.PayoutRecord, error) {
	var model models.PayoutRecordModel
	if err := r.DB.WithContext(ctx).First(&model, "id = ?", payoutID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrPayoutNotFound
		}
		return nil, err
	}
	return mappers.ToDomainPayout(&model), nil
}

func (r *DefaultPayoutRepository) List(ctx context.Context, filter domain.PayoutFilter) ([]*domain.PayoutRecord, error) {
	query := r.DB.WithContext(ctx).Model(&models.PayoutRecordModel{})

	if filter.EntityID != "" {
		query = query.Where("entity_id = ?", filter.EntityID)
	}
	if filter.EntityType != "" {
		query = query.Where("entity_type = ?", string(filter.EntityType))
	}
	if filter.Status != "" {
		query = query.Where("status = ?", string(filter.Status))
	}
	if filter.Month != nil {
		query = query.Where("payout_month = ?", *filter.Month)
	}

	var payoutModels []models.PayoutRecordModel
	if err := query.Order("payout_month DESC, entity_id ASC").Find(&payoutModels).Error; err != nil {
		return nil, err
	}

	payouts := make([]*domain.PayoutRecord, len(payoutModels))
	for i := range payoutModels {
		payouts[i] = mappers.ToDomainPayout(&payoutModels[i])
	}
	return payouts, nil
}

// UpsertAggregate writes recalculated counters for one (entity, month).
// Status and paid_at are deliberately not in the update set: a payout
// already marked paid keeps that state across rebuilds.
func (r *DefaultPayoutRepository) UpsertAggregate(ctx context.Context, entityType domain.PayoutEntityType, agg *domain.MonthlyAggregate) error {
	now := time.Now().UTC()
	row := models.PayoutRecordModel{
		ID:               uuid.New().String(),
		EntityID:         agg.EntityID,
		EntityType:       string(entityType),
		PayoutMonth:      agg.PayoutMonth,
		TotalPaidUsers:   agg.PaidUsers,
		CommissionAmount: agg.CommissionAmount,
		Status:           string(domain.PayoutStatusPending),
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	err := r.DB.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "entity_id"}, {Name: "entity_type"}, {Name: "payout_month"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"total_paid_users":  agg.PaidUsers,
			"commission_amount": agg.CommissionAmount,
			"updated_at":        now,
		}),
	}).Create(&row).Error
	if err != nil {
		return fmt.Errorf("upsert payout aggregate: %w", err)
	}
	return nil
}

func (r *DefaultPayoutRepository) UpdateStatus(ctx context.Context, payoutID string, status domain.PayoutStatus, paidAt *time.Time) error {
	res := r.DB.WithContext(ctx).Model(&models.PayoutRecordModel{}).
		Where("id = ?", payoutID).
		UpdateColumns(map[string]interface{}{
			"status":     string(status),
			"paid_at":    paidAt,
			"updated_at": time.Now().UTC(),
		})
	if res.Error != nil {
		return fmt.Errorf("update payout status: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrPayoutNotFound
	}
	return nil
}

func (r *DefaultPayoutRepository) CreateConfirmation(ctx context.Context, confirmation *domain.PayoutConfirmation) error {
	model := models.PayoutConfirmationModel{
		ID:        confirmation.ID,
		PayoutID:  confirmation.PayoutID,
		Code:      confirmation.Code,
		ExpiresAt: confirmation.ExpiresAt,
		CreatedAt: confirmation.CreatedAt,
	}
	return r.DB.WithContext(ctx).Create(&model).Error
}

func (r *DefaultPayoutRepository) ConsumeConfirmation(ctx context.Context, payoutID, code string) error {
	res := r.DB.WithContext(ctx).Model(&models.PayoutConfirmationModel{}).
		Where("payout_id = ? AND code = ? AND used_at IS NULL AND expires_at > ?", payoutID, code, time.Now().UTC()).
		UpdateColumn("used_at", time.Now().UTC())
	if res.Error != nil {
		return fmt.Errorf("consume confirmation: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrInvalidConfirmation
	}
	return nil
}
