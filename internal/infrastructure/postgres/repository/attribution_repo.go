package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/brightlms/commission-service/internal/domain"
	"github.com/brightlms/commission-service/internal/infrastructure/postgres/mappers"
	"github.com/brightlms/commission-service/internal/infrastructure/postgres/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type DefaultAttributionRepository struct {
	DB *gorm.DB
}

func NewDefaultAttributionRepository(db *gorm.DB) *DefaultAttributionRepository {
	return &DefaultAttributionRepository{DB: db}
}

// Append inserts the attribution row and applies every cache side effect
// in one transaction. The unique index on order_id serializes concurrent
// duplicates: the loser rolls back everything and gets
// domain.ErrAlreadyAttributed.
func (r *DefaultAttributionRepository) Append(ctx context.Context, app *domain.LedgerAppend) error {
	att := app.Attribution
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(mappers.ToGORMAttribution(att)).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return domain.ErrAlreadyAttributed
			}
			return fmt.Errorf("insert attribution: %w", err)
		}

		if app.BindUser && att.CreatorID != nil {
			binding := models.UserAttributionModel{
				UserID:    att.UserID,
				CreatorID: *att.CreatorID,
				CreatedAt: att.CreatedAt,
			}
			// First touch wins; a concurrent binding is left untouched.
			if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&binding).Error; err != nil {
				return fmt.Errorf("bind user attribution: %w", err)
			}
		}

		if app.DiscountCode != "" {
			if err := tx.Model(&models.DiscountCodeModel{}).
				Where("code = ?", app.DiscountCode).
				UpdateColumn("paid_conversions", gorm.Expr("paid_conversions + 1")).Error; err != nil {
				return fmt.Errorf("bump discount conversions: %w", err)
			}
		}

		if att.CreatorID == nil {
			// Direct sale: revenue recorded, no commission side effects.
			return nil
		}

		res := tx.Model(&models.CreatorAccountModel{}).
			Where("id = ?", *att.CreatorID).
			UpdateColumns(map[string]interface{}{
				"lifetime_paid_users": gorm.Expr("lifetime_paid_users + 1"),
				"available_balance":   gorm.Expr("available_balance + ?", att.CommissionAmount),
				"updated_at":          att.CreatedAt,
			})
		if res.Error != nil {
			return fmt.Errorf("increment creator cache: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return domain.ErrCreatorNotFound
		}

		if err := upsertPayoutIncrement(tx, domain.PayoutEntityCreator, *att.CreatorID, att, att.CommissionAmount); err != nil {
			return fmt.Errorf("creator payout: %w", err)
		}

		if app.CMOID != "" {
			if err := upsertPayoutIncrement(tx, domain.PayoutEntityCMO, app.CMOID, att, app.CMOShare); err != nil {
				return fmt.Errorf("cmo payout: %w", err)
			}
		}

		return nil
	})
}

func upsertPayoutIncrement(tx *gorm.DB, entityType domain.PayoutEntityType, entityID string, att *domain.PaymentAttribution, amount float64) error {
	row := models.PayoutRecordModel{
		ID:               uuid.New().String(),
		EntityID:         entityID,
		EntityType:       string(entityType),
		PayoutMonth:      att.PaymentMonth,
		TotalPaidUsers:   1,
		CommissionAmount: amount,
		Status:           string(domain.PayoutStatusPending),
		CreatedAt:        att.CreatedAt,
		UpdatedAt:        att.CreatedAt,
	}
	return tx.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "entity_id"}, {Name: "entity_type"}, {Name: "payout_month"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"total_paid_users":  gorm.Expr("payout_records.total_paid_users + ?", 1),
			"commission_amount": gorm.Expr("payout_records.commission_amount + ?", amount),
			"updated_at":        att.CreatedAt,
		}),
	}).Create(&row).Error
}

func (r *DefaultAttributionRepository) GetByOrderID(ctx context.Context, orderID string) (*domain.PaymentAttribution, error) {
	var model models.PaymentAttributionModel
	if err := r.DB.WithContext(ctx).First(&model, "order_id = ?", orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrAttributionNotFound
		}
		return nil, err
	}
	return mappers.ToDomainAttribution(&model), nil
}

func (r *DefaultAttributionRepository) ListOrderIDs(ctx context.Context) ([]string, error) {
	var orderIDs []string
	if err := r.DB.WithContext(ctx).
		Model(&models.PaymentAttributionModel{}).
		Pluck("order_id", &orderIDs).Error; err != nil {
		return nil, err
	}
	return orderIDs, nil
}

func (r *DefaultAttributionRepository) AggregateByCreator(ctx context.Context) ([]*domain.CreatorAggregate, error) {
	var rows []domain.CreatorAggregate
	err := r.DB.WithContext(ctx).
		Model(&models.PaymentAttributionModel{}).
		Select("creator_id, COUNT(*) AS paid_users, COALESCE(SUM(commission_amount), 0) AS total_commission").
		Where("creator_id IS NOT NULL").
		Group("creator_id").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("aggregate by creator: %w", err)
	}

	aggregates := make([]*domain.CreatorAggregate, len(rows))
	for i := range rows {
		aggregates[i] = &rows[i]
	}
	return aggregates, nil
}

func (r *DefaultAttributionRepository) AggregateCreatorMonthly(ctx context.Context) ([]*domain.MonthlyAggregate, error) {
	var rows []domain.MonthlyAggregate
	err := r.DB.WithContext(ctx).
		Model(&models.PaymentAttributionModel{}).
		Select("creator_id AS entity_id, payment_month AS payout_month, COUNT(*) AS paid_users, COALESCE(SUM(commission_amount), 0) AS commission_amount").
		Where("creator_id IS NOT NULL").
		Group("creator_id, payment_month").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("aggregate creator monthly: %w", err)
	}

	aggregates := make([]*domain.MonthlyAggregate, len(rows))
	for i := range rows {
		aggregates[i] = &rows[i]
	}
	return aggregates, nil
}

func (r *DefaultAttributionRepository) AggregateCMOMonthly(ctx context.Context, overrideRate float64) ([]*domain.MonthlyAggregate, error) {
	var rows []domain.MonthlyAggregate
	// Override commission is rounded per attribution, then summed, so
	// regeneration matches what the incremental path wrote.
	err := r.DB.WithContext(ctx).
		Model(&models.PaymentAttributionModel{}).
		Select("creator_accounts.cmo_id AS entity_id, payment_attributions.payment_month AS payout_month, COUNT(*) AS paid_users, COALESCE(SUM(ROUND((payment_attributions.commission_amount * ?)::numeric, 2)), 0) AS commission_amount", overrideRate).
		Joins("JOIN creator_accounts ON creator_accounts.id = payment_attributions.creator_id").
		Where("creator_accounts.cmo_id IS NOT NULL").
		Group("creator_accounts.cmo_id, payment_attributions.payment_month").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("aggregate cmo monthly: %w", err)
	}

	aggregates := make([]*domain.MonthlyAggregate, len(rows))
	for i := range rows {
		aggregates[i] = &rows[i]
	}
	return aggregates, nil
}
