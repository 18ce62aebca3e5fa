package models

import "time"

type PayoutRecordModel struct {
	ID               string    `gorm:"primaryKey;type:uuid"`
	EntityID         string    `gorm:"uniqueIndex:idx_payouts_entity_month;not null"`
	EntityType       string    `gorm:"uniqueIndex:idx_payouts_entity_month;not null"`
	PayoutMonth      time.Time `gorm:"uniqueIndex:idx_payouts_entity_month;not null"`
	TotalPaidUsers   int64     `gorm:"default:0"`
	CommissionAmount float64   `gorm:"default:0"`
	Status           string    `gorm:"index;default:PENDING"`
	PaidAt           *time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

func (PayoutRecordModel) TableName() string {
	return "payout_records"
}

type PayoutConfirmationModel struct {
	ID        string `gorm:"primaryKey;type:uuid"`
	PayoutID  string `gorm:"index;type:uuid;not null"`
	Code      string `gorm:"not null"`
	ExpiresAt time.Time
	UsedAt    *time.Time
	CreatedAt time.Time
}

func (PayoutConfirmationModel) TableName() string {
	return "payout_confirmations"
}
