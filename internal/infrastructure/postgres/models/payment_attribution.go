package models

import "time"

type PaymentAttributionModel struct {
	ID               string  `gorm:"primaryKey;type:uuid"`
	OrderID          string  `gorm:"uniqueIndex:idx_attributions_order_id;not null"`
	UserID           string  `gorm:"index;not null"`
	CreatorID        *string `gorm:"index"`
	EnrollmentID     string
	OriginalAmount   float64
	FinalAmount      float64
	CommissionRate   float64
	CommissionAmount float64
	Tier             string
	PaymentType      string
	PaymentMonth     time.Time `gorm:"index"`
	CreatedAt        time.Time
}

func (PaymentAttributionModel) TableName() string {
	return "payment_attributions"
}
