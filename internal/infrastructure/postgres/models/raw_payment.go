package models

import "time"

// RawPaymentModel is written by the checkout flow; this service only
// reads it when detecting and repairing orphaned payments.
type RawPaymentModel struct {
	OrderID        string `gorm:"primaryKey"`
	UserID         string `gorm:"index"`
	EnrollmentID   string
	BuyerEmail     string
	BuyerName      string
	Status         string `gorm:"index"`
	OriginalAmount float64
	FinalAmount    float64
	ReferralCode   string
	DiscountCode   string
	PaymentType    string
	Tier           string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (RawPaymentModel) TableName() string {
	return "raw_payments"
}
