package models

import "time"

type DiscountCodeModel struct {
	ID              string `gorm:"primaryKey;type:uuid"`
	Code            string `gorm:"uniqueIndex;not null"`
	CreatorID       string `gorm:"index;type:uuid;not null"`
	DiscountPercent float64
	PaidConversions int64 `gorm:"default:0"`
	CreatedAt       time.Time
}

func (DiscountCodeModel) TableName() string {
	return "discount_codes"
}
