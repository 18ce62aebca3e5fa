package models

import "time"

type CreatorAccountModel struct {
	ID                   string  `gorm:"primaryKey;type:uuid"`
	ReferralCode         string  `gorm:"uniqueIndex;not null"`
	CMOID                *string `gorm:"index;type:uuid"`
	LifetimePaidUsers    int64   `gorm:"default:0"`
	AvailableBalance     float64 `gorm:"default:0"`
	TotalWithdrawn       float64 `gorm:"default:0"`
	CustomCommissionRate *float64
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

func (CreatorAccountModel) TableName() string {
	return "creator_accounts"
}

type CMOAccountModel struct {
	ID           string `gorm:"primaryKey;type:uuid"`
	ReferralCode string `gorm:"uniqueIndex;not null"`
	CreatedAt    time.Time
}

func (CMOAccountModel) TableName() string {
	return "cmo_accounts"
}
