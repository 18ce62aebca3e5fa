package models

import "time"

type UserAttributionModel struct {
	UserID    string `gorm:"primaryKey"`
	CreatorID string `gorm:"index;not null"`
	CreatedAt time.Time
}

func (UserAttributionModel) TableName() string {
	return "user_attributions"
}
