package domain

import (
	"context"
	"time"
)

// DiscountCode is owned by a creator and doubles as a referral signal:
// a purchase carrying the code attributes to the owning creator unless
// the buyer is already bound elsewhere.
type DiscountCode struct {
	ID              string
	Code            string
	CreatorID       string
	DiscountPercent float64
	PaidConversions int64
	CreatedAt       time.Time
}

type DiscountCodeRepository interface {
	GetByCode(ctx context.Context, code string) (*DiscountCode, error)
	Create(ctx context.Context, dc *DiscountCode) error
	ListByCreator(ctx context.Context, creatorID string) ([]*DiscountCode, error)
}
