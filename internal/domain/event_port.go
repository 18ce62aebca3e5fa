package domain

import "context"

type AttributionRecordedEvent struct {
	OrderID          string  `json:"order_id"`
	UserID           string  `json:"user_id"`
	CreatorID        string  `json:"creator_id,omitempty"`
	CommissionRate   float64 `json:"commission_rate"`
	CommissionAmount float64 `json:"commission_amount"`
	FinalAmount      float64 `json:"final_amount"`
	PaymentMonth     string  `json:"payment_month"`
}

type PayoutPaidEvent struct {
	PayoutID         string  `json:"payout_id"`
	EntityID         string  `json:"entity_id"`
	EntityType       string  `json:"entity_type"`
	PayoutMonth      string  `json:"payout_month"`
	CommissionAmount float64 `json:"commission_amount"`
}

type EventPublisher interface {
	PublishAttributionRecorded(ctx context.Context, event AttributionRecordedEvent) error
	PublishPayoutPaid(ctx context.Context, event PayoutPaidEvent) error
}
