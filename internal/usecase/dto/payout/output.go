package payout

import "time"

type PayoutOutput struct {
	ID               string
	EntityID         string
	EntityType       string
	PayoutMonth      time.Time
	TotalPaidUsers   int64
	CommissionAmount float64
	Status           string
	PaidAt           *time.Time
}

type ConfirmationOutput struct {
	PayoutID  string
	Code      string
	ExpiresAt time.Time
}
