package domain

import "time"

type PaymentType string

const (
	PaymentTypeGatewayCard  PaymentType = "GATEWAY_CARD"
	PaymentTypeBankTransfer PaymentType = "MANUAL_BANK_TRANSFER"
)

// PaymentAttribution is one row of the append-only commission ledger.
// Rows are written once and never mutated; commission_rate and
// commission_amount are snapshots taken at write time.
type PaymentAttribution struct {
	ID               string
	OrderID          string
	UserID           string
	CreatorID        *string
	EnrollmentID     string
	OriginalAmount   float64
	FinalAmount      float64
	CommissionRate   float64
	CommissionAmount float64
	Tier             string
	PaymentType      PaymentType
	PaymentMonth     time.Time
	CreatedAt        time.Time
}

// UserAttribution binds a user to the creator who first referred them.
// Created once, never overwritten.
type UserAttribution struct {
	UserID    string
	CreatorID string
	CreatedAt time.Time
}
