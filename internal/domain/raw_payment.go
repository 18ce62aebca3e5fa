package domain

import (
	"context"
	"time"
)

type RawPaymentStatus string

const (
	RawPaymentPending   RawPaymentStatus = "PENDING"
	RawPaymentCompleted RawPaymentStatus = "COMPLETED"
	RawPaymentFailed    RawPaymentStatus = "FAILED"
)

// RawPayment is the gateway-side record written by the checkout flow.
// This engine only reads it: completed raw payments without a matching
// attribution are orphans and carry everything needed to re-drive the
// attribution writer.
type RawPayment struct {
	OrderID        string
	UserID         string
	EnrollmentID   string
	BuyerEmail     string
	BuyerName      string
	Status         RawPaymentStatus
	OriginalAmount float64
	FinalAmount    float64
	ReferralCode   string
	DiscountCode   string
	PaymentType    PaymentType
	Tier           string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

type RawPaymentRepository interface {
	GetByOrderID(ctx context.Context, orderID string) (*RawPayment, error)
	ListByStatus(ctx context.Context, status RawPaymentStatus) ([]*RawPayment, error)
}
