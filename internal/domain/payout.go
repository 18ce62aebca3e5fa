package domain

import (
	"context"
	"time"
)

type PayoutStatus string

const (
	PayoutStatusPending  PayoutStatus = "PENDING"
	PayoutStatusEligible PayoutStatus = "ELIGIBLE"
	PayoutStatusPaid     PayoutStatus = "PAID"
)

type PayoutEntityType string

const (
	PayoutEntityCreator PayoutEntityType = "CREATOR"
	PayoutEntityCMO     PayoutEntityType = "CMO"
)

// PayoutRecord accumulates one entity's commissions for one calendar
// month. Unique per (entity_type, entity_id, payout_month). The PAID
// transition is operator-only and irreversible through this engine.
type PayoutRecord struct {
	ID               string
	EntityID         string
	EntityType       PayoutEntityType
	PayoutMonth      time.Time
	TotalPaidUsers   int64
	CommissionAmount float64
	Status           PayoutStatus
	PaidAt           *time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// PayoutConfirmation is a one-time code an operator must present before
// marking a financially sensitive payout as paid.
type PayoutConfirmation struct {
	ID        string
	PayoutID  string
	Code      string
	ExpiresAt time.Time
	UsedAt    *time.Time
	CreatedAt time.Time
}

type PayoutFilter struct {
	EntityID   string
	EntityType PayoutEntityType
	Status     PayoutStatus
	Month      *time.Time
}

type PayoutRepository interface {
	GetByID(ctx context.Context, payoutID string) (*PayoutRecord, error)
	List(ctx context.Context, filter PayoutFilter) ([]*PayoutRecord, error)
	// UpsertAggregate writes recalculated counters for one
	// (entity, month), preserving status and paid_at on existing rows.
	UpsertAggregate(ctx context.Context, entityType PayoutEntityType, agg *MonthlyAggregate) error
	UpdateStatus(ctx context.Context, payoutID string, status PayoutStatus, paidAt *time.Time) error
	CreateConfirmation(ctx context.Context, confirmation *PayoutConfirmation) error
	// ConsumeConfirmation validates an unused, unexpired code for the
	// payout and marks it used. Returns ErrInvalidConfirmation otherwise.
	ConsumeConfirmation(ctx context.Context, payoutID, code string) error
}
