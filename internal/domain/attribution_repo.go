package domain

import (
	"context"
	"time"
)

// LedgerAppend is the unit of work persisted for one finalized payment:
// the attribution row itself plus every cache mutation that must land in
// the same transaction.
type LedgerAppend struct {
	Attribution *PaymentAttribution
	// BindUser creates the first-touch user_attributions row for
	// (Attribution.UserID, *Attribution.CreatorID).
	BindUser bool
	// DiscountCode, when set, bumps paid_conversions on that code.
	DiscountCode string
	// CMOID/CMOShare add the override commission to the CMO's
	// current-month payout record. Empty CMOID skips the update.
	CMOID    string
	CMOShare float64
}

type CreatorAggregate struct {
	CreatorID       string
	PaidUsers       int64
	TotalCommission float64
}

type MonthlyAggregate struct {
	EntityID         string
	PayoutMonth      time.Time
	PaidUsers        int64
	CommissionAmount float64
}

type AttributionRepository interface {
	// Append persists the attribution and all its cache side effects
	// atomically. Returns ErrAlreadyAttributed when an attribution for
	// the same order_id exists.
	Append(ctx context.Context, app *LedgerAppend) error
	GetByOrderID(ctx context.Context, orderID string) (*PaymentAttribution, error)
	ListOrderIDs(ctx context.Context) ([]string, error)
	AggregateByCreator(ctx context.Context) ([]*CreatorAggregate, error)
	AggregateCreatorMonthly(ctx context.Context) ([]*MonthlyAggregate, error)
	// AggregateCMOMonthly groups attributed commissions by the creator's
	// current CMO and payment month, with the override rate applied per
	// attribution before summing.
	AggregateCMOMonthly(ctx context.Context, overrideRate float64) ([]*MonthlyAggregate, error)
}

type UserAttributionRepository interface {
	// Find returns (nil, nil) when the user has no binding yet.
	Find(ctx context.Context, userID string) (*UserAttribution, error)
}
