package domain

import (
	"context"
	"time"
)

// CreatorAccount is a mutable cache over the attribution ledger.
// lifetime_paid_users and available_balance are incremented per
// attribution and may be fully rebuilt by recalculation.
type CreatorAccount struct {
	ID                   string
	ReferralCode         string
	CMOID                *string
	LifetimePaidUsers    int64
	AvailableBalance     float64
	TotalWithdrawn       float64
	CustomCommissionRate *float64
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

type CMOAccount struct {
	ID           string
	ReferralCode string
	CreatedAt    time.Time
}

type CreatorRepository interface {
	GetByID(ctx context.Context, creatorID string) (*CreatorAccount, error)
	GetByReferralCode(ctx context.Context, code string) (*CreatorAccount, error)
	ListAll(ctx context.Context) ([]*CreatorAccount, error)
	// OverwriteStats replaces the cached counters with authoritative
	// values derived from the ledger. available_balance becomes
	// totalCommission - total_withdrawn.
	OverwriteStats(ctx context.Context, creatorID string, paidUsers int64, totalCommission float64) error
	// RecordWithdrawal moves amount from available_balance to
	// total_withdrawn. Fails with ErrInsufficientBalance when the
	// balance does not cover it.
	RecordWithdrawal(ctx context.Context, creatorID string, amount float64) error
}

type CMORepository interface {
	GetByID(ctx context.Context, cmoID string) (*CMOAccount, error)
}
