package reconcile

import "time"

// Orphan is a completed payment with no attribution, enriched with the
// buyer profile for operator display.
type Orphan struct {
	OrderID     string
	UserID      string
	BuyerEmail  string
	BuyerName   string
	FinalAmount float64
	PaymentType string
	CreatedAt   time.Time
}

type OrphanFailure struct {
	OrderID string
	Error   string
}

type ReconcileReport struct {
	Fixed    int
	Failed   int
	Failures []OrphanFailure
}

// CreatorDrift compares a creator's cached counters against the values
// derived from the attribution ledger.
type CreatorDrift struct {
	CreatorID         string
	CachedPaidUsers   int64
	ActualPaidUsers   int64
	CachedBalance     float64
	ActualBalance     float64
}

type RecalcReport struct {
	CreatorsUpdated        int
	CreatorsFailed         int
	CreatorPayoutsUpserted int
	CMOPayoutsRegenerated  int
	PayoutsFailed          int
}
