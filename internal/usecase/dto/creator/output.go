package creator

import "time"

type StatsOutput struct {
	CreatorID         string
	ReferralCode      string
	LifetimePaidUsers int64
	AvailableBalance  float64
	TotalWithdrawn    float64
	EffectiveRate     float64
	CustomRateSet     bool
	CMOID             string
	CMOReferralCode   string
}

type DiscountCodeOutput struct {
	ID              string
	Code            string
	CreatorID       string
	DiscountPercent float64
	PaidConversions int64
	CreatedAt       time.Time
}
