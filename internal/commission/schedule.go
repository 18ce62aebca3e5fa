package commission

import (
	"math"
	"time"
)

// Schedule holds the rate parameters for creator and CMO commissions.
// It is injected from config so deployments and tests can run alternate
// schedules without touching the resolution logic.
type Schedule struct {
	BaseRate          float64
	ElevatedRate      float64
	ElevatedThreshold int64
	CMOOverrideRate   float64
}

func DefaultSchedule() Schedule {
	return Schedule{
		BaseRate:          0.08,
		ElevatedRate:      0.12,
		ElevatedThreshold: 500,
		CMOOverrideRate:   0.03,
	}
}

// Resolve returns the effective commission rate for a creator. A custom
// rate override is honored verbatim, including zero. Otherwise the
// lifetime paid-user count picks the tier.
func (s Schedule) Resolve(lifetimePaidUsers int64, customRate *float64) float64 {
	if customRate != nil {
		return *customRate
	}
	if lifetimePaidUsers >= s.ElevatedThreshold {
		return s.ElevatedRate
	}
	return s.BaseRate
}

// CMOShare computes the CMO override commission on a creator's
// commission amount. Flat rate, independent of the creator's tier.
func (s Schedule) CMOShare(creatorCommission float64) float64 {
	return RoundCents(creatorCommission * s.CMOOverrideRate)
}

// RoundCents rounds a money amount to two decimal places.
func RoundCents(v float64) float64 {
	return math.Round(v*100) / 100
}

// MonthOf truncates a timestamp to the first day of its calendar month
// in UTC, the payout periodization key.
func MonthOf(t time.Time) time.Time {
	return time.Date(t.UTC().Year(), t.UTC().Month(), 1, 0, 0, 0, 0, time.UTC)
}
