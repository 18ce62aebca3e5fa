package response

import "time"

// ErrorResponse is the uniform failure envelope: the caller always gets
// a specific message to render, never a bare status code.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

type FinalizePaymentResponse struct {
	Success           bool    `json:"success"`
	AlreadyAttributed bool    `json:"already_attributed"`
	AttributionID     string  `json:"attribution_id"`
	CreatorID         string  `json:"creator_id,omitempty"`
	CommissionRate    float64 `json:"commission_rate"`
	CommissionAmount  float64 `json:"commission_amount"`
	PaymentMonth      string  `json:"payment_month"`
}

type OrphanResponse struct {
	OrderID     string    `json:"order_id"`
	UserID      string    `json:"user_id"`
	BuyerEmail  string    `json:"buyer_email,omitempty"`
	BuyerName   string    `json:"buyer_name,omitempty"`
	FinalAmount float64   `json:"final_amount"`
	PaymentType string    `json:"payment_type"`
	CreatedAt   time.Time `json:"created_at"`
}

type ReconcileResponse struct {
	Success  bool            `json:"success"`
	Fixed    int             `json:"fixed"`
	Failed   int             `json:"failed"`
	Failures []OrphanFailure `json:"failures,omitempty"`
}

type OrphanFailure struct {
	OrderID string `json:"order_id"`
	Error   string `json:"error"`
}

type DriftResponse struct {
	CreatorID       string  `json:"creator_id"`
	CachedPaidUsers int64   `json:"cached_paid_users"`
	ActualPaidUsers int64   `json:"actual_paid_users"`
	CachedBalance   float64 `json:"cached_balance"`
	ActualBalance   float64 `json:"actual_balance"`
}

type RecalculateResponse struct {
	Success               bool `json:"success"`
	CreatorsUpdated       int  `json:"creators_updated"`
	CMOPayoutsRegenerated int  `json:"cmo_payouts_regenerated"`
	Failures              int  `json:"failures"`
}

type PayoutResponse struct {
	ID               string     `json:"id"`
	EntityID         string     `json:"entity_id"`
	EntityType       string     `json:"entity_type"`
	PayoutMonth      string     `json:"payout_month"`
	TotalPaidUsers   int64      `json:"total_paid_users"`
	CommissionAmount float64    `json:"commission_amount"`
	Status           string     `json:"status"`
	PaidAt           *time.Time `json:"paid_at,omitempty"`
}

type ConfirmationResponse struct {
	Success   bool      `json:"success"`
	PayoutID  string    `json:"payout_id"`
	Code      string    `json:"code"`
	ExpiresAt time.Time `json:"expires_at"`
}

type CreatorStatsResponse struct {
	CreatorID         string  `json:"creator_id"`
	ReferralCode      string  `json:"referral_code"`
	LifetimePaidUsers int64   `json:"lifetime_paid_users"`
	AvailableBalance  float64 `json:"available_balance"`
	TotalWithdrawn    float64 `json:"total_withdrawn"`
	EffectiveRate     float64 `json:"effective_rate"`
	CustomRateSet     bool    `json:"custom_rate_set"`
	CMOID             string  `json:"cmo_id,omitempty"`
	CMOReferralCode   string  `json:"cmo_referral_code,omitempty"`
}

type DiscountCodeResponse struct {
	ID              string    `json:"id"`
	Code            string    `json:"code"`
	CreatorID       string    `json:"creator_id"`
	DiscountPercent float64   `json:"discount_percent"`
	PaidConversions int64     `json:"paid_conversions"`
	CreatedAt       time.Time `json:"created_at"`
}
