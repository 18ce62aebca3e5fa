package attribution

import "time"

type FinalizePaymentOutput struct {
	AttributionID     string
	OrderID           string
	CreatorID         string
	CommissionRate    float64
	CommissionAmount  float64
	PaymentMonth      time.Time
	AlreadyAttributed bool
}
