package attribution

import "github.com/brightlms/commission-service/internal/domain"

// FinalizePaymentInput mirrors the checkout collaborator's call: one
// completed payment to attribute. ReferralCode and DiscountCode are
// both optional.
type FinalizePaymentInput struct {
	OrderID        string
	UserID         string
	EnrollmentID   string
	Tier           string
	OriginalAmount float64
	FinalAmount    float64
	ReferralCode   string
	DiscountCode   string
	PaymentType    domain.PaymentType
}
