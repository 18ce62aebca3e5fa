package request

type FinalizePaymentRequest struct {
	OrderID        string  `json:"order_id"`
	UserID         string  `json:"user_id"`
	EnrollmentID   string  `json:"enrollment_id"`
	Tier           string  `json:"tier"`
	OriginalAmount float64 `json:"original_amount"`
	FinalAmount    float64 `json:"final_amount"`
	ReferralCode   string  `json:"referral_code,omitempty"`
	DiscountCode   string  `json:"discount_code,omitempty"`
	PaymentType    string  `json:"payment_type"`
}

type MarkPaidRequest struct {
	ConfirmationCode string `json:"confirmation_code,omitempty"`
}

type WithdrawalRequest struct {
	Amount float64 `json:"amount"`
}

type CreateDiscountCodeRequest struct {
	Code            string  `json:"code"`
	DiscountPercent float64 `json:"discount_percent"`
}
