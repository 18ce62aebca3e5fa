package domain

import "errors"

var (
	ErrAlreadyAttributed     = errors.New("order already attributed")
	ErrAttributionNotFound   = errors.New("attribution not found")
	ErrCreatorNotFound       = errors.New("creator not found")
	ErrCMONotFound           = errors.New("cmo not found")
	ErrUnknownReferralCode   = errors.New("unknown referral code")
	ErrUnknownDiscountCode   = errors.New("unknown discount code")
	ErrDiscountCodeExists    = errors.New("discount code already exists")
	ErrPaymentNotFound       = errors.New("raw payment not found")
	ErrPaymentNotCompleted   = errors.New("raw payment is not completed")
	ErrPayoutNotFound        = errors.New("payout record not found")
	ErrPayoutAlreadyPaid     = errors.New("payout already marked paid")
	ErrConfirmationRequired  = errors.New("payout confirmation code required")
	ErrInvalidConfirmation   = errors.New("invalid or expired confirmation code")
	ErrInsufficientBalance   = errors.New("insufficient available balance")
	ErrReconciliationRunning = errors.New("reconciliation already in progress")
)
