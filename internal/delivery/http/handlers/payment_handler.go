package handlers

import (
	"errors"

	"github.com/brightlms/commission-service/internal/delivery/http/dto/request"
	"github.com/brightlms/commission-service/internal/delivery/http/dto/response"
	"github.com/brightlms/commission-service/internal/domain"
	"github.com/brightlms/commission-service/internal/infrastructure/metrics"
	"github.com/brightlms/commission-service/internal/usecase"
	attributiondto "github.com/brightlms/commission-service/internal/usecase/dto/attribution"
	"github.com/gofiber/fiber/v2"
)

type PaymentHandler struct {
	attributionUC usecase.AttributionUsecase
	metrics       *metrics.CommissionMetrics
}

func NewPaymentHandler(attributionUC usecase.AttributionUsecase, m *metrics.CommissionMetrics) *PaymentHandler {
	return &PaymentHandler{
		attributionUC: attributionUC,
		metrics:       m,
	}
}

// FinalizePayment is the sole entry point for the checkout collaborator.
// Repeated delivery for the same order_id is answered with success and
// already_attributed=true.
func (h *PaymentHandler) FinalizePayment(c *fiber.Ctx) error {
	var req request.FinalizePaymentRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}

	paymentType := domain.PaymentType(req.PaymentType)
	if paymentType == "" {
		paymentType = domain.PaymentTypeGatewayCard
	}

	out, err := h.attributionUC.FinalizePayment(c.Context(), &attributiondto.FinalizePaymentInput{
		OrderID:        req.OrderID,
		UserID:         req.UserID,
		EnrollmentID:   req.EnrollmentID,
		Tier:           req.Tier,
		OriginalAmount: req.OriginalAmount,
		FinalAmount:    req.FinalAmount,
		ReferralCode:   req.ReferralCode,
		DiscountCode:   req.DiscountCode,
		PaymentType:    paymentType,
	})
	if err != nil {
		h.metrics.RecordAttributionError(errorType(err))
		return badRequest(c, err.Error())
	}

	if out.AlreadyAttributed {
		h.metrics.RecordDuplicate()
	} else {
		h.metrics.RecordAttribution(req.Tier, string(paymentType), out.CreatorID != "", out.CommissionAmount)
	}

	return c.Status(fiber.StatusOK).JSON(response.FinalizePaymentResponse{
		Success:           true,
		AlreadyAttributed: out.AlreadyAttributed,
		AttributionID:     out.AttributionID,
		CreatorID:         out.CreatorID,
		CommissionRate:    out.CommissionRate,
		CommissionAmount:  out.CommissionAmount,
		PaymentMonth:      out.PaymentMonth.Format("2006-01-02"),
	})
}

func errorType(err error) string {
	switch {
	case errors.Is(err, domain.ErrCreatorNotFound):
		return "creator_not_found"
	case errors.Is(err, domain.ErrPaymentNotFound):
		return "payment_not_found"
	default:
		return "internal"
	}
}

func badRequest(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(response.ErrorResponse{
		Success: false,
		Error:   msg,
	})
}
