package handlers

import (
	"errors"
	"time"

	"github.com/brightlms/commission-service/internal/delivery/http/dto/request"
	"github.com/brightlms/commission-service/internal/delivery/http/dto/response"
	"github.com/brightlms/commission-service/internal/domain"
	"github.com/brightlms/commission-service/internal/infrastructure/metrics"
	"github.com/brightlms/commission-service/internal/usecase"
	creatordto "github.com/brightlms/commission-service/internal/usecase/dto/creator"
	"github.com/gofiber/fiber/v2"
)

type AdminHandler struct {
	orphanUC  usecase.OrphanUsecase
	recalcUC  usecase.RecalcUsecase
	payoutUC  usecase.PayoutUsecase
	creatorUC usecase.CreatorUsecase
	metrics   *metrics.CommissionMetrics
}

func NewAdminHandler(
	orphanUC usecase.OrphanUsecase,
	recalcUC usecase.RecalcUsecase,
	payoutUC usecase.PayoutUsecase,
	creatorUC usecase.CreatorUsecase,
	m *metrics.CommissionMetrics) *AdminHandler {

	return &AdminHandler{
		orphanUC:  orphanUC,
		recalcUC:  recalcUC,
		payoutUC:  payoutUC,
		creatorUC: creatorUC,
		metrics:   m,
	}
}

func (h *AdminHandler) ListOrphans(c *fiber.Ctx) error {
	orphans, err := h.orphanUC.ListOrphans(c.Context())
	if err != nil {
		return internalError(c, err)
	}
	h.metrics.RecordOrphanScan(len(orphans))

	resp := make([]response.OrphanResponse, len(orphans))
	for i, o := range orphans {
		resp[i] = response.OrphanResponse{
			OrderID:     o.OrderID,
			UserID:      o.UserID,
			BuyerEmail:  o.BuyerEmail,
			BuyerName:   o.BuyerName,
			FinalAmount: o.FinalAmount,
			PaymentType: o.PaymentType,
			CreatedAt:   o.CreatedAt,
		}
	}
	return c.JSON(fiber.Map{"success": true, "orphans": resp})
}

func (h *AdminHandler) FixOrphan(c *fiber.Ctx) error {
	orderID := c.Params("order_id")
	out, err := h.orphanUC.FixOrphan(c.Context(), orderID)
	if err != nil {
		if errors.Is(err, domain.ErrPaymentNotFound) {
			return notFound(c, err.Error())
		}
		return badRequest(c, err.Error())
	}

	return c.JSON(response.FinalizePaymentResponse{
		Success:           true,
		AlreadyAttributed: out.AlreadyAttributed,
		AttributionID:     out.AttributionID,
		CreatorID:         out.CreatorID,
		CommissionRate:    out.CommissionRate,
		CommissionAmount:  out.CommissionAmount,
		PaymentMonth:      out.PaymentMonth.Format("2006-01-02"),
	})
}

func (h *AdminHandler) ReconcileOrphans(c *fiber.Ctx) error {
	report, err := h.orphanUC.ReconcileAll(c.Context())
	if err != nil {
		if errors.Is(err, domain.ErrReconciliationRunning) {
			return conflict(c, err.Error())
		}
		return internalError(c, err)
	}
	h.metrics.RecordReconcileRun(report.Fixed, report.Failed)

	failures := make([]response.OrphanFailure, len(report.Failures))
	for i, f := range report.Failures {
		failures[i] = response.OrphanFailure{OrderID: f.OrderID, Error: f.Error}
	}
	return c.JSON(response.ReconcileResponse{
		Success:  true,
		Fixed:    report.Fixed,
		Failed:   report.Failed,
		Failures: failures,
	})
}

func (h *AdminHandler) ReconciliationReport(c *fiber.Ctx) error {
	drifts, err := h.recalcUC.DriftReport(c.Context())
	if err != nil {
		return internalError(c, err)
	}

	resp := make([]response.DriftResponse, len(drifts))
	for i, d := range drifts {
		resp[i] = response.DriftResponse{
			CreatorID:       d.CreatorID,
			CachedPaidUsers: d.CachedPaidUsers,
			ActualPaidUsers: d.ActualPaidUsers,
			CachedBalance:   d.CachedBalance,
			ActualBalance:   d.ActualBalance,
		}
	}
	return c.JSON(fiber.Map{"success": true, "drifted_creators": resp})
}

func (h *AdminHandler) RecalculateStats(c *fiber.Ctx) error {
	drifts, err := h.recalcUC.DriftReport(c.Context())
	if err != nil {
		return internalError(c, err)
	}

	report, err := h.recalcUC.RecalculateStats(c.Context())
	if err != nil {
		if errors.Is(err, domain.ErrReconciliationRunning) {
			return conflict(c, err.Error())
		}
		return internalError(c, err)
	}
	h.metrics.RecordRecalcRun(len(drifts))

	return c.JSON(response.RecalculateResponse{
		Success:               true,
		CreatorsUpdated:       report.CreatorsUpdated,
		CMOPayoutsRegenerated: report.CMOPayoutsRegenerated,
		Failures:              report.CreatorsFailed + report.PayoutsFailed,
	})
}

func (h *AdminHandler) ListPayouts(c *fiber.Ctx) error {
	filter := domain.PayoutFilter{
		EntityID:   c.Query("entity_id"),
		EntityType: domain.PayoutEntityType(c.Query("entity_type")),
		Status:     domain.PayoutStatus(c.Query("status")),
	}
	if monthStr := c.Query("month"); monthStr != "" {
		month, err := time.Parse("2006-01", monthStr)
		if err != nil {
			return badRequest(c, "month must be formatted as YYYY-MM")
		}
		filter.Month = &month
	}

	payouts, err := h.payoutUC.ListPayouts(c.Context(), filter)
	if err != nil {
		return internalError(c, err)
	}

	resp := make([]response.PayoutResponse, len(payouts))
	for i, p := range payouts {
		resp[i] = response.PayoutResponse{
			ID:               p.ID,
			EntityID:         p.EntityID,
			EntityType:       p.EntityType,
			PayoutMonth:      p.PayoutMonth.Format("2006-01"),
			TotalPaidUsers:   p.TotalPaidUsers,
			CommissionAmount: p.CommissionAmount,
			Status:           p.Status,
			PaidAt:           p.PaidAt,
		}
	}
	return c.JSON(fiber.Map{"success": true, "payouts": resp})
}

func (h *AdminHandler) IssuePayoutConfirmation(c *fiber.Ctx) error {
	out, err := h.payoutUC.IssueConfirmation(c.Context(), c.Params("id"))
	if err != nil {
		if errors.Is(err, domain.ErrPayoutNotFound) {
			return notFound(c, err.Error())
		}
		return badRequest(c, err.Error())
	}

	return c.JSON(response.ConfirmationResponse{
		Success:   true,
		PayoutID:  out.PayoutID,
		Code:      out.Code,
		ExpiresAt: out.ExpiresAt,
	})
}

func (h *AdminHandler) MarkPayoutEligible(c *fiber.Ctx) error {
	if err := h.payoutUC.MarkEligible(c.Context(), c.Params("id")); err != nil {
		if errors.Is(err, domain.ErrPayoutNotFound) {
			return notFound(c, err.Error())
		}
		return badRequest(c, err.Error())
	}
	return c.JSON(fiber.Map{"success": true})
}

func (h *AdminHandler) MarkPayoutPaid(c *fiber.Ctx) error {
	var req request.MarkPaidRequest
	if err := c.BodyParser(&req); err != nil && !errors.Is(err, fiber.ErrUnprocessableEntity) {
		return badRequest(c, "invalid request body")
	}

	paid, err := h.payoutUC.MarkPaid(c.Context(), c.Params("id"), req.ConfirmationCode)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrPayoutNotFound):
			return notFound(c, err.Error())
		case errors.Is(err, domain.ErrConfirmationRequired),
			errors.Is(err, domain.ErrInvalidConfirmation),
			errors.Is(err, domain.ErrPayoutAlreadyPaid):
			return badRequest(c, err.Error())
		default:
			return internalError(c, err)
		}
	}
	h.metrics.RecordPayoutPaid(paid.EntityType, paid.CommissionAmount)

	return c.JSON(fiber.Map{"success": true, "paid_at": paid.PaidAt})
}

func (h *AdminHandler) CreatorStats(c *fiber.Ctx) error {
	stats, err := h.creatorUC.GetStats(c.Context(), c.Params("id"))
	if err != nil {
		if errors.Is(err, domain.ErrCreatorNotFound) {
			return notFound(c, err.Error())
		}
		return internalError(c, err)
	}

	return c.JSON(response.CreatorStatsResponse{
		CreatorID:         stats.CreatorID,
		ReferralCode:      stats.ReferralCode,
		LifetimePaidUsers: stats.LifetimePaidUsers,
		AvailableBalance:  stats.AvailableBalance,
		TotalWithdrawn:    stats.TotalWithdrawn,
		EffectiveRate:     stats.EffectiveRate,
		CustomRateSet:     stats.CustomRateSet,
		CMOID:             stats.CMOID,
		CMOReferralCode:   stats.CMOReferralCode,
	})
}

func (h *AdminHandler) RecordWithdrawal(c *fiber.Ctx) error {
	var req request.WithdrawalRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}

	if err := h.creatorUC.RecordWithdrawal(c.Context(), c.Params("id"), req.Amount); err != nil {
		switch {
		case errors.Is(err, domain.ErrCreatorNotFound):
			return notFound(c, err.Error())
		case errors.Is(err, domain.ErrInsufficientBalance):
			return badRequest(c, err.Error())
		default:
			return internalError(c, err)
		}
	}
	return c.JSON(fiber.Map{"success": true})
}

func (h *AdminHandler) CreateDiscountCode(c *fiber.Ctx) error {
	var req request.CreateDiscountCodeRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}

	dc, err := h.creatorUC.CreateDiscountCode(c.Context(), c.Params("id"), req.Code, req.DiscountPercent)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrCreatorNotFound):
			return notFound(c, err.Error())
		case errors.Is(err, domain.ErrDiscountCodeExists):
			return conflict(c, err.Error())
		default:
			return badRequest(c, err.Error())
		}
	}

	return c.Status(fiber.StatusCreated).JSON(toDiscountResponse(dc))
}

func (h *AdminHandler) ListDiscountCodes(c *fiber.Ctx) error {
	codes, err := h.creatorUC.ListDiscountCodes(c.Context(), c.Params("id"))
	if err != nil {
		return internalError(c, err)
	}

	resp := make([]response.DiscountCodeResponse, len(codes))
	for i, dc := range codes {
		resp[i] = toDiscountResponse(dc)
	}
	return c.JSON(fiber.Map{"success": true, "discount_codes": resp})
}

func toDiscountResponse(dc *creatordto.DiscountCodeOutput) response.DiscountCodeResponse {
	return response.DiscountCodeResponse{
		ID:              dc.ID,
		Code:            dc.Code,
		CreatorID:       dc.CreatorID,
		DiscountPercent: dc.DiscountPercent,
		PaidConversions: dc.PaidConversions,
		CreatedAt:       dc.CreatedAt,
	}
}

func internalError(c *fiber.Ctx, err error) error {
	return c.Status(fiber.StatusInternalServerError).JSON(response.ErrorResponse{
		Success: false,
		Error:   err.Error(),
	})
}

func notFound(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusNotFound).JSON(response.ErrorResponse{
		Success: false,
		Error:   msg,
	})
}

func conflict(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusConflict).JSON(response.ErrorResponse{
		Success: false,
		Error:   msg,
	})
}
