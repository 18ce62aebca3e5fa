package http

import (
	"github.com/brightlms/commission-service/internal/delivery/http/handlers"
	"github.com/gofiber/fiber/v2"
)

func SetupRoutes(app *fiber.App, paymentHandler *handlers.PaymentHandler, adminHandler *handlers.AdminHandler) {
	app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	// Checkout collaborator entry point
	app.Post("/payments/finalize", paymentHandler.FinalizePayment)

	admin := app.Group("/admin")

	admin.Get("/orphans", adminHandler.ListOrphans)
	admin.Post("/orphans/:order_id/fix", adminHandler.FixOrphan)
	admin.Post("/orphans/reconcile", adminHandler.ReconcileOrphans)

	admin.Get("/reconciliation/report", adminHandler.ReconciliationReport)
	admin.Post("/reconciliation/recalculate", adminHandler.RecalculateStats)

	admin.Get("/payouts", adminHandler.ListPayouts)
	admin.Post("/payouts/:id/confirmation", adminHandler.IssuePayoutConfirmation)
	admin.Post("/payouts/:id/eligible", adminHandler.MarkPayoutEligible)
	admin.Post("/payouts/:id/pay", adminHandler.MarkPayoutPaid)

	admin.Get("/creators/:id/stats", adminHandler.CreatorStats)
	admin.Post("/creators/:id/withdrawals", adminHandler.RecordWithdrawal)
	admin.Post("/creators/:id/discount-codes", adminHandler.CreateDiscountCode)
	admin.Get("/creators/:id/discount-codes", adminHandler.ListDiscountCodes)
}
