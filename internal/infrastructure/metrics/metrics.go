package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// CommissionMetrics covers the attribution writer and the admin
// reconciliation surface.
type CommissionMetrics struct {
	AttributionsRecordedTotal  prometheus.CounterVec
	CommissionAmountTotal      prometheus.CounterVec
	DuplicateAttributionsTotal prometheus.Counter
	DirectSalesTotal           prometheus.Counter
	AttributionErrorsTotal     prometheus.CounterVec

	OrphansDetected      prometheus.Gauge
	OrphansFixedTotal    prometheus.Counter
	OrphansFailedTotal   prometheus.Counter
	ReconcileRunsTotal   prometheus.Counter
	RecalcRunsTotal      prometheus.Counter
	CreatorsDriftedTotal prometheus.Counter

	PayoutsPaidTotal  prometheus.CounterVec
	PayoutsPaidAmount prometheus.CounterVec
}

func NewCommissionMetrics() *CommissionMetrics {
	return &CommissionMetrics{
		AttributionsRecordedTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "attributions_recorded_total",
				Help: "Total payment attributions written to the ledger",
			},
			[]string{"tier", "payment_type", "referred"},
		),

		CommissionAmountTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "commission_amount_total",
				Help: "Total creator commission attributed",
			},
			[]string{"tier"},
		),

		DuplicateAttributionsTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "duplicate_attributions_total",
				Help: "Finalize calls rejected by the order_id idempotency gate",
			},
		),

		DirectSalesTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "direct_sales_total",
				Help: "Attributions recorded with no resolvable referrer",
			},
		),

		AttributionErrorsTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "attribution_errors_total",
				Help: "Failed finalize calls by error type",
			},
			[]string{"error_type"},
		),

		OrphansDetected: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "orphaned_payments_detected",
				Help: "Completed payments without an attribution at last scan",
			},
		),

		OrphansFixedTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "orphaned_payments_fixed_total",
				Help: "Orphans repaired through the attribution writer",
			},
		),

		OrphansFailedTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "orphaned_payments_failed_total",
				Help: "Orphan repairs that failed and were skipped",
			},
		),

		ReconcileRunsTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "reconcile_runs_total",
				Help: "Bulk orphan reconciliation sweeps",
			},
		),

		RecalcRunsTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "recalculation_runs_total",
				Help: "Full stat recalculation runs",
			},
		),

		CreatorsDriftedTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "creators_drifted_total",
				Help: "Creators whose cached stats disagreed with the ledger",
			},
		),

		PayoutsPaidTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "payouts_paid_total",
				Help: "Payout records marked paid by an operator",
			},
			[]string{"entity_type"},
		),

		PayoutsPaidAmount: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "payouts_paid_amount_total",
				Help: "Total commission amount marked paid",
			},
			[]string{"entity_type"},
		),
	}
}

func (m *CommissionMetrics) RecordAttribution(tier, paymentType string, referred bool, commission float64) {
	referredStr := "false"
	if referred {
		referredStr = "true"
	}
	m.AttributionsRecordedTotal.WithLabelValues(tier, paymentType, referredStr).Inc()
	if referred {
		m.CommissionAmountTotal.WithLabelValues(tier).Add(commission)
	} else {
		m.DirectSalesTotal.Inc()
	}
}

func (m *CommissionMetrics) RecordDuplicate() {
	m.DuplicateAttributionsTotal.Inc()
}

func (m *CommissionMetrics) RecordAttributionError(errorType string) {
	m.AttributionErrorsTotal.WithLabelValues(errorType).Inc()
}

func (m *CommissionMetrics) RecordOrphanScan(detected int) {
	m.OrphansDetected.Set(float64(detected))
}

func (m *CommissionMetrics) RecordReconcileRun(fixed, failed int) {
	m.ReconcileRunsTotal.Inc()
	m.OrphansFixedTotal.Add(float64(fixed))
	m.OrphansFailedTotal.Add(float64(failed))
}

func (m *CommissionMetrics) RecordRecalcRun(drifted int) {
	m.RecalcRunsTotal.Inc()
	m.CreatorsDriftedTotal.Add(float64(drifted))
}

func (m *CommissionMetrics) RecordPayoutPaid(entityType string, amount float64) {
	m.PayoutsPaidTotal.WithLabelValues(entityType).Inc()
	m.PayoutsPaidAmount.WithLabelValues(entityType).Add(amount)
}
