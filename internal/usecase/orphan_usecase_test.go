package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/brightlms/commission-service/internal/domain"
	"github.com/stretchr/testify/require"
)

func newOrphanUsecase(s *fakeStore) (*DefaultOrphanUsecase, *BulkOpGuard) {
	writer, _ := newAttributionUsecase(s)
	guard := NewBulkOpGuard()
	uc := NewDefaultOrphanUsecase(
		&fakeRawPaymentRepo{s: s},
		&fakeAttributionRepo{s: s},
		writer,
		guard,
	)
	return uc, guard
}

func TestListOrphansSetDifference(t *testing.T) {
	s := newFakeStore()
	addCreator(s, "creator-a", "REF-A", 0, nil)
	uc, _ := newOrphanUsecase(s)

	addRawPayment(s, "order-1", "user-1", "REF-A", 1000, domain.RawPaymentCompleted)
	addRawPayment(s, "order-2", "user-2", "REF-A", 1000, domain.RawPaymentCompleted)
	addRawPayment(s, "order-3", "user-3", "REF-A", 1000, domain.RawPaymentCompleted)
	addRawPayment(s, "order-4", "user-4", "REF-A", 1000, domain.RawPaymentPending)
	addRawPayment(s, "order-5", "user-5", "REF-A", 1000, domain.RawPaymentFailed)

	// order-1 is already attributed, so only order-2 and order-3 are
	// orphans. Pending and failed payments never count.
	writer, _ := newAttributionUsecase(s)
	_, err := writer.FinalizePayment(context.Background(), cardPayment("order-1", "user-1", "REF-A", 1000))
	require.NoError(t, err)

	orphans, err := uc.ListOrphans(context.Background())
	require.NoError(t, err)
	require.Len(t, orphans, 2)

	got := map[string]bool{}
	for _, orphan := range orphans {
		got[orphan.OrderID] = true
		require.NotEmpty(t, orphan.BuyerEmail)
	}
	require.True(t, got["order-2"])
	require.True(t, got["order-3"])
}

func TestListOrphansEmptyWhenConsistent(t *testing.T) {
	s := newFakeStore()
	addCreator(s, "creator-a", "REF-A", 0, nil)
	uc, _ := newOrphanUsecase(s)

	addRawPayment(s, "order-1", "user-1", "REF-A", 1000, domain.RawPaymentCompleted)
	writer, _ := newAttributionUsecase(s)
	_, err := writer.FinalizePayment(context.Background(), cardPayment("order-1", "user-1", "REF-A", 1000))
	require.NoError(t, err)

	orphans, err := uc.ListOrphans(context.Background())
	require.NoError(t, err)
	require.Empty(t, orphans)
}

func TestFixOrphan(t *testing.T) {
	s := newFakeStore()
	addCreator(s, "creator-a", "REF-A", 0, nil)
	uc, _ := newOrphanUsecase(s)

	addRawPayment(s, "order-1", "user-1", "REF-A", 1500, domain.RawPaymentCompleted)

	out, err := uc.FixOrphan(context.Background(), "order-1")
	require.NoError(t, err)
	require.False(t, out.AlreadyAttributed)
	require.Equal(t, "creator-a", out.CreatorID)
	require.Equal(t, 120.0, out.CommissionAmount)
	require.NotNil(t, s.attributions["order-1"])

	// Fixing an already-repaired orphan is a no-op success.
	out, err = uc.FixOrphan(context.Background(), "order-1")
	require.NoError(t, err)
	require.True(t, out.AlreadyAttributed)
	require.Equal(t, int64(1), s.creators["creator-a"].LifetimePaidUsers)
}

func TestFixOrphanRejectsIncompletePayment(t *testing.T) {
	s := newFakeStore()
	uc, _ := newOrphanUsecase(s)

	addRawPayment(s, "order-1", "user-1", "", 1000, domain.RawPaymentPending)

	_, err := uc.FixOrphan(context.Background(), "order-1")
	require.ErrorIs(t, err, domain.ErrPaymentNotCompleted)

	_, err = uc.FixOrphan(context.Background(), "order-missing")
	require.ErrorIs(t, err, domain.ErrPaymentNotFound)
}

func TestReconcileAllContinuesPastFailures(t *testing.T) {
	s := newFakeStore()
	addCreator(s, "creator-a", "REF-A", 0, nil)
	uc, _ := newOrphanUsecase(s)

	addRawPayment(s, "order-1", "user-1", "REF-A", 1000, domain.RawPaymentCompleted)
	addRawPayment(s, "order-2", "user-2", "REF-A", 1000, domain.RawPaymentCompleted)
	addRawPayment(s, "order-3", "user-3", "REF-A", 1000, domain.RawPaymentCompleted)
	s.appendErr["order-2"] = errors.New("connection reset")

	report, err := uc.ReconcileAll(context.Background())
	require.NoError(t, err)
	require.Equal(t, 2, report.Fixed)
	require.Equal(t, 1, report.Failed)
	require.Len(t, report.Failures, 1)
	require.Equal(t, "order-2", report.Failures[0].OrderID)
	require.Contains(t, report.Failures[0].Error, "connection reset")

	// The failed orphan stays repairable once the fault clears.
	delete(s.appendErr, "order-2")
	report, err = uc.ReconcileAll(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, report.Fixed)
	require.Equal(t, 0, report.Failed)
}

func TestReconcileAllRejectsConcurrentRun(t *testing.T) {
	s := newFakeStore()
	uc, guard := newOrphanUsecase(s)

	require.True(t, guard.TryAcquire())
	defer guard.Release()

	_, err := uc.ReconcileAll(context.Background())
	require.ErrorIs(t, err, domain.ErrReconciliationRunning)
}
