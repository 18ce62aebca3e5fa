package usecase

import (
	"context"
	"testing"

	"github.com/brightlms/commission-service/internal/commission"
	"github.com/brightlms/commission-service/internal/domain"
	"github.com/stretchr/testify/require"
)

func newCreatorUsecase(s *fakeStore) *DefaultCreatorUsecase {
	return NewDefaultCreatorUsecase(
		&fakeCreatorRepo{s: s},
		&fakeCMORepo{s: s},
		&fakeDiscountRepo{s: s},
		commission.DefaultSchedule(),
	)
}

func TestGetStats(t *testing.T) {
	s := newFakeStore()
	cmoID := "cmo-m"
	s.cmos[cmoID] = &domain.CMOAccount{ID: cmoID, ReferralCode: "CMO-M"}
	creator := addCreator(s, "creator-a", "REF-A", 750, &cmoID)
	creator.AvailableBalance = 320.5
	creator.TotalWithdrawn = 100
	uc := newCreatorUsecase(s)

	stats, err := uc.GetStats(context.Background(), "creator-a")
	require.NoError(t, err)
	require.Equal(t, "REF-A", stats.ReferralCode)
	require.Equal(t, int64(750), stats.LifetimePaidUsers)
	require.Equal(t, 320.5, stats.AvailableBalance)
	require.Equal(t, 100.0, stats.TotalWithdrawn)
	require.Equal(t, 0.12, stats.EffectiveRate)
	require.False(t, stats.CustomRateSet)
	require.Equal(t, "cmo-m", stats.CMOID)
	require.Equal(t, "CMO-M", stats.CMOReferralCode)
}

func TestGetStatsCustomRate(t *testing.T) {
	s := newFakeStore()
	creator := addCreator(s, "creator-a", "REF-A", 10, nil)
	custom := 0.2
	creator.CustomCommissionRate = &custom
	uc := newCreatorUsecase(s)

	stats, err := uc.GetStats(context.Background(), "creator-a")
	require.NoError(t, err)
	require.Equal(t, 0.2, stats.EffectiveRate)
	require.True(t, stats.CustomRateSet)

	_, err = uc.GetStats(context.Background(), "missing")
	require.ErrorIs(t, err, domain.ErrCreatorNotFound)
}

func TestRecordWithdrawal(t *testing.T) {
	s := newFakeStore()
	creator := addCreator(s, "creator-a", "REF-A", 0, nil)
	creator.AvailableBalance = 500
	uc := newCreatorUsecase(s)
	ctx := context.Background()

	err := uc.RecordWithdrawal(ctx, "creator-a", 200)
	require.NoError(t, err)
	require.Equal(t, 300.0, creator.AvailableBalance)
	require.Equal(t, 200.0, creator.TotalWithdrawn)

	err = uc.RecordWithdrawal(ctx, "creator-a", 400)
	require.ErrorIs(t, err, domain.ErrInsufficientBalance)

	err = uc.RecordWithdrawal(ctx, "creator-a", -10)
	require.Error(t, err)

	err = uc.RecordWithdrawal(ctx, "creator-a", 0)
	require.Error(t, err)
}

func TestCreateDiscountCode(t *testing.T) {
	s := newFakeStore()
	addCreator(s, "creator-a", "REF-A", 0, nil)
	uc := newCreatorUsecase(s)
	ctx := context.Background()

	out, err := uc.CreateDiscountCode(ctx, "creator-a", "  spring20 ", 20)
	require.NoError(t, err)
	require.Equal(t, "SPRING20", out.Code)
	require.Equal(t, "creator-a", out.CreatorID)
	require.Equal(t, 20.0, out.DiscountPercent)

	_, err = uc.CreateDiscountCode(ctx, "creator-a", "SPRING20", 25)
	require.ErrorIs(t, err, domain.ErrDiscountCodeExists)

	_, err = uc.CreateDiscountCode(ctx, "creator-a", "", 20)
	require.Error(t, err)

	_, err = uc.CreateDiscountCode(ctx, "creator-a", "OVER", 120)
	require.Error(t, err)

	_, err = uc.CreateDiscountCode(ctx, "missing", "NOPE", 10)
	require.ErrorIs(t, err, domain.ErrCreatorNotFound)
}

func TestListDiscountCodes(t *testing.T) {
	s := newFakeStore()
	addCreator(s, "creator-a", "REF-A", 0, nil)
	addCreator(s, "creator-b", "REF-B", 0, nil)
	uc := newCreatorUsecase(s)
	ctx := context.Background()

	_, err := uc.CreateDiscountCode(ctx, "creator-a", "ONE", 10)
	require.NoError(t, err)
	_, err = uc.CreateDiscountCode(ctx, "creator-a", "TWO", 15)
	require.NoError(t, err)
	_, err = uc.CreateDiscountCode(ctx, "creator-b", "OTHER", 5)
	require.NoError(t, err)

	codes, err := uc.ListDiscountCodes(ctx, "creator-a")
	require.NoError(t, err)
	require.Len(t, codes, 2)
	for _, code := range codes {
		require.Equal(t, "creator-a", code.CreatorID)
	}
}
