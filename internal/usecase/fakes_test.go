package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/brightlms/commission-service/internal/commission"
	"github.com/brightlms/commission-service/internal/domain"
	"github.com/google/uuid"
)

// fakeStore is a single in-memory backing store shared by the fake
// repositories, mirroring the behavior of the postgres layer closely
// enough to exercise the usecases: idempotent ledger appends, cache
// increments and payout upserts.
type fakeStore struct {
	attributions  map[string]*domain.PaymentAttribution // keyed by order_id
	bindings      map[string]*domain.UserAttribution    // keyed by user_id
	creators      map[string]*domain.CreatorAccount
	cmos          map[string]*domain.CMOAccount
	discounts     map[string]*domain.DiscountCode // keyed by code
	payouts       map[string]*domain.PayoutRecord // keyed by entity_type|entity_id|month
	confirmations []*domain.PayoutConfirmation
	rawPayments   map[string]*domain.RawPayment // keyed by order_id

	appendErr    map[string]error // injected Append failures by order_id
	overwriteErr map[string]error // injected OverwriteStats failures by creator_id
	appendHook   func(app *domain.LedgerAppend) error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		attributions: make(map[string]*domain.PaymentAttribution),
		bindings:     make(map[string]*domain.UserAttribution),
		creators:     make(map[string]*domain.CreatorAccount),
		cmos:         make(map[string]*domain.CMOAccount),
		discounts:    make(map[string]*domain.DiscountCode),
		payouts:      make(map[string]*domain.PayoutRecord),
		rawPayments:  make(map[string]*domain.RawPayment),
		appendErr:    make(map[string]error),
		overwriteErr: make(map[string]error),
	}
}

func payoutKey(entityType domain.PayoutEntityType, entityID string, month time.Time) string {
	return fmt.Sprintf("%s|%s|%s", entityType, entityID, month.Format("2006-01"))
}

func (s *fakeStore) payout(entityType domain.PayoutEntityType, entityID string, month time.Time) *domain.PayoutRecord {
	return s.payouts[payoutKey(entityType, entityID, month)]
}

func (s *fakeStore) bumpPayout(entityType domain.PayoutEntityType, entityID string, month time.Time, amount float64, at time.Time) {
	key := payoutKey(entityType, entityID, month)
	record, ok := s.payouts[key]
	if !ok {
		s.payouts[key] = &domain.PayoutRecord{
			ID:               uuid.New().String(),
			EntityID:         entityID,
			EntityType:       entityType,
			PayoutMonth:      month,
			TotalPaidUsers:   1,
			CommissionAmount: amount,
			Status:           domain.PayoutStatusPending,
			CreatedAt:        at,
			UpdatedAt:        at,
		}
		return
	}
	record.TotalPaidUsers++
	record.CommissionAmount = commission.RoundCents(record.CommissionAmount + amount)
	record.UpdatedAt = at
}

type fakeAttributionRepo struct {
	s *fakeStore
}

func (r *fakeAttributionRepo) Append(_ context.Context, app *domain.LedgerAppend) error {
	s := r.s
	att := app.Attribution
	if err := s.appendErr[att.OrderID]; err != nil {
		return err
	}
	if s.appendHook != nil {
		if err := s.appendHook(app); err != nil {
			return err
		}
	}
	if _, ok := s.attributions[att.OrderID]; ok {
		return domain.ErrAlreadyAttributed
	}

	stored := *att
	s.attributions[att.OrderID] = &stored

	if app.BindUser && att.CreatorID != nil {
		if _, ok := s.bindings[att.UserID]; !ok {
			s.bindings[att.UserID] = &domain.UserAttribution{
				UserID:    att.UserID,
				CreatorID: *att.CreatorID,
				CreatedAt: att.CreatedAt,
			}
		}
	}

	if app.DiscountCode != "" {
		if dc, ok := s.discounts[app.DiscountCode]; ok {
			dc.PaidConversions++
		}
	}

	if att.CreatorID == nil {
		return nil
	}

	creator, ok := s.creators[*att.CreatorID]
	if !ok {
		return domain.ErrCreatorNotFound
	}
	creator.LifetimePaidUsers++
	creator.AvailableBalance = commission.RoundCents(creator.AvailableBalance + att.CommissionAmount)

	s.bumpPayout(domain.PayoutEntityCreator, *att.CreatorID, att.PaymentMonth, att.CommissionAmount, att.CreatedAt)
	if app.CMOID != "" {
		s.bumpPayout(domain.PayoutEntityCMO, app.CMOID, att.PaymentMonth, app.CMOShare, att.CreatedAt)
	}

	return nil
}

func (r *fakeAttributionRepo) GetByOrderID(_ context.Context, orderID string) (*domain.PaymentAttribution, error) {
	att, ok := r.s.attributions[orderID]
	if !ok {
		return nil, domain.ErrAttributionNotFound
	}
	cp := *att
	return &cp, nil
}

func (r *fakeAttributionRepo) ListOrderIDs(_ context.Context) ([]string, error) {
	ids := make([]string, 0, len(r.s.attributions))
	for id := range r.s.attributions {
		ids = append(ids, id)
	}
	return ids, nil
}

func (r *fakeAttributionRepo) AggregateByCreator(_ context.Context) ([]*domain.CreatorAggregate, error) {
	byCreator := make(map[string]*domain.CreatorAggregate)
	for _, att := range r.s.attributions {
		if att.CreatorID == nil {
			continue
		}
		agg, ok := byCreator[*att.CreatorID]
		if !ok {
			agg = &domain.CreatorAggregate{CreatorID: *att.CreatorID}
			byCreator[*att.CreatorID] = agg
		}
		agg.PaidUsers++
		agg.TotalCommission = commission.RoundCents(agg.TotalCommission + att.CommissionAmount)
	}

	aggregates := make([]*domain.CreatorAggregate, 0, len(byCreator))
	for _, agg := range byCreator {
		aggregates = append(aggregates, agg)
	}
	return aggregates, nil
}

func (r *fakeAttributionRepo) AggregateCreatorMonthly(_ context.Context) ([]*domain.MonthlyAggregate, error) {
	byKey := make(map[string]*domain.MonthlyAggregate)
	for _, att := range r.s.attributions {
		if att.CreatorID == nil {
			continue
		}
		key := payoutKey(domain.PayoutEntityCreator, *att.CreatorID, att.PaymentMonth)
		agg, ok := byKey[key]
		if !ok {
			agg = &domain.MonthlyAggregate{EntityID: *att.CreatorID, PayoutMonth: att.PaymentMonth}
			byKey[key] = agg
		}
		agg.PaidUsers++
		agg.CommissionAmount = commission.RoundCents(agg.CommissionAmount + att.CommissionAmount)
	}

	aggregates := make([]*domain.MonthlyAggregate, 0, len(byKey))
	for _, agg := range byKey {
		aggregates = append(aggregates, agg)
	}
	return aggregates, nil
}

func (r *fakeAttributionRepo) AggregateCMOMonthly(_ context.Context, overrideRate float64) ([]*domain.MonthlyAggregate, error) {
	byKey := make(map[string]*domain.MonthlyAggregate)
	for _, att := range r.s.attributions {
		if att.CreatorID == nil {
			continue
		}
		creator, ok := r.s.creators[*att.CreatorID]
		if !ok || creator.CMOID == nil {
			continue
		}
		key := payoutKey(domain.PayoutEntityCMO, *creator.CMOID, att.PaymentMonth)
		agg, ok := byKey[key]
		if !ok {
			agg = &domain.MonthlyAggregate{EntityID: *creator.CMOID, PayoutMonth: att.PaymentMonth}
			byKey[key] = agg
		}
		agg.PaidUsers++
		agg.CommissionAmount = commission.RoundCents(agg.CommissionAmount + commission.RoundCents(att.CommissionAmount*overrideRate))
	}

	aggregates := make([]*domain.MonthlyAggregate, 0, len(byKey))
	for _, agg := range byKey {
		aggregates = append(aggregates, agg)
	}
	return aggregates, nil
}

type fakeUserAttributionRepo struct {
	s *fakeStore
}

func (r *fakeUserAttributionRepo) Find(_ context.Context, userID string) (*domain.UserAttribution, error) {
	binding, ok := r.s.bindings[userID]
	if !ok {
		return nil, nil
	}
	cp := *binding
	return &cp, nil
}

type fakeCreatorRepo struct {
	s *fakeStore
}

func (r *fakeCreatorRepo) GetByID(_ context.Context, creatorID string) (*domain.CreatorAccount, error) {
	creator, ok := r.s.creators[creatorID]
	if !ok {
		return nil, domain.ErrCreatorNotFound
	}
	cp := *creator
	return &cp, nil
}

func (r *fakeCreatorRepo) GetByReferralCode(_ context.Context, code string) (*domain.CreatorAccount, error) {
	for _, creator := range r.s.creators {
		if creator.ReferralCode == code {
			cp := *creator
			return &cp, nil
		}
	}
	return nil, domain.ErrUnknownReferralCode
}

func (r *fakeCreatorRepo) ListAll(_ context.Context) ([]*domain.CreatorAccount, error) {
	creators := make([]*domain.CreatorAccount, 0, len(r.s.creators))
	for _, creator := range r.s.creators {
		cp := *creator
		creators = append(creators, &cp)
	}
	return creators, nil
}

func (r *fakeCreatorRepo) OverwriteStats(_ context.Context, creatorID string, paidUsers int64, totalCommission float64) error {
	if err := r.s.overwriteErr[creatorID]; err != nil {
		return err
	}
	creator, ok := r.s.creators[creatorID]
	if !ok {
		return domain.ErrCreatorNotFound
	}
	creator.LifetimePaidUsers = paidUsers
	creator.AvailableBalance = commission.RoundCents(totalCommission - creator.TotalWithdrawn)
	return nil
}

func (r *fakeCreatorRepo) RecordWithdrawal(_ context.Context, creatorID string, amount float64) error {
	creator, ok := r.s.creators[creatorID]
	if !ok {
		return domain.ErrCreatorNotFound
	}
	if creator.AvailableBalance < amount {
		return domain.ErrInsufficientBalance
	}
	creator.AvailableBalance = commission.RoundCents(creator.AvailableBalance - amount)
	creator.TotalWithdrawn = commission.RoundCents(creator.TotalWithdrawn + amount)
	return nil
}

type fakeCMORepo struct {
	s *fakeStore
}

func (r *fakeCMORepo) GetByID(_ context.Context, cmoID string) (*domain.CMOAccount, error) {
	cmo, ok := r.s.cmos[cmoID]
	if !ok {
		return nil, domain.ErrCMONotFound
	}
	cp := *cmo
	return &cp, nil
}

type fakeDiscountRepo struct {
	s *fakeStore
}

func (r *fakeDiscountRepo) GetByCode(_ context.Context, code string) (*domain.DiscountCode, error) {
	dc, ok := r.s.discounts[code]
	if !ok {
		return nil, domain.ErrUnknownDiscountCode
	}
	cp := *dc
	return &cp, nil
}

func (r *fakeDiscountRepo) Create(_ context.Context, dc *domain.DiscountCode) error {
	if _, ok := r.s.discounts[dc.Code]; ok {
		return domain.ErrDiscountCodeExists
	}
	cp := *dc
	r.s.discounts[dc.Code] = &cp
	return nil
}

func (r *fakeDiscountRepo) ListByCreator(_ context.Context, creatorID string) ([]*domain.DiscountCode, error) {
	codes := make([]*domain.DiscountCode, 0)
	for _, dc := range r.s.discounts {
		if dc.CreatorID == creatorID {
			cp := *dc
			codes = append(codes, &cp)
		}
	}
	return codes, nil
}

type fakePayoutRepo struct {
	s *fakeStore
}

func (r *fakePayoutRepo) GetByID(_ context.Context, payoutID string) (*domain.PayoutRecord, error) {
	for _, record := range r.s.payouts {
		if record.ID == payoutID {
			cp := *record
			return &cp, nil
		}
	}
	return nil, domain.ErrPayoutNotFound
}

func (r *fakePayoutRepo) List(_ context.Context, filter domain.PayoutFilter) ([]*domain.PayoutRecord, error) {
	records := make([]*domain.PayoutRecord, 0)
	for _, record := range r.s.payouts {
		if filter.EntityID != "" && record.EntityID != filter.EntityID {
			continue
		}
		if filter.EntityType != "" && record.EntityType != filter.EntityType {
			continue
		}
		if filter.Status != "" && record.Status != filter.Status {
			continue
		}
		if filter.Month != nil && !record.PayoutMonth.Equal(*filter.Month) {
			continue
		}
		cp := *record
		records = append(records, &cp)
	}
	return records, nil
}

func (r *fakePayoutRepo) UpsertAggregate(_ context.Context, entityType domain.PayoutEntityType, agg *domain.MonthlyAggregate) error {
	key := payoutKey(entityType, agg.EntityID, agg.PayoutMonth)
	record, ok := r.s.payouts[key]
	if !ok {
		r.s.payouts[key] = &domain.PayoutRecord{
			ID:               uuid.New().String(),
			EntityID:         agg.EntityID,
			EntityType:       entityType,
			PayoutMonth:      agg.PayoutMonth,
			TotalPaidUsers:   agg.PaidUsers,
			CommissionAmount: agg.CommissionAmount,
			Status:           domain.PayoutStatusPending,
		}
		return nil
	}
	record.TotalPaidUsers = agg.PaidUsers
	record.CommissionAmount = agg.CommissionAmount
	return nil
}

func (r *fakePayoutRepo) UpdateStatus(_ context.Context, payoutID string, status domain.PayoutStatus, paidAt *time.Time) error {
	for _, record := range r.s.payouts {
		if record.ID == payoutID {
			record.Status = status
			record.PaidAt = paidAt
			return nil
		}
	}
	return domain.ErrPayoutNotFound
}

func (r *fakePayoutRepo) CreateConfirmation(_ context.Context, confirmation *domain.PayoutConfirmation) error {
	cp := *confirmation
	r.s.confirmations = append(r.s.confirmations, &cp)
	return nil
}

func (r *fakePayoutRepo) ConsumeConfirmation(_ context.Context, payoutID, code string) error {
	now := time.Now().UTC()
	for _, confirmation := range r.s.confirmations {
		if confirmation.PayoutID != payoutID || confirmation.Code != code {
			continue
		}
		if confirmation.UsedAt != nil || confirmation.ExpiresAt.Before(now) {
			continue
		}
		confirmation.UsedAt = &now
		return nil
	}
	return domain.ErrInvalidConfirmation
}

type fakeRawPaymentRepo struct {
	s *fakeStore
}

func (r *fakeRawPaymentRepo) GetByOrderID(_ context.Context, orderID string) (*domain.RawPayment, error) {
	payment, ok := r.s.rawPayments[orderID]
	if !ok {
		return nil, domain.ErrPaymentNotFound
	}
	cp := *payment
	return &cp, nil
}

func (r *fakeRawPaymentRepo) ListByStatus(_ context.Context, status domain.RawPaymentStatus) ([]*domain.RawPayment, error) {
	payments := make([]*domain.RawPayment, 0)
	for _, payment := range r.s.rawPayments {
		if payment.Status == status {
			cp := *payment
			payments = append(payments, &cp)
		}
	}
	return payments, nil
}

type fakePublisher struct {
	attributionEvents []domain.AttributionRecordedEvent
	payoutEvents      []domain.PayoutPaidEvent
	err               error
}

func (p *fakePublisher) PublishAttributionRecorded(_ context.Context, event domain.AttributionRecordedEvent) error {
	if p.err != nil {
		return p.err
	}
	p.attributionEvents = append(p.attributionEvents, event)
	return nil
}

func (p *fakePublisher) PublishPayoutPaid(_ context.Context, event domain.PayoutPaidEvent) error {
	if p.err != nil {
		return p.err
	}
	p.payoutEvents = append(p.payoutEvents, event)
	return nil
}

// test data helpers

func addCreator(s *fakeStore, id, referralCode string, paidUsers int64, cmoID *string) *domain.CreatorAccount {
	creator := &domain.CreatorAccount{
		ID:                id,
		ReferralCode:      referralCode,
		CMOID:             cmoID,
		LifetimePaidUsers: paidUsers,
		CreatedAt:         time.Now().UTC(),
	}
	s.creators[id] = creator
	return creator
}

func addRawPayment(s *fakeStore, orderID, userID, referralCode string, amount float64, status domain.RawPaymentStatus) *domain.RawPayment {
	payment := &domain.RawPayment{
		OrderID:        orderID,
		UserID:         userID,
		EnrollmentID:   "enr-" + orderID,
		BuyerEmail:     userID + "@example.com",
		Status:         status,
		OriginalAmount: amount,
		FinalAmount:    amount,
		ReferralCode:   referralCode,
		PaymentType:    domain.PaymentTypeGatewayCard,
		Tier:           "standard",
		CreatedAt:      time.Now().UTC(),
	}
	s.rawPayments[orderID] = payment
	return payment
}
