package payment

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"karam/internal/domain"
	"karam/internal/modules/cart"
	"karam/internal/repository"
)

type MockPaymentStore struct {
	mock.Mock
}

func (m *MockPaymentStore) Create(ctx context.Context, p *domain.MoyasarPayment) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockPaymentStore) GetByInvID(ctx context.Context, invID int64) (*domain.MoyasarPayment, error) {
	args := m.Called(ctx, invID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MoyasarPayment), args.Error(1)
}

func (m *MockPaymentStore) MarkFailed(ctx context.Context, invID int64, rawBody, reason string) error {
	args := m.Called(ctx, invID, rawBody, reason)
	return args.Error(0)
}

func (m *MockPaymentStore) MarkPaidIdempotent(ctx context.Context, invID int64, gatewayID, sourceType, rawBody string, paidAt time.Time) (bool, error) {
	args := m.Called(ctx, invID, gatewayID, sourceType, rawBody, paidAt)
	return args.Bool(0), args.Error(1)
}

type MockBookingMarker struct {
	mock.Mock
}

func (m *MockBookingMarker) MarkPaid(ctx context.Context, ids []int64) error {
	args := m.Called(ctx, ids)
	return args.Error(0)
}

type MockQuoter struct {
	mock.Mock
}

func (m *MockQuoter) Quote(ctx context.Context, ownerKey string, userID int64, discountCode string) (cart.Quote, error) {
	args := m.Called(ctx, ownerKey, userID, discountCode)
	return args.Get(0).(cart.Quote), args.Error(1)
}

func (m *MockQuoter) Clear(ctx context.Context, ownerKey string) error {
	args := m.Called(ctx, ownerKey)
	return args.Error(0)
}

type MockDiscountRedeemer struct {
	mock.Mock
}

func (m *MockDiscountRedeemer) GetByCode(ctx context.Context, code string) (*domain.DiscountCode, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DiscountCode), args.Error(1)
}

func (m *MockDiscountRedeemer) IncrementUse(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) BookingPaid(ctx context.Context, userID int64, bookingIDs []int64, amountHalalas int64) {
	m.Called(ctx, userID, bookingIDs, amountHalalas)
}

type fakeGateway struct {
	payment *GatewayPayment
	err     error
}

func (g *fakeGateway) FetchPayment(ctx context.Context, paymentID string) (*GatewayPayment, error) {
	if g.err != nil {
		return nil, g.err
	}
	return g.payment, nil
}

func testConfig() Config {
	return Config{
		PublishableKey: "pk_test_x",
		SecretKey:      "sk_test_x",
		CallbackURL:    "https://karam.example/payment-callback",
		Currency:       "SAR",
	}
}

func bookingQuote() cart.Quote {
	return cart.Quote{
		Items: []domain.CartItem{
			{ID: 777, Type: domain.ItemBooking, Name: "Al-Harbi Family, 3 guest(s)", Price: 675},
		},
		Subtotal:   675,
		ServiceFee: 33.75,
		VAT:        106.31,
		Total:      815.06,
	}
}

func TestInitPayment_BuildsHalalaAmountAndForm(t *testing.T) {
	store := new(MockPaymentStore)
	store.On("Create", mock.Anything, mock.MatchedBy(func(p *domain.MoyasarPayment) bool {
		return p.AmountHalalas == 81506 && p.Currency == "SAR" && p.BookingIDs == "777"
	})).Return(nil)

	cartSvc := new(MockQuoter)
	cartSvc.On("Quote", mock.Anything, "user:7", int64(7), "").Return(bookingQuote(), nil)

	svc := NewService(store, new(MockBookingMarker), cartSvc, new(MockDiscountRedeemer), &fakeGateway{}, new(MockNotifier), testConfig())

	resp, err := svc.InitPayment(context.Background(), "user:7", 7, InitPaymentRequest{})

	assert.NoError(t, err)
	assert.Equal(t, int64(81506), resp.Form.Amount)
	assert.Equal(t, "SAR", resp.Form.Currency)
	assert.Equal(t, "pk_test_x", resp.Form.PublishableAPIKey)
	assert.Equal(t, []int64{777}, resp.BookingIDs)
	assert.Contains(t, resp.Form.Methods, "creditcard")
	store.AssertExpectations(t)
}

func TestInitPayment_RequiresConfiguredGateway(t *testing.T) {
	svc := NewService(new(MockPaymentStore), new(MockBookingMarker), new(MockQuoter), new(MockDiscountRedeemer), &fakeGateway{}, new(MockNotifier), Config{})

	_, err := svc.InitPayment(context.Background(), "user:7", 7, InitPaymentRequest{})
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestInitPayment_PropagatesCartErrors(t *testing.T) {
	cartSvc := new(MockQuoter)
	cartSvc.On("Quote", mock.Anything, "anon:tok", int64(0), "").Return(cart.Quote{}, cart.ErrAuthenticationRequired)

	svc := NewService(new(MockPaymentStore), new(MockBookingMarker), cartSvc, new(MockDiscountRedeemer), &fakeGateway{}, new(MockNotifier), testConfig())

	_, err := svc.InitPayment(context.Background(), "anon:tok", 0, InitPaymentRequest{})
	assert.ErrorIs(t, err, cart.ErrAuthenticationRequired)
}

func TestInitPayment_RedeemsDiscountCode(t *testing.T) {
	q := bookingQuote()
	q.DiscountCode = "KARAM10"
	q.DiscountAmount = 67.5

	store := new(MockPaymentStore)
	store.On("Create", mock.Anything, mock.Anything).Return(nil)

	cartSvc := new(MockQuoter)
	cartSvc.On("Quote", mock.Anything, "user:7", int64(7), "KARAM10").Return(q, nil)

	discounts := new(MockDiscountRedeemer)
	discounts.On("GetByCode", mock.Anything, "KARAM10").Return(&domain.DiscountCode{ID: 4, Code: "KARAM10"}, nil)
	discounts.On("IncrementUse", mock.Anything, int64(4)).Return(nil)

	svc := NewService(store, new(MockBookingMarker), cartSvc, discounts, &fakeGateway{}, new(MockNotifier), testConfig())

	_, err := svc.InitPayment(context.Background(), "user:7", 7, InitPaymentRequest{DiscountCode: "KARAM10"})
	assert.NoError(t, err)
	discounts.AssertExpectations(t)
}

func TestInitPayment_ExhaustedDiscountAborts(t *testing.T) {
	q := bookingQuote()
	q.DiscountCode = "KARAM10"
	q.DiscountAmount = 67.5

	store := new(MockPaymentStore)

	cartSvc := new(MockQuoter)
	cartSvc.On("Quote", mock.Anything, "user:7", int64(7), "KARAM10").Return(q, nil)

	// A racing checkout took the last use between the quote and the
	// redemption; the reservation fails and nothing is persisted.
	discounts := new(MockDiscountRedeemer)
	discounts.On("GetByCode", mock.Anything, "KARAM10").Return(&domain.DiscountCode{ID: 4, Code: "KARAM10", MaxUses: 1, UsedCount: 1}, nil)
	discounts.On("IncrementUse", mock.Anything, int64(4)).Return(repository.ErrCodeExhausted)

	svc := NewService(store, new(MockBookingMarker), cartSvc, discounts, &fakeGateway{}, new(MockNotifier), testConfig())

	_, err := svc.InitPayment(context.Background(), "user:7", 7, InitPaymentRequest{DiscountCode: "KARAM10"})
	assert.ErrorIs(t, err, cart.ErrInvalidDiscount)
	store.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func storedPayment() *domain.MoyasarPayment {
	return &domain.MoyasarPayment{
		ID: 1, InvID: 12345, UserID: 7, AmountHalalas: 81506, Currency: "SAR",
		Status: domain.PaymentStatusCreated, BookingIDs: "777,778",
	}
}

func TestHandleCallback_PaidConfirmsBookingsAndClearsCart(t *testing.T) {
	store := new(MockPaymentStore)
	store.On("GetByInvID", mock.Anything, int64(12345)).Return(storedPayment(), nil)
	store.On("MarkPaidIdempotent", mock.Anything, int64(12345), "pay_abc", "creditcard", mock.Anything, mock.Anything).Return(true, nil)

	bookings := new(MockBookingMarker)
	bookings.On("MarkPaid", mock.Anything, []int64{777, 778}).Return(nil)

	cartSvc := new(MockQuoter)
	cartSvc.On("Clear", mock.Anything, "user:7").Return(nil)

	notifs := new(MockNotifier)
	notifs.On("BookingPaid", mock.Anything, int64(7), []int64{777, 778}, int64(81506)).Return()

	gw := &fakeGateway{payment: &GatewayPayment{ID: "pay_abc", Status: "paid", Amount: 81506, Currency: "SAR"}}
	gw.payment.Source.Type = "creditcard"

	svc := NewService(store, bookings, cartSvc, new(MockDiscountRedeemer), gw, notifs, testConfig())

	result, err := svc.HandleCallback(context.Background(), 12345, "pay_abc", "inv_id=12345&id=pay_abc")

	assert.NoError(t, err)
	assert.True(t, result.Applied)
	assert.Equal(t, string(domain.PaymentStatusPaid), result.Status)
	bookings.AssertExpectations(t)
	cartSvc.AssertExpectations(t)
	notifs.AssertExpectations(t)
}

func TestHandleCallback_DuplicateIsAcknowledgedWithoutSideEffects(t *testing.T) {
	store := new(MockPaymentStore)
	store.On("GetByInvID", mock.Anything, int64(12345)).Return(storedPayment(), nil)
	store.On("MarkPaidIdempotent", mock.Anything, int64(12345), "pay_abc", "", mock.Anything, mock.Anything).Return(false, nil)

	bookings := new(MockBookingMarker)
	cartSvc := new(MockQuoter)

	gw := &fakeGateway{payment: &GatewayPayment{ID: "pay_abc", Status: "paid", Amount: 81506, Currency: "SAR"}}
	svc := NewService(store, bookings, cartSvc, new(MockDiscountRedeemer), gw, new(MockNotifier), testConfig())

	result, err := svc.HandleCallback(context.Background(), 12345, "pay_abc", "")

	assert.NoError(t, err)
	assert.False(t, result.Applied)
	bookings.AssertNotCalled(t, "MarkPaid", mock.Anything, mock.Anything)
	cartSvc.AssertNotCalled(t, "Clear", mock.Anything, mock.Anything)
}

func TestHandleCallback_AmountMismatchRejected(t *testing.T) {
	store := new(MockPaymentStore)
	store.On("GetByInvID", mock.Anything, int64(12345)).Return(storedPayment(), nil)
	store.On("MarkFailed", mock.Anything, int64(12345), mock.Anything, mock.Anything).Return(nil)

	gw := &fakeGateway{payment: &GatewayPayment{ID: "pay_abc", Status: "paid", Amount: 100, Currency: "SAR"}}
	svc := NewService(store, new(MockBookingMarker), new(MockQuoter), new(MockDiscountRedeemer), gw, new(MockNotifier), testConfig())

	_, err := svc.HandleCallback(context.Background(), 12345, "pay_abc", "")
	assert.ErrorIs(t, err, ErrAmountMismatch)
}

func TestHandleCallback_FailedGatewayStatus(t *testing.T) {
	store := new(MockPaymentStore)
	store.On("GetByInvID", mock.Anything, int64(12345)).Return(storedPayment(), nil)
	store.On("MarkFailed", mock.Anything, int64(12345), mock.Anything, "card declined").Return(nil)

	gw := &fakeGateway{payment: &GatewayPayment{ID: "pay_abc", Status: "failed", Amount: 81506, Currency: "SAR"}}
	gw.payment.Source.Message = "card declined"

	svc := NewService(store, new(MockBookingMarker), new(MockQuoter), new(MockDiscountRedeemer), gw, new(MockNotifier), testConfig())

	result, err := svc.HandleCallback(context.Background(), 12345, "pay_abc", "")
	assert.ErrorIs(t, err, ErrNotPaid)
	assert.Equal(t, string(domain.PaymentStatusFailed), result.Status)
	store.AssertExpectations(t)
}

func TestHandleCallback_GatewayUnreachable(t *testing.T) {
	store := new(MockPaymentStore)
	store.On("GetByInvID", mock.Anything, int64(12345)).Return(storedPayment(), nil)

	svc := NewService(store, new(MockBookingMarker), new(MockQuoter), new(MockDiscountRedeemer), &fakeGateway{err: errors.New("timeout")}, new(MockNotifier), testConfig())

	_, err := svc.HandleCallback(context.Background(), 12345, "pay_abc", "")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotPaid)
}
