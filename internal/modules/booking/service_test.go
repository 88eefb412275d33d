package booking

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"karam/internal/domain"
)

type MockFamilyReader struct {
	mock.Mock
}

func (m *MockFamilyReader) GetByID(ctx context.Context, id int64) (*domain.HostFamily, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.HostFamily), args.Error(1)
}

func (m *MockFamilyReader) GetPackage(ctx context.Context, familyID int64, t domain.PackageType) (*domain.Package, error) {
	args := m.Called(ctx, familyID, t)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Package), args.Error(1)
}

func (m *MockFamilyReader) GetOwnerID(ctx context.Context, familyID int64) (int64, error) {
	args := m.Called(ctx, familyID)
	return args.Get(0).(int64), args.Error(1)
}

type MockBookingStore struct {
	mock.Mock
}

func (m *MockBookingStore) Create(ctx context.Context, b *domain.Booking) error {
	args := m.Called(ctx, b)
	if b != nil && args.Error(0) == nil {
		b.ID = 777 // simulate DB insert
	}
	return args.Error(0)
}

func (m *MockBookingStore) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingStore) GetByUserID(ctx context.Context, userID int64) ([]domain.Booking, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Booking), args.Error(1)
}

type MockCartAdder struct {
	mock.Mock
}

func (m *MockCartAdder) Add(ctx context.Context, ownerKey string, item domain.CartItem) error {
	args := m.Called(ctx, ownerKey, item)
	return args.Error(0)
}

type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) BookingCreated(ctx context.Context, ownerUserID int64, b *domain.Booking, familyName string) {
	m.Called(ctx, ownerUserID, b, familyName)
}

func newTestService(families *MockFamilyReader, bookings *MockBookingStore, cart *MockCartAdder, notifs *MockNotifier) *Service {
	return NewService(NewSessionManager(), families, bookings, cart, notifs)
}

func makkahFamily() *domain.HostFamily {
	return &domain.HostFamily{ID: 3, OwnerID: 42, Name: "Al-Harbi Family", City: domain.CityMakkah}
}

func mealPackage() *domain.Package {
	return &domain.Package{ID: 9, FamilyID: 3, Type: domain.PackageMeal, Name: "Traditional dinner", PricePerPerson: 250}
}

func TestService_Start_ResolvesSnapshot(t *testing.T) {
	families := new(MockFamilyReader)
	families.On("GetByID", mock.Anything, int64(3)).Return(makkahFamily(), nil)
	families.On("GetPackage", mock.Anything, int64(3), domain.PackageMeal).Return(mealPackage(), nil)

	svc := newTestService(families, new(MockBookingStore), new(MockCartAdder), new(MockNotifier))

	view, err := svc.Start(context.Background(), "anon:t1", 3, "meal")

	assert.NoError(t, err)
	assert.Equal(t, "Al-Harbi Family", view.FamilyName)
	assert.Equal(t, "Traditional dinner", view.PackageName)
	assert.Len(t, view.Guests, 1, "session starts with one empty guest")
	assert.Equal(t, 250.0, view.Pricing.Total)
}

func TestService_Start_FallsBackWhenFamilyUnavailable(t *testing.T) {
	families := new(MockFamilyReader)
	families.On("GetByID", mock.Anything, int64(3)).Return(nil, errors.New("connection refused"))
	families.On("GetPackage", mock.Anything, int64(3), domain.PackageSimple).Return(nil, errors.New("connection refused"))

	svc := newTestService(families, new(MockBookingStore), new(MockCartAdder), new(MockNotifier))

	view, err := svc.Start(context.Background(), "anon:t1", 3, "simple")

	assert.NoError(t, err)
	assert.Equal(t, FallbackFamilyName, view.FamilyName)
	assert.Equal(t, 150.0, view.Pricing.BasePrice)
}

func TestService_Start_InvalidPackageType(t *testing.T) {
	svc := newTestService(new(MockFamilyReader), new(MockBookingStore), new(MockCartAdder), new(MockNotifier))

	_, err := svc.Start(context.Background(), "anon:t1", 3, "luxury")
	assert.ErrorIs(t, err, ErrInvalidPackageType)
}

func TestService_Start_LastStartWins(t *testing.T) {
	families := new(MockFamilyReader)
	families.On("GetByID", mock.Anything, mock.Anything).Return(makkahFamily(), nil)
	families.On("GetPackage", mock.Anything, mock.Anything, mock.Anything).Return(mealPackage(), nil)

	svc := newTestService(families, new(MockBookingStore), new(MockCartAdder), new(MockNotifier))

	first, err := svc.Start(context.Background(), "anon:t1", 3, "meal")
	assert.NoError(t, err)
	second, err := svc.Start(context.Background(), "anon:t1", 3, "simple")
	assert.NoError(t, err)
	assert.NotEqual(t, first.SessionID, second.SessionID)

	current, err := svc.Session("anon:t1")
	assert.NoError(t, err)
	assert.Equal(t, second.SessionID, current.SessionID)
	assert.Equal(t, domain.PackageSimple, current.PackageType)
}

func TestSessionManager_IDsAreTimeOrderedAndUnique(t *testing.T) {
	mgr := NewSessionManager()

	before := time.Now().UnixNano()
	first := mgr.Start("anon:t1", 3, domain.PackageSimple)
	second := mgr.Start("anon:t1", 3, domain.PackageSimple)

	assert.GreaterOrEqual(t, first.ID, before)
	assert.Greater(t, second.ID, first.ID, "ids stay strictly monotonic even within one nanosecond tick")
}

func TestService_StaleSnapshotIsDiscarded(t *testing.T) {
	mgr := NewSessionManager()
	old := mgr.Start("anon:t1", 3, domain.PackageMeal)
	replacement := mgr.Start("anon:t1", 5, domain.PackageSimple)

	attached := mgr.AttachSnapshot("anon:t1", old.ID, makkahFamily(), mealPackage())
	assert.False(t, attached, "resolution for a replaced session must be dropped")

	st, err := mgr.Snapshot("anon:t1")
	assert.NoError(t, err)
	assert.Equal(t, replacement.ID, st.ID)
	assert.Nil(t, st.Family)
}

func TestService_GuestOperationsRequireSession(t *testing.T) {
	svc := newTestService(new(MockFamilyReader), new(MockBookingStore), new(MockCartAdder), new(MockNotifier))

	_, err := svc.AddGuest("anon:nobody")
	assert.ErrorIs(t, err, ErrNoActiveSession)

	_, err = svc.UpdateGuestField("anon:nobody", "g1", "full_name", "x")
	assert.ErrorIs(t, err, ErrNoActiveSession)

	_, err = svc.ProceedToPayment(context.Background(), "anon:nobody", 0, "")
	assert.ErrorIs(t, err, ErrNoActiveSession)
}

func TestService_PricingTracksRosterSize(t *testing.T) {
	families := new(MockFamilyReader)
	families.On("GetByID", mock.Anything, int64(3)).Return(makkahFamily(), nil)
	families.On("GetPackage", mock.Anything, int64(3), domain.PackageMeal).Return(mealPackage(), nil)

	svc := newTestService(families, new(MockBookingStore), new(MockCartAdder), new(MockNotifier))

	_, err := svc.Start(context.Background(), "anon:t1", 3, "meal")
	assert.NoError(t, err)

	view, err := svc.AddGuest("anon:t1")
	assert.NoError(t, err)
	view, err = svc.AddGuest("anon:t1")
	assert.NoError(t, err)

	// 3 guests at 250 with the 10% group discount
	assert.Equal(t, 3, view.Pricing.GuestCount)
	assert.Equal(t, 10.0, view.Pricing.DiscountPercent)
	assert.Equal(t, 675.0, view.Pricing.Total)
}

func fillGuest(t *testing.T, svc *Service, ownerKey, guestID, name, phone string) {
	t.Helper()
	_, err := svc.UpdateGuestField(ownerKey, guestID, "full_name", name)
	assert.NoError(t, err)
	_, err = svc.UpdateGuestField(ownerKey, guestID, "phone_number", phone)
	assert.NoError(t, err)
	_, err = svc.ToggleCommunication(ownerKey, guestID, "whatsapp", true)
	assert.NoError(t, err)
}

func TestService_ProceedToPayment_Success(t *testing.T) {
	families := new(MockFamilyReader)
	families.On("GetByID", mock.Anything, int64(3)).Return(makkahFamily(), nil)
	families.On("GetPackage", mock.Anything, int64(3), domain.PackageMeal).Return(mealPackage(), nil)
	families.On("GetOwnerID", mock.Anything, int64(3)).Return(int64(42), nil)

	bookings := new(MockBookingStore)
	bookings.On("Create", mock.Anything, mock.Anything).Return(nil)

	cart := new(MockCartAdder)
	cart.On("Add", mock.Anything, "user:7", mock.Anything).Return(nil)

	notifs := new(MockNotifier)
	notifs.On("BookingCreated", mock.Anything, int64(42), mock.Anything, "Al-Harbi Family").Return()

	svc := newTestService(families, bookings, cart, notifs)

	view, err := svc.Start(context.Background(), "user:7", 3, "meal")
	assert.NoError(t, err)
	fillGuest(t, svc, "user:7", view.Guests[0].ID, "Ahmed", "+966500000001")

	b, err := svc.ProceedToPayment(context.Background(), "user:7", 7, "late arrival")

	assert.NoError(t, err)
	assert.Equal(t, int64(777), b.ID)
	assert.Equal(t, domain.BookingPending, b.Status)
	assert.Equal(t, domain.PaymentUnpaid, b.PaymentStatus)
	assert.Equal(t, 250.0, b.TotalPrice)
	assert.Equal(t, "late arrival", b.Notes)

	var guests []domain.Guest
	assert.NoError(t, json.Unmarshal([]byte(b.GuestsData), &guests))
	assert.Len(t, guests, 1)
	assert.Equal(t, "Ahmed", guests[0].FullName)

	// the session is gone after a successful commit
	_, err = svc.Session("user:7")
	assert.ErrorIs(t, err, ErrNoActiveSession)

	cart.AssertExpectations(t)
	notifs.AssertExpectations(t)
}

func TestService_ProceedToPayment_RejectsZeroFamilyID(t *testing.T) {
	families := new(MockFamilyReader)
	families.On("GetByID", mock.Anything, int64(0)).Return(nil, errors.New("not found"))
	families.On("GetPackage", mock.Anything, int64(0), domain.PackageSimple).Return(nil, errors.New("not found"))

	bookings := new(MockBookingStore)
	svc := newTestService(families, bookings, new(MockCartAdder), new(MockNotifier))

	view, err := svc.Start(context.Background(), "user:7", 0, "simple")
	assert.NoError(t, err)
	fillGuest(t, svc, "user:7", view.Guests[0].ID, "Ahmed", "+966500000001")

	_, err = svc.ProceedToPayment(context.Background(), "user:7", 7, "")
	assert.ErrorIs(t, err, ErrValidationFailed)

	var invalid *InvalidBookingError
	assert.ErrorAs(t, err, &invalid)
	assert.Contains(t, invalid.Fields, "FamilyID")

	bookings.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)

	// the session survives so the visitor can pick a real family
	_, err = svc.Session("user:7")
	assert.NoError(t, err)
}

func TestService_ProceedToPayment_IncompleteRoster(t *testing.T) {
	families := new(MockFamilyReader)
	families.On("GetByID", mock.Anything, int64(3)).Return(makkahFamily(), nil)
	families.On("GetPackage", mock.Anything, int64(3), domain.PackageMeal).Return(mealPackage(), nil)

	bookings := new(MockBookingStore)
	svc := newTestService(families, bookings, new(MockCartAdder), new(MockNotifier))

	_, err := svc.Start(context.Background(), "user:7", 3, "meal")
	assert.NoError(t, err)

	_, err = svc.ProceedToPayment(context.Background(), "user:7", 7, "")
	assert.ErrorIs(t, err, ErrValidationFailed)
	bookings.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)

	// the session survives a failed validation
	_, err = svc.Session("user:7")
	assert.NoError(t, err)
}

func TestService_ProceedToPayment_PersistenceFailureKeepsSession(t *testing.T) {
	families := new(MockFamilyReader)
	families.On("GetByID", mock.Anything, int64(3)).Return(makkahFamily(), nil)
	families.On("GetPackage", mock.Anything, int64(3), domain.PackageMeal).Return(mealPackage(), nil)

	bookings := new(MockBookingStore)
	bookings.On("Create", mock.Anything, mock.Anything).Return(errors.New("connection reset"))

	svc := newTestService(families, bookings, new(MockCartAdder), new(MockNotifier))

	view, err := svc.Start(context.Background(), "user:7", 3, "meal")
	assert.NoError(t, err)
	fillGuest(t, svc, "user:7", view.Guests[0].ID, "Ahmed", "+966500000001")

	_, err = svc.ProceedToPayment(context.Background(), "user:7", 7, "")
	assert.ErrorIs(t, err, ErrPersistenceFailed)

	// nothing typed is lost
	current, err := svc.Session("user:7")
	assert.NoError(t, err)
	assert.Equal(t, view.SessionID, current.SessionID)
	assert.Equal(t, "Ahmed", current.Guests[0].FullName)
}
