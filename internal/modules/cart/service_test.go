package cart

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"karam/internal/domain"
)

// memStore is an in-memory Store, standing in for the carts table.
type memStore struct {
	rows map[string][]byte
	fail error
}

func newMemStore() *memStore { return &memStore{rows: map[string][]byte{}} }

func (s *memStore) Load(ctx context.Context, ownerKey string) ([]byte, error) {
	if s.fail != nil {
		return nil, s.fail
	}
	return s.rows[ownerKey], nil
}

func (s *memStore) Save(ctx context.Context, ownerKey string, items []byte) error {
	if s.fail != nil {
		return s.fail
	}
	s.rows[ownerKey] = items
	return nil
}

func (s *memStore) Delete(ctx context.Context, ownerKey string) error {
	if s.fail != nil {
		return s.fail
	}
	delete(s.rows, ownerKey)
	return nil
}

type MockDiscountReader struct {
	mock.Mock
}

func (m *MockDiscountReader) GetByCode(ctx context.Context, code string) (*domain.DiscountCode, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DiscountCode), args.Error(1)
}

func familyItem(id int64) domain.CartItem {
	return domain.CartItem{ID: id, Type: domain.ItemFamily, Name: "Al-Harbi Family", Price: 405}
}

func TestService_AddAndReload(t *testing.T) {
	store := newMemStore()
	svc := NewService(store, new(MockDiscountReader))
	ctx := context.Background()

	assert.NoError(t, svc.Add(ctx, "user:1", familyItem(3)))

	// a fresh service over the same store sees the item, nothing lives in memory
	svc2 := NewService(store, new(MockDiscountReader))
	items, err := svc2.Items(ctx, "user:1")
	assert.NoError(t, err)
	assert.Len(t, items, 1)
	assert.Equal(t, int64(3), items[0].ID)
}

func TestService_Add_DuplicateIdentityRejected(t *testing.T) {
	svc := NewService(newMemStore(), new(MockDiscountReader))
	ctx := context.Background()

	assert.NoError(t, svc.Add(ctx, "user:1", familyItem(3)))
	err := svc.Add(ctx, "user:1", familyItem(3))
	assert.ErrorIs(t, err, ErrDuplicateItem)

	// same id under a different type is a distinct line
	souvenir := domain.CartItem{ID: 3, Type: domain.ItemProduct, Name: "Prayer beads", Price: 45}
	assert.NoError(t, svc.Add(ctx, "user:1", souvenir))

	items, err := svc.Items(ctx, "user:1")
	assert.NoError(t, err)
	assert.Len(t, items, 2)
}

func TestService_Remove_ByIDDropsEveryType(t *testing.T) {
	svc := NewService(newMemStore(), new(MockDiscountReader))
	ctx := context.Background()

	assert.NoError(t, svc.Add(ctx, "user:1", familyItem(3)))
	assert.NoError(t, svc.Add(ctx, "user:1", domain.CartItem{ID: 3, Type: domain.ItemProduct, Name: "Prayer beads", Price: 45}))
	assert.NoError(t, svc.Add(ctx, "user:1", familyItem(5)))

	items, err := svc.Remove(ctx, "user:1", 3)
	assert.NoError(t, err)
	assert.Len(t, items, 1)
	assert.Equal(t, int64(5), items[0].ID)
}

func TestService_CorruptPayloadBecomesEmptyCart(t *testing.T) {
	store := newMemStore()
	store.rows["user:1"] = []byte("{not json")

	svc := NewService(store, new(MockDiscountReader))
	items, err := svc.Items(context.Background(), "user:1")
	assert.NoError(t, err)
	assert.Empty(t, items)

	// adding starts a fresh cart over the unreadable row
	assert.NoError(t, svc.Add(context.Background(), "user:1", familyItem(3)))
	items, err = svc.Items(context.Background(), "user:1")
	assert.NoError(t, err)
	assert.Len(t, items, 1)
}

func TestService_StoreFailureSurfacesAsPersistenceError(t *testing.T) {
	store := newMemStore()
	store.fail = errors.New("connection refused")

	svc := NewService(store, new(MockDiscountReader))
	_, err := svc.Items(context.Background(), "user:1")
	assert.ErrorIs(t, err, ErrPersistenceFailed)
}

func TestService_Quote_RequiresAuthentication(t *testing.T) {
	svc := NewService(newMemStore(), new(MockDiscountReader))
	_, err := svc.Quote(context.Background(), "anon:tok", 0, "")
	assert.ErrorIs(t, err, ErrAuthenticationRequired)
}

func TestService_Quote_Breakdown(t *testing.T) {
	svc := NewService(newMemStore(), new(MockDiscountReader))
	ctx := context.Background()
	assert.NoError(t, svc.Add(ctx, "user:1", domain.CartItem{ID: 1, Type: domain.ItemBooking, Name: "b", Price: 1000}))

	q, err := svc.Quote(ctx, "user:1", 1, "")
	assert.NoError(t, err)
	assert.Equal(t, 1000.0, q.Subtotal)
	assert.Equal(t, 50.0, q.ServiceFee)
	assert.Equal(t, 157.5, q.VAT)
	assert.Equal(t, 1207.5, q.Total)
}

func TestService_Quote_WithDiscountCode(t *testing.T) {
	discounts := new(MockDiscountReader)
	discounts.On("GetByCode", mock.Anything, "KARAM10").Return(&domain.DiscountCode{
		ID: 1, Code: "KARAM10", Type: domain.DiscountPercent, Value: 10, Active: true,
	}, nil)

	svc := NewService(newMemStore(), discounts)
	ctx := context.Background()
	assert.NoError(t, svc.Add(ctx, "user:1", domain.CartItem{ID: 1, Type: domain.ItemBooking, Name: "b", Price: 1000}))

	q, err := svc.Quote(ctx, "user:1", 1, "KARAM10")
	assert.NoError(t, err)
	assert.Equal(t, 100.0, q.DiscountAmount)
	// (1000 + 50 - 100) * 1.15
	assert.Equal(t, 1092.5, q.Total)
}

func TestService_Quote_ExpiredDiscountRejected(t *testing.T) {
	past := time.Now().Add(-time.Hour)
	discounts := new(MockDiscountReader)
	discounts.On("GetByCode", mock.Anything, "OLD").Return(&domain.DiscountCode{
		ID: 2, Code: "OLD", Type: domain.DiscountPercent, Value: 10, Active: true, ExpiresAt: &past,
	}, nil)

	svc := NewService(newMemStore(), discounts)
	ctx := context.Background()
	assert.NoError(t, svc.Add(ctx, "user:1", familyItem(3)))

	_, err := svc.Quote(ctx, "user:1", 1, "OLD")
	assert.ErrorIs(t, err, ErrInvalidDiscount)
}

func TestService_Quote_EmptyCart(t *testing.T) {
	svc := NewService(newMemStore(), new(MockDiscountReader))
	_, err := svc.Quote(context.Background(), "user:1", 1, "")
	assert.ErrorIs(t, err, ErrEmptyCart)
}

func TestService_Merge_MovesAnonymousCart(t *testing.T) {
	svc := NewService(newMemStore(), new(MockDiscountReader))
	ctx := context.Background()

	assert.NoError(t, svc.Add(ctx, "anon:tok", familyItem(3)))
	assert.NoError(t, svc.Add(ctx, "anon:tok", familyItem(5)))
	assert.NoError(t, svc.Add(ctx, "user:1", familyItem(3))) // already has one of them

	assert.NoError(t, svc.Merge(ctx, "anon:tok", "user:1"))

	items, err := svc.Items(ctx, "user:1")
	assert.NoError(t, err)
	assert.Len(t, items, 2)

	gone, err := svc.Items(ctx, "anon:tok")
	assert.NoError(t, err)
	assert.Empty(t, gone)
}
