package cart

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"math"
	"time"

	"karam/internal/domain"
)

const (
	// ServiceFeeRate is the platform fee applied to the cart subtotal.
	ServiceFeeRate = 0.05
	// VATRate is applied after the discount.
	VATRate = 0.15
)

type Service struct {
	store     Store
	discounts DiscountReader
	now       func() time.Time
}

func NewService(store Store, discounts DiscountReader) *Service {
	return &Service{store: store, discounts: discounts, now: time.Now}
}

// Items loads the owner's cart. A missing row or a payload that no longer
// parses both come back as an empty cart, never an error.
func (s *Service) Items(ctx context.Context, ownerKey string) ([]domain.CartItem, error) {
	raw, err := s.store.Load(ctx, ownerKey)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistenceFailed, err)
	}
	if len(raw) == 0 {
		return []domain.CartItem{}, nil
	}
	var items []domain.CartItem
	if err := json.Unmarshal(raw, &items); err != nil {
		log.Printf("cart: discarding unreadable payload for %s: %v", ownerKey, err)
		return []domain.CartItem{}, nil
	}
	if items == nil {
		items = []domain.CartItem{}
	}
	return items, nil
}

// Add appends an item unless the same (id, type) pair is already present.
func (s *Service) Add(ctx context.Context, ownerKey string, item domain.CartItem) error {
	items, err := s.Items(ctx, ownerKey)
	if err != nil {
		return err
	}
	for _, have := range items {
		if have.SameIdentity(item) {
			return ErrDuplicateItem
		}
	}
	items = append(items, item)
	return s.save(ctx, ownerKey, items)
}

// Remove drops every line with the given id, whatever its type. The numeric
// id alone is the removal key, so a family and a souvenir sharing an id go
// together.
func (s *Service) Remove(ctx context.Context, ownerKey string, id int64) ([]domain.CartItem, error) {
	items, err := s.Items(ctx, ownerKey)
	if err != nil {
		return nil, err
	}
	kept := make([]domain.CartItem, 0, len(items))
	for _, it := range items {
		if it.ID != id {
			kept = append(kept, it)
		}
	}
	if err := s.save(ctx, ownerKey, kept); err != nil {
		return nil, err
	}
	return kept, nil
}

func (s *Service) Clear(ctx context.Context, ownerKey string) error {
	if err := s.store.Delete(ctx, ownerKey); err != nil {
		return fmt.Errorf("%w: %v", ErrPersistenceFailed, err)
	}
	return nil
}

// Merge moves an anonymous cart into the user's cart after login. Lines
// already present in the destination are skipped.
func (s *Service) Merge(ctx context.Context, fromKey, intoKey string) error {
	if fromKey == "" || fromKey == intoKey {
		return nil
	}
	src, err := s.Items(ctx, fromKey)
	if err != nil {
		return err
	}
	if len(src) == 0 {
		return nil
	}
	dst, err := s.Items(ctx, intoKey)
	if err != nil {
		return err
	}
	for _, it := range src {
		dup := false
		for _, have := range dst {
			if have.SameIdentity(it) {
				dup = true
				break
			}
		}
		if !dup {
			dst = append(dst, it)
		}
	}
	if err := s.save(ctx, intoKey, dst); err != nil {
		return err
	}
	return s.Clear(ctx, fromKey)
}

// View returns the cart with its running total.
func (s *Service) View(ctx context.Context, ownerKey string) (CartResponse, error) {
	items, err := s.Items(ctx, ownerKey)
	if err != nil {
		return CartResponse{}, err
	}
	total := 0.0
	for _, it := range items {
		total += it.Price
	}
	return CartResponse{Items: items, Count: len(items), Total: round2(total)}, nil
}

// Quote prices the checkout for an authenticated user: subtotal plus the
// service fee, minus any redeemed discount, plus VAT on what remains.
// Anonymous owners get ErrAuthenticationRequired so the client can bounce
// through login and come back.
func (s *Service) Quote(ctx context.Context, ownerKey string, userID int64, discountCode string) (Quote, error) {
	if userID <= 0 {
		return Quote{}, ErrAuthenticationRequired
	}
	items, err := s.Items(ctx, ownerKey)
	if err != nil {
		return Quote{}, err
	}
	if len(items) == 0 {
		return Quote{}, ErrEmptyCart
	}

	subtotal := 0.0
	for _, it := range items {
		subtotal += it.Price
	}
	q := Quote{
		Items:      items,
		Subtotal:   round2(subtotal),
		ServiceFee: round2(subtotal * ServiceFeeRate),
	}

	if discountCode != "" {
		d, err := s.discounts.GetByCode(ctx, discountCode)
		if err != nil || !d.Usable(s.now()) {
			return Quote{}, ErrInvalidDiscount
		}
		q.DiscountCode = d.Code
		q.DiscountAmount = round2(d.Apply(subtotal))
	}

	afterDiscount := q.Subtotal + q.ServiceFee - q.DiscountAmount
	if afterDiscount < 0 {
		afterDiscount = 0
	}
	q.VAT = round2(afterDiscount * VATRate)
	q.Total = round2(afterDiscount + q.VAT)
	return q, nil
}

func (s *Service) save(ctx context.Context, ownerKey string, items []domain.CartItem) error {
	raw, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrPersistenceFailed, err)
	}
	if err := s.store.Save(ctx, ownerKey, raw); err != nil {
		return fmt.Errorf("%w: %v", ErrPersistenceFailed, err)
	}
	return nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
