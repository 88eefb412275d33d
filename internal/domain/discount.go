package domain

import "time"

type DiscountType string

const (
	DiscountPercent DiscountType = "percent"
	DiscountFixed   DiscountType = "fixed"
)

// DiscountCode is a checkout promo code, validated against expiry and usage
// limits before being applied to the cart subtotal.
type DiscountCode struct {
	ID        int64        `json:"id"`
	Code      string       `json:"code"`
	Type      DiscountType `json:"type"`
	Value     float64      `json:"value"`
	Active    bool         `json:"active"`
	MaxUses   int          `json:"max_uses"`
	UsedCount int          `json:"used_count"`
	ExpiresAt *time.Time   `json:"expires_at,omitempty"`
	CreatedAt time.Time    `json:"created_at"`
}

// Usable reports whether the code can still be redeemed at the given time.
func (d DiscountCode) Usable(now time.Time) bool {
	if !d.Active {
		return false
	}
	if d.ExpiresAt != nil && now.After(*d.ExpiresAt) {
		return false
	}
	if d.MaxUses > 0 && d.UsedCount >= d.MaxUses {
		return false
	}
	return true
}

// Apply returns the discount amount for a subtotal, capped at the subtotal.
func (d DiscountCode) Apply(subtotal float64) float64 {
	var amount float64
	switch d.Type {
	case DiscountPercent:
		amount = subtotal * d.Value / 100
	case DiscountFixed:
		amount = d.Value
	}
	if amount > subtotal {
		amount = subtotal
	}
	if amount < 0 {
		amount = 0
	}
	return amount
}
