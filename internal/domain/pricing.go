package domain

// DefaultPerPersonPrice is used when no package price is available.
const DefaultPerPersonPrice = 150.0

// Group discount tiers, evaluated against guest count in descending order;
// boundaries belong to the higher tier.
const (
	discountTierLarge  = 10 // >= 10 guests: 20%
	discountTierMedium = 5  // 5..9 guests: 15%
	discountTierSmall  = 3  // 3..4 guests: 10%
)

// PricingSnapshot is derived from package price and guest count. It is never
// stored on its own; only the committed booking carries the settled total.
type PricingSnapshot struct {
	BasePrice       float64 `json:"base_price"`
	GuestCount      int     `json:"guest_count"`
	Subtotal        float64 `json:"subtotal"`
	DiscountPercent float64 `json:"discount_percent"`
	DiscountAmount  float64 `json:"discount_amount"`
	Total           float64 `json:"total"`
}

// CalculatePrice computes the tiered group price. A zero guest count yields
// a zero snapshot; a non-positive base price falls back to
// DefaultPerPersonPrice. Values are kept unrounded; rounding happens only at
// the payment boundary.
func CalculatePrice(basePerPerson float64, guestCount int) PricingSnapshot {
	if guestCount <= 0 {
		return PricingSnapshot{}
	}
	if basePerPerson <= 0 {
		basePerPerson = DefaultPerPersonPrice
	}

	var fraction float64
	switch {
	case guestCount >= discountTierLarge:
		fraction = 0.20
	case guestCount >= discountTierMedium:
		fraction = 0.15
	case guestCount >= discountTierSmall:
		fraction = 0.10
	}

	subtotal := basePerPerson * float64(guestCount)
	discountAmount := subtotal * fraction

	return PricingSnapshot{
		BasePrice:       basePerPerson,
		GuestCount:      guestCount,
		Subtotal:        subtotal,
		DiscountPercent: fraction * 100,
		DiscountAmount:  discountAmount,
		Total:           subtotal - discountAmount,
	}
}
