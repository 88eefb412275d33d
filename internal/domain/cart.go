package domain

type CartItemType string

const (
	ItemFamily  CartItemType = "family"
	ItemProduct CartItemType = "product"
	ItemBooking CartItemType = "booking"
)

// CartItem is one line in a cart. Identity is the (ID, Type) pair: the same
// numeric id may legitimately appear once per type.
type CartItem struct {
	ID    int64        `json:"id"`
	Type  CartItemType `json:"type"`
	Name  string       `json:"name"`
	Price float64      `json:"price"`
	Image string       `json:"image,omitempty"`

	// Type-specific extras.
	City            string  `json:"city,omitempty"`
	Category        string  `json:"category,omitempty"`
	GuestCount      int     `json:"guest_count,omitempty"`
	DiscountPercent float64 `json:"discount_percent,omitempty"`
}

func (i CartItem) SameIdentity(other CartItem) bool {
	return i.ID == other.ID && i.Type == other.Type
}
