package cart

import "karam/internal/domain"

type AddItemRequest struct {
	ID    int64   `json:"id" binding:"required"`
	Type  string  `json:"type" binding:"required"`
	Name  string  `json:"name" binding:"required"`
	Price float64 `json:"price"`
	Image string  `json:"image"`

	City            string  `json:"city"`
	Category        string  `json:"category"`
	GuestCount      int     `json:"guest_count"`
	DiscountPercent float64 `json:"discount_percent"`
}

type QuoteRequest struct {
	DiscountCode string `json:"discount_code"`
}

type CartResponse struct {
	Items []domain.CartItem `json:"items"`
	Count int               `json:"count"`
	Total float64           `json:"total"`
}

// Quote is the checkout cost breakdown: subtotal, the platform service fee,
// any redeemed discount, and VAT on the discounted amount.
type Quote struct {
	Items          []domain.CartItem `json:"items"`
	Subtotal       float64           `json:"subtotal"`
	ServiceFee     float64           `json:"service_fee"`
	DiscountCode   string            `json:"discount_code,omitempty"`
	DiscountAmount float64           `json:"discount_amount,omitempty"`
	VAT            float64           `json:"vat"`
	Total          float64           `json:"total"`
}
