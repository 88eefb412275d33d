package payment

type InitPaymentRequest struct {
	DiscountCode string `json:"discount_code"`
	Description  string `json:"description"`
}

// FormConfig is everything the client needs to mount the Moyasar hosted
// payment form. The amount is in halalas (1 SAR = 100 halalas).
type FormConfig struct {
	PublishableAPIKey string            `json:"publishable_api_key"`
	Amount            int64             `json:"amount"`
	Currency          string            `json:"currency"`
	Description       string            `json:"description"`
	CallbackURL       string            `json:"callback_url"`
	Methods           []string          `json:"methods"`
	Metadata          map[string]string `json:"metadata"`
}

type InitPaymentResponse struct {
	InvID      int64      `json:"inv_id"`
	Status     string     `json:"status"`
	BookingIDs []int64    `json:"booking_ids"`
	Form       FormConfig `json:"form"`
}

type CallbackResult struct {
	InvID   int64  `json:"inv_id"`
	Status  string `json:"status"`
	Applied bool   `json:"applied"`
}
