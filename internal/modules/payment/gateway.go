package payment

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// GatewayPayment is the slice of Moyasar's payment object the callback
// verification needs.
type GatewayPayment struct {
	ID       string `json:"id"`
	Status   string `json:"status"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Source   struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"source"`
	Metadata map[string]string `json:"metadata"`
}

// GatewayClient fetches a payment back from the gateway so a callback is
// never trusted on its own.
type GatewayClient interface {
	FetchPayment(ctx context.Context, paymentID string) (*GatewayPayment, error)
}

// MoyasarClient talks to the Moyasar REST API with the secret key.
type MoyasarClient struct {
	baseURL   string
	secretKey string
	http      *http.Client
}

func NewMoyasarClient(baseURL, secretKey string) *MoyasarClient {
	return &MoyasarClient{
		baseURL:   baseURL,
		secretKey: secretKey,
		http:      &http.Client{Timeout: 15 * time.Second},
	}
}

func (c *MoyasarClient) FetchPayment(ctx context.Context, paymentID string) (*GatewayPayment, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/payments/"+paymentID, nil)
	if err != nil {
		return nil, err
	}
	// Moyasar uses HTTP basic auth with the secret key as username.
	req.SetBasicAuth(c.secretKey, "")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("moyasar request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, ErrPaymentNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("moyasar returned status %d", resp.StatusCode)
	}

	var p GatewayPayment
	if err := json.NewDecoder(resp.Body).Decode(&p); err != nil {
		return nil, fmt.Errorf("moyasar response decode failed: %w", err)
	}
	return &p, nil
}
