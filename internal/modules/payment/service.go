package payment

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"math"
	"strconv"
	"strings"
	"time"

	"karam/internal/domain"
	"karam/internal/modules/cart"
	"karam/internal/repository"
)

// Config carries the gateway settings the service needs from the
// environment.
type Config struct {
	PublishableKey string
	SecretKey      string
	CallbackURL    string
	Currency       string
}

type Service struct {
	payments  paymentStore
	bookings  bookingMarker
	cart      quoter
	discounts discountRedeemer
	gateway   GatewayClient
	notifier  notifier
	cfg       Config
	now       func() time.Time
}

func NewService(payments paymentStore, bookings bookingMarker, cartSvc quoter, discounts discountRedeemer, gateway GatewayClient, notifs notifier, cfg Config) *Service {
	return &Service{
		payments:  payments,
		bookings:  bookings,
		cart:      cartSvc,
		discounts: discounts,
		gateway:   gateway,
		notifier:  notifs,
		cfg:       cfg,
		now:       time.Now,
	}
}

// InitPayment quotes the user's cart and opens a payment attempt against it:
// one invoice covering every booking line currently in the cart. Returns the
// config the client mounts the hosted form with.
func (s *Service) InitPayment(ctx context.Context, ownerKey string, userID int64, req InitPaymentRequest) (*InitPaymentResponse, error) {
	if s.cfg.PublishableKey == "" || s.cfg.SecretKey == "" {
		return nil, ErrNotConfigured
	}

	q, err := s.cart.Quote(ctx, ownerKey, userID, req.DiscountCode)
	if err != nil {
		return nil, err
	}

	var bookingIDs []int64
	for _, it := range q.Items {
		if it.Type == domain.ItemBooking {
			bookingIDs = append(bookingIDs, it.ID)
		}
	}
	if len(q.Items) == 0 {
		return nil, ErrEmptyCart
	}

	// Reserve the discount use before anything is persisted. The counter
	// bump is atomic in the repository, so two checkouts racing for the
	// last use cannot both get the discounted amount.
	if q.DiscountCode != "" {
		d, derr := s.discounts.GetByCode(ctx, q.DiscountCode)
		if derr != nil {
			return nil, cart.ErrInvalidDiscount
		}
		if uerr := s.discounts.IncrementUse(ctx, d.ID); uerr != nil {
			if errors.Is(uerr, repository.ErrCodeExhausted) {
				return nil, cart.ErrInvalidDiscount
			}
			return nil, fmt.Errorf("redeem discount failed: %w", uerr)
		}
	}

	amountHalalas := int64(math.Round(q.Total * 100))
	invID := s.now().UnixNano()

	description := strings.TrimSpace(req.Description)
	if description == "" {
		description = fmt.Sprintf("Karam order, %d item(s)", len(q.Items))
	}

	metadata := map[string]string{
		"platform":    "karam",
		"inv_id":      strconv.FormatInt(invID, 10),
		"user_id":     strconv.FormatInt(userID, 10),
		"booking_ids": joinIDs(bookingIDs),
	}
	metaRaw, _ := json.Marshal(metadata)

	p := &domain.MoyasarPayment{
		InvID:         invID,
		UserID:        userID,
		AmountHalalas: amountHalalas,
		Currency:      s.cfg.Currency,
		Description:   description,
		Status:        domain.PaymentStatusCreated,
		CallbackURL:   s.cfg.CallbackURL,
		Metadata:      string(metaRaw),
		BookingIDs:    joinIDs(bookingIDs),
	}
	if err := s.payments.Create(ctx, p); err != nil {
		return nil, fmt.Errorf("save payment failed: %w", err)
	}

	return &InitPaymentResponse{
		InvID:      invID,
		Status:     string(domain.PaymentStatusCreated),
		BookingIDs: bookingIDs,
		Form: FormConfig{
			PublishableAPIKey: s.cfg.PublishableKey,
			Amount:            amountHalalas,
			Currency:          s.cfg.Currency,
			Description:       description,
			CallbackURL:       s.cfg.CallbackURL,
			Methods:           []string{"creditcard", "applepay", "stcpay"},
			Metadata:          metadata,
		},
	}, nil
}

// HandleCallback processes the gateway redirect for an invoice. The callback
// parameters are never trusted: the payment is fetched back from Moyasar
// with the secret key and checked against what we stored. A duplicate
// callback for an already-paid invoice is acknowledged without side effects.
func (s *Service) HandleCallback(ctx context.Context, invID int64, gatewayPaymentID, rawBody string) (*CallbackResult, error) {
	stored, err := s.payments.GetByInvID(ctx, invID)
	if err != nil {
		return nil, ErrPaymentNotFound
	}

	gp, err := s.gateway.FetchPayment(ctx, gatewayPaymentID)
	if err != nil {
		return nil, fmt.Errorf("gateway verification failed: %w", err)
	}

	if gp.Status != "paid" {
		reason := gp.Source.Message
		if reason == "" {
			reason = "gateway status " + gp.Status
		}
		if err := s.payments.MarkFailed(ctx, invID, rawBody, reason); err != nil {
			log.Printf("payment: mark failed errored inv_id=%d err=%v", invID, err)
		}
		return &CallbackResult{InvID: invID, Status: string(domain.PaymentStatusFailed)}, ErrNotPaid
	}
	if gp.Amount != stored.AmountHalalas {
		reason := fmt.Sprintf("amount mismatch gateway=%d expected=%d", gp.Amount, stored.AmountHalalas)
		_ = s.payments.MarkFailed(ctx, invID, rawBody, reason)
		return nil, ErrAmountMismatch
	}
	if !strings.EqualFold(gp.Currency, stored.Currency) {
		reason := fmt.Sprintf("currency mismatch gateway=%s expected=%s", gp.Currency, stored.Currency)
		_ = s.payments.MarkFailed(ctx, invID, rawBody, reason)
		return nil, ErrCurrencyMismatch
	}

	changed, err := s.payments.MarkPaidIdempotent(ctx, invID, gp.ID, gp.Source.Type, rawBody, s.now().UTC())
	if err != nil {
		return nil, err
	}
	if !changed {
		log.Printf("payment: duplicate callback for paid invoice inv_id=%d", invID)
		return &CallbackResult{InvID: invID, Status: string(domain.PaymentStatusPaid), Applied: false}, nil
	}

	bookingIDs := splitIDs(stored.BookingIDs)
	if err := s.bookings.MarkPaid(ctx, bookingIDs); err != nil {
		log.Printf("payment: booking confirmation failed inv_id=%d err=%v", invID, err)
	}
	if err := s.cart.Clear(ctx, fmt.Sprintf("user:%d", stored.UserID)); err != nil {
		log.Printf("payment: cart clear failed inv_id=%d err=%v", invID, err)
	}
	s.notifier.BookingPaid(ctx, stored.UserID, bookingIDs, stored.AmountHalalas)

	return &CallbackResult{InvID: invID, Status: string(domain.PaymentStatusPaid), Applied: true}, nil
}

// Status returns the stored payment for an invoice, scoped to its owner.
func (s *Service) Status(ctx context.Context, invID, userID int64) (*domain.MoyasarPayment, error) {
	p, err := s.payments.GetByInvID(ctx, invID)
	if err != nil || p.UserID != userID {
		return nil, ErrPaymentNotFound
	}
	return p, nil
}

func joinIDs(ids []int64) string {
	parts := make([]string, 0, len(ids))
	for _, id := range ids {
		parts = append(parts, strconv.FormatInt(id, 10))
	}
	return strings.Join(parts, ",")
}

func splitIDs(s string) []int64 {
	var ids []int64
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part == "" {
			continue
		}
		if id, err := strconv.ParseInt(part, 10, 64); err == nil {
			ids = append(ids, id)
		}
	}
	return ids
}
