package payment

import (
	"context"
	"time"

	"karam/internal/domain"
	"karam/internal/modules/cart"
)

type paymentStore interface {
	Create(ctx context.Context, p *domain.MoyasarPayment) error
	GetByInvID(ctx context.Context, invID int64) (*domain.MoyasarPayment, error)
	MarkFailed(ctx context.Context, invID int64, rawBody, reason string) error
	MarkPaidIdempotent(ctx context.Context, invID int64, gatewayID, sourceType, rawBody string, paidAt time.Time) (bool, error)
}

type bookingMarker interface {
	MarkPaid(ctx context.Context, ids []int64) error
}

type quoter interface {
	Quote(ctx context.Context, ownerKey string, userID int64, discountCode string) (cart.Quote, error)
	Clear(ctx context.Context, ownerKey string) error
}

type discountRedeemer interface {
	GetByCode(ctx context.Context, code string) (*domain.DiscountCode, error)
	IncrementUse(ctx context.Context, id int64) error
}

type notifier interface {
	BookingPaid(ctx context.Context, userID int64, bookingIDs []int64, amountHalalas int64)
}
