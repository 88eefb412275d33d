package booking

import (
	"context"

	"karam/internal/domain"
)

// FamilyReader resolves the family/package snapshot for a session.
type FamilyReader interface {
	GetByID(ctx context.Context, id int64) (*domain.HostFamily, error)
	GetPackage(ctx context.Context, familyID int64, t domain.PackageType) (*domain.Package, error)
	GetOwnerID(ctx context.Context, familyID int64) (int64, error)
}

type BookingStore interface {
	Create(ctx context.Context, b *domain.Booking) error
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	GetByUserID(ctx context.Context, userID int64) ([]domain.Booking, error)
}

// CartAdder appends the committed booking as a cart line item.
type CartAdder interface {
	Add(ctx context.Context, ownerKey string, item domain.CartItem) error
}

// Notifier fans out booking events to the hosting family's owner. Delivery
// is best effort.
type Notifier interface {
	BookingCreated(ctx context.Context, ownerUserID int64, b *domain.Booking, familyName string)
}
