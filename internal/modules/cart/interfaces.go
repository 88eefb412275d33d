package cart

import (
	"context"

	"karam/internal/domain"
)

// Store persists the serialized cart row per owner key.
type Store interface {
	Load(ctx context.Context, ownerKey string) ([]byte, error)
	Save(ctx context.Context, ownerKey string, items []byte) error
	Delete(ctx context.Context, ownerKey string) error
}

type DiscountReader interface {
	GetByCode(ctx context.Context, code string) (*domain.DiscountCode, error)
}
