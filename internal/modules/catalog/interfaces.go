package catalog

import (
	"context"

	"karam/internal/domain"
)

type FamilySource interface {
	List(ctx context.Context) ([]domain.HostFamily, error)
	GetByID(ctx context.Context, id int64) (*domain.HostFamily, error)
}

type ProductSource interface {
	List(ctx context.Context) ([]domain.Product, error)
	GetByID(ctx context.Context, id int64) (*domain.Product, error)
}
