package auth

import (
	"context"

	"karam/internal/domain"
)

type UserStore interface {
	Create(ctx context.Context, u *domain.User) error
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}

type tokenIssuer interface {
	GenerateToken(userID int64, role string) (string, error)
}

// CartMerger folds the visitor's anonymous cart into the account cart right
// after login, so nothing picked before signing in is lost.
type CartMerger interface {
	Merge(ctx context.Context, fromKey, intoKey string) error
}
