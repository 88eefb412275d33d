package auth

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"karam/internal/domain"
	"karam/internal/pkg/validator"
	"karam/internal/repository"
)

const minPasswordLength = 8

type Service struct {
	users UserStore
	jwt   tokenIssuer
	carts CartMerger
}

func NewService(users UserStore, jwt tokenIssuer, carts CartMerger) *Service {
	return &Service{users: users, jwt: jwt, carts: carts}
}

func (s *Service) Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error) {
	if len(req.Password) < minPasswordLength {
		return nil, ErrWeakPassword
	}

	role := domain.RoleVisitor
	if req.Role == string(domain.RoleFamily) {
		role = domain.RoleFamily
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &domain.User{
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		PasswordHash: string(hash),
		Role:         role,
		FullName:     strings.TrimSpace(req.FullName),
		Phone:        strings.TrimSpace(req.Phone),
	}
	if fields := validator.Validate(user); fields != nil {
		return nil, ErrInvalidEmail
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrEmailTaken) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}

	return s.issue(ctx, user, req.CartToken)
}

func (s *Service) Login(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	user, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		return nil, ErrInvalidCredentials
	}
	return s.issue(ctx, user, req.CartToken)
}

func (s *Service) Me(ctx context.Context, userID int64) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

func (s *Service) issue(ctx context.Context, user *domain.User, cartToken string) (*AuthResponse, error) {
	token, err := s.jwt.GenerateToken(user.ID, string(user.Role))
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}

	if cartToken = strings.TrimSpace(cartToken); cartToken != "" {
		intoKey := fmt.Sprintf("user:%d", user.ID)
		if err := s.carts.Merge(ctx, "anon:"+cartToken, intoKey); err != nil {
			log.Printf("auth: cart merge failed user_id=%d err=%v", user.ID, err)
		}
	}

	return &AuthResponse{Token: token, User: user}, nil
}
