package auth

import "karam/internal/domain"

type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
	FullName string `json:"full_name" binding:"required"`
	Phone    string `json:"phone"`
	// Role is optional; plain visitors register by default, hosting
	// families through the same endpoint with role=family.
	Role string `json:"role"`
	// CartToken carries the anonymous cart to merge after signup.
	CartToken string `json:"cart_token"`
}

type LoginRequest struct {
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required"`
	CartToken string `json:"cart_token"`
}

type AuthResponse struct {
	Token string       `json:"token"`
	User  *domain.User `json:"user"`
	// Redirect echoes the return location the client supplied when it was
	// bounced to login, so it can resume where it left off.
	Redirect string `json:"redirect,omitempty"`
}
