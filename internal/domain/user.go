package domain

import "time"

type UserRole string

const (
	RoleVisitor  UserRole = "visitor"
	RoleFamily   UserRole = "family"
	RoleOperator UserRole = "operator"
)

type User struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email" validate:"required,email"`
	PasswordHash string    `json:"-"`
	Role         UserRole  `json:"role"`
	FullName     string    `json:"full_name"`
	Phone        string    `json:"phone,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
