package users

import (
	"context"

	"vet-clinic/internal/domain/access"
)

// User es una cuenta del sistema. PasswordHash nunca sale en JSON.
type User struct {
	ID           string      `json:"id"`
	Username     string      `json:"username"`
	PasswordHash string      `json:"-"`
	Email        string      `json:"email"`
	Phone        string      `json:"phone,omitempty"`
	FullName     string      `json:"full_name"`
	Role         access.Role `json:"role"`
}

// Repository devuelve records.ErrNotFound cuando no hay usuario y
// *records.ConflictError{Field: "username"} si el nombre ya existe.
type Repository interface {
	List(ctx context.Context) ([]User, error)
	GetByID(ctx context.Context, id string) (User, error)
	// GetByUsername compara sin distinguir mayúsculas.
	GetByUsername(ctx context.Context, username string) (User, error)
	Create(ctx context.Context, u User) error
	Update(ctx context.Context, u User) error
	Delete(ctx context.Context, id string) error
}
