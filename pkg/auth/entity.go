package auth

import (
	"time"

	"github.com/google/uuid"
)

// Role enumerates account authorization levels.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// Account is a domain entity representing a registered identity.
type Account struct {
	ID           uuid.UUID
	Email        string
	Name         string
	PasswordHash string
	Role         Role
	CreatedAt    time.Time
}

// PublicAccount is the view of an account safe to return to clients.
// It never carries the password hash.
type PublicAccount struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  Role   `json:"role"`
}

func (a Account) Public() PublicAccount {
	return PublicAccount{
		ID:    a.ID.String(),
		Name:  a.Name,
		Email: a.Email,
		Role:  a.Role,
	}
}
