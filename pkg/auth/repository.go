package auth

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// Common errors used by repository/use cases
var (
	ErrNotFound           = errors.New("not found")
	ErrAccountExists      = errors.New("account already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrStoreUnavailable   = errors.New("account store unavailable")
)

// AccountRepository abstracts persistence concerns from the domain layer.
// Implementations must enforce email uniqueness; Create returns
// ErrAccountExists when the unique constraint fires, and every method
// returns ErrStoreUnavailable while the store is disconnected.
type AccountRepository interface {
	Create(ctx context.Context, account Account) error
	FindByEmail(ctx context.Context, email string) (Account, error)
	FindByID(ctx context.Context, id uuid.UUID) (Account, error)
}
