package auth

import "context"

// TokenIssuer abstracts signed-token creation (e.g., JWT).
// It allows use cases to stay framework-agnostic.
type TokenIssuer interface {
	Issue(ctx context.Context, account Account) (string, error)
}

// PasswordHasher abstracts the one-way password transform.
type PasswordHasher interface {
	Hash(ctx context.Context, plain string) (string, error)
	Compare(ctx context.Context, hash, plain string) error
}
