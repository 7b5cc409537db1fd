package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/finmark/auth-service/pkg/validation"
)

// UseCase describes registration, authentication and profile lookup behavior.
type UseCase interface {
	Register(ctx context.Context, in RegisterInput) (Result, error)
	Login(ctx context.Context, in LoginInput) (Result, error)
	Profile(ctx context.Context, id string) (Account, error)
}

type RegisterInput struct {
	Email    string
	Password string
	Name     string
}

type LoginInput struct {
	Email    string
	Password string
}

type Result struct {
	Account Account
	Token   string
}

// ValidationError carries per-field messages for a rejected payload.
type ValidationError struct {
	Fields validation.FieldErrors
}

func (e *ValidationError) Error() string { return "validation failed" }

type credentialService struct {
	accounts AccountRepository
	hasher   PasswordHasher
	tokens   TokenIssuer
}

// NewCredentialService returns default implementation of UseCase.
func NewCredentialService(accounts AccountRepository, hasher PasswordHasher, tokens TokenIssuer) UseCase {
	return &credentialService{accounts: accounts, hasher: hasher, tokens: tokens}
}

func (s *credentialService) Register(ctx context.Context, in RegisterInput) (Result, error) {
	payload, fieldErrs := validation.Registration(validation.RegisterPayload{
		Email:    in.Email,
		Password: in.Password,
		Name:     in.Name,
	})
	if len(fieldErrs) > 0 {
		return Result{}, &ValidationError{Fields: fieldErrs}
	}

	// Best-effort pre-check; the store's unique constraint is the
	// authoritative guard against racing registrations.
	if _, err := s.accounts.FindByEmail(ctx, payload.Email); err == nil {
		return Result{}, ErrAccountExists
	} else if errors.Is(err, ErrStoreUnavailable) {
		return Result{}, err
	}

	hash, err := s.hasher.Hash(ctx, payload.Password)
	if err != nil {
		return Result{}, fmt.Errorf("hash password: %w", err)
	}

	account := Account{
		ID:           uuid.New(),
		Email:        payload.Email,
		Name:         payload.Name,
		PasswordHash: hash,
		Role:         RoleUser,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.accounts.Create(ctx, account); err != nil {
		// A late unique violation is the normal duplicate outcome,
		// not an internal error.
		return Result{}, err
	}

	token, err := s.tokens.Issue(ctx, account)
	if err != nil {
		return Result{}, fmt.Errorf("issue token: %w", err)
	}
	return Result{Account: account, Token: token}, nil
}

func (s *credentialService) Login(ctx context.Context, in LoginInput) (Result, error) {
	payload, fieldErrs := validation.Login(validation.LoginPayload{
		Email:    in.Email,
		Password: in.Password,
	})
	if len(fieldErrs) > 0 {
		return Result{}, &ValidationError{Fields: fieldErrs}
	}

	account, err := s.accounts.FindByEmail(ctx, payload.Email)
	if err != nil {
		if errors.Is(err, ErrStoreUnavailable) {
			return Result{}, err
		}
		// Absent account collapses into the same generic outcome as a
		// wrong password to prevent account enumeration.
		return Result{}, ErrInvalidCredentials
	}
	if err := s.hasher.Compare(ctx, account.PasswordHash, payload.Password); err != nil {
		return Result{}, ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(ctx, account)
	if err != nil {
		return Result{}, fmt.Errorf("issue token: %w", err)
	}
	return Result{Account: account, Token: token}, nil
}

func (s *credentialService) Profile(ctx context.Context, id string) (Account, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return Account{}, ErrNotFound
	}
	return s.accounts.FindByID(ctx, uid)
}
