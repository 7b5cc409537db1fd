package postgres

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/finmark/auth-service/pkg/auth"
	storage "github.com/finmark/auth-service/pkg/storage/postgres"
)

// AccountRepository implements auth.AccountRepository backed by
// PostgreSQL (pgx) through the reconnecting store handle.
type AccountRepository struct {
	store *storage.Store
}

func NewAccountRepository(store *storage.Store) *AccountRepository {
	return &AccountRepository{store: store}
}

// EnsureSchema creates the accounts table. It runs from the store's
// after-connect hook so schema setup follows every (re)connection.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	_, err := pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS accounts (
			id UUID PRIMARY KEY,
			email TEXT NOT NULL UNIQUE,
			name TEXT NOT NULL,
			password_hash TEXT NOT NULL,
			role TEXT NOT NULL DEFAULT 'user',
			created_at TIMESTAMPTZ NOT NULL
		);
	`)
	return err
}

func (r *AccountRepository) pool() (*pgxpool.Pool, error) {
	pool, err := r.store.Pool()
	if err != nil {
		return nil, auth.ErrStoreUnavailable
	}
	return pool, nil
}

func (r *AccountRepository) Create(ctx context.Context, account auth.Account) error {
	pool, err := r.pool()
	if err != nil {
		return err
	}
	_, err = pool.Exec(ctx, `
		INSERT INTO accounts (id, email, name, password_hash, role, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, account.ID, strings.ToLower(account.Email), account.Name, account.PasswordHash, string(account.Role), account.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
			return auth.ErrAccountExists
		}
		return err
	}
	return nil
}

func (r *AccountRepository) FindByEmail(ctx context.Context, email string) (auth.Account, error) {
	pool, err := r.pool()
	if err != nil {
		return auth.Account{}, err
	}
	row := pool.QueryRow(ctx, `
		SELECT id, email, name, password_hash, role, created_at
		FROM accounts WHERE email = $1
	`, strings.ToLower(email))
	return scanAccount(row)
}

func (r *AccountRepository) FindByID(ctx context.Context, id uuid.UUID) (auth.Account, error) {
	pool, err := r.pool()
	if err != nil {
		return auth.Account{}, err
	}
	row := pool.QueryRow(ctx, `
		SELECT id, email, name, password_hash, role, created_at
		FROM accounts WHERE id = $1
	`, id)
	return scanAccount(row)
}

func scanAccount(row pgx.Row) (auth.Account, error) {
	var account auth.Account
	var role string
	var createdAt time.Time
	if err := row.Scan(&account.ID, &account.Email, &account.Name, &account.PasswordHash, &role, &createdAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return auth.Account{}, auth.ErrNotFound
		}
		return auth.Account{}, err
	}
	account.Role = auth.Role(role)
	account.CreatedAt = createdAt.UTC()
	return account, nil
}
