package checkers

import (
	"context"
	"time"

	storage "github.com/finmark/auth-service/pkg/storage/postgres"
)

// StoreChecker reports the account store's reachability through the
// reconnecting handle.
type StoreChecker struct {
	store *storage.Store
}

func NewStoreChecker(store *storage.Store) *StoreChecker {
	return &StoreChecker{store: store}
}

func (c *StoreChecker) Name() string { return "postgres" }

func (c *StoreChecker) Check(ctx context.Context) error {
	pool, err := c.store.Pool()
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, time.Second)
	defer cancel()
	return pool.Ping(ctx)
}
