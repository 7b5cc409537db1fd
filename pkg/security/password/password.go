// Package password wraps bcrypt behind a hasher with bounded
// concurrency: hashing is CPU-bound, and an unbounded burst of
// registrations would otherwise saturate every core.
package password

import (
	"context"
	"runtime"

	"golang.org/x/crypto/bcrypt"
	"golang.org/x/sync/semaphore"
)

type Hasher struct {
	cost int
	sem  *semaphore.Weighted
}

// NewHasher returns a Hasher with the given bcrypt cost and a limit on
// concurrent hash operations. Zero values select bcrypt.DefaultCost and
// one slot per CPU.
func NewHasher(cost int, maxConcurrent int64) *Hasher {
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	if maxConcurrent <= 0 {
		maxConcurrent = int64(runtime.GOMAXPROCS(0))
	}
	return &Hasher{cost: cost, sem: semaphore.NewWeighted(maxConcurrent)}
}

// Hash derives a salted one-way hash from plaintext.
func (h *Hasher) Hash(ctx context.Context, plain string) (string, error) {
	if err := h.sem.Acquire(ctx, 1); err != nil {
		return "", err
	}
	defer h.sem.Release(1)
	b, err := bcrypt.GenerateFromPassword([]byte(plain), h.cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Compare verifies plaintext against a stored hash in constant time.
func (h *Hasher) Compare(ctx context.Context, hash, plain string) error {
	if err := h.sem.Acquire(ctx, 1); err != nil {
		return err
	}
	defer h.sem.Release(1)
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain))
}
