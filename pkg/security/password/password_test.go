package password

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashAndCompare(t *testing.T) {
	h := NewHasher(bcrypt.MinCost, 0)
	ctx := context.Background()

	hash, err := h.Hash(ctx, "Abcdefg1")
	require.NoError(t, err)
	assert.NotEqual(t, "Abcdefg1", hash)
	assert.NotContains(t, hash, "Abcdefg1")

	assert.NoError(t, h.Compare(ctx, hash, "Abcdefg1"))
	assert.Error(t, h.Compare(ctx, hash, "Abcdefg2"))
}

func TestHashesAreSalted(t *testing.T) {
	h := NewHasher(bcrypt.MinCost, 0)
	ctx := context.Background()

	first, err := h.Hash(ctx, "Abcdefg1")
	require.NoError(t, err)
	second, err := h.Hash(ctx, "Abcdefg1")
	require.NoError(t, err)
	assert.NotEqual(t, first, second)
}

func TestDefaultsApplied(t *testing.T) {
	h := NewHasher(0, 0)
	assert.Equal(t, bcrypt.DefaultCost, h.cost)
	assert.NotNil(t, h.sem)
}
