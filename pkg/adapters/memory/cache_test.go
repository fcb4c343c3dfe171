package memory_test

import (
	"context"
	"testing"

	"github.com/aretw0/attlookup/pkg/adapters/memory"
	"github.com/aretw0/attlookup/pkg/domain"
	contract "github.com/aretw0/attlookup/pkg/ports/tests"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemoryCache_Contract(t *testing.T) {
	contract.ResultCacheContractTest(t, memory.NewCache())
}

func TestInMemoryCache_Isolation(t *testing.T) {
	ctx := context.Background()
	cache := memory.NewCache()

	results := []domain.Result{{Output: "ab", Tokens: []string{"a", "b"}}}
	require.NoError(t, cache.Set(ctx, "k", results))
	results[0].Tokens[0] = "mutated"

	got, err := cache.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, got[0].Tokens)
	assert.Equal(t, 1, cache.Len())
}
