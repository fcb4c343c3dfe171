package tests

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/attlookup/pkg/domain"
	"github.com/aretw0/attlookup/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// LoaderContractTest verifies that an adapter complies with ports.AutomatonLoader.
// expected maps every name the loader should know to its arc count.
func LoaderContractTest(t *testing.T, loader ports.AutomatonLoader, expected map[string]int) {
	t.Helper()
	ctx := context.Background()

	t.Run("Load_Success", func(t *testing.T) {
		for name, arcs := range expected {
			a, err := loader.Load(ctx, name)
			require.NoError(t, err, "loading %s", name)
			assert.Equal(t, arcs, a.NumArcs(), "arc count for %s", name)
		}
	})

	t.Run("Load_Twice_SameAutomaton", func(t *testing.T) {
		for name := range expected {
			first, err := loader.Load(ctx, name)
			require.NoError(t, err)
			second, err := loader.Load(ctx, name)
			require.NoError(t, err)
			assert.Equal(t, first.NumStates(), second.NumStates())
		}
	})

	t.Run("Load_NotFound", func(t *testing.T) {
		_, err := loader.Load(ctx, "non-existent-automaton")
		assert.ErrorIs(t, err, domain.ErrAutomatonNotFound)
	})

	t.Run("List", func(t *testing.T) {
		names, err := loader.List(ctx)
		require.NoError(t, err)
		assert.Len(t, names, len(expected))
		for name := range expected {
			assert.Contains(t, names, name)
		}
		assert.IsNonDecreasing(t, names)
	})
}

// ResultCacheContractTest verifies that an adapter complies with ports.ResultCache.
func ResultCacheContractTest(t *testing.T, cache ports.ResultCache) {
	t.Helper()
	ctx := context.Background()
	key := "contract-" + time.Now().Format("20060102150405.000000000")

	t.Run("Miss", func(t *testing.T) {
		_, err := cache.Get(ctx, key+"-missing")
		assert.ErrorIs(t, err, domain.ErrCacheMiss)
	})

	t.Run("Set and Get", func(t *testing.T) {
		want := []domain.Result{
			{Output: "cat+Pl", Tokens: []string{"c", "a", "t", "+Pl"}, Cost: 0},
			{Output: "cat+Sg", Cost: 1.5},
		}
		require.NoError(t, cache.Set(ctx, key, want))

		got, err := cache.Get(ctx, key)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	})

	t.Run("Empty result set is cached", func(t *testing.T) {
		require.NoError(t, cache.Set(ctx, key+"-empty", []domain.Result{}))
		got, err := cache.Get(ctx, key+"-empty")
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("Overwrite", func(t *testing.T) {
		require.NoError(t, cache.Set(ctx, key, []domain.Result{{Output: "new"}}))
		got, err := cache.Get(ctx, key)
		require.NoError(t, err)
		assert.Equal(t, []domain.Result{{Output: "new"}}, got)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, cache.Delete(ctx, key))
		_, err := cache.Get(ctx, key)
		assert.ErrorIs(t, err, domain.ErrCacheMiss)
		assert.NoError(t, cache.Delete(ctx, key), "deleting twice is fine")
	})
}
