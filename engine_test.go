package attlookup_test

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/aretw0/attlookup"
	"github.com/aretw0/attlookup/pkg/adapters/memory"
	"github.com/aretw0/attlookup/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newEngine(t *testing.T, opts ...attlookup.Option) *attlookup.Engine {
	t.Helper()
	loader := memory.NewLoader(map[string]string{
		"cat":  catTable,
		"loop": "0\t0\t@0@\t@0@\n0\n",
		"bad":  "0\t1\ta\n0\tx\n",
	})
	eng, err := attlookup.New("", append([]attlookup.Option{attlookup.WithLoader(loader)}, opts...)...)
	require.NoError(t, err)
	return eng
}

func TestEngine_Lookup(t *testing.T) {
	eng := newEngine(t)
	res, err := eng.Lookup(context.Background(), domain.LookupRequest{
		Automaton: "cat", Word: "cats", Direction: domain.Up,
	})
	require.NoError(t, err)
	assert.Equal(t, []domain.Result{{Output: "cat+Pl", Cost: 0.75}}, res.Results)
	assert.False(t, res.Cached)
	assert.Positive(t, res.Expansions)
}

func TestEngine_NoAnalysisIsEmptyNotNil(t *testing.T) {
	eng := newEngine(t)
	res, err := eng.Lookup(context.Background(), domain.LookupRequest{Automaton: "cat", Word: "dog", Direction: domain.Up})
	require.NoError(t, err)
	assert.NotNil(t, res.Results)
	assert.Empty(t, res.Results)
}

func TestEngine_Errors(t *testing.T) {
	eng := newEngine(t)
	ctx := context.Background()

	_, err := eng.Lookup(ctx, domain.LookupRequest{Automaton: "missing", Word: "x"})
	assert.ErrorIs(t, err, domain.ErrAutomatonNotFound)

	_, err = eng.Lookup(ctx, domain.LookupRequest{Automaton: "bad", Word: "x"})
	var fe *domain.FormatError
	assert.ErrorAs(t, err, &fe)

	_, err = eng.Lookup(ctx, domain.LookupRequest{Automaton: "cat", Word: "x", Direction: domain.Direction(7)})
	assert.ErrorIs(t, err, domain.ErrInvalidDirection)
}

func TestEngine_Limit(t *testing.T) {
	loader := memory.NewLoader(map[string]string{
		"many": "0\t1\ta\tx\t3\n0\t1\ta\ty\t1\n0\t1\ta\tz\t2\n1\n",
	})
	eng, err := attlookup.New("", attlookup.WithLoader(loader))
	require.NoError(t, err)

	res, err := eng.Lookup(context.Background(), domain.LookupRequest{Automaton: "many", Word: "a", Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, []domain.Result{{Output: "y", Cost: 1}, {Output: "z", Cost: 2}}, res.Results)
}

func TestEngine_CachesResults(t *testing.T) {
	cache := memory.NewCache()
	eng := newEngine(t, attlookup.WithCache(cache))
	ctx := context.Background()
	req := domain.LookupRequest{Automaton: "cat", Word: "cat", Direction: domain.Up}

	first, err := eng.Lookup(ctx, req)
	require.NoError(t, err)
	assert.False(t, first.Cached)
	assert.Equal(t, 1, cache.Len())

	second, err := eng.Lookup(ctx, req)
	require.NoError(t, err)
	assert.True(t, second.Cached)
	assert.Equal(t, first.Results, second.Results)
}

func TestEngine_TruncatedLookupIsNotCached(t *testing.T) {
	cache := memory.NewCache()
	eng := newEngine(t,
		attlookup.WithCache(cache),
		attlookup.WithSearchDefaults(attlookup.SearchDefaults{MaxExpansions: 10}),
	)

	res, err := eng.Lookup(context.Background(), domain.LookupRequest{Automaton: "loop", Word: ""})
	require.NoError(t, err)
	assert.True(t, res.Truncated)
	assert.Equal(t, 10, res.Expansions)
	assert.Zero(t, cache.Len())
}

func TestEngine_DefaultBudgetEndsEmittingCycle(t *testing.T) {
	loader := memory.NewLoader(map[string]string{"emit": "0\t0\t@0@\tx\n0\t1\ta\ta\n1\n"})
	eng, err := attlookup.New("", attlookup.WithLoader(loader))
	require.NoError(t, err)

	res, err := eng.Lookup(context.Background(), domain.LookupRequest{Automaton: "emit", Word: "b"})
	require.NoError(t, err)
	assert.Empty(t, res.Results)
	assert.True(t, res.Truncated)
	assert.Equal(t, attlookup.DefaultMaxExpansions, res.Expansions)

	res, err = eng.Lookup(context.Background(), domain.LookupRequest{Automaton: "emit", Word: "a", Limit: 1})
	require.NoError(t, err)
	assert.Equal(t, []domain.Result{{Output: "a"}}, res.Results)
}

func TestEngine_CanceledContext(t *testing.T) {
	eng := newEngine(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := eng.Lookup(ctx, domain.LookupRequest{Automaton: "cat", Word: "cats", Direction: domain.Up})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestEngine_Hooks(t *testing.T) {
	var mu sync.Mutex
	var loads []*domain.LoadEvent
	var lookups []*domain.LookupEvent

	eng := newEngine(t, attlookup.WithLifecycleHooks(domain.LifecycleHooks{
		OnLoad: func(_ context.Context, e *domain.LoadEvent) {
			mu.Lock()
			defer mu.Unlock()
			loads = append(loads, e)
		},
		OnLookup: func(_ context.Context, e *domain.LookupEvent) {
			mu.Lock()
			defer mu.Unlock()
			lookups = append(lookups, e)
		},
	}))
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := eng.Lookup(ctx, domain.LookupRequest{Automaton: "cat", Word: "cats", Direction: domain.Up})
		require.NoError(t, err)
	}

	require.Len(t, loads, 1, "an automaton is loaded once")
	assert.Equal(t, "cat", loads[0].Name)
	assert.Equal(t, 5, loads[0].Arcs)
	assert.Equal(t, domain.EventLoad, loads[0].Type)

	require.Len(t, lookups, 3)
	assert.Equal(t, 1, lookups[0].Results)
	assert.Equal(t, domain.Up, lookups[0].Direction)
	assert.NoError(t, lookups[0].Err)
}

func TestEngine_TokenizeAndList(t *testing.T) {
	eng := newEngine(t)
	ctx := context.Background()

	tokens, err := eng.Tokenize(ctx, "cat", "cat+Pl")
	require.NoError(t, err)
	assert.Equal(t, []string{"c", "a", "t", "+Pl"}, tokens)

	names, err := eng.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"bad", "cat", "loop"}, names)
}

func TestNew_DirectoryLoader(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "cat.att"), []byte(catTable), 0o644))

	eng, err := attlookup.New(dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Base(dir), eng.Name)

	res, err := eng.Lookup(context.Background(), domain.LookupRequest{Automaton: "cat", Word: "cat+Pl"})
	require.NoError(t, err)
	assert.Equal(t, "cats", res.Results[0].Output)

	_, err = attlookup.New("")
	assert.Error(t, err)
	_, err = attlookup.New(filepath.Join(dir, "cat.att"))
	assert.Error(t, err)
}
