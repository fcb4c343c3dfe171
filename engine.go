package attlookup

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/aretw0/attlookup/internal/logging"
	"github.com/aretw0/attlookup/internal/runtime"
	"github.com/aretw0/attlookup/pkg/adapters/file"
	"github.com/aretw0/attlookup/pkg/domain"
	"github.com/aretw0/attlookup/pkg/ports"
	"github.com/aretw0/attlookup/pkg/tokenizer"
)

// SearchDefaults are applied to every lookup the Engine runs.
type SearchDefaults struct {
	MaxExpansions int  `yaml:"max_expansions" json:"max_expansions" mapstructure:"max_expansions"`
	Dedup         bool `yaml:"dedup" json:"dedup" mapstructure:"dedup"`
}

// DefaultMaxExpansions bounds lookups served by an Engine unless configured
// otherwise. Epsilon cycles that emit output never repeat a search node, so
// without a budget a word with no accepting path would search forever.
const DefaultMaxExpansions = 100000

// DefaultSearch keeps dedup on and bounds every search by DefaultMaxExpansions.
func DefaultSearch() SearchDefaults {
	return SearchDefaults{MaxExpansions: DefaultMaxExpansions, Dedup: true}
}

// Engine serves lookups against named automata.
// It loads each automaton once, keeps its tokenizer, and optionally caches
// result lists. It implements ports.Transducer.
type Engine struct {
	loader ports.AutomatonLoader
	cache  ports.ResultCache
	hooks  domain.LifecycleHooks
	logger *slog.Logger
	search SearchDefaults
	Name   string

	mu     sync.RWMutex
	loaded map[string]*loaded
}

type loaded struct {
	automaton *domain.Automaton
	tokenizer tokenizer.Tokenizer
}

var _ ports.Transducer = (*Engine)(nil)

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithLoader injects a custom AutomatonLoader, bypassing the directory loader.
func WithLoader(l ports.AutomatonLoader) Option {
	return func(e *Engine) {
		e.loader = l
	}
}

// WithCache enables result caching.
func WithCache(c ports.ResultCache) Option {
	return func(e *Engine) {
		e.cache = c
	}
}

// WithLogger sets a custom structured logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(e *Engine) {
		e.hooks = e.hooks.Merge(hooks)
	}
}

// WithSearchDefaults sets the termination policy used for every lookup.
func WithSearchDefaults(s SearchDefaults) Option {
	return func(e *Engine) {
		e.search = s
	}
}

// New initializes an Engine.
// By default automata are read from the table files in dir.
// If WithLoader is provided, dir can be empty and is only used as a label.
func New(dir string, opts ...Option) (*Engine, error) {
	eng := &Engine{
		search: DefaultSearch(),
		loaded: make(map[string]*loaded),
	}
	for _, opt := range opts {
		opt(eng)
	}

	if eng.logger == nil {
		eng.logger = logging.NewNop()
	}

	if eng.loader == nil {
		if dir == "" {
			return nil, fmt.Errorf("dir is required when no custom loader is provided")
		}
		absPath, err := filepath.Abs(dir)
		if err != nil {
			return nil, fmt.Errorf("invalid path: %w", err)
		}
		info, err := os.Stat(absPath)
		if err != nil {
			return nil, fmt.Errorf("failed to open automata dir: %w", err)
		}
		if !info.IsDir() {
			return nil, fmt.Errorf("%s is not a directory", absPath)
		}
		eng.loader = file.NewLoader(absPath, file.WithLogger(eng.logger))
		eng.Name = filepath.Base(absPath)
	} else if dir != "" {
		eng.Name = filepath.Base(dir)
	}

	if eng.Name != "" {
		eng.logger = eng.logger.With("collection", eng.Name)
	}
	return eng, nil
}

// Loader returns the underlying AutomatonLoader.
func (e *Engine) Loader() ports.AutomatonLoader {
	return e.loader
}

// List returns the available automaton names.
func (e *Engine) List(ctx context.Context) ([]string, error) {
	return e.loader.List(ctx)
}

// Automaton returns the named automaton, loading it on first use.
func (e *Engine) Automaton(ctx context.Context, name string) (*domain.Automaton, error) {
	l, err := e.load(ctx, name)
	if err != nil {
		return nil, err
	}
	return l.automaton, nil
}

func (e *Engine) load(ctx context.Context, name string) (*loaded, error) {
	e.mu.RLock()
	l, ok := e.loaded[name]
	e.mu.RUnlock()
	if ok {
		return l, nil
	}

	start := time.Now()
	a, err := e.loader.Load(ctx, name)
	ev := &domain.LoadEvent{
		EventBase: domain.EventBase{Timestamp: start, Type: domain.EventLoad},
		Name:      name,
		Duration:  time.Since(start),
		Err:       err,
	}
	if a != nil {
		ev.States = a.NumStates()
		ev.Arcs = a.NumArcs()
	}
	if e.hooks.OnLoad != nil {
		e.hooks.OnLoad(ctx, ev)
	}
	if err != nil {
		e.logger.Error("load failed", "automaton", name, "error", err)
		return nil, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if l, ok := e.loaded[name]; ok {
		return l, nil
	}
	l = &loaded{automaton: a, tokenizer: tokenizer.FromAutomaton(a)}
	e.loaded[name] = l
	e.logger.Debug("automaton ready", "automaton", name, "states", ev.States, "arcs", ev.Arcs)
	return l, nil
}

// Tokenize segments word with the named automaton's alphabet.
func (e *Engine) Tokenize(ctx context.Context, name, word string) ([]string, error) {
	l, err := e.load(ctx, name)
	if err != nil {
		return nil, err
	}
	return l.tokenizer.Tokenize(word), nil
}

// CacheKey identifies a lookup in a ResultCache.
func CacheKey(req domain.LookupRequest) string {
	return strings.Join([]string{
		req.Automaton,
		req.Direction.String(),
		strconv.Itoa(req.Limit),
		strconv.FormatBool(req.KeepTokens),
		req.Word,
	}, "|")
}

// Lookup applies req.Word to the named automaton and collects up to req.Limit
// results (all of them when Limit <= 0), cheapest first.
// A lookup stopped by the expansion budget returns what it found with
// Truncated set; such partial lists are not cached.
func (e *Engine) Lookup(ctx context.Context, req domain.LookupRequest) (res *domain.LookupResult, err error) {
	start := time.Now()
	ev := &domain.LookupEvent{
		EventBase: domain.EventBase{Timestamp: start, Type: domain.EventLookup},
		Name:      req.Automaton,
		Word:      req.Word,
		Direction: req.Direction,
	}
	defer func() {
		ev.Duration = time.Since(start)
		ev.Err = err
		if res != nil {
			ev.Results = len(res.Results)
			ev.Expansions = res.Expansions
			ev.CacheHit = res.Cached
			ev.Truncated = res.Truncated
		}
		if e.hooks.OnLookup != nil {
			e.hooks.OnLookup(ctx, ev)
		}
	}()

	if req.Direction != domain.Down && req.Direction != domain.Up {
		return nil, fmt.Errorf("%w: %d", domain.ErrInvalidDirection, req.Direction)
	}

	key := CacheKey(req)
	if e.cache != nil {
		cached, err := e.cache.Get(ctx, key)
		if err == nil {
			return &domain.LookupResult{Results: cached, Cached: true}, nil
		}
		if !errors.Is(err, domain.ErrCacheMiss) {
			e.logger.Warn("cache read failed", "automaton", req.Automaton, "error", err)
		}
	}

	l, err := e.load(ctx, req.Automaton)
	if err != nil {
		return nil, err
	}

	cur := runtime.NewCursor(l.automaton, req.Word, runtime.Options{
		Direction:     req.Direction,
		Tokenizer:     l.tokenizer,
		KeepTokens:    req.KeepTokens,
		MaxExpansions: e.search.MaxExpansions,
		Dedup:         e.search.Dedup,
	})

	results := []domain.Result{}
	for !cur.Done() && (req.Limit <= 0 || len(results) < req.Limit) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if r, ok := cur.Step(); ok {
			results = append(results, r)
		}
	}

	res = &domain.LookupResult{
		Results:    results,
		Expansions: cur.Expansions(),
		Truncated:  errors.Is(cur.Err(), domain.ErrExpansionLimit),
	}
	if res.Truncated {
		e.logger.Warn("lookup stopped by expansion budget",
			"automaton", req.Automaton, "word", req.Word, "expansions", res.Expansions)
		return res, nil
	}

	if e.cache != nil {
		if err := e.cache.Set(ctx, key, results); err != nil {
			e.logger.Warn("cache write failed", "automaton", req.Automaton, "error", err)
		}
	}
	return res, nil
}
