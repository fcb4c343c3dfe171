package file

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/aretw0/attlookup/internal/compiler"
	"github.com/aretw0/attlookup/internal/logging"
	"github.com/aretw0/attlookup/pkg/domain"
	"golang.org/x/sync/singleflight"
)

// Extensions recognized as AT&T tables, most specific first.
var Extensions = []string{".att.gz", ".att.zst", ".att"}

// Loader implements ports.AutomatonLoader over a directory of AT&T tables.
// A table named "es.att.gz" is served as "es". Each table is read once;
// concurrent first requests for the same name share a single read.
type Loader struct {
	dir    string
	parser *compiler.Parser
	logger *slog.Logger

	mu       sync.RWMutex
	automata map[string]*domain.Automaton
	group    singleflight.Group
}

// Option configures a Loader.
type Option func(*Loader)

// WithParserOptions forwards options to the underlying table parser.
func WithParserOptions(opts ...compiler.Option) Option {
	return func(l *Loader) {
		l.parser = compiler.NewParser(opts...)
	}
}

// WithLogger sets the logger used to report loads.
func WithLogger(logger *slog.Logger) Option {
	return func(l *Loader) {
		l.logger = logger
	}
}

// NewLoader creates a loader rooted at dir.
func NewLoader(dir string, opts ...Option) *Loader {
	l := &Loader{
		dir:      dir,
		parser:   compiler.NewParser(),
		logger:   logging.NewNop(),
		automata: make(map[string]*domain.Automaton),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Dir returns the directory the loader reads from.
func (l *Loader) Dir() string { return l.dir }

// Load returns the named automaton, reading it from disk on first use.
func (l *Loader) Load(ctx context.Context, name string) (*domain.Automaton, error) {
	l.mu.RLock()
	a, ok := l.automata[name]
	l.mu.RUnlock()
	if ok {
		return a, nil
	}

	v, err, _ := l.group.Do(name, func() (any, error) {
		path, err := l.resolve(name)
		if err != nil {
			return nil, err
		}
		a, err := l.parser.ParseFile(path)
		if err != nil {
			return nil, err
		}
		l.mu.Lock()
		l.automata[name] = a
		l.mu.Unlock()
		l.logger.Debug("table read", "name", name, "path", path, "states", a.NumStates(), "arcs", a.NumArcs())
		return a, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*domain.Automaton), nil
}

func (l *Loader) resolve(name string) (string, error) {
	if name == "" || name != filepath.Base(name) || strings.HasPrefix(name, ".") {
		return "", fmt.Errorf("%w: %q", domain.ErrAutomatonNotFound, name)
	}
	for _, ext := range Extensions {
		path := filepath.Join(l.dir, name+ext)
		info, err := os.Stat(path)
		if err == nil && info.Mode().IsRegular() {
			return path, nil
		}
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("failed to stat %s: %w", path, err)
		}
	}
	return "", fmt.Errorf("%w: %s", domain.ErrAutomatonNotFound, name)
}

// List returns the names of all tables in the directory.
func (l *Loader) List(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(l.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", l.dir, err)
	}

	seen := make(map[string]struct{})
	for _, e := range entries {
		if !e.Type().IsRegular() {
			continue
		}
		if name, ok := TrimExtension(e.Name()); ok {
			seen[name] = struct{}{}
		}
	}

	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// TrimExtension strips a recognized table extension from a file name.
func TrimExtension(filename string) (string, bool) {
	for _, ext := range Extensions {
		if strings.HasSuffix(filename, ext) && len(filename) > len(ext) {
			return strings.TrimSuffix(filename, ext), true
		}
	}
	return "", false
}
