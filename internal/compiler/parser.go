package compiler

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/aretw0/attlookup/internal/logging"
	"github.com/aretw0/attlookup/pkg/domain"
)

// Parser reads AT&T tables into automata.
type Parser struct {
	symbols domain.Symbols
	strict  bool
	logger  *slog.Logger
}

// Option configures a Parser.
type Option func(*Parser)

// WithSymbols sets the reserved literals; empty fields keep their defaults.
func WithSymbols(symbols domain.Symbols) Option {
	return func(p *Parser) {
		p.symbols = symbols.WithDefaults()
	}
}

// WithStrict rejects three-field lines instead of skipping them.
func WithStrict(strict bool) Option {
	return func(p *Parser) {
		p.strict = strict
	}
}

// WithLogger sets the logger used for load diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Parser) {
		p.logger = logger
	}
}

// NewParser creates a new parser instance.
func NewParser(opts ...Option) *Parser {
	p := &Parser{
		symbols: domain.DefaultSymbols(),
		logger:  logging.NewNop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Symbols returns the reserved literals the parser normalizes with.
func (p *Parser) Symbols() domain.Symbols {
	return p.symbols
}

// ParseFile reads a plain, gzip or zstd framed table from disk.
func (p *Parser) ParseFile(path string) (*domain.Automaton, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	a, err := p.ParseBytes(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return a, nil
}

// Parse reads the whole stream and parses it.
func (p *Parser) Parse(r io.Reader) (*domain.Automaton, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read table: %w", err)
	}
	return p.ParseBytes(data)
}

// ParseBytes parses a possibly compressed table.
// The first malformed line aborts the load with a *domain.FormatError.
func (p *Parser) ParseBytes(data []byte) (*domain.Automaton, error) {
	plain, compression := Decompress(data)

	b := domain.NewBuilder(p.symbols)
	ignored := 0
	rest := plain
	for lineNo := 1; len(rest) > 0; lineNo++ {
		raw := rest
		if i := bytes.IndexByte(rest, '\n'); i >= 0 {
			raw, rest = rest[:i], rest[i+1:]
		} else {
			rest = nil
		}
		text := strings.ToValidUTF8(strings.TrimSuffix(string(raw), "\r"), "\uFFFD")

		line := Classify(text, p.strict)
		switch line.Kind {
		case KindTransition:
			arc := line.Arc
			arc.Input = p.normalize(arc.Input)
			arc.Output = p.normalize(arc.Output)
			b.AddArc(arc)
		case KindFinal:
			b.SetFinal(line.State, line.FinalWeight)
		case KindMalformed:
			return nil, &domain.FormatError{Line: lineNo, Text: text, Reason: line.Reason, Err: line.Err}
		default:
			ignored++
		}
	}

	a := b.Build()
	p.logger.Debug("parsed att table",
		"compression", compression,
		"states", a.NumStates(),
		"arcs", a.NumArcs(),
		"ignored_lines", ignored,
	)
	return a, nil
}

func (p *Parser) normalize(sym string) string {
	if sym == p.symbols.Epsilon {
		return ""
	}
	return sym
}
