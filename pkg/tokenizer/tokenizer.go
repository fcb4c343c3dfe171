package tokenizer

import (
	"strings"
	"unicode/utf8"

	"github.com/aretw0/attlookup/pkg/domain"
	"golang.org/x/text/unicode/norm"
)

// Tokenizer splits a word into symbols.
type Tokenizer interface {
	Tokenize(word string) []string
}

// Func adapts a plain function to the Tokenizer interface.
type Func func(word string) []string

// Tokenize calls f(word).
func (f Func) Tokenize(word string) []string { return f(word) }

// LongestMatch is the alphabet-aware tokenizer. It is immutable and safe for concurrent use.
type LongestMatch struct {
	symbols  map[string]struct{}
	maxRunes int
}

// New builds a LongestMatch tokenizer over the given alphabet.
// Empty symbols are ignored.
func New(alphabet []string) *LongestMatch {
	t := &LongestMatch{symbols: make(map[string]struct{}, len(alphabet))}
	for _, sym := range alphabet {
		if sym == "" {
			continue
		}
		t.symbols[sym] = struct{}{}
		if n := utf8.RuneCountInString(sym); n > t.maxRunes {
			t.maxRunes = n
		}
	}
	return t
}

// FromAutomaton builds a LongestMatch tokenizer over a's alphabet.
func FromAutomaton(a *domain.Automaton) *LongestMatch {
	return New(a.Alphabet())
}

// Tokenize returns a gap-free, non-overlapping segmentation of word.
func (t *LongestMatch) Tokenize(word string) []string {
	tokens := make([]string, 0, utf8.RuneCountInString(word))
	for start := 0; start < len(word); {
		_, size := utf8.DecodeRuneInString(word[start:])
		end := start + size

		pos := start
		for n := 0; n < t.maxRunes && pos < len(word); n++ {
			_, sz := utf8.DecodeRuneInString(word[pos:])
			pos += sz
			if _, ok := t.symbols[word[start:pos]]; ok {
				end = pos
			}
		}

		tokens = append(tokens, word[start:end])
		start = end
	}
	return tokens
}

// Runes splits a word into one token per rune.
var Runes = Func(func(word string) []string {
	tokens := make([]string, 0, len(word))
	for _, r := range word {
		tokens = append(tokens, string(r))
	}
	return tokens
})

// Separator splits pre-segmented input on sep, dropping empty pieces.
func Separator(sep string) Tokenizer {
	return Func(func(word string) []string {
		parts := strings.Split(word, sep)
		tokens := parts[:0]
		for _, p := range parts {
			if p != "" {
				tokens = append(tokens, p)
			}
		}
		return tokens
	})
}

// Normalizing wraps t so that input is converted to Unicode NFC first.
// Tables compiled from NFC sources then match decomposed keyboard input.
func Normalizing(t Tokenizer) Tokenizer {
	return Func(func(word string) []string {
		return t.Tokenize(norm.NFC.String(word))
	})
}
