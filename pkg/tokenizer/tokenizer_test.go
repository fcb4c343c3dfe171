package tokenizer_test

import (
	"strings"
	"testing"

	"github.com/aretw0/attlookup/pkg/tokenizer"
	"github.com/stretchr/testify/assert"
)

func TestLongestMatch(t *testing.T) {
	tests := []struct {
		name     string
		alphabet []string
		word     string
		want     []string
	}{
		{"prefers longest", []string{"ab", "a", "b"}, "ab", []string{"ab"}},
		{"multichar tag", []string{"c", "a", "t", "+Pl", "+", "P"}, "cat+Pl", []string{"c", "a", "t", "+Pl"}},
		{"out of vocabulary", []string{"a"}, "axa", []string{"a", "x", "a"}},
		{"longest not greedy-first", []string{"a", "abc"}, "abd", []string{"a", "b", "d"}},
		{"multibyte runes", []string{"ñ", "añ"}, "añoñ", []string{"añ", "o", "ñ"}},
		{"empty word", []string{"a"}, "", []string{}},
		{"empty alphabet", nil, "hi", []string{"h", "i"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tokenizer.New(tt.alphabet).Tokenize(tt.word)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.word, strings.Join(got, ""), "tokens must cover the input without gaps")
		})
	}
}

func TestRunes(t *testing.T) {
	assert.Equal(t, []string{"g", "ü", "t"}, tokenizer.Runes.Tokenize("güt"))
}

func TestSeparator(t *testing.T) {
	tok := tokenizer.Separator(" ")
	assert.Equal(t, []string{"cat", "+Pl"}, tok.Tokenize("cat  +Pl "))
}

func TestNormalizing(t *testing.T) {
	composed := "\u00e9"
	decomposed := "e\u0301"
	tok := tokenizer.Normalizing(tokenizer.New([]string{composed}))
	assert.Equal(t, []string{composed}, tok.Tokenize(decomposed))
}
