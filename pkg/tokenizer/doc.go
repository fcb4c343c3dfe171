/*
Package tokenizer segments input words into the symbols an automaton understands.

The default LongestMatch tokenizer scans left to right and at every position picks the
longest alphabet member that is a prefix of the remaining input, so multi-character
symbols such as "+Pl" or "[Noun]" are never split into shorter accidental matches.
Anything outside the alphabet becomes a single-rune token.
*/
package tokenizer
