package markov

import (
	"strings"
	"unicode/utf8"
)

// Tokenizer splits source text into sentences, and sentences into normalized
// word tokens. The zero value is not usable; create one with NewTokenizer.
type Tokenizer struct {
	sentenceDelims string
	separator      string
	stripChars     string
}

// Option is a function that configures a Tokenizer.
type Option func(*Tokenizer)

// WithSentenceDelimiters sets the characters that end a sentence.
// Default: ".?!\n"
func WithSentenceDelimiters(delims string) Option {
	return func(t *Tokenizer) {
		t.sentenceDelims = delims
	}
}

// WithSeparator sets the string that separates words inside a sentence.
// Default: " "
func WithSeparator(sep string) Option {
	return func(t *Tokenizer) {
		t.separator = sep
	}
}

// WithStripChars sets the characters removed from anywhere inside a word.
// Default: `"`
func WithStripChars(chars string) Option {
	return func(t *Tokenizer) {
		t.stripChars = chars
	}
}

// NewTokenizer creates a tokenizer with default settings, which can be
// overridden by providing one or more Option functions.
func NewTokenizer(opts ...Option) *Tokenizer {
	t := &Tokenizer{
		sentenceDelims: ".?!\n",
		separator:      " ",
		stripChars:     `"`,
	}

	for _, opt := range opts {
		opt(t)
	}

	return t
}

// SplitSentences splits text on every sentence delimiter. Consecutive
// delimiters produce empty fragments, which tokenize to zero words.
func (t *Tokenizer) SplitSentences(text string) []string {
	var sentences []string
	start := 0
	for i, r := range text {
		if strings.ContainsRune(t.sentenceDelims, r) {
			sentences = append(sentences, text[start:i])
			start = i + utf8.RuneLen(r)
		}
	}
	return append(sentences, text[start:])
}

// SplitWords splits a sentence on the separator and normalizes each piece
// with NormalizeWord. Pieces that are empty after normalization are dropped.
// The result keeps left-to-right order and may be empty.
func (t *Tokenizer) SplitWords(sentence string) []string {
	pieces := strings.Split(sentence, t.separator)
	words := make([]string, 0, len(pieces))
	for _, piece := range pieces {
		if word := t.NormalizeWord(piece); word != "" {
			words = append(words, word)
		}
	}
	return words
}

// NormalizeWord trims surrounding whitespace, removes every strip character
// and lowercases the result.
func (t *Tokenizer) NormalizeWord(word string) string {
	word = strings.TrimSpace(word)
	if t.stripChars != "" && strings.ContainsAny(word, t.stripChars) {
		word = strings.Map(func(r rune) rune {
			if strings.ContainsRune(t.stripChars, r) {
				return -1
			}
			return r
		}, word)
		// Quotes may have been shielding whitespace.
		word = strings.TrimSpace(word)
	}
	return strings.ToLower(word)
}
