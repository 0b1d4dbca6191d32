package markov

import (
	"fmt"
	"io"
	"slices"
	"sort"
	"strings"
)

// Link is one observed transition out of a word. A Link with no words is
// the End marker: the sentence may stop after the word it belongs to.
// Otherwise it holds the next one to WordLength words that followed.
type Link struct {
	words []string
}

// End is the link recorded after the last word of a sentence.
var End = Link{}

// Continuation returns a link to the given words.
func Continuation(words ...string) Link {
	if len(words) == 0 {
		return End
	}
	return Link{words: slices.Clone(words)}
}

// IsEnd reports whether l is the End marker.
func (l Link) IsEnd() bool {
	return len(l.words) == 0
}

// Words returns a copy of the words l continues with. It is nil for End.
func (l Link) Words() []string {
	return slices.Clone(l.words)
}

// Last returns the final word of a continuation, or "" for End.
func (l Link) Last() string {
	if l.IsEnd() {
		return ""
	}
	return l.words[len(l.words)-1]
}

// Equal reports whether l and other are the same link.
func (l Link) Equal(other Link) bool {
	return slices.Equal(l.words, other.words)
}

func (l Link) String() string {
	if l.IsEnd() {
		return "<END>"
	}
	return strings.Join(l.words, " ")
}

// Model is a word-transition table built from source text. It is never
// modified after construction and is safe for concurrent use.
type Model struct {
	wordLength    int
	sentences     int
	startingWords []string
	links         map[string][]Link
}

// Build tokenizes text with the default Tokenizer and builds a model whose
// continuations hold up to wordLength words.
func Build(text string, wordLength int) (*Model, error) {
	return BuildWithTokenizer(NewTokenizer(), text, wordLength)
}

// BuildFromSources joins the sources with a newline, which is a sentence
// boundary, and builds a model from the result.
func BuildFromSources(sources []string, wordLength int) (*Model, error) {
	return Build(strings.Join(sources, "\n"), wordLength)
}

// BuildFromReader reads r to the end and builds a model from its contents.
func BuildFromReader(r io.Reader, wordLength int) (*Model, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("could not read source text: %w", err)
	}
	return Build(string(data), wordLength)
}

// BuildWithTokenizer builds a model using a custom tokenizer. Any text is
// accepted; text without words yields an empty model.
func BuildWithTokenizer(t *Tokenizer, text string, wordLength int) (*Model, error) {
	if wordLength < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidWordLength, wordLength)
	}

	m := &Model{
		wordLength: wordLength,
		links:      make(map[string][]Link),
	}
	for _, sentence := range t.SplitSentences(text) {
		m.addSentence(t.SplitWords(sentence))
	}
	return m, nil
}

// addSentence records the starting word of a sentence and one link per word.
// Continuations are cut short at the end of the sentence, so they never span
// two sentences.
func (m *Model) addSentence(words []string) {
	if len(words) == 0 {
		return
	}
	m.sentences++
	m.startingWords = append(m.startingWords, words[0])

	last := len(words) - 1
	for i, word := range words {
		if i == last {
			m.links[word] = append(m.links[word], End)
			continue
		}
		end := min(i+m.wordLength, last)
		m.links[word] = append(m.links[word], Link{words: slices.Clip(words[i+1 : end+1])})
	}
}

// WordLength returns the maximum number of words in a continuation.
func (m *Model) WordLength() int {
	return m.wordLength
}

// Empty reports whether the model has no starting words.
func (m *Model) Empty() bool {
	return len(m.startingWords) == 0
}

// StartingWords returns the first word of every source sentence, in source
// order. Duplicates are kept, so frequent openers are picked more often.
func (m *Model) StartingWords() []string {
	return slices.Clone(m.startingWords)
}

// Links returns the links observed after word, in observation order.
func (m *Model) Links(word string) []Link {
	return slices.Clone(m.links[word])
}

// Contains reports whether word appears anywhere in the source text.
func (m *Model) Contains(word string) bool {
	_, ok := m.links[word]
	return ok
}

// Vocabulary returns every distinct word of the model, sorted.
func (m *Model) Vocabulary() []string {
	words := make([]string, 0, len(m.links))
	for word := range m.links {
		words = append(words, word)
	}
	sort.Strings(words)
	return words
}
