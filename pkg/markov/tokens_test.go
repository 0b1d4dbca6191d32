package markov

import (
	"reflect"
	"strings"
	"testing"
)

func TestSplitSentences(t *testing.T) {
	tok := NewTokenizer()

	testCases := []struct {
		name     string
		text     string
		expected []string
	}{
		{name: "Empty", text: "", expected: []string{""}},
		{name: "No delimiter", text: "a b c", expected: []string{"a b c"}},
		{name: "All delimiters", text: "a. b? c! d\ne", expected: []string{"a", " b", " c", " d", "e"}},
		{name: "Consecutive delimiters", text: "wait...what?!", expected: []string{"wait", "", "", "what", "", ""}},
		{name: "Trailing delimiter", text: "The cat sat.", expected: []string{"The cat sat", ""}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := tok.SplitSentences(tc.text)
			if !reflect.DeepEqual(got, tc.expected) {
				t.Errorf("SplitSentences(%q) = %q, want %q", tc.text, got, tc.expected)
			}
		})
	}
}

func TestSplitWords(t *testing.T) {
	tok := NewTokenizer()

	testCases := []struct {
		name     string
		sentence string
		expected []string
	}{
		{name: "Simple", sentence: "The Cat sat", expected: []string{"the", "cat", "sat"}},
		{name: "Extra spaces", sentence: "  a   b ", expected: []string{"a", "b"}},
		{name: "Quotes removed", sentence: `"Hello" she said "quietly"`, expected: []string{"hello", "she", "said", "quietly"}},
		{name: "Quote only piece", sentence: `a " b`, expected: []string{"a", "b"}},
		{name: "Quoted whitespace", sentence: "\"\tword\"", expected: []string{"word"}},
		{name: "Punctuation kept", sentence: "well, then", expected: []string{"well,", "then"}},
		{name: "Empty", sentence: "", expected: []string{}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := tok.SplitWords(tc.sentence)
			if !reflect.DeepEqual(got, tc.expected) {
				t.Errorf("SplitWords(%q) = %q, want %q", tc.sentence, got, tc.expected)
			}
		})
	}
}

func TestTokenizerOptions(t *testing.T) {
	tok := NewTokenizer(WithSentenceDelimiters(";"), WithSeparator(","), WithStripChars("*"))

	sentences := tok.SplitSentences("a,*B*;c.d")
	if len(sentences) != 2 {
		t.Fatalf("expected 2 sentences, got %q", sentences)
	}
	if got := tok.SplitWords(sentences[0]); !reflect.DeepEqual(got, []string{"a", "b"}) {
		t.Errorf("expected [a b], got %q", got)
	}
	if got := tok.SplitWords(sentences[1]); !reflect.DeepEqual(got, []string{"c.d"}) {
		t.Errorf("expected [c.d], got %q", got)
	}
}

func TestStoredTokensAreNormalized(t *testing.T) {
	text := "  \"Quoted\" WORDS here.\n\tTabbed  \"START\" of line! \" \"  "
	m := buildTestModel(t, text, 2)

	for _, word := range m.Vocabulary() {
		if word == "" {
			t.Error("found an empty token")
		}
		if strings.ContainsRune(word, '"') {
			t.Errorf("token %q contains a double quote", word)
		}
		if strings.TrimSpace(word) != word {
			t.Errorf("token %q has surrounding whitespace", word)
		}
		if strings.ToLower(word) != word {
			t.Errorf("token %q is not lowercase", word)
		}
	}
}
