package markov

import (
	"go/build"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"testing"
)

const fishCorpus = "one fish two fish. red fish blue fish."

// buildTestModel builds a model from text and fails the test on error.
func buildTestModel(t testing.TB, text string, wordLength int) *Model {
	t.Helper()
	m, err := Build(text, wordLength)
	if err != nil {
		t.Fatalf("Build(%q, %d) error = %v", text, wordLength, err)
	}
	return m
}

// setupTestGenerator is a convenience helper that builds a model and a seeded Generator.
func setupTestGenerator(t testing.TB, text string, wordLength int) *Generator {
	t.Helper()
	g := NewGenerator(buildTestModel(t, text, wordLength))
	g.SetSeed(42)
	return g
}

// checkSentence verifies that sentence is a walk the model could have
// produced: a starting word followed by whole link word sequences, ending on
// a word that has an End link or no links at all.
func checkSentence(t *testing.T, m *Model, sentence string) {
	t.Helper()
	if !strings.HasSuffix(sentence, ".") {
		t.Errorf("sentence %q does not end with a period", sentence)
		return
	}
	words := strings.Split(strings.TrimSuffix(sentence, "."), " ")
	first := strings.ToLower(words[0])
	if words[0] != capitalize(first) {
		t.Errorf("sentence %q does not start with a capitalized word", sentence)
	}
	if !contains(m.StartingWords(), first) {
		t.Errorf("sentence %q starts with %q, which is not a starting word", sentence, first)
	}
	if !followsLinks(m, first, words[1:]) {
		t.Errorf("sentence %q is not a walk through the model's links (wordLength %d)", sentence, m.WordLength())
	}
}

// followsLinks reports whether rest can be split into continuation links,
// each drawn from the links of the previous link's last word.
func followsLinks(m *Model, prev string, rest []string) bool {
	links := m.Links(prev)
	if len(rest) == 0 {
		return len(links) == 0 || hasLink(links, End)
	}
	for _, l := range links {
		w := l.Words()
		if l.IsEnd() || len(w) > len(rest) || !slices.Equal(w, rest[:len(w)]) {
			continue
		}
		if followsLinks(m, l.Last(), rest[len(w):]) {
			return true
		}
	}
	return false
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func hasLink(links []Link, want Link) bool {
	for _, l := range links {
		if l.Equal(want) {
			return true
		}
	}
	return false
}

var (
	benchmarkCorpus string
	corpusOnce      sync.Once
)

// createBenchmarkCorpus reads Go source files to create a corpus for benchmarking.
func createBenchmarkCorpus() string {
	corpusOnce.Do(func() {
		var sb strings.Builder
		goRoot := build.Default.GOROOT
		filesToRead := []string{
			filepath.Join(goRoot, "src/net/http/server.go"),
			filepath.Join(goRoot, "src/go/parser/parser.go"),
			filepath.Join(goRoot, "src/encoding/json/encode.go"),
		}

		for _, file := range filesToRead {
			content, err := os.ReadFile(file)
			if err != nil {
				benchmarkCorpus = "this is a fallback corpus for benchmarking. it is not very long but will prevent a crash. "
				return
			}
			sb.Write(content)
			sb.WriteString("\n")
		}
		benchmarkCorpus = sb.String()
	})
	return benchmarkCorpus
}
