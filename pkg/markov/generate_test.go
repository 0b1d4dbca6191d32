package markov

import (
	"context"
	"errors"
	"testing"
)

func TestSentence(t *testing.T) {
	ctx := context.Background()

	testCases := []struct {
		name       string
		text       string
		wordLength int
		opts       []GenerateOption
		expected   string
	}{
		{
			name:       "Single path",
			text:       "The cat sat.",
			wordLength: 1,
			expected:   "The cat sat.",
		},
		{
			name:       "Multi word continuation",
			text:       "A B C D.",
			wordLength: 2,
			expected:   "A b c d.",
		},
		{
			name:       "Stopped by max words",
			text:       "a b a b a b.",
			wordLength: 1,
			opts:       []GenerateOption{WithMaxWords(2)},
			expected:   "A b.",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			g := setupTestGenerator(t, tc.text, tc.wordLength)
			got, err := g.Sentence(ctx, g.NewSource(), tc.opts...)
			if err != nil {
				t.Fatalf("Sentence failed: %v", err)
			}
			if got != tc.expected {
				t.Errorf("expected %q, got %q", tc.expected, got)
			}
		})
	}
}

func TestSentenceDeadEnd(t *testing.T) {
	m := &Model{
		wordLength:    1,
		startingWords: []string{"a"},
		links:         map[string][]Link{"a": {Continuation("b")}},
	}
	g := NewGenerator(m)

	got, err := g.Sentence(context.Background(), g.NewSource())
	if err != nil {
		t.Fatalf("Sentence failed: %v", err)
	}
	if got != "A b." {
		t.Errorf("expected %q, got %q", "A b.", got)
	}
}

func TestSentenceEmptyModel(t *testing.T) {
	g := setupTestGenerator(t, "", 1)
	if _, err := g.Sentence(context.Background(), g.NewSource()); !errors.Is(err, ErrEmptyModel) {
		t.Errorf("expected ErrEmptyModel, got %v", err)
	}
}

func TestSentenceCancelled(t *testing.T) {
	g := setupTestGenerator(t, fishCorpus, 1)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := g.Sentence(ctx, g.NewSource()); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestSentenceFollowsModel(t *testing.T) {
	text := "the cat sat on the mat. the dog sat on the cat! a bird flew over the dog? the end"

	for _, wordLength := range []int{1, 2, 3} {
		g := setupTestGenerator(t, text, wordLength)
		src := g.NewSource()

		for i := 0; i < 200; i++ {
			s, err := g.Sentence(context.Background(), src)
			if err != nil {
				t.Fatalf("Sentence failed: %v", err)
			}
			checkSentence(t, g.Model(), s)
		}
	}
}

func TestSentenceSeeded(t *testing.T) {
	text := "the cat sat on the mat. the dog sat on the cat! a bird flew over the dog?"
	g1 := setupTestGenerator(t, text, 1)
	g2 := setupTestGenerator(t, text, 1)
	src1, src2 := g1.NewSource(), g2.NewSource()

	for i := 0; i < 50; i++ {
		s1, err1 := g1.Sentence(context.Background(), src1)
		s2, err2 := g2.Sentence(context.Background(), src2)
		if err1 != nil || err2 != nil {
			t.Fatalf("Sentence failed: %v, %v", err1, err2)
		}
		if s1 != s2 {
			t.Fatalf("sentence %d differs for the same seed: %q vs %q", i, s1, s2)
		}
	}
}

func TestCapitalize(t *testing.T) {
	testCases := map[string]string{
		"the":  "The",
		"The":  "The",
		"élan": "Élan",
		"1st":  "1st",
		"":     "",
	}
	for in, want := range testCases {
		if got := capitalize(in); got != want {
			t.Errorf("capitalize(%q) = %q, want %q", in, got, want)
		}
	}
}

func BenchmarkSentence(b *testing.B) {
	corpus := createBenchmarkCorpus()
	g := setupTestGenerator(b, corpus, 1)
	src := g.NewSource()
	ctx := context.Background()

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		s, err := g.Sentence(ctx, src, WithMaxWords(50))
		b.SetBytes(int64(len(s)))
		if err != nil {
			b.Fatalf("Sentence() failed: %v", err)
		}
	}
}
