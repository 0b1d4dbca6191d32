package markov

import (
	"context"
	"log/slog"
	"runtime"
	"strings"
	"unicode"
	"unicode/utf8"
)

// DefaultMaxAttempts is the attempt budget used by Generate unless
// WithMaxAttempts overrides it.
const DefaultMaxAttempts = 1_000_000

// generateOptions Is used by the generate functions to configure default options.
type generateOptions struct {
	count         int
	requiredWords []string
	parallel      bool
	workers       int
	maxAttempts   int
	maxWords      int
}

// GenerateOption is a function that configures generation parameters. It's used
// as a variadic argument in Generate and Sentence.
type GenerateOption func(*generateOptions)

// WithCount sets the number of sentences Generate returns. Default: 1
func WithCount(n int) GenerateOption {
	return func(o *generateOptions) { o.count = n }
}

// WithRequiredWords keeps only sentences that contain every given word.
// Matching is case-insensitive and ignores order and repetition.
func WithRequiredWords(words ...string) GenerateOption {
	return func(o *generateOptions) { o.requiredWords = words }
}

// WithParallel runs one worker per available processor when enabled, and a
// single worker otherwise. A count set with WithWorkers takes precedence.
func WithParallel(parallel bool) GenerateOption {
	return func(o *generateOptions) { o.parallel = parallel }
}

// WithWorkers sets an explicit worker count, regardless of WithParallel and
// of option order. Values below 1 are ignored.
func WithWorkers(n int) GenerateOption {
	return func(o *generateOptions) {
		if n > 0 {
			o.workers = n
		}
	}
}

// WithMaxAttempts caps the number of sentences the required-word filter may
// reject across all workers in one Generate call. Accepted sentences do not
// count, so the cap never applies without required words. When the cap is
// hit before enough sentences are accepted, Generate returns ErrNoMatchFound.
// A value of 0 or less removes the cap.
func WithMaxAttempts(n int) GenerateOption {
	return func(o *generateOptions) { o.maxAttempts = n }
}

// WithMaxWords stops a sentence once it holds at least n words. A value of 0
// or less lets sentences run until an End link is drawn.
func WithMaxWords(n int) GenerateOption {
	return func(o *generateOptions) { o.maxWords = n }
}

func newGenerateOptions(opts []GenerateOption) *generateOptions {
	options := &generateOptions{
		count:       1,
		maxAttempts: DefaultMaxAttempts,
	}
	for _, opt := range opts {
		opt(options)
	}
	if options.workers == 0 {
		options.workers = 1
		if options.parallel {
			options.workers = runtime.GOMAXPROCS(0)
		}
	}
	return options
}

// Sentence performs one random walk through the model using src for every
// pick. The first word is capitalized and the sentence always ends with a
// period. It returns ErrEmptyModel if the model has no starting words.
// Only WithMaxWords affects a single sentence; other options are ignored.
func (g *Generator) Sentence(ctx context.Context, src Source, opts ...GenerateOption) (string, error) {
	return g.sentence(ctx, src, newGenerateOptions(opts))
}

// sentence contains the main loop for generating one sentence.
func (g *Generator) sentence(ctx context.Context, src Source, options *generateOptions) (string, error) {
	starts := g.model.startingWords
	if len(starts) == 0 {
		return "", ErrEmptyModel
	}

	prev := starts[src.IntN(len(starts))]
	var builder strings.Builder
	builder.WriteString(capitalize(prev))
	wordCount := 1

	for {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		default:
		}

		if options.maxWords > 0 && wordCount >= options.maxWords {
			g.logger.DebugContext(ctx, "Generation terminated by reaching maxWords",
				slog.Int("max_words", options.maxWords),
				slog.Int("generated_length", wordCount),
			)
			break
		}

		choices := g.model.links[prev]
		if len(choices) == 0 { // Dead end in chain
			g.logger.DebugContext(ctx, "Generation terminated due to dead-end",
				slog.String("last_word", prev),
				slog.Int("generated_length", wordCount),
			)
			break
		}

		link := choices[src.IntN(len(choices))]
		if link.IsEnd() {
			g.logger.DebugContext(ctx, "Generation terminated by End link",
				slog.Int("generated_length", wordCount),
			)
			break
		}

		for _, word := range link.words {
			builder.WriteByte(' ')
			builder.WriteString(word)
		}
		wordCount += len(link.words)
		prev = link.Last()
	}

	builder.WriteByte('.')
	return builder.String(), nil
}

// capitalize upper-cases the first rune of word.
func capitalize(word string) string {
	r, size := utf8.DecodeRuneInString(word)
	if r == utf8.RuneError {
		return word
	}
	upper := unicode.ToUpper(r)
	if upper == r {
		return word
	}
	return string(upper) + word[size:]
}
