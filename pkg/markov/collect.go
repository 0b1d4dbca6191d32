package markov

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"sync/atomic"
)

// sentencePool is the shared result pool. It is the only state workers
// mutate, and every access goes through mu.
type sentencePool struct {
	mu        sync.Mutex
	target    int
	sentences []string
}

// add appends s unless the pool is already full. It reports whether the pool
// has reached its target.
func (p *sentencePool) add(s string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.sentences) >= p.target {
		return true
	}
	p.sentences = append(p.sentences, s)
	return len(p.sentences) >= p.target
}

// result returns the last target sentences in append order, and whether the
// pool was filled.
func (p *sentencePool) result() ([]string, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.sentences) < p.target {
		return nil, false
	}
	return append([]string(nil), p.sentences[len(p.sentences)-p.target:]...), true
}

// Generate produces sentences until the requested count has been accepted
// and returns them in the order they entered the pool.
//
// Configure it with WithCount, WithRequiredWords, WithParallel or WithWorkers,
// WithMaxAttempts and WithMaxWords. Every worker has its own random source and
// generates independently; workers only synchronize when appending to the
// shared pool. With more than one worker, which sentence ends up in which
// position is not reproducible, even after SetSeed.
//
// Generate returns ErrEmptyModel for a model without starting words, and
// ErrNoMatchFound when a required word is not in the vocabulary or the
// filter rejects more sentences than the attempt budget allows. If ctx is cancelled first, ctx.Err() is returned.
func (g *Generator) Generate(ctx context.Context, opts ...GenerateOption) ([]string, error) {
	options := newGenerateOptions(opts)
	if g.model.Empty() {
		return nil, ErrEmptyModel
	}
	if options.count <= 0 {
		return []string{}, nil
	}

	required := normalizeRequired(options.requiredWords)
	for _, word := range required {
		if !g.model.Contains(word) {
			return nil, fmt.Errorf("%w: %q is not in the model vocabulary", ErrNoMatchFound, word)
		}
	}

	workCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	pool := &sentencePool{
		target:    options.count,
		sentences: make([]string, 0, options.count),
	}
	var attempts, rejected atomic.Int64
	var exhausted atomic.Bool
	var wg sync.WaitGroup

	for i := 0; i < options.workers; i++ {
		src := g.NewSource()
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-workCtx.Done():
					return
				default:
				}

				sentence, err := g.sentence(workCtx, src, options)
				if err != nil {
					// Only cancellation can fail here; the model was checked above.
					return
				}
				attempts.Add(1)
				if !containsAll(sentence, required) {
					if n := rejected.Add(1); options.maxAttempts > 0 && n >= int64(options.maxAttempts) {
						exhausted.Store(true)
						cancel()
						return
					}
					continue
				}
				if pool.add(sentence) {
					cancel()
					return
				}
			}
		}()
	}
	wg.Wait()

	if sentences, ok := pool.result(); ok {
		g.logger.InfoContext(ctx, "Sentences generated",
			slog.Int("count", len(sentences)),
			slog.Int("workers", options.workers),
			slog.Int64("attempts", attempts.Load()),
			slog.Any("required_words", required),
		)
		return sentences, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if exhausted.Load() {
		return nil, fmt.Errorf("%w after %d rejected attempts", ErrNoMatchFound, rejected.Load())
	}
	return nil, errors.New("markov: generation stopped before the pool was filled")
}

// normalizeRequired lowercases and trims the required words, dropping empty
// and duplicate entries.
func normalizeRequired(words []string) []string {
	seen := make(map[string]struct{}, len(words))
	required := make([]string, 0, len(words))
	for _, word := range words {
		word = strings.ToLower(strings.TrimSpace(word))
		if word == "" {
			continue
		}
		if _, ok := seen[word]; ok {
			continue
		}
		seen[word] = struct{}{}
		required = append(required, word)
	}
	return required
}

// containsAll reports whether every required word is one of the sentence's
// space-separated words. The terminating period is not part of the last word.
func containsAll(sentence string, required []string) bool {
	if len(required) == 0 {
		return true
	}
	words := strings.Split(strings.ToLower(strings.TrimSuffix(sentence, ".")), " ")
	set := make(map[string]struct{}, len(words))
	for _, word := range words {
		set[word] = struct{}{}
	}
	for _, word := range required {
		if _, ok := set[word]; !ok {
			return false
		}
	}
	return true
}
