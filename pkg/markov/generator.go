package markov

import (
	"io"
	"log/slog"
	"math/rand/v2"
	"sync/atomic"
)

// Source is the random source used for every pick during generation.
// *rand.Rand satisfies it.
type Source interface {
	// IntN returns a uniformly distributed int in [0, n). It panics if n <= 0.
	IntN(n int) int
}

// Generator is the main entry point for producing sentences from a Model.
// It holds the model, a logger and the seed used to derive random sources.
type Generator struct {
	model  *Model
	logger *slog.Logger
	seeded bool
	seed   uint64
	stream atomic.Uint64
}

// NewGenerator creates a Generator for the given model. Sources are seeded
// randomly until SetSeed is called.
func NewGenerator(model *Model) *Generator {
	return &Generator{
		model:  model,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

// SetLogger sets the logger for the Generator. By default, all logs are discarded.
func (g *Generator) SetLogger(logger *slog.Logger) {
	if logger != nil {
		g.logger = logger
	}
}

// SetSeed makes the sources handed out by NewSource deterministic. Every
// source gets its own PCG stream derived from seed, so a sequential run
// repeats exactly for the same seed. SetSeed must not be called while a
// Generate call is in progress.
func (g *Generator) SetSeed(seed uint64) {
	g.seeded = true
	g.seed = seed
	g.stream.Store(0)
}

// Model returns the model the generator walks.
func (g *Generator) Model() *Model {
	return g.model
}

// NewSource returns a fresh random source. A source must not be shared
// between goroutines.
func (g *Generator) NewSource() *rand.Rand {
	if g.seeded {
		return rand.New(rand.NewPCG(g.seed, g.stream.Add(1)-1))
	}
	return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
}
