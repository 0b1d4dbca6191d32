package markov

import "errors"

var (
	// ErrEmptyModel is returned when generation is requested from a model
	// that has no starting words.
	ErrEmptyModel = errors.New("markov: model has no starting words")
	// ErrNoMatchFound is returned when no sentence containing every required
	// word could be produced within the attempt budget, or when a required
	// word is not part of the model vocabulary at all.
	ErrNoMatchFound = errors.New("markov: no sentence matched the required words")
	// ErrInvalidWordLength is returned by the Build functions for a word
	// length below 1.
	ErrInvalidWordLength = errors.New("markov: word length must be at least 1")
)
