/*
Package markov builds word-transition models from plain text and uses them to
generate new sentences.

A Model is built once from source text and is read-only afterwards, so a
single Model can be shared by any number of goroutines. Each word in the model
maps to the links observed after it: either an End marker, meaning a sentence
may stop there, or a continuation of up to WordLength words.

A Generator walks a Model to produce sentences. Generate fans the work out to
one or more workers, optionally keeps only sentences containing a set of
required words, and returns once the requested number has been collected.
*/
package markov
