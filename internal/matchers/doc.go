// Package matchers provides the six category matchers, one per entry
// in the defect catalogue.
//
// Every matcher is a pure function over an immutable fact set: it reads
// the facts, never mutates them, and emits zero or more findings. The
// matchers are mutually independent, which is what lets the aggregator
// fan them out in parallel without synchronization.
//
// Ambiguity policy: a construct a matcher cannot classify under its
// stated rule is not flagged. The catalogue trades recall on
// adversarial code for a low false-positive rate on everything else.
package matchers
