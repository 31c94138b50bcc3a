package matchers

import (
	"github.com/shaneholloman/ultimate-bug-scanner/internal/fact"
	"github.com/shaneholloman/ultimate-bug-scanner/internal/finding"
)

// Matcher is one category detector over an immutable fact set.
type Matcher interface {
	// Name identifies the matcher in degraded-coverage notes.
	Name() string

	// Category is the single catalogue entry this matcher reports.
	Category() finding.Category

	// Match scans the fact set once and returns its findings.
	// Implementations must not retain or mutate the set.
	Match(set *fact.Set) []finding.Finding
}

// All returns the full matcher catalogue in fixed registration order.
// The order is part of the engine's determinism contract.
func All() []Matcher {
	return []Matcher{
		ConcurrencyLeak{},
		Ownership{},
		LockBalance{},
		DestructorException{},
		MacroHygiene{},
		AsyncErrorPropagation{},
	}
}
