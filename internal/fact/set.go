package fact

import "github.com/shaneholloman/ultimate-bug-scanner/internal/source"

// Set is the ordered fact sequence for one unit. Insertion order is
// source order; the set is append-only during extraction and read-only
// once handed to the matchers.
type Set struct {
	unitID  string
	dialect source.Dialect
	facts   []Fact
}

// NewSet creates an empty set for the given unit.
func NewSet(unitID string, dialect source.Dialect) *Set {
	return &Set{unitID: unitID, dialect: dialect}
}

// UnitID returns the owning unit's identifier.
func (s *Set) UnitID() string { return s.unitID }

// Dialect returns the dialect the facts were extracted under.
func (s *Set) Dialect() source.Dialect { return s.dialect }

// Add appends a fact and returns its index within the set.
func (s *Set) Add(f Fact) int {
	s.facts = append(s.facts, f)
	return len(s.facts) - 1
}

// Len returns the number of facts.
func (s *Set) Len() int { return len(s.facts) }

// At returns a pointer to the fact at index i. The pointer is only valid
// for reading; matchers must not mutate facts.
func (s *Set) At(i int) *Fact {
	return &s.facts[i]
}

// ByKind returns the indices of all facts of the given kind, in source order.
func (s *Set) ByKind(k Kind) []int {
	var out []int
	for i := range s.facts {
		if s.facts[i].Kind == k {
			out = append(out, i)
		}
	}

	return out
}

// Facts returns the underlying fact slice. Callers must treat it as
// read-only; it points at the set's internal storage.
func (s *Set) Facts() []Fact {
	return s.facts
}
