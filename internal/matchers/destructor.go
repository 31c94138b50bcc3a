package matchers

import (
	"fmt"

	"github.com/shaneholloman/ultimate-bug-scanner/internal/fact"
	"github.com/shaneholloman/ultimate-bug-scanner/internal/finding"
)

// DestructorException flags destructors that can raise. Raising during
// stack unwinding from another in-flight exception terminates the
// program, so any throw the destructor does not locally absorb is fatal.
type DestructorException struct{}

func (DestructorException) Name() string               { return "destructor-exception" }
func (DestructorException) Category() finding.Category { return finding.CategoryDestructor }

func (DestructorException) Match(set *fact.Set) []finding.Finding {
	var out []finding.Finding

	for _, i := range set.ByKind(fact.KindDestructorDecl) {
		f := set.At(i)
		if !f.Throws {
			continue
		}

		out = append(out, finding.Finding{
			Category: finding.CategoryDestructor,
			Severity: finding.SeverityCritical,
			Span:     f.Span,
			Message:  fmt.Sprintf("destructor may raise: ~%s throws without a local handler", f.Handle),
			Evidence: []int{i},
		})
	}

	return out
}
