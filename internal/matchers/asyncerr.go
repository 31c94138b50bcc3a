package matchers

import (
	"fmt"

	"github.com/shaneholloman/ultimate-bug-scanner/internal/fact"
	"github.com/shaneholloman/ultimate-bug-scanner/internal/finding"
)

// AsyncErrorPropagation flags async task handles that are never queried:
// an exception raised in the task body travels with the handle, and a
// handle dropped without .get()/.wait() loses it silently. A queried
// handle never flags; whether the query sits under a handler is left to
// the reader (an unguarded query is ambiguous, not wrong).
type AsyncErrorPropagation struct{}

func (AsyncErrorPropagation) Name() string               { return "async-error-propagation" }
func (AsyncErrorPropagation) Category() finding.Category { return finding.CategoryAsync }

func (AsyncErrorPropagation) Match(set *fact.Set) []finding.Finding {
	var out []finding.Finding

	for _, i := range set.ByKind(fact.KindAsyncTaskSite) {
		f := set.At(i)
		if f.Queried {
			continue
		}

		handle := f.Handle
		if handle == "" {
			handle = "<temporary>"
		}

		out = append(out, finding.Finding{
			Category: finding.CategoryAsync,
			Severity: finding.SeverityHigh,
			Span:     f.Span,
			Message:  fmt.Sprintf("discarded async result: %s is never queried, errors in the task body are lost", handle),
			Evidence: []int{i},
		})
	}

	return out
}
