package matchers

import (
	"fmt"
	"strings"

	"github.com/shaneholloman/ultimate-bug-scanner/internal/fact"
	"github.com/shaneholloman/ultimate-bug-scanner/internal/finding"
)

// MacroHygiene judges macro definitions, not call sites: a function-like
// macro whose body uses a parameter unparenthesized is flagged no matter
// how benignly it happens to be invoked, and object-like definitions
// that shadow reserved conditional-compilation symbols are noted.
type MacroHygiene struct{}

func (MacroHygiene) Name() string               { return "macro-hygiene" }
func (MacroHygiene) Category() finding.Category { return finding.CategoryMacro }

func (MacroHygiene) Match(set *fact.Set) []finding.Finding {
	var out []finding.Finding

	for _, i := range set.ByKind(fact.KindMacroDef) {
		f := set.At(i)

		switch {
		case f.FunctionLike && len(f.BareParams) > 0:
			out = append(out, finding.Finding{
				Category: finding.CategoryMacro,
				Severity: finding.SeverityMedium,
				Span:     f.Span,
				Message: fmt.Sprintf("macro %s uses parameter %s without parentheses in its body",
					f.Handle, strings.Join(f.BareParams, ", ")),
				Evidence: []int{i},
			})
		case !f.FunctionLike && f.ReservedShadow:
			out = append(out, finding.Finding{
				Category: finding.CategoryMacro,
				Severity: finding.SeverityInfo,
				Span:     f.Span,
				Message:  fmt.Sprintf("macro %s redefines a reserved conditional-compilation symbol", f.Handle),
				Evidence: []int{i},
			})
		}
	}

	return out
}
