package matchers

import (
	"fmt"

	"github.com/shaneholloman/ultimate-bug-scanner/internal/fact"
	"github.com/shaneholloman/ultimate-bug-scanner/internal/finding"
)

// LockBalance checks every manual lock acquisition against the exit
// points of its enclosing function: each exit reachable from the acquire
// must be preceded by a release of the same mutex whose block encloses
// the exit. Guard-object acquisitions are scope-bound and never flag.
type LockBalance struct{}

func (LockBalance) Name() string               { return "lock-balance" }
func (LockBalance) Category() finding.Category { return finding.CategoryLockBalance }

func (LockBalance) Match(set *fact.Set) []finding.Finding {
	var out []finding.Finding

	releases := set.ByKind(fact.KindLockRelease)
	exits := set.ByKind(fact.KindScopeExit)

	for _, ai := range set.ByKind(fact.KindLockAcquire) {
		acq := set.At(ai)
		if acq.Guarded {
			continue
		}

		var uncovered []int

		for _, ei := range exits {
			ex := set.At(ei)
			if !acq.Ctx.SameFunc(ex.Ctx) || ex.Span.Start < acq.Span.Start {
				continue
			}

			if !acq.Ctx.Reachable(ex.Ctx) {
				continue // exit sits on a branch the acquire never takes
			}

			if !coveredExit(set, releases, acq, ex) {
				uncovered = append(uncovered, ei)
			}
		}

		if len(uncovered) == 0 {
			continue
		}

		out = append(out, finding.Finding{
			Category: finding.CategoryLockBalance,
			Severity: finding.SeverityHigh,
			Span:     acq.Span,
			Message:  fmt.Sprintf("unbalanced lock: %q can reach a scope exit while still held", acq.Handle),
			Evidence: append([]int{ai}, uncovered...),
		})
	}

	return out
}

// coveredExit reports whether some release of the acquire's mutex sits
// between the acquire and the exit on a block that encloses the exit.
func coveredExit(set *fact.Set, releases []int, acq, ex *fact.Fact) bool {
	for _, ri := range releases {
		rel := set.At(ri)
		if rel.Handle != acq.Handle || !rel.Ctx.SameFunc(acq.Ctx) {
			continue
		}

		if rel.Span.Start <= acq.Span.Start || rel.Span.Start > ex.Span.Start {
			continue
		}

		if rel.Ctx.AncestorOf(ex.Ctx) {
			return true
		}
	}

	return false
}
