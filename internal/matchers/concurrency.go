package matchers

import (
	"github.com/shaneholloman/ultimate-bug-scanner/internal/fact"
	"github.com/shaneholloman/ultimate-bug-scanner/internal/finding"
)

// ConcurrencyLeak flags detached execution units that can never finish:
// the spawner has released its join obligation and the spawned body is
// an unconditional loop with no reachable exit.
type ConcurrencyLeak struct{}

func (ConcurrencyLeak) Name() string               { return "concurrency-leak" }
func (ConcurrencyLeak) Category() finding.Category { return finding.CategoryConcurrency }

func (ConcurrencyLeak) Match(set *fact.Set) []finding.Finding {
	var out []finding.Finding

	for _, i := range set.ByKind(fact.KindThreadSpawnSite) {
		f := set.At(i)

		if !f.Detached || f.Joined {
			continue // join obligation retained
		}

		if !f.InfiniteBody || f.HasExit {
			continue // bounded body, or the loop can terminate
		}

		out = append(out, finding.Finding{
			Category: finding.CategoryConcurrency,
			Severity: finding.SeverityCritical,
			Span:     f.Span,
			Message:  "runaway detached execution unit: detached thread body loops unconditionally with no reachable exit",
			Evidence: []int{i},
		})
	}

	return out
}
