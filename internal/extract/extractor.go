package extract

import (
	"sort"

	"github.com/shaneholloman/ultimate-bug-scanner/internal/fact"
	"github.com/shaneholloman/ultimate-bug-scanner/internal/source"
)

// scanCtx bundles everything a construct scanner needs: the unit, its
// sanitized text, the block tracker, and the output buffer.
type scanCtx struct {
	unit  *source.Unit
	text  string // sanitized
	trk   *tracker
	facts []fact.Fact
}

// add appends a fact, filling in its flow context from the tracker.
func (sc *scanCtx) add(f fact.Fact) {
	if f.Ctx.Func == "" && len(f.Ctx.Path) == 0 {
		f.Ctx = sc.trk.contextAt(f.Span.Start)
	}

	sc.facts = append(sc.facts, f)
}

// Extract produces the fact set for one unit. It never fails: units the
// scanners cannot make sense of yield parse-error facts, and extraction
// continues past them.
func Extract(unit *source.Unit) *fact.Set {
	dialect := unit.Dialect()
	if dialect == source.DialectUnknown {
		dialect = source.DetectDialect(unit.Text())
	}

	set := fact.NewSet(unit.ID(), dialect)

	if !dialect.IsCFamily() {
		set.Add(fact.Fact{
			Kind:   fact.KindParseError,
			Span:   source.NewSpan(0, unit.Len()),
			Reason: "unit dialect is not in the C family; no structural scanners apply",
		})

		return set
	}

	sanitized, openComment := sanitize(unit.Text())
	trk := newTracker(sanitized)

	sc := &scanCtx{unit: unit, text: sanitized, trk: trk}

	if openComment {
		sc.add(fact.Fact{
			Kind:   fact.KindParseError,
			Span:   source.NewSpan(unit.Len(), unit.Len()),
			Reason: "unterminated block comment",
		})
	}

	if trk.unbalanced {
		sc.add(fact.Fact{
			Kind:   fact.KindParseError,
			Span:   source.NewSpan(0, unit.Len()),
			Reason: "unbalanced braces; flow contexts are best-effort",
		})
	}

	scanMemory(sc)
	scanAllocAliases(sc)
	scanCopies(sc)
	scanThreads(sc)
	scanLocks(sc)
	scanDestructors(sc)
	scanMacros(sc)
	scanAsync(sc)
	scanExits(sc)

	// Insertion order must equal source order regardless of which
	// scanner saw a construct first.
	sort.SliceStable(sc.facts, func(i, j int) bool {
		return sc.facts[i].Span.Before(sc.facts[j].Span)
	})

	resolveCopyTargets(sc.facts)

	for _, f := range sc.facts {
		set.Add(f)
	}

	return set
}

// resolveCopyTargets links each copy site to the capacity fact of its
// destination: the nearest preceding allocation with the same handle,
// falling back to any allocation with that handle.
func resolveCopyTargets(facts []fact.Fact) {
	for i := range facts {
		if facts[i].Kind != fact.KindCopySite {
			continue
		}

		facts[i].DstFact = -1

		for j := range facts {
			if facts[j].Kind != fact.KindAllocationSite || facts[j].Handle != facts[i].Handle {
				continue
			}

			if facts[j].Span.Start < facts[i].Span.Start {
				facts[i].DstFact = j
			} else if facts[i].DstFact == -1 {
				facts[i].DstFact = j
			}
		}
	}
}
