package matchers

import (
	"fmt"

	"github.com/shaneholloman/ultimate-bug-scanner/internal/fact"
	"github.com/shaneholloman/ultimate-bug-scanner/internal/finding"
)

// Ownership covers raw-memory lifecycle defects: deallocation form that
// disagrees with the allocation form, raw heap ownership that escapes or is
// dropped, and unbounded copies into fixed-capacity buffers.
type Ownership struct{}

func (Ownership) Name() string               { return "ownership" }
func (Ownership) Category() finding.Category { return finding.CategoryOwnership }

func (m Ownership) Match(set *fact.Set) []finding.Finding {
	var out []finding.Finding

	out = append(out, m.matchDeallocations(set)...)
	out = append(out, m.matchEscapes(set)...)
	out = append(out, m.matchCopies(set)...)

	return out
}

// matchDeallocations pairs each deallocation with the nearest preceding
// allocation of the same handle and flags array-ness disagreement.
func (Ownership) matchDeallocations(set *fact.Set) []finding.Finding {
	var out []finding.Finding

	allocs := set.ByKind(fact.KindAllocationSite)

	for _, di := range set.ByKind(fact.KindDeallocationSite) {
		dealloc := set.At(di)
		if dealloc.Handle == "" {
			continue
		}

		ai := pairedAlloc(set, allocs, dealloc)
		if ai < 0 {
			continue // no visible allocation, nothing to compare against
		}

		alloc := set.At(ai)
		if !alloc.Heap || alloc.Array == dealloc.Array {
			continue
		}

		form := "delete"
		if alloc.Array {
			form = "delete[]"
		}

		out = append(out, finding.Finding{
			Category: finding.CategoryOwnership,
			Severity: finding.SeverityCritical,
			Span:     dealloc.Span,
			Message:  fmt.Sprintf("mismatched deallocation of %q: allocation form requires %s", dealloc.Handle, form),
			Evidence: []int{ai, di},
		})
	}

	return out
}

// matchEscapes flags raw heap ownership that either escapes the allocating
// function via return or is never released anywhere in the unit. Owning
// wrappers (unique_ptr, shared_ptr, make_unique) suppress both forms.
func (Ownership) matchEscapes(set *fact.Set) []finding.Finding {
	var out []finding.Finding

	deallocs := set.ByKind(fact.KindDeallocationSite)

	for _, ai := range set.ByKind(fact.KindAllocationSite) {
		alloc := set.At(ai)
		if !alloc.Heap || alloc.Owned {
			continue
		}

		if alloc.Returned {
			out = append(out, finding.Finding{
				Category: finding.CategoryOwnership,
				Severity: finding.SeverityMedium,
				Span:     alloc.Span,
				Message:  fmt.Sprintf("raw heap allocation %q escapes via return without an owning wrapper", alloc.Handle),
				Evidence: []int{ai},
			})

			continue
		}

		if alloc.Handle == "" || releasedAnywhere(set, deallocs, alloc.Handle) {
			continue
		}

		out = append(out, finding.Finding{
			Category: finding.CategoryOwnership,
			Severity: finding.SeverityMedium,
			Span:     alloc.Span,
			Message:  fmt.Sprintf("heap allocation %q is never deallocated", alloc.Handle),
			Evidence: []int{ai},
		})
	}

	return out
}

// matchCopies flags unbounded copy primitives into destinations with a known
// capacity. A literal source that provably fits suppresses; an unconstrained
// source or an oversized literal does not.
func (Ownership) matchCopies(set *fact.Set) []finding.Finding {
	var out []finding.Finding

	for _, ci := range set.ByKind(fact.KindCopySite) {
		copyFact := set.At(ci)
		if copyFact.Bounded || copyFact.DstFact < 0 {
			continue
		}

		dst := set.At(copyFact.DstFact)
		if !dst.HasCapacity() {
			continue
		}

		// SourceLen excludes the terminator, capacity must hold it too.
		if copyFact.SourceLen >= 0 && copyFact.SourceLen < dst.Capacity {
			continue
		}

		msg := fmt.Sprintf("unbounded copy into %q (capacity %d) with unconstrained source", copyFact.Handle, dst.Capacity)
		if copyFact.SourceLen >= 0 {
			msg = fmt.Sprintf("unbounded copy into %q: %d-byte literal exceeds capacity %d",
				copyFact.Handle, copyFact.SourceLen, dst.Capacity)
		}

		out = append(out, finding.Finding{
			Category: finding.CategoryOwnership,
			Severity: finding.SeverityCritical,
			Span:     copyFact.Span,
			Message:  msg,
			Evidence: []int{copyFact.DstFact, ci},
		})
	}

	return out
}

// pairedAlloc returns the index of the nearest allocation of the same handle
// preceding the deallocation within the same function, or -1.
func pairedAlloc(set *fact.Set, allocs []int, dealloc *fact.Fact) int {
	best := -1

	for _, ai := range allocs {
		alloc := set.At(ai)
		if alloc.Handle != dealloc.Handle || !alloc.Ctx.SameFunc(dealloc.Ctx) {
			continue
		}

		if alloc.Span.Start > dealloc.Span.Start {
			break // facts are position-ordered
		}

		best = ai
	}

	return best
}

func releasedAnywhere(set *fact.Set, deallocs []int, handle string) bool {
	for _, di := range deallocs {
		if set.At(di).Handle == handle {
			return true
		}
	}

	return false
}
