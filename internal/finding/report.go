package finding

import (
	"fmt"
	"sort"
	"strings"

	"github.com/shaneholloman/ultimate-bug-scanner/internal/common"
)

// Note records degraded coverage: a matcher that faulted internally and
// was isolated instead of aborting the run.
type Note struct {
	Matcher string
	Message string
}

// Totals aggregates finding counts per severity for summary output.
type Totals struct {
	Info     int
	Medium   int
	High     int
	Critical int
}

// Report is the ordered finding sequence for one unit. It is append-only
// while matchers run and sealed (sorted, deduplicated) by the aggregator.
type Report struct {
	UnitID   string
	Dialect  string
	Findings []Finding
	Notes    []Note
}

// Add appends a finding.
func (r *Report) Add(f Finding) {
	r.Findings = append(r.Findings, f)
}

// AddNote records a degraded-coverage note.
func (r *Report) AddNote(matcher, message string) {
	r.Notes = append(r.Notes, Note{Matcher: matcher, Message: message})
}

// Len returns the number of findings.
func (r *Report) Len() int { return len(r.Findings) }

// IsClean reports whether the report carries no findings at all.
func (r *Report) IsClean() bool { return common.IsEmpty(r.Findings) }

// HasCategory reports whether any finding is tagged with the category.
func (r *Report) HasCategory(c Category) bool {
	for i := range r.Findings {
		if r.Findings[i].Category == c {
			return true
		}
	}

	return false
}

// ByCategory returns the findings tagged with the category, in report order.
func (r *Report) ByCategory(c Category) []Finding {
	var out []Finding
	for i := range r.Findings {
		if r.Findings[i].Category == c {
			out = append(out, r.Findings[i])
		}
	}

	return out
}

// Totals counts findings per severity.
func (r *Report) Totals() Totals {
	var t Totals
	for i := range r.Findings {
		switch r.Findings[i].Severity {
		case SeverityInfo:
			t.Info++
		case SeverityMedium:
			t.Medium++
		case SeverityHigh:
			t.High++
		case SeverityCritical:
			t.Critical++
		}
	}

	return t
}

// Sort orders findings by span start, then severity descending, then
// span end and category ascending for full determinism.
func (r *Report) Sort() {
	sort.SliceStable(r.Findings, func(i, j int) bool {
		fi, fj := r.Findings[i], r.Findings[j]
		if fi.Span.Start != fj.Span.Start {
			return fi.Span.Start < fj.Span.Start
		}

		if fi.Severity != fj.Severity {
			return fi.Severity > fj.Severity
		}

		if fi.Span.End != fj.Span.End {
			return fi.Span.End < fj.Span.End
		}

		return fi.Category < fj.Category
	})
}

// Dedup drops findings whose (category, span) pair repeats, keeping the
// first occurrence. Matchers are independent, so two of them reporting
// the same span under the same category is one defect, not two.
func (r *Report) Dedup() {
	seen := make(map[string]bool, len(r.Findings))
	kept := r.Findings[:0]

	for _, f := range r.Findings {
		key := fmt.Sprintf("%s:%s", f.Category, f.Span)
		if seen[key] {
			continue
		}

		seen[key] = true
		kept = append(kept, f)
	}

	r.Findings = kept
}

// String renders the report deterministically, one finding per line,
// followed by coverage notes if any.
func (r *Report) String() string {
	var b strings.Builder

	fmt.Fprintf(&b, "unit %s (%s): %d finding(s)\n", r.UnitID, r.Dialect, len(r.Findings))
	for i := range r.Findings {
		b.WriteString("  ")
		b.WriteString(r.Findings[i].String())
		b.WriteByte('\n')
	}

	for _, n := range r.Notes {
		fmt.Fprintf(&b, "  note: matcher %s degraded: %s\n", n.Matcher, n.Message)
	}

	return b.String()
}
