// Package fixture parses the corpus labeling convention
// "{category}/{buggy|clean}/{name}" used by the test harness to carry
// expected ground truth alongside a source unit.
package fixture

import (
	"fmt"
	"strings"

	"github.com/shaneholloman/ultimate-bug-scanner/internal/finding"
)

// Expectation is the ground-truth label of a fixture.
type Expectation uint8

const (
	ExpectUnknown Expectation = iota
	ExpectBuggy
	ExpectClean
)

// String returns the label segment for the expectation.
func (e Expectation) String() string {
	switch e {
	case ExpectBuggy:
		return "buggy"
	case ExpectClean:
		return "clean"
	default:
		return "unknown"
	}
}

// Label is a parsed fixture label.
type Label struct {
	Category    finding.Category
	Expectation Expectation
	Name        string
}

// ParseLabel parses "{category}/{buggy|clean}/{name}". The name segment
// may itself contain slashes; category and expectation may not.
func ParseLabel(s string) (Label, error) {
	parts := strings.SplitN(s, "/", 3)
	if len(parts) != 3 {
		return Label{}, fmt.Errorf("fixture label %q: want {category}/{buggy|clean}/{name}", s)
	}

	cat := finding.ParseCategory(parts[0])
	if cat == finding.CategoryUnknown {
		return Label{}, fmt.Errorf("fixture label %q: unknown category %q", s, parts[0])
	}

	var exp Expectation
	switch parts[1] {
	case "buggy":
		exp = ExpectBuggy
	case "clean":
		exp = ExpectClean
	default:
		return Label{}, fmt.Errorf("fixture label %q: expectation must be buggy or clean, got %q", s, parts[1])
	}

	if parts[2] == "" {
		return Label{}, fmt.Errorf("fixture label %q: empty fixture name", s)
	}

	return Label{Category: cat, Expectation: exp, Name: parts[2]}, nil
}

// Satisfied checks a report against the label's ground truth:
// a buggy fixture needs at least one finding in its category, a clean
// fixture must be silent across the whole catalogue.
func (l Label) Satisfied(r *finding.Report) bool {
	switch l.Expectation {
	case ExpectBuggy:
		return r.HasCategory(l.Category)
	case ExpectClean:
		for _, c := range finding.Categories() {
			if r.HasCategory(c) {
				return false
			}
		}

		return true
	default:
		return false
	}
}
