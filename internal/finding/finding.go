package finding

import (
	"fmt"

	"github.com/shaneholloman/ultimate-bug-scanner/internal/common"
	"github.com/shaneholloman/ultimate-bug-scanner/internal/source"
)

// Severity represents the severity level of a finding.
type Severity uint8

const (
	SeverityInfo Severity = iota
	SeverityMedium
	SeverityHigh
	SeverityCritical
)

// String returns a human-readable severity name.
func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "info"
	case SeverityMedium:
		return "medium"
	case SeverityHigh:
		return "high"
	case SeverityCritical:
		return "critical"
	default:
		return common.UnknownStr
	}
}

// ParseSeverity maps a severity name back to its value.
func ParseSeverity(name string) (Severity, error) {
	for s := SeverityInfo; s <= SeverityCritical; s++ {
		if s.String() == name {
			return s, nil
		}
	}

	return SeverityInfo, fmt.Errorf("unknown severity %q", name)
}

// Finding is one detection result. Evidence holds indices into the
// owning unit's fact set; every index refers to a fact that contributed
// to the detection.
type Finding struct {
	Category Category
	Severity Severity
	Span     source.Span
	Message  string
	Evidence []int
}

// String renders a finding in "span [severity] category: message" form.
func (f Finding) String() string {
	return fmt.Sprintf("%s [%s] %s: %s", f.Span, f.Severity, f.Category, f.Message)
}
