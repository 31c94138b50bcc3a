package source

import "fmt"

// Span is a half-open byte range [Start, End) within one unit's text.
type Span struct {
	Start int
	End   int
}

// NewSpan builds a span, normalizing an inverted range.
func NewSpan(start, end int) Span {
	if end < start {
		start, end = end, start
	}

	return Span{Start: start, End: end}
}

// Len returns the number of bytes the span covers.
func (s Span) Len() int {
	return s.End - s.Start
}

// IsZero reports whether the span is the zero value.
func (s Span) IsZero() bool {
	return s.Start == 0 && s.End == 0
}

// Cover returns the smallest span containing both s and other.
func (s Span) Cover(other Span) Span {
	if other.IsZero() {
		return s
	}

	if s.IsZero() {
		return other
	}

	out := s
	if other.Start < out.Start {
		out.Start = other.Start
	}

	if other.End > out.End {
		out.End = other.End
	}

	return out
}

// Contains reports whether offset lies inside the span.
func (s Span) Contains(offset int) bool {
	return s.Start <= offset && offset < s.End
}

// Before orders spans by start offset, then by end offset.
func (s Span) Before(other Span) bool {
	if s.Start != other.Start {
		return s.Start < other.Start
	}

	return s.End < other.End
}

// String returns the span in "start..end" byte-offset form.
func (s Span) String() string {
	return fmt.Sprintf("%d..%d", s.Start, s.End)
}

// Pos is a 1-based line/column position.
type Pos struct {
	Line int
	Col  int
}

// String returns the position in "line:col" form.
func (p Pos) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Col)
}
