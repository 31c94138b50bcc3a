package source

import "testing"

func TestSpanBasics(t *testing.T) {
	s := NewSpan(12, 34)

	if s.Len() != 22 {
		t.Errorf("Len() = %d, want 22", s.Len())
	}

	if s.String() != "12..34" {
		t.Errorf("String() = %q, want %q", s.String(), "12..34")
	}

	if s.IsZero() {
		t.Error("IsZero() = true for a non-zero span")
	}

	if !(Span{}).IsZero() {
		t.Error("IsZero() = false for the zero span")
	}
}

func TestSpanCover(t *testing.T) {
	cases := []struct {
		name string
		a, b Span
		want Span
	}{
		{"disjoint", NewSpan(0, 5), NewSpan(10, 20), NewSpan(0, 20)},
		{"nested", NewSpan(0, 20), NewSpan(5, 10), NewSpan(0, 20)},
		{"overlap", NewSpan(5, 15), NewSpan(10, 25), NewSpan(5, 25)},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.a.Cover(tc.b); got != tc.want {
				t.Errorf("Cover() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestSpanContainsAndBefore(t *testing.T) {
	s := NewSpan(10, 20)

	if !s.Contains(10) || !s.Contains(19) {
		t.Error("Contains() must include the start and the last offset")
	}

	if s.Contains(20) {
		t.Error("Contains() must exclude the end offset")
	}

	if !NewSpan(1, 5).Before(NewSpan(2, 3)) {
		t.Error("Before() must order by start first")
	}

	if !NewSpan(1, 3).Before(NewSpan(1, 5)) {
		t.Error("Before() must break start ties by end")
	}
}
