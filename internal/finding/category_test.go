package finding

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCategoryRoundTrip(t *testing.T) {
	for _, c := range Categories() {
		assert.Equal(t, c, ParseCategory(c.String()))
	}

	assert.Equal(t, CategoryUnknown, ParseCategory("made_up"))
	assert.Equal(t, "unknown", CategoryUnknown.String())
}

func TestSeverityRoundTrip(t *testing.T) {
	for s := SeverityInfo; s <= SeverityCritical; s++ {
		got, err := ParseSeverity(s.String())
		assert.NoError(t, err)
		assert.Equal(t, s, got)
	}

	_, err := ParseSeverity("fatal")
	assert.Error(t, err)
}

func TestCategorySet(t *testing.T) {
	s := CategorySetNone.With(CategoryMacro).With(CategoryAsync)

	assert.True(t, s.Has(CategoryMacro))
	assert.True(t, s.Has(CategoryAsync))
	assert.False(t, s.Has(CategoryOwnership))

	for _, c := range Categories() {
		assert.True(t, CategorySetAll.Has(c), "all-set must include %s", c)
	}

	assert.False(t, CategorySetAll.Has(CategoryUnknown))
}

func TestFindingString(t *testing.T) {
	f := Finding{
		Category: CategoryAsync,
		Severity: SeverityHigh,
		Message:  "discarded async result",
	}
	f.Span.Start, f.Span.End = 7, 20

	assert.Equal(t, "7..20 [high] async_errors: discarded async result", f.String())
}
