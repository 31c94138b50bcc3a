package fixture

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shaneholloman/ultimate-bug-scanner/internal/finding"
	"github.com/shaneholloman/ultimate-bug-scanner/internal/source"
)

func TestParseLabel(t *testing.T) {
	l, err := ParseLabel("concurrency/buggy/detached_loop")
	require.NoError(t, err)

	assert.Equal(t, finding.CategoryConcurrency, l.Category)
	assert.Equal(t, ExpectBuggy, l.Expectation)
	assert.Equal(t, "detached_loop", l.Name)
}

func TestParseLabelNestedName(t *testing.T) {
	l, err := ParseLabel("macro/clean/nested/path.cpp")
	require.NoError(t, err)

	assert.Equal(t, ExpectClean, l.Expectation)
	assert.Equal(t, "nested/path.cpp", l.Name)
}

func TestParseLabelErrors(t *testing.T) {
	cases := []string{
		"",
		"concurrency",
		"concurrency/buggy",
		"nonsense/buggy/x",
		"concurrency/maybe/x",
		"concurrency/buggy/",
	}

	for _, s := range cases {
		t.Run(s, func(t *testing.T) {
			_, err := ParseLabel(s)
			assert.Error(t, err)
		})
	}
}

func TestLabelSatisfied(t *testing.T) {
	flagged := &finding.Report{
		Findings: []finding.Finding{
			{Category: finding.CategoryOwnership, Severity: finding.SeverityMedium, Span: source.NewSpan(0, 5)},
		},
	}
	quiet := &finding.Report{}

	buggy := Label{Category: finding.CategoryOwnership, Expectation: ExpectBuggy}
	assert.True(t, buggy.Satisfied(flagged))
	assert.False(t, buggy.Satisfied(quiet))

	// Buggy in a different category is not satisfied by this finding.
	otherBuggy := Label{Category: finding.CategoryMacro, Expectation: ExpectBuggy}
	assert.False(t, otherBuggy.Satisfied(flagged))

	clean := Label{Category: finding.CategoryOwnership, Expectation: ExpectClean}
	assert.True(t, clean.Satisfied(quiet))
	assert.False(t, clean.Satisfied(flagged))
}
