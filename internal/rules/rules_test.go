package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shaneholloman/ultimate-bug-scanner/internal/finding"
)

func TestParse(t *testing.T) {
	yaml := `
version: "2"
categories:
  - concurrency
  - lock_balance
min_severity: medium
severity_overrides:
  lock_balance: critical
`

	cfg, err := Parse([]byte(yaml))
	require.NoError(t, err)

	assert.Equal(t, "2", cfg.Version)
	assert.True(t, cfg.Enabled.Has(finding.CategoryConcurrency))
	assert.True(t, cfg.Enabled.Has(finding.CategoryLockBalance))
	assert.False(t, cfg.Enabled.Has(finding.CategoryMacro))
	assert.Equal(t, finding.SeverityMedium, cfg.MinSeverity)
	assert.Equal(t, finding.SeverityCritical, cfg.Overrides[finding.CategoryLockBalance])
}

func TestParseDefaults(t *testing.T) {
	cfg, err := Parse([]byte("version: \"1\"\n"))
	require.NoError(t, err)

	for _, c := range finding.Categories() {
		assert.True(t, cfg.Enabled.Has(c), "category %s enabled by default", c)
	}

	assert.Equal(t, finding.SeverityInfo, cfg.MinSeverity)
	assert.Empty(t, cfg.Overrides)
}

func TestParseErrors(t *testing.T) {
	cases := []struct {
		name string
		yaml string
	}{
		{"not yaml", ":\n  - ]["},
		{"unknown category", "categories: [made_up]"},
		{"unknown severity", "min_severity: fatal"},
		{"unknown override category", "severity_overrides:\n  made_up: high"},
		{"unknown override severity", "severity_overrides:\n  macro: fatal"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse([]byte(tc.yaml))
			assert.Error(t, err)
		})
	}
}

func TestApply(t *testing.T) {
	cfg := Default()
	cfg.Enabled = finding.CategorySetNone.With(finding.CategoryOwnership)
	cfg.MinSeverity = finding.SeverityHigh
	cfg.Overrides = map[finding.Category]finding.Severity{
		finding.CategoryOwnership: finding.SeverityCritical,
	}

	// Disabled category is dropped outright.
	_, ok := cfg.Apply(finding.Finding{Category: finding.CategoryMacro, Severity: finding.SeverityCritical})
	assert.False(t, ok)

	// Override lifts a medium finding over the floor.
	got, ok := cfg.Apply(finding.Finding{Category: finding.CategoryOwnership, Severity: finding.SeverityMedium})
	require.True(t, ok)
	assert.Equal(t, finding.SeverityCritical, got.Severity)
}

func TestApplySeverityFloor(t *testing.T) {
	cfg := Default()
	cfg.MinSeverity = finding.SeverityHigh

	_, ok := cfg.Apply(finding.Finding{Category: finding.CategoryMacro, Severity: finding.SeverityMedium})
	assert.False(t, ok)

	_, ok = cfg.Apply(finding.Finding{Category: finding.CategoryMacro, Severity: finding.SeverityHigh})
	assert.True(t, ok)
}
