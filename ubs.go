// Package ubs is a defect-classification engine for C-family source
// text. It scans a source unit structurally, derives a flat set of
// facts, and runs a fixed catalogue of category matchers over them,
// producing an ordered, deterministic report of findings.
//
// Key capabilities:
//   - bounded structural extraction, no full grammar parsing: units the
//     scanners cannot fully make sense of degrade to parse-error facts,
//     never to a failed analysis;
//   - six independent defect categories (concurrency leaks, ownership,
//     lock balance, destructor exceptions, macro hygiene, async error
//     propagation), each evaluated in parallel over the same facts;
//   - deterministic output: findings ordered by position and severity,
//     duplicates collapsed, identical input always yields an identical
//     report;
//   - optional YAML ruleset to restrict categories, set a severity
//     floor, or override per-category severities.
//
// Analysis is a pure function of the unit text: calls share no state,
// so arbitrarily many units can be analyzed concurrently.
package ubs

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/shaneholloman/ultimate-bug-scanner/internal/extract"
	"github.com/shaneholloman/ultimate-bug-scanner/internal/finding"
	"github.com/shaneholloman/ultimate-bug-scanner/internal/matchers"
	"github.com/shaneholloman/ultimate-bug-scanner/internal/rules"
	"github.com/shaneholloman/ultimate-bug-scanner/internal/source"
	"github.com/shaneholloman/ultimate-bug-scanner/internal/verdict"
)

// Harness-visible data model, re-exported from the internal packages.
type (
	SourceUnit = source.Unit
	Dialect    = source.Dialect
	Span       = source.Span
	Pos        = source.Pos
	Report     = finding.Report
	Finding    = finding.Finding
	Category   = finding.Category
	Severity   = finding.Severity
)

// Dialect values accepted by NewSourceUnit.
const (
	DialectUnknown = source.DialectUnknown
	DialectC       = source.DialectC
	DialectCPP     = source.DialectCPP
)

// The defect catalogue.
const (
	CategoryConcurrency = finding.CategoryConcurrency
	CategoryOwnership   = finding.CategoryOwnership
	CategoryLockBalance = finding.CategoryLockBalance
	CategoryDestructor  = finding.CategoryDestructor
	CategoryMacro       = finding.CategoryMacro
	CategoryAsync       = finding.CategoryAsync
)

// Severity levels, ascending.
const (
	SeverityInfo     = finding.SeverityInfo
	SeverityMedium   = finding.SeverityMedium
	SeverityHigh     = finding.SeverityHigh
	SeverityCritical = finding.SeverityCritical
)

// NewSourceUnit wraps raw source text for analysis. Pass DialectUnknown
// to let the engine classify the text itself.
func NewSourceUnit(id, text string, dialect Dialect) *SourceUnit {
	return source.NewUnit(id, text, dialect)
}

type config struct {
	rules rules.Config
}

// Option adjusts one analysis call. Options never mutate shared state.
type Option func(*config) error

// WithRuleset applies a YAML ruleset (enabled categories, minimum
// severity, per-category severity overrides).
func WithRuleset(data []byte) Option {
	return func(c *config) error {
		cfg, err := rules.Parse(data)
		if err != nil {
			return err
		}

		c.rules = cfg

		return nil
	}
}

// WithCategories restricts the report to the given categories.
func WithCategories(categories ...Category) Option {
	return func(c *config) error {
		set := finding.CategorySetNone
		for _, cat := range categories {
			if cat <= finding.CategoryUnknown || int(cat) >= finding.CategoryTotal {
				return fmt.Errorf("unknown category %d", cat)
			}

			set = set.With(cat)
		}

		c.rules.Enabled = set

		return nil
	}
}

// WithMinSeverity drops findings below the given severity.
func WithMinSeverity(sev Severity) Option {
	return func(c *config) error {
		c.rules.MinSeverity = sev
		return nil
	}
}

// Analyze runs the full pipeline over one unit: extraction, the matcher
// catalogue, aggregation. It fails only on invalid options; defects in
// the unit itself always come back as findings or parse-error notes,
// never as an error.
func Analyze(ctx context.Context, unit *SourceUnit, opts ...Option) (Report, error) {
	cfg := config{rules: rules.Default()}
	for _, opt := range opts {
		if err := opt(&cfg); err != nil {
			return Report{}, fmt.Errorf("failed to configure analysis: %w", err)
		}
	}

	set := extract.Extract(unit)

	return verdict.Aggregate(ctx, set, cfg.rules, matchers.All()), nil
}

// AnalyzeAll analyzes the units in parallel. Units share no state, so
// the fan-out needs no synchronization beyond the final join; reports
// come back in input order regardless of completion order.
func AnalyzeAll(ctx context.Context, units []*SourceUnit, opts ...Option) ([]Report, error) {
	reports := make([]Report, len(units))

	g, gctx := errgroup.WithContext(ctx)

	for i, unit := range units {
		g.Go(func() error {
			report, err := Analyze(gctx, unit, opts...)
			if err != nil {
				return err
			}

			reports[i] = report

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return reports, nil
}
