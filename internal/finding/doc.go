// Package finding provides the detection result model: categories,
// severities, findings with fact evidence, and the ordered Report.
//
// Key capabilities:
//   - Closed category set mirroring the defect catalogue
//   - Deterministic report ordering (span start, then severity descending)
//   - Exact (category, span) deduplication across matchers
//   - Per-severity totals for summary output
package finding
