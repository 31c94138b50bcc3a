// Package verdict runs the matcher catalogue over a fact set and seals
// the resulting report.
//
// Key capabilities:
//   - fans out the independent matchers as parallel tasks and joins them
//     before any merging happens;
//   - isolates a faulting matcher: a panic becomes a degraded-coverage
//     note on the report, never a crash of the run;
//   - seals the merged findings deterministically: ruleset filtering,
//     duplicate (category, span) removal, then the canonical ordering.
package verdict
