// Package source provides the immutable input model for one analysis pass.
//
// Key types:
//   - Unit: identifier + raw text + declared dialect, read-only after construction
//   - Span: half-open byte-offset range within a unit
//   - Pos: 1-based line/column derived from an offset
//   - Dialect: the language family a unit declares (or is classified as)
package source
