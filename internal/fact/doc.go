// Package fact defines the typed fact vocabulary the extractor produces
// and the matchers consume.
//
// Each fact kind is a tagged variant over a closed set, exhaustively
// switched by the matchers, rather than a polymorphic hierarchy: adding
// a defect category means adding a variant case and one matcher.
//
// Key types:
//   - Kind: the variant tag (allocation, deallocation, thread spawn, ...)
//   - Fact: one structural observation with its span and flow context
//   - Set: the ordered, append-only fact sequence for one unit
//   - FlowContext: which function/branch/loop a fact sits in
package fact
