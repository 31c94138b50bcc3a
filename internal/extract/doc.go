// Package extract implements the structural extractor: it turns one
// source unit into a bounded, ordered set of typed facts.
//
// Extraction is bounded structural scanning, not grammar parsing. A
// sanitizer blanks comments and literal bodies so braces and keywords
// inside them cannot confuse the scanners, a block tracker recovers the
// function/branch/loop structure from brace nesting, and a fixed list
// of per-construct scanners recognizes the catalogued pattern
// vocabulary (allocations, locks, thread spawns, destructors, macros,
// async tasks, copies, raised conditions).
//
// Unrecognizable constructs become parse-error facts; extraction always
// continues for the rest of the unit.
package extract
