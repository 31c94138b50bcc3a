package source

import (
	"strings"

	"github.com/shaneholloman/ultimate-bug-scanner/internal/common"
)

// Dialect is the language family a unit belongs to. The extractor's
// structural scanners are dialect-gated: only C-family units go through
// the full catalogue.
type Dialect uint8

const (
	DialectUnknown Dialect = iota
	DialectC
	DialectCPP

	dialectCount
)

// String returns a human-readable dialect name.
func (d Dialect) String() string {
	switch d {
	case DialectUnknown:
		return common.UnknownStr
	case DialectC:
		return "c"
	case DialectCPP:
		return "cpp"
	default:
		return common.UnknownStr
	}
}

// IsCFamily reports whether the dialect is scanned by the C-family extractors.
func (d Dialect) IsCFamily() bool {
	return d == DialectC || d == DialectCPP
}

// dialectHint is one weighted piece of classification evidence.
type dialectHint struct {
	needle  string
	dialect Dialect
	score   int
}

// Scored structural evidence, strongest signals first. Intentionally
// shallow: classification only has to separate C from C++ from
// everything else, not identify arbitrary languages.
var dialectHints = []dialectHint{
	{"std::", DialectCPP, 6},
	{"template <", DialectCPP, 5},
	{"template<", DialectCPP, 5},
	{"::", DialectCPP, 2},
	{"class ", DialectCPP, 3},
	{"namespace ", DialectCPP, 5},
	{"#include <iostream>", DialectCPP, 6},
	{"#include <stdio.h>", DialectC, 5},
	{"#include <stdlib.h>", DialectC, 5},
	{"#include <", DialectC, 2},
	{"->", DialectC, 1},
	{"printf(", DialectC, 2},
	{"malloc(", DialectC, 4},
}

// DetectDialect classifies text by accumulating scored evidence per
// dialect and picking the dominant one. Text with no C-family signal at
// all stays DialectUnknown.
func DetectDialect(text string) Dialect {
	var scores [dialectCount]int

	for _, h := range dialectHints {
		if n := strings.Count(text, h.needle); n > 0 {
			scores[h.dialect] += h.score * n
		}
	}

	best := DialectUnknown
	bestScore := 0
	for d := DialectC; d < dialectCount; d++ {
		if scores[d] > bestScore {
			best, bestScore = d, scores[d]
		}
	}

	return best
}
