package extract

import (
	"regexp"
	"strings"

	"github.com/shaneholloman/ultimate-bug-scanner/internal/fact"
)

var (
	reThreadExpr  = regexp.MustCompile(`\bstd::thread\b`)
	reEmplaceCall = regexp.MustCompile(`\.\s*emplace_back\s*\(|\.\s*push_back\s*\(`)
	reDetachCall  = regexp.MustCompile(`\.\s*detach\s*\(`)
	reJoinCall    = regexp.MustCompile(`\.\s*join\s*\(`)
)

// scanThreads records thread spawn sites: whether the spawn is
// detached, whether a join obligation is retained in the spawning
// function, and whether the spawned body is an unbounded loop.
func scanThreads(sc *scanCtx) {
	text := sc.text

	for _, loc := range reThreadExpr.FindAllStringIndex(text, -1) {
		off := loc[0]

		// Skip declarations like "std::vector<std::thread> workers;"
		// (the spawn is the emplace call, handled below) and bare
		// member/parameter declarations.
		rest := text[loc[1]:]
		openRel := strings.IndexAny(rest, "(;\n>")
		if openRel == -1 || rest[openRel] != '(' {
			continue
		}

		open := loc[1] + openRel
		callClose := matchParen(text, open)
		if callClose == -1 {
			sc.add(fact.Fact{
				Kind:   fact.KindParseError,
				Span:   spanOfLine(sc.unit, off),
				Reason: "unterminated std::thread constructor call",
			})

			continue
		}

		sc.add(sc.threadFact(off, open, callClose))
	}

	// Worker-pool style spawns: lambdas emplaced into a thread container.
	if !reThreadExpr.MatchString(text) {
		return
	}

	for _, loc := range reEmplaceCall.FindAllStringIndex(text, -1) {
		open := loc[1] - 1
		callClose := matchParen(text, open)
		if callClose == -1 {
			continue
		}

		if !sc.hasLambdaWithin(open, callClose) {
			continue
		}

		fnIdx := sc.trk.funcBlockAt(loc[0])
		if fnIdx == -1 || !threadVectorIn(sc, fnIdx) {
			continue
		}

		sc.add(sc.threadFact(loc[0], open, callClose))
	}
}

// threadFact builds one spawn fact from a spawn expression whose
// argument list spans (open, callClose).
func (sc *scanCtx) threadFact(off, open, callClose int) fact.Fact {
	text := sc.text

	detached := false
	joined := false

	// Chained calls on the temporary: std::thread(...).detach()
	tail := text[callClose+1:]
	if m := reDetachCall.FindStringIndex(tail); m != nil && m[0] == indexNonSpace(tail) {
		detached = true
	}

	// A join anywhere in the spawning function retains the obligation.
	if fnIdx := sc.trk.funcBlockAt(off); fnIdx != -1 {
		b := sc.trk.blocks[fnIdx]
		body := text[b.open+1 : b.close]
		joined = reJoinCall.MatchString(body)
		if !detached {
			detached = reDetachCall.MatchString(body) && !joined
		}
	}

	infinite, hasExit := sc.spawnedBodyShape(open, callClose)

	return fact.Fact{
		Kind:         fact.KindThreadSpawnSite,
		Span:         spanOfLine(sc.unit, off),
		Detached:     detached,
		Joined:       joined,
		InfiniteBody: infinite,
		HasExit:      hasExit,
	}
}

// spawnedBodyShape inspects the lambda passed to a spawn expression and
// reports whether its body is an unconditional unbounded loop and
// whether that loop has a reachable exit.
func (sc *scanCtx) spawnedBodyShape(open, callClose int) (infinite, hasExit bool) {
	for i := range sc.trk.blocks {
		b := &sc.trk.blocks[i]
		if b.kind != blockLambda || b.open <= open || b.open >= callClose {
			continue
		}

		for j := range sc.trk.blocks {
			loop := &sc.trk.blocks[j]
			if loop.kind == blockLoop && loop.parent == i && loop.infinite {
				return true, loop.hasExit
			}
		}
	}

	return false, false
}

// hasLambdaWithin reports whether a lambda block opens inside (open, close).
func (sc *scanCtx) hasLambdaWithin(open, close int) bool {
	for i := range sc.trk.blocks {
		b := &sc.trk.blocks[i]
		if b.kind == blockLambda && b.open > open && b.open < close {
			return true
		}
	}

	return false
}

// threadVectorIn reports whether the function declares a thread container.
func threadVectorIn(sc *scanCtx, fnIdx int) bool {
	b := sc.trk.blocks[fnIdx]
	body := sc.text[b.open+1 : b.close]

	return strings.Contains(body, "std::thread")
}

// indexNonSpace returns the offset of the first non-whitespace byte of
// s, or -1 when s is blank.
func indexNonSpace(s string) int {
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case ' ', '\t', '\n', '\r':
		default:
			return i
		}
	}

	return -1
}
