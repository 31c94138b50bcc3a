package extract

import (
	"regexp"
	"strings"

	"github.com/shaneholloman/ultimate-bug-scanner/internal/fact"
)

var reAsyncExpr = regexp.MustCompile(`\bstd::async\s*\(`)

// scanAsync records asynchronous task sites and whether their result
// handle is ever queried for its value before the scope ends.
// .get() and .wait() count as queries; .valid() does not, since it
// checks the handle without surfacing the task's outcome.
func scanAsync(sc *scanCtx) {
	text := sc.text

	for _, loc := range reAsyncExpr.FindAllStringIndex(text, -1) {
		off := loc[0]
		open := loc[1] - 1

		callClose := matchParen(text, open)
		if callClose == -1 {
			sc.add(fact.Fact{
				Kind:   fact.KindParseError,
				Span:   spanOfLine(sc.unit, off),
				Reason: "unterminated std::async call",
			})

			continue
		}

		handle := assignTargetBefore(text, off)
		if handle == "" {
			handle = declTargetBefore(text, off)
		}

		queried := false
		guarded := false

		// Immediate chain on the temporary: std::async(...).get()
		tail := text[callClose+1:]
		if i := indexNonSpace(tail); i != -1 && strings.HasPrefix(tail[i:], ".") {
			rest := strings.TrimSpace(tail[i+1:])
			if strings.HasPrefix(rest, "get") || strings.HasPrefix(rest, "wait") {
				queried = true
				guarded = sc.trk.inTryAt(callClose)
			}
		}

		if !queried && handle != "" {
			if q := sc.queryOf(handle, callClose); q != -1 {
				queried = true
				guarded = sc.trk.inTryAt(q)
			}
		}

		sc.add(fact.Fact{
			Kind:    fact.KindAsyncTaskSite,
			Span:    spanOfLine(sc.unit, off),
			Handle:  handle,
			Queried: queried,
			Guarded: guarded,
		})
	}
}

// queryOf finds the first .get()/.wait() on the handle after off within
// the same function scope, returning its offset or -1.
func (sc *scanCtx) queryOf(handle string, off int) int {
	fnIdx := sc.trk.funcBlockAt(off)
	if fnIdx == -1 {
		return -1
	}

	b := sc.trk.blocks[fnIdx]
	body := sc.text[b.open+1 : b.close]

	re := regexp.MustCompile(`\b` + regexp.QuoteMeta(handle) + `\s*\.\s*(get|wait)\s*\(`)

	for _, loc := range re.FindAllStringIndex(body, -1) {
		abs := b.open + 1 + loc[0]
		if abs > off {
			return abs
		}
	}

	return -1
}
