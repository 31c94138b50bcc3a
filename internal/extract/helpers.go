package extract

import (
	"regexp"
	"strings"

	"github.com/shaneholloman/ultimate-bug-scanner/internal/common"
)

var (
	reAssignTarget = regexp.MustCompile(`([A-Za-z_][A-Za-z0-9_]*)\s*=\s*$`)
	reDeclTarget   = regexp.MustCompile(`[\s*&>]([A-Za-z_][A-Za-z0-9_]*)\s*$`)
	reIdent        = regexp.MustCompile(`[A-Za-z_][A-Za-z0-9_]*`)
)

// statementStart returns the offset just past the previous statement
// boundary (';', '{', '}' or a newline ending a preprocessor line).
func statementStart(text string, off int) int {
	for i := off - 1; i >= 0; i-- {
		switch text[i] {
		case ';', '{', '}':
			return i + 1
		}
	}

	return 0
}

// assignTargetBefore recovers the variable a value expression at off is
// being bound to, looking only at the current statement:
// "x = <expr>" and "type *x = <expr>" both yield "x".
func assignTargetBefore(text string, off int) string {
	prefix := text[statementStart(text, off):off]

	if m := reAssignTarget.FindStringSubmatch(prefix); m != nil {
		return m[1]
	}

	return ""
}

// declTargetBefore recovers a declared variable name from the statement
// prefix ending at off, e.g. "std::future<int> fut" yields "fut".
func declTargetBefore(text string, off int) string {
	prefix := strings.TrimRight(text[statementStart(text, off):off], " \t\n")
	prefix = strings.TrimSuffix(prefix, "=")
	prefix = strings.TrimRight(prefix, " \t\n")

	if m := reDeclTarget.FindStringSubmatch(" " + prefix); m != nil {
		return m[1]
	}

	return ""
}

// matchParen returns the offset of the ')' balancing the '(' at open,
// or -1 when the text runs out first.
func matchParen(text string, open int) int {
	depth := 0
	for i := open; i < len(text); i++ {
		switch text[i] {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return i
			}
		}
	}

	return -1
}

// argSpans locates the arguments between '(' at open and its balancing
// ')', split on top-level commas, each span trimmed of surrounding
// whitespace. Returns nil when unbalanced.
func argSpans(text string, open int) [][2]int {
	close := matchParen(text, open)
	if close == -1 {
		return nil
	}

	trim := func(s, e int) [2]int {
		for s < e && isSpaceByte(text[s]) {
			s++
		}
		for e > s && isSpaceByte(text[e-1]) {
			e--
		}

		return [2]int{s, e}
	}

	var (
		spans [][2]int
		depth int
		start = open + 1
	)

	for i := open + 1; i < close; i++ {
		switch text[i] {
		case '(', '[', '{':
			depth++
		case ')', ']', '}':
			depth--
		case ',':
			if depth == 0 {
				spans = append(spans, trim(start, i))
				start = i + 1
			}
		}
	}

	tail := trim(start, close)
	if tail[0] != tail[1] || len(spans) > 0 {
		spans = append(spans, tail)
	}

	return spans
}

// splitArgs splits the argument list between '(' at open and its
// balancing ')' on top-level commas. Returns nil when unbalanced.
func splitArgs(text string, open int) []string {
	spans := argSpans(text, open)

	var args []string
	for _, s := range spans {
		args = append(args, text[s[0]:s[1]])
	}

	return args
}

func isSpaceByte(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

// lastIdent extracts the final identifier component of an lvalue
// expression: "b.data" -> "data", "obj->buf" -> "buf",
// "b.data.data()" -> "data" (trailing calls are dropped).
func lastIdent(expr string) string {
	expr = strings.TrimSpace(expr)

	idents := reIdent.FindAllString(expr, -1)

	last, ok := common.Last(idents)
	if !ok {
		return ""
	}

	// Drop a trailing accessor call such as .data() or .get(): the
	// handle is the owning object's member, not the accessor.
	if len(idents) > 1 && strings.Contains(expr, last+"(") {
		return idents[len(idents)-2]
	}

	return last
}

// wordIndex finds the offsets of word-boundary occurrences of name in text.
func wordIndex(text, name string) []int {
	re := regexp.MustCompile(`\b` + regexp.QuoteMeta(name) + `\b`)

	var out []int
	for _, loc := range re.FindAllStringIndex(text, -1) {
		out = append(out, loc[0])
	}

	return out
}
