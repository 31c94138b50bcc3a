package extract

import (
	"regexp"
	"strings"

	"github.com/shaneholloman/ultimate-bug-scanner/internal/fact"
)

// Copy primitives, split by whether they take an explicit capacity bound.
var (
	reCopyCall = regexp.MustCompile(`\b(?:std::)?(strcpy|strcat|sprintf|vsprintf|gets|strncpy|strncat|snprintf|vsnprintf|memcpy|memmove|fgets|strlcpy)\s*\(`)

	boundedCopy = map[string]bool{
		"strncpy":   true,
		"strncat":   true,
		"snprintf":  true,
		"vsnprintf": true,
		"memcpy":    true,
		"memmove":   true,
		"fgets":     true,
		"strlcpy":   true,
	}
)

// literalLen returns the decoded byte length of a quoted string
// literal. Every escape sequence counts as one byte, including hex and
// octal forms that span several source characters.
func literalLen(lit string) int {
	body := lit[1 : len(lit)-1]

	n := 0
	for i := 0; i < len(body); i++ {
		n++
		if body[i] != '\\' || i+1 == len(body) {
			continue
		}

		i++
		switch {
		case body[i] == 'x':
			for i+1 < len(body) && isHexByte(body[i+1]) {
				i++
			}
		case body[i] >= '0' && body[i] <= '7':
			for d := 1; d < 3 && i+1 < len(body) && body[i+1] >= '0' && body[i+1] <= '7'; d++ {
				i++
			}
		}
	}

	return n
}

func isHexByte(c byte) bool {
	return c >= '0' && c <= '9' || c >= 'a' && c <= 'f' || c >= 'A' && c <= 'F'
}

// scanCopies records copy sites: destination handle, whether the
// primitive is capacity-bounded, and the source's statically known
// length when the source is a literal.
func scanCopies(sc *scanCtx) {
	text := sc.text

	for _, loc := range reCopyCall.FindAllStringSubmatchIndex(text, -1) {
		name := text[loc[2]:loc[3]]
		open := loc[1] - 1

		spans := argSpans(text, open)
		if len(spans) == 0 {
			sc.add(fact.Fact{
				Kind:   fact.KindParseError,
				Span:   spanOfLine(sc.unit, loc[0]),
				Reason: "unterminated argument list in copy call " + name,
			})

			continue
		}

		// The sanitizer preserves offsets and delimiters, so the span of
		// a literal argument addresses the original text. Decoding there
		// keeps escape sequences from inflating the measured length.
		srcLen := -1
		if len(spans) > 1 {
			orig := sc.unit.Text()[spans[1][0]:spans[1][1]]
			if strings.HasPrefix(orig, `"`) && strings.HasSuffix(orig, `"`) && len(orig) >= 2 {
				srcLen = literalLen(orig)
			}
		}

		sc.add(fact.Fact{
			Kind:      fact.KindCopySite,
			Span:      spanOfLine(sc.unit, loc[0]),
			Handle:    lastIdent(text[spans[0][0]:spans[0][1]]),
			Bounded:   boundedCopy[name],
			SourceLen: srcLen,
			DstFact:   -1,
		})
	}
}
