package extract

import (
	"regexp"
	"strings"

	"github.com/shaneholloman/ultimate-bug-scanner/internal/fact"
	"github.com/shaneholloman/ultimate-bug-scanner/internal/source"
)

// reDefine captures "#define NAME" with an optional function-like
// parameter list. The '(' must be adjacent to the name; a spaced paren
// starts an object-like replacement instead.
var reDefine = regexp.MustCompile(`^\s*#\s*define\s+([A-Za-z_][A-Za-z0-9_]*)(\(([^)]*)\))?\s*(.*)$`)

// Conditional-compilation symbols commonly owned by the toolchain or
// build system; redefining them locally shadows that contract.
var reservedConditionals = map[string]bool{
	"DEBUG":       true,
	"NDEBUG":      true,
	"_DEBUG":      true,
	"UNICODE":     true,
	"_UNICODE":    true,
	"_WIN32":      true,
	"__linux__":   true,
	"__APPLE__":   true,
	"TRUE":        true,
	"FALSE":       true,
	"__cplusplus": true,
}

// scanMacros records macro definitions (with their hygiene raw data)
// and the expansion sites of function-like macros.
func scanMacros(sc *scanCtx) {
	text := sc.text
	lines := strings.Split(text, "\n")

	type defined struct {
		name string
		off  int
	}

	var functionLike []defined

	lineOff := 0
	for i := 0; i < len(lines); i++ {
		line := lines[i]
		start := lineOff
		lineOff += len(line) + 1

		m := reDefine.FindStringSubmatch(line)
		if m == nil {
			continue
		}

		body := m[4]
		for strings.HasSuffix(strings.TrimRight(body, " \t"), `\`) && i+1 < len(lines) {
			body = strings.TrimSuffix(strings.TrimRight(body, " \t"), `\`)
			i++
			body += " " + strings.TrimSpace(lines[i])
			lineOff += len(lines[i]) + 1
		}

		name := m[1]

		if m[2] == "" {
			sc.add(fact.Fact{
				Kind:           fact.KindMacroDef,
				Span:           source.NewSpan(start, start+len(line)),
				Handle:         name,
				Body:           strings.TrimSpace(body),
				ReservedShadow: reservedConditionals[name],
			})

			continue
		}

		params := splitParams(m[3])

		sc.add(fact.Fact{
			Kind:         fact.KindMacroDef,
			Span:         source.NewSpan(start, start+len(line)),
			Handle:       name,
			FunctionLike: true,
			Params:       params,
			Body:         strings.TrimSpace(body),
			BareParams:   bareParamUses(body, params),
		})

		functionLike = append(functionLike, defined{name: name, off: start + len(line)})
	}

	for _, def := range functionLike {
		re := regexp.MustCompile(`\b` + regexp.QuoteMeta(def.name) + `\s*\(`)
		for _, loc := range re.FindAllStringIndex(text, -1) {
			if loc[0] <= def.off {
				continue // the definition itself
			}

			sc.add(fact.Fact{
				Kind:   fact.KindMacroExpansion,
				Span:   spanOfLine(sc.unit, loc[0]),
				Handle: def.name,
			})
		}
	}
}

// splitParams parses a macro parameter list, dropping variadic dots.
func splitParams(list string) []string {
	var out []string
	for _, p := range strings.Split(list, ",") {
		p = strings.TrimSpace(p)
		if p == "" || p == "..." {
			continue
		}

		out = append(out, p)
	}

	return out
}

// bareParamUses returns the parameters that appear in the replacement
// body without their own enclosing parentheses. Stringized (#x) and
// pasted (x ## y) uses are exempt: those cannot be parenthesized.
func bareParamUses(body string, params []string) []string {
	var out []string

	for _, p := range params {
		re := regexp.MustCompile(`\b` + regexp.QuoteMeta(p) + `\b`)

		for _, loc := range re.FindAllStringIndex(body, -1) {
			if isStringizedOrPasted(body, loc[0], loc[1]) {
				continue
			}

			if !parenthesizedAt(body, loc[0], loc[1]) {
				out = append(out, p)
				break
			}
		}
	}

	return out
}

// parenthesizedAt reports whether the token at [start, end) is directly
// wrapped as "(token)".
func parenthesizedAt(body string, start, end int) bool {
	i := start - 1
	for i >= 0 && (body[i] == ' ' || body[i] == '\t') {
		i--
	}

	j := end
	for j < len(body) && (body[j] == ' ' || body[j] == '\t') {
		j++
	}

	return i >= 0 && body[i] == '(' && j < len(body) && body[j] == ')'
}

// isStringizedOrPasted reports whether the token participates in a
// # or ## preprocessor operation.
func isStringizedOrPasted(body string, start, end int) bool {
	i := start - 1
	for i >= 0 && (body[i] == ' ' || body[i] == '\t') {
		i--
	}

	if i >= 0 && body[i] == '#' {
		return true
	}

	j := end
	for j < len(body) && (body[j] == ' ' || body[j] == '\t') {
		j++
	}

	return j+1 < len(body) && body[j] == '#' && body[j+1] == '#'
}
