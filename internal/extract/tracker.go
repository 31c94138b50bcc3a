package extract

import (
	"regexp"
	"strings"

	"github.com/shaneholloman/ultimate-bug-scanner/internal/fact"
	"github.com/shaneholloman/ultimate-bug-scanner/internal/source"
)

// blockKind classifies a brace-delimited block by its header.
type blockKind uint8

const (
	blockOther blockKind = iota
	blockFunc
	blockLambda
	blockClass
	blockThen
	blockElse
	blockLoop
	blockTry
	blockCatch
)

// block is one `{ ... }` region of the sanitized text.
type block struct {
	kind   blockKind
	name   string // function or class name, "" otherwise
	open   int    // offset of '{'
	close  int    // offset of '}', len(text) if unterminated
	parent int    // index of the enclosing block, -1 at top level

	// infinite marks a loop with a constant-true condition; hasExit is
	// filled at close time when the loop body contains break/return/goto.
	infinite bool
	hasExit  bool
}

// tracker recovers the block structure of sanitized source text and
// answers control-flow context queries by offset.
type tracker struct {
	text       string
	blocks     []block
	unbalanced bool
}

var (
	reHeaderName = regexp.MustCompile(`(~?[A-Za-z_][A-Za-z0-9_:]*)\s*\(`)
	reLambdaHead = regexp.MustCompile(`\[[^\[\]]*\]\s*(\([^()]*\))?\s*$`)
	reClassHead  = regexp.MustCompile(`^(?:class|struct)\s+([A-Za-z_][A-Za-z0-9_]*)`)
	reInfinite   = regexp.MustCompile(`^(?:while\s*\(\s*(?:true|1)\s*\)|for\s*\(\s*;\s*;\s*\))`)
	reWordReturn = regexp.MustCompile(`\breturn\b`)
	reWordExit   = regexp.MustCompile(`\b(?:break|return|goto)\b`)
)

// newTracker builds the block structure in one pass over sanitized text.
func newTracker(text string) *tracker {
	t := &tracker{text: text}

	stack := []int{}
	stmtStart := 0

	// Paren depth is tracked per brace level: a ';' inside a for-header
	// or argument list must not close the statement window, but a ';'
	// inside a lambda body passed as an argument still does.
	parens := 0
	parenStack := []int{}

	for i := 0; i < len(text); i++ {
		switch text[i] {
		case '(':
			parens++

		case ')':
			if parens > 0 {
				parens--
			}

		case '{':
			header := strings.TrimSpace(text[stmtStart:i])
			parent := -1
			if len(stack) > 0 {
				parent = stack[len(stack)-1]
			}

			b := classifyHeader(header)
			b.open = i
			b.close = len(text)
			b.parent = parent

			t.blocks = append(t.blocks, b)
			stack = append(stack, len(t.blocks)-1)
			parenStack = append(parenStack, parens)
			parens = 0
			stmtStart = i + 1

		case '}':
			if len(stack) == 0 {
				t.unbalanced = true
				stmtStart = i + 1
				continue
			}

			idx := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			parens = parenStack[len(parenStack)-1]
			parenStack = parenStack[:len(parenStack)-1]
			t.blocks[idx].close = i

			if t.blocks[idx].kind == blockLoop && t.blocks[idx].infinite {
				body := text[t.blocks[idx].open+1 : i]
				t.blocks[idx].hasExit = reWordExit.MatchString(body)
			}

			stmtStart = i + 1

		case ';':
			if parens == 0 {
				stmtStart = i + 1
			}

		case '\n':
			// A newline only resets the statement window when the line
			// was a preprocessor directive or blank; otherwise headers
			// may span lines (e.g. init lists).
			line := strings.TrimSpace(text[stmtStart:i])
			if line == "" || strings.HasPrefix(line, "#") {
				stmtStart = i + 1
			}
		}
	}

	if len(stack) > 0 {
		t.unbalanced = true
	}

	return t
}

// startsWithWord reports whether s begins with the keyword followed by
// a non-identifier character (or end of string).
func startsWithWord(s, word string) bool {
	if !strings.HasPrefix(s, word) {
		return false
	}

	if len(s) == len(word) {
		return true
	}

	c := s[len(word)]

	return !(c == '_' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9')
}

// classifyHeader maps the text between the previous statement boundary
// and a '{' onto a block kind.
func classifyHeader(header string) block {
	switch {
	case header == "":
		return block{kind: blockOther}

	case header == "do":
		return block{kind: blockLoop}

	case startsWithWord(header, "if"):
		return block{kind: blockThen}

	case startsWithWord(header, "else"):
		return block{kind: blockElse}

	case startsWithWord(header, "while"), startsWithWord(header, "for"):
		return block{kind: blockLoop, infinite: reInfinite.MatchString(header)}

	case startsWithWord(header, "switch"):
		return block{kind: blockThen}

	case startsWithWord(header, "try"):
		return block{kind: blockTry}

	case startsWithWord(header, "catch"):
		return block{kind: blockCatch}

	case startsWithWord(header, "namespace"), startsWithWord(header, "extern"),
		startsWithWord(header, "enum"), startsWithWord(header, "union"):
		return block{kind: blockOther}

	case reClassHead.MatchString(header):
		m := reClassHead.FindStringSubmatch(header)
		return block{kind: blockClass, name: m[1]}

	case reLambdaHead.MatchString(header):
		return block{kind: blockLambda, name: "<lambda>"}

	default:
		if m := reHeaderName.FindStringSubmatch(header); m != nil {
			return block{kind: blockFunc, name: m[1]}
		}

		return block{kind: blockOther}
	}
}

// innermostAt returns the index of the deepest block containing off,
// or -1 at top level.
func (t *tracker) innermostAt(off int) int {
	best := -1
	for i := range t.blocks {
		b := &t.blocks[i]
		if b.open < off && off <= b.close {
			if best == -1 || t.blocks[best].open < b.open {
				best = i
			}
		}
	}

	return best
}

// funcBlockAt returns the index of the nearest enclosing function or
// lambda block, or -1.
func (t *tracker) funcBlockAt(off int) int {
	for i := t.innermostAt(off); i != -1; i = t.blocks[i].parent {
		if t.blocks[i].kind == blockFunc || t.blocks[i].kind == blockLambda {
			return i
		}
	}

	return -1
}

// classBlockAt returns the index of the nearest enclosing class block, or -1.
func (t *tracker) classBlockAt(off int) int {
	for i := t.innermostAt(off); i != -1; i = t.blocks[i].parent {
		if t.blocks[i].kind == blockClass {
			return i
		}
	}

	return -1
}

// contextAt derives the FlowContext for a fact observed at off.
func (t *tracker) contextAt(off int) fact.FlowContext {
	fnIdx := t.funcBlockAt(off)
	fnName := ""
	if fnIdx != -1 {
		fnName = t.blocks[fnIdx].name
	}

	// Collect branch blocks between the function block and off, outermost first.
	var chain []int
	for i := t.innermostAt(off); i != -1 && i != fnIdx; i = t.blocks[i].parent {
		chain = append(chain, i)
	}

	var path []int
	branch := fact.BranchNone
	inLoop := false

	for i := len(chain) - 1; i >= 0; i-- {
		b := &t.blocks[chain[i]]
		switch b.kind {
		case blockThen:
			path = append(path, chain[i])
			branch = fact.BranchThen
		case blockElse:
			path = append(path, chain[i])
			branch = fact.BranchElse
		case blockLoop:
			path = append(path, chain[i])
			branch = fact.BranchLoop
			inLoop = true
		case blockCatch:
			path = append(path, chain[i])
		}
	}

	return fact.NewFlowContext(fnName, path, branch, inLoop)
}

// inTryAt reports whether off sits inside a try block (within the same
// function scope).
func (t *tracker) inTryAt(off int) bool {
	fnIdx := t.funcBlockAt(off)
	for i := t.innermostAt(off); i != -1 && i != fnIdx; i = t.blocks[i].parent {
		if t.blocks[i].kind == blockTry {
			return true
		}
	}

	return false
}

// exit is one control-flow exit point of a function scope.
type exit struct {
	off int
	ctx fact.FlowContext
}

// exitsOf returns every return statement inside the function block plus
// the fall-off end of the function, each with its flow context.
func (t *tracker) exitsOf(fnIdx int) []exit {
	b := &t.blocks[fnIdx]
	body := t.text[b.open+1 : b.close]

	var out []exit
	for _, loc := range reWordReturn.FindAllStringIndex(body, -1) {
		off := b.open + 1 + loc[0]
		if t.funcBlockAt(off) != fnIdx {
			continue // return belongs to a nested lambda
		}

		out = append(out, exit{off: off, ctx: t.contextAt(off)})
	}

	out = append(out, exit{off: b.close, ctx: fact.NewFlowContext(b.name, nil, fact.BranchNone, false)})

	return out
}

// spanOfLine returns the span of the full line containing off.
func spanOfLine(u *source.Unit, off int) source.Span {
	pos := u.PosAt(off)
	line := u.LineAt(off)
	start := off - (pos.Col - 1)

	return source.NewSpan(start, start+len(line))
}
