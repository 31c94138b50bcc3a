package extract

import (
	"regexp"
	"strings"

	"github.com/shaneholloman/ultimate-bug-scanner/internal/fact"
)

var (
	reThrowWord = regexp.MustCompile(`\bthrow\b`)
	reCallName  = regexp.MustCompile(`\b([A-Za-z_][A-Za-z0-9_]*)\s*\(`)
)

// scanDestructors records destructor declarations and whether each body
// can raise: a direct throw outside any local try, or a call to a
// function the unit itself defines with an unconditional throw.
//
// It also records every raise site as an exception fact.
func scanDestructors(sc *scanCtx) {
	text := sc.text

	for _, loc := range reThrowWord.FindAllStringIndex(text, -1) {
		// "throw" in a noexcept(false) specifier or an exception spec
		// is not a raise site; those sit outside any block or directly
		// in a header. Raise sites live inside function bodies.
		if sc.trk.funcBlockAt(loc[0]) == -1 {
			continue
		}

		sc.add(fact.Fact{
			Kind: fact.KindExceptionSite,
			Span: spanOfLine(sc.unit, loc[0]),
		})
	}

	throwers := sc.throwingFuncs()

	for i := range sc.trk.blocks {
		fn := &sc.trk.blocks[i]
		if fn.kind != blockFunc || !strings.Contains(fn.name, "~") {
			continue
		}

		typeName := fn.name[strings.Index(fn.name, "~")+1:]
		body := text[fn.open+1 : fn.close]

		throws := sc.throwsLocally(fn)
		if !throws {
			for _, m := range reCallName.FindAllStringSubmatch(body, -1) {
				if throwers[m[1]] {
					throws = true
					break
				}
			}
		}

		sc.add(fact.Fact{
			Kind:   fact.KindDestructorDecl,
			Span:   spanOfLine(sc.unit, fn.open),
			Handle: typeName,
			Throws: throws,
			Ctx:    fact.NewFlowContext(fn.name, nil, fact.BranchNone, false),
		})
	}
}

// throwsLocally reports whether a function body contains a throw that
// no local try block absorbs.
func (sc *scanCtx) throwsLocally(fn *block) bool {
	body := sc.text[fn.open+1 : fn.close]

	for _, loc := range reThrowWord.FindAllStringIndex(body, -1) {
		off := fn.open + 1 + loc[0]
		if !sc.trk.inTryAt(off) {
			return true
		}
	}

	return false
}

// throwingFuncs collects unit-defined functions whose body raises
// unconditionally: a throw at the function's top level, outside every
// branch and try block.
func (sc *scanCtx) throwingFuncs() map[string]bool {
	out := make(map[string]bool)

	for i := range sc.trk.blocks {
		fn := &sc.trk.blocks[i]
		if fn.kind != blockFunc || strings.Contains(fn.name, "~") {
			continue
		}

		body := sc.text[fn.open+1 : fn.close]
		for _, loc := range reThrowWord.FindAllStringIndex(body, -1) {
			off := fn.open + 1 + loc[0]
			ctx := sc.trk.contextAt(off)
			if len(ctx.Path) == 0 && !sc.trk.inTryAt(off) && sc.trk.funcBlockAt(off) == i {
				out[baseName(fn.name)] = true
				break
			}
		}
	}

	return out
}

// baseName strips any class qualifier: "Worker::run" yields "run".
func baseName(qualified string) string {
	if i := strings.LastIndex(qualified, "::"); i != -1 {
		return qualified[i+2:]
	}

	return qualified
}
