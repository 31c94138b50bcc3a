package extract

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/shaneholloman/ultimate-bug-scanner/internal/common"
	"github.com/shaneholloman/ultimate-bug-scanner/internal/fact"
)

var (
	reNewExpr    = regexp.MustCompile(`\bnew\s+([A-Za-z_][A-Za-z0-9_:<>]*)\s*(\[([^\]]*)\])?`)
	reMakeOwned  = regexp.MustCompile(`\b(?:std::)?make_(?:unique|shared)\s*<\s*([A-Za-z_][A-Za-z0-9_:]*)\s*(\[\s*\])?\s*>\s*\(`)
	reDeleteExpr = regexp.MustCompile(`\bdelete\s*(\[\s*\])?\s*([A-Za-z_][A-Za-z0-9_.]*(?:->[A-Za-z_][A-Za-z0-9_]*)*)`)
	reStackBuf   = regexp.MustCompile(`\b(?:unsigned\s+)?char\s+([A-Za-z_][A-Za-z0-9_]*)\s*\[\s*(\d+)\s*\]`)
	reStdArray   = regexp.MustCompile(`\bstd::array\s*<\s*char\s*,\s*(\d+)\s*>\s*([A-Za-z_][A-Za-z0-9_]*)`)
	reMallocExpr = regexp.MustCompile(`\b(?:malloc|calloc)\s*\(`)
	reFreeExpr   = regexp.MustCompile(`\bfree\s*\(\s*([A-Za-z_][A-Za-z0-9_.]*)`)
	reOwningDecl = regexp.MustCompile(`\b(?:unique_ptr|shared_ptr)\b`)
)

// scanMemory records allocation sites (heap and fixed-capacity stack
// buffers), deallocation sites, and ownership wrappers.
func scanMemory(sc *scanCtx) {
	text := sc.text

	for _, loc := range reNewExpr.FindAllStringSubmatchIndex(text, -1) {
		off := loc[0]
		array := loc[4] != -1

		capacity := 0
		if array && loc[6] != -1 {
			if n, err := strconv.Atoi(strings.TrimSpace(text[loc[6]:loc[7]])); err == nil {
				capacity = n
			}
		}

		handle := assignTargetBefore(text, off)
		if handle == "" {
			handle = declTargetBefore(text, off)
		}

		stmt := text[statementStart(text, off):off]
		owned := reOwningDecl.MatchString(stmt)

		sc.add(fact.Fact{
			Kind:     fact.KindAllocationSite,
			Span:     spanOfLine(sc.unit, off),
			Handle:   handle,
			Array:    array,
			Heap:     true,
			Capacity: capacity,
			Owned:    owned,
			Returned: handle != "" && sc.returnedFrom(off, handle),
		})
	}

	for _, loc := range reMakeOwned.FindAllStringSubmatchIndex(text, -1) {
		off := loc[0]
		handle := assignTargetBefore(text, off)
		if handle == "" {
			handle = declTargetBefore(text, off)
		}

		sc.add(fact.Fact{
			Kind:   fact.KindAllocationSite,
			Span:   spanOfLine(sc.unit, off),
			Handle: handle,
			Array:  loc[4] != -1,
			Heap:   true,
			Owned:  true,
		})
	}

	for _, loc := range reMallocExpr.FindAllStringIndex(text, -1) {
		off := loc[0]
		handle := assignTargetBefore(text, off)

		capacity := 0
		if first, ok := common.First(splitArgs(text, loc[1]-1)); ok {
			if n, err := strconv.Atoi(first); err == nil {
				capacity = n
			}
		}

		stmt := text[statementStart(text, off):off]

		sc.add(fact.Fact{
			Kind:     fact.KindAllocationSite,
			Span:     spanOfLine(sc.unit, off),
			Handle:   handle,
			Array:    true,
			Heap:     true,
			Capacity: capacity,
			Owned:    reOwningDecl.MatchString(stmt),
			Returned: handle != "" && sc.returnedFrom(off, handle),
		})
	}

	for _, loc := range reDeleteExpr.FindAllStringSubmatchIndex(text, -1) {
		off := loc[0]
		array := loc[2] != -1
		handle := lastIdent(text[loc[4]:loc[5]])

		sc.add(fact.Fact{
			Kind:   fact.KindDeallocationSite,
			Span:   spanOfLine(sc.unit, off),
			Handle: handle,
			Array:  array,
			Heap:   true,
		})
	}

	for _, loc := range reFreeExpr.FindAllStringSubmatchIndex(text, -1) {
		sc.add(fact.Fact{
			Kind:   fact.KindDeallocationSite,
			Span:   spanOfLine(sc.unit, loc[0]),
			Handle: lastIdent(text[loc[2]:loc[3]]),
			Array:  true,
			Heap:   true,
		})
	}

	for _, loc := range reStackBuf.FindAllStringSubmatchIndex(text, -1) {
		off := loc[0]

		// "new char name[N]" is already covered by the heap scan above,
		// and "char *p" declarations carry no capacity.
		prefix := text[statementStart(text, off):off]
		if strings.Contains(prefix, "new") {
			continue
		}

		capacity, _ := strconv.Atoi(text[loc[4]:loc[5]])

		sc.add(fact.Fact{
			Kind:     fact.KindAllocationSite,
			Span:     spanOfLine(sc.unit, off),
			Handle:   text[loc[2]:loc[3]],
			Array:    true,
			Heap:     false,
			Capacity: capacity,
		})
	}

	for _, loc := range reStdArray.FindAllStringSubmatchIndex(text, -1) {
		capacity, _ := strconv.Atoi(text[loc[2]:loc[3]])

		sc.add(fact.Fact{
			Kind:     fact.KindAllocationSite,
			Span:     spanOfLine(sc.unit, loc[0]),
			Handle:   text[loc[4]:loc[5]],
			Array:    true,
			Heap:     false,
			Capacity: capacity,
		})
	}
}

// scanAllocAliases propagates escaping allocations to their call-site
// bindings: when f returns a raw allocation and a caller does
// "x = f(...)", x carries the same deallocation obligation, including
// the allocation's array-ness.
func scanAllocAliases(sc *scanCtx) {
	origins := make([]fact.Fact, 0, 4)
	for _, f := range sc.facts {
		if f.Kind == fact.KindAllocationSite && f.Returned && !f.Owned && f.Ctx.Func != "" && f.Ctx.Func != "<lambda>" {
			origins = append(origins, f)
		}
	}

	for _, origin := range origins {
		for _, off := range wordIndex(sc.text, origin.Ctx.Func) {
			target := assignTargetBefore(sc.text, off)
			if target == "" {
				continue // the definition itself, or a bare call
			}

			sc.add(fact.Fact{
				Kind:     fact.KindAllocationSite,
				Span:     spanOfLine(sc.unit, off),
				Handle:   target,
				Array:    origin.Array,
				Heap:     true,
				Capacity: origin.Capacity,
			})
		}
	}
}

// returnedFrom reports whether the enclosing function of off returns
// the named handle, meaning the raw allocation escapes to the caller.
func (sc *scanCtx) returnedFrom(off int, handle string) bool {
	fnIdx := sc.trk.funcBlockAt(off)
	if fnIdx == -1 {
		return false
	}

	b := sc.trk.blocks[fnIdx]
	body := sc.text[b.open+1 : b.close]

	re := regexp.MustCompile(`\breturn\s+` + regexp.QuoteMeta(handle) + `\b`)

	return re.MatchString(body)
}
