package extract

import (
	"regexp"

	"github.com/shaneholloman/ultimate-bug-scanner/internal/fact"
)

var (
	reManualLock  = regexp.MustCompile(`\b([A-Za-z_][A-Za-z0-9_]*)\s*(?:\.|->)\s*(lock|unlock)\s*\(\s*\)`)
	rePthreadLock = regexp.MustCompile(`\bpthread_mutex_(lock|unlock)\s*\(\s*&?\s*([A-Za-z_][A-Za-z0-9_]*)`)
	reStdGuard    = regexp.MustCompile(`\b(?:std::)?(?:lock_guard|scoped_lock|unique_lock)\s*(?:<[^;>]*>)?\s+([A-Za-z_][A-Za-z0-9_]*)\s*[({]\s*([A-Za-z_][A-Za-z0-9_]*)?`)
	reUnlockWord  = regexp.MustCompile(`\bunlock\s*\(`)
)

// scanLocks records lock acquisitions and releases, distinguishing
// manual lock()/unlock() pairs from scope-bound guard acquisitions.
//
// Guard recognition covers the standard guards and unit-local guard
// classes: any class whose destructor releases a mutex is a guard, its
// construction is a guarded acquire, and the lock()/unlock() calls
// inside its own constructor/destructor are marked guarded so the
// balance matcher leaves them alone.
func scanLocks(sc *scanCtx) {
	text := sc.text
	guards := sc.guardClasses()

	for _, loc := range reManualLock.FindAllStringSubmatchIndex(text, -1) {
		handle := text[loc[2]:loc[3]]
		op := text[loc[4]:loc[5]]

		kind := fact.KindLockAcquire
		if op == "unlock" {
			kind = fact.KindLockRelease
		}

		sc.add(fact.Fact{
			Kind:    kind,
			Span:    spanOfLine(sc.unit, loc[0]),
			Handle:  handle,
			Guarded: sc.insideGuardClass(loc[0], guards),
		})
	}

	for _, loc := range rePthreadLock.FindAllStringSubmatchIndex(text, -1) {
		op := text[loc[2]:loc[3]]
		handle := text[loc[4]:loc[5]]

		kind := fact.KindLockAcquire
		if op == "unlock" {
			kind = fact.KindLockRelease
		}

		sc.add(fact.Fact{
			Kind:   kind,
			Span:   spanOfLine(sc.unit, loc[0]),
			Handle: handle,
		})
	}

	for _, loc := range reStdGuard.FindAllStringSubmatchIndex(text, -1) {
		handle := ""
		if loc[4] != -1 {
			handle = text[loc[4]:loc[5]]
		}

		sc.add(fact.Fact{
			Kind:    fact.KindLockAcquire,
			Span:    spanOfLine(sc.unit, loc[0]),
			Handle:  handle,
			Guarded: true,
		})
	}

	// Unit-local guard constructions: "ScopedLock lock{m};"
	for _, name := range guards {
		re := regexp.MustCompile(`\b` + regexp.QuoteMeta(name) + `\s+([A-Za-z_][A-Za-z0-9_]*)\s*[({]\s*([A-Za-z_][A-Za-z0-9_]*)?`)
		for _, loc := range re.FindAllStringSubmatchIndex(text, -1) {
			if sc.insideGuardClass(loc[0], guards) {
				continue // the class's own declarations
			}

			handle := ""
			if loc[4] != -1 {
				handle = text[loc[4]:loc[5]]
			}

			sc.add(fact.Fact{
				Kind:    fact.KindLockAcquire,
				Span:    spanOfLine(sc.unit, loc[0]),
				Handle:  handle,
				Guarded: true,
			})
		}
	}
}

// guardClasses finds unit-local RAII lock wrappers: classes whose
// destructor body calls unlock().
func (sc *scanCtx) guardClasses() []string {
	var out []string

	for i := range sc.trk.blocks {
		cls := &sc.trk.blocks[i]
		if cls.kind != blockClass {
			continue
		}

		for j := range sc.trk.blocks {
			fn := &sc.trk.blocks[j]
			if fn.parent != i || fn.kind != blockFunc || len(fn.name) == 0 || fn.name[0] != '~' {
				continue
			}

			body := sc.text[fn.open+1 : fn.close]
			if reUnlockWord.MatchString(body) {
				out = append(out, cls.name)
			}
		}
	}

	return out
}

// insideGuardClass reports whether off falls inside the body of one of
// the named guard classes.
func (sc *scanCtx) insideGuardClass(off int, guards []string) bool {
	idx := sc.trk.classBlockAt(off)
	if idx == -1 {
		return false
	}

	name := sc.trk.blocks[idx].name
	for _, g := range guards {
		if g == name {
			return true
		}
	}

	return false
}
