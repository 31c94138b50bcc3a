package extract

import (
	"github.com/shaneholloman/ultimate-bug-scanner/internal/fact"
	"github.com/shaneholloman/ultimate-bug-scanner/internal/source"
)

// scanExits records every function exit point: each return statement
// plus the implicit fall-off at the closing brace. Release coverage is
// judged against these.
func scanExits(sc *scanCtx) {
	for i := range sc.trk.blocks {
		b := &sc.trk.blocks[i]
		if b.kind != blockFunc && b.kind != blockLambda {
			continue
		}

		for _, ex := range sc.trk.exitsOf(i) {
			span := spanOfLine(sc.unit, ex.off)
			if ex.off == b.close {
				span = source.NewSpan(b.close, b.close+1)
			}

			sc.add(fact.Fact{
				Kind:   fact.KindScopeExit,
				Span:   span,
				Ctx:    ex.ctx,
				Handle: b.name,
			})
		}
	}
}
