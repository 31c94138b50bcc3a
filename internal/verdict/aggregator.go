package verdict

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/shaneholloman/ultimate-bug-scanner/internal/fact"
	"github.com/shaneholloman/ultimate-bug-scanner/internal/finding"
	"github.com/shaneholloman/ultimate-bug-scanner/internal/matchers"
	"github.com/shaneholloman/ultimate-bug-scanner/internal/rules"
)

// Aggregate runs the catalogue over the set and seals the report.
//
// Each matcher gets its own goroutine and its own result slot, so the
// merge order is the registration order, not the completion order. A
// matcher that panics forfeits only its own slot: the panic is caught
// and turned into a degraded-coverage note.
func Aggregate(ctx context.Context, set *fact.Set, cfg rules.Config, catalogue []matchers.Matcher) finding.Report {
	results := make([][]finding.Finding, len(catalogue))
	faults := make([]string, len(catalogue))

	g, _ := errgroup.WithContext(ctx)

	for i, m := range catalogue {
		g.Go(func() error {
			defer func() {
				if r := recover(); r != nil {
					faults[i] = fmt.Sprintf("recovered from panic: %v", r)
				}
			}()

			results[i] = m.Match(set)

			return nil
		})
	}

	// Matchers return no errors; Wait is the join point.
	_ = g.Wait()

	report := finding.Report{
		UnitID:  set.UnitID(),
		Dialect: set.Dialect().String(),
	}

	for i, m := range catalogue {
		if faults[i] != "" {
			report.AddNote(m.Name(), faults[i])
			continue
		}

		for _, f := range results[i] {
			if filtered, ok := cfg.Apply(f); ok {
				report.Add(filtered)
			}
		}
	}

	report.Dedup()
	report.Sort()

	return report
}
