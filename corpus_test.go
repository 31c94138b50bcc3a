package ubs_test

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ubs "github.com/shaneholloman/ultimate-bug-scanner"
	"github.com/shaneholloman/ultimate-bug-scanner/internal/fixture"
)

// TestFixtureCorpus walks testdata/ and holds every fixture to the
// labeling contract: a buggy fixture yields at least one finding in its
// category, a clean fixture stays silent across the whole catalogue.
func TestFixtureCorpus(t *testing.T) {
	var labels []string

	err := filepath.WalkDir("testdata", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if !d.IsDir() && strings.HasSuffix(path, ".cpp") {
			rel, relErr := filepath.Rel("testdata", path)
			if relErr != nil {
				return relErr
			}

			labels = append(labels, filepath.ToSlash(rel))
		}

		return nil
	})
	require.NoError(t, err)
	require.NotEmpty(t, labels, "fixture corpus must not be empty")

	for _, name := range labels {
		t.Run(name, func(t *testing.T) {
			label, err := fixture.ParseLabel(name)
			require.NoError(t, err)

			text, err := os.ReadFile(filepath.Join("testdata", filepath.FromSlash(name)))
			require.NoError(t, err)

			report, err := ubs.Analyze(context.Background(),
				ubs.NewSourceUnit(name, string(text), ubs.DialectUnknown))
			require.NoError(t, err)

			assert.True(t, label.Satisfied(&report), "label %s not satisfied:\n%s", name, report.String())
		})
	}
}

// TestCorpusCoversEveryCategory keeps the corpus honest: each category
// must have at least one buggy and one clean fixture.
func TestCorpusCoversEveryCategory(t *testing.T) {
	for _, c := range []ubs.Category{
		ubs.CategoryConcurrency,
		ubs.CategoryOwnership,
		ubs.CategoryLockBalance,
		ubs.CategoryDestructor,
		ubs.CategoryMacro,
		ubs.CategoryAsync,
	} {
		for _, exp := range []string{"buggy", "clean"} {
			dir := filepath.Join("testdata", c.String(), exp)

			entries, err := os.ReadDir(dir)
			require.NoError(t, err, "missing corpus directory %s", dir)
			assert.NotEmpty(t, entries, "no fixtures under %s", dir)
		}
	}
}
