package ubs_test

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ubs "github.com/shaneholloman/ultimate-bug-scanner"
)

func analyze(t *testing.T, id, text string) ubs.Report {
	t.Helper()

	report, err := ubs.Analyze(context.Background(), ubs.NewSourceUnit(id, text, ubs.DialectCPP))
	require.NoError(t, err)

	return report
}

func TestRunawayThreadWithLeakAndOverflow(t *testing.T) {
	report := analyze(t, "scenario1.cpp", `
#include <thread>
#include <cstring>

struct Buffer {
    Buffer() { data = new char[16]; }
    ~Buffer() { log_destroy(); }
    char *data;
};

void run() {
    std::thread t([]() {
        while (true) {
            tick();
        }
    });
    t.detach();

    Buffer b;
    strcpy(b.data, "this line is much longer than sixteen bytes");
}
`)

	require.True(t, report.HasCategory(ubs.CategoryConcurrency), report.String())
	require.True(t, report.HasCategory(ubs.CategoryOwnership), report.String())

	concurrency := report.ByCategory(ubs.CategoryConcurrency)
	require.Len(t, concurrency, 1)
	assert.Equal(t, ubs.SeverityCritical, concurrency[0].Severity)
	assert.Contains(t, concurrency[0].Message, "runaway detached execution unit")

	ownership := report.ByCategory(ubs.CategoryOwnership)
	require.Len(t, ownership, 2, report.String())

	totals := report.Totals()
	assert.Equal(t, 2, totals.Critical, "spawn plus overflow")
	assert.Equal(t, 1, totals.Medium, "the unreleased allocation")
}

func TestBoundedPoolAndBoundedCopyIsClean(t *testing.T) {
	report := analyze(t, "scenario2.cpp", `
#include <thread>
#include <vector>
#include <cstdio>

void run() {
    std::vector<std::thread> workers;
    for (int i = 0; i < 3; ++i) {
        workers.emplace_back([i]() {
            tick(i);
        });
    }

    char line[64];
    snprintf(line, sizeof(line), "workers: %d", 3);

    for (auto &w : workers) {
        w.join();
    }
}
`)

	assert.True(t, report.IsClean(), report.String())
}

func TestThrowingDtorMismatchedDeleteUnbalancedLock(t *testing.T) {
	report := analyze(t, "scenario3.cpp", `
#include <mutex>
#include <stdexcept>

std::mutex mtx;

class Session {
public:
    ~Session() {
        throw std::runtime_error("unsent frames");
    }
};

void shuffle(bool fast) {
    char *slots = new char[32];
    if (fast) {
        mtx.lock();
    } else {
        mtx.unlock();
    }
    delete slots;
}
`)

	dtor := report.ByCategory(ubs.CategoryDestructor)
	require.Len(t, dtor, 1, report.String())
	assert.Equal(t, ubs.SeverityCritical, dtor[0].Severity)
	assert.Contains(t, dtor[0].Message, "destructor may raise")

	ownership := report.ByCategory(ubs.CategoryOwnership)
	require.Len(t, ownership, 1)
	assert.Contains(t, ownership[0].Message, "mismatched deallocation")

	locks := report.ByCategory(ubs.CategoryLockBalance)
	require.Len(t, locks, 1)
	assert.Equal(t, ubs.SeverityHigh, locks[0].Severity)
	assert.Contains(t, locks[0].Message, "unbalanced lock")
}

func TestOwnedBufferAndGuardIsClean(t *testing.T) {
	report := analyze(t, "scenario4.cpp", `
#include <memory>
#include <mutex>

std::mutex mtx;

class Session {
public:
    ~Session() {
        release_frames();
    }
};

void shuffle(bool fast) {
    auto slots = std::make_unique<char[]>(32);
    std::lock_guard<std::mutex> guard(mtx);
    reorder(slots.get(), fast);
}
`)

	assert.True(t, report.IsClean(), report.String())
}

func TestMacroHygieneFlagsDefinition(t *testing.T) {
	report := analyze(t, "scenario5.cpp", `
#define AREA(w, h) (w * h)

int floor_space() {
    return AREA(3, 4);
}
`)

	macro := report.ByCategory(ubs.CategoryMacro)
	require.Len(t, macro, 1, report.String())
	assert.Equal(t, ubs.SeverityMedium, macro[0].Severity)
}

func TestAsyncResultScenarios(t *testing.T) {
	dropped := analyze(t, "scenario6_buggy.cpp", `
#include <future>

void refresh() {
    auto pending = std::async(std::launch::async, reload);
}
`)

	async := dropped.ByCategory(ubs.CategoryAsync)
	require.Len(t, async, 1)
	assert.Equal(t, ubs.SeverityHigh, async[0].Severity)

	awaited := analyze(t, "scenario6_clean.cpp", `
#include <future>

void refresh() {
    auto pending = std::async(std::launch::async, reload);
    try {
        pending.get();
    } catch (...) {
        note_failure();
    }
}
`)

	assert.Empty(t, awaited.ByCategory(ubs.CategoryAsync), awaited.String())
}

const leakyUnit = `
void leak() {
    char *data = new char[8];
    use(data);
}
`

func TestAnalyzeDeterministic(t *testing.T) {
	a := analyze(t, "same.cpp", leakyUnit)
	b := analyze(t, "same.cpp", leakyUnit)

	assert.Empty(t, cmp.Diff(a, b))
	assert.Equal(t, a.String(), b.String())
}

func TestAnalyzeAllNoCrossUnitLeakage(t *testing.T) {
	noisy := ubs.NewSourceUnit("noisy.cpp", `
void spawn() {
    std::thread t([]() {
        while (true) {
            tick();
        }
    });
    t.detach();
}
`, ubs.DialectCPP)
	quiet := ubs.NewSourceUnit("quiet.cpp", "void f() {\n    work();\n}\n", ubs.DialectCPP)

	together, err := ubs.AnalyzeAll(context.Background(), []*ubs.SourceUnit{noisy, quiet})
	require.NoError(t, err)
	require.Len(t, together, 2)

	alone, err := ubs.Analyze(context.Background(), quiet)
	require.NoError(t, err)

	// Input order is preserved and the noisy neighbor changes nothing.
	assert.Equal(t, "noisy.cpp", together[0].UnitID)
	assert.Empty(t, cmp.Diff(alone, together[1]))
	assert.False(t, together[0].IsClean())
	assert.True(t, together[1].IsClean())
}

func TestWithMinSeverity(t *testing.T) {
	unit := ubs.NewSourceUnit("leak.cpp", leakyUnit, ubs.DialectCPP)

	all, err := ubs.Analyze(context.Background(), unit)
	require.NoError(t, err)
	require.False(t, all.IsClean())

	criticalOnly, err := ubs.Analyze(context.Background(), unit, ubs.WithMinSeverity(ubs.SeverityCritical))
	require.NoError(t, err)

	assert.True(t, criticalOnly.IsClean(), "the medium leak finding falls under the floor")
}

func TestWithCategories(t *testing.T) {
	unit := ubs.NewSourceUnit("leak.cpp", leakyUnit, ubs.DialectCPP)

	report, err := ubs.Analyze(context.Background(), unit, ubs.WithCategories(ubs.CategoryMacro))
	require.NoError(t, err)

	assert.True(t, report.IsClean())
}

func TestWithRuleset(t *testing.T) {
	unit := ubs.NewSourceUnit("leak.cpp", leakyUnit, ubs.DialectCPP)

	report, err := ubs.Analyze(context.Background(), unit, ubs.WithRuleset([]byte(`
categories:
  - ownership
severity_overrides:
  ownership: critical
`)))
	require.NoError(t, err)

	ownership := report.ByCategory(ubs.CategoryOwnership)
	require.NotEmpty(t, ownership)
	assert.Equal(t, ubs.SeverityCritical, ownership[0].Severity)
}

func TestWithRulesetInvalid(t *testing.T) {
	unit := ubs.NewSourceUnit("leak.cpp", leakyUnit, ubs.DialectCPP)

	_, err := ubs.Analyze(context.Background(), unit, ubs.WithRuleset([]byte("categories: [made_up]")))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown category")
}

func TestDialectDetectionOnReport(t *testing.T) {
	report, err := ubs.Analyze(context.Background(),
		ubs.NewSourceUnit("auto.cpp", "#include <memory>\nvoid f() { auto p = std::make_unique<int>(1); }\n", ubs.DialectUnknown))
	require.NoError(t, err)

	assert.Equal(t, "cpp", report.Dialect)
}
