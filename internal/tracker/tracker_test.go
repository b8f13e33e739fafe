package tracker

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rajendar38/dice2/internal/applier"
	"github.com/rajendar38/dice2/internal/registry"
	"github.com/rajendar38/dice2/internal/scraper"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTracker(t *testing.T, wait time.Duration) (*Tracker, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "seen_jobs.txt")
	reg, err := registry.Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { reg.Close() })
	return New(reg, wait), path
}

func TestRecord_AppliedWritesOnce(t *testing.T) {
	tr, path := newTracker(t, time.Millisecond)
	job := scraper.Job{ID: "9999", URL: "https://www.dice.com/job-detail/9999"}

	require.NoError(t, tr.Record(context.Background(), job, applier.Result{Status: applier.StatusApplied}))
	require.NoError(t, tr.Record(context.Background(), job, applier.Result{Status: applier.StatusApplied}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(string(data), "9999"))
}

func TestRecord_FailedWritesNothing(t *testing.T) {
	tr, path := newTracker(t, time.Millisecond)
	job := scraper.Job{ID: "1234"}

	require.NoError(t, tr.Record(context.Background(), job, applier.Result{
		Status: applier.StatusFailed,
		Reason: "navigation timeout",
	}))

	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err), "registry file must stay untouched on failure")
}

func TestRecord_SkippedWritesNothing(t *testing.T) {
	tr, path := newTracker(t, time.Millisecond)
	job := scraper.Job{ID: "5678"}

	require.NoError(t, tr.Record(context.Background(), job, applier.Result{
		Status: applier.StatusSkipped,
		Reason: "no Easy Apply option present",
	}))

	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestRecord_PacesBetweenJobs(t *testing.T) {
	const wait = 80 * time.Millisecond
	tr, _ := newTracker(t, wait)

	start := time.Now()
	require.NoError(t, tr.Record(context.Background(), scraper.Job{ID: "a"}, applier.Result{Status: applier.StatusApplied}))
	require.NoError(t, tr.Record(context.Background(), scraper.Job{ID: "b"}, applier.Result{Status: applier.StatusApplied}))
	elapsed := time.Since(start)

	assert.GreaterOrEqual(t, elapsed, 2*wait-10*time.Millisecond,
		"each record must pause at least the configured delay")
}

func TestRecord_PacesAfterSlowApply(t *testing.T) {
	const wait = 200 * time.Millisecond
	tr, _ := newTracker(t, wait)

	require.NoError(t, tr.Record(context.Background(), scraper.Job{ID: "a"}, applier.Result{Status: applier.StatusApplied}))

	//browser interaction slower than the configured delay
	time.Sleep(3 * wait)

	start := time.Now()
	require.NoError(t, tr.Record(context.Background(), scraper.Job{ID: "b"}, applier.Result{Status: applier.StatusApplied}))
	elapsed := time.Since(start)

	assert.GreaterOrEqual(t, elapsed, wait-10*time.Millisecond,
		"the pause must not shrink because the apply took long")
}

func TestRecord_CancelledContext(t *testing.T) {
	tr, _ := newTracker(t, time.Minute)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := tr.Record(ctx, scraper.Job{ID: "c"}, applier.Result{Status: applier.StatusSkipped})
	assert.Error(t, err)
}
