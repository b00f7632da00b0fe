package scheduler_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/obahii/data-cleaning/internal/runner"
	"github.com/obahii/data-cleaning/internal/scheduler"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type fakeRunner struct {
	mu   sync.Mutex
	jobs []runner.Job
	err  error
	ran  chan struct{}
}

func newFakeRunner() *fakeRunner { return &fakeRunner{ran: make(chan struct{}, 16)} }

func (f *fakeRunner) Run(_ context.Context, job runner.Job) (*runner.Summary, error) {
	f.mu.Lock()
	f.jobs = append(f.jobs, job)
	f.mu.Unlock()
	f.ran <- struct{}{}
	if f.err != nil {
		return nil, f.err
	}
	return &runner.Summary{RunID: "run-1", Job: job, OutputRows: 3}, nil
}

func (f *fakeRunner) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.jobs)
}

func waitRun(t *testing.T, f *fakeRunner) {
	t.Helper()
	select {
	case <-f.ran:
	case <-time.After(5 * time.Second):
		t.Fatal("job did not run")
	}
}

// ── Cron ─────────────────────────────────────────────────────────────────────

func TestStart_RunsImmediately(t *testing.T) {
	f := newFakeRunner()
	job := runner.Job{Input: "data.csv", Output: "cleaned_file.csv"}
	s := scheduler.New(f, job, "@every 1h", zap.NewNop())

	require.NoError(t, s.Start(context.Background()))
	waitRun(t, f)
	s.Stop()

	assert.Equal(t, 1, f.calls())
	assert.Equal(t, job, f.jobs[0])
}

func TestStart_BadSpec(t *testing.T) {
	s := scheduler.New(newFakeRunner(), runner.Job{}, "every now and then", nil)
	assert.Error(t, s.Start(context.Background()))
}

func TestStart_FailureIsLogged(t *testing.T) {
	core, logs := observer.New(zapcore.ErrorLevel)
	f := newFakeRunner()
	f.err = errors.New("open data.csv: no such file or directory")

	s := scheduler.New(f, runner.Job{}, "@every 1h", zap.New(core))
	require.NoError(t, s.Start(context.Background()))
	waitRun(t, f)
	s.Stop()

	entries := logs.FilterMessage("clean cycle failed").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "startup", entries[0].ContextMap()["trigger"])
}

func TestStart_CancelledContextSkipsRun(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	f := newFakeRunner()

	s := scheduler.New(f, runner.Job{}, "@every 1h", nil)
	require.NoError(t, s.Start(ctx))
	s.Stop()

	assert.Zero(t, f.calls())
}

// ── Watch ────────────────────────────────────────────────────────────────────

func TestWatch_RerunsOnWrite(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "data.csv")
	require.NoError(t, os.WriteFile(input, []byte("nom\n"), 0o644))

	f := newFakeRunner()
	s := scheduler.New(f, runner.Job{Input: input}, "@every 1h", nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Watch(ctx, 20*time.Millisecond) }()

	// Keep writing until the watcher is up and has seen a change.
	deadline := time.After(5 * time.Second)
	tick := time.NewTicker(50 * time.Millisecond)
	defer tick.Stop()
loop:
	for {
		select {
		case <-f.ran:
			break loop
		case <-tick.C:
			require.NoError(t, os.WriteFile(input, []byte("nom\nAlami\n"), 0o644))
		case <-deadline:
			t.Fatal("watch did not trigger a run")
		}
	}

	cancel()
	require.NoError(t, <-done)
}

func TestWatch_IgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "data.csv")
	require.NoError(t, os.WriteFile(input, []byte("nom\n"), 0o644))

	f := newFakeRunner()
	s := scheduler.New(f, runner.Job{Input: input}, "@every 1h", nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Watch(ctx, 10*time.Millisecond) }()

	for i := 0; i < 5; i++ {
		require.NoError(t, os.WriteFile(filepath.Join(dir, "cleaned_file.csv"), []byte("x\n"), 0o644))
		time.Sleep(20 * time.Millisecond)
	}
	cancel()
	require.NoError(t, <-done)

	assert.Zero(t, f.calls())
}

func TestWatch_MissingDir(t *testing.T) {
	s := scheduler.New(newFakeRunner(), runner.Job{Input: filepath.Join(t.TempDir(), "nope", "data.csv")}, "@every 1h", nil)
	assert.Error(t, s.Watch(context.Background(), scheduler.DefaultDebounce))
}
