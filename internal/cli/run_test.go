package cli

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/briandowns/spinner"
	"github.com/golang/mock/gomock"

	"github.com/agbru/handlewatch/internal/cli/mocks"
	apperrors "github.com/agbru/handlewatch/internal/errors"
	"github.com/agbru/handlewatch/internal/sampler"
	"github.com/agbru/handlewatch/internal/scheduler"
)

// fakePoller returns a fixed result and records lifecycle calls.
type fakePoller struct {
	snap     sampler.Snapshot
	err      error
	startErr error

	started  atomic.Bool
	stopped  atomic.Bool
	waited   atomic.Bool
	interval time.Duration
}

func (f *fakePoller) RunOnce(context.Context) (sampler.Snapshot, error) { return f.snap, f.err }

func (f *fakePoller) Start(interval time.Duration) error {
	if f.startErr != nil {
		return f.startErr
	}
	f.interval = interval
	f.started.Store(true)
	return nil
}

func (f *fakePoller) Stop() { f.stopped.Store(true) }
func (f *fakePoller) Wait() { f.waited.Store(true) }

// withSpinner swaps newSpinner for the duration of a test.
func withSpinner(t *testing.T, s Spinner) {
	t.Helper()
	orig := newSpinner
	newSpinner = func(...spinner.Option) Spinner { return s }
	t.Cleanup(func() { newSpinner = orig })
}

func TestRunOnce_PrintsTable(t *testing.T) {
	ctrl := gomock.NewController(t)
	s := mocks.NewMockSpinner(ctrl)
	gomock.InOrder(
		s.EXPECT().UpdateSuffix(gomock.Any()),
		s.EXPECT().Start(),
		s.EXPECT().Stop(),
	)
	withSpinner(t, s)

	var out, errOut bytes.Buffer
	code := RunOnce(context.Background(), &fakePoller{snap: testSnapshot()}, OutputConfig{Now: testNow}, &out, &errOut, true)
	if code != apperrors.ExitSuccess {
		t.Fatalf("exit code = %d, stderr: %s", code, errOut.String())
	}
	if !strings.Contains(out.String(), "notepad++") {
		t.Errorf("table missing rows:\n%s", out.String())
	}
}

func TestRunOnce_JSON(t *testing.T) {
	var out, errOut bytes.Buffer
	code := RunOnce(context.Background(), &fakePoller{snap: testSnapshot()}, OutputConfig{JSON: true}, &out, &errOut, false)
	if code != apperrors.ExitSuccess {
		t.Fatalf("exit code = %d", code)
	}
	if !strings.HasPrefix(out.String(), "{") || strings.Contains(out.String(), "PID") {
		t.Errorf("expected bare JSON, got %q", out.String())
	}
}

func TestRunOnce_Error(t *testing.T) {
	ctrl := gomock.NewController(t)
	s := mocks.NewMockSpinner(ctrl)
	s.EXPECT().UpdateSuffix(gomock.Any())
	s.EXPECT().Start()
	s.EXPECT().Stop()
	withSpinner(t, s)

	var out, errOut bytes.Buffer
	p := &fakePoller{err: apperrors.EnumerationError{Cause: errors.New("denied")}}
	if code := RunOnce(context.Background(), p, OutputConfig{}, &out, &errOut, true); code != apperrors.ExitErrorSample {
		t.Errorf("exit code = %d, want %d", code, apperrors.ExitErrorSample)
	}
	if out.Len() != 0 {
		t.Errorf("nothing should reach stdout on error, got %q", out.String())
	}
}

func TestPrinter(t *testing.T) {
	t.Parallel()
	var out, errOut bytes.Buffer
	pr := NewPrinter(&out, &errOut, OutputConfig{JSON: true})
	pr.Print(scheduler.Result{Snapshot: testSnapshot()})
	pr.Print(scheduler.Result{Err: apperrors.EnumerationError{Cause: errors.New("denied")}})
	pr.Print(scheduler.Result{Snapshot: testSnapshot()})

	if passes, failed := pr.Counts(); passes != 3 || failed != 1 {
		t.Errorf("Counts() = %d/%d, want 3/1", passes, failed)
	}
	if n := strings.Count(out.String(), "\n"); n != 2 {
		t.Errorf("expected 2 JSON lines, got %d", n)
	}
	if !strings.Contains(errOut.String(), "denied") {
		t.Errorf("error not reported: %q", errOut.String())
	}
}

func TestRunRepeating(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	p := &fakePoller{}
	var errOut bytes.Buffer

	if code := RunRepeating(ctx, p, 5*time.Second, &errOut); code != apperrors.ExitSuccess {
		t.Errorf("exit code = %d", code)
	}
	if !p.started.Load() || !p.stopped.Load() || !p.waited.Load() {
		t.Error("session should be started, stopped and drained")
	}
	if p.interval != 5*time.Second {
		t.Errorf("interval = %v", p.interval)
	}
}

func TestRunRepeating_StartError(t *testing.T) {
	t.Parallel()
	p := &fakePoller{startErr: apperrors.ValidationError{Field: "interval", Message: "bad"}}
	var errOut bytes.Buffer
	if code := RunRepeating(context.Background(), p, 7*time.Second, &errOut); code != apperrors.ExitErrorConfig {
		t.Errorf("exit code = %d, want %d", code, apperrors.ExitErrorConfig)
	}
	if p.stopped.Load() {
		t.Error("Stop should not be called when Start failed")
	}
}
