package app

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	apperrors "github.com/agbru/handlewatch/internal/errors"
	"github.com/agbru/handlewatch/internal/procinfo"
	"github.com/agbru/handlewatch/internal/sampler"
)

// stubSampler returns a fixed snapshot or error and runs onSample after
// every pass.
type stubSampler struct {
	mu       sync.Mutex
	snap     sampler.Snapshot
	err      error
	calls    int
	onSample func()
}

func (s *stubSampler) Sample(_ context.Context, filter string) (sampler.Snapshot, error) {
	s.mu.Lock()
	s.calls++
	onSample := s.onSample
	s.mu.Unlock()
	if onSample != nil {
		defer onSample()
	}
	if s.err != nil {
		return sampler.Snapshot{}, s.err
	}
	snap := s.snap
	snap.FilterUsed = filter
	return snap, nil
}

func testSnapshot() sampler.Snapshot {
	matched := []procinfo.ProcessSample{
		{PID: 4242, Name: "notepad", HandleCount: 340, ThreadCount: 20, PagedPoolKB: 10, PagedPoolPeakKB: 20},
		{PID: 6060, Name: "notepad", HandleCount: 80, ThreadCount: 10, PagedPoolKB: 10, PagedPoolPeakKB: 10},
	}
	return sampler.Snapshot{
		Matched:               matched,
		FilteredTotals:        sampler.SumTotals(matched),
		SystemUserHandles:     1200,
		SystemGdiHandles:      900,
		UserHandleCeiling:     sampler.UserHandleCeiling,
		UserSaturationPercent: sampler.SaturationPercent(1200),
		ProcessCount:          50,
		Timestamp:             time.Now(),
	}
}

func newTestApp(t *testing.T, s *stubSampler, args ...string) (*Application, *bytes.Buffer) {
	t.Helper()
	var errBuf bytes.Buffer
	full := append([]string{"handlewatch", "--env-file", "", "--tui=false", "--no-color"}, args...)
	a, err := New(full, &errBuf, WithSampler(s))
	if err != nil {
		t.Fatalf("New() failed: %v\n%s", err, errBuf.String())
	}
	return a, &errBuf
}

func TestNew_ParsesConfig(t *testing.T) {
	a, _ := newTestApp(t, &stubSampler{}, "--filter", "notepad", "--top", "3")
	if a.Config.Filter != "notepad" || a.Config.Top != 3 {
		t.Errorf("unexpected config %+v", a.Config)
	}
	if a.ProgramName != "handlewatch" {
		t.Errorf("ProgramName = %q", a.ProgramName)
	}
}

func TestNew_Errors(t *testing.T) {
	var buf bytes.Buffer
	_, err := New([]string{"handlewatch", "--help"}, &buf)
	if !IsHelpError(err) {
		t.Errorf("expected help error, got %v", err)
	}

	_, err = New([]string{"handlewatch", "--env-file", ""}, &buf)
	if !errors.Is(err, apperrors.ErrInvalidFilter) {
		t.Errorf("expected ErrInvalidFilter for a missing filter, got %v", err)
	}
	if apperrors.ExitCode(err) != apperrors.ExitErrorConfig {
		t.Errorf("missing filter should map to the config exit code")
	}
}

func TestRun_OnceJSON(t *testing.T) {
	s := &stubSampler{snap: testSnapshot()}
	a, _ := newTestApp(t, s, "--once", "--json", "notepad")

	var out bytes.Buffer
	if code := a.Run(context.Background(), &out); code != apperrors.ExitSuccess {
		t.Fatalf("Run() = %d, want success", code)
	}
	var got sampler.Snapshot
	if err := json.Unmarshal(out.Bytes(), &got); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, out.String())
	}
	if got.FilterUsed != "notepad" || len(got.Matched) != 2 {
		t.Errorf("unexpected snapshot %+v", got)
	}
	if s.calls != 1 {
		t.Errorf("Sample called %d times, want 1", s.calls)
	}
}

func TestRun_OnceEnumerationFailure(t *testing.T) {
	s := &stubSampler{err: apperrors.EnumerationError{Cause: errors.New("access denied")}}
	a, errBuf := newTestApp(t, s, "--once", "notepad")

	var out bytes.Buffer
	if code := a.Run(context.Background(), &out); code != apperrors.ExitErrorSample {
		t.Errorf("Run() = %d, want %d", code, apperrors.ExitErrorSample)
	}
	if !strings.Contains(errBuf.String(), "access denied") {
		t.Errorf("expected the cause on stderr, got %q", errBuf.String())
	}
}

func TestRun_RepeatingUntilCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	s := &stubSampler{snap: testSnapshot(), onSample: cancel}
	a, errBuf := newTestApp(t, s, "--interval", "1s", "--log-level", "error", "notepad")

	var out bytes.Buffer
	if code := a.Run(ctx, &out); code != apperrors.ExitSuccess {
		t.Fatalf("Run() = %d, want success\n%s", code, errBuf.String())
	}
	if !strings.Contains(out.String(), "notepad") {
		t.Errorf("expected the first pass to be printed, got %q", out.String())
	}
	if !strings.Contains(errBuf.String(), "Stopped.") {
		t.Errorf("expected the stop notice, got %q", errBuf.String())
	}
}

func TestRun_MetricsEndpointFailure(t *testing.T) {
	s := &stubSampler{snap: testSnapshot()}
	a, errBuf := newTestApp(t, s, "--metrics-addr", "127.0.0.1:-1", "--log-level", "error", "notepad")

	done := make(chan int, 1)
	go func() { done <- a.Run(context.Background(), &bytes.Buffer{}) }()

	select {
	case code := <-done:
		if code != apperrors.ExitErrorGeneric {
			t.Errorf("Run() = %d, want %d", code, apperrors.ExitErrorGeneric)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("a failing metrics endpoint should end the session")
	}
	if !strings.Contains(errBuf.String(), "Metrics endpoint failed") {
		t.Errorf("expected the endpoint error, got %q", errBuf.String())
	}
}

func TestRun_Completion(t *testing.T) {
	var errBuf bytes.Buffer
	a, err := New([]string{"handlewatch", "--completion", "bash"}, &errBuf)
	if err != nil {
		t.Fatal(err)
	}
	var out bytes.Buffer
	if code := a.Run(context.Background(), &out); code != apperrors.ExitSuccess {
		t.Fatalf("Run() = %d", code)
	}
	if !strings.Contains(out.String(), "--filter") {
		t.Error("expected the completion script to list flags")
	}

	a.Config.Completion = "tcsh"
	if code := a.Run(context.Background(), &out); code != apperrors.ExitErrorConfig {
		t.Errorf("unsupported shell: Run() = %d, want %d", code, apperrors.ExitErrorConfig)
	}
}

func TestNewLogger_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "handlewatch.log")
	a, _ := newTestApp(t, &stubSampler{}, "--log-file", path, "notepad")

	logger, closeLog, err := a.newLogger()
	if err != nil {
		t.Fatal(err)
	}
	logger.Info("hello")
	closeLog()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `"component":"handlewatch"`) || !strings.Contains(string(data), "hello") {
		t.Errorf("unexpected log content %q", data)
	}
}

func TestNewLogger_BadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "dir", "x.log")
	a, _ := newTestApp(t, &stubSampler{}, "--log-file", path, "notepad")

	_, _, err := a.newLogger()
	var configErr apperrors.ConfigError
	if !errors.As(err, &configErr) {
		t.Errorf("expected ConfigError, got %v", err)
	}
}

func TestVersion(t *testing.T) {
	tests := []struct {
		args []string
		want bool
	}{
		{[]string{"--version"}, true},
		{[]string{"-f", "x", "-V"}, true},
		{[]string{"-f", "x"}, false},
		{[]string{"--", "--version"}, false},
	}
	for _, tt := range tests {
		if got := HasVersionFlag(tt.args); got != tt.want {
			t.Errorf("HasVersionFlag(%v) = %v, want %v", tt.args, got, tt.want)
		}
	}

	var buf bytes.Buffer
	PrintVersion(&buf)
	if !strings.HasPrefix(buf.String(), "handlewatch "+Version) {
		t.Errorf("unexpected version output %q", buf.String())
	}
}
