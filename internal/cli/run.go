package cli

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/briandowns/spinner"

	apperrors "github.com/agbru/handlewatch/internal/errors"
	"github.com/agbru/handlewatch/internal/sampler"
	"github.com/agbru/handlewatch/internal/scheduler"
	"github.com/agbru/handlewatch/internal/ui"
)

// Poller is the part of scheduler.Poller the text mode drives.
type Poller interface {
	RunOnce(ctx context.Context) (sampler.Snapshot, error)
	Start(interval time.Duration) error
	Stop()
	Wait()
}

var _ Poller = (*scheduler.Poller)(nil)

// RunOnce runs a single pass behind a spinner on errOut, prints the
// snapshot to out and returns the exit code.
func RunOnce(ctx context.Context, p Poller, config OutputConfig, out, errOut io.Writer, showSpinner bool) int {
	var s Spinner
	if showSpinner {
		s = newSpinner(spinner.WithWriter(errOut))
		s.UpdateSuffix(" Sampling processes...")
		s.Start()
	}
	snap, err := p.RunOnce(ctx)
	if s != nil {
		s.Stop()
	}
	if err != nil {
		return DisplayError(errOut, err)
	}
	if config.JSON {
		if err := WriteJSON(out, snap); err != nil {
			return DisplayError(errOut, err)
		}
		return apperrors.ExitSuccess
	}
	DisplaySnapshot(out, snap, config)
	return apperrors.ExitSuccess
}

// Printer is a scheduler.Sink that prints every result. Failed passes are
// reported on errOut and the loop keeps going.
type Printer struct {
	out    io.Writer
	errOut io.Writer
	config OutputConfig

	mu     sync.Mutex
	passes int
	errors int
}

// NewPrinter creates a Printer.
func NewPrinter(out, errOut io.Writer, config OutputConfig) *Printer {
	return &Printer{out: out, errOut: errOut, config: config}
}

// Print writes one result.
func (pr *Printer) Print(r scheduler.Result) {
	pr.mu.Lock()
	defer pr.mu.Unlock()
	pr.passes++
	if r.Err != nil {
		pr.errors++
		DisplayError(pr.errOut, r.Err)
		return
	}
	if pr.config.JSON {
		if err := WriteJSON(pr.out, r.Snapshot); err != nil {
			DisplayError(pr.errOut, err)
		}
		return
	}
	DisplaySnapshot(pr.out, r.Snapshot, pr.config)
}

// Counts returns the number of printed passes and how many of them failed.
func (pr *Printer) Counts() (passes, failed int) {
	pr.mu.Lock()
	defer pr.mu.Unlock()
	return pr.passes, pr.errors
}

// RunRepeating starts a repeating session and blocks until ctx is done,
// then stops the session and waits for the loop to exit.
func RunRepeating(ctx context.Context, p Poller, interval time.Duration, errOut io.Writer) int {
	if err := p.Start(interval); err != nil {
		return DisplayError(errOut, err)
	}
	<-ctx.Done()
	p.Stop()
	p.Wait()
	fmt.Fprintf(errOut, "%sStopped.%s\n", ui.ColorCyan(), ui.ColorReset())
	return apperrors.ExitSuccess
}
