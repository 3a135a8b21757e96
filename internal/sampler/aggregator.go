package sampler

import (
	"context"
	"sort"
	"strings"
	"sync/atomic"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	apperrors "github.com/agbru/handlewatch/internal/errors"
	"github.com/agbru/handlewatch/internal/logging"
	"github.com/agbru/handlewatch/internal/procinfo"
)

// tracerName identifies the spans emitted by this package.
const tracerName = "github.com/agbru/handlewatch/internal/sampler"

// DefaultConcurrency bounds the per-process fan-out when no option is given.
const DefaultConcurrency = 8

// Aggregator runs sampling passes: it enumerates processes, filters them by
// name prefix, reads the matches and computes system-wide GUI object totals.
// An Aggregator holds no state between passes and is safe for concurrent use,
// although the poll scheduler never runs two passes at once.
type Aggregator struct {
	host        procinfo.Host
	reader      *procinfo.Reader
	gui         procinfo.GuiResourceCounter
	concurrency int
	logger      logging.Logger
	now         func() time.Time
	tracer      trace.Tracer
}

// Option configures an Aggregator during construction.
type Option func(*Aggregator)

// WithConcurrency bounds the number of concurrent per-process reads.
func WithConcurrency(n int) Option {
	return func(a *Aggregator) {
		if n > 0 {
			a.concurrency = n
		}
	}
}

// WithLogger sets the logger used for per-pass diagnostics.
func WithLogger(l logging.Logger) Option {
	return func(a *Aggregator) {
		if l != nil {
			a.logger = l
		}
	}
}

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(a *Aggregator) { a.now = now }
}

// New creates an Aggregator over the given host capabilities.
func New(host procinfo.Host, reader *procinfo.Reader, gui procinfo.GuiResourceCounter, opts ...Option) *Aggregator {
	a := &Aggregator{
		host:        host,
		reader:      reader,
		gui:         gui,
		concurrency: DefaultConcurrency,
		logger:      logging.Nop(),
		now:         time.Now,
		tracer:      otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// NewSystem creates an Aggregator backed by the live host.
func NewSystem(opts ...Option) *Aggregator {
	return New(
		procinfo.NewSystemHost(),
		procinfo.NewReader(procinfo.NewPagedPoolCounter()),
		procinfo.NewGuiResourceCounter(),
		opts...,
	)
}

// Sample runs one pass for the given name prefix.
//
// An empty or whitespace-only filter fails with an InvalidFilterError before
// any host call. A failure to list processes at all fails with an
// EnumerationError. Any failure scoped to a single process is absorbed: the
// process is excluded (identity unreadable) or reported with zeroed fields.
func (a *Aggregator) Sample(ctx context.Context, filter string) (Snapshot, error) {
	prefix := strings.TrimSpace(filter)
	if prefix == "" {
		return Snapshot{}, apperrors.InvalidFilterError{Filter: filter}
	}

	ctx, span := a.tracer.Start(ctx, "sampler.Sample",
		trace.WithAttributes(attribute.String("handlewatch.filter", prefix)))
	defer span.End()
	start := a.now()

	procs, err := a.host.Processes(ctx)
	if err != nil {
		err = apperrors.EnumerationError{Cause: err}
		span.RecordError(err)
		span.SetStatus(codes.Error, "process enumeration failed")
		a.logger.Error("process enumeration failed", err, logging.String("filter", prefix))
		return Snapshot{}, err
	}

	candidates := make([]procinfo.Process, 0, len(procs))
	for _, p := range procs {
		name, err := p.Name(ctx)
		if err != nil {
			continue
		}
		if procinfo.HasPrefixFold(name, prefix) {
			candidates = append(candidates, p)
		}
	}

	matched := a.readAll(ctx, candidates)
	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].HandleCount > matched[j].HandleCount
	})

	users, gdi := a.countGui(ctx, procs)
	end := a.now()

	snap := Snapshot{
		Matched:               matched,
		FilteredTotals:        SumTotals(matched),
		SystemUserHandles:     users,
		SystemGdiHandles:      gdi,
		UserHandleCeiling:     UserHandleCeiling,
		UserSaturationPercent: SaturationPercent(users),
		FilterUsed:            prefix,
		ProcessCount:          len(procs),
		Timestamp:             end,
		Duration:              end.Sub(start),
	}

	span.SetAttributes(
		attribute.Int("handlewatch.processes", len(procs)),
		attribute.Int("handlewatch.matched", len(matched)),
		attribute.Int64("handlewatch.user_handles", users),
		attribute.Float64("handlewatch.user_saturation", snap.UserSaturationPercent),
	)
	a.logger.Debug("sample complete",
		logging.String("filter", prefix),
		logging.Int("processes", len(procs)),
		logging.Int("matched", len(matched)),
		logging.Int64("user_handles", users),
		logging.Int64("gdi_handles", gdi),
		logging.Duration("elapsed", snap.Duration),
	)
	return snap, nil
}

// readAll reads every candidate with bounded concurrency, preserving
// enumeration order and dropping records whose identity could not be read.
func (a *Aggregator) readAll(ctx context.Context, candidates []procinfo.Process) []procinfo.ProcessSample {
	samples := make([]procinfo.ProcessSample, len(candidates))
	present := make([]bool, len(candidates))

	var g errgroup.Group
	g.SetLimit(a.concurrency)
	for i, p := range candidates {
		g.Go(func() error {
			samples[i], present[i] = a.reader.Read(ctx, p)
			return nil
		})
	}
	_ = g.Wait()

	out := samples[:0]
	for i, s := range samples {
		if present[i] {
			out = append(out, s)
		}
	}
	return out
}

// countGui sums USER and GDI object counts over every enumerated process.
// Processes that cannot be inspected contribute zero.
func (a *Aggregator) countGui(ctx context.Context, procs []procinfo.Process) (users, gdi int64) {
	var userTotal, gdiTotal atomic.Int64

	var g errgroup.Group
	g.SetLimit(a.concurrency)
	for _, p := range procs {
		g.Go(func() error {
			r, err := a.gui.GuiResources(ctx, p.PID())
			if err != nil {
				return nil
			}
			userTotal.Add(max(r.User, 0))
			gdiTotal.Add(max(r.GDI, 0))
			return nil
		})
	}
	_ = g.Wait()
	return userTotal.Load(), gdiTotal.Load()
}
