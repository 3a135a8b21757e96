package scheduler

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/agbru/handlewatch/internal/config"
	apperrors "github.com/agbru/handlewatch/internal/errors"
	"github.com/agbru/handlewatch/internal/logging"
	"github.com/agbru/handlewatch/internal/sampler"
)

// Sampler runs one sampling pass. *sampler.Aggregator implements it.
type Sampler interface {
	Sample(ctx context.Context, filter string) (sampler.Snapshot, error)
}

// State is the externally visible scheduler state.
type State int32

const (
	// Idle means no pass is running and no repeating session is active.
	Idle State = iota
	// Running means a single-shot pass is in flight.
	Running
	// Repeating means a repeating session is active.
	Repeating
)

// String returns the display name of the state.
func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Running:
		return "running"
	case Repeating:
		return "repeating"
	}
	return fmt.Sprintf("State(%d)", int32(s))
}

// Result is published once per completed pass.
type Result struct {
	Snapshot sampler.Snapshot
	// Err is the pass-level error, if any. Snapshot is zero when Err is set.
	Err error
	// Generation identifies the repeating session that produced the result.
	// Passes run outside any session carry the generation of the last one.
	Generation uint64
}

// Sink receives results. It is called from the sampling goroutine and must
// hand the value off to its own loop rather than block.
type Sink func(Result)

// Sinks fans a result out to every non-nil sink, in order.
func Sinks(sinks ...Sink) Sink {
	return func(r Result) {
		for _, s := range sinks {
			if s != nil {
				s(r)
			}
		}
	}
}

// Option configures a Poller.
type Option func(*Poller)

// WithSink sets the result sink.
func WithSink(s Sink) Option {
	return func(p *Poller) { p.sink = s }
}

// WithLogger sets the logger.
func WithLogger(l logging.Logger) Option {
	return func(p *Poller) {
		if l != nil {
			p.logger = l
		}
	}
}

// WithAllowedIntervals replaces config.AllowedIntervals as the set of
// intervals Start accepts.
func WithAllowedIntervals(intervals ...time.Duration) Option {
	return func(p *Poller) { p.allowed = slices.Clone(intervals) }
}

// sampleKey is the single singleflight key: every pass coalesces.
const sampleKey = "sample"

// Poller schedules sampling passes for one name filter.
//
// A Poller is safe for concurrent use. RunOnce may be called while a
// repeating session is active; it joins the in-flight pass if there is one.
type Poller struct {
	sampler Sampler
	sink    Sink
	logger  logging.Logger
	allowed []time.Duration

	group    singleflight.Group
	inflight atomic.Int32

	mu         sync.Mutex
	filter     string
	interval   time.Duration
	cancel     context.CancelFunc
	done       chan struct{}
	generation uint64
}

// New creates an idle Poller sampling processes whose name starts with
// filter.
func New(s Sampler, filter string, opts ...Option) *Poller {
	p := &Poller{
		sampler:  s,
		logger:   logging.Nop(),
		allowed:  config.AllowedIntervals,
		filter:   filter,
		interval: config.DefaultInterval,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Filter returns the current name filter.
func (p *Poller) Filter() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.filter
}

// SetFilter changes the filter used by subsequent passes. A pass already in
// flight keeps the filter it started with.
func (p *Poller) SetFilter(filter string) {
	p.mu.Lock()
	p.filter = filter
	p.mu.Unlock()
}

// Interval returns the interval of the current or last repeating session.
func (p *Poller) Interval() time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.interval
}

// Generation returns the number of repeating sessions started so far.
func (p *Poller) Generation() uint64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.generation
}

// State reports the scheduler state.
func (p *Poller) State() State {
	p.mu.Lock()
	repeating := p.cancel != nil
	p.mu.Unlock()
	switch {
	case repeating:
		return Repeating
	case p.inflight.Load() > 0:
		return Running
	default:
		return Idle
	}
}

// RunOnce runs a single pass and publishes its result to the sink.
//
// If a pass is already in flight, RunOnce waits for it and returns its
// result instead of starting a second one; the result is published once.
// Cancelling ctx does not interrupt a pass that has started. Further calls
// are always allowed afterwards, whatever the outcome.
func (p *Poller) RunOnce(ctx context.Context) (sampler.Snapshot, error) {
	return p.run(ctx, p.Generation())
}

// run executes or joins a pass. A pass started here is tagged with gen,
// so a session loop always tags its own passes, even one that begins
// after a newer session has started.
func (p *Poller) run(ctx context.Context, gen uint64) (sampler.Snapshot, error) {
	v, err, _ := p.group.Do(sampleKey, func() (any, error) {
		p.inflight.Add(1)
		defer p.inflight.Add(-1)

		filter := p.Filter()
		snap, err := p.sampler.Sample(context.WithoutCancel(ctx), filter)
		if err != nil {
			p.logger.Error("sampling pass failed", err,
				logging.String("filter", filter),
				logging.Uint64("generation", gen))
		}
		if p.sink != nil {
			p.sink(Result{Snapshot: snap, Err: err, Generation: gen})
		}
		return snap, err
	})
	snap, _ := v.(sampler.Snapshot)
	return snap, err
}

// Start begins a repeating session that runs a pass, then sleeps interval,
// until Stop is called. The interval must be one of the allowed intervals.
//
// Start is a no-op when the Poller is not Idle. Each session gets its own
// cancellation scope, so a Stop aimed at an earlier session cannot end it.
func (p *Poller) Start(interval time.Duration) error {
	if !slices.Contains(p.allowed, interval) {
		return apperrors.ValidationError{
			Field:   "interval",
			Message: fmt.Sprintf("%s is not an allowed interval", interval),
		}
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.cancel != nil || p.inflight.Load() > 0 {
		return nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	p.generation++
	p.interval = interval
	p.cancel = cancel
	done := make(chan struct{})
	p.done = done

	p.logger.Info("repeating session started",
		logging.Duration("interval", interval),
		logging.Uint64("generation", p.generation))
	go p.loop(ctx, interval, p.generation, done)
	return nil
}

// Stop ends the current repeating session. A pending sleep is interrupted
// at once; a pass that is executing completes and is published before the
// loop exits. Stop is a no-op when no session is active.
func (p *Poller) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.cancel == nil {
		return
	}
	p.cancel()
	p.cancel = nil
	p.logger.Info("repeating session stopped", logging.Uint64("generation", p.generation))
}

// Wait blocks until the most recently started loop goroutine has exited.
func (p *Poller) Wait() {
	p.mu.Lock()
	done := p.done
	p.mu.Unlock()
	if done != nil {
		<-done
	}
}

func (p *Poller) loop(ctx context.Context, interval time.Duration, gen uint64, done chan struct{}) {
	defer func() {
		close(done)
		p.mu.Lock()
		if p.done == done {
			p.done = nil
		}
		p.mu.Unlock()
	}()

	timer := time.NewTimer(interval)
	defer timer.Stop()

	for {
		if ctx.Err() != nil {
			return
		}
		_, _ = p.run(ctx, gen)
		if ctx.Err() != nil {
			return
		}
		timer.Reset(interval)
		select {
		case <-ctx.Done():
			return
		case <-timer.C:
		}
	}
}
