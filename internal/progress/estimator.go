// Package progress produces synthetic, time-driven progress feedback for a
// single long-lived extraction request whose true completion percentage is
// unknown until it finishes.
package progress

import (
	"log/slog"
	"sync"
	"time"
)

// Checkpoint pairs an elapsed-time threshold with the percentage the
// displayed progress should approach and the phase label shown alongside.
type Checkpoint struct {
	After  time.Duration
	Target float64
	Label  string
}

// DefaultCheckpoints is the schedule used for document extraction runs.
// The estimator never reaches 100 on its own; the final target stays at 85
// until the orchestrator confirms success.
var DefaultCheckpoints = []Checkpoint{
	{After: 0, Target: 10, Label: "Uploading documents"},
	{After: 1500 * time.Millisecond, Target: 30, Label: "Extracting text"},
	{After: 4 * time.Second, Target: 55, Label: "Analyzing documents"},
	{After: 7 * time.Second, Target: 70, Label: "Extracting structured data"},
	{After: 12 * time.Second, Target: 85, Label: "Generating sheets"},
}

const (
	defaultTick = 200 * time.Millisecond
	minStep     = 0.5  // floor so late checkpoints still visibly move
	decayFactor = 0.08 // fraction of the remaining gap applied per tick
)

// Update is one progress emission.
type Update struct {
	Percent float64
	Label   string
}

// Estimator drives a checkpoint table on a fixed tick. Displayed progress
// is non-decreasing for the lifetime of one run and never overshoots the
// active checkpoint's target. At most one ticker is live at a time: Start
// always cancels the previous run first, and Stop is synchronous, so no
// emission can arrive after Stop returns.
type Estimator struct {
	checkpoints []Checkpoint
	tick        time.Duration
	onUpdate    func(Update)
	logger      *slog.Logger

	mu      sync.Mutex
	current float64
	label   string
	running bool
	stop    chan struct{}
	done    chan struct{}
}

// Option configures an Estimator.
type Option func(*Estimator)

// WithCheckpoints replaces the default checkpoint table.
func WithCheckpoints(cps []Checkpoint) Option {
	return func(e *Estimator) {
		if len(cps) > 0 {
			e.checkpoints = cps
		}
	}
}

// WithTick replaces the default tick interval.
func WithTick(d time.Duration) Option {
	return func(e *Estimator) {
		if d > 0 {
			e.tick = d
		}
	}
}

// New builds an Estimator. onUpdate receives every emission; it is called
// from the ticker goroutine and must not block.
func New(onUpdate func(Update), logger *slog.Logger, opts ...Option) *Estimator {
	if logger == nil {
		logger = slog.Default()
	}
	e := &Estimator{
		checkpoints: DefaultCheckpoints,
		tick:        defaultTick,
		onUpdate:    onUpdate,
		logger:      logger,
	}
	for _, o := range opts {
		o(e)
	}
	return e
}

// Start begins a fresh run from zero, cancelling any previous run first.
func (e *Estimator) Start() {
	e.Stop()

	e.mu.Lock()
	e.current = 0
	e.label = e.checkpoints[0].Label
	e.running = true
	e.stop = make(chan struct{})
	e.done = make(chan struct{})
	stop, done := e.stop, e.done
	e.mu.Unlock()

	e.logger.Debug("progress.start", "checkpoints", len(e.checkpoints), "tick_ms", e.tick.Milliseconds())
	go e.run(stop, done)
}

// Stop cancels the running ticker, if any, and waits for it to exit. It is
// safe to call repeatedly and from any goroutine.
func (e *Estimator) Stop() {
	e.mu.Lock()
	if !e.running {
		e.mu.Unlock()
		return
	}
	e.running = false
	stop, done := e.stop, e.done
	e.mu.Unlock()

	close(stop)
	<-done
	e.logger.Debug("progress.stop")
}

// Snapshot returns the most recent percentage and phase label.
func (e *Estimator) Snapshot() (float64, string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.current, e.label
}

func (e *Estimator) run(stop, done chan struct{}) {
	defer close(done)

	started := time.Now()
	ticker := time.NewTicker(e.tick)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			update, changed := e.step(time.Since(started))
			if changed && e.onUpdate != nil {
				e.onUpdate(update)
			}
		}
	}
}

// step advances the displayed percentage toward the active checkpoint's
// target. Increment = max(minStep, gap*decayFactor), clamped so the target
// is never overshot and the value never decreases.
func (e *Estimator) step(elapsed time.Duration) (Update, bool) {
	cp := e.checkpoints[0]
	for _, candidate := range e.checkpoints {
		if candidate.After <= elapsed {
			cp = candidate
		}
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.running {
		return Update{}, false
	}

	prev := e.current
	if e.current < cp.Target {
		inc := (cp.Target - e.current) * decayFactor
		if inc < minStep {
			inc = minStep
		}
		e.current += inc
		if e.current > cp.Target {
			e.current = cp.Target
		}
	}
	changed := e.current != prev || e.label != cp.Label
	e.label = cp.Label
	return Update{Percent: e.current, Label: e.label}, changed
}
