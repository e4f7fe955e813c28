package mambo

import (
	"context"
	"math"
	"sync"
	"time"
)

// GradState summarizes one training run: the current weights, how many
// gradient updates went into them, and the run's lifetime. It is a value
// type; mutations return a new state so a snapshot handed to the loss
// monitor stays consistent no matter what the update path does next.
type GradState struct {
	Grad      Vec
	Updates   int64
	Start     time.Time
	End       time.Time
	FinalLoss float64
}

// StartGradState seeds a run with its initial weights.
func StartGradState(w Vec) GradState {
	return GradState{Grad: w, Start: time.Now()}
}

// Update subtracts a gradient step from the weights and bumps the counter.
// Workers send the gradient of the loss, so subtraction is descent.
func (s GradState) Update(delta Vec) GradState {
	s.Grad = s.Grad.Sub(delta)
	s.Updates++
	return s
}

// ReplaceGrad swaps the weight vector without touching the counter.
func (s GradState) ReplaceGrad(w Vec) GradState {
	s.Grad = w
	return s
}

// Finish stamps the end of the run. A finished state must not be mutated
// again; the owning cell enforces that.
func (s GradState) Finish(loss float64) GradState {
	s.End = time.Now()
	s.FinalLoss = loss
	return s
}

// Terminal reports whether the run has ended.
func (s GradState) Terminal() bool {
	return !s.End.IsZero()
}

// BestTracker remembers the lowest loss the monitor has observed and the
// weight snapshot that produced it. The pair is only ever read or replaced
// together, under the trainer's lock.
type BestTracker struct {
	Loss float64
	Grad Vec
}

func newBestTracker(dim int) BestTracker {
	return BestTracker{Loss: math.Inf(1), Grad: Zeros(dim)}
}

// Observe returns the tracker after seeing (loss, grad), and whether it
// improved.
func (b BestTracker) Observe(loss float64, grad Vec) (BestTracker, bool) {
	if loss < b.Loss {
		return BestTracker{Loss: loss, Grad: grad}, true
	}
	return b, false
}

// AsyncConfig is immutable for the lifetime of one async run.
type AsyncConfig struct {
	InitialWeights Vec
	MaxSteps       int64
	Stopping       StoppingCriterion
	BatchSize      int
	Split          SplitStrategy
	CheckEvery     int64

	// Monitor knobs. Zero values select the defaults: no smoothing and a
	// 2 second backoff between probes.
	LeakCoef float64
	Backoff  time.Duration
}

const defaultMonitorBackoff = 2 * time.Second

func (c AsyncConfig) normalized() AsyncConfig {
	if c.Stopping == nil {
		c.Stopping = NeverStop
	}
	if c.Split == nil {
		c.Split = ContiguousSplit
	}
	if c.LeakCoef == 0 {
		c.LeakCoef = 1
	}
	if c.Backoff == 0 {
		c.Backoff = defaultMonitorBackoff
	}
	return c
}

// promise is a single-shot result cell. TrySet reports whether this call
// completed it; later calls lose and leave the first result in place.
type promise struct {
	once  sync.Once
	done  chan struct{}
	state GradState
	err   error
}

func newPromise() *promise {
	return &promise{done: make(chan struct{})}
}

func (p *promise) TrySet(state GradState, err error) bool {
	won := false
	p.once.Do(func() {
		p.state = state
		p.err = err
		won = true
		close(p.done)
	})
	return won
}

// Done is closed once the promise holds a result.
func (p *promise) Done() <-chan struct{} {
	return p.done
}

// Wait blocks until the promise completes or the context is cancelled.
func (p *promise) Wait(ctx context.Context) (GradState, error) {
	select {
	case <-p.done:
		return p.state, p.err
	case <-ctx.Done():
		return GradState{}, ctx.Err()
	}
}
