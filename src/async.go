package mambo

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// asyncRun is the state of one asynchronous computation. GradState, the
// best tracker and the completion promise form a single transactional cell:
// every mutation happens under the trainer's mutex so termination always
// sees a consistent (grad, updates, best) triple.
type asyncRun struct {
	id      string
	cfg     AsyncConfig
	state   GradState
	best    BestTracker
	promise *promise
	ending  bool
}

// asyncTrainer drives the asynchronous strategy: workers are seeded once,
// then stream gradient updates at their own pace while the loss monitor
// watches convergence out-of-band.
type asyncTrainer struct {
	*core
	cfg AsyncConfig

	// mu is the transactional cell: it guards run, its GradState, its
	// best tracker and the ending flag as one unit.
	mu  sync.Mutex
	run *asyncRun
}

func newAsyncTrainer(c *core, cfg AsyncConfig) *asyncTrainer {
	return &asyncTrainer{core: c, cfg: cfg.normalized()}
}

// Fit waits for quorum, starts the run and blocks until the completion
// promise resolves: maxSteps reached, convergence detected, or explicit
// termination.
func (t *asyncTrainer) Fit(ctx context.Context) (GradState, error) {
	if err := t.cluster.WaitReady(ctx); err != nil {
		return GradState{}, err
	}
	p, err := t.start(ctx)
	if err != nil {
		return GradState{}, err
	}
	return p.Wait(ctx)
}

// start performs the atomic init: install a fresh promise, seed GradState,
// reset the best tracker, partition the dataset, and send every worker its
// assignment. Fails with ErrAlreadyRunning while a run is active.
func (t *asyncTrainer) start(ctx context.Context) (*promise, error) {
	run := &asyncRun{
		id:      uuid.NewString(),
		cfg:     t.cfg,
		state:   StartGradState(t.cfg.InitialWeights),
		best:    newBestTracker(t.cfg.InitialWeights.Len()),
		promise: newPromise(),
	}

	t.mu.Lock()
	if t.run != nil && !t.run.state.Terminal() {
		t.mu.Unlock()
		return nil, ErrAlreadyRunning
	}
	t.run = run
	t.mu.Unlock()

	nodes, workers := t.cluster.Snapshot()
	ranges := run.cfg.Split(t.data.Len(), len(workers))
	if len(ranges) != len(workers) {
		err := fmt.Errorf("async run %s: split produced %d ranges for %d workers", run.id, len(ranges), len(workers))
		t.fail(run, err)
		return nil, err
	}
	if dropped := droppedRemainder(t.data.Len(), len(workers)); dropped > 0 {
		t.log.Warn("dataset does not divide evenly, trailing samples ignored",
			"run", run.id, "dropped", dropped, "samples", t.data.Len(), "workers", len(workers))
	}

	t.log.Info("async run starting", "run", run.id, "workers", len(nodes),
		"max_steps", run.cfg.MaxSteps, "check_every", run.cfg.CheckEvery,
		"weights_compression", payloadRatio(run.cfg.InitialWeights))

	g, gctx := errgroup.WithContext(ctx)
	for i, w := range workers {
		i, w := i, w
		g.Go(func() error {
			return w.InitAsync(gctx, run.cfg.InitialWeights, ranges[i], run.cfg.BatchSize)
		})
	}
	if err := g.Wait(); err != nil {
		err = fmt.Errorf("async run %s: seeding workers: %w", run.id, err)
		t.fail(run, err)
		return nil, err
	}

	go t.monitor(run)
	return run.promise, nil
}

// HandleGradUpdate applies one streamed gradient step. Updates that arrive
// after termination are logged and swallowed so late stragglers drain
// without errors. Reaching maxSteps terminates the run.
func (t *asyncTrainer) HandleGradUpdate(delta Vec) error {
	t.mu.Lock()
	run := t.run
	if run == nil || run.state.Terminal() {
		t.mu.Unlock()
		t.log.Debug("gradient update after termination, dropping")
		return nil
	}
	if delta.Len() != run.state.Grad.Len() {
		t.mu.Unlock()
		return fmt.Errorf("gradient update dimension %d does not match weights dimension %d",
			delta.Len(), run.state.Grad.Len())
	}
	run.state = run.state.Update(delta)
	updates := run.state.Updates
	t.mu.Unlock()

	t.metrics.asyncUpdate()
	if updates >= run.cfg.MaxSteps {
		t.log.Info("step budget reached", "run", run.id, "updates", updates)
		t.end(run)
	}
	return nil
}

// end terminates a run: broadcast stopAsync, then atomically promote the
// best observed weights to the terminal GradState and complete the promise.
// Idempotent; a second call is a no-op.
func (t *asyncTrainer) end(run *asyncRun) {
	t.mu.Lock()
	if run.ending || run.state.Terminal() {
		t.mu.Unlock()
		return
	}
	run.ending = true
	t.mu.Unlock()

	_, workers := t.cluster.Snapshot()
	for i, w := range workers {
		ctx, cancel := context.WithTimeout(context.Background(), gossipTimeout)
		if err := w.StopAsync(ctx); err != nil {
			t.log.Warn("stopAsync failed", "run", run.id, "worker", i, "error", err)
		}
		cancel()
	}

	t.mu.Lock()
	run.state = run.state.ReplaceGrad(run.best.Grad).Finish(run.best.Loss)
	final := run.state
	t.mu.Unlock()

	t.log.Info("async run terminated", "run", run.id, "final_loss", final.FinalLoss,
		"updates", final.Updates, "elapsed", final.End.Sub(final.Start))
	t.uploadRecords(run.id)
	run.promise.TrySet(final, nil)
}

// fail terminates a run that never got off the ground.
func (t *asyncTrainer) fail(run *asyncRun, cause error) {
	t.mu.Lock()
	if !run.state.Terminal() {
		run.state = run.state.Finish(run.best.Loss)
	}
	t.mu.Unlock()
	t.log.Error("async run failed", "run", run.id, "error", cause)
	run.promise.TrySet(GradState{}, cause)
}

// snapshot reads a consistent (grad, updates) pair.
func (t *asyncTrainer) snapshot(run *asyncRun) (GradState, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return run.state, run.ending || run.state.Terminal()
}
