package mambo

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/hashicorp/go-hclog"
)

func newTestAsyncTrainer(t *testing.T, workers int, data Dataset, cfg AsyncConfig) (*asyncTrainer, *fakeFleet, []NodeID) {
	t.Helper()
	cluster, fleet, nodes, err := readyCluster(workers)
	if err != nil {
		t.Fatal(err)
	}
	c := newCore(data, LinearModel, cluster, hclog.NewNullLogger(), nil)
	return newAsyncTrainer(c, cfg), fleet, nodes
}

// idleMonitor keeps the loss monitor out of a test's way: it needs far more
// updates than the test sends before it probes.
func idleMonitor(cfg AsyncConfig) AsyncConfig {
	cfg.CheckEvery = 1 << 30
	cfg.Backoff = time.Hour
	return cfg
}

func TestAsyncInitSeedsWorkers(t *testing.T) {
	data := constDataset(10, 2, 0)
	w0 := MustVec(1, 2)
	trainer, fleet, nodes := newTestAsyncTrainer(t, 2, data, idleMonitor(AsyncConfig{
		InitialWeights: w0,
		MaxSteps:       1000,
		BatchSize:      5,
	}))

	p, err := trainer.start(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	select {
	case <-p.Done():
		t.Fatal("promise completed at init")
	default:
	}

	wantRanges := []Range{{0, 5}, {5, 10}}
	for i, n := range nodes {
		w := fleet.get(n)
		w.mu.Lock()
		if w.initCalls != 1 {
			t.Errorf("worker %d seeded %d times", i, w.initCalls)
		}
		if w.initRange != wantRanges[i] {
			t.Errorf("worker %d assignment = %v, want %v", i, w.initRange, wantRanges[i])
		}
		if !w.initWeights.EqualApprox(w0, 1e-12) {
			t.Errorf("worker %d seeded with %v", i, w.initWeights.Values())
		}
		if w.initBatch != 5 {
			t.Errorf("worker %d batch = %d", i, w.initBatch)
		}
		w.mu.Unlock()
	}
}

func TestAsyncAlreadyRunning(t *testing.T) {
	data := constDataset(4, 2, 0)
	trainer, _, _ := newTestAsyncTrainer(t, 1, data, idleMonitor(AsyncConfig{
		InitialWeights: Zeros(2),
		MaxSteps:       1000,
		BatchSize:      2,
	}))

	if _, err := trainer.start(context.Background()); err != nil {
		t.Fatal(err)
	}
	if _, err := trainer.start(context.Background()); !errors.Is(err, ErrAlreadyRunning) {
		t.Fatalf("expected ErrAlreadyRunning, got %v", err)
	}
}

func TestAsyncMaxStepsCutoff(t *testing.T) {
	// maxSteps 100 with a dormant monitor: the 100th update terminates the
	// run on its own.
	data := constDataset(4, 2, 0)
	trainer, fleet, nodes := newTestAsyncTrainer(t, 2, data, idleMonitor(AsyncConfig{
		InitialWeights: Zeros(2),
		MaxSteps:       100,
		BatchSize:      2,
	}))

	p, err := trainer.start(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 100; i++ {
		if err := trainer.HandleGradUpdate(MustVec(0.01, 0.01)); err != nil {
			t.Fatalf("update %d: %v", i, err)
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	final, err := p.Wait(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if final.Updates != 100 {
		t.Fatalf("updates = %d", final.Updates)
	}
	if !final.Terminal() {
		t.Fatal("final state not terminal")
	}
	// Termination promotes the best tracker; with no loss probe that is
	// the zero vector at +Inf.
	if !final.Grad.EqualApprox(Zeros(2), 1e-12) {
		t.Fatalf("final grad = %v", final.Grad.Values())
	}
	if !math.IsInf(final.FinalLoss, 1) {
		t.Fatalf("final loss = %v", final.FinalLoss)
	}
	for _, n := range nodes {
		if fleet.get(n).stops() != 1 {
			t.Errorf("worker %v stopAsync calls = %d", n, fleet.get(n).stops())
		}
	}
}

func TestAsyncLateUpdatesAreSwallowed(t *testing.T) {
	data := constDataset(4, 2, 0)
	trainer, _, _ := newTestAsyncTrainer(t, 1, data, idleMonitor(AsyncConfig{
		InitialWeights: Zeros(2),
		MaxSteps:       5,
		BatchSize:      2,
	}))

	p, err := trainer.start(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 5; i++ {
		if err := trainer.HandleGradUpdate(MustVec(1, 1)); err != nil {
			t.Fatal(err)
		}
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	final, err := p.Wait(ctx)
	if err != nil {
		t.Fatal(err)
	}

	// Stragglers keep acking after termination and change nothing.
	for i := 0; i < 10; i++ {
		if err := trainer.HandleGradUpdate(MustVec(100, 100)); err != nil {
			t.Fatalf("late update %d: %v", i, err)
		}
	}
	snap, _ := trainer.snapshot(trainer.run)
	if snap.Updates != final.Updates {
		t.Fatalf("late updates moved the counter: %d vs %d", snap.Updates, final.Updates)
	}
	if !snap.Grad.EqualApprox(final.Grad, 1e-12) {
		t.Fatalf("late updates moved the weights: %v", snap.Grad.Values())
	}
}

func TestAsyncUpdateBeforeAnyRun(t *testing.T) {
	data := constDataset(4, 2, 0)
	trainer, _, _ := newTestAsyncTrainer(t, 1, data, idleMonitor(AsyncConfig{
		InitialWeights: Zeros(2),
		MaxSteps:       5,
		BatchSize:      2,
	}))
	if err := trainer.HandleGradUpdate(MustVec(1, 1)); err != nil {
		t.Fatalf("update before any run should ack: %v", err)
	}
}

func TestAsyncInitFailureFailsTheRun(t *testing.T) {
	data := constDataset(4, 2, 0)
	trainer, fleet, nodes := newTestAsyncTrainer(t, 2, data, idleMonitor(AsyncConfig{
		InitialWeights: Zeros(2),
		MaxSteps:       5,
		BatchSize:      2,
	}))
	boom := errors.New("worker refused init")
	fleet.get(nodes[1]).initErr = boom

	if _, err := trainer.start(context.Background()); !errors.Is(err, boom) {
		t.Fatalf("expected init failure, got %v", err)
	}
}

func TestAsyncConvergence(t *testing.T) {
	// Stream decaying updates towards the least-squares optimum; the
	// monitor probes after every update and terminates once two
	// consecutive losses agree within 1e-6. The returned weights must be
	// the best snapshot, i.e. evaluate exactly to the final loss.
	data := constDataset(8, 2, 0.3)
	target := Const(2, 0.3)
	trainer, _, _ := newTestAsyncTrainer(t, 2, data, AsyncConfig{
		InitialWeights: Zeros(2),
		MaxSteps:       1 << 30,
		Stopping:       DeltaBelow(1e-6),
		BatchSize:      2,
		CheckEvery:     1,
		Backoff:        time.Millisecond,
	})

	p, err := trainer.start(context.Background())
	if err != nil {
		t.Fatal(err)
	}

	go func() {
		current := Zeros(2)
		for i := 0; i < 10000; i++ {
			select {
			case <-p.Done():
				return
			default:
			}
			delta := current.Sub(target).Scale(0.5)
			if err := trainer.HandleGradUpdate(delta); err != nil {
				return
			}
			current = current.Sub(delta)
			time.Sleep(time.Millisecond)
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	final, err := p.Wait(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if !final.Terminal() {
		t.Fatal("final state not terminal")
	}

	evaluated, err := LocalLoss(data, final.Grad, LinearModel)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(evaluated-final.FinalLoss) > 1e-12 {
		t.Fatalf("returned weights do not match the best loss: %v vs %v", evaluated, final.FinalLoss)
	}
	// The run walked towards the optimum, so the best loss must beat the
	// starting loss by a wide margin.
	initial, err := LocalLoss(data, Zeros(2), LinearModel)
	if err != nil {
		t.Fatal(err)
	}
	if final.FinalLoss >= initial {
		t.Fatalf("best loss %v never improved on initial %v", final.FinalLoss, initial)
	}
}

func TestAsyncFitWaitsForQuorum(t *testing.T) {
	fleet := newFakeFleet()
	cluster := NewCluster(1, fleet.dial, hclog.NewNullLogger())
	c := newCore(constDataset(4, 2, 0), LinearModel, cluster, hclog.NewNullLogger(), nil)
	trainer := newAsyncTrainer(c, idleMonitor(AsyncConfig{
		InitialWeights: Zeros(2),
		MaxSteps:       5,
		BatchSize:      2,
	}))

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()
	if _, err := trainer.Fit(ctx); err == nil {
		t.Fatal("Fit returned without quorum")
	}
}
