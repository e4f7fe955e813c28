package mambo

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// SyncConfig parameterizes one synchronous run.
type SyncConfig struct {
	Epochs         int
	BatchSize      int
	InitialWeights Vec
	Stopping       StoppingCriterion
}

// syncTrainer drives the synchronous strategy: lock-step epochs of
// scatter/gather gradient rounds, one distributed loss probe per epoch.
type syncTrainer struct {
	*core
	cfg SyncConfig
}

func newSyncTrainer(c *core, cfg SyncConfig) *syncTrainer {
	if cfg.Stopping == nil {
		cfg.Stopping = NeverStop
	}
	return &syncTrainer{core: c, cfg: cfg}
}

func (t *syncTrainer) HandleGradUpdate(Vec) error {
	return ErrUnsupportedOnSync
}

// Fit waits for quorum, then sweeps epochs until the epoch budget is spent
// or the stopping criterion fires on the loss trace. Within an epoch the
// batches are strictly sequential; within a batch every worker computes a
// gradient over its slice in parallel and the master descends by the mean.
// Any worker failure aborts the run with the first observed cause.
func (t *syncTrainer) Fit(ctx context.Context) (GradState, error) {
	if t.cfg.Epochs < 1 {
		return GradState{}, fmt.Errorf("sync fit: epochs must be at least 1, got %d", t.cfg.Epochs)
	}
	if t.cfg.BatchSize < 1 {
		return GradState{}, fmt.Errorf("sync fit: batch size must be at least 1, got %d", t.cfg.BatchSize)
	}
	if err := t.cluster.WaitReady(ctx); err != nil {
		return GradState{}, err
	}

	nodes, workers := t.cluster.Snapshot()
	piece := t.data.Len() / len(workers)
	if piece == 0 {
		return GradState{}, fmt.Errorf("sync fit: %d samples cannot cover %d workers", t.data.Len(), len(workers))
	}
	if dropped := droppedRemainder(t.data.Len(), len(workers)); dropped > 0 {
		t.log.Warn("dataset does not divide evenly, trailing samples ignored",
			"dropped", dropped, "samples", t.data.Len(), "workers", len(workers))
	}

	runID := uuid.NewString()
	t.log.Info("sync run starting", "run", runID, "workers", len(nodes),
		"epochs", t.cfg.Epochs, "batch_size", t.cfg.BatchSize, "piece", piece)

	state := StartGradState(t.cfg.InitialWeights)
	var losses []float64

	for epoch := 1; ; epoch++ {
		if epoch > t.cfg.Epochs {
			break
		}
		if len(losses) > 0 && t.cfg.Stopping(losses) {
			t.log.Info("stopping criterion met", "run", runID, "epoch", epoch, "loss", losses[0])
			break
		}

		epochWeights := state.Grad
		for batch := 0; batch < piece; batch += t.cfg.BatchSize {
			grad, err := t.backwardBatch(ctx, workers, state.Grad, piece, batch)
			if err != nil {
				return GradState{}, fmt.Errorf("run %s epoch %d batch %d: %w", runID, epoch, batch, err)
			}
			state = state.Update(grad)
		}

		loss, err := DistributedLoss(ctx, workers, t.data, epochWeights)
		if err != nil {
			return GradState{}, fmt.Errorf("run %s epoch %d: %w", runID, epoch, err)
		}
		losses = append([]float64{loss}, losses...)
		t.metrics.syncLoss(loss)
		t.record(runID, int64(epoch), loss)
		t.log.Info("epoch finished", "run", runID, "epoch", epoch, "loss", loss, "updates", state.Updates)
	}

	state = state.Finish(losses[0])
	t.log.Info("sync run terminated", "run", runID,
		"final_loss", state.FinalLoss, "updates", state.Updates, "elapsed", state.End.Sub(state.Start))
	t.uploadRecords(runID)
	return state, nil
}

// backwardBatch scatters one gradient round. Worker i covers
// [i*piece+batch, min(i*piece+batch+batchSize, (i+1)*piece)).
func (t *syncTrainer) backwardBatch(ctx context.Context, workers []WorkerClient, weights Vec, piece, batch int) (Vec, error) {
	started := time.Now()
	grads := make([]Vec, len(workers))
	g, gctx := errgroup.WithContext(ctx)
	for i, w := range workers {
		i, w := i, w
		rng := Range{
			From: i*piece + batch,
			To:   min(i*piece+batch+t.cfg.BatchSize, (i+1)*piece),
		}
		g.Go(func() error {
			res, err := w.Gradient(gctx, weights, rng)
			if err != nil {
				return err
			}
			grads[i] = res.Grad
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Vec{}, err
	}
	grad, err := MeanVecs(grads)
	if err != nil {
		return Vec{}, err
	}
	t.metrics.syncBatchDuration(time.Since(started))
	return grad, nil
}
