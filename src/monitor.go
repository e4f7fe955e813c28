package mambo

import "time"

// monitor is the background loss checker for one async run. It samples the
// shared state in consistent snapshots, so it never blocks the update path:
// gradient handlers keep streaming while a probe computes the local loss.
//
// A probe only happens after checkEvery fresh updates; otherwise the task
// backs off and retries. Each probed loss is smoothed with leakCoef, folded
// into the best tracker, and prepended to the trace the stopping criterion
// sees. Transient loss failures are logged and retried rather than killing
// the run.
func (t *asyncTrainer) monitor(run *asyncRun) {
	var trace []float64
	var lastChecked int64
	prev := 0.0

	for {
		snap, done := t.snapshot(run)
		if done {
			return
		}
		if snap.Updates-lastChecked < run.cfg.CheckEvery {
			select {
			case <-time.After(run.cfg.Backoff):
			case <-run.promise.Done():
				return
			}
			continue
		}

		raw, err := LocalLoss(t.data, snap.Grad, t.model)
		if err != nil {
			t.log.Warn("loss probe failed, retrying", "run", run.id, "error", err)
			select {
			case <-time.After(run.cfg.Backoff):
			case <-run.promise.Done():
				return
			}
			continue
		}
		loss := run.cfg.LeakCoef*raw + (1-run.cfg.LeakCoef)*prev

		t.mu.Lock()
		best, improved := run.best.Observe(loss, snap.Grad)
		run.best = best
		t.mu.Unlock()

		trace = append([]float64{loss}, trace...)
		t.metrics.asyncLoss(loss)
		if improved {
			t.metrics.asyncBestLoss(loss)
		}
		t.record(run.id, snap.Updates, loss)
		t.log.Debug("loss probe", "run", run.id, "updates", snap.Updates, "loss", loss, "improved", improved)

		if run.cfg.Stopping(trace) {
			t.log.Info("convergence detected", "run", run.id, "loss", loss, "updates", snap.Updates)
			t.end(run)
			return
		}
		lastChecked = snap.Updates
		prev = loss
	}
}
