package mambo

import (
	"context"

	"github.com/hashicorp/go-hclog"
)

// Trainer is the strategy half of a master: the synchronous and the
// asynchronous masters share the cluster core and differ only here.
type Trainer interface {
	// Fit runs the training strategy to completion and returns the
	// terminal GradState.
	Fit(ctx context.Context) (GradState, error)

	// HandleGradUpdate applies one streamed gradient step. Only the
	// asynchronous strategy accepts it; the synchronous one replies with
	// ErrUnsupportedOnSync.
	HandleGradUpdate(delta Vec) error
}

// core bundles the state both strategies share.
type core struct {
	data     Dataset
	model    Model
	cluster  *Cluster
	log      hclog.Logger
	metrics  *masterMetrics
	recorder *RunRecorder
}

func newCore(data Dataset, model Model, cluster *Cluster, log hclog.Logger, recorder *RunRecorder) *core {
	return &core{
		data:     data,
		model:    model,
		cluster:  cluster,
		log:      log,
		metrics:  newMasterMetrics(),
		recorder: recorder,
	}
}

func (c *core) record(runID string, step int64, loss float64) {
	if c.recorder == nil {
		return
	}
	if err := c.recorder.Append(runID, step, loss); err != nil {
		c.log.Warn("appending run record failed", "run", runID, "error", err)
	}
}

func (c *core) uploadRecords(runID string) {
	if c.recorder == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), recordsUploadTimeout)
	defer cancel()
	if err := c.recorder.Upload(ctx, runID); err != nil {
		c.log.Warn("uploading run records failed", "run", runID, "error", err)
	}
}
