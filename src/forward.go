package mambo

import (
	"context"
	"fmt"
	"math"

	"golang.org/x/exp/rand"
	"golang.org/x/sync/errgroup"
)

// scatterForward partitions the first piece*W samples into W contiguous
// slices, asks each worker for predictions over its slice, and concatenates
// the replies in dispatch order. Any RPC failure fails the whole pass; no
// partial results come back. The trailing n mod W samples are not scored.
func scatterForward(ctx context.Context, workers []WorkerClient, n int, weights Vec) ([]float64, error) {
	if len(workers) == 0 {
		return nil, fmt.Errorf("forward pass with no workers")
	}
	piece := n / len(workers)
	if piece == 0 {
		return nil, fmt.Errorf("forward pass: %d samples cannot cover %d workers", n, len(workers))
	}

	parts := make([][]float64, len(workers))
	g, ctx := errgroup.WithContext(ctx)
	for i, w := range workers {
		i, w := i, w
		rng := Range{From: i * piece, To: (i + 1) * piece}
		g.Go(func() error {
			preds, err := w.Forward(ctx, rng, weights)
			if err != nil {
				return err
			}
			parts[i] = preds
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := make([]float64, 0, piece*len(workers))
	for _, p := range parts {
		out = append(out, p...)
	}
	return out, nil
}

// DistributedLoss computes the mean squared error over the cluster:
// predictions come from the workers, labels from the master's copy of the
// dataset.
func DistributedLoss(ctx context.Context, workers []WorkerClient, data Dataset, weights Vec) (float64, error) {
	preds, err := scatterForward(ctx, workers, data.Len(), weights)
	if err != nil {
		return 0, fmt.Errorf("distributed loss: %w", err)
	}
	if len(preds) == 0 {
		return 0, fmt.Errorf("distributed loss: no predictions")
	}
	sum := 0.0
	for i, p := range preds {
		diff := p - data[i].Label
		sum += diff * diff
	}
	return sum / float64(len(preds)), nil
}

// LocalLoss computes the mean squared error over the full dataset on the
// master, without touching workers.
func LocalLoss(data Dataset, weights Vec, model Model) (float64, error) {
	if data.Len() == 0 {
		return 0, fmt.Errorf("local loss over empty dataset")
	}
	sum := 0.0
	for _, s := range data {
		diff := model(weights, s.Features) - s.Label
		sum += diff * diff
	}
	loss := sum / float64(data.Len())
	if math.IsNaN(loss) {
		return 0, fmt.Errorf("local loss: %w", ErrNaNVector)
	}
	return loss, nil
}

// SampledLoss estimates the loss from count uniform draws with replacement.
func SampledLoss(data Dataset, weights Vec, model Model, count int, src rand.Source) (float64, error) {
	if data.Len() == 0 || count <= 0 {
		return 0, fmt.Errorf("sampled loss needs data and a positive sample count")
	}
	rng := rand.New(src)
	sum := 0.0
	for i := 0; i < count; i++ {
		s := data[rng.Intn(data.Len())]
		diff := model(weights, s.Features) - s.Label
		sum += diff * diff
	}
	return sum / float64(count), nil
}
