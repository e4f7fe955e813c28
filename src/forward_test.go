package mambo

import (
	"context"
	"errors"
	"math"
	"testing"

	"golang.org/x/exp/rand"
)

// indexPredictions makes a worker reply with its sample indices, so the
// reassembled result exposes ordering bugs.
func indexPredictions(rng Range, _ Vec) ([]float64, error) {
	out := make([]float64, 0, rng.Size())
	for i := rng.From; i < rng.To; i++ {
		out = append(out, float64(i))
	}
	return out, nil
}

func TestScatterForwardPreservesOrder(t *testing.T) {
	_, fleet, nodes, err := readyCluster(2)
	if err != nil {
		t.Fatal(err)
	}
	workers := []WorkerClient{fleet.get(nodes[0]), fleet.get(nodes[1])}
	fleet.get(nodes[0]).forwardFn = indexPredictions
	fleet.get(nodes[1]).forwardFn = indexPredictions

	preds, err := scatterForward(context.Background(), workers, 10, Zeros(2))
	if err != nil {
		t.Fatal(err)
	}
	if len(preds) != 10 {
		t.Fatalf("got %d predictions", len(preds))
	}
	for i, p := range preds {
		if p != float64(i) {
			t.Fatalf("prediction %d out of order: %v", i, preds)
		}
	}
}

func TestScatterForwardDropsRemainder(t *testing.T) {
	_, fleet, nodes, err := readyCluster(2)
	if err != nil {
		t.Fatal(err)
	}
	workers := []WorkerClient{fleet.get(nodes[0]), fleet.get(nodes[1])}
	for _, n := range nodes {
		fleet.get(n).forwardFn = indexPredictions
	}

	preds, err := scatterForward(context.Background(), workers, 7, Zeros(2))
	if err != nil {
		t.Fatal(err)
	}
	if len(preds) != 6 {
		t.Fatalf("remainder not dropped: got %d predictions", len(preds))
	}
}

func TestScatterForwardFailsFast(t *testing.T) {
	_, fleet, nodes, err := readyCluster(2)
	if err != nil {
		t.Fatal(err)
	}
	workers := []WorkerClient{fleet.get(nodes[0]), fleet.get(nodes[1])}
	boom := errors.New("worker down")
	fleet.get(nodes[1]).forwardFn = func(Range, Vec) ([]float64, error) { return nil, boom }

	if _, err := scatterForward(context.Background(), workers, 10, Zeros(2)); !errors.Is(err, boom) {
		t.Fatalf("expected the worker failure, got %v", err)
	}
}

func TestDistributedLoss(t *testing.T) {
	_, fleet, nodes, err := readyCluster(2)
	if err != nil {
		t.Fatal(err)
	}
	workers := []WorkerClient{fleet.get(nodes[0]), fleet.get(nodes[1])}
	// Every prediction is 2, every label 0: MSE = 4.
	for _, n := range nodes {
		fleet.get(n).forwardFn = func(rng Range, _ Vec) ([]float64, error) {
			out := make([]float64, rng.Size())
			for i := range out {
				out[i] = 2
			}
			return out, nil
		}
	}
	data := constDataset(10, 2, 0)

	loss, err := DistributedLoss(context.Background(), workers, data, Zeros(2))
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(loss-4) > 1e-12 {
		t.Fatalf("got loss %v", loss)
	}
}

func TestLocalLoss(t *testing.T) {
	// Features are unit vectors; with w = (3, 3) every prediction is 3 and
	// labels are 1, so MSE = 4.
	data := constDataset(6, 2, 1)
	loss, err := LocalLoss(data, Const(2, 3), LinearModel)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(loss-4) > 1e-12 {
		t.Fatalf("got loss %v", loss)
	}

	if _, err := LocalLoss(nil, Zeros(2), LinearModel); err == nil {
		t.Fatal("expected error on empty dataset")
	}
}

func TestSampledLoss(t *testing.T) {
	// Every sample yields the same squared error, so the estimate is exact
	// regardless of which indices the sampler draws.
	data := constDataset(8, 2, 1)
	loss, err := SampledLoss(data, Const(2, 3), LinearModel, 16, rand.NewSource(1))
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(loss-4) > 1e-12 {
		t.Fatalf("got loss %v", loss)
	}

	if _, err := SampledLoss(data, Zeros(2), LinearModel, 0, rand.NewSource(1)); err == nil {
		t.Fatal("expected error on zero sample count")
	}
}
