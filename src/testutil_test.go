package mambo

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/hashicorp/go-hclog"
)

// fakeWorker is an in-process WorkerClient that records every call.
type fakeWorker struct {
	id NodeID

	mu           sync.Mutex
	peersAdded   []NodeID
	peersRemoved []NodeID
	initWeights  Vec
	initRange    Range
	initBatch    int
	initCalls    int
	stopCalls    int
	closed       bool

	forwardWeights []Vec
	gradientRanges []Range

	forwardFn func(rng Range, weights Vec) ([]float64, error)
	gradFn    func(weights Vec, rng Range) (Vec, error)
	initErr   error
}

func (f *fakeWorker) Forward(ctx context.Context, rng Range, weights Vec) ([]float64, error) {
	f.mu.Lock()
	f.forwardWeights = append(f.forwardWeights, weights)
	fn := f.forwardFn
	f.mu.Unlock()
	if fn == nil {
		return make([]float64, rng.Size()), nil
	}
	return fn(rng, weights)
}

func (f *fakeWorker) Gradient(ctx context.Context, weights Vec, rng Range) (GradientResult, error) {
	f.mu.Lock()
	f.gradientRanges = append(f.gradientRanges, rng)
	fn := f.gradFn
	f.mu.Unlock()
	if fn == nil {
		return GradientResult{Grad: Zeros(weights.Len())}, nil
	}
	grad, err := fn(weights, rng)
	if err != nil {
		return GradientResult{}, err
	}
	now := time.Now()
	return GradientResult{Grad: grad, StartedAt: now, TerminatedAt: now}, nil
}

func (f *fakeWorker) InitAsync(ctx context.Context, weights Vec, assignment Range, batchSize int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.initWeights = weights
	f.initRange = assignment
	f.initBatch = batchSize
	f.initCalls++
	return f.initErr
}

func (f *fakeWorker) StopAsync(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.stopCalls++
	return nil
}

func (f *fakeWorker) NotifyRegister(ctx context.Context, node NodeID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.peersAdded = append(f.peersAdded, node)
	return nil
}

func (f *fakeWorker) NotifyUnregister(ctx context.Context, node NodeID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.peersRemoved = append(f.peersRemoved, node)
	return nil
}

func (f *fakeWorker) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	return nil
}

func (f *fakeWorker) knowsPeer(node NodeID) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, p := range f.peersAdded {
		if p == node {
			return true
		}
	}
	return false
}

func (f *fakeWorker) stops() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.stopCalls
}

// fakeFleet dials fakeWorkers by node.
type fakeFleet struct {
	mu      sync.Mutex
	workers map[NodeID]*fakeWorker
}

func newFakeFleet() *fakeFleet {
	return &fakeFleet{workers: make(map[NodeID]*fakeWorker)}
}

func (fl *fakeFleet) dial(node NodeID) (WorkerClient, error) {
	fl.mu.Lock()
	defer fl.mu.Unlock()
	w, ok := fl.workers[node]
	if !ok {
		w = &fakeWorker{id: node}
		fl.workers[node] = w
	}
	return w, nil
}

func (fl *fakeFleet) get(node NodeID) *fakeWorker {
	fl.mu.Lock()
	defer fl.mu.Unlock()
	return fl.workers[node]
}

func testNode(i int) NodeID {
	return NodeID{Host: "10.0.0.1", Port: 7000 + i}
}

// readyCluster registers n fake workers and returns the pieces.
func readyCluster(n int) (*Cluster, *fakeFleet, []NodeID, error) {
	fleet := newFakeFleet()
	cluster := NewCluster(n, fleet.dial, hclog.NewNullLogger())
	nodes := make([]NodeID, n)
	for i := range nodes {
		nodes[i] = testNode(i)
		if err := cluster.Register(nodes[i]); err != nil {
			return nil, nil, nil, fmt.Errorf("register %v: %w", nodes[i], err)
		}
	}
	return cluster, fleet, nodes, nil
}

// constDataset builds n samples with the given feature dimension where
// sample features are unit-ish and labels are constant.
func constDataset(n, dim int, label float64) Dataset {
	data := make(Dataset, n)
	for i := range data {
		features := make([]float64, dim)
		features[i%dim] = 1
		data[i] = Sample{Features: MustVec(features...), Label: label}
	}
	return data
}

// eventually polls cond until it holds or the deadline passes.
func eventually(timeout time.Duration, cond func() bool) bool {
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return true
		}
		time.Sleep(2 * time.Millisecond)
	}
	return cond()
}
