package mambo

import (
	"context"
	"fmt"
	"net"
	"strconv"
	"sync"
	"time"

	"github.com/hashicorp/go-hclog"
)

// NodeID identifies a slave by the address its gRPC server listens on.
// Equality is structural, so it can key the registry.
type NodeID struct {
	Host string
	Port int
}

func (n NodeID) Addr() string {
	return net.JoinHostPort(n.Host, strconv.Itoa(n.Port))
}

func (n NodeID) String() string { return n.Addr() }

// GradientResult is one worker's reply to a gradient request.
type GradientResult struct {
	Grad         Vec
	StartedAt    time.Time
	TerminatedAt time.Time
}

// WorkerClient is the master's handle on one remote slave. The gRPC stub
// implements it in production; tests substitute in-process fakes.
type WorkerClient interface {
	Forward(ctx context.Context, rng Range, weights Vec) ([]float64, error)
	Gradient(ctx context.Context, weights Vec, rng Range) (GradientResult, error)
	InitAsync(ctx context.Context, weights Vec, assignment Range, batchSize int) error
	StopAsync(ctx context.Context) error
	NotifyRegister(ctx context.Context, node NodeID) error
	NotifyUnregister(ctx context.Context, node NodeID) error
	Close() error
}

// Dialer opens a WorkerClient for a node.
type Dialer func(node NodeID) (WorkerClient, error)

const gossipTimeout = 10 * time.Second

// Cluster is the worker registry. It holds at most `expected` members and
// fires a one-shot readiness latch the first time the registry is full.
type Cluster struct {
	expected int
	dial     Dialer
	log      hclog.Logger

	mu      sync.Mutex
	workers map[NodeID]WorkerClient
	order   []NodeID // registration order; keeps piece assignment stable

	ready chan struct{}
	once  sync.Once
}

func NewCluster(expected int, dial Dialer, log hclog.Logger) *Cluster {
	return &Cluster{
		expected: expected,
		dial:     dial,
		log:      log.Named("cluster"),
		workers:  make(map[NodeID]WorkerClient),
		ready:    make(chan struct{}),
	}
}

// Register adds a node to the registry and gossips the membership change:
// every previously-known worker learns about the newcomer and the newcomer
// learns about every previously-known worker, so slaves can talk
// peer-to-peer later. Gossip is fire-and-forget; the caller's ack never
// waits for it. Registering past capacity fails with ErrClusterOverflow;
// re-registering a known node is a no-op.
func (c *Cluster) Register(node NodeID) error {
	c.mu.Lock()
	if _, known := c.workers[node]; known {
		c.mu.Unlock()
		c.log.Debug("node already registered", "node", node)
		return nil
	}
	if len(c.workers) >= c.expected {
		c.mu.Unlock()
		return fmt.Errorf("%w: rejecting %s (capacity %d)", ErrClusterOverflow, node, c.expected)
	}
	stub, err := c.dial(node)
	if err != nil {
		c.mu.Unlock()
		return fmt.Errorf("dial %s: %w", node, err)
	}
	peers := make(map[NodeID]WorkerClient, len(c.workers))
	for id, w := range c.workers {
		peers[id] = w
	}
	c.workers[node] = stub
	c.order = append(c.order, node)
	size := len(c.workers)
	c.mu.Unlock()

	c.log.Info("slave registered", "node", node, "size", size, "expected", c.expected)

	for id, peer := range peers {
		id, peer := id, peer
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), gossipTimeout)
			defer cancel()
			if err := peer.NotifyRegister(ctx, node); err != nil {
				c.log.Warn("gossip to peer failed", "peer", id, "about", node, "error", err)
			}
			if err := stub.NotifyRegister(ctx, id); err != nil {
				c.log.Warn("gossip to newcomer failed", "newcomer", node, "about", id, "error", err)
			}
		}()
	}

	if size == c.expected {
		c.once.Do(func() {
			c.log.Info("cluster ready", "size", size)
			close(c.ready)
		})
	}
	return nil
}

// Unregister removes a node and tells the remaining workers. Unknown nodes
// are acked silently.
func (c *Cluster) Unregister(node NodeID) {
	c.mu.Lock()
	stub, known := c.workers[node]
	if !known {
		c.mu.Unlock()
		c.log.Debug("unregister for unknown node", "node", node)
		return
	}
	delete(c.workers, node)
	for i, id := range c.order {
		if id == node {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
	remaining := make(map[NodeID]WorkerClient, len(c.workers))
	for id, w := range c.workers {
		remaining[id] = w
	}
	c.mu.Unlock()

	c.log.Info("slave unregistered", "node", node, "size", len(remaining))
	if err := stub.Close(); err != nil {
		c.log.Warn("closing stub failed", "node", node, "error", err)
	}

	for id, peer := range remaining {
		id, peer := id, peer
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), gossipTimeout)
			defer cancel()
			if err := peer.NotifyUnregister(ctx, node); err != nil {
				c.log.Warn("unregister gossip failed", "peer", id, "about", node, "error", err)
			}
		}()
	}
}

func (c *Cluster) Size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.workers)
}

// Snapshot returns the members and their stubs in registration order.
func (c *Cluster) Snapshot() ([]NodeID, []WorkerClient) {
	c.mu.Lock()
	defer c.mu.Unlock()
	nodes := make([]NodeID, len(c.order))
	copy(nodes, c.order)
	stubs := make([]WorkerClient, len(nodes))
	for i, id := range nodes {
		stubs[i] = c.workers[id]
	}
	return nodes, stubs
}

// Ready is closed once the registry first reaches the expected size. It
// never reopens.
func (c *Cluster) Ready() <-chan struct{} {
	return c.ready
}

// WaitReady blocks until the cluster is ready or the context ends.
func (c *Cluster) WaitReady(ctx context.Context) error {
	select {
	case <-c.ready:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("waiting for cluster readiness: %w", ctx.Err())
	}
}

// WhenReady runs f once the readiness latch fires.
func (c *Cluster) WhenReady(f func()) {
	go func() {
		<-c.ready
		f()
	}()
}

// Close closes every stub. Used on master shutdown.
func (c *Cluster) Close() {
	c.mu.Lock()
	stubs := make([]WorkerClient, 0, len(c.workers))
	for _, w := range c.workers {
		stubs = append(stubs, w)
	}
	c.workers = make(map[NodeID]WorkerClient)
	c.order = nil
	c.mu.Unlock()
	for _, w := range stubs {
		if err := w.Close(); err != nil {
			c.log.Warn("closing stub failed", "error", err)
		}
	}
}
