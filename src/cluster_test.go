package mambo

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/hashicorp/go-hclog"
)

func TestClusterBringUp(t *testing.T) {
	fleet := newFakeFleet()
	cluster := NewCluster(3, fleet.dial, hclog.NewNullLogger())
	a, b, c := testNode(0), testNode(1), testNode(2)

	for _, n := range []NodeID{a, b} {
		if err := cluster.Register(n); err != nil {
			t.Fatalf("register %v: %v", n, err)
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()
	if err := cluster.WaitReady(ctx); err == nil {
		t.Fatal("cluster reported ready before quorum")
	}

	fired := make(chan struct{})
	cluster.WhenReady(func() { close(fired) })

	if err := cluster.Register(c); err != nil {
		t.Fatalf("register %v: %v", c, err)
	}
	select {
	case <-fired:
	case <-time.After(time.Second):
		t.Fatal("readiness latch never fired")
	}
	if err := cluster.WaitReady(context.Background()); err != nil {
		t.Fatalf("WaitReady after quorum: %v", err)
	}

	// Full-mesh gossip: every worker eventually knows the other two.
	expect := map[NodeID][]NodeID{
		a: {b, c},
		b: {a, c},
		c: {a, b},
	}
	for node, peers := range expect {
		for _, peer := range peers {
			node, peer := node, peer
			if !eventually(time.Second, func() bool { return fleet.get(node).knowsPeer(peer) }) {
				t.Errorf("%v never learned about %v", node, peer)
			}
		}
	}
}

func TestClusterOverflow(t *testing.T) {
	fleet := newFakeFleet()
	cluster := NewCluster(2, fleet.dial, hclog.NewNullLogger())

	if err := cluster.Register(testNode(0)); err != nil {
		t.Fatal(err)
	}
	if err := cluster.Register(testNode(1)); err != nil {
		t.Fatal(err)
	}
	err := cluster.Register(testNode(2))
	if !errors.Is(err, ErrClusterOverflow) {
		t.Fatalf("expected ErrClusterOverflow, got %v", err)
	}
	if got := cluster.Size(); got != 2 {
		t.Fatalf("registry size changed on overflow: %d", got)
	}
}

func TestClusterReregisterIsNoop(t *testing.T) {
	cluster, _, nodes, err := readyCluster(2)
	if err != nil {
		t.Fatal(err)
	}
	if err := cluster.Register(nodes[0]); err != nil {
		t.Fatalf("re-register should ack: %v", err)
	}
	if got := cluster.Size(); got != 2 {
		t.Fatalf("size after re-register: %d", got)
	}
}

func TestClusterUnregister(t *testing.T) {
	cluster, fleet, nodes, err := readyCluster(3)
	if err != nil {
		t.Fatal(err)
	}

	cluster.Unregister(nodes[0])
	if got := cluster.Size(); got != 2 {
		t.Fatalf("size after unregister: %d", got)
	}
	if !eventually(time.Second, func() bool {
		w := fleet.get(nodes[1])
		w.mu.Lock()
		defer w.mu.Unlock()
		return len(w.peersRemoved) == 1 && w.peersRemoved[0] == nodes[0]
	}) {
		t.Error("remaining worker never heard about the departure")
	}

	// Unknown node: a quiet ack, no size change.
	cluster.Unregister(NodeID{Host: "nowhere", Port: 1})
	if got := cluster.Size(); got != 2 {
		t.Fatalf("size after unknown unregister: %d", got)
	}
}

func TestReadinessLatchNeverReverts(t *testing.T) {
	cluster, _, nodes, err := readyCluster(2)
	if err != nil {
		t.Fatal(err)
	}
	cluster.Unregister(nodes[0])
	cluster.Unregister(nodes[1])

	select {
	case <-cluster.Ready():
	default:
		t.Fatal("latch reverted after members left")
	}
}

func TestSnapshotPreservesRegistrationOrder(t *testing.T) {
	cluster, _, nodes, err := readyCluster(4)
	if err != nil {
		t.Fatal(err)
	}
	got, stubs := cluster.Snapshot()
	if len(got) != len(nodes) || len(stubs) != len(nodes) {
		t.Fatalf("snapshot sizes: %d nodes, %d stubs", len(got), len(stubs))
	}
	for i := range nodes {
		if got[i] != nodes[i] {
			t.Fatalf("order not preserved: %v vs %v", got, nodes)
		}
	}
}
