package mambo

import "testing"

func TestContiguousSplit(t *testing.T) {
	ranges := ContiguousSplit(10, 2)
	want := []Range{{0, 5}, {5, 10}}
	if len(ranges) != len(want) {
		t.Fatalf("got %v", ranges)
	}
	for i := range want {
		if ranges[i] != want[i] {
			t.Fatalf("got %v, want %v", ranges, want)
		}
	}
}

func TestContiguousSplitDropsRemainder(t *testing.T) {
	ranges := ContiguousSplit(11, 3)
	if len(ranges) != 3 {
		t.Fatalf("got %v", ranges)
	}
	last := ranges[2]
	if last.To != 9 {
		t.Fatalf("remainder not dropped: %v", ranges)
	}
	if got := droppedRemainder(11, 3); got != 2 {
		t.Fatalf("droppedRemainder = %d", got)
	}
}

func TestStoppingCriteria(t *testing.T) {
	if NeverStop([]float64{0}) {
		t.Error("NeverStop stopped")
	}

	delta := DeltaBelow(1e-6)
	if delta([]float64{1}) {
		t.Error("DeltaBelow fired on a single loss")
	}
	if delta([]float64{1, 0.5}) {
		t.Error("DeltaBelow fired on a large delta")
	}
	if !delta([]float64{0.5, 0.5 + 1e-9}) {
		t.Error("DeltaBelow missed convergence")
	}

	below := LossBelow(0.1)
	if below([]float64{0.2, 0.01}) {
		t.Error("LossBelow looked past the most recent loss")
	}
	if !below([]float64{0.05, 0.2}) {
		t.Error("LossBelow missed a loss under the threshold")
	}
}
