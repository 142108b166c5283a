package timer

import "testing"

type fakePreemptor struct {
	calls []int
}

func (f *fakePreemptor) RequestPreempt(pid int) {
	f.calls = append(f.calls, pid)
}

type fakeCurrentPID struct{ pid int }

func (f fakeCurrentPID) CurrentPID() int { return f.pid }

func TestOnTickRequestsPreemptOnSliceBoundary(t *testing.T) {
	p := &fakePreemptor{}
	tm := New(p, fakeCurrentPID{pid: 7}, 3)

	for i := 0; i < 5; i++ {
		tm.OnTick()
	}

	if tm.Ticks() != 5 {
		t.Fatalf("got %d ticks, want 5", tm.Ticks())
	}
	if len(p.calls) != 1 || p.calls[0] != 7 {
		t.Fatalf("expected exactly one preempt request for pid 7 at tick 3, got %v", p.calls)
	}

	tm.OnTick() // tick 6: second boundary
	if len(p.calls) != 2 {
		t.Fatalf("expected a second preempt request at tick 6, got %v", p.calls)
	}
}

func TestNewClampsSliceTicksToOne(t *testing.T) {
	p := &fakePreemptor{}
	tm := New(p, fakeCurrentPID{pid: 1}, 0)

	tm.OnTick()
	if len(p.calls) != 1 {
		t.Fatalf("a non-positive slice should clamp to 1, got %v", p.calls)
	}
}
