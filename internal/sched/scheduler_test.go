package sched

import (
	"testing"

	"github.com/tuttlem/ares/internal/cpu"
	"github.com/tuttlem/ares/internal/device"
	"github.com/tuttlem/ares/internal/proc"
)

func newTestKernel(t *testing.T) (*proc.Table, *Scheduler, *device.Registry) {
	t.Helper()
	reg := device.NewRegistry(device.NewKeyboard(), device.NewConsole())
	tbl := proc.NewTable()
	s := New(tbl, 1)
	tbl.SpawnIdle(reg)
	return tbl, s, reg
}

type noopRuntime struct{}

func (noopRuntime) Read(fd int, buf []byte) (int, error)  { return 0, nil }
func (noopRuntime) Write(fd int, buf []byte) (int, error) { return len(buf), nil }
func (noopRuntime) Yield()                                {}
func (noopRuntime) Exit(code int)                         {}

// TestYieldNowRoundRobinsBetweenTwoTasks boots two Ready tasks and drives a
// handoff between them, the way spec.md scenario 3 (cooperative fairness)
// does with its ticker tasks: each task records that it ran, yields, and
// the scheduler picks the other non-idle task before ever falling back to
// idle.
func TestYieldNowRoundRobinsBetweenTwoTasks(t *testing.T) {
	tbl, s, reg := newTestKernel(t)

	ticked := make(chan int, 4)
	entry := func(id int) proc.EntryFunc {
		return func(rt proc.Runtime) {
			ticked <- id
			s.YieldNow()
		}
	}

	p1 := tbl.SpawnKernel("t1", entry(1), reg, noopRuntime{})
	p2 := tbl.SpawnKernel("t2", entry(2), reg, noopRuntime{})

	g := tbl.Lock()
	if prev := tbl.Lookup(tbl.CurrentPID()); prev != nil && prev.State == proc.Running {
		prev.State = proc.Ready
	}
	tbl.SetCurrentPID(p1.PID)
	p1.State = proc.Running
	tbl.Unlock(g)

	cpu.Default.Resume(p1.Context)

	if got := <-ticked; got != 1 {
		t.Fatalf("expected t1 to run first, got %d", got)
	}
	if got := <-ticked; got != 2 {
		t.Fatalf("expected t2 to run second, got %d", got)
	}

	if p1.SliceCount == 0 || p2.SliceCount == 0 {
		t.Fatalf("expected both tasks to accrue slices, got t1=%d t2=%d", p1.SliceCount, p2.SliceCount)
	}
}

func TestPickNextPrefersNonIdle(t *testing.T) {
	tbl, s, reg := newTestKernel(t)
	worker := tbl.SpawnKernel("worker", func(proc.Runtime) {}, reg, noopRuntime{})

	g := tbl.Lock()
	idle := tbl.Lookup(proc.IdlePID)
	next := s.pickNext(idle)
	tbl.Unlock(g)

	if next == nil || next.PID != worker.PID {
		t.Fatalf("expected idle to hand off to the Ready worker, got %v", next)
	}
}

func TestPickNextFallsBackToIdleWhenNoneReady(t *testing.T) {
	tbl, s, _ := newTestKernel(t)

	g := tbl.Lock()
	idle := tbl.Lookup(proc.IdlePID)
	next := s.pickNext(idle)
	tbl.Unlock(g)

	if next == nil || !next.Idle {
		t.Fatal("expected idle fallback when nothing else is Ready")
	}
}

func TestRequestPreemptOnIdleIsNoop(t *testing.T) {
	tbl, s, _ := newTestKernel(t)

	// RequestPreempt on idle must be a no-op (spec.md §4.5).
	s.RequestPreempt(proc.IdlePID)
	if tbl.NeedResched() {
		t.Fatal("preempting idle should be a no-op")
	}
}
