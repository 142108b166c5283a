package proc

import (
	"sync/atomic"

	"github.com/tuttlem/ares/internal/cpu"
	"github.com/tuttlem/ares/internal/spinlock"
)

// IdlePID is the reserved PID of the process that runs when nothing else is
// Ready (spec.md §3: "1 reserved for idle").
const IdlePID = 1

// Table is the process-wide singleton holding every Process slot, the
// current-running PID, and the reschedule-pending flag. One spinlock
// protects all of it; CurrentPID is additionally atomic so reads from
// interrupt context never need the lock (spec.md §3).
type Table struct {
	lock  spinlock.Spinlock
	Flags cpu.Flags // this CPU's live flags image, passed to lock Acquire/Release

	procs   []*Process
	nextPID int

	currentPID int64 // atomic
	needResched int32 // atomic bool

	sched Scheduler
}

// BindScheduler wires the scheduler implementation lifecycle operations
// call into. Must be called once, after both the table and the scheduler
// exist (internal/kernel does this at boot).
func (t *Table) BindScheduler(s Scheduler) {
	t.sched = s
}

// NewTable returns an empty table. Callers must still create the idle
// process (see lifecycle.go's SpawnIdle) before any scheduling happens.
func NewTable() *Table {
	return &Table{nextPID: IdlePID}
}

// CurrentPID returns the PID of the process recorded as Running.
func (t *Table) CurrentPID() int {
	return int(atomic.LoadInt64(&t.currentPID))
}

// SetCurrentPID updates the recorded running PID. Called by the scheduler,
// SpawnIdle and kernel.Boot, each while holding the table lock.
func (t *Table) SetCurrentPID(pid int) {
	atomic.StoreInt64(&t.currentPID, int64(pid))
}

// RequestResched sets NEED_RESCHED. Safe to call redundantly and from
// interrupt context (spec.md invariant 7).
func (t *Table) RequestResched() {
	atomic.StoreInt32(&t.needResched, 1)
}

// ClearResched clears NEED_RESCHED and reports whether it had been set.
func (t *Table) ClearResched() bool {
	return atomic.SwapInt32(&t.needResched, 0) != 0
}

// NeedResched reports whether a reschedule has been requested.
func (t *Table) NeedResched() bool {
	return atomic.LoadInt32(&t.needResched) != 0
}

// Lock acquires the table spinlock, disabling this CPU's interrupts for the
// duration. Never held across a context switch (spec.md §5).
func (t *Table) Lock() spinlock.Guard {
	return t.lock.Acquire(&t.Flags)
}

// Unlock releases a guard obtained from Lock.
func (t *Table) Unlock(g spinlock.Guard) {
	g.Release(&t.Flags)
}

// allocPID returns the next PID and advances the counter. Caller must hold
// the table lock.
func (t *Table) allocPID() int {
	pid := t.nextPID
	t.nextPID++
	return pid
}

// insert appends p to the table. Caller must hold the table lock.
func (t *Table) insert(p *Process) {
	t.procs = append(t.procs, p)
}

// remove deletes the process with the given PID, if present. Caller must
// hold the table lock.
func (t *Table) remove(pid int) {
	for i, p := range t.procs {
		if p.PID == pid {
			t.procs = append(t.procs[:i], t.procs[i+1:]...)
			return
		}
	}
}

// Lookup returns the process with the given PID, or nil. Safe to call
// without the lock for a process reading its own slot while Running
// (spec.md §5's single-CPU advisory-read carve-out); callers mutating state
// or reading another process's slot authoritatively must hold the lock.
func (t *Table) Lookup(pid int) *Process {
	for _, p := range t.procs {
		if p.PID == pid {
			return p
		}
	}
	return nil
}

// Current returns the process recorded as Running.
func (t *Table) Current() *Process {
	return t.Lookup(t.CurrentPID())
}

// All returns a snapshot slice of every process currently in the table.
// Callers must hold the lock if they need a consistent view across
// concurrent mutation; diagnostics accepts the race since it is advisory.
func (t *Table) All() []*Process {
	out := make([]*Process, len(t.procs))
	copy(out, t.procs)
	return out
}

// InState returns every process in the table whose state is s.
func (t *Table) InState(s State) []*Process {
	var out []*Process
	for _, p := range t.procs {
		if p.State == s {
			out = append(out, p)
		}
	}
	return out
}

// CountByState returns how many processes are in each state, for
// scheduler_stats() diagnostics.
func (t *Table) CountByState() map[State]int {
	counts := map[State]int{Ready: 0, Running: 0, Blocked: 0, Zombie: 0}
	for _, p := range t.procs {
		counts[p.State]++
	}
	return counts
}
