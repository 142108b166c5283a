package proc

import "github.com/tuttlem/ares/internal/cpu"

// WakeChannel scans the table and, for every Blocked process whose wait
// channel equals event exactly, transitions it to Ready and clears its
// channel. Called from both interrupt context (keyboard IRQ) and task
// context (ExitCurrent), so it takes the table lock itself.
//
// AnyChild(p) "matching any child of p" is not special-cased here: a
// ChildExit(pid) event and an AnyChild(parentPID) event are two distinct
// WakeChannel calls ExitCurrent makes back to back, each an exact-equality
// scan. Both a specific waiter and a generic waiter can therefore wake on
// the same exit (spec.md §9's documented open question); see DESIGN.md for
// why that race is benign here.
//
// If the process table's current process is idle when a wake happens,
// nothing else will ever ask the scheduler to look again: idle's own
// goroutine is parked waiting to be resumed, and a hosted-Go keyboard IRQ
// has no interrupt-return path to fall through into a reschedule the way
// spec.md's real one does. WakeChannel closes that gap directly: once the
// lock is released, it resumes idle's context, and idle's loop body
// (lifecycle.go's SpawnIdle) rechecks the table itself.
func (t *Table) WakeChannel(event WaitChannel) {
	g := t.Lock()
	var woke bool
	for _, p := range t.procs {
		if p.State == Blocked && p.Wait == event {
			p.State = Ready
			p.Wait = WaitChannel{}
			woke = true
		}
	}
	idle := t.Lookup(t.CurrentPID())
	nudgeIdle := woke && idle != nil && idle.Idle
	t.Unlock(g)

	if nudgeIdle {
		cpu.Default.Resume(idle.Context)
	}
}
