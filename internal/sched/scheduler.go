// Package sched implements round-robin scheduling, cooperative yielding,
// wait-channel blocking, and the timer-preemption protocol (spec.md
// component C5). It depends on package proc for process state and
// implements proc.Scheduler so proc's lifecycle operations (ExitCurrent,
// WaitForChild) can call back into it without an import cycle.
package sched

import (
	"github.com/tuttlem/ares/internal/cpu"
	"github.com/tuttlem/ares/internal/proc"
)

// Scheduler is the process-wide singleton scheduling policy: round-robin
// over Ready processes, starting at the table slot after the current
// process's slot and wrapping around, preferring non-idle; idle is the
// fallback when nothing else is Ready.
type Scheduler struct {
	Table    *proc.Table
	Switcher cpu.Switcher

	// PreemptSliceTicks is the tunable preempt slice; minimum 1 (spec.md
	// §9). Read by internal/timer.
	PreemptSliceTicks int

	preemptPending bool // at most one unclaimed preempt request outstanding
}

// New constructs a Scheduler bound to t and wires it back into t so
// ExitCurrent/WaitForChild can call Reschedule/BlockCurrent. PreemptSlice
// must be >= 1.
func New(t *proc.Table, preemptSlice int) *Scheduler {
	if preemptSlice < 1 {
		preemptSlice = 1
	}
	s := &Scheduler{
		Table:             t,
		Switcher:          cpu.Default,
		PreemptSliceTicks: preemptSlice,
	}
	t.BindScheduler(s)
	return s
}

// pickNext chooses the next process to run, per the round-robin policy.
// Caller must hold the table lock.
func (s *Scheduler) pickNext(current *proc.Process) *proc.Process {
	procs := s.Table.All()
	if len(procs) == 0 {
		return nil
	}

	startIdx := 0
	if current != nil {
		for i, p := range procs {
			if p.PID == current.PID {
				startIdx = (i + 1) % len(procs)
				break
			}
		}
	}

	var idle *proc.Process
	for i := 0; i < len(procs); i++ {
		p := procs[(startIdx+i)%len(procs)]
		if p.Idle {
			idle = p
			continue
		}
		if p.State == proc.Ready {
			return p
		}
	}
	return idle
}

// switchTo performs the mechanical half of a scheduling decision: record
// the new current PID, bump its slice counter (under the table lock), and
// hand control to it via cpu.ContextSwitch once the lock is released.
// Caller must NOT hold the table lock (spec.md §5: never held across a
// context switch).
func (s *Scheduler) switchTo(from, to *proc.Process) {
	if to == nil {
		return
	}
	g := s.Table.Lock()
	to.State = proc.Running
	s.Table.SetCurrentPID(to.PID)
	to.SliceCount++
	s.Table.Unlock(g)
	if from == to {
		// Sole Ready process picked itself back up: no other task exists to
		// switch away to, so there is nothing for cpu.ContextSwitch to do.
		return
	}
	cpu.ContextSwitch(from.Context, to.Context, s.Switcher)
}

// YieldNow is the cooperative entry point: the caller gives up the CPU
// voluntarily. Demotes the caller to Ready unless it is already
// Blocked/Zombie (set by the caller before calling YieldNow), picks the
// next process under the table lock, releases the lock, then switches.
func (s *Scheduler) YieldNow() {
	g := s.Table.Lock()
	cur := s.Table.Lookup(s.Table.CurrentPID())
	if cur.State == proc.Running {
		cur.State = proc.Ready
	}
	next := s.pickNext(cur)
	s.Table.Unlock(g)

	s.switchTo(cur, next)
}

// Reschedule behaves like YieldNow but never demotes a Blocked or Zombie
// caller back to Ready: the caller is responsible for having already set
// its own terminal/blocked state before calling in.
func (s *Scheduler) Reschedule() {
	g := s.Table.Lock()
	cur := s.Table.Lookup(s.Table.CurrentPID())
	next := s.pickNext(cur)
	s.Table.Unlock(g)

	s.switchTo(cur, next)
}

// BlockCurrent parks the caller on ch and reschedules. Implements
// proc.Scheduler so proc.Table.WaitForChild can call it directly.
func (s *Scheduler) BlockCurrent(ch proc.WaitChannel) {
	g := s.Table.Lock()
	cur := s.Table.Lookup(s.Table.CurrentPID())
	cur.State = proc.Blocked
	cur.Wait = ch
	s.Table.Unlock(g)

	s.Reschedule()
}
