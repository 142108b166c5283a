package sched

import "github.com/tuttlem/ares/internal/proc"

// RequestPreempt is called from the timer's tick hook (standing in for
// interrupt context) when a preempt slice boundary is crossed. It sets
// NEED_RESCHED and records that a preempt is outstanding so the running
// task's next cooperative check point (CheckPreempt) performs the actual
// switch.
//
// A real kernel cannot call Reschedule directly from interrupt context: the
// interrupted frame lives on the task's own kernel stack, so spec.md's
// three-step trampoline (request_preempt / preempt_trampoline /
// preempt_do_switch) rewrites the trap frame's return address and lets the
// IRQ-return path divert into the helper. A hosted Go goroutine has no trap
// frame to rewrite; CheckPreempt is the return-path diversion point,
// expected to be polled at a safe, bounded interval by whichever task is
// Running (see internal/syscall.Dispatcher.CheckPreempt).
//
// request_preempt is a no-op if the interrupted process is idle or if
// another preempt request is already outstanding and unclaimed, matching
// spec.md §4.5.
func (s *Scheduler) RequestPreempt(pid int) {
	g := s.Table.Lock()
	defer s.Table.Unlock(g)

	if s.preemptPending {
		return
	}
	p := s.Table.Lookup(pid)
	if p == nil || p.Idle {
		return
	}
	s.preemptPending = true
	s.Table.RequestResched()
}

// CheckPreempt is the cooperative stand-in for preempt_trampoline +
// preempt_do_switch: called by the currently Running task at a safe point
// in its own execution (spec.md §9's "first safe moment after the
// interrupt"). If a preempt is pending it clears NEED_RESCHED and the
// pending flag, demotes the caller to Ready, and reschedules; otherwise it
// does nothing and returns immediately.
func (s *Scheduler) CheckPreempt() {
	g := s.Table.Lock()
	pending := s.preemptPending
	if pending {
		s.preemptPending = false
		s.Table.ClearResched()
	}
	cur := s.Table.Lookup(s.Table.CurrentPID())
	if pending && cur != nil {
		cur.State = proc.Ready
	}
	s.Table.Unlock(g)

	if pending {
		s.Reschedule()
	}
}
