// Package timer implements the vector-32 tick hook (spec.md component C8):
// a bounded-work interrupt handler that advances the tick counter and asks
// for a reschedule on the preempt-slice boundary.
package timer

import (
	"github.com/tuttlem/ares/internal/cpu"
)

// Preemptor is the narrow capability OnTick needs from C5: request a
// preempt for whichever process is current, never block, never allocate.
type Preemptor interface {
	RequestPreempt(pid int)
}

// CurrentPID is the narrow capability OnTick needs to name the interrupted
// process without importing package proc directly.
type CurrentPID interface {
	CurrentPID() int
}

// Timer drives the tick counter and the preempt-slice boundary check. Its
// zero value is not usable; construct with New. Every field is read or
// written only from OnTick, matching spec.md §4.8's "no heap work, no
// logging beyond a bounded counter, no lock beyond the one briefly held
// inside request_preempt" constraint.
type Timer struct {
	ticks cpu.Ticks

	sliceTicks int
	sched      Preemptor
	table      CurrentPID
}

// New constructs a Timer. sliceTicks must be >= 1 (PREEMPT_SLICE_TICKS).
func New(sched Preemptor, table CurrentPID, sliceTicks int) *Timer {
	if sliceTicks < 1 {
		sliceTicks = 1
	}
	return &Timer{sliceTicks: sliceTicks, sched: sched, table: table}
}

// OnTick is the vector-32 handler body: increment the counter, and on the
// slice boundary, request a preempt of whatever is current. Does no heap
// work and acquires no lock of its own; RequestPreempt briefly takes the
// process-table spinlock internally.
func (tm *Timer) OnTick() {
	n := tm.ticks.Add()
	if n%uint64(tm.sliceTicks) == 0 {
		tm.sched.RequestPreempt(tm.table.CurrentPID())
	}
}

// Ticks reports the total number of ticks observed so far.
func (tm *Timer) Ticks() uint64 {
	return tm.ticks.Read()
}
