// Package spinlock provides a test-and-set mutual-exclusion primitive for
// use across task and interrupt context, grounded on the teacher's low-level
// bit-twiddling style (flags.go) generalized from CPU status bits to an
// actual lock word.
package spinlock

import (
	"sync/atomic"

	"github.com/tuttlem/ares/internal/cpu"
)

// Spinlock is a simple test-and-set lock. Acquiring it disables the calling
// task's interrupt-enable flag and records the previous value inside the
// returned Guard; releasing restores that value atomically with unlocking.
// Never nest two Spinlocks: the process-table lock is always outermost, and
// re-entrant acquisition panics rather than deadlocking silently.
//
// Re-entrancy is detected by identity of the flags image passed in: a task
// owns exactly one live cpu.Flags value for the duration it runs (single-CPU
// cooperative model, spec.md §5), so the same *cpu.Flags pointer showing up
// while the lock is already held means the holder is trying to acquire its
// own lock again rather than a genuinely different task spinning.
type Spinlock struct {
	held   uint32
	heldBy *cpu.Flags
}

// Guard is returned by Acquire and must be passed to Release exactly once.
type Guard struct {
	l      *Spinlock
	prevFL cpu.Flags
}

// Acquire spins until the lock is free, then disables interrupts (via fl,
// the caller's flags image) and takes the lock. Panics if the caller
// already holds this lock.
func (l *Spinlock) Acquire(fl *cpu.Flags) Guard {
	for {
		if atomic.CompareAndSwapUint32(&l.held, 0, 1) {
			break
		}
		if l.heldBy == fl {
			panic("spinlock: re-entrant acquire")
		}
	}
	prev := *fl
	*fl = fl.WithInterruptsDisabled()
	l.heldBy = fl
	return Guard{l: l, prevFL: prev}
}

// Release unlocks l and restores the flags image saved at Acquire time into
// fl, atomically with the unlock from the caller's point of view: no
// interrupt can observe the lock free with interrupts still disabled from a
// stale image.
func (g Guard) Release(fl *cpu.Flags) {
	*fl = g.prevFL
	g.l.heldBy = nil
	atomic.StoreUint32(&g.l.held, 0)
}
