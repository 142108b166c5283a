package cpu

import "sync/atomic"

// Ticks is a monotonic 64-bit counter incremented from interrupt context
// only (internal/timer.OnTick). Reads from any context are coherent because
// the counter is atomic; ordering across observers is total.
type Ticks struct {
	n uint64
}

// Add increments the counter by 1 and returns the new value. Called only
// from the timer interrupt hook.
func (t *Ticks) Add() uint64 {
	return atomic.AddUint64(&t.n, 1)
}

// Read returns the current tick count.
func (t *Ticks) Read() uint64 {
	return atomic.LoadUint64(&t.n)
}

// EnterUserMode is a one-shot hook a real kernel uses to perform the ring
// transition onto a user stack. A hosted Go process has no ring-3 to enter
// (see spec.md §1 non-goals: user address-space isolation), so this returns
// a copy of fl with the transition recorded, for tests and diagnostics, and
// does not alter control flow; callers that need an actual jump use cpu.ContextSwitch instead.
func EnterUserMode(fl Flags) Flags {
	return fl.WithInterruptsEnabled() | FlagUser
}
