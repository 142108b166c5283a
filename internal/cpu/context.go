package cpu

import "sync/atomic"

// Context is the fixed record a Process's saved execution state lives in
// between ContextSwitch calls. The field set mirrors spec: callee-saved
// integer registers, stack pointer, instruction pointer, and flags, enough
// to resume a task at a precise point. Layout is observable by diagnostics
// dumpers, so fields are never reordered once a Process depends on them.
type Context struct {
	R [6]uint64 // callee-saved general registers (rbx, rbp, r12-r15 analog)
	SP uint64   // stack pointer snapshot
	IP uint64   // instruction pointer snapshot
	FL Flags    // saved flags

	resume chan struct{} // signaled to resume the goroutine parked here
}

var ipSeq uint64 // monotonic source for synthetic IP snapshots, diagnostics only

// nextIP hands out a strictly increasing value to stand in for an
// instruction pointer. Real register contents are not observable from
// hosted Go; callers only ever need IP to be stable and comparable across a
// save/restore round trip, which a counter satisfies without pretending to
// read silicon.
func nextIP() uint64 {
	return atomic.AddUint64(&ipSeq, 1)
}

// NewContext allocates a Context ready to be the target of a ContextSwitch.
// The caller is responsible for ensuring exactly one goroutine parks on it
// (via Park) before any ContextSwitch names it as the "next" context.
func NewContext() *Context {
	return &Context{resume: make(chan struct{})}
}

// Switcher is the capability ContextSwitch needs from a task: a place to
// park until woken, mirroring the teacher's Bus interface narrowing what
// the CPU core touches down to Read/Write/Reset.
type Switcher interface {
	// Park blocks the calling goroutine until Resume is called on the same
	// Context, simulating the "control returns to a different stack"
	// discontinuity a real context switch produces.
	Park(ctx *Context)
	// Resume unblocks the goroutine parked on ctx.
	Resume(ctx *Context)
}

// defaultSwitcher implements Switcher with a single rendezvous channel per
// Context; this is the production implementation used everywhere outside
// tests that need to observe intermediate states.
type defaultSwitcher struct{}

// Default is the Switcher used by ContextSwitch.
var Default Switcher = defaultSwitcher{}

func (defaultSwitcher) Park(ctx *Context) {
	<-ctx.resume
}

func (defaultSwitcher) Resume(ctx *Context) {
	ctx.resume <- struct{}{}
}

// ContextSwitch records fresh synthetic SP/IP snapshots into current,
// resumes the goroutine parked on next, and parks the caller on current.
// Nothing is read from next, and current's R and FL fields are left as
// they are, so current/next can trade places across repeated calls and a
// ContextSwitch(a, b); ContextSwitch(b, a) round trip leaves a's register
// file bit-for-bit unchanged.
//
// ContextSwitch does not return until some later ContextSwitch names
// current as its "next" argument again — from the caller's point of view
// the stack and instruction pointer belong to a different task while this
// call is parked.
func ContextSwitch(current, next *Context, sw Switcher) {
	if sw == nil {
		sw = Default
	}
	current.SP = nextIP()
	current.IP = nextIP()

	sw.Resume(next)
	sw.Park(current)
}

// Seed initializes a freshly allocated Context so that the first
// ContextSwitch naming it as "next" resumes at entry with interrupts
// enabled and callee-saved registers zeroed, per spec's spawn sequence.
func (c *Context) Seed(entry uint64, stackTop uint64) {
	c.R = [6]uint64{}
	c.SP = stackTop
	c.IP = entry
	c.FL = Flags(0).WithInterruptsEnabled()
}
