package proc

// Runtime is the capability a spawned task's entry function runs against:
// the syscall surface C7 exposes to kernel tasks. Defined here rather than
// in package syscall so proc never imports syscall; internal/syscall.
// Dispatcher implements this interface, and internal/kernel wires the two
// together. This is the same dependency-inversion the teacher uses between
// cpu.go (core) and the Bus it's handed, just one layer up the stack.
type Runtime interface {
	Read(fd int, buf []byte) (int, error)
	Write(fd int, buf []byte) (int, error)
	Yield()
	Exit(code int)
}

// EntryFunc is a kernel task's body. It receives the Runtime bound to
// whichever process is current when it runs.
type EntryFunc func(rt Runtime)

// Scheduler is the capability proc's lifecycle operations (ExitCurrent,
// WaitForChild) need from component C5. Defined here for the same
// dependency-inversion reason as Runtime: package sched implements it, and
// internal/kernel injects the implementation into a Table after both exist.
type Scheduler interface {
	// Reschedule picks the next Ready process and switches to it without
	// demoting a Blocked/Zombie caller back to Ready.
	Reschedule()
	// BlockCurrent marks the caller Blocked on ch and reschedules.
	BlockCurrent(ch WaitChannel)
}
