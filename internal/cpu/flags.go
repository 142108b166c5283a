// Package cpu provides the low-level primitives the rest of the kernel
// builds on: saved execution contexts, the simulated status-flag and MSR
// register files, and the monotonic tick counter. Real register files are
// not observable from hosted Go, so a Context's IP/SP fields are a
// diagnostic snapshot rather than live silicon state; ContextSwitch moves
// control between tasks by parking and unparking goroutines, using the Go
// scheduler's own stacks as the kernel stacks this subsystem owns.
package cpu

// Flags mirrors the handful of RFLAGS/EFER-adjacent bits the kernel cares
// about: whether interrupts are enabled and whether the task is executing
// in supervisor (ring-0) or user (ring-3) mode.
type Flags uint16

const (
	FlagIF   Flags = 1 << iota // interrupt enable
	FlagUser                   // 0 = supervisor, 1 = user
	FlagTF                     // trace/single-step, masked on syscall entry
)

// WithInterruptsEnabled returns a copy of f with FlagIF set.
func (f Flags) WithInterruptsEnabled() Flags { return f | FlagIF }

// WithInterruptsDisabled returns a copy of f with FlagIF cleared.
func (f Flags) WithInterruptsDisabled() Flags { return f &^ FlagIF }

// InterruptsEnabled reports whether FlagIF is set.
func (f Flags) InterruptsEnabled() bool { return f&FlagIF != 0 }

// Supervisor reports whether the flags describe ring-0 execution.
func (f Flags) Supervisor() bool { return f&FlagUser == 0 }
