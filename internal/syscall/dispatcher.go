package syscall

import (
	"github.com/tuttlem/ares/internal/proc"
)

// Scheduler is the narrow slice of C5 the dispatcher needs: enough to
// implement yield, the keyboard-read blocking retry, and the cooperative
// preempt check point. *sched.Scheduler satisfies this; defined locally so
// dispatch_test.go can exercise the blocking path with a fake.
type Scheduler interface {
	YieldNow()
	BlockCurrent(ch proc.WaitChannel)
	CheckPreempt()
}

// Dispatcher is the concrete proc.Runtime every spawned task's entry
// function runs against. It owns no state of its own beyond references to
// the process table and scheduler; "current process" is always resolved
// fresh from the table, exactly as CURRENT_PID does in spec.md.
type Dispatcher struct {
	Table *proc.Table
	Sched Scheduler
}

// New returns a Dispatcher bound to t and s.
func New(t *proc.Table, s Scheduler) *Dispatcher {
	return &Dispatcher{Table: t, Sched: s}
}

// SysRead is the thin wrapper spec.md §4.7 describes: build a Frame and
// call Dispatch directly, exercising the same path a ring-3 read would.
func SysRead(d *Dispatcher, fd int, buf []byte) (int, error) {
	v := d.Dispatch(&Frame{Num: NumRead, FD: fd, Buf: buf})
	if IsError(v) {
		return 0, toError(v)
	}
	return int(v), nil
}

// SysWrite is the write counterpart of SysRead.
func SysWrite(d *Dispatcher, fd int, buf []byte) (int, error) {
	v := d.Dispatch(&Frame{Num: NumWrite, FD: fd, Buf: buf})
	if IsError(v) {
		return 0, toError(v)
	}
	return int(v), nil
}

// SysYield wraps the yield syscall.
func SysYield(d *Dispatcher) {
	d.Dispatch(&Frame{Num: NumYield})
}

// SysExit wraps the exit syscall. Never returns.
func SysExit(d *Dispatcher, code int) {
	d.Dispatch(&Frame{Num: NumExit, Code: code})
}

// Read implements proc.Runtime.
func (d *Dispatcher) Read(fd int, buf []byte) (int, error) { return SysRead(d, fd, buf) }

// Write implements proc.Runtime.
func (d *Dispatcher) Write(fd int, buf []byte) (int, error) { return SysWrite(d, fd, buf) }

// Yield implements proc.Runtime.
func (d *Dispatcher) Yield() { SysYield(d) }

// Exit implements proc.Runtime.
func (d *Dispatcher) Exit(code int) { SysExit(d, code) }

// CheckPreempt is the cooperative return-path diversion point a task polls
// at its own safe points (spec.md §9); it delegates to the scheduler's
// protocol half.
func (d *Dispatcher) CheckPreempt() {
	d.Sched.CheckPreempt()
}

var _ proc.Runtime = (*Dispatcher)(nil)
