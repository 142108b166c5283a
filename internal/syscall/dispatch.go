package syscall

import (
	"errors"

	"github.com/tuttlem/ares/internal/device"
	"github.com/tuttlem/ares/internal/proc"
)

// syscallFunc is the handler signature for one syscall number.
type syscallFunc func(d *Dispatcher, f *Frame) uint64

// dispatchTable is a fixed-size, number-indexed lookup table, generalizing
// the teacher's 64K-entry opcodeTable (decode.go) from instruction-word
// space into syscall-number space. nil entries dispatch to ErrNosys, the
// same way the teacher treats a nil opcodeTable slot as illegal.
var dispatchTable [64]syscallFunc

func init() {
	dispatchTable[NumRead] = sysReadHandler
	dispatchTable[NumWrite] = sysWriteHandler
	dispatchTable[NumYield] = sysYieldHandler
	dispatchTable[NumExit] = sysExitHandler
}

// Dispatch looks up f.Num in the table and runs its handler, returning
// ErrNosys for any number the table has no entry for. Every syscall return
// is a cooperative safe point (spec.md §9), so Dispatch calls CheckPreempt
// once the handler is done: this is the only place in the running system
// where a task that never calls Yield still gets interrupted on the
// preempt-slice boundary (internal/sched.Scheduler.CheckPreempt).
func (d *Dispatcher) Dispatch(f *Frame) uint64 {
	if f.Num >= uint64(len(dispatchTable)) {
		return ErrNosys
	}
	h := dispatchTable[f.Num]
	if h == nil {
		return ErrNosys
	}
	v := h(d, f)
	d.CheckPreempt()
	return v
}

// sysReadHandler resolves the caller's descriptor, reads from the device,
// and on ErrWouldBlock parks the caller on KeyboardInput and retries once
// woken (spec.md §4.7). Any other device error maps to ErrFault: the ABI
// has no sentinel more specific than that for a driver-level failure.
func sysReadHandler(d *Dispatcher, f *Frame) uint64 {
	for {
		p := d.Table.Current()
		if p == nil {
			return ErrFault
		}
		dev, ok := p.Descriptors.Get(f.FD)
		if !ok {
			return ErrBadFD
		}
		n, err := dev.Read(f.Buf)
		if err == nil {
			return uint64(n)
		}
		if errors.Is(err, device.ErrWouldBlock) {
			d.Sched.BlockCurrent(proc.KeyboardChannel)
			continue
		}
		return ErrFault
	}
}

// sysWriteHandler is analogous to read with no blocking case, per spec.md
// §4.7.
func sysWriteHandler(d *Dispatcher, f *Frame) uint64 {
	p := d.Table.Current()
	if p == nil {
		return ErrFault
	}
	dev, ok := p.Descriptors.Get(f.FD)
	if !ok {
		return ErrBadFD
	}
	n, err := dev.Write(f.Buf)
	if err != nil {
		return ErrFault
	}
	return uint64(n)
}

func sysYieldHandler(d *Dispatcher, f *Frame) uint64 {
	d.Sched.YieldNow()
	return 0
}

// sysExitHandler never returns to its caller: proc.ExitCurrent parks the
// calling goroutine permanently once no scheduling pass will ever name its
// context as "next" again.
func sysExitHandler(d *Dispatcher, f *Frame) uint64 {
	d.Table.ExitCurrent(f.Code & 0xff)
	panic("syscall: exit returned")
}
