package proc

import (
	"sync/atomic"

	"github.com/tuttlem/ares/internal/cpu"
	"github.com/tuttlem/ares/internal/device"
)

// fakeAddr hands out strictly increasing synthetic addresses to stand in
// for the out-of-scope physical frame bump allocator (spec.md §1): this
// core only ever needs stack "addresses" to be unique and stable for
// diagnostics, never to be dereferenceable.
var fakeAddr uint64

func allocFakeAddr(n uint64) uint64 {
	return atomic.AddUint64(&fakeAddr, n) - n
}

// descriptorSetter is the narrow slice of descriptor.Table's API
// seedDescriptors needs, named here to avoid importing package descriptor
// just for a type name.
type descriptorSetter interface {
	Set(fd int, dev device.CharDevice)
}

// seedDescriptors wires slots 0/1/2 to keyboard, console, console, per
// spec.md §4.4 step 5, plus slot 3 to the null device as the default
// discard sink for anything beyond that trio.
func seedDescriptors(d descriptorSetter, reg *device.Registry) {
	d.Set(0, reg.Keyboard())
	d.Set(1, reg.Console())
	d.Set(2, reg.Console())
	d.Set(3, reg.Null())
}

// newBareProcess allocates a PID, a stack, and a seeded context, but does
// not launch its goroutine or insert it into the table. Caller must hold
// the table lock.
func (t *Table) newBareProcess(name string, idle bool) *Process {
	pid := t.allocPID()
	stackBase := allocFakeAddr(StackSize)

	p := &Process{
		PID:       pid,
		Name:      name,
		ParentPID: t.CurrentPID(),
		State:     Ready,
		Idle:      idle,
		Context:   cpu.NewContext(),
		StackBase: stackBase,
		StackSize: StackSize,
		Regions: []MemoryRegion{
			{Base: stackBase, Size: StackSize, Kind: RegionStack},
		},
	}
	return p
}

// SpawnIdle creates the idle process (PID 1), inserts it, and makes it the
// current, Running process. Must be
// called once, before any other Spawn, per spec.md §3's init() contract.
// The idle task's body parks, and once resumed asks the scheduler to look
// again before parking once more: a hosted-Go wake has no interrupt-return
// path to fall through into a reschedule on its own (see WakeChannel), so
// idle's own loop is what turns "something nudged me" into an actual
// hand-off. The scheduler never demotes idle to Blocked or Zombie
// (invariant 6), so it is always a valid fallback pick.
func (t *Table) SpawnIdle(reg *device.Registry) *Process {
	g := t.Lock()
	p := t.newBareProcess("idle", true)
	seedDescriptors(&p.Descriptors, reg)
	entryAddr := allocFakeAddr(1)
	p.Context.Seed(entryAddr, stackTop(p))
	t.insert(p)
	t.SetCurrentPID(p.PID)
	p.State = Running
	t.Unlock(g)

	go func() {
		for {
			cpu.Default.Park(p.Context)
			t.sched.Reschedule()
		}
	}()

	return p
}

func stackTop(p *Process) uint64 {
	return p.StackBase + p.StackSize - 8
}

// SpawnKernel allocates a PID, a 16 KiB stack, and a context seeded to
// start at entry; seeds descriptor slots 0/1/2; and inserts the process
// Ready. rt is the syscall Runtime the spawned task's goroutine will run
// entry against (shared across all tasks; it resolves "current process"
// from the table itself).
//
// The teacher writes the address of a trampoline at the stack's top word
// so that returning from entry lands on a clean exit (cpu.go step 3 of
// spawn_kernel_process). A hosted Go goroutine has no raw return address to
// rewrite, so the trampoline here is the wrapper closure below: it calls
// entry, and when entry returns, calls rt.Exit(0) exactly as falling off
// the end of a real kernel task would.
func (t *Table) SpawnKernel(name string, entry EntryFunc, reg *device.Registry, rt Runtime) *Process {
	g := t.Lock()
	p := t.newBareProcess(name, false)
	seedDescriptors(&p.Descriptors, reg)
	entryAddr := allocFakeAddr(1)
	p.Context.Seed(entryAddr, stackTop(p))
	t.insert(p)
	t.Unlock(g)

	go func() {
		cpu.Default.Park(p.Context)
		entry(rt)
		rt.Exit(0)
	}()

	return p
}

// ExitCurrent transitions the Running process to Zombie, stores its exit
// code, wakes both a specific ChildExit waiter and any AnyChild waiter on
// its parent, reschedules, and never returns: the caller's goroutine parks
// permanently inside Reschedule's ContextSwitch once no scheduling pass
// will ever name this process's context as "next" again.
func (t *Table) ExitCurrent(code int) {
	g := t.Lock()
	p := t.Lookup(t.CurrentPID())
	if p == nil {
		t.Unlock(g)
		panic("proc: ExitCurrent with no current process")
	}
	if p.Idle {
		t.Unlock(g)
		panic("proc: idle process must not exit")
	}
	p.State = Zombie
	p.ExitCode = code
	parentPID := p.ParentPID
	pid := p.PID
	t.Unlock(g)

	t.WakeChannel(ChildExitChannel(pid))
	t.WakeChannel(AnyChildChannel(parentPID))

	t.sched.Reschedule()
	panic("proc: ExitCurrent returned") // unreachable: Reschedule never returns for a Zombie
}

// WaitForChild blocks the caller until the child identified by target
// (or, if target is nil, any child) is a Zombie, then reaps it and returns
// its exit code. Reaping removes the zombie slot from the table so its PID
// is never observed again and its stack region stops being reported by
// diagnostics (spec.md §9: kernel stacks are not reclaimed, only their
// bookkeeping entry is).
func (t *Table) WaitForChild(target *int) int {
	self := t.CurrentPID()
	var channel WaitChannel
	if target == nil {
		channel = AnyChildChannel(self)
	} else {
		channel = ChildExitChannel(*target)
	}

	for {
		g := t.Lock()
		for _, p := range t.procs {
			if p.ParentPID != self || p.State != Zombie {
				continue
			}
			if target != nil && p.PID != *target {
				continue
			}
			code := p.ExitCode
			t.remove(p.PID)
			t.Unlock(g)
			return code
		}
		t.Unlock(g)

		t.sched.BlockCurrent(channel)
	}
}
